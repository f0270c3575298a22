package intake

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/SlpAus/hydrotrack-backend/internal/stats"
	"github.com/google/uuid"
)

// ErrInvalidAmount 表示请求的饮水量不是正整数。
var ErrInvalidAmount = errors.New("饮水量必须为正整数")

// LogIntake 记录一次饮水。
// 事件的时间戳和日历日期在此刻一次性确定，之后不可修改。
func LogIntake(userID string, amountMl int) (*IntakeEvent, error) {
	if amountMl <= 0 {
		return nil, ErrInvalidAmount
	}

	eventID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("无法生成事件ID: %w", err)
	}

	now := time.Now()
	event := &IntakeEvent{
		EventID:     eventID.String(),
		UserUUID:    userID,
		AmountMl:    amountMl,
		TimestampMs: now.UnixMilli(),
		Date:        stats.DateOf(now),
	}

	if err := appendEvent(event); err != nil {
		return nil, err
	}
	return event, nil
}

// RemoveIntake 永久删除一条饮水记录，没有撤销。
func RemoveIntake(userID, eventID string) error {
	return deleteEvent(userID, eventID)
}

// TodaySummary 返回今天的全部事件（最新在前）和总量。
func TodaySummary(userID string) ([]IntakeEvent, int64, error) {
	today := stats.DateOf(time.Now())
	events, err := ListEventsByDate(userID, today)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	for _, ev := range events {
		total += int64(ev.AmountMl)
	}
	return events, total, nil
}

// historyStartDate 返回最近days天窗口的起始日期。
// 窗口以今天结尾且含今天：days=1时起止都是今天。
func historyStartDate(now time.Time, days int) string {
	return stats.DateOf(now.AddDate(0, 0, -(days - 1)))
}

// History 返回最近days天的每日聚合，最新日期在前。
// 聚合是从事件日志推导的，不单独持久化。
func History(userID string, days int) ([]stats.DailyAggregate, error) {
	if days <= 0 {
		return nil, fmt.Errorf("历史天数 %d 无效", days)
	}

	fromDate := historyStartDate(time.Now(), days)
	events, err := ListEventsSince(userID, fromDate)
	if err != nil {
		return nil, err
	}

	aggregates, err := stats.AggregateByDate(ToStatsEvents(events))
	if err != nil {
		return nil, err
	}

	// 展示层习惯最新在前
	sort.Slice(aggregates, func(i, j int) bool {
		return aggregates[i].Date > aggregates[j].Date
	})
	return aggregates, nil
}
