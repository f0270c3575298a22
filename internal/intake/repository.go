package intake

import (
	"errors"
	"fmt"

	"github.com/SlpAus/hydrotrack-backend/internal/platform/database"
	"github.com/SlpAus/hydrotrack-backend/internal/stats"
)

// ErrEventNotFound 表示按EventID找不到属于该用户的事件。
var ErrEventNotFound = errors.New("找不到对应的饮水记录")

// appendEvent 以单行插入的方式把一条事件追加到日志中。
// 单行插入是原子的，两个并发的追加不会互相覆盖。
func appendEvent(event *IntakeEvent) error {
	if err := database.DB.Create(event).Error; err != nil {
		return fmt.Errorf("无法写入饮水记录: %w", err)
	}
	return nil
}

// deleteEvent 按EventID永久删除一条事件。
// 模型没有DeletedAt字段，GORM执行的是硬删除，没有软删除和撤销。
func deleteEvent(userID, eventID string) error {
	result := database.DB.Where("user_uuid = ? AND event_id = ?", userID, eventID).Delete(&IntakeEvent{})
	if result.Error != nil {
		return fmt.Errorf("无法删除饮水记录 %s: %w", eventID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// ListEvents 返回用户的全部事件，按时间戳升序。
func ListEvents(userID string) ([]IntakeEvent, error) {
	var events []IntakeEvent
	err := database.DB.Where("user_uuid = ?", userID).Order("timestamp_ms asc").Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("无法读取用户 %s 的饮水记录: %w", userID, err)
	}
	return events, nil
}

// ListEventsByDate 返回用户指定日期的事件，按时间戳降序（最新在前）。
func ListEventsByDate(userID, date string) ([]IntakeEvent, error) {
	var events []IntakeEvent
	err := database.DB.Where("user_uuid = ? AND date = ?", userID, date).
		Order("timestamp_ms desc").Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("无法读取用户 %s 在 %s 的饮水记录: %w", userID, date, err)
	}
	return events, nil
}

// ListEventsSince 返回用户从指定日期（含）开始的事件，按时间戳升序。
func ListEventsSince(userID, fromDate string) ([]IntakeEvent, error) {
	var events []IntakeEvent
	err := database.DB.Where("user_uuid = ? AND date >= ?", userID, fromDate).
		Order("timestamp_ms asc").Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("无法读取用户 %s 的历史饮水记录: %w", userID, err)
	}
	return events, nil
}

// SumAmountByDate 返回用户指定日期的饮水总量（毫升）。
func SumAmountByDate(userID, date string) (int64, error) {
	var total int64
	err := database.DB.Model(&IntakeEvent{}).
		Where("user_uuid = ? AND date = ?", userID, date).
		Select("COALESCE(SUM(amount_ml), 0)").Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("无法统计用户 %s 在 %s 的饮水总量: %w", userID, date, err)
	}
	return total, nil
}

// ToStatsEvents 把持久化模型转换为统计引擎的只读输入。
func ToStatsEvents(events []IntakeEvent) []stats.Event {
	out := make([]stats.Event, len(events))
	for i, ev := range events {
		out[i] = stats.Event{
			ID:          ev.EventID,
			AmountMl:    ev.AmountMl,
			TimestampMs: ev.TimestampMs,
			Date:        ev.Date,
		}
	}
	return out
}

// LoadStatsEvents 是注入给stats模块的事件数据源。
func LoadStatsEvents(userID string) ([]stats.Event, error) {
	events, err := ListEvents(userID)
	if err != nil {
		return nil, err
	}
	return ToStatsEvents(events), nil
}
