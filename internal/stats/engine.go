package stats

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// DateLayout 是整个项目统一使用的日历日期格式。
// 字典序比较与时间先后顺序一致，这是流式遍历算法的前提。
const DateLayout = "2006-01-02"

// ErrInvalidGoal 表示传入引擎的每日目标不是正整数。
// 调用方应该在进入引擎之前就完成校验，引擎在此做防御性拒绝。
var ErrInvalidGoal = errors.New("每日目标必须为正整数")

// MalformedEventError 表示某条事件的数据无法通过校验。
// 引擎不允许静默丢弃任何事件，一旦发现损坏数据就立即上报。
type MalformedEventError struct {
	EventID string
	Reason  string
}

func (e *MalformedEventError) Error() string {
	return fmt.Sprintf("事件 %s 的数据已损坏: %s", e.EventID, e.Reason)
}

// DateOf 根据时间戳派生本地日历日期字符串。
// 事件的日期在创建时用这个函数固定，之后不再重算。
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// parseDate 校验并解析一个YYYY-MM-DD日期字符串。
// 统一按UTC解析，避免夏令时导致的日期加减偏差。
func parseDate(date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, time.UTC)
}

// nextDay 返回给定日期的下一天。
func nextDay(date string) (string, error) {
	t, err := parseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, 1).Format(DateLayout), nil
}

// prevDay 返回给定日期的前一天。
func prevDay(date string) (string, error) {
	t, err := parseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, -1).Format(DateLayout), nil
}

// validateEvents 逐条校验事件数据，返回第一条损坏数据的错误。
func validateEvents(events []Event) error {
	for _, ev := range events {
		if ev.AmountMl <= 0 {
			return &MalformedEventError{
				EventID: ev.ID,
				Reason:  fmt.Sprintf("饮水量 %d 不是正整数", ev.AmountMl),
			}
		}
		if _, err := parseDate(ev.Date); err != nil {
			return &MalformedEventError{
				EventID: ev.ID,
				Reason:  fmt.Sprintf("日期 %q 无法解析", ev.Date),
			}
		}
	}
	return nil
}

// AggregateByDate 将事件按日历日期聚合，并按日期升序返回。
// 不变式：每个聚合的TotalMl等于该日期所有事件的饮水量之和。
func AggregateByDate(events []Event) ([]DailyAggregate, error) {
	if err := validateEvents(events); err != nil {
		return nil, err
	}

	byDate := make(map[string]*DailyAggregate)
	for _, ev := range events {
		agg, ok := byDate[ev.Date]
		if !ok {
			agg = &DailyAggregate{Date: ev.Date}
			byDate[ev.Date] = agg
		}
		agg.TotalMl += int64(ev.AmountMl)
		agg.EventCount++
	}

	aggregates := make([]DailyAggregate, 0, len(byDate))
	for _, agg := range byDate {
		aggregates = append(aggregates, *agg)
	}
	// YYYY-MM-DD的字典序即时间序
	sort.Slice(aggregates, func(i, j int) bool {
		return aggregates[i].Date < aggregates[j].Date
	})
	return aggregates, nil
}

// ComputeStats 是统计引擎的唯一入口。
// 它是(events, goal, now)的纯函数：相同输入永远得到相同输出。
// events可以为空、乱序、同一天多条；goal必须为正；now用于判定
// 连续达标是否延续到"今天"。
func ComputeStats(events []Event, goal int, now time.Time) (*Snapshot, error) {
	if goal <= 0 {
		return nil, ErrInvalidGoal
	}

	aggregates, err := AggregateByDate(events)
	if err != nil {
		return nil, err
	}

	today := DateOf(now)

	snapshot := &Snapshot{LastActivityDate: today}
	if len(aggregates) == 0 {
		// 空事件集：所有计数为零，最近活动日视为今天
		return snapshot, nil
	}

	var totalWaterConsumed int64
	for _, agg := range aggregates {
		totalWaterConsumed += agg.TotalMl
	}

	// 单次遍历升序日期，维护一个滑动的连续达标计数。
	// 一个日期延续连续达标，当且仅当它达标、与前一个日期紧邻、
	// 且前一个日期也达标；否则计数重置。
	var bestStreak, totalDaysMetGoal, tempStreak int
	var streakAtLastGoalMetDate int
	lastGoalMetDate := ""

	for i, agg := range aggregates {
		if agg.TotalMl >= int64(goal) {
			totalDaysMetGoal++
			lastGoalMetDate = agg.Date

			consecutive := true
			prevMetGoal := true
			if i > 0 {
				prev := aggregates[i-1]
				dayAfterPrev, err := nextDay(prev.Date)
				if err != nil {
					return nil, err
				}
				consecutive = dayAfterPrev == agg.Date
				prevMetGoal = prev.TotalMl >= int64(goal)
			}

			if consecutive && prevMetGoal {
				tempStreak++
			} else {
				tempStreak = 1
			}

			streakAtLastGoalMetDate = tempStreak
			if tempStreak > bestStreak {
				bestStreak = tempStreak
			}
		} else {
			tempStreak = 0
		}
	}

	// 只有最近一个达标日是今天或昨天，连续达标才算"存活"。
	// 容忍一天的记录空窗（今天可能还没记录完），间隔两天以上视为中断。
	yesterday, err := prevDay(today)
	if err != nil {
		return nil, fmt.Errorf("无法计算昨天的日期: %w", err)
	}
	currentStreak := 0
	if lastGoalMetDate == today || lastGoalMetDate == yesterday {
		currentStreak = streakAtLastGoalMetDate
	}

	snapshot.CurrentStreak = currentStreak
	snapshot.BestStreak = bestStreak
	snapshot.TotalDaysMetGoal = totalDaysMetGoal
	snapshot.TotalWaterConsumed = totalWaterConsumed
	snapshot.LastActivityDate = aggregates[len(aggregates)-1].Date
	return snapshot, nil
}
