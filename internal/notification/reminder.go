package notification

import (
	"errors"
	"fmt"
	"time"

	"github.com/SlpAus/hydrotrack-backend/internal/platform/database"
)

// --- 依赖注入 ---
// 提醒扫描需要用户列表、每日目标和当日饮水量，这些数据归属
// user和intake模块。为避免反向依赖，取数函数在启动时注入。

// UserSource 加载所有已激活用户的UUID。
type UserSource func() ([]string, error)

// GoalSource 按用户加载当前的每日目标。
type GoalSource func(userID string) (int, error)

// TodayTotalSource 按用户加载今天已记录的饮水总量。
type TodayTotalSource func(userID string) (int64, error)

var (
	userSource       UserSource
	goalSource       GoalSource
	todayTotalSource TodayTotalSource
)

// Configure 在应用启动时注入提醒扫描的外部数据源。
func Configure(users UserSource, goals GoalSource, todayTotals TodayTotalSource) {
	userSource = users
	goalSource = goals
	todayTotalSource = todayTotals
}

// ShouldRemindAt 判断给定配置在某个整点是否应该提醒。
// 提醒只发生在[StartHour, EndHour]时段内、从StartHour起每隔
// IntervalHours的整点上。纯函数，方便测试。
func ShouldRemindAt(settings *ReminderSettings, hour int) bool {
	if !settings.Enabled || settings.IntervalHours <= 0 {
		return false
	}
	if hour < settings.StartHour || hour > settings.EndHour {
		return false
	}
	return (hour-settings.StartHour)%settings.IntervalHours == 0
}

// RunReminderSweep 执行一轮提醒扫描，由每小时的定时任务调用。
// 对每个开启了提醒、处于提醒时段、且今天还没喝够的用户，
// 追加一条应用内提醒。
func RunReminderSweep(now time.Time) error {
	if userSource == nil || goalSource == nil || todayTotalSource == nil {
		return errors.New("通知模块尚未配置数据源")
	}

	userIDs, err := userSource()
	if err != nil {
		return fmt.Errorf("无法加载用户列表: %w", err)
	}

	hour := now.Hour()
	var failed int
	for _, userID := range userIDs {
		if err := remindUser(userID, hour); err != nil {
			failed++
			fmt.Printf("警告: 用户 %s 的提醒扫描失败: %v\n", userID, err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d 个用户的提醒扫描失败", failed)
	}
	return nil
}

// remindUser 对单个用户执行提醒判定。
func remindUser(userID string, hour int) error {
	settings, err := GetReminderSettings(userID)
	if err != nil {
		return err
	}
	if !ShouldRemindAt(settings, hour) {
		return nil
	}

	goal, err := goalSource(userID)
	if err != nil {
		return err
	}
	total, err := todayTotalSource(userID)
	if err != nil {
		return err
	}
	if total >= int64(goal) {
		// 目标已达成，今天不再打扰
		return nil
	}

	remaining := int64(goal) - total
	body := fmt.Sprintf("Time to hydrate! %d ml to go today.", remaining)
	return Push(userID, KindReminder, "Hydration Reminder", body)
}

// UnreadCount 返回用户未读通知的数量。
func UnreadCount(userID string) (int64, error) {
	var count int64
	err := database.DB.Model(&Notification{}).
		Where("user_uuid = ? AND read = ?", userID, false).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("无法统计用户 %s 的未读通知: %w", userID, err)
	}
	return count, nil
}
