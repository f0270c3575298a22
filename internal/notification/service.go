package notification

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SlpAus/hydrotrack-backend/internal/platform/database"
	"gorm.io/gorm"
)

// ErrInvalidSettings 表示提醒配置不合法。
var ErrInvalidSettings = errors.New("提醒配置不合法")

// Push 向用户的通知流追加一条通知。
func Push(userID, kind, title, body string) error {
	record := Notification{
		UserUUID: userID,
		Kind:     kind,
		Title:    title,
		Body:     body,
	}
	if err := database.DB.Create(&record).Error; err != nil {
		return fmt.Errorf("无法写入通知: %w", err)
	}
	return nil
}

// PushAchievementUnlocks 为一批新解锁的成就生成一条通知。
// 文案与客户端的成就弹窗保持一致。
func PushAchievementUnlocks(userID string, titles []string) error {
	if len(titles) == 0 {
		return nil
	}
	body := fmt.Sprintf("Congratulations! You earned: %s", strings.Join(titles, ", "))
	return Push(userID, KindAchievement, "Achievement Unlocked!", body)
}

// ListNotifications 返回用户的通知，最新在前。
func ListNotifications(userID string, limit int) ([]Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	var notifications []Notification
	err := database.DB.Where("user_uuid = ?", userID).
		Order("id desc").Limit(limit).Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("无法读取用户 %s 的通知: %w", userID, err)
	}
	return notifications, nil
}

// MarkAllRead 将用户的全部通知标记为已读。
func MarkAllRead(userID string) error {
	err := database.DB.Model(&Notification{}).
		Where("user_uuid = ? AND read = ?", userID, false).
		Update("read", true).Error
	if err != nil {
		return fmt.Errorf("无法标记用户 %s 的通知为已读: %w", userID, err)
	}
	return nil
}

// GetReminderSettings 返回用户的提醒配置；尚未配置时返回默认值。
func GetReminderSettings(userID string) (*ReminderSettings, error) {
	var settings ReminderSettings
	err := database.DB.Where("user_uuid = ?", userID).First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			defaults := DefaultReminderSettings(userID)
			return &defaults, nil
		}
		return nil, fmt.Errorf("无法读取用户 %s 的提醒配置: %w", userID, err)
	}
	return &settings, nil
}

// ValidateReminderSettings 校验提醒配置的取值范围。
func ValidateReminderSettings(settings *ReminderSettings) error {
	if settings.IntervalHours <= 0 || settings.IntervalHours > 24 {
		return fmt.Errorf("%w: 提醒间隔 %d 小时超出范围", ErrInvalidSettings, settings.IntervalHours)
	}
	if settings.StartHour < 0 || settings.StartHour > 23 ||
		settings.EndHour < 0 || settings.EndHour > 23 {
		return fmt.Errorf("%w: 提醒时段必须在0-23小时之间", ErrInvalidSettings)
	}
	if settings.StartHour > settings.EndHour {
		return fmt.Errorf("%w: 提醒开始时间晚于结束时间", ErrInvalidSettings)
	}
	return nil
}

// SaveReminderSettings 写入（或覆盖）用户的提醒配置。
func SaveReminderSettings(settings *ReminderSettings) error {
	if err := ValidateReminderSettings(settings); err != nil {
		return err
	}
	if err := database.DB.Save(settings).Error; err != nil {
		return fmt.Errorf("无法保存用户 %s 的提醒配置: %w", settings.UserUUID, err)
	}
	return nil
}
