package notification

import (
	"time"
)

// Notification 定义了应用内通知在SQLite数据库中的持久化模型。
// 这里只负责存储和查询，不涉及任何系统级推送通道。
type Notification struct {
	ID uint `gorm:"primarykey"`

	// UserUUID 标识通知的接收用户
	UserUUID string `gorm:"index;type:varchar(36)"`

	Title string
	Body  string

	// Kind 区分通知来源：成就解锁或饮水提醒
	Kind string `gorm:"type:varchar(16)"`

	// Read 标记用户是否已读
	Read bool

	// CreatedAt 由GORM自动管理
	CreatedAt time.Time
}

// 通知类型常量
const (
	KindAchievement = "achievement"
	KindReminder    = "reminder"
)

// ReminderSettings 定义了每个用户的饮水提醒配置。
type ReminderSettings struct {
	// UserUUID 是用户的主键
	UserUUID string `gorm:"primarykey;type:varchar(36)"`

	// Enabled 为false时完全不产生提醒
	Enabled bool

	// IntervalHours 是提醒间隔（小时）
	IntervalHours int

	// StartHour 和 EndHour 界定每天的提醒时段（24小时制，含两端）
	StartHour int
	EndHour   int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// 提醒配置的默认值
const (
	DefaultIntervalHours = 2
	DefaultStartHour     = 8
	DefaultEndHour       = 20
)

// DefaultReminderSettings 返回尚未配置过提醒的用户的默认配置。
func DefaultReminderSettings(userID string) ReminderSettings {
	return ReminderSettings{
		UserUUID:      userID,
		Enabled:       false,
		IntervalHours: DefaultIntervalHours,
		StartHour:     DefaultStartHour,
		EndHour:       DefaultEndHour,
	}
}
