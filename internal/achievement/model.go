package achievement

import (
	"time"
)

// UnlockedAchievement 定义了成就解锁记录在SQLite数据库中的持久化模型。
// 每个(用户, 成就)组合最多只有一条记录：解锁是单向的，
// 记录一经创建就不会删除，也不会重复解锁。
type UnlockedAchievement struct {
	ID uint `gorm:"primarykey"`

	// UserUUID 标识解锁成就的用户
	UserUUID string `gorm:"uniqueIndex:idx_user_achievement;type:varchar(36)"`

	// AchievementID 是成就目录中的静态ID
	AchievementID string `gorm:"uniqueIndex:idx_user_achievement;type:varchar(64)"`

	// UnlockedAtMs 是评估器判定越过门槛的时刻（毫秒级Unix时间戳）
	UnlockedAtMs int64

	// CreatedAt 由GORM自动管理
	CreatedAt time.Time
}
