package user

import (
	"time"

	"gorm.io/gorm"
)

// User 定义了用户在SQLite数据库中的持久化模型。
// 身份由客户端Cookie中的UUID标识，不做任何认证。
type User struct {
	// UUID 是用户的主键，来自客户端Cookie。
	UUID string `gorm:"primarykey;type:varchar(36)"`

	// Name 是用户的显示名称，仅用于CSV导出等展示场景，可以为空。
	Name string

	// DailyGoal 是用户当前的每日饮水目标（毫升）。
	// 修改目标不会回溯改写历史事件，但所有历史达标判定
	// 都以当前目标为准（产品既有语义）。
	DailyGoal int

	// 部分gorm.Model，由GORM自动管理
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
