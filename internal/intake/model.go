package intake

import (
	"time"
)

// IntakeEvent 定义了一条饮水记录在SQLite数据库中的持久化模型。
// 事件日志是追加式的：创建后不可修改，只能按条永久删除。
// 绝不做整表覆盖写，并发追加互不影响。
type IntakeEvent struct {
	// ID 是GORM自增主键，仅作存储用途
	ID uint `gorm:"primarykey"`

	// EventID 是事件的业务标识（UUID v7），创建时分配，之后不变
	EventID string `gorm:"uniqueIndex;type:varchar(36)"`

	// UserUUID 标识事件归属的用户
	UserUUID string `gorm:"index;type:varchar(36)"`

	// AmountMl 是本次饮水量（毫升），必须为正整数
	AmountMl int

	// TimestampMs 是事件创建时刻（毫秒级Unix时间戳），用于排序和展示
	TimestampMs int64

	// Date 是事件创建时根据本地时区派生的日历日期（YYYY-MM-DD）。
	// 日界在创建时一次性固定，此后即使时区变化也不重算。
	Date string `gorm:"index;type:varchar(10)"`

	// CreatedAt 由GORM自动管理
	CreatedAt time.Time
}
