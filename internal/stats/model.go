package stats

import (
	"time"

	"gorm.io/gorm"
)

// Event 是统计引擎的输入：一条在创建时就固定了日历日期的饮水记录。
// 它是intake模块持久化模型的只读投影，避免引擎反向依赖存储层。
type Event struct {
	ID          string
	AmountMl    int
	TimestampMs int64
	// Date 是事件创建时派生的本地日历日期（YYYY-MM-DD）。
	// 创建后不再重新计算，即使设备时区发生变化。
	Date string
}

// DailyAggregate 是按日历日期聚合后的派生数据，不作为主数据持久化。
type DailyAggregate struct {
	Date       string `json:"date"`
	TotalMl    int64  `json:"total"`
	EventCount int    `json:"eventCount"`
}

// Snapshot 是统计引擎的输出：由（事件集, 当前目标）完全决定的统计快照。
// 它可以被缓存，但永远可以从事件日志重新推导。
type Snapshot struct {
	// CurrentStreak 是以今天或昨天结尾的连续达标天数
	CurrentStreak int `json:"currentStreak"`
	// BestStreak 是历史上最长的连续达标天数
	BestStreak int `json:"bestStreak"`
	// TotalDaysMetGoal 是达标日的总数
	TotalDaysMetGoal int `json:"totalDaysMetGoal"`
	// TotalWaterConsumed 是所有事件的总饮水量（毫升），不限于达标日
	TotalWaterConsumed int64 `json:"totalWaterConsumed"`
	// LastActivityDate 是最近一个有饮水记录的日期；无记录时为"今天"
	LastActivityDate string `json:"lastActivityDate"`
}

// UserSnapshot 定义了统计快照在SQLite中的持久化形态。
// 它只是Redis缓存的落盘备份，由backup调度器定期刷写，
// 用于在Redis重启后快速预热。
type UserSnapshot struct {
	// UserUUID 是用户的主键
	UserUUID string `gorm:"primarykey;type:varchar(36)"`

	CurrentStreak      int
	BestStreak         int
	TotalDaysMetGoal   int
	TotalWaterConsumed int64
	LastActivityDate   string

	// ComputedDate 是计算快照时的日历日期，用于判断快照是否跨天失效
	ComputedDate string
	// Goal 是计算快照时使用的每日目标
	Goal int

	// 部分gorm.Model，由GORM自动管理
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
