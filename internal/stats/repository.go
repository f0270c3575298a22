package stats

import (
	"sync"
)

// --- Redis 键名常量 ---

const (
	// SnapshotKey 是一个 Redis Hash 的键，用于缓存每个用户的统计快照。
	// Field: 用户的UUID
	// Value: CachedSnapshot 结构体的JSON序列化字符串
	SnapshotKey = "stats:snapshot"

	// DirtySetKey 是一个 Redis Set 的键，用于存储自上次落盘以来，
	// 统计快照发生变化的用户UUID。用于增量落盘。
	DirtySetKey = "stats:dirty"

	// ProcessingDirtySetKey 是一个 Redis Set 的键
	// 保留它，只在落盘逻辑中被使用
	ProcessingDirtySetKey = "stats:dirty:processing"
)

// --- Redis 数据结构 ---

// CachedSnapshot 定义了在 Redis 的 stats:snapshot 哈希表中，
// 以JSON格式存储的快照结构。除了快照本身，还记录了计算时的
// 日历日期和目标值，用于判断缓存是否已经失效。
type CachedSnapshot struct {
	Snapshot
	// ComputedDate 跨天后快照中的CurrentStreak可能不再成立
	ComputedDate string `json:"computedDate"`
	// Goal 变更后所有历史达标判定都要重算
	Goal int `json:"goal"`
}

// --- 并发控制 ---

// repoMutex 是一个模块内部的、不导出的全局读写锁，
// 用于保护对本模块管理的Redis键的并发访问。
var repoMutex sync.RWMutex

// LockRepository 封装了对模块全局锁的写锁定操作。
func LockRepository() {
	repoMutex.Lock()
}

// UnlockRepository 封装了对模块全局锁的写解锁操作。
func UnlockRepository() {
	repoMutex.Unlock()
}

// RLockRepository 封装了对模块全局锁的读锁定操作。
func RLockRepository() {
	repoMutex.RLock()
}

// RUnlockRepository 封装了对模块全局锁的读解锁操作。
func RUnlockRepository() {
	repoMutex.RUnlock()
}
