package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SlpAus/hydrotrack-backend/internal/platform/database"
	"github.com/redis/go-redis/v9"
)

// --- 依赖注入 ---
// 统计模块不直接依赖事件存储和目标存储，而是在启动时由startup注入
// 取数函数。这样保证了引擎的计算路径不与任何具体存储耦合。

// EventSource 按用户加载全部饮水事件。
type EventSource func(userID string) ([]Event, error)

// GoalSource 按用户加载当前的每日目标。
type GoalSource func(userID string) (int, error)

// UserSource 加载所有已激活用户的UUID。
type UserSource func() ([]string, error)

var (
	eventSource EventSource
	goalSource  GoalSource
	userSource  UserSource
)

// Configure 在应用启动时注入统计模块的外部数据源。
func Configure(events EventSource, goals GoalSource, users UserSource) {
	eventSource = events
	goalSource = goals
	userSource = users
}

// RefreshSnapshot 为指定用户执行一次全量重算，并更新缓存。
// 事件日志或目标值的每次变更之后都应该调用它。
// 重算永远基于完整事件集，不做增量计算。
func RefreshSnapshot(userID string) (*Snapshot, error) {
	events, err := eventSource(userID)
	if err != nil {
		return nil, fmt.Errorf("无法加载用户 %s 的饮水事件: %w", userID, err)
	}
	goal, err := goalSource(userID)
	if err != nil {
		return nil, fmt.Errorf("无法加载用户 %s 的每日目标: %w", userID, err)
	}

	now := time.Now()
	snapshot, err := ComputeStats(events, goal, now)
	if err != nil {
		return nil, err
	}

	if database.IsRedisHealthy() {
		if err := writeSnapshotCache(userID, snapshot, goal, now); err != nil {
			// 缓存写入失败不影响计算结果，下一次读取会回退到重算
			fmt.Printf("警告: 无法缓存用户 %s 的统计快照: %v\n", userID, err)
		}
	}
	return snapshot, nil
}

// GetSnapshot 返回指定用户的统计快照，优先使用Redis缓存。
// 缓存跨天或目标值已变更时视为失效，触发一次重算。
func GetSnapshot(userID string) (*Snapshot, error) {
	if !database.IsRedisHealthy() {
		// 降级路径：跳过缓存，直接从SQLite事件日志重算
		return computeDirect(userID)
	}

	cached, err := readSnapshotCache(userID)
	if err != nil {
		fmt.Printf("警告: 读取用户 %s 的快照缓存失败: %v\n", userID, err)
		return RefreshSnapshot(userID)
	}
	if cached == nil {
		return RefreshSnapshot(userID)
	}

	goal, err := goalSource(userID)
	if err != nil {
		return nil, fmt.Errorf("无法加载用户 %s 的每日目标: %w", userID, err)
	}
	if cached.ComputedDate != DateOf(time.Now()) || cached.Goal != goal {
		return RefreshSnapshot(userID)
	}

	snapshot := cached.Snapshot
	return &snapshot, nil
}

// RefreshAllSnapshots 对所有已激活用户执行一次重算。
// 由每日零点的定时任务调用：连续达标的"存活"判定依赖当前日期，
// 跨天后即使没有新事件，快照也可能变化。
func RefreshAllSnapshots() error {
	if userSource == nil {
		return errors.New("统计模块尚未配置用户数据源")
	}
	userIDs, err := userSource()
	if err != nil {
		return fmt.Errorf("无法加载用户列表: %w", err)
	}

	var failed int
	for _, userID := range userIDs {
		if _, err := RefreshSnapshot(userID); err != nil {
			failed++
			fmt.Printf("警告: 重算用户 %s 的快照失败: %v\n", userID, err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d 个用户的快照重算失败", failed)
	}
	return nil
}

// computeDirect 绕过所有缓存，直接从事件日志计算快照。
func computeDirect(userID string) (*Snapshot, error) {
	events, err := eventSource(userID)
	if err != nil {
		return nil, fmt.Errorf("无法加载用户 %s 的饮水事件: %w", userID, err)
	}
	goal, err := goalSource(userID)
	if err != nil {
		return nil, fmt.Errorf("无法加载用户 %s 的每日目标: %w", userID, err)
	}
	return ComputeStats(events, goal, time.Now())
}

// writeSnapshotCache 将新快照写入Redis，并把用户标记为dirty，
// 等待backup调度器增量落盘。
func writeSnapshotCache(userID string, snapshot *Snapshot, goal int, now time.Time) error {
	cached := CachedSnapshot{
		Snapshot:     *snapshot,
		ComputedDate: DateOf(now),
		Goal:         goal,
	}
	payload, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("无法序列化快照: %w", err)
	}

	LockRepository()
	defer UnlockRepository()

	pipe := database.RDB.TxPipeline()
	pipe.HSet(database.Ctx, SnapshotKey, userID, payload)
	pipe.SAdd(database.Ctx, DirtySetKey, userID)
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("写入快照缓存失败: %w", err)
	}
	return nil
}

// readSnapshotCache 从Redis读取缓存的快照；未命中时返回nil。
func readSnapshotCache(userID string) (*CachedSnapshot, error) {
	RLockRepository()
	defer RUnlockRepository()

	payload, err := database.RDB.HGet(database.Ctx, SnapshotKey, userID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var cached CachedSnapshot
	if err := json.Unmarshal([]byte(payload), &cached); err != nil {
		return nil, fmt.Errorf("无法解析缓存的快照: %w", err)
	}
	return &cached, nil
}
