package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/SlpAus/hydrotrack-backend/internal/platform/database"
	"github.com/SlpAus/hydrotrack-backend/internal/platform/metadata"
	"github.com/SlpAus/hydrotrack-backend/internal/stats"
	"github.com/SlpAus/hydrotrack-backend/pkg/lifecycle"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const flushInterval = 10 * time.Minute // 定时落盘频率

var flushMutex sync.Mutex // 避免意外竞态

// StartFlushScheduler 启动一个后台Goroutine来定期把脏快照落盘。
// 它接收一个lifecycle.Handle来管理其生命周期。
func StartFlushScheduler(handle *lifecycle.Handle) {
	defer handle.Close() // 确保在退出时通知管理器
	fmt.Println("统计快照落盘调度器已启动。")

	for {
		// 使用可中断的休眠来代替ticker。
		// 这使得整个循环可以在收到停机信号时立刻从休眠中唤醒并退出。
		if err := handle.Sleep(flushInterval); err != nil {
			fmt.Printf("落盘调度器: 休眠被中断，正在关闭...\n")
			return
		}

		if !database.IsRedisHealthy() {
			fmt.Println("落盘调度器: 检测到Redis不可用，跳过本次落盘。")
			continue
		}

		if err := FlushSnapshotsToDB(handle.Ctx()); err != nil {
			// 如果错误是由于停机信号导致的，则静默退出
			if err != context.Canceled && err != context.DeadlineExceeded {
				fmt.Printf("落盘调度器错误: 快照落盘失败: %v\n", err)
			}
		}
	}
}

// FlushSnapshotsToDB 把自上次落盘以来变化过的统计快照从Redis
// 增量写入SQLite。脏集合先被原子地转移到processing集合，
// 失败时合并回去，保证没有用户的变更被丢掉。
func FlushSnapshotsToDB(ctx context.Context) (err error) {
	flushMutex.Lock()
	defer flushMutex.Unlock()

	var dirtyUserIDs []string
	var payloads []interface{}

	transferred, err := func() (bool, error) {
		// stats 模块在两批Redis操作期间保持锁定，确保dirtyUserIDs和payloads不撕裂
		stats.LockRepository()
		defer stats.UnlockRepository()

		dirtySetExists, err := database.RDB.Exists(ctx, stats.DirtySetKey).Result()
		if err != nil {
			return false, fmt.Errorf("无法检查Redis中 DirtySetKey 是否存在: %w", err)
		}
		if dirtySetExists == 0 {
			return false, nil
		}

		// 1. 使用原子事务(TxPipeline)转移脏集合
		pipe := database.RDB.TxPipeline()
		dirtyUserIDsCmd := pipe.SMembers(ctx, stats.DirtySetKey)
		pipe.Rename(ctx, stats.DirtySetKey, stats.ProcessingDirtySetKey)
		if _, err := pipe.Exec(ctx); err != nil {
			return false, fmt.Errorf("无法从Redis原子地转移脏集合: %w", err)
		}
		// TxPipeline 成功后，transferred为true，代表 DirtySetKey 已被消费

		dirtyUserIDs, err = dirtyUserIDsCmd.Result()
		if err != nil {
			return true, fmt.Errorf("获取 dirtyUserIDs 的结果时失败: %w", err)
		}
		if len(dirtyUserIDs) > 0 {
			payloads, err = database.RDB.HMGet(ctx, stats.SnapshotKey, dirtyUserIDs...).Result()
			if err != nil {
				return true, fmt.Errorf("获取脏快照数据时失败: %w", err)
			}
		}

		return true, nil
	}()

	if transferred {
		defer func() {
			if err != nil {
				// 落盘失败：把processing集合合并回脏集合，等待下一轮重试
				pipe := database.RDB.TxPipeline()
				pipe.SUnionStore(ctx, stats.DirtySetKey, stats.DirtySetKey, stats.ProcessingDirtySetKey)
				pipe.Del(ctx, stats.ProcessingDirtySetKey)
				pipe.Exec(ctx)
			} else {
				database.RDB.Del(ctx, stats.ProcessingDirtySetKey)
			}
		}()
	}
	if err != nil {
		return err
	}
	if len(dirtyUserIDs) == 0 {
		return nil
	}

	// 2. 解析快照并组装持久化模型
	snapshots := make([]stats.UserSnapshot, 0, len(dirtyUserIDs))
	for i, userID := range dirtyUserIDs {
		if payloads[i] == nil {
			// 缓存中已经没有该用户的快照，跳过
			continue
		}
		var cached stats.CachedSnapshot
		if err := json.Unmarshal([]byte(payloads[i].(string)), &cached); err != nil {
			return fmt.Errorf("无法解析用户 %s 的快照: %w", userID, err)
		}
		snapshots = append(snapshots, stats.UserSnapshot{
			UserUUID:           userID,
			CurrentStreak:      cached.CurrentStreak,
			BestStreak:         cached.BestStreak,
			TotalDaysMetGoal:   cached.TotalDaysMetGoal,
			TotalWaterConsumed: cached.TotalWaterConsumed,
			LastActivityDate:   cached.LastActivityDate,
			ComputedDate:       cached.ComputedDate,
			Goal:               cached.Goal,
		})
	}
	if len(snapshots) == 0 {
		return nil
	}

	// 3. 在一个SQLite事务中批量upsert，并记录落盘时间
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_uuid"}},
			UpdateAll: true,
		}).Create(&snapshots).Error; err != nil {
			return fmt.Errorf("无法批量写入统计快照: %w", err)
		}
		return metadata.SetLastSnapshotFlush(tx, time.Now().Unix())
	})
	if err != nil {
		return err
	}

	fmt.Printf("落盘调度器: 成功落盘 %d 个统计快照。\n", len(snapshots))
	return nil
}
