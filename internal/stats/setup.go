package stats

import (
	"encoding/json"
	"fmt"

	"github.com/SlpAus/hydrotrack-backend/internal/platform/database"
)

// migrateDB 负责自动迁移数据库表结构
func migrateDB() error {
	if err := database.DB.AutoMigrate(&UserSnapshot{}); err != nil {
		return fmt.Errorf("无法迁移user_snapshots表: %w", err)
	}
	fmt.Println("Stats数据库表迁移成功。")
	return nil
}

// WarmupCache 从SQLite加载所有落盘的快照，并预热到Redis的Hash中。
// 跨天或目标变更导致的失效由读取路径处理，这里只负责恢复数据。
func WarmupCache() error {
	var snapshots []UserSnapshot
	if err := database.DB.Find(&snapshots).Error; err != nil {
		return fmt.Errorf("无法从SQLite读取统计快照: %w", err)
	}

	if len(snapshots) == 0 {
		fmt.Println("无现有快照数据，无需预热统计缓存。")
		return nil
	}

	fields := make(map[string]interface{}, len(snapshots))
	for _, s := range snapshots {
		cached := CachedSnapshot{
			Snapshot: Snapshot{
				CurrentStreak:      s.CurrentStreak,
				BestStreak:         s.BestStreak,
				TotalDaysMetGoal:   s.TotalDaysMetGoal,
				TotalWaterConsumed: s.TotalWaterConsumed,
				LastActivityDate:   s.LastActivityDate,
			},
			ComputedDate: s.ComputedDate,
			Goal:         s.Goal,
		}
		payload, err := json.Marshal(cached)
		if err != nil {
			return fmt.Errorf("无法序列化用户 %s 的快照: %w", s.UserUUID, err)
		}
		fields[s.UserUUID] = payload
	}

	// 先清空旧的缓存，确保数据一致性
	pipe := database.RDB.Pipeline()
	pipe.Del(database.Ctx, SnapshotKey)
	pipe.HSet(database.Ctx, SnapshotKey, fields)
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("预热统计快照到Redis失败: %w", err)
	}

	fmt.Printf("成功预热 %d 个统计快照到Redis。\n", len(snapshots))
	return nil
}

// PrimeCachedDB 是stats模块的初始化总入口
func PrimeCachedDB() error {
	if err := migrateDB(); err != nil {
		return err
	}
	if err := WarmupCache(); err != nil {
		return err
	}
	return nil
}
