package startup

import (
	"context"
	"fmt"
	"time"

	"github.com/SlpAus/hydrotrack-backend/internal/achievement"
	"github.com/SlpAus/hydrotrack-backend/internal/intake"
	"github.com/SlpAus/hydrotrack-backend/internal/notification"
	"github.com/SlpAus/hydrotrack-backend/internal/platform/backup"
	"github.com/SlpAus/hydrotrack-backend/internal/platform/metadata"
	"github.com/SlpAus/hydrotrack-backend/internal/stats"
	"github.com/SlpAus/hydrotrack-backend/internal/user"
)

// InitializeApplication 是应用首次启动时执行的总入口
func InitializeApplication() error {
	fmt.Println("开始应用首次初始化...")

	if err := metadata.PrimeCachedDB(); err != nil {
		return err
	}
	if err := user.PrimeCachedDB(); err != nil {
		return err
	}
	if err := intake.PrimeModule(); err != nil {
		return err
	}
	if err := stats.PrimeCachedDB(); err != nil {
		return err
	}
	if err := achievement.PrimeCachedDB(); err != nil {
		return err
	}
	if err := notification.PrimeModule(); err != nil {
		return err
	}

	wireModules()

	fmt.Println("应用初始化完成！")
	return nil
}

// wireModules 在启动时注入各模块之间的数据源和回调。
// 依赖方向始终是 startup -> 各模块，模块之间不直接引用。
func wireModules() {
	// 统计引擎从intake读取事件日志，从user读取目标和用户列表
	stats.Configure(intake.LoadStatsEvents, user.GetGoal, user.ListActivatedUUIDs)

	// 提醒扫描需要用户列表、目标和当日饮水量
	notification.Configure(user.ListActivatedUUIDs, user.GetGoal, func(userID string) (int64, error) {
		return intake.SumAmountByDate(userID, stats.DateOf(time.Now()))
	})

	// 目标变更后立刻重算统计并补发可能解锁的成就
	user.OnGoalChanged(func(userID string) {
		snapshot, err := stats.RefreshSnapshot(userID)
		if err != nil {
			fmt.Printf("警告: 目标变更后重算用户 %s 的统计失败: %v\n", userID, err)
			return
		}
		unlocked, err := achievement.EvaluateAndUnlock(userID, snapshot)
		if err != nil {
			fmt.Printf("警告: 目标变更后评估用户 %s 的成就失败: %v\n", userID, err)
			return
		}
		if len(unlocked) > 0 {
			titles := make([]string, 0, len(unlocked))
			for _, a := range unlocked {
				titles = append(titles, a.Title)
			}
			if err := notification.PushAchievementUnlocks(userID, titles); err != nil {
				fmt.Printf("警告: 用户 %s 的成就通知写入失败: %v\n", userID, err)
			}
		}
	})
}

// RebuildCache 是一个专门用于在运行时热重建Redis缓存的函数
func RebuildCache() error {
	fmt.Println("开始缓存热重建...")

	if err := user.WarmupCache(); err != nil {
		return err
	}

	err := func() error {
		stats.LockRepository()
		defer stats.UnlockRepository()
		return stats.WarmupCache()
	}()
	if err != nil {
		return err
	}

	if err := achievement.WarmupCache(); err != nil {
		return err
	}

	// 触发一次新的落盘，使SQLite备份与重建后的缓存对齐
	fmt.Println("缓存热重建完成，正在触发一次快照落盘...")
	if err := backup.FlushSnapshotsToDB(context.Background()); err != nil {
		fmt.Printf("警告: 缓存热重建后的快照落盘失败: %v\n", err)
	}

	return nil
}
