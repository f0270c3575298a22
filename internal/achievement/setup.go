package achievement

import (
	"fmt"

	"github.com/SlpAus/hydrotrack-backend/internal/platform/database"
)

// migrateDB 负责自动迁移数据库表结构
func migrateDB() error {
	if err := database.DB.AutoMigrate(&UnlockedAchievement{}); err != nil {
		return fmt.Errorf("无法迁移unlocked_achievements表: %w", err)
	}
	fmt.Println("Achievement数据库表迁移成功。")
	return nil
}

// WarmupCache 从SQLite加载所有解锁记录，并按用户预热到Redis的Set中
func WarmupCache() error {
	var records []UnlockedAchievement
	if err := database.DB.Find(&records).Error; err != nil {
		return fmt.Errorf("无法从SQLite读取成就解锁记录: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("无现有解锁记录，无需预热成就缓存。")
		return nil
	}

	byUser := make(map[string][]interface{})
	for _, r := range records {
		byUser[r.UserUUID] = append(byUser[r.UserUUID], r.AchievementID)
	}

	pipe := database.RDB.Pipeline()
	for userID, ids := range byUser {
		// 先清空旧的缓存，确保数据一致性
		pipe.Del(database.Ctx, unlockedKey(userID))
		pipe.SAdd(database.Ctx, unlockedKey(userID), ids...)
	}
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("预热成就解锁记录到Redis失败: %w", err)
	}

	fmt.Printf("成功预热 %d 个用户的成就解锁记录到Redis。\n", len(byUser))
	return nil
}

// PrimeCachedDB 是achievement模块的初始化总入口
func PrimeCachedDB() error {
	if err := migrateDB(); err != nil {
		return err
	}
	if err := WarmupCache(); err != nil {
		return err
	}
	return nil
}
