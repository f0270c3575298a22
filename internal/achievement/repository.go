package achievement

import (
	"errors"
	"fmt"

	"github.com/SlpAus/hydrotrack-backend/internal/platform/database"
	"gorm.io/gorm"
)

// --- Redis 键名常量 ---

const (
	// UnlockedKeyPrefix 加上用户UUID构成一个 Redis Set 的键，
	// 缓存该用户已解锁的成就ID，用于评估前的快速查询。
	// Key: achievement:unlocked:<userUUID>
	// Member: 成就ID (e.g., "streak_7")
	UnlockedKeyPrefix = "achievement:unlocked:"
)

// unlockedKey 拼出指定用户的已解锁集合键名。
func unlockedKey(userID string) string {
	return UnlockedKeyPrefix + userID
}

// ListUnlockedIDs 返回用户已解锁的成就ID集合。
// Redis健康时优先读缓存；缓存为空或Redis不可用时回退到SQLite。
func ListUnlockedIDs(userID string) (map[string]bool, error) {
	if database.IsRedisHealthy() {
		members, err := database.RDB.SMembers(database.Ctx, unlockedKey(userID)).Result()
		if err == nil && len(members) > 0 {
			unlocked := make(map[string]bool, len(members))
			for _, id := range members {
				unlocked[id] = true
			}
			return unlocked, nil
		}
		// 集合为空时无法区分"没有解锁记录"和"缓存未预热"，
		// 统一回源SQLite确认
	}
	return listUnlockedIDsFromDB(userID)
}

// listUnlockedIDsFromDB 直接从SQLite读取解锁记录。
func listUnlockedIDsFromDB(userID string) (map[string]bool, error) {
	var records []UnlockedAchievement
	if err := database.DB.Where("user_uuid = ?", userID).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("无法读取用户 %s 的成就解锁记录: %w", userID, err)
	}
	unlocked := make(map[string]bool, len(records))
	for _, r := range records {
		unlocked[r.AchievementID] = true
	}
	return unlocked, nil
}

// ListUnlockedRecords 返回用户的全部解锁记录（带解锁时间）。
func ListUnlockedRecords(userID string) ([]UnlockedAchievement, error) {
	var records []UnlockedAchievement
	err := database.DB.Where("user_uuid = ?", userID).Order("unlocked_at_ms asc").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("无法读取用户 %s 的成就解锁记录: %w", userID, err)
	}
	return records, nil
}

// recordUnlocked 持久化一条解锁记录，并同步Redis缓存。
// SQLite是权威存储：唯一索引保证同一成就不会被解锁两次，
// 撞到唯一索引说明记录已存在，按幂等成功处理。
func recordUnlocked(userID, achievementID string, unlockedAtMs int64) error {
	record := UnlockedAchievement{
		UserUUID:      userID,
		AchievementID: achievementID,
		UnlockedAtMs:  unlockedAtMs,
	}
	if err := database.DB.Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return fmt.Errorf("无法写入成就解锁记录 %s/%s: %w", userID, achievementID, err)
	}

	if database.IsRedisHealthy() {
		if err := database.RDB.SAdd(database.Ctx, unlockedKey(userID), achievementID).Err(); err != nil {
			// 缓存写入失败不回滚SQLite：解锁记录以数据库为准，
			// 缓存会在下一次预热时重建
			fmt.Printf("警告: 无法更新用户 %s 的成就缓存: %v\n", userID, err)
		}
	}
	return nil
}
