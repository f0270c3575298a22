package achievement

import (
	"path/filepath"
	"testing"

	"github.com/SlpAus/hydrotrack-backend/internal/platform/config"
	"github.com/SlpAus/hydrotrack-backend/internal/platform/database"
)

// setupTestDB 用临时文件初始化一个真实的SQLite连接并完成表迁移。
// Redis被标记为不可用，解锁记录的缓存同步会被跳过。
func setupTestDB(t *testing.T) {
	t.Helper()
	database.InitDB(config.SqliteConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	if err := migrateDB(); err != nil {
		t.Fatalf("migrateDB error: %v", err)
	}
	database.UpdateStatus(false, "")
}

func TestRecordUnlocked_DuplicateIsIdempotent(t *testing.T) {
	setupTestDB(t)

	if err := recordUnlocked("user-1", "streak_3", 1000); err != nil {
		t.Fatalf("first unlock insert failed: %v", err)
	}
	// 同一成就的第二次写入会撞到唯一索引，必须按幂等成功处理
	if err := recordUnlocked("user-1", "streak_3", 2000); err != nil {
		t.Fatalf("duplicate unlock insert should succeed idempotently, got: %v", err)
	}

	var count int64
	if err := database.DB.Model(&UnlockedAchievement{}).
		Where("user_uuid = ? AND achievement_id = ?", "user-1", "streak_3").
		Count(&count).Error; err != nil {
		t.Fatalf("count error: %v", err)
	}
	if count != 1 {
		t.Errorf("unlock records = %d, want exactly 1", count)
	}

	// 保留首次解锁的时间戳
	records, err := ListUnlockedRecords("user-1")
	if err != nil {
		t.Fatalf("ListUnlockedRecords error: %v", err)
	}
	if len(records) != 1 || records[0].UnlockedAtMs != 1000 {
		t.Errorf("records = %+v, want one record with UnlockedAtMs=1000", records)
	}
}

func TestRecordUnlocked_DistinctAchievements(t *testing.T) {
	setupTestDB(t)

	for _, id := range []string{"streak_3", "total_50L"} {
		if err := recordUnlocked("user-1", id, 1000); err != nil {
			t.Fatalf("unlock %s failed: %v", id, err)
		}
	}
	unlocked, err := ListUnlockedIDs("user-1")
	if err != nil {
		t.Fatalf("ListUnlockedIDs error: %v", err)
	}
	if !unlocked["streak_3"] || !unlocked["total_50L"] {
		t.Errorf("unlocked = %v, want streak_3 and total_50L", unlocked)
	}
}
