package intake

import (
	"fmt"

	"github.com/SlpAus/hydrotrack-backend/internal/platform/database"
)

// migrateDB 负责自动迁移数据库表结构
func migrateDB() error {
	if err := database.DB.AutoMigrate(&IntakeEvent{}); err != nil {
		return fmt.Errorf("无法迁移intake_events表: %w", err)
	}
	fmt.Println("Intake数据库表迁移成功。")
	return nil
}

// PrimeModule 是intake模块的初始化总入口。
// 事件日志是权威数据，只存SQLite，不进Redis。
func PrimeModule() error {
	return migrateDB()
}
