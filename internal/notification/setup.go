package notification

import (
	"fmt"

	"github.com/SlpAus/hydrotrack-backend/internal/platform/database"
)

// migrateDB 负责自动迁移数据库表结构
func migrateDB() error {
	if err := database.DB.AutoMigrate(&Notification{}, &ReminderSettings{}); err != nil {
		return fmt.Errorf("无法迁移notification相关表: %w", err)
	}
	fmt.Println("Notification数据库表迁移成功。")
	return nil
}

// PrimeModule 是notification模块的初始化总入口。
// 通知流只存SQLite，没有需要预热的Redis缓存。
func PrimeModule() error {
	return migrateDB()
}
