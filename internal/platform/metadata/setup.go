package metadata

import (
	"fmt"

	"github.com/SlpAus/hydrotrack-backend/internal/platform/database"
)

// PrimeCachedDB 负责迁移metadata表并写入基线版本。
func PrimeCachedDB() error {
	if err := database.DB.AutoMigrate(&Metadata{}); err != nil {
		return fmt.Errorf("无法迁移metadata表: %w", err)
	}

	version, err := GetValue(database.DB, SchemaVersionKey)
	if err != nil {
		return err
	}
	if version == "" {
		if err := SetValue(database.DB, SchemaVersionKey, "1"); err != nil {
			return err
		}
	}

	fmt.Println("Metadata数据库表迁移成功。")
	return nil
}
