package user

import (
	"errors"
	"fmt"

	"github.com/SlpAus/hydrotrack-backend/internal/platform/config"
	"github.com/SlpAus/hydrotrack-backend/internal/platform/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInvalidGoal 表示请求设置的每日目标不是正整数。
var ErrInvalidGoal = errors.New("每日目标必须为正整数")

// IsValidUUID 检查一个字符串是否是合法的UUID格式。
func IsValidUUID(u string) bool {
	_, err := uuid.Parse(u)
	return err == nil
}

// CreateProvisionalUser 生成一个临时的、尚未持久化的新用户UUID。
// 这个UUID将被设置到cookie中，但此时尚未被"激活"。
func CreateProvisionalUser() (string, error) {
	newUUID, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("无法生成UUID v7: %w", err)
	}
	return newUUID.String(), nil
}

// IsUserActivated 检查一个给定的UUID是否已经被激活（即存在于我们的持久化系统中）。
// 它只查询Redis缓存，以获得最高性能。
func IsUserActivated(uuidStr string) (bool, error) {
	if uuidStr == "" {
		return false, nil
	}
	exists, err := database.RDB.SIsMember(database.Ctx, KnownUsersKey, uuidStr).Result()
	if err != nil {
		return false, fmt.Errorf("检查Redis用户缓存时出错: %w", err)
	}
	return exists, nil
}

// ActivateUser 将一个临时的UUID正式持久化到数据库和缓存中。
// 新用户的每日目标取配置中的默认值。
// 这个操作是原子性的，如果缓存写入失败，数据库写入将被回滚。
func ActivateUser(uuidStr string) error {
	// 首先检查该用户是否已经被激活，避免重复写入
	activated, err := IsUserActivated(uuidStr)
	if err != nil {
		return err
	}
	if activated {
		return nil // 用户已存在，无需操作
	}

	// 开启一个SQLite事务
	tx := database.DB.Begin()
	if tx.Error != nil {
		return fmt.Errorf("无法开始数据库事务: %w", tx.Error)
	}
	// 使用defer来确保事务在函数结束时总能被处理（提交或回滚）
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback() // 如果发生panic，回滚事务
		}
	}()

	// 在事务中创建数据库记录
	newUser := User{UUID: uuidStr, DailyGoal: config.Cfg.Tracker.DefaultGoalMl}
	if err := tx.Create(&newUser).Error; err != nil {
		tx.Rollback()
		// 如果是因为记录已存在而出错，这不是一个真正的错误
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return fmt.Errorf("无法在SQLite中创建新用户: %w", err)
	}

	// 尝试将新UUID添加到Redis缓存中
	if err := database.RDB.SAdd(database.Ctx, KnownUsersKey, uuidStr).Err(); err != nil {
		// 如果Redis写入失败，回滚SQLite的写入，保证数据一致性
		tx.Rollback()
		return fmt.Errorf("无法将新用户 %s 添加到Redis缓存: %w", uuidStr, err)
	}

	// 所有操作都成功，提交事务
	return tx.Commit().Error
}

// GetUser 按UUID读取用户记录。
func GetUser(uuidStr string) (*User, error) {
	var u User
	if err := database.DB.Where("uuid = ?", uuidStr).First(&u).Error; err != nil {
		return nil, fmt.Errorf("无法读取用户 %s: %w", uuidStr, err)
	}
	return &u, nil
}

// GetGoal 返回用户当前的每日目标。
// 用户尚未激活时返回配置的默认目标，保证统计引擎永远拿到正值。
func GetGoal(uuidStr string) (int, error) {
	var u User
	err := database.DB.Select("daily_goal").Where("uuid = ?", uuidStr).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return config.Cfg.Tracker.DefaultGoalMl, nil
		}
		return 0, fmt.Errorf("无法读取用户 %s 的每日目标: %w", uuidStr, err)
	}
	return u.DailyGoal, nil
}

// UpdateGoal 更新用户的每日目标。目标必须为正整数。
func UpdateGoal(uuidStr string, goal int) error {
	if goal <= 0 {
		return ErrInvalidGoal
	}
	result := database.DB.Model(&User{}).Where("uuid = ?", uuidStr).Update("daily_goal", goal)
	if result.Error != nil {
		return fmt.Errorf("无法更新用户 %s 的每日目标: %w", uuidStr, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateName 更新用户的显示名称。
func UpdateName(uuidStr string, name string) error {
	result := database.DB.Model(&User{}).Where("uuid = ?", uuidStr).Update("name", name)
	if result.Error != nil {
		return fmt.Errorf("无法更新用户 %s 的显示名称: %w", uuidStr, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListActivatedUUIDs 返回所有已激活用户的UUID，供后台任务遍历。
func ListActivatedUUIDs() ([]string, error) {
	var users []User
	if err := database.DB.Select("uuid").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("无法从SQLite读取用户UUID: %w", err)
	}
	uuids := make([]string, len(users))
	for i, u := range users {
		uuids[i] = u.UUID
	}
	return uuids, nil
}
