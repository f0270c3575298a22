package notification

import (
	"errors"
	"net/http"

	"github.com/SlpAus/hydrotrack-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// NotificationResponse 定义了通知流的API响应结构
type NotificationResponse struct {
	ID        uint   `json:"id"`
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Read      bool   `json:"read"`
	CreatedAt int64  `json:"createdAtMs"`
}

// ReminderSettingsBody 同时用作提醒配置的请求体和响应体
type ReminderSettingsBody struct {
	Enabled       bool `json:"enabled"`
	IntervalHours int  `json:"intervalHours"`
	StartHour     int  `json:"startHour"`
	EndHour       int  `json:"endHour"`
}

// GetNotifications 返回当前用户的通知流（最新在前）和未读数量
func GetNotifications(c *gin.Context) {
	userID := c.GetString(user.UserIDKey)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少用户标识"})
		return
	}

	notifications, err := ListNotifications(userID, 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取通知失败"})
		return
	}
	unread, err := UnreadCount(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取通知失败"})
		return
	}

	responses := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, NotificationResponse{
			ID:        n.ID,
			Kind:      n.Kind,
			Title:     n.Title,
			Body:      n.Body,
			Read:      n.Read,
			CreatedAt: n.CreatedAt.UnixMilli(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": responses,
		"unreadCount":   unread,
	})
}

// MarkNotificationsRead 将当前用户的全部通知标记为已读
func MarkNotificationsRead(c *gin.Context) {
	userID := c.GetString(user.UserIDKey)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少用户标识"})
		return
	}

	if err := MarkAllRead(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "标记已读失败"})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSettings 返回当前用户的提醒配置
func GetSettings(c *gin.Context) {
	userID := c.GetString(user.UserIDKey)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少用户标识"})
		return
	}

	settings, err := GetReminderSettings(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取提醒配置失败"})
		return
	}

	c.JSON(http.StatusOK, ReminderSettingsBody{
		Enabled:       settings.Enabled,
		IntervalHours: settings.IntervalHours,
		StartHour:     settings.StartHour,
		EndHour:       settings.EndHour,
	})
}

// UpdateSettings 更新当前用户的提醒配置
func UpdateSettings(c *gin.Context) {
	userID := c.GetString(user.UserIDKey)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少用户标识"})
		return
	}

	var body ReminderSettingsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	// 首次写入前激活用户
	if err := user.ActivateUser(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "用户激活失败"})
		return
	}

	settings := &ReminderSettings{
		UserUUID:      userID,
		Enabled:       body.Enabled,
		IntervalHours: body.IntervalHours,
		StartHour:     body.StartHour,
		EndHour:       body.EndHour,
	}
	if err := SaveReminderSettings(settings); err != nil {
		if errors.Is(err, ErrInvalidSettings) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存提醒配置失败"})
		return
	}

	c.JSON(http.StatusOK, body)
}
