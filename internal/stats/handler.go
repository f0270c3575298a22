package stats

import (
	"net/http"

	"github.com/SlpAus/hydrotrack-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// SnapshotResponse 定义了统计快照的API响应结构
type SnapshotResponse struct {
	CurrentStreak      int    `json:"currentStreak"`
	BestStreak         int    `json:"bestStreak"`
	TotalDaysMetGoal   int    `json:"totalDaysMetGoal"`
	TotalWaterConsumed int64  `json:"totalWaterConsumed"`
	LastActivityDate   string `json:"lastActivityDate"`
}

// GetStats 返回当前用户的统计快照
func GetStats(c *gin.Context) {
	userID := c.GetString(user.UserIDKey)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少用户标识"})
		return
	}

	snapshot, err := GetSnapshot(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取统计数据失败"})
		return
	}

	c.JSON(http.StatusOK, SnapshotResponse{
		CurrentStreak:      snapshot.CurrentStreak,
		BestStreak:         snapshot.BestStreak,
		TotalDaysMetGoal:   snapshot.TotalDaysMetGoal,
		TotalWaterConsumed: snapshot.TotalWaterConsumed,
		LastActivityDate:   snapshot.LastActivityDate,
	})
}
