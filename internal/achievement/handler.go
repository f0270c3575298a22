package achievement

import (
	"net/http"

	"github.com/SlpAus/hydrotrack-backend/internal/stats"
	"github.com/SlpAus/hydrotrack-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// AchievementResponse 定义了成就列表的API响应结构
type AchievementResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Category    Category `json:"category"`
	Requirement int64    `json:"requirement"`
	Unlocked    bool     `json:"unlocked"`
	// UnlockedAtMs 仅在已解锁时非零
	UnlockedAtMs int64 `json:"unlockedAtMs,omitempty"`
	// Progress 是朝该成就的进度百分比，上限100
	Progress float64 `json:"progress"`
}

// GetAchievements 返回完整的成就目录，并标注当前用户的解锁状态和进度
func GetAchievements(c *gin.Context) {
	userID := c.GetString(user.UserIDKey)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少用户标识"})
		return
	}

	snapshot, err := stats.GetSnapshot(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取统计数据失败"})
		return
	}

	records, err := ListUnlockedRecords(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取成就解锁记录失败"})
		return
	}
	unlockedAt := make(map[string]int64, len(records))
	for _, r := range records {
		unlockedAt[r.AchievementID] = r.UnlockedAtMs
	}

	responses := make([]AchievementResponse, 0, len(catalog))
	for _, a := range Catalog() {
		ms, unlocked := unlockedAt[a.ID]
		responses = append(responses, AchievementResponse{
			ID:           a.ID,
			Title:        a.Title,
			Description:  a.Description,
			Icon:         a.Icon,
			Category:     a.Category,
			Requirement:  a.Requirement,
			Unlocked:     unlocked,
			UnlockedAtMs: ms,
			Progress:     ProgressTowards(a, snapshot),
		})
	}

	c.JSON(http.StatusOK, responses)
}
