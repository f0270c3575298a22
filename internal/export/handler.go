package export

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SlpAus/hydrotrack-backend/internal/intake"
	"github.com/SlpAus/hydrotrack-backend/internal/stats"
	"github.com/SlpAus/hydrotrack-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// ExportCSV 生成并下载当前用户的CSV报告。
// 通过 ?stats=false / ?logs=false 可以裁剪对应区块。
func ExportCSV(c *gin.Context) {
	userID := c.GetString(user.UserIDKey)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少用户标识"})
		return
	}

	opts := Options{
		IncludeStats: c.DefaultQuery("stats", "true") != "false",
		IncludeLogs:  c.DefaultQuery("logs", "true") != "false",
	}

	events, err := intake.ListEvents(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取饮水记录失败"})
		return
	}

	var snapshot *stats.Snapshot
	if opts.IncludeStats {
		snapshot, err = stats.GetSnapshot(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "获取统计数据失败"})
			return
		}
	}

	goal, err := user.GetGoal(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取每日目标失败"})
		return
	}

	userName := ""
	if u, err := user.GetUser(userID); err == nil {
		userName = u.Name
	}

	now := time.Now()
	csvContent := BuildCSV(events, snapshot, goal, userName, opts, now)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", Filename(now)))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csvContent))
}
