package intake

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/SlpAus/hydrotrack-backend/internal/achievement"
	"github.com/SlpAus/hydrotrack-backend/internal/notification"
	"github.com/SlpAus/hydrotrack-backend/internal/platform/config"
	"github.com/SlpAus/hydrotrack-backend/internal/stats"
	"github.com/SlpAus/hydrotrack-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// --- API请求与响应模型 ---

// LogIntakeRequestBody 定义了记录饮水时，请求体的JSON结构
type LogIntakeRequestBody struct {
	AmountMl int `json:"amount" binding:"required"`
}

// IntakeEventResponse 是单条饮水记录的API响应结构
type IntakeEventResponse struct {
	ID          string `json:"id"`
	AmountMl    int    `json:"amount"`
	TimestampMs int64  `json:"timestamp"`
	Date        string `json:"date"`
}

// LogIntakeAPIResponse 是记录饮水后的完整响应：
// 新事件、今日总量、最新快照和本次新解锁的成就ID
type LogIntakeAPIResponse struct {
	Event      IntakeEventResponse `json:"event"`
	TodayTotal int64               `json:"todayTotal"`
	// Stats 在统计更新失败的降级响应中整体缺省
	Stats         *stats.Snapshot `json:"stats,omitempty"`
	NewlyUnlocked []string        `json:"newlyUnlocked"`
}

func formatEvent(event *IntakeEvent) IntakeEventResponse {
	return IntakeEventResponse{
		ID:          event.EventID,
		AmountMl:    event.AmountMl,
		TimestampMs: event.TimestampMs,
		Date:        event.Date,
	}
}

// refreshAndEvaluate 在事件日志变更后重算快照、评估成就并推送通知。
// 成就记录的持久化在achievement服务内完成，通知推送属于调用方职责。
func refreshAndEvaluate(userID string) (*stats.Snapshot, []string, error) {
	snapshot, err := stats.RefreshSnapshot(userID)
	if err != nil {
		return nil, nil, err
	}

	newlyUnlocked, err := achievement.EvaluateAndUnlock(userID, snapshot)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]string, 0, len(newlyUnlocked))
	titles := make([]string, 0, len(newlyUnlocked))
	for _, a := range newlyUnlocked {
		ids = append(ids, a.ID)
		titles = append(titles, a.Title)
	}
	if err := notification.PushAchievementUnlocks(userID, titles); err != nil {
		// 通知失败不影响已经完成的记录和解锁
		fmt.Printf("警告: 推送成就通知失败: %v\n", err)
	}
	return snapshot, ids, nil
}

// --- 控制器函数 ---

// SubmitIntake 处理一次饮水记录的提交
func SubmitIntake(c *gin.Context) {
	userID := c.GetString(user.UserIDKey)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少用户标识"})
		return
	}

	// 1. 绑定并验证请求体
	var body LogIntakeRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}
	if body.AmountMl <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrInvalidAmount.Error()})
		return
	}

	// 2. 首次写入前激活用户
	if err := user.ActivateUser(userID); err != nil {
		fmt.Printf("激活用户 %s 失败: %v\n", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "用户激活失败"})
		return
	}

	// 3. 以原子的单行插入追加事件
	event, err := LogIntake(userID, body.AmountMl)
	if err != nil {
		if errors.Is(err, ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "记录饮水失败"})
		return
	}

	// 4. 事件已落库，今日总量直接从事件日志统计，不依赖后续的快照更新
	todayTotal, err := SumAmountByDate(userID, event.Date)
	if err != nil {
		todayTotal = int64(event.AmountMl)
	}

	// 5. 事件日志变更后，全量重算统计并评估成就
	snapshot, newlyUnlocked, err := refreshAndEvaluate(userID)
	if err != nil {
		// 事件已经落库，统计失败不应该让客户端误以为记录丢失
		fmt.Printf("警告: 用户 %s 的统计更新失败: %v\n", userID, err)
		c.JSON(http.StatusOK, LogIntakeAPIResponse{
			Event:         formatEvent(event),
			TodayTotal:    todayTotal,
			NewlyUnlocked: []string{},
		})
		return
	}

	c.JSON(http.StatusOK, LogIntakeAPIResponse{
		Event:         formatEvent(event),
		TodayTotal:    todayTotal,
		Stats:         snapshot,
		NewlyUnlocked: newlyUnlocked,
	})
}

// DeleteIntake 永久删除一条饮水记录
func DeleteIntake(c *gin.Context) {
	userID := c.GetString(user.UserIDKey)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少用户标识"})
		return
	}

	eventID := c.Param("id")
	if err := RemoveIntake(userID, eventID); err != nil {
		if errors.Is(err, ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("找不到ID为 %s 的饮水记录", eventID)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除饮水记录失败"})
		return
	}

	// 删除后同样需要重算；成就是单向的，评估不会撤销已解锁记录
	snapshot, _, err := refreshAndEvaluate(userID)
	if err != nil {
		fmt.Printf("警告: 用户 %s 的统计更新失败: %v\n", userID, err)
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": snapshot})
}

// GetToday 返回今天的全部饮水记录和总量
func GetToday(c *gin.Context) {
	userID := c.GetString(user.UserIDKey)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少用户标识"})
		return
	}

	events, total, err := TodaySummary(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取今日记录失败"})
		return
	}

	goal, err := user.GetGoal(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取每日目标失败"})
		return
	}

	responses := make([]IntakeEventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, formatEvent(&events[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"events":  responses,
		"total":   total,
		"goal":    goal,
		"goalMet": total >= int64(goal),
	})
}

// GetHistory 返回最近N天的每日聚合（默认天数取自配置）
func GetHistory(c *gin.Context) {
	userID := c.GetString(user.UserIDKey)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少用户标识"})
		return
	}

	days := config.Cfg.Tracker.HistoryDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 365 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("无效的天数参数: %s", raw)})
			return
		}
		days = parsed
	}

	aggregates, err := History(userID, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取历史记录失败"})
		return
	}

	c.JSON(http.StatusOK, aggregates)
}
