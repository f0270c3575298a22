package user

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MutationHook 是目标值变更后的回调。
// 统计重算和成就评估由startup在启动时注册，user模块自身
// 不依赖任何下游模块。
type MutationHook func(userID string)

var goalChangedHooks []MutationHook

// OnGoalChanged 注册一个目标变更后的回调。
func OnGoalChanged(hook MutationHook) {
	goalChangedHooks = append(goalChangedHooks, hook)
}

func notifyGoalChanged(userID string) {
	for _, hook := range goalChangedHooks {
		hook(userID)
	}
}

// --- API请求与响应模型 ---

type GoalResponse struct {
	Goal int `json:"goal"`
}

type UpdateGoalRequestBody struct {
	Goal int `json:"goal" binding:"required"`
}

type UpdateProfileRequestBody struct {
	Name string `json:"name" binding:"required,max=64"`
}

// --- 控制器函数 ---

// GetDailyGoal 返回当前用户的每日目标
func GetDailyGoal(c *gin.Context) {
	userID := c.GetString(UserIDKey)
	goal, err := GetGoal(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取每日目标失败"})
		return
	}
	c.JSON(http.StatusOK, GoalResponse{Goal: goal})
}

// UpdateDailyGoal 更新当前用户的每日目标
// 修改目标后，历史达标判定会随之改变，所以需要触发统计重算。
func UpdateDailyGoal(c *gin.Context) {
	userID := c.GetString(UserIDKey)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少用户标识"})
		return
	}

	var body UpdateGoalRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}
	if body.Goal <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrInvalidGoal.Error()})
		return
	}

	// 首次写入前激活用户
	if err := ActivateUser(userID); err != nil {
		fmt.Printf("激活用户 %s 失败: %v\n", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "用户激活失败"})
		return
	}

	if err := UpdateGoal(userID, body.Goal); err != nil {
		if errors.Is(err, ErrInvalidGoal) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新每日目标失败"})
		return
	}

	notifyGoalChanged(userID)
	c.JSON(http.StatusOK, GoalResponse{Goal: body.Goal})
}

// UpdateProfile 更新当前用户的显示名称
func UpdateProfile(c *gin.Context) {
	userID := c.GetString(UserIDKey)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少用户标识"})
		return
	}

	var body UpdateProfileRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	if err := ActivateUser(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "用户激活失败"})
		return
	}

	if err := UpdateName(userID, body.Name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "找不到用户"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新显示名称失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"name": body.Name})
}
