package api

import (
	"github.com/SlpAus/hydrotrack-backend/internal/achievement"
	"github.com/SlpAus/hydrotrack-backend/internal/export"
	"github.com/SlpAus/hydrotrack-backend/internal/intake"
	"github.com/SlpAus/hydrotrack-backend/internal/notification"
	"github.com/SlpAus/hydrotrack-backend/internal/stats"
	"github.com/SlpAus/hydrotrack-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// 饮水记录相关的路由组
		waterRoutes := api.Group("/water")
		{
			// 写入路由在没有Cookie时签发新的匿名身份
			waterRoutes.POST("", user.EnsureUserCookieMiddleware(), intake.SubmitIntake)
			waterRoutes.DELETE("/:id", user.LoadUserMiddleware(), intake.DeleteIntake)
			waterRoutes.GET("/today", user.LoadUserMiddleware(), intake.GetToday)
			waterRoutes.GET("/history", user.LoadUserMiddleware(), intake.GetHistory)
		}

		// 统计与成就
		api.GET("/stats", user.LoadUserMiddleware(), stats.GetStats)
		api.GET("/achievements", user.LoadUserMiddleware(), achievement.GetAchievements)

		// 用户设置
		userRoutes := api.Group("/user")
		{
			userRoutes.GET("/goal", user.LoadUserMiddleware(), user.GetDailyGoal)
			userRoutes.PUT("/goal", user.EnsureUserCookieMiddleware(), user.UpdateDailyGoal)
			userRoutes.PUT("/profile", user.EnsureUserCookieMiddleware(), user.UpdateProfile)
		}

		// 通知与提醒设置
		notificationRoutes := api.Group("/notifications")
		{
			notificationRoutes.GET("", user.LoadUserMiddleware(), notification.GetNotifications)
			notificationRoutes.POST("/read", user.LoadUserMiddleware(), notification.MarkNotificationsRead)
			notificationRoutes.GET("/settings", user.LoadUserMiddleware(), notification.GetSettings)
			notificationRoutes.PUT("/settings", user.EnsureUserCookieMiddleware(), notification.UpdateSettings)
		}

		// 数据导出
		api.GET("/export/csv", user.LoadUserMiddleware(), export.ExportCSV)
	}
}
