package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SlpAus/hydrotrack-backend/api"
	"github.com/SlpAus/hydrotrack-backend/internal/platform/backup"
	"github.com/SlpAus/hydrotrack-backend/internal/platform/config"
	"github.com/SlpAus/hydrotrack-backend/internal/platform/database"
	"github.com/SlpAus/hydrotrack-backend/internal/platform/health"
	"github.com/SlpAus/hydrotrack-backend/internal/platform/scheduler"
	"github.com/SlpAus/hydrotrack-backend/internal/platform/shutdown"
	"github.com/SlpAus/hydrotrack-backend/internal/platform/startup"
	"github.com/SlpAus/hydrotrack-backend/pkg/lifecycle"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("无法加载配置: %v", err))
	}

	database.InitDB(cfg.Database.Sqlite)
	database.InitRedis(cfg.Database.Redis)

	// 阻塞式获取初始Run ID
	health.InitializeRunID()

	// 执行应用首次启动初始化流程
	if err := startup.InitializeApplication(); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 阻塞式执行一次启动后健康检查
	fmt.Println("正在执行启动后健康检查...")
	health.PerformCheck()

	// 创建两阶段停机的生命周期管理器
	gracefulManager := lifecycle.NewManager()
	forcefulManager := lifecycle.NewManager()

	// 异步启动后台服务
	healthHandle, err := forcefulManager.NewServiceHandle("redis-health-checker")
	if err != nil {
		panic(fmt.Sprintf("无法创建健康检查器的生命周期句柄: %v", err))
	}
	go health.StartRedisHealthCheck(healthHandle)

	flushHandle, err := gracefulManager.NewServiceHandle("snapshot-flusher")
	if err != nil {
		panic(fmt.Sprintf("无法创建落盘调度器的生命周期句柄: %v", err))
	}
	go backup.StartFlushScheduler(flushHandle)

	// 启动定时任务引擎
	cronManager := scheduler.NewManager()
	if err := cronManager.RegisterJobs(); err != nil {
		panic(fmt.Sprintf("无法注册定时任务: %v", err))
	}
	cronManager.Start()

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic("Failed to start server: " + err.Error())
		}
	}()

	// 阻塞等待停机信号，并编排完整的停机流程
	coordinator := shutdown.NewCoordinator(gracefulManager, forcefulManager, cronManager.Stop)
	coordinator.ListenForSignalsAndShutdown(server)
}
