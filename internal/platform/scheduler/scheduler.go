package scheduler

import (
	"fmt"
	"time"

	"github.com/SlpAus/hydrotrack-backend/internal/notification"
	"github.com/SlpAus/hydrotrack-backend/internal/platform/database"
	"github.com/SlpAus/hydrotrack-backend/internal/stats"
	"github.com/robfig/cron/v3"
)

// Manager 封装cron引擎，集中注册所有定时任务。
type Manager struct {
	engine *cron.Cron
}

func NewManager() *Manager {
	return &Manager{
		engine: cron.New(),
	}
}

// RegisterJobs 注册定时任务
func (m *Manager) RegisterJobs() error {
	// 每天零点：所有缓存中的快照都已跨天失效，统一重算一遍，
	// 让连续天数在没有新饮水记录时也能正确归零
	if _, err := m.engine.AddFunc("@daily", func() {
		if !database.IsRedisHealthy() {
			fmt.Println("定时任务: Redis不可用，跳过每日统计重算。")
			return
		}
		if err := stats.RefreshAllSnapshots(); err != nil {
			fmt.Printf("定时任务错误: 每日统计重算失败: %v\n", err)
		}
	}); err != nil {
		return fmt.Errorf("无法注册每日统计重算任务: %w", err)
	}

	// 每个整点：扫描一轮饮水提醒
	if _, err := m.engine.AddFunc("0 * * * *", func() {
		if err := notification.RunReminderSweep(time.Now()); err != nil {
			fmt.Printf("定时任务错误: 提醒扫描失败: %v\n", err)
		}
	}); err != nil {
		return fmt.Errorf("无法注册提醒扫描任务: %w", err)
	}

	return nil
}

func (m *Manager) Start() {
	fmt.Println("Cron 定时任务引擎启动")
	m.engine.Start()
}

// Stop 停止引擎并等待正在运行的任务结束。
func (m *Manager) Stop() {
	fmt.Println("Cron 定时任务引擎停止")
	<-m.engine.Stop().Done()
}
