package achievement

import (
	"github.com/SlpAus/hydrotrack-backend/internal/stats"
)

// metricFor 返回快照中与成就类别对应的考核值。
func metricFor(category Category, snapshot *stats.Snapshot) int64 {
	switch category {
	case CategoryStreak:
		// 取当前与历史最佳中的较大者：连续达标中断不应该
		// 剥夺用户已经达到过的里程碑
		best := snapshot.BestStreak
		if snapshot.CurrentStreak > best {
			best = snapshot.CurrentStreak
		}
		return int64(best)
	case CategoryConsumption:
		return snapshot.TotalWaterConsumed
	case CategoryConsistency:
		return int64(snapshot.TotalDaysMetGoal)
	}
	return 0
}

// Evaluate 对照成就目录，返回本次新越过门槛的成就。
// 它是(snapshot, alreadyUnlocked)的纯函数，没有任何隐藏状态：
// 同样的输入永远返回同样的结果，已解锁集合的持久化由调用方负责。
// 只要alreadyUnlocked被如实传入，已返回过的成就就不会再次返回。
func Evaluate(snapshot *stats.Snapshot, alreadyUnlocked map[string]bool) []Achievement {
	var newlyUnlocked []Achievement
	for _, a := range catalog {
		if alreadyUnlocked[a.ID] {
			continue
		}
		if metricFor(a.Category, snapshot) >= a.Requirement {
			newlyUnlocked = append(newlyUnlocked, a)
		}
	}
	return newlyUnlocked
}

// ProgressTowards 返回朝某个成就的进度百分比，上限100。
// 只读辅助函数，供展示层使用，没有副作用。
func ProgressTowards(a Achievement, snapshot *stats.Snapshot) float64 {
	if a.Requirement <= 0 {
		return 100
	}
	progress := float64(metricFor(a.Category, snapshot)) / float64(a.Requirement) * 100
	if progress > 100 {
		return 100
	}
	return progress
}
