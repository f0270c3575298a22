package achievement

import (
	"time"

	"github.com/SlpAus/hydrotrack-backend/internal/stats"
)

// EvaluateAndUnlock 用最新的统计快照做一次成就评估，
// 并持久化所有新越过门槛的成就。返回本次新解锁的成就，
// 向用户发出通知由调用方负责。
// 评估器本身无状态，幂等性来自先查已解锁集合再评估。
func EvaluateAndUnlock(userID string, snapshot *stats.Snapshot) ([]Achievement, error) {
	alreadyUnlocked, err := ListUnlockedIDs(userID)
	if err != nil {
		return nil, err
	}

	newlyUnlocked := Evaluate(snapshot, alreadyUnlocked)
	if len(newlyUnlocked) == 0 {
		return nil, nil
	}

	unlockedAtMs := time.Now().UnixMilli()
	for _, a := range newlyUnlocked {
		if err := recordUnlocked(userID, a.ID, unlockedAtMs); err != nil {
			return nil, err
		}
	}
	return newlyUnlocked, nil
}
