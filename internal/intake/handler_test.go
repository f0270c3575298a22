package intake

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestLogIntakeAPIResponse_DegradedOmitsStats(t *testing.T) {
	// 统计更新失败时的降级响应：事件和今日总量照常返回，
	// stats字段整体缺省而不是null或零值快照。
	degraded := LogIntakeAPIResponse{
		Event:         IntakeEventResponse{ID: "e1", AmountMl: 250, TimestampMs: 1000, Date: "2026-03-10"},
		TodayTotal:    750,
		NewlyUnlocked: []string{},
	}
	payload, err := json.Marshal(degraded)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	body := string(payload)
	if strings.Contains(body, `"stats"`) {
		t.Errorf("degraded response should omit stats, got: %s", body)
	}
	if !strings.Contains(body, `"todayTotal":750`) {
		t.Errorf("degraded response should carry the real today total, got: %s", body)
	}
	if !strings.Contains(body, `"newlyUnlocked":[]`) {
		t.Errorf("degraded response should carry an empty unlock list, got: %s", body)
	}
}
