package intake

import (
	"errors"
	"testing"
	"time"
)

func TestLogIntake_RejectsNonPositiveAmount(t *testing.T) {
	for _, amount := range []int{0, -1, -500} {
		if _, err := LogIntake("some-user", amount); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("amount=%d: err = %v, want ErrInvalidAmount", amount, err)
		}
	}
}

func TestHistoryStartDate_WindowIncludesToday(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		days int
		want string
	}{
		{1, "2026-03-10"}, // 窗口只含今天
		{7, "2026-03-04"}, // 今天加上之前6天，共7个日历日
		{30, "2026-02-09"},
	}
	for _, tt := range tests {
		if got := historyStartDate(now, tt.days); got != tt.want {
			t.Errorf("historyStartDate(days=%d) = %q, want %q", tt.days, got, tt.want)
		}
	}
}

func TestToStatsEvents(t *testing.T) {
	events := []IntakeEvent{
		{EventID: "a", AmountMl: 250, TimestampMs: 1000, Date: "2026-03-09"},
		{EventID: "b", AmountMl: 500, TimestampMs: 2000, Date: "2026-03-10"},
	}
	converted := ToStatsEvents(events)
	if len(converted) != 2 {
		t.Fatalf("len = %d, want 2", len(converted))
	}
	for i, ev := range converted {
		if ev.ID != events[i].EventID {
			t.Errorf("converted[%d].ID = %q, want %q", i, ev.ID, events[i].EventID)
		}
		if ev.AmountMl != events[i].AmountMl {
			t.Errorf("converted[%d].AmountMl = %d, want %d", i, ev.AmountMl, events[i].AmountMl)
		}
		if ev.Date != events[i].Date {
			t.Errorf("converted[%d].Date = %q, want %q", i, ev.Date, events[i].Date)
		}
	}
}
