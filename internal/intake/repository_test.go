package intake

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/SlpAus/hydrotrack-backend/internal/platform/config"
	"github.com/SlpAus/hydrotrack-backend/internal/platform/database"
)

// setupTestDB 用临时文件初始化一个真实的SQLite连接并完成表迁移。
func setupTestDB(t *testing.T) {
	t.Helper()
	database.InitDB(config.SqliteConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	if err := migrateDB(); err != nil {
		t.Fatalf("migrateDB error: %v", err)
	}
}

func TestSumAmountByDate(t *testing.T) {
	setupTestDB(t)

	for i, ev := range []IntakeEvent{
		{EventID: "a", UserUUID: "user-1", AmountMl: 250, TimestampMs: 1000, Date: "2026-03-10"},
		{EventID: "b", UserUUID: "user-1", AmountMl: 500, TimestampMs: 2000, Date: "2026-03-10"},
		{EventID: "c", UserUUID: "user-1", AmountMl: 300, TimestampMs: 3000, Date: "2026-03-09"},
		{EventID: "d", UserUUID: "user-2", AmountMl: 999, TimestampMs: 4000, Date: "2026-03-10"},
	} {
		event := ev
		if err := appendEvent(&event); err != nil {
			t.Fatalf("appendEvent[%d] error: %v", i, err)
		}
	}

	total, err := SumAmountByDate("user-1", "2026-03-10")
	if err != nil {
		t.Fatalf("SumAmountByDate error: %v", err)
	}
	if total != 750 {
		t.Errorf("total = %d, want 750 (other days and users excluded)", total)
	}

	empty, err := SumAmountByDate("user-1", "2026-03-08")
	if err != nil {
		t.Fatalf("SumAmountByDate error: %v", err)
	}
	if empty != 0 {
		t.Errorf("total = %d, want 0 for a day without events", empty)
	}
}

func TestDeleteEvent(t *testing.T) {
	setupTestDB(t)

	event := IntakeEvent{EventID: "a", UserUUID: "user-1", AmountMl: 250, TimestampMs: 1000, Date: "2026-03-10"}
	if err := appendEvent(&event); err != nil {
		t.Fatalf("appendEvent error: %v", err)
	}

	// 别的用户删不掉这条记录
	if err := deleteEvent("user-2", "a"); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("cross-user delete: err = %v, want ErrEventNotFound", err)
	}

	if err := deleteEvent("user-1", "a"); err != nil {
		t.Fatalf("deleteEvent error: %v", err)
	}
	// 硬删除：第二次删除已经找不到记录
	if err := deleteEvent("user-1", "a"); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("repeat delete: err = %v, want ErrEventNotFound", err)
	}
}

func TestListEventsSince(t *testing.T) {
	setupTestDB(t)

	for _, ev := range []IntakeEvent{
		{EventID: "a", UserUUID: "user-1", AmountMl: 100, TimestampMs: 1000, Date: "2026-03-04"},
		{EventID: "b", UserUUID: "user-1", AmountMl: 200, TimestampMs: 2000, Date: "2026-03-03"},
		{EventID: "c", UserUUID: "user-1", AmountMl: 300, TimestampMs: 3000, Date: "2026-03-10"},
	} {
		event := ev
		if err := appendEvent(&event); err != nil {
			t.Fatalf("appendEvent error: %v", err)
		}
	}

	events, err := ListEventsSince("user-1", "2026-03-04")
	if err != nil {
		t.Fatalf("ListEventsSince error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len = %d, want 2 (from-date is inclusive)", len(events))
	}
	if events[0].EventID != "a" || events[1].EventID != "c" {
		t.Errorf("order = [%s %s], want [a c] (timestamp ascending)", events[0].EventID, events[1].EventID)
	}
}
