package export

import (
	"strings"
	"testing"
	"time"

	"github.com/SlpAus/hydrotrack-backend/internal/intake"
	"github.com/SlpAus/hydrotrack-backend/internal/stats"
)

var exportNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

func intakeEvent(date string, amount int, ts int64) intake.IntakeEvent {
	return intake.IntakeEvent{
		EventID:     "test-event",
		UserUUID:    "test-user",
		AmountMl:    amount,
		TimestampMs: ts,
		Date:        date,
	}
}

func TestFilename(t *testing.T) {
	if got := Filename(exportNow); got != "hydrotrack_export_2026-03-10.csv" {
		t.Errorf("Filename = %q, want hydrotrack_export_2026-03-10.csv", got)
	}
}

func TestBuildCSV_Header(t *testing.T) {
	csv := BuildCSV(nil, nil, 2000, "Alex", Options{}, exportNow)
	lines := strings.Split(csv, "\n")
	if !strings.HasPrefix(lines[0], "HydroTrack Export - 2026-03-10") {
		t.Errorf("unexpected first line: %q", lines[0])
	}
	if lines[1] != "User: Alex" {
		t.Errorf("unexpected user line: %q", lines[1])
	}
	if lines[2] != "Daily Goal: 2000 ml" {
		t.Errorf("unexpected goal line: %q", lines[2])
	}
}

func TestBuildCSV_StatsBlock(t *testing.T) {
	snapshot := &stats.Snapshot{
		CurrentStreak:      3,
		BestStreak:         5,
		TotalDaysMetGoal:   12,
		TotalWaterConsumed: 54500,
		LastActivityDate:   "2026-03-10",
	}
	csv := BuildCSV(nil, snapshot, 2000, "Alex", Options{IncludeStats: true}, exportNow)

	for _, want := range []string{
		"=== STATISTICS ===",
		"Current Streak,3 days",
		"Best Streak,5 days",
		"Total Days Met Goal,12 days",
		"Total Water Consumed,54.50 L",
		"Last Activity,2026-03-10",
	} {
		if !strings.Contains(csv, want) {
			t.Errorf("stats block missing %q in:\n%s", want, csv)
		}
	}
}

func TestBuildCSV_StatsExcludedByDefault(t *testing.T) {
	snapshot := &stats.Snapshot{CurrentStreak: 3}
	csv := BuildCSV(nil, snapshot, 2000, "Alex", Options{}, exportNow)
	if strings.Contains(csv, "=== STATISTICS ===") {
		t.Error("stats block present without IncludeStats")
	}
}

func TestBuildCSV_EmptyLogs(t *testing.T) {
	csv := BuildCSV(nil, nil, 2000, "Alex", Options{IncludeLogs: true}, exportNow)
	if !strings.Contains(csv, "=== WATER INTAKE LOGS ===") {
		t.Error("logs block header missing")
	}
	if !strings.Contains(csv, "No water intake logs available.") {
		t.Error("empty-logs placeholder missing")
	}
}

func TestBuildCSV_LogsGroupedNewestFirst(t *testing.T) {
	events := []intake.IntakeEvent{
		intakeEvent("2026-03-09", 1200, 1000),
		intakeEvent("2026-03-10", 900, 3000),
		intakeEvent("2026-03-10", 1200, 2000),
	}
	csv := BuildCSV(events, nil, 2000, "Alex", Options{IncludeLogs: true}, exportNow)

	if !strings.Contains(csv, "Date,Time,Amount (ml),Daily Total (ml),Goal Met") {
		t.Fatalf("column header missing in:\n%s", csv)
	}

	// 2026-03-10 totals 2100 and meets the 2000 goal; 2026-03-09 does not.
	if !strings.Contains(csv, ",900,2100,Yes") {
		t.Errorf("missing goal-met row for 2026-03-10 in:\n%s", csv)
	}
	if !strings.Contains(csv, ",1200,1200,No") {
		t.Errorf("missing below-goal row for 2026-03-09 in:\n%s", csv)
	}

	// Newest date comes first, and within a day the newest event comes first.
	firstNew := strings.Index(csv, ",900,2100,Yes")
	laterNew := strings.Index(csv, ",1200,2100,Yes")
	old := strings.Index(csv, ",1200,1200,No")
	if firstNew == -1 || laterNew == -1 || old == -1 {
		t.Fatalf("expected rows missing in:\n%s", csv)
	}
	if !(firstNew < laterNew && laterNew < old) {
		t.Errorf("rows out of order in:\n%s", csv)
	}
}
