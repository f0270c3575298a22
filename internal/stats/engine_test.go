package stats

import (
	"errors"
	"testing"
	"time"
)

// now is fixed so that "today" is 2026-03-10 in every test.
var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func ev(id, date string, amount int) Event {
	return Event{
		ID:          id,
		AmountMl:    amount,
		TimestampMs: testNow.UnixMilli(),
		Date:        date,
	}
}

func mustCompute(t *testing.T, events []Event, goal int) *Snapshot {
	t.Helper()
	snapshot, err := ComputeStats(events, goal, testNow)
	if err != nil {
		t.Fatalf("ComputeStats error: %v", err)
	}
	return snapshot
}

func TestComputeStats_InvalidGoal(t *testing.T) {
	for _, goal := range []int{0, -1, -2000} {
		if _, err := ComputeStats(nil, goal, testNow); !errors.Is(err, ErrInvalidGoal) {
			t.Errorf("goal=%d: err = %v, want ErrInvalidGoal", goal, err)
		}
	}
}

func TestComputeStats_MalformedAmount(t *testing.T) {
	events := []Event{ev("e1", "2026-03-10", 250), ev("e2", "2026-03-10", 0)}
	_, err := ComputeStats(events, 2000, testNow)
	var malformed *MalformedEventError
	if !errors.As(err, &malformed) {
		t.Fatalf("err = %v, want *MalformedEventError", err)
	}
	if malformed.EventID != "e2" {
		t.Errorf("EventID = %q, want e2", malformed.EventID)
	}
}

func TestComputeStats_MalformedDate(t *testing.T) {
	events := []Event{ev("e1", "10/03/2026", 250)}
	_, err := ComputeStats(events, 2000, testNow)
	var malformed *MalformedEventError
	if !errors.As(err, &malformed) {
		t.Fatalf("err = %v, want *MalformedEventError", err)
	}
	if malformed.EventID != "e1" {
		t.Errorf("EventID = %q, want e1", malformed.EventID)
	}
}

func TestComputeStats_EmptyEvents(t *testing.T) {
	snapshot := mustCompute(t, nil, 2000)
	if snapshot.CurrentStreak != 0 || snapshot.BestStreak != 0 ||
		snapshot.TotalDaysMetGoal != 0 || snapshot.TotalWaterConsumed != 0 {
		t.Errorf("empty events should produce a zero snapshot, got %+v", snapshot)
	}
	if snapshot.LastActivityDate != "2026-03-10" {
		t.Errorf("LastActivityDate = %q, want today", snapshot.LastActivityDate)
	}
}

func TestComputeStats_Deterministic(t *testing.T) {
	events := []Event{
		ev("e1", "2026-03-09", 1500),
		ev("e2", "2026-03-10", 2200),
		ev("e3", "2026-03-09", 700),
		ev("e4", "2026-03-08", 2000),
	}
	reversed := make([]Event, len(events))
	for i, e := range events {
		reversed[len(events)-1-i] = e
	}

	a := mustCompute(t, events, 2000)
	b := mustCompute(t, reversed, 2000)
	if *a != *b {
		t.Errorf("input order changed the result: %+v vs %+v", a, b)
	}
}

func TestComputeStats_ConservationOfVolume(t *testing.T) {
	events := []Event{
		ev("e1", "2026-03-01", 300),
		ev("e2", "2026-03-01", 450),
		ev("e3", "2026-03-05", 2000),
		ev("e4", "2026-03-10", 1),
	}
	snapshot := mustCompute(t, events, 2000)
	if snapshot.TotalWaterConsumed != 2751 {
		t.Errorf("TotalWaterConsumed = %d, want 2751", snapshot.TotalWaterConsumed)
	}
}

func TestComputeStats_MultipleEventsSumTowardsGoal(t *testing.T) {
	// Individually below goal, together exactly at it.
	events := []Event{
		ev("e1", "2026-03-10", 800),
		ev("e2", "2026-03-10", 700),
		ev("e3", "2026-03-10", 500),
	}
	snapshot := mustCompute(t, events, 2000)
	if snapshot.TotalDaysMetGoal != 1 {
		t.Errorf("TotalDaysMetGoal = %d, want 1 (exact total counts)", snapshot.TotalDaysMetGoal)
	}
	if snapshot.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", snapshot.CurrentStreak)
	}
}

func TestComputeStats_NoDayMetGoal(t *testing.T) {
	events := []Event{
		ev("e1", "2026-03-08", 500),
		ev("e2", "2026-03-09", 1999),
		ev("e3", "2026-03-10", 1000),
	}
	snapshot := mustCompute(t, events, 2000)
	if snapshot.CurrentStreak != 0 || snapshot.BestStreak != 0 || snapshot.TotalDaysMetGoal != 0 {
		t.Errorf("no day met goal, got %+v", snapshot)
	}
	if snapshot.TotalWaterConsumed != 3499 {
		t.Errorf("TotalWaterConsumed = %d, want 3499", snapshot.TotalWaterConsumed)
	}
}

func TestComputeStats_ConsecutiveDaysEndingToday(t *testing.T) {
	events := []Event{
		ev("e1", "2026-03-06", 2000),
		ev("e2", "2026-03-07", 2500),
		ev("e3", "2026-03-08", 2000),
		ev("e4", "2026-03-09", 3000),
		ev("e5", "2026-03-10", 2100),
	}
	snapshot := mustCompute(t, events, 2000)
	if snapshot.CurrentStreak != 5 {
		t.Errorf("CurrentStreak = %d, want 5", snapshot.CurrentStreak)
	}
	if snapshot.BestStreak != 5 {
		t.Errorf("BestStreak = %d, want 5", snapshot.BestStreak)
	}
	if snapshot.TotalDaysMetGoal != 5 {
		t.Errorf("TotalDaysMetGoal = %d, want 5", snapshot.TotalDaysMetGoal)
	}
	if snapshot.LastActivityDate != "2026-03-10" {
		t.Errorf("LastActivityDate = %q, want 2026-03-10", snapshot.LastActivityDate)
	}
}

func TestComputeStats_StreakEndingYesterdaySurvives(t *testing.T) {
	// No record yet today: the streak is still considered alive.
	events := []Event{
		ev("e1", "2026-03-07", 2000),
		ev("e2", "2026-03-08", 2000),
		ev("e3", "2026-03-09", 2000),
	}
	snapshot := mustCompute(t, events, 2000)
	if snapshot.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3 (streak ended yesterday)", snapshot.CurrentStreak)
	}
	if snapshot.LastActivityDate != "2026-03-09" {
		t.Errorf("LastActivityDate = %q, want 2026-03-09", snapshot.LastActivityDate)
	}
}

func TestComputeStats_TwoDayGapBreaksCurrentStreak(t *testing.T) {
	events := []Event{
		ev("e1", "2026-03-05", 2000),
		ev("e2", "2026-03-06", 2000),
		ev("e3", "2026-03-07", 2000),
	}
	snapshot := mustCompute(t, events, 2000)
	if snapshot.CurrentStreak != 0 {
		t.Errorf("CurrentStreak = %d, want 0 (last goal-met day was 3 days ago)", snapshot.CurrentStreak)
	}
	if snapshot.BestStreak != 3 {
		t.Errorf("BestStreak = %d, want 3 (history is preserved)", snapshot.BestStreak)
	}
}

func TestComputeStats_MissedDayResetsRunningStreak(t *testing.T) {
	// Goal met on 06 and 07, nothing on 08, goal met again on 09 and 10.
	events := []Event{
		ev("e1", "2026-03-06", 2000),
		ev("e2", "2026-03-07", 2000),
		ev("e3", "2026-03-09", 2000),
		ev("e4", "2026-03-10", 2000),
	}
	snapshot := mustCompute(t, events, 2000)
	if snapshot.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", snapshot.CurrentStreak)
	}
	if snapshot.BestStreak != 2 {
		t.Errorf("BestStreak = %d, want 2", snapshot.BestStreak)
	}
	if snapshot.TotalDaysMetGoal != 4 {
		t.Errorf("TotalDaysMetGoal = %d, want 4", snapshot.TotalDaysMetGoal)
	}
}

func TestComputeStats_BelowGoalDayBreaksStreak(t *testing.T) {
	// A recorded-but-below-goal day breaks the run even without a calendar gap.
	events := []Event{
		ev("e1", "2026-03-07", 2000),
		ev("e2", "2026-03-08", 2000),
		ev("e3", "2026-03-09", 500),
		ev("e4", "2026-03-10", 2000),
	}
	snapshot := mustCompute(t, events, 2000)
	if snapshot.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", snapshot.CurrentStreak)
	}
	if snapshot.BestStreak != 2 {
		t.Errorf("BestStreak = %d, want 2", snapshot.BestStreak)
	}
}

func TestComputeStats_BestStreakInThePast(t *testing.T) {
	events := []Event{
		ev("e1", "2026-02-01", 2000),
		ev("e2", "2026-02-02", 2000),
		ev("e3", "2026-02-03", 2000),
		ev("e4", "2026-02-04", 2000),
		ev("e5", "2026-03-10", 2000),
	}
	snapshot := mustCompute(t, events, 2000)
	if snapshot.BestStreak != 4 {
		t.Errorf("BestStreak = %d, want 4", snapshot.BestStreak)
	}
	if snapshot.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", snapshot.CurrentStreak)
	}
	if snapshot.TotalDaysMetGoal != 5 {
		t.Errorf("TotalDaysMetGoal = %d, want 5", snapshot.TotalDaysMetGoal)
	}
}

func TestComputeStats_GoalChangeReclassifiesHistory(t *testing.T) {
	events := []Event{
		ev("e1", "2026-03-09", 1500),
		ev("e2", "2026-03-10", 1500),
	}

	strict := mustCompute(t, events, 2000)
	if strict.TotalDaysMetGoal != 0 {
		t.Errorf("goal 2000: TotalDaysMetGoal = %d, want 0", strict.TotalDaysMetGoal)
	}

	// Lowering the goal retroactively turns both days into goal-met days.
	relaxed := mustCompute(t, events, 1000)
	if relaxed.TotalDaysMetGoal != 2 {
		t.Errorf("goal 1000: TotalDaysMetGoal = %d, want 2", relaxed.TotalDaysMetGoal)
	}
	if relaxed.CurrentStreak != 2 {
		t.Errorf("goal 1000: CurrentStreak = %d, want 2", relaxed.CurrentStreak)
	}
}

func TestAggregateByDate_SortedAndSummed(t *testing.T) {
	events := []Event{
		ev("e1", "2026-03-10", 100),
		ev("e2", "2026-03-08", 300),
		ev("e3", "2026-03-10", 200),
		ev("e4", "2026-03-09", 400),
	}
	aggregates, err := AggregateByDate(events)
	if err != nil {
		t.Fatalf("AggregateByDate error: %v", err)
	}
	if len(aggregates) != 3 {
		t.Fatalf("len(aggregates) = %d, want 3", len(aggregates))
	}
	wantDates := []string{"2026-03-08", "2026-03-09", "2026-03-10"}
	wantTotals := []int64{300, 400, 300}
	wantCounts := []int{1, 1, 2}
	for i, agg := range aggregates {
		if agg.Date != wantDates[i] {
			t.Errorf("aggregates[%d].Date = %q, want %q", i, agg.Date, wantDates[i])
		}
		if agg.TotalMl != wantTotals[i] {
			t.Errorf("aggregates[%d].TotalMl = %d, want %d", i, agg.TotalMl, wantTotals[i])
		}
		if agg.EventCount != wantCounts[i] {
			t.Errorf("aggregates[%d].EventCount = %d, want %d", i, agg.EventCount, wantCounts[i])
		}
	}
}

func TestDateOf_Layout(t *testing.T) {
	got := DateOf(time.Date(2026, 1, 5, 23, 59, 0, 0, time.UTC))
	if got != "2026-01-05" {
		t.Errorf("DateOf = %q, want 2026-01-05", got)
	}
}
