package domain_test

import (
	"testing"
	"time"

	"focuslock/internal/modules/profile/domain"
)

func day(d int, hour int) time.Time {
	return time.Date(2026, 3, d, hour, 0, 0, 0, time.UTC)
}

func TestConsecutiveDaysExtendStreak(t *testing.T) {
	t.Parallel()
	p := domain.Profile{Owner: "alice", LastActiveDay: day(1, 9)}
	p.RecordCompletion(day(2, 8))
	if p.CurrentStreak != 1 || p.BestStreak != 1 {
		t.Fatalf("expected streak 1 after first consecutive day, got %d/%d", p.CurrentStreak, p.BestStreak)
	}
	p.RecordCompletion(day(3, 22))
	if p.CurrentStreak != 2 || p.BestStreak != 2 {
		t.Fatalf("expected streak 2, got %d/%d", p.CurrentStreak, p.BestStreak)
	}
}

func TestSameDayCompletionLeavesStreakUntouched(t *testing.T) {
	t.Parallel()
	p := domain.Profile{Owner: "alice", CurrentStreak: 3, BestStreak: 5, LastActiveDay: day(10, 7)}
	p.RecordCompletion(day(10, 21))
	if p.CurrentStreak != 3 {
		t.Fatalf("same-day completion must not change streak, got %d", p.CurrentStreak)
	}
	if p.TotalSessionsCompleted != 1 {
		t.Fatalf("completion counter must still advance, got %d", p.TotalSessionsCompleted)
	}
}

func TestGapRestartsStreakAndBestNeverDecreases(t *testing.T) {
	t.Parallel()
	p := domain.Profile{Owner: "alice", CurrentStreak: 6, BestStreak: 6, LastActiveDay: day(1, 12)}
	p.RecordCompletion(day(4, 12))
	if p.CurrentStreak != 1 {
		t.Fatalf("gap over one day must restart streak at 1, got %d", p.CurrentStreak)
	}
	if p.BestStreak != 6 {
		t.Fatalf("best streak must never decrease, got %d", p.BestStreak)
	}
	for d := 5; d <= 12; d++ {
		p.RecordCompletion(day(d, 12))
	}
	if p.CurrentStreak != 9 || p.BestStreak != 9 {
		t.Fatalf("expected streak to rebuild to 9, got %d/%d", p.CurrentStreak, p.BestStreak)
	}
}

func TestDayBoundaryNotDurationDrivesTheGap(t *testing.T) {
	t.Parallel()
	// 23:50 to 00:10 is twenty minutes of wall clock but one calendar day.
	p := domain.Profile{Owner: "alice", LastActiveDay: time.Date(2026, 3, 1, 23, 50, 0, 0, time.UTC)}
	p.RecordCompletion(time.Date(2026, 3, 2, 0, 10, 0, 0, time.UTC))
	if p.CurrentStreak != 1 {
		t.Fatalf("crossing midnight counts as the next day, got streak %d", p.CurrentStreak)
	}
}
