package domain_test

import (
	"errors"
	"testing"
	"time"

	"focuslock/internal/modules/commitment/domain"
	apperrors "focuslock/internal/platform/errors"
)

var start = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func activeCommitment() domain.Commitment {
	return domain.Commitment{
		Owner:          "alice",
		CommitmentID:   1,
		AmountStaked:   1_000_000,
		SessionsPerDay: 2,
		TotalDays:      3,
		StartTimestamp: start,
		IsActive:       true,
	}
}

func TestValidateScheduleBounds(t *testing.T) {
	t.Parallel()
	for spd := uint8(1); spd <= 10; spd++ {
		for _, days := range []uint8{1, 15, 30} {
			if err := domain.ValidateSchedule(spd, days); err != nil {
				t.Fatalf("schedule %d/%d must be valid: %v", spd, days, err)
			}
		}
	}
	for _, spd := range []uint8{0, 11, 200} {
		if err := domain.ValidateSchedule(spd, 5); !errors.Is(err, apperrors.ErrInvalidSessionCount) {
			t.Fatalf("sessions per day %d must fail, got %v", spd, err)
		}
	}
	for _, days := range []uint8{0, 31, 255} {
		if err := domain.ValidateSchedule(3, days); !errors.Is(err, apperrors.ErrInvalidDayCount) {
			t.Fatalf("total days %d must fail, got %v", days, err)
		}
	}
}

func TestBeginSessionGateOrder(t *testing.T) {
	t.Parallel()

	c := activeCommitment()
	c.IsActive = false
	if err := c.BeginSession("alice", start.Add(time.Hour)); !errors.Is(err, apperrors.ErrCommitmentInactive) {
		t.Fatalf("inactive commitment must win, got %v", err)
	}

	c = activeCommitment()
	if err := c.BeginSession("mallory", c.EndTimestamp()); !errors.Is(err, apperrors.ErrCommitmentEnded) {
		t.Fatalf("window expiry is checked before authority, got %v", err)
	}

	c = activeCommitment()
	if err := c.BeginSession("mallory", start.Add(time.Hour)); !errors.Is(err, apperrors.ErrInvalidAuthority) {
		t.Fatalf("non-owner must be rejected, got %v", err)
	}

	c = activeCommitment()
	c.SessionsCompletedToday = 2
	c.LastSessionTimestamp = start.Add(4 * time.Hour)
	if err := c.BeginSession("alice", start.Add(5*time.Hour)); !errors.Is(err, apperrors.ErrDailySessionsCompleted) {
		t.Fatalf("exhausted daily quota must be rejected, got %v", err)
	}

	c = activeCommitment()
	c.SessionsCompletedToday = 1
	c.LastSessionTimestamp = start.Add(time.Hour)
	if err := c.BeginSession("alice", start.Add(time.Hour+29*time.Minute)); !errors.Is(err, apperrors.ErrSessionTooSoon) {
		t.Fatalf("29 minutes after the last session must be too soon, got %v", err)
	}
	if err := c.BeginSession("alice", start.Add(time.Hour+30*time.Minute)); err != nil {
		t.Fatalf("exactly 30 minutes must pass the spacing gate: %v", err)
	}
}

func TestFirstSessionSkipsSpacingGate(t *testing.T) {
	t.Parallel()
	c := activeCommitment()
	if err := c.BeginSession("alice", start.Add(time.Minute)); err != nil {
		t.Fatalf("first session has no spacing requirement: %v", err)
	}
}

func TestDayRolloverResetsDailyCounter(t *testing.T) {
	t.Parallel()
	c := activeCommitment()
	c.SessionsCompletedToday = 2
	c.LastSessionTimestamp = start.Add(10 * time.Hour)
	nextDay := start.Add(24 * time.Hour)
	if err := c.BeginSession("alice", nextDay); err != nil {
		t.Fatalf("new calendar day must reopen the quota: %v", err)
	}
	if c.SessionsCompletedToday != 0 {
		t.Fatalf("rollover must reset the daily counter, got %d", c.SessionsCompletedToday)
	}
}

func TestRecordSessionCompletionCountsDays(t *testing.T) {
	t.Parallel()
	c := activeCommitment()
	c.RecordSessionCompletion(start.Add(time.Hour))
	if c.SessionsCompletedToday != 1 || c.DaysCompleted != 0 || c.TotalSessionsCompleted != 1 {
		t.Fatalf("after one of two sessions: %+v", c)
	}
	c.RecordSessionCompletion(start.Add(3 * time.Hour))
	if c.SessionsCompletedToday != 2 || c.DaysCompleted != 1 || c.TotalSessionsCompleted != 2 {
		t.Fatalf("quota reached must credit the day: %+v", c)
	}
	c.RecordSessionCompletion(start.Add(25 * time.Hour))
	if c.SessionsCompletedToday != 1 || c.DaysCompleted != 1 || c.TotalSessionsCompleted != 3 {
		t.Fatalf("next day starts a fresh daily count: %+v", c)
	}
}

func TestEndTimestampCoversWholeWindow(t *testing.T) {
	t.Parallel()
	c := activeCommitment()
	lastInstant := start.Add(3*24*time.Hour - time.Second)
	if err := c.BeginSession("alice", lastInstant); err != nil {
		t.Fatalf("window is open until the final second: %v", err)
	}
	if err := c.BeginSession("alice", start.Add(3*24*time.Hour)); !errors.Is(err, apperrors.ErrCommitmentEnded) {
		t.Fatalf("window closes exactly at the boundary, got %v", err)
	}
}
