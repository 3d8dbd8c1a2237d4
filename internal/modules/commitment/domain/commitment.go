package domain

import (
	"time"

	apperrors "focuslock/internal/platform/errors"
)

const (
	MinSessionsPerDay = 1
	MaxSessionsPerDay = 10
	MinTotalDays      = 1
	MaxTotalDays      = 30

	// MinSessionSpacing is the shortest allowed gap between the end of one
	// session and the start of the next.
	MinSessionSpacing = 30 * time.Minute

	secondsPerDay = 86400
)

// Commitment binds a participant to a session schedule over a fixed window,
// with the stake held in a vault until settlement.
type Commitment struct {
	Owner                  string
	CommitmentID           uint64
	AmountStaked           uint64
	SessionsPerDay         uint8
	TotalDays              uint8
	StartTimestamp         time.Time
	IsActive               bool
	DaysCompleted          uint32
	SessionsCompletedToday uint32
	TotalSessionsCompleted uint64
	LastSessionTimestamp   time.Time
}

// ValidateSchedule checks the schedule parameters, before any value moves.
func ValidateSchedule(sessionsPerDay, totalDays uint8) error {
	if sessionsPerDay < MinSessionsPerDay || sessionsPerDay > MaxSessionsPerDay {
		return apperrors.ErrInvalidSessionCount
	}
	if totalDays < MinTotalDays || totalDays > MaxTotalDays {
		return apperrors.ErrInvalidDayCount
	}
	return nil
}

// EndTimestamp is the first instant at which the commitment window is over.
func (c *Commitment) EndTimestamp() time.Time {
	return c.StartTimestamp.Add(time.Duration(c.TotalDays) * secondsPerDay * time.Second)
}

func dayNumber(t time.Time) int64 {
	return t.Unix() / secondsPerDay
}

func (c *Commitment) rollOverDay(now time.Time) {
	if !c.LastSessionTimestamp.IsZero() && dayNumber(now) != dayNumber(c.LastSessionTimestamp) {
		c.SessionsCompletedToday = 0
	}
}

// BeginSession runs the start-session gates in order, first failure wins. On
// a calendar-day change it resets the daily counter, a mutation the caller
// must persist as part of the same operation.
func (c *Commitment) BeginSession(caller string, now time.Time) error {
	if !c.IsActive {
		return apperrors.ErrCommitmentInactive
	}
	if !now.Before(c.EndTimestamp()) {
		return apperrors.ErrCommitmentEnded
	}
	if caller != c.Owner {
		return apperrors.ErrInvalidAuthority
	}
	c.rollOverDay(now)
	if c.SessionsCompletedToday >= uint32(c.SessionsPerDay) {
		return apperrors.ErrDailySessionsCompleted
	}
	if !c.LastSessionTimestamp.IsZero() && now.Sub(c.LastSessionTimestamp) < MinSessionSpacing {
		return apperrors.ErrSessionTooSoon
	}
	return nil
}

// RecordSessionCompletion credits one completed session. Completing the
// day's quota also credits a completed day.
func (c *Commitment) RecordSessionCompletion(now time.Time) {
	c.rollOverDay(now)
	c.SessionsCompletedToday++
	if c.SessionsCompletedToday == uint32(c.SessionsPerDay) {
		c.DaysCompleted++
	}
	c.TotalSessionsCompleted++
	c.LastSessionTimestamp = now
}
