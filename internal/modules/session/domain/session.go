package domain

import (
	"time"

	"focuslock/internal/platform/clock"
	apperrors "focuslock/internal/platform/errors"
)

const (
	// MinSessionDuration is two focus blocks around a short break:
	// 25 + 5 + 25 minutes.
	MinSessionDuration = 55 * time.Minute

	// SlotTolerance absorbs slot-grid jitter in the progress-marker check.
	SlotTolerance = 10
)

// MinSessionSlots is the ledger progress expected to elapse over a full
// session.
func MinSessionSlots() uint64 {
	return uint64(MinSessionDuration/time.Millisecond) / clock.SlotMillis
}

// Record is one attempt at a scheduled focus period. It is created at start
// and becomes terminal once completed; the verification slot captured at
// start corroborates the wall-clock duration at completion.
type Record struct {
	User             string
	CommitmentKey    string
	CommitmentID     uint64
	SessionNumber    uint64
	StartTimestamp   time.Time
	EndTimestamp     time.Time
	Completed        bool
	VerificationSlot uint64
}

// Complete runs the completion gates in order and stamps the record. The
// duration must hold on both the wall clock and the slot grid, so neither
// can be manipulated on its own.
func (r *Record) Complete(caller string, now time.Time, slot uint64) error {
	if r.Completed {
		return apperrors.ErrSessionAlreadyCompleted
	}
	if now.Sub(r.StartTimestamp) < MinSessionDuration {
		return apperrors.ErrSessionNotComplete
	}
	elapsed := int64(slot) - int64(r.VerificationSlot)
	if elapsed < int64(MinSessionSlots())-SlotTolerance {
		return apperrors.ErrSessionNotComplete
	}
	if caller != r.User {
		return apperrors.ErrInvalidAuthority
	}
	r.Completed = true
	r.EndTimestamp = now
	return nil
}
