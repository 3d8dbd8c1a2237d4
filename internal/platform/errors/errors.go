package apperrors

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrRegistryExists = errors.New("registry already initialized")

	ErrInvalidSessionCount = errors.New("invalid number of sessions per day")
	ErrInvalidDayCount     = errors.New("invalid number of days for commitment")

	ErrDuplicateProfile    = errors.New("profile already exists")
	ErrDuplicateCommitment = errors.New("commitment already exists")
	ErrDuplicateSession    = errors.New("session already exists")

	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrInvalidAuthority  = errors.New("invalid authority")

	ErrCommitmentInactive = errors.New("commitment is no longer active")
	ErrCommitmentEnded    = errors.New("commitment period has ended")
	ErrCommitmentNotEnded = errors.New("commitment period has not ended yet")

	ErrDailySessionsCompleted  = errors.New("all daily sessions are already completed")
	ErrSessionTooSoon          = errors.New("not enough time has passed since last session")
	ErrSessionNotComplete      = errors.New("session duration requirement not met")
	ErrSessionAlreadyCompleted = errors.New("session is already marked as completed")
)
