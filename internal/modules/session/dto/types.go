package dto

import "time"

type StartInput struct {
	Owner        string
	CommitmentID uint64
	SessionID    uint64
	Caller       string
}

type StartOutput struct {
	Owner            string
	CommitmentID     uint64
	SessionID        uint64
	StartedAt        time.Time
	VerificationSlot uint64
}

type CompleteInput struct {
	Owner        string
	CommitmentID uint64
	SessionID    uint64
	Caller       string
}

type CompleteOutput struct {
	Owner                  string
	CommitmentID           uint64
	SessionID              uint64
	StartedAt              time.Time
	EndedAt                time.Time
	SessionsCompletedToday uint32
	DaysCompleted          uint32
	TotalSessionsCompleted uint64
	CurrentStreak          uint32
	BestStreak             uint32
}

type SessionOutput struct {
	Owner            string
	CommitmentID     uint64
	SessionID        uint64
	StartedAt        time.Time
	EndedAt          time.Time
	Completed        bool
	VerificationSlot uint64
}
