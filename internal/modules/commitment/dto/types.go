package dto

import "time"

type OpenInput struct {
	Owner          string
	CommitmentID   uint64
	Amount         uint64
	SessionsPerDay uint8
	TotalDays      uint8
}

type CommitmentOutput struct {
	Owner                  string
	CommitmentID           uint64
	AmountStaked           uint64
	SessionsPerDay         uint8
	TotalDays              uint8
	StartTimestamp         time.Time
	EndTimestamp           time.Time
	IsActive               bool
	DaysCompleted          uint32
	SessionsCompletedToday uint32
	TotalSessionsCompleted uint64
	LastSessionTimestamp   time.Time
	VaultAddress           string
}

type ClaimInput struct {
	Owner        string
	CommitmentID uint64
	Caller       string
}

type ClaimOutput struct {
	Owner        string
	CommitmentID uint64
	Required     uint64
	Completed    uint64
	Tier         string
	Payout       uint64
	Retained     uint64
}

type BeginSessionInput struct {
	Owner        string
	CommitmentID uint64
	Caller       string
	Now          time.Time
}

type SessionCompletionInput struct {
	Owner        string
	CommitmentID uint64
	Now          time.Time
}
