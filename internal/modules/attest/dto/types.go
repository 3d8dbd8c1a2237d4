package dto

import "time"

type AttestorInfo struct {
	Name    string
	Version string
	Enabled bool
	Binary  string
}

type CheckResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type VerifySessionInput struct {
	Owner         string
	CommitmentID  uint64
	SessionNumber uint64
	StartedAt     time.Time
	EndedAt       time.Time
	WallMinutes   int
}

type VerdictOutput struct {
	Approved bool
	Attestor string
	Reason   string
}
