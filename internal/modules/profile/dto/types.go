package dto

import "time"

type CreateInput struct {
	Owner string
}

type ProfileOutput struct {
	Owner                  string
	TotalSessionsCompleted uint64
	TotalRewardsEarned     uint64
	CurrentStreak          uint32
	BestStreak             uint32
	LastActiveDay          time.Time
}

type StreakOutput struct {
	CurrentStreak          uint32
	BestStreak             uint32
	TotalSessionsCompleted uint64
}
