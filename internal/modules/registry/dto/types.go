package dto

import "time"

type InitInput struct {
	Authority         string
	AssetID           string
	RewardRatePercent uint64
}

type RegistryOutput struct {
	Authority         string
	AssetID           string
	RewardRatePercent uint64
	TotalParticipants uint64
	TotalValueStaked  uint64
	CreatedAt         time.Time
}
