package domain

import "time"

// Registry is the protocol singleton: authority identity, configured reward
// rate, and aggregate counters. It is created exactly once and its reward
// rate is immutable afterwards.
type Registry struct {
	Authority         string
	AssetID           string
	RewardRatePercent uint64
	TotalParticipants uint64
	TotalValueStaked  uint64
	CreatedAt         time.Time
}
