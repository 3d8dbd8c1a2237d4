package domain

import (
	"math"
	"math/bits"
)

// Settlement tiers, highest first. Rates compare as integer ratios so no
// floating point enters the payout path.
type Tier string

const (
	TierBonus   Tier = "bonus"
	TierRefund  Tier = "refund"
	TierPenalty Tier = "penalty"

	bonusThresholdPercent  = 90
	refundThresholdPercent = 75
	penaltyKeptPercent     = 75
)

type Settlement struct {
	Required  uint64
	Completed uint64
	Tier      Tier
	Payout    uint64
	Retained  uint64
}

// Settle computes the payout for a finished commitment. Ninety percent
// completion or better earns the stake plus the configured bonus,
// seventy-five percent returns the stake, anything lower returns
// three-quarters of it with the rest retained by the protocol.
func Settle(c Commitment, rewardRatePercent uint64) Settlement {
	required := uint64(c.SessionsPerDay) * uint64(c.TotalDays)
	completed := c.TotalSessionsCompleted

	s := Settlement{Required: required, Completed: completed}
	switch {
	case completed*100 >= required*bonusThresholdPercent:
		s.Tier = TierBonus
		s.Payout = addSaturating(c.AmountStaked, bonusAmount(c.AmountStaked, rewardRatePercent))
	case completed*100 >= required*refundThresholdPercent:
		s.Tier = TierRefund
		s.Payout = c.AmountStaked
	default:
		s.Tier = TierPenalty
		s.Payout = c.AmountStaked / 100 * penaltyKeptPercent
		s.Payout += c.AmountStaked % 100 * penaltyKeptPercent / 100
		s.Retained = c.AmountStaked - s.Payout
	}
	return s
}

// bonusAmount is stake*ratePercent/100 computed in 128 bits, so stakes near
// the top of the uint64 range cannot wrap. A bonus that itself exceeds the
// representable range clamps to the maximum.
func bonusAmount(stake, ratePercent uint64) uint64 {
	hi, lo := bits.Mul64(stake, ratePercent)
	if hi >= 100 {
		return math.MaxUint64
	}
	q, _ := bits.Div64(hi, lo, 100)
	return q
}

func addSaturating(a, b uint64) uint64 {
	if sum := a + b; sum >= a {
		return sum
	}
	return math.MaxUint64
}
