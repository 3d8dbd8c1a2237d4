package domain

import "time"

const secondsPerDay = 86400

// Profile is the per-participant lifetime record. Streaks count consecutive
// UTC calendar days with at least one completed session.
type Profile struct {
	Owner                  string
	TotalSessionsCompleted uint64
	TotalRewardsEarned     uint64
	CurrentStreak          uint32
	BestStreak             uint32
	LastActiveDay          time.Time
}

// DayNumber returns the UTC calendar day index of t.
func DayNumber(t time.Time) int64 {
	return t.Unix() / secondsPerDay
}

// RecordCompletion applies one completed session at now. A gap of exactly one
// calendar day extends the streak, a same-day completion leaves it untouched,
// and a longer gap restarts it at one.
func (p *Profile) RecordCompletion(now time.Time) {
	gap := DayNumber(now) - DayNumber(p.LastActiveDay)
	switch {
	case gap == 1:
		p.CurrentStreak++
	case gap > 1:
		p.CurrentStreak = 1
	}
	if p.CurrentStreak > p.BestStreak {
		p.BestStreak = p.CurrentStreak
	}
	p.TotalSessionsCompleted++
	p.LastActiveDay = now
}
