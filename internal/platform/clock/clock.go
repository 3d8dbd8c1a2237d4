package clock

import "time"

// Clock abstracts the time oracle to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// SlotMillis is the nominal duration of one ledger slot.
const SlotMillis = 400

// SlotSource reports the monotonic ledger progress marker used to
// corroborate wall-clock durations.
type SlotSource interface {
	Slot() uint64
}

type SystemSlotSource struct{}

func (SystemSlotSource) Slot() uint64 {
	return SlotAt(time.Now())
}

// SlotAt maps a timestamp onto the slot grid.
func SlotAt(t time.Time) uint64 {
	return uint64(t.UnixMilli() / SlotMillis)
}
