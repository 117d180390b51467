package format

import (
	"math"
	"time"
)

// TicksEpochOffset is the raw timestamp value of 1970-01-01T00:00:00Z. Raw
// timestamps count microseconds from 0001-01-01, so subtracting this yields
// microseconds since the Unix epoch.
const TicksEpochOffset uint64 = 62135596800000000

// TicksToTime converts a raw progress-file timestamp to time.Time in UTC.
// Values at or below the epoch offset clamp to the Unix epoch.
func TicksToTime(v uint64) time.Time {
	if v <= TicksEpochOffset {
		return time.Unix(0, 0).UTC()
	}
	us := v - TicksEpochOffset
	if us > math.MaxInt64 {
		us = math.MaxInt64
	}
	return time.UnixMicro(int64(us)).UTC()
}

// TimeToTicks converts t to the raw progress-file representation. Times
// before the Unix epoch map to TicksEpochOffset.
func TimeToTicks(t time.Time) uint64 {
	us := t.UnixMicro()
	if us < 0 {
		us = 0
	}
	return uint64(us) + TicksEpochOffset
}
