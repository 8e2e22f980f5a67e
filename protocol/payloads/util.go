package lifxpayloads

import (
	"time"
)

// nsecEpochToTime converts a UNIX epoch with nanosecond
// precision in to a time.Time where the Timezone is UTC.
func nsecEpochToTime(nanoseconds uint64) time.Time {
	nanoDur := time.Duration(nanoseconds)

	// convert the value to the UNIX epoch
	// with remaining nanoseconds (npoch)
	epoch := int64(nanoDur / time.Second)
	npoch := int64(nanoDur % time.Second)

	return time.Unix(epoch, npoch).UTC()
}

func durToMs(dur time.Duration) uint32 {
	return uint32(dur / time.Millisecond)
}

func msToDur(ms uint32) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
