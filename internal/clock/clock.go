// Package clock provides the fixed UTC+8 wall clock used for readings and
// period keys, independent of the host time zone.
package clock

import "time"

// Location is Asia/Shanghai as a fixed offset, so no tzdata is needed.
var Location = time.FixedZone("CST", 8*60*60)

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// Shanghai is the production clock.
type Shanghai struct{}

// Now returns the current time in Location.
func (Shanghai) Now() time.Time { return Now() }

// Now returns the current time in Location.
func Now() time.Time {
	return time.Now().In(Location)
}

// Fixed always returns T converted to Location. Used by tests and replays.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T.In(Location) }
