package clock

import "time"

// Clock abstracts time to keep period math deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock returns local time. Period boundaries follow the local
// calendar, not UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
