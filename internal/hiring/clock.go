package hiring

import "time"

// Clock tells time and schedules delayed callbacks. Tests substitute a
// manual clock so transitions fire on demand instead of after real delays.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a scheduled callback.
type Timer interface {
	Stop() bool
}

// SystemClock schedules callbacks with the runtime timer.
type SystemClock struct{}

// Now wraps time.Now.
func (SystemClock) Now() time.Time { return time.Now() }

// AfterFunc wraps time.AfterFunc.
func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
