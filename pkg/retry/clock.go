package retry

import "time"

// Clock supplies the timer used for inter-attempt delays. The system
// clock is used unless a test substitutes its own via WithClock.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
