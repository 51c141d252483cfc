// Package testclock adapts the quartz mock clock to the one-method
// clock interface consumed by the retry loop, keeping the mock's trap
// and advance controls available to tests through embedding.
package testclock

import (
	"testing"
	"time"

	"github.com/coder/quartz"
)

// Clock is a deterministic clock for tests. It embeds *quartz.Mock,
// so tests drive time with Advance, AdvanceNext and Trap directly.
type Clock struct {
	*quartz.Mock
}

// New returns a mock clock pinned to quartz's fixed epoch.
func New(t testing.TB) *Clock {
	return &Clock{Mock: quartz.NewMock(t)}
}

// After reports a channel that receives after d, once the mock has
// been advanced that far.
func (c *Clock) After(d time.Duration) <-chan time.Time {
	return c.Mock.NewTimer(d).C
}
