package retry

import (
	"fmt"
	"time"
)

// Defaults applied when configuration supplies nothing else. Staging
// transitions on the remote repository manager routinely take tens of
// seconds, so the defaults favour patience over promptness.
const (
	DefaultMaxAttempts = 10
	DefaultDelay       = 5 * time.Second
)

// Policy bounds a retry loop: at most MaxAttempts invocations in
// total, with a fixed Delay between consecutive attempts. Policies are
// immutable configuration; resolve them once, before the loop runs,
// rather than re-reading configuration on each attempt.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultPolicy returns the policy used when nothing is configured.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: DefaultMaxAttempts, Delay: DefaultDelay}
}

// Validate reports whether the policy describes a runnable loop. Run
// tolerates an invalid policy by degrading to a single attempt, but
// callers accepting user configuration should reject it up front.
func (p Policy) Validate() error {
	if p.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1 (got %d)", p.MaxAttempts)
	}
	if p.Delay < 0 {
		return fmt.Errorf("delay between attempts must not be negative (got %s)", p.Delay)
	}
	return nil
}
