// Package clock provides the time source used by token issuance and
// verification. Production code injects [Real]; tests inject [Fixed] so that
// expiry decisions are deterministic.
package clock

import "time"

// Clock reports the current instant.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

// Real returns the process wall clock. Every instant is reported in UTC.
func Real() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always reports the same instant. The zero value reports the
// Unix epoch.
type FixedClock struct {
	t time.Time
}

// Fixed returns a clock frozen at t (converted to UTC).
func Fixed(t time.Time) FixedClock {
	return FixedClock{t: t.UTC()}
}

// Now returns the frozen instant.
func (c FixedClock) Now() time.Time {
	if c.t.IsZero() {
		return time.Unix(0, 0).UTC()
	}
	return c.t
}

// Add returns a new clock frozen d after c. The receiver is not modified.
func (c FixedClock) Add(d time.Duration) FixedClock {
	return Fixed(c.Now().Add(d))
}
