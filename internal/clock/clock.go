// Package clock abstracts wall time so carousel timers can be driven by a
// fake clock in tests.
package clock

import (
	"time"

	bclock "github.com/benbjohnson/clock"
)

// Timer is a cancellable pending callback.
type Timer interface {
	// Stop prevents the callback from firing. It reports false when the
	// timer already fired or was stopped.
	Stop() bool
}

// Clock defines the time source used by carousel controllers.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Real returns the system clock.
func Real() Clock {
	return Adapt(bclock.New())
}

// Adapt lets any benbjohnson clock drive controllers, *clock.Mock
// included. Mock callbacks run on their own goroutines, so tests on it
// need Eventually; Fake fires them inline.
func Adapt(c bclock.Clock) Clock {
	return wall{c}
}

type wall struct {
	c bclock.Clock
}

func (w wall) Now() time.Time {
	return w.c.Now()
}

func (w wall) AfterFunc(d time.Duration, f func()) Timer {
	return w.c.AfterFunc(d, f)
}
