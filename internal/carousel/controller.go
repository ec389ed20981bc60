// Package carousel implements the timed slideshow behind the site's
// about, aesthetic and accommodation sections: automatic advance on a
// fixed interval, with manual selection that restarts the cycle.
package carousel

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Zachkp/showcase/internal/clock"
)

var (
	ErrInvalidSlideCount = errors.New("carousel: slide count must be at least 1")
	ErrInvalidInterval   = errors.New("carousel: interval must be positive")
)

// State is the controller's position in its lifecycle.
type State int

const (
	// Idle means no timer is armed.
	Idle State = iota
	// Running means exactly one autoplay timer is armed.
	Running
	// Disposed is absorbing: every later call is a no-op.
	Disposed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Disposed:
		return "disposed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Cause tells a listener why the index moved.
type Cause int

const (
	CauseTick Cause = iota
	CauseSelect
)

func (c Cause) String() string {
	if c == CauseSelect {
		return "select"
	}
	return "tick"
}

// Change is delivered to the listener after every index mutation.
type Change struct {
	Index int
	Cause Cause
	At    time.Time
}

// Listener observes index changes. It runs with the controller locked so
// that changes arrive in order; it must not call back into the
// Controller.
type Listener func(Change)

type Options struct {
	Autoplay bool
	Interval time.Duration
	// PauseOnHover enables Pause and Resume. Without it both are no-ops.
	PauseOnHover bool
}

// Snapshot is a consistent read of the controller.
type Snapshot struct {
	Index   int
	Len     int
	State   State
	Options Options
	Paused  bool
}

// Controller owns the current slide index and the single autoplay timer
// of one mounted carousel.
type Controller struct {
	mu       sync.Mutex
	clock    clock.Clock
	listener Listener

	n     int
	opts  Options
	index int

	timer    clock.Timer
	gen      uint64
	paused   bool
	disposed bool
}

// New creates a controller at slide 0. The autoplay timer is armed iff
// opts.Autoplay is set and there is more than one slide.
func New(n int, opts Options, clk clock.Clock, listener Listener) (*Controller, error) {
	if n < 1 {
		return nil, ErrInvalidSlideCount
	}
	if opts.Interval <= 0 {
		return nil, ErrInvalidInterval
	}
	if clk == nil {
		clk = clock.Real()
	}

	c := &Controller{
		clock:    clk,
		listener: listener,
		n:        n,
		opts:     opts,
	}

	c.mu.Lock()
	c.schedule()
	c.mu.Unlock()

	return c, nil
}

// Tick advances the index by one, wrapping at the end. It leaves the
// timer alone.
func (c *Controller) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return
	}
	c.advance(CauseTick)
}

// Select jumps to slide k and restarts the autoplay cycle so that the
// next automatic advance happens a full interval from now. k must be in
// [0, Len()); callers validate untrusted input before calling.
func (c *Controller) Select(k int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return
	}
	if k < 0 || k >= c.n {
		panic(fmt.Sprintf("carousel: slide %d out of range [0, %d)", k, c.n))
	}

	c.jump(k)
}

// Next selects the following slide, wrapping to the first.
func (c *Controller) Next() {
	c.step(1)
}

// Prev selects the previous slide, wrapping to the last.
func (c *Controller) Prev() {
	c.step(-1)
}

func (c *Controller) step(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return
	}
	c.jump(((c.index+delta)%c.n + c.n) % c.n)
}

// jump is a selection: cancel, move, notify, re-arm. The caller holds mu.
func (c *Controller) jump(k int) {
	c.cancel()
	c.index = k
	c.notify(CauseSelect)
	c.schedule()
}

// SetInterval replaces the autoplay interval, tearing down the old timer
// before arming a new one.
func (c *Controller) SetInterval(d time.Duration) error {
	if d <= 0 {
		return ErrInvalidInterval
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return nil
	}
	c.cancel()
	c.opts.Interval = d
	c.schedule()
	return nil
}

// SetAutoplay turns automatic advance on or off.
func (c *Controller) SetAutoplay(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return
	}
	c.cancel()
	c.opts.Autoplay = on
	c.schedule()
}

// Pause holds autoplay while the pointer or focus is on the carousel.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed || !c.opts.PauseOnHover || c.paused {
		return
	}
	c.paused = true
	c.cancel()
}

// Resume re-arms autoplay with a full interval after Pause.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed || !c.paused {
		return
	}
	c.paused = false
	c.schedule()
}

// Dispose cancels the timer. It is safe to call any number of times.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return
	}
	c.cancel()
	c.disposed = true
}

func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

func (c *Controller) Len() int {
	return c.n
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state()
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Index:   c.index,
		Len:     c.n,
		State:   c.state(),
		Options: c.opts,
		Paused:  c.paused,
	}
}

func (c *Controller) state() State {
	switch {
	case c.disposed:
		return Disposed
	case c.timer != nil:
		return Running
	}
	return Idle
}

func (c *Controller) advance(cause Cause) {
	c.index = (c.index + 1) % c.n
	c.notify(cause)
}

func (c *Controller) notify(cause Cause) {
	if c.listener == nil {
		return
	}
	c.listener(Change{Index: c.index, Cause: cause, At: c.clock.Now()})
}

// schedule arms the autoplay timer when allowed. The caller holds mu and
// has already cancelled any previous timer.
func (c *Controller) schedule() {
	if c.disposed || c.paused || !c.opts.Autoplay || c.n <= 1 {
		return
	}

	c.gen++
	gen := c.gen
	c.timer = c.clock.AfterFunc(c.opts.Interval, func() { c.fire(gen) })
}

// cancel stops the current timer. Bumping the generation also disarms a
// callback that already started running and is waiting on mu.
func (c *Controller) cancel() {
	c.gen++
	if c.timer == nil {
		return
	}
	c.timer.Stop()
	c.timer = nil
}

func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed || gen != c.gen {
		return
	}
	c.timer = nil
	c.advance(CauseTick)
	c.schedule()
}
