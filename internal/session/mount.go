package session

import (
	"sync"
	"time"

	"github.com/Zachkp/showcase/internal/carousel"
	"github.com/Zachkp/showcase/internal/catalog"
)

// Mount is one live view of a deck. It owns exactly one controller.
type Mount struct {
	ID         string
	Deck       *catalog.Deck
	Controller *carousel.Controller
	CreatedAt  time.Time

	mu       sync.Mutex
	lastSeen time.Time
	subs     map[int]chan carousel.Change
	nextSub  int
	closed   bool
}

// Info is a point-in-time description of a mount.
type Info struct {
	ID           string    `json:"id"`
	Deck         string    `json:"deck"`
	Locale       string    `json:"locale"`
	CreatedAt    time.Time `json:"created_at"`
	LastSeen     time.Time `json:"last_seen"`
	State        string    `json:"state"`
	Index        int       `json:"index"`
	Slides       int       `json:"slides"`
	Autoplay     bool      `json:"autoplay"`
	IntervalMS   int64     `json:"interval_ms"`
	PauseOnHover bool      `json:"pause_on_hover"`
	Paused       bool      `json:"paused"`
}

func (m *Mount) Info() Info {
	snap := m.Controller.Snapshot()

	return Info{
		ID:           m.ID,
		Deck:         m.Deck.Name,
		Locale:       string(m.Deck.Locale),
		CreatedAt:    m.CreatedAt,
		LastSeen:     m.LastSeen(),
		State:        snap.State.String(),
		Index:        snap.Index,
		Slides:       snap.Len,
		Autoplay:     snap.Options.Autoplay,
		IntervalMS:   snap.Options.Interval.Milliseconds(),
		PauseOnHover: snap.Options.PauseOnHover,
		Paused:       snap.Paused,
	}
}

func (m *Mount) touch(now time.Time) {
	m.mu.Lock()
	m.lastSeen = now
	m.mu.Unlock()
}

func (m *Mount) LastSeen() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSeen
}

// Subscribe returns a channel of index changes and a func that ends the
// subscription. The channel is closed on unmount. A subscriber that falls
// more than buf changes behind misses changes instead of blocking the
// controller.
func (m *Mount) Subscribe(buf int) (<-chan carousel.Change, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan carousel.Change, buf)
	if m.closed {
		close(ch)
		return ch, func() {}
	}

	id := m.nextSub
	m.nextSub++
	if m.subs == nil {
		m.subs = make(map[int]chan carousel.Change)
	}
	m.subs[id] = ch

	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if sub, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(sub)
		}
	}
}

func (m *Mount) publish(change carousel.Change) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	for _, ch := range m.subs {
		select {
		case ch <- change:
		default:
		}
	}
}

func (m *Mount) closeSubscribers() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	for id, ch := range m.subs {
		delete(m.subs, id)
		close(ch)
	}
}
