// Package session keeps the live carousel mounts of the site. A mount is
// created when a browser shows a deck and disposed when it goes away,
// explicitly or by expiring.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/Zachkp/showcase/internal/carousel"
	"github.com/Zachkp/showcase/internal/catalog"
	"github.com/Zachkp/showcase/internal/clock"
	"github.com/Zachkp/showcase/internal/i18n"
	"github.com/Zachkp/showcase/internal/metrics"
)

var (
	ErrMountNotFound   = errors.New("session: mount not found")
	ErrSlideOutOfRange = errors.New("session: slide out of range")
	ErrClosed          = errors.New("session: hub closed")
)

// Reasons recorded when a mount goes away.
const (
	ReasonClient   = "client"
	ReasonExpired  = "expired"
	ReasonAdmin    = "admin"
	ReasonShutdown = "shutdown"
)

// DeckLoader is the part of the catalog the hub needs.
type DeckLoader interface {
	Deck(ctx context.Context, name string, locale i18n.Locale) (*catalog.Deck, error)
}

// Config tunes new controllers and mount expiry.
type Config struct {
	// TTL is how long a mount may go unseen before Sweep unmounts it.
	// Zero disables expiry.
	TTL time.Duration
	// Interval, when set, overrides the deck's autoplay interval.
	Interval time.Duration
}

type Hub struct {
	decks DeckLoader
	clock clock.Clock
	cfg   Config

	mu     sync.Mutex
	mounts map[string]*Mount
	closed bool
}

func NewHub(decks DeckLoader, clk clock.Clock, cfg Config) *Hub {
	if clk == nil {
		clk = clock.Real()
	}
	return &Hub{
		decks:  decks,
		clock:  clk,
		cfg:    cfg,
		mounts: make(map[string]*Mount),
	}
}

// Mount loads a deck and starts a controller for it.
func (h *Hub) Mount(ctx context.Context, deck string, locale i18n.Locale) (*Mount, error) {
	d, err := h.decks.Deck(ctx, deck, locale)
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	m := &Mount{
		ID:        xid.New().String(),
		Deck:      d,
		CreatedAt: now,
		lastSeen:  now,
	}

	opts := carousel.Options{
		Autoplay:     d.Autoplay,
		Interval:     d.Interval,
		PauseOnHover: d.PauseOnHover,
	}
	if h.cfg.Interval > 0 {
		opts.Interval = h.cfg.Interval
	}

	listener := func(ch carousel.Change) {
		metrics.Advances.WithLabelValues(d.Name, ch.Cause.String()).Inc()
		m.publish(ch)
	}
	m.Controller, err = carousel.New(len(d.Slides), opts, h.clock, listener)
	if err != nil {
		return nil, fmt.Errorf("deck %q: %w", deck, err)
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		m.Controller.Dispose()
		return nil, ErrClosed
	}
	h.mounts[m.ID] = m
	h.mu.Unlock()

	metrics.Mounts.WithLabelValues(d.Name).Inc()
	metrics.LiveMounts.Inc()
	log.Printf("Mounted %s carousel %s (%d slides, locale %s)", d.Name, m.ID, len(d.Slides), d.Locale)
	return m, nil
}

// Get returns a live mount and marks it as seen.
func (h *Hub) Get(id string) (*Mount, error) {
	h.mu.Lock()
	m, ok := h.mounts[id]
	h.mu.Unlock()

	if !ok {
		return nil, ErrMountNotFound
	}
	m.touch(h.clock.Now())
	return m, nil
}

// Select validates k against the mount's deck before handing it to the
// controller.
func (h *Hub) Select(id string, k int) (Info, error) {
	m, err := h.Get(id)
	if err != nil {
		return Info{}, err
	}
	if k < 0 || k >= m.Controller.Len() {
		return Info{}, fmt.Errorf("%w: %d not in [0, %d)", ErrSlideOutOfRange, k, m.Controller.Len())
	}

	m.Controller.Select(k)
	return m.Info(), nil
}

// Step moves a mount one slide forward (delta > 0) or back, wrapping at
// either end. Like Select it restarts the autoplay cycle.
func (h *Hub) Step(id string, delta int) (Info, error) {
	m, err := h.Get(id)
	if err != nil {
		return Info{}, err
	}

	if delta < 0 {
		m.Controller.Prev()
	} else {
		m.Controller.Next()
	}
	return m.Info(), nil
}

// Reconfigure changes autoplay and/or interval. The controller tears down
// the old timer before arming a new one.
func (h *Hub) Reconfigure(id string, autoplay *bool, interval *time.Duration) (Info, error) {
	m, err := h.Get(id)
	if err != nil {
		return Info{}, err
	}

	if interval != nil {
		if err := m.Controller.SetInterval(*interval); err != nil {
			return Info{}, err
		}
	}
	if autoplay != nil {
		m.Controller.SetAutoplay(*autoplay)
	}
	return m.Info(), nil
}

// Unmount disposes the mount's controller and closes its subscribers. A
// second Unmount of the same id reports ErrMountNotFound.
func (h *Hub) Unmount(id, reason string) error {
	h.mu.Lock()
	m, ok := h.mounts[id]
	delete(h.mounts, id)
	h.mu.Unlock()

	if !ok {
		return ErrMountNotFound
	}
	h.dispose(m, reason)
	return nil
}

func (h *Hub) dispose(m *Mount, reason string) {
	m.Controller.Dispose()
	m.closeSubscribers()

	metrics.Unmounts.WithLabelValues(reason).Inc()
	metrics.LiveMounts.Dec()
	log.Printf("Unmounted %s carousel %s (%s)", m.Deck.Name, m.ID, reason)
}

// Mounts lists live mounts, oldest first.
func (h *Hub) Mounts() []Info {
	h.mu.Lock()
	live := make([]*Mount, 0, len(h.mounts))
	for _, m := range h.mounts {
		live = append(live, m)
	}
	h.mu.Unlock()

	infos := make([]Info, 0, len(live))
	for _, m := range live {
		infos = append(infos, m.Info())
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].CreatedAt.Equal(infos[j].CreatedAt) {
			return infos[i].ID < infos[j].ID
		}
		return infos[i].CreatedAt.Before(infos[j].CreatedAt)
	})
	return infos
}

// Sweep unmounts every mount not seen within the TTL and returns how many
// went away.
func (h *Hub) Sweep(now time.Time) int {
	if h.cfg.TTL <= 0 {
		return 0
	}

	h.mu.Lock()
	var stale []*Mount
	for id, m := range h.mounts {
		if now.Sub(m.LastSeen()) > h.cfg.TTL {
			stale = append(stale, m)
			delete(h.mounts, id)
		}
	}
	h.mu.Unlock()

	for _, m := range stale {
		h.dispose(m, ReasonExpired)
	}
	return len(stale)
}

// Run sweeps expired mounts every interval until ctx is done.
func (h *Hub) Run(ctx context.Context, every time.Duration) {
	if h.cfg.TTL <= 0 || every <= 0 {
		return
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := h.Sweep(h.clock.Now()); n > 0 {
				log.Printf("Expired %d idle carousel mounts", n)
			}
		}
	}
}

// Close disposes every mount. Later Mount calls fail with ErrClosed.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	live := h.mounts
	h.mounts = make(map[string]*Mount)
	h.mu.Unlock()

	for _, m := range live {
		h.dispose(m, ReasonShutdown)
	}
}
