package carousel

import (
	"time"

	bclock "github.com/benbjohnson/clock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Zachkp/showcase/internal/clock"
)

var _ = Describe("Controller", func() {
	var (
		start   = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		fake    *clock.Fake
		changes []Change
		record  Listener
	)

	BeforeEach(func() {
		fake = clock.NewFake(start)
		changes = nil
		record = func(ch Change) { changes = append(changes, ch) }
	})

	newController := func(n int, opts Options) *Controller {
		c, err := New(n, opts, fake, record)
		Expect(err).NotTo(HaveOccurred())
		return c
	}

	Context("when constructed", func() {
		It("should reject an empty deck", func() {
			_, err := New(0, Options{Interval: time.Second}, fake, nil)
			Expect(err).To(MatchError(ErrInvalidSlideCount))
		})

		It("should reject a non-positive interval", func() {
			_, err := New(3, Options{Autoplay: true}, fake, nil)
			Expect(err).To(MatchError(ErrInvalidInterval))

			_, err = New(3, Options{Interval: -time.Second}, fake, nil)
			Expect(err).To(MatchError(ErrInvalidInterval))
		})

		It("should start at slide 0", func() {
			for _, n := range []int{1, 2, 7} {
				for _, autoplay := range []bool{true, false} {
					c := newController(n, Options{Autoplay: autoplay, Interval: time.Second})
					Expect(c.Index()).To(Equal(0))
					c.Dispose()
				}
			}
		})

		It("should arm a timer only with autoplay and more than one slide", func() {
			c := newController(3, Options{Autoplay: true, Interval: time.Second})
			Expect(c.State()).To(Equal(Running))
			Expect(fake.Pending()).To(Equal(1))
			c.Dispose()

			c = newController(3, Options{Autoplay: false, Interval: time.Second})
			Expect(c.State()).To(Equal(Idle))
			Expect(fake.Pending()).To(Equal(0))
		})

		It("should never arm a timer for a single slide", func() {
			c := newController(1, Options{Autoplay: true, Interval: time.Second})
			Expect(c.State()).To(Equal(Idle))

			fake.Advance(time.Minute)
			c.Select(0)
			c.SetAutoplay(true)
			Expect(c.SetInterval(2 * time.Second)).To(Succeed())

			Expect(fake.Pending()).To(Equal(0))
			Expect(c.Index()).To(Equal(0))
		})
	})

	Context("when autoplaying", func() {
		It("should advance once per interval and wrap around", func() {
			c := newController(4, Options{Autoplay: true, Interval: time.Second})

			fake.Advance(time.Second)
			Expect(c.Index()).To(Equal(1))

			fake.Advance(3 * time.Second)
			Expect(c.Index()).To(Equal(0))
			Expect(changes).To(HaveLen(4))
			Expect(changes[3].Cause).To(Equal(CauseTick))
			Expect(fake.Pending()).To(Equal(1))
		})

		It("should not advance before the interval elapses", func() {
			c := newController(4, Options{Autoplay: true, Interval: time.Second})

			fake.Advance(999 * time.Millisecond)
			Expect(c.Index()).To(Equal(0))
			Expect(changes).To(BeEmpty())
		})
	})

	Context("when a slide is selected", func() {
		It("should jump immediately and restart the cycle from the selection", func() {
			c := newController(5, Options{Autoplay: true, Interval: 6 * time.Second})

			fake.Advance(6 * time.Second)
			Expect(c.Index()).To(Equal(1))

			fake.Advance(500 * time.Millisecond)
			c.Select(4)
			Expect(c.Index()).To(Equal(4))
			Expect(fake.Pending()).To(Equal(1))

			fake.Advance(5500 * time.Millisecond)
			Expect(c.Index()).To(Equal(4), "the stale 12000ms tick must not fire")

			fake.Advance(499 * time.Millisecond)
			Expect(c.Index()).To(Equal(4))

			fake.Advance(time.Millisecond)
			Expect(c.Index()).To(Equal(0))
			Expect(fake.Now().Sub(start)).To(Equal(12500 * time.Millisecond))
			Expect(changes[len(changes)-1].At).To(Equal(fake.Now()))
		})

		It("should report the selection to the listener", func() {
			c := newController(3, Options{Autoplay: false, Interval: time.Second})

			c.Select(2)
			Expect(changes).To(HaveLen(1))
			Expect(changes[0].Index).To(Equal(2))
			Expect(changes[0].Cause).To(Equal(CauseSelect))
		})

		It("should keep a single timer across repeated selections", func() {
			c := newController(3, Options{Autoplay: true, Interval: time.Second})

			for i := 0; i < 10; i++ {
				c.Select(i % 3)
				Expect(fake.Pending()).To(Equal(1))
			}
		})

		It("should stay idle without autoplay", func() {
			c := newController(3, Options{Autoplay: false, Interval: time.Second})

			c.Select(1)
			fake.Advance(time.Hour)
			Expect(c.Index()).To(Equal(1))
			Expect(c.State()).To(Equal(Idle))
		})

		It("should panic on an out of range slide", func() {
			c := newController(3, Options{Autoplay: true, Interval: time.Second})

			Expect(func() { c.Select(3) }).To(Panic())
			Expect(func() { c.Select(-1) }).To(Panic())
		})
	})

	Context("when stepped with the arrows", func() {
		It("should wrap in both directions", func() {
			c := newController(3, Options{Autoplay: false, Interval: time.Second})

			c.Prev()
			Expect(c.Index()).To(Equal(2))
			c.Next()
			Expect(c.Index()).To(Equal(0))
			c.Next()
			c.Next()
			c.Next()
			Expect(c.Index()).To(Equal(0))
			Expect(changes).To(HaveLen(5))
			Expect(changes[0].Cause).To(Equal(CauseSelect))
		})

		It("should restart the cycle like a selection", func() {
			c := newController(4, Options{Autoplay: true, Interval: 2 * time.Second})

			fake.Advance(1500 * time.Millisecond)
			c.Next()
			Expect(c.Index()).To(Equal(1))
			Expect(fake.Pending()).To(Equal(1))

			fake.Advance(1999 * time.Millisecond)
			Expect(c.Index()).To(Equal(1))
			fake.Advance(time.Millisecond)
			Expect(c.Index()).To(Equal(2))
		})

		It("should do nothing once disposed", func() {
			c := newController(3, Options{Autoplay: true, Interval: time.Second})
			c.Dispose()

			c.Next()
			c.Prev()
			Expect(c.Index()).To(Equal(0))
			Expect(changes).To(BeEmpty())
		})
	})

	Context("when ticked directly", func() {
		It("should advance without touching the timer", func() {
			c := newController(2, Options{Autoplay: true, Interval: time.Second})

			c.Tick()
			Expect(c.Index()).To(Equal(1))
			c.Tick()
			Expect(c.Index()).To(Equal(0))
			Expect(fake.Pending()).To(Equal(1))
		})
	})

	Context("when reconfigured", func() {
		It("should restart with the new interval", func() {
			c := newController(3, Options{Autoplay: true, Interval: time.Second})

			fake.Advance(500 * time.Millisecond)
			Expect(c.SetInterval(3 * time.Second)).To(Succeed())
			Expect(fake.Pending()).To(Equal(1))

			fake.Advance(2999 * time.Millisecond)
			Expect(c.Index()).To(Equal(0))
			fake.Advance(time.Millisecond)
			Expect(c.Index()).To(Equal(1))
		})

		It("should reject a non-positive interval and keep running", func() {
			c := newController(3, Options{Autoplay: true, Interval: time.Second})

			Expect(c.SetInterval(0)).To(MatchError(ErrInvalidInterval))
			Expect(c.Snapshot().Options.Interval).To(Equal(time.Second))
			Expect(c.State()).To(Equal(Running))
		})

		It("should stop and restart on autoplay changes", func() {
			c := newController(3, Options{Autoplay: true, Interval: time.Second})

			c.SetAutoplay(false)
			Expect(c.State()).To(Equal(Idle))
			Expect(fake.Pending()).To(Equal(0))

			c.SetAutoplay(true)
			Expect(c.State()).To(Equal(Running))
			Expect(fake.Pending()).To(Equal(1))
		})
	})

	Context("when pause on hover is enabled", func() {
		It("should hold autoplay until resumed", func() {
			c := newController(3, Options{Autoplay: true, Interval: time.Second, PauseOnHover: true})

			fake.Advance(800 * time.Millisecond)
			c.Pause()
			Expect(c.State()).To(Equal(Idle))
			Expect(c.Snapshot().Paused).To(BeTrue())

			fake.Advance(time.Hour)
			Expect(c.Index()).To(Equal(0))

			c.Resume()
			fake.Advance(999 * time.Millisecond)
			Expect(c.Index()).To(Equal(0))
			fake.Advance(time.Millisecond)
			Expect(c.Index()).To(Equal(1))
		})

		It("should not re-arm on selection while paused", func() {
			c := newController(3, Options{Autoplay: true, Interval: time.Second, PauseOnHover: true})

			c.Pause()
			c.Select(2)
			Expect(c.Index()).To(Equal(2))
			Expect(fake.Pending()).To(Equal(0))
		})
	})

	Context("when pause on hover is disabled", func() {
		It("should ignore pause requests", func() {
			c := newController(3, Options{Autoplay: true, Interval: time.Second})

			c.Pause()
			Expect(c.State()).To(Equal(Running))
			fake.Advance(time.Second)
			Expect(c.Index()).To(Equal(1))
		})
	})

	Context("when disposed", func() {
		It("should cancel the timer and absorb later calls", func() {
			c := newController(3, Options{Autoplay: true, Interval: time.Second, PauseOnHover: true})

			c.Dispose()
			Expect(fake.Pending()).To(Equal(0))
			Expect(c.State()).To(Equal(Disposed))

			Expect(func() {
				c.Dispose()
				c.Tick()
				c.Select(2)
				c.SetAutoplay(true)
				c.Pause()
				c.Resume()
				Expect(c.SetInterval(time.Millisecond)).To(Succeed())
			}).NotTo(Panic())

			fake.Advance(time.Hour)
			Expect(c.Index()).To(Equal(0))
			Expect(fake.Pending()).To(Equal(0))
			Expect(changes).To(BeEmpty())
		})

		It("should drop a tick whose timer could not be stopped", func() {
			c := newController(3, Options{Autoplay: true, Interval: time.Second})

			c.mu.Lock()
			stale := c.gen
			c.mu.Unlock()

			c.Dispose()
			c.fire(stale)
			Expect(c.Index()).To(Equal(0))
		})
	})

	It("should drop a stale tick that raced a selection", func() {
		c := newController(3, Options{Autoplay: true, Interval: time.Second})

		c.mu.Lock()
		stale := c.gen
		c.mu.Unlock()

		c.Select(2)
		c.fire(stale)
		Expect(c.Index()).To(Equal(2))
		Expect(fake.Pending()).To(Equal(1))
	})
})

var _ = Describe("Controller on the real clock", func() {
	It("should advance on its own", func() {
		c, err := New(3, Options{Autoplay: true, Interval: 10 * time.Millisecond}, clock.Real(), nil)
		Expect(err).NotTo(HaveOccurred())
		defer c.Dispose()

		Eventually(c.Index, time.Second, 5*time.Millisecond).ShouldNot(Equal(0))
	})
})

var _ = Describe("Controller on a mock wall clock", func() {
	It("should follow the mock through a selection", func() {
		mock := bclock.NewMock()
		c, err := New(5, Options{Autoplay: true, Interval: 6 * time.Second}, clock.Adapt(mock), nil)
		Expect(err).NotTo(HaveOccurred())
		defer c.Dispose()

		mock.Add(6 * time.Second)
		Eventually(c.Index).Should(Equal(1))

		mock.Add(500 * time.Millisecond)
		c.Select(4)

		mock.Add(5500 * time.Millisecond)
		Consistently(c.Index, 50*time.Millisecond).Should(Equal(4))

		mock.Add(500 * time.Millisecond)
		Eventually(c.Index).Should(Equal(0))
	})
})
