// Package carousel implements the slide state machine used by gallery,
// review and project carousels, and the track computation for marquees.
//
// A [Controller] holds {CurrentIndex, ItemCount, IsPlaying}. Next and Prev
// wrap modulo the item count. Autoplay advances once per interval while
// playing and is paused for the duration of a user interaction (hover,
// drag). Time is injected through [Controller.Tick] so the machine can be
// driven by any clock: a ticker goroutine via [Controller.Run], a terminal
// UI tick message, or a test.
package carousel

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is the autoplay period when none is configured.
const DefaultInterval = 5 * time.Second

// Options configures a Controller.
type Options struct {
	ItemCount int
	// PerPage is the number of items visible at once. Defaults to 1.
	PerPage  int
	Autoplay bool
	Interval time.Duration
	// Now is the clock used to seed the autoplay timer. Defaults to time.Now.
	Now func() time.Time
}

// State is a snapshot of a controller.
type State struct {
	CurrentIndex int
	ItemCount    int
	IsPlaying    bool
}

// Controller is a carousel state machine. It is safe for concurrent use.
type Controller struct {
	mu          sync.Mutex
	index       int
	count       int
	perPage     int
	autoplay    bool
	interacting bool
	interval    time.Duration
	last        time.Time
	now         func() time.Time

	done      chan struct{}
	closeOnce sync.Once
}

// New creates a controller.
func New(opts Options) *Controller {
	if opts.PerPage < 1 {
		opts.PerPage = 1
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ItemCount < 0 {
		opts.ItemCount = 0
	}
	return &Controller{
		count:    opts.ItemCount,
		perPage:  opts.PerPage,
		autoplay: opts.Autoplay,
		interval: opts.Interval,
		now:      opts.Now,
		last:     opts.Now(),
		done:     make(chan struct{}),
	}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	return State{
		CurrentIndex: c.index,
		ItemCount:    c.count,
		IsPlaying:    c.playingLocked(),
	}
}

func (c *Controller) playingLocked() bool {
	if !c.autoplay || c.interacting {
		return false
	}
	select {
	case <-c.done:
		return false
	default:
		return true
	}
}

// Next advances one item, wrapping to the first after the last.
func (c *Controller) Next() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stepLocked(1)
}

// Prev moves back one item, wrapping to the last before the first.
func (c *Controller) Prev() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stepLocked(-1)
}

func (c *Controller) stepLocked(delta int) int {
	if c.count == 0 {
		c.index = 0
		return 0
	}
	c.index = ((c.index+delta)%c.count + c.count) % c.count
	c.last = c.now()
	return c.index
}

// GoTo jumps to index i, clamped to the valid range.
func (c *Controller) GoTo(i int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = clamp(i, c.count)
	c.last = c.now()
	return c.index
}

// SetItemCount updates the number of items, clamping the current index.
func (c *Controller) SetItemCount(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n < 0 {
		n = 0
	}
	c.count = n
	c.index = clamp(c.index, n)
}

func clamp(i, n int) int {
	switch {
	case n == 0 || i < 0:
		return 0
	case i >= n:
		return n - 1
	}
	return i
}

// Play enables autoplay.
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoplay = true
	c.last = c.now()
}

// Pause disables autoplay.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoplay = false
}

// Interact pauses autoplay until EndInteraction.
func (c *Controller) Interact() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interacting = true
}

// EndInteraction resumes autoplay. The next advance happens one full
// interval later.
func (c *Controller) EndInteraction() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interacting = false
	c.last = c.now()
}

// Tick advances the carousel if playing and an interval has elapsed since
// the last movement. It reports whether the index changed.
func (c *Controller) Tick(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.playingLocked() || c.count < 2 {
		return false
	}
	if now.Sub(c.last) < c.interval {
		return false
	}
	c.index = (c.index + 1) % c.count
	c.last = now
	return true
}

// Interval returns the autoplay period.
func (c *Controller) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

// Run drives autoplay from a ticker until ctx is done or the controller is
// closed, calling onChange after every advance. The ticker is always
// stopped on return.
func (c *Controller) Run(ctx context.Context, onChange func(State)) error {
	c.mu.Lock()
	interval := c.interval
	c.mu.Unlock()

	step := interval / 4
	if step <= 0 {
		step = interval
	}
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.done:
			return nil
		case now := <-ticker.C:
			if c.Tick(now) && onChange != nil {
				onChange(c.State())
			}
		}
	}
}

// Close stops autoplay permanently and releases any running Run loop.
func (c *Controller) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// Pages returns the number of pages for multi-item views.
func (c *Controller) Pages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.count == 0 {
		return 0
	}
	return (c.count + c.perPage - 1) / c.perPage
}

// Page returns the page containing the current index.
func (c *Controller) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index / c.perPage
}

// Visible returns the indexes shown starting at the current index, wrapping
// around the end.
func (c *Controller) Visible() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Window(c.index, c.count, c.perPage)
}

// Window returns up to perPage indexes starting at start, wrapping modulo
// count.
func Window(start, count, perPage int) []int {
	if count == 0 {
		return nil
	}
	if perPage > count {
		perPage = count
	}
	out := make([]int, perPage)
	for i := range out {
		out[i] = (start + i) % count
	}
	return out
}
