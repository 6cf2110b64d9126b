package dnd

import (
	"sync"
	"time"
)

// Autoscroll defaults.
const (
	DefaultThreshold = 60
	DefaultStep      = 10
	DefaultInterval  = 16 * time.Millisecond
)

// ScrollFunc scrolls the viewport by dy (negative is up).
type ScrollFunc func(dy int)

// AutoScrollOptions configures an AutoScroller.
type AutoScrollOptions struct {
	// Threshold is the distance from a viewport edge that triggers
	// scrolling, in the same unit as pointer positions.
	Threshold int
	// Step is the distance scrolled per interval.
	Step     int
	Interval time.Duration
	Scroll   ScrollFunc
}

// AutoScroller scrolls at a fixed rate while the pointer is inside an edge
// zone. At most one ticker goroutine runs at a time.
type AutoScroller struct {
	threshold int
	step      int
	interval  time.Duration
	scroll    ScrollFunc

	mu     sync.Mutex
	dir    int
	stop   chan struct{}
	wg     sync.WaitGroup
	closed bool
}

// NewAutoScroller creates a stopped autoscroller.
func NewAutoScroller(opts AutoScrollOptions) *AutoScroller {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.Step <= 0 {
		opts.Step = DefaultStep
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Scroll == nil {
		opts.Scroll = func(int) {}
	}
	return &AutoScroller{
		threshold: opts.Threshold,
		step:      opts.Step,
		interval:  opts.Interval,
		scroll:    opts.Scroll,
	}
}

// Direction returns -1 near the top edge, 1 near the bottom edge and 0
// elsewhere.
func (a *AutoScroller) Direction(y, viewportHeight int) int {
	switch {
	case y < a.threshold:
		return -1
	case y > viewportHeight-a.threshold:
		return 1
	}
	return 0
}

// Update starts, redirects or stops scrolling for a pointer position.
func (a *AutoScroller) Update(y, viewportHeight int) {
	dir := a.Direction(y, viewportHeight)
	if dir == 0 {
		a.Stop()
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.dir = dir
	if a.stop != nil {
		return
	}
	a.stop = make(chan struct{})
	a.wg.Add(1)
	go a.run(a.stop)
}

func (a *AutoScroller) run(stop <-chan struct{}) {
	defer a.wg.Done()
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			a.mu.Lock()
			dy := a.dir * a.step
			a.mu.Unlock()
			if dy != 0 {
				a.scroll(dy)
			}
		}
	}
}

// Active reports whether the ticker is running.
func (a *AutoScroller) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stop != nil
}

// Stop halts scrolling and waits for the ticker goroutine to exit.
func (a *AutoScroller) Stop() {
	a.mu.Lock()
	stop := a.stop
	a.stop = nil
	a.dir = 0
	a.mu.Unlock()
	if stop != nil {
		close(stop)
	}
	a.wg.Wait()
}

// Close stops scrolling permanently. Later Updates are ignored.
func (a *AutoScroller) Close() {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
	a.Stop()
}
