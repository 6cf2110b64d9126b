package dnd

import (
	"slices"
	"sync"

	"github.com/matzehuels/pagesmith/pkg/document"
	"github.com/matzehuels/pagesmith/pkg/errors"
)

// OrderFunc returns the current id order.
type OrderFunc func() []string

// ReorderFunc applies a new id order.
type ReorderFunc func(ids []string) error

// Option configures a Controller.
type Option func(*Controller)

// WithAutoScroll attaches an autoscroller that follows pointer moves during
// a drag and stops when the drag ends.
func WithAutoScroll(s *AutoScroller) Option {
	return func(c *Controller) { c.scroller = s }
}

// Controller tracks a single drag. It is safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	order    OrderFunc
	reorder  ReorderFunc
	scroller *AutoScroller

	active string
	over   string
}

// NewController creates a controller over the given order source.
func NewController(order OrderFunc, reorder ReorderFunc, opts ...Option) *Controller {
	c := &Controller{order: order, reorder: reorder}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins dragging id.
func (c *Controller) Start(id string) error {
	if !slices.Contains(c.order(), id) {
		return errors.NotFound(id)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = id
	c.over = id
	return nil
}

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active != ""
}

// Active returns the dragged id, or "".
func (c *Controller) Active() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Over records the hovered drop target. An empty id means the pointer is
// outside every target.
func (c *Controller) Over(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != "" {
		c.over = id
	}
}

// Target returns the current drop target.
func (c *Controller) Target() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.over
}

// Pointer forwards a pointer position to the autoscroller while dragging.
func (c *Controller) Pointer(y, viewportHeight int) {
	c.mu.Lock()
	dragging := c.active != ""
	s := c.scroller
	c.mu.Unlock()
	if s != nil && dragging {
		s.Update(y, viewportHeight)
	}
}

// Projected returns the order that dropping on the current target would
// produce.
func (c *Controller) Projected() []string {
	c.mu.Lock()
	active, over := c.active, c.over
	c.mu.Unlock()
	return project(c.order(), active, over)
}

func project(ids []string, active, over string) []string {
	from, to := slices.Index(ids, active), slices.Index(ids, over)
	if from < 0 || to < 0 {
		return slices.Clone(ids)
	}
	return document.ArrayMove(ids, from, to)
}

// End finishes the drag on target and reports whether a reorder was
// applied. Dropping outside any target ("") or on the dragged item itself
// is a no-op.
func (c *Controller) End(target string) (bool, error) {
	c.mu.Lock()
	active := c.active
	c.active, c.over = "", ""
	s := c.scroller
	c.mu.Unlock()
	if s != nil {
		s.Stop()
	}

	if active == "" || target == "" || target == active {
		return false, nil
	}
	ids := c.order()
	if !slices.Contains(ids, target) || !slices.Contains(ids, active) {
		return false, nil
	}
	if err := c.reorder(project(ids, active, target)); err != nil {
		return false, err
	}
	return true, nil
}

// Cancel abandons the drag without reordering.
func (c *Controller) Cancel() {
	c.mu.Lock()
	c.active, c.over = "", ""
	s := c.scroller
	c.mu.Unlock()
	if s != nil {
		s.Stop()
	}
}
