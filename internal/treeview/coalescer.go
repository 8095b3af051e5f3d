package treeview

import "time"

// DefaultRedrawInterval is the repaint batching period.
const DefaultRedrawInterval = 100 * time.Millisecond

// Coalescer batches redraw requests. Marks between two flushes produce a
// single repaint.
type Coalescer struct {
	interval time.Duration
	dirty    map[Row]struct{}
	full     bool
	repaints int
}

// NewCoalescer creates a coalescer flushed every interval by the host.
func NewCoalescer(interval time.Duration) *Coalescer {
	if interval <= 0 {
		interval = DefaultRedrawInterval
	}
	return &Coalescer{interval: interval, dirty: make(map[Row]struct{})}
}

// Interval returns the flush period.
func (c *Coalescer) Interval() time.Duration { return c.interval }

// Mark queues r for repaint.
func (c *Coalescer) Mark(r Row) {
	if r == nil {
		return
	}
	c.dirty[r] = struct{}{}
}

// Invalidate queues a repaint not tied to a row (scroll, resize, structure).
func (c *Coalescer) Invalidate() { c.full = true }

// Dirty reports whether r is queued.
func (c *Coalescer) Dirty(r Row) bool {
	_, ok := c.dirty[r]
	return ok
}

// Pending returns the number of queued rows.
func (c *Coalescer) Pending() int { return len(c.dirty) }

// Flush reports whether a repaint is due and starts a new batch.
func (c *Coalescer) Flush() bool {
	due := c.full || len(c.dirty) > 0
	if len(c.dirty) > 0 {
		c.dirty = make(map[Row]struct{})
	}
	c.full = false
	if due {
		c.repaints++
	}
	return due
}

// Repaints returns how many flushes requested a repaint.
func (c *Coalescer) Repaints() int { return c.repaints }
