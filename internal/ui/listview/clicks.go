package listview

import (
	"time"

	"github.com/Akashdeep-Patra/rowview/internal/treeview"
)

// DefaultDoubleClickTimeout is the maximum time between the two presses of
// a double click.
const DefaultDoubleClickTimeout = 500 * time.Millisecond

// clickDetector classifies presses as single or double clicks by timing
// and row. The count cycles 1 → 2 → 1 so a third press starts over.
type clickDetector struct {
	timeout time.Duration
	now     func() time.Time

	lastTime time.Time
	lastRow  int
	count    int
}

func newClickDetector(timeout time.Duration) *clickDetector {
	if timeout <= 0 {
		timeout = DefaultDoubleClickTimeout
	}
	return &clickDetector{timeout: timeout, now: time.Now}
}

// detect records a press on row (ok false: empty space) and classifies it.
func (c *clickDetector) detect(row int, ok bool) treeview.ClickClass {
	now := c.now()
	if !ok {
		c.reset()
		return treeview.ClickNone
	}

	if c.count == 1 && row == c.lastRow && now.Sub(c.lastTime) < c.timeout {
		c.count = 2
	} else {
		c.count = 1
	}
	c.lastTime = now
	c.lastRow = row

	if c.count == 2 {
		c.count = 0
		return treeview.ClickDouble
	}
	return treeview.ClickSingle
}

// reset clears the click history so the next press is a single click.
func (c *clickDetector) reset() {
	c.count = 0
	c.lastTime = time.Time{}
	c.lastRow = 0
}
