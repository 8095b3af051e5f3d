package treeview

import "time"

// DefaultEdgeBand is the edge band and per-tick nudge, in content units.
const DefaultEdgeBand = 24

// DefaultAutoScrollInterval is the period between auto-scroll ticks.
const DefaultAutoScrollInterval = 70 * time.Millisecond

// Direction is the auto-scroll direction.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "none"
	}
}

// Tick is a scheduled auto-scroll step. The host delivers it back after
// Delay; a tick whose generation is no longer current is stale.
type Tick struct {
	Gen   uint64
	Dir   Direction
	Delay time.Duration
}

// AutoScroll decides when a drag near the viewport edge should scroll and
// keeps at most one tick loop alive. Every Arm or Cancel bumps the
// generation, which invalidates whatever tick the host still has in flight.
type AutoScroll struct {
	band     int
	header   int
	interval time.Duration

	gen      uint64
	dir      Direction
	pointerY int
}

// NewAutoScroll creates a controller. header is the height of any header
// drawn at the top of the viewport.
func NewAutoScroll(band, header int, interval time.Duration) *AutoScroll {
	if band <= 0 {
		band = DefaultEdgeBand
	}
	if interval <= 0 {
		interval = DefaultAutoScrollInterval
	}
	return &AutoScroll{band: band, header: header, interval: interval}
}

// Band returns the edge band, which is also the per-tick nudge.
func (a *AutoScroll) Band() int { return a.band }

// Evaluate classifies a viewport-relative pointer y against a viewport
// whose row area is page units tall below the header.
func (a *AutoScroll) Evaluate(y, page int) Direction {
	switch {
	case y > a.header+page-2*a.band:
		return DirDown
	case y < 2*a.band+a.header:
		return DirUp
	}
	return DirNone
}

// Arm cancels any running loop and starts a new one when y is inside an
// edge band. The returned tick is valid only when ok is true.
func (a *AutoScroll) Arm(y, page int) (Tick, bool) {
	a.Cancel()
	a.pointerY = y
	dir := a.Evaluate(y, page)
	if dir == DirNone {
		return Tick{}, false
	}
	a.dir = dir
	return Tick{Gen: a.gen, Dir: dir, Delay: a.interval}, true
}

// Fire validates a delivered tick. When it is current the caller scrolls by
// Nudge and reschedules the returned tick.
func (a *AutoScroll) Fire(gen uint64) (Tick, bool) {
	if gen != a.gen || a.dir == DirNone {
		return Tick{}, false
	}
	return Tick{Gen: a.gen, Dir: a.dir, Delay: a.interval}, true
}

// Nudge returns the signed offset change for one tick.
func (a *AutoScroll) Nudge() int {
	switch a.dir {
	case DirUp:
		return -a.band
	case DirDown:
		return a.band
	}
	return 0
}

// Cancel stops the loop. Any tick still in flight becomes stale.
func (a *AutoScroll) Cancel() {
	a.gen++
	a.dir = DirNone
}

// Active reports whether a tick loop is live.
func (a *AutoScroll) Active() bool { return a.dir != DirNone }

// Generation returns the current generation.
func (a *AutoScroll) Generation() uint64 { return a.gen }

// PointerY returns the viewport-relative y recorded by the last Arm.
func (a *AutoScroll) PointerY() int { return a.pointerY }
