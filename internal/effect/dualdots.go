package effect

import (
	"time"

	"github.com/coreman2200/funtimes-ledstrip/internal/color"
	"github.com/coreman2200/funtimes-ledstrip/internal/strip"
)

const dualDotsStep = 30 * time.Millisecond

// DualBouncingDots moves two green pixels towards each other from the ends
// and sends them back out once they meet.
type DualBouncingDots struct {
	gate  gate
	left  int
	right int // -1 until the strip length is known
	dir   int
}

func NewDualBouncingDots() *DualBouncingDots {
	return &DualBouncingDots{right: -1, dir: 1}
}

func (d *DualBouncingDots) Name() string { return "Dual Bouncing Dots" }

func (d *DualBouncingDots) Reset() {
	d.gate.reset()
	d.left = 0
	d.right = -1
	d.dir = 1
}

func (d *DualBouncingDots) Apply(s *strip.Strip, elapsed time.Duration) bool {
	if !d.gate.pass(elapsed, dualDotsStep) {
		return false
	}
	n := s.Len()
	if d.right < 0 {
		d.right = n - 1
	}

	s.Clear()
	set(s, d.left, color.Green)
	set(s, d.right, color.Green)

	if n == 1 {
		return true
	}
	d.left += d.dir
	d.right -= d.dir
	if d.left >= d.right || d.left <= 0 || d.right >= n-1 {
		d.dir = -d.dir
	}
	return true
}
