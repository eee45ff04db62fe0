package effect

import (
	"fmt"
	"time"

	"github.com/coreman2200/funtimes-ledstrip/internal/color"
	"github.com/coreman2200/funtimes-ledstrip/internal/strip"
)

// ColorWipe lights pixels one by one with c1, then wipes them one by one
// with c2. A full cycle takes 2n steps.
type ColorWipe struct {
	gate           gate
	c1, c2         color.Color
	every          time.Duration
	reverse        bool
	reverseWipeOut bool

	step   int
	cycles int
}

func NewColorWipe(c1, c2 color.Color, every time.Duration, reverse, reverseWipeOut bool) (*ColorWipe, error) {
	if every <= 0 {
		return nil, fmt.Errorf("%w: color wipe step %v", ErrInvalidParam, every)
	}
	return &ColorWipe{c1: c1, c2: c2, every: every, reverse: reverse, reverseWipeOut: reverseWipeOut}, nil
}

func (w *ColorWipe) Name() string { return "Color Wipe" }

func (w *ColorWipe) Reset() {
	w.gate.reset()
	w.step = 0
	w.cycles = 0
}

func (w *ColorWipe) Step() int       { return w.step }
func (w *ColorWipe) CycleCount() int { return w.cycles }

// WipingIn reports whether the next step paints c1 on an n-pixel strip.
func (w *ColorWipe) WipingIn(n int) bool { return w.step < n }

func (w *ColorWipe) Apply(s *strip.Strip, elapsed time.Duration) bool {
	if !w.gate.pass(elapsed, w.every) {
		return false
	}
	n := s.Len()
	if w.step < n {
		set(s, w.index(n, w.step, w.reverse), w.c1)
	} else {
		set(s, w.index(n, w.step-n, w.reverse != w.reverseWipeOut), w.c2)
	}

	w.step++
	if w.step >= 2*n {
		w.step = 0
		w.cycles++
	}
	return true
}

func (w *ColorWipe) index(n, offset int, reversed bool) int {
	if reversed {
		return n - 1 - offset
	}
	return offset
}
