// Package effect holds the animations that can be applied to a strip.
//
// An effect receives the elapsed time since its run started and reports
// whether it changed anything the viewer can see. Effects keep private state
// between calls; Reset returns them to their initial state.
package effect

import (
	"errors"
	"time"

	"github.com/coreman2200/funtimes-ledstrip/internal/color"
	"github.com/coreman2200/funtimes-ledstrip/internal/strip"
)

// ErrInvalidParam is returned by constructors given an out-of-range parameter.
var ErrInvalidParam = errors.New("invalid effect parameter")

type Effect interface {
	Name() string
	// Apply mutates s for the given elapsed time and reports whether the
	// observed colors changed.
	Apply(s *strip.Strip, elapsed time.Duration) bool
	Reset()
}

// gate admits at most one step per threshold of elapsed time.
type gate struct {
	last time.Duration
}

func (g *gate) pass(now, threshold time.Duration) bool {
	if now-g.last < threshold {
		return false
	}
	g.last = now
	return true
}

func (g *gate) reset() { g.last = 0 }

// mix blends with a factor derived from an 8-bit level, which is always in range.
func mix(a, b color.Color, level int) color.Color {
	c, err := a.Blend(b, float64(level)/255.0)
	if err != nil {
		panic(err)
	}
	return c
}

// set ignores bounds errors; callers only pass indices below s.Len().
func set(s *strip.Strip, i int, c color.Color) {
	_ = s.SetPixel(i, c)
}
