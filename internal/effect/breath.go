package effect

import (
	"time"

	"github.com/coreman2200/funtimes-ledstrip/internal/color"
	"github.com/coreman2200/funtimes-ledstrip/internal/strip"
)

const (
	lumMin   = 15
	lumRange = 512
	lumPeak  = 255
)

// Breath fades the whole strip between a background and a base color,
// ramping quickly near full brightness and lingering near the bottom.
type Breath struct {
	gate       gate
	background color.Color
	base       color.Color
	step       int // 0..511, mirrored around lumPeak
}

// NewBreath fades from background to base. Use color.Off as background for
// a plain breathing effect.
func NewBreath(background, base color.Color) *Breath {
	b := &Breath{background: background, base: base}
	b.Reset()
	return b
}

func (b *Breath) Name() string { return "Breath" }

func (b *Breath) Reset() {
	b.gate.reset()
	b.step = lumMin
}

// Luminance is the level the next accepted step will write.
func (b *Breath) Luminance() int { return mirror(b.step) }

func mirror(step int) int {
	if step > lumPeak {
		return lumRange - 1 - step
	}
	return step
}

func stepDelay(lum int) time.Duration {
	switch {
	case lum == lumMin:
		return 970 * time.Millisecond
	case lum <= 25:
		return 19 * time.Millisecond
	case lum <= 50:
		return 18 * time.Millisecond
	case lum <= 75:
		return 14 * time.Millisecond
	case lum <= 100:
		return 10 * time.Millisecond
	case lum <= 125:
		return 7 * time.Millisecond
	case lum <= 150:
		return 5 * time.Millisecond
	default:
		return 4 * time.Millisecond
	}
}

func (b *Breath) Apply(s *strip.Strip, elapsed time.Duration) bool {
	lum := mirror(b.step)
	if !b.gate.pass(elapsed, stepDelay(lum)) {
		return false
	}
	s.Fill(mix(b.background, b.base, lum))

	b.step += 2
	if b.step >= lumRange-lumMin {
		b.step = lumMin
	}
	return true
}
