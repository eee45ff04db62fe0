package effect

import (
	"fmt"
	"time"

	"github.com/coreman2200/funtimes-ledstrip/internal/color"
	"github.com/coreman2200/funtimes-ledstrip/internal/strip"
)

// MovingDot sweeps a single lit pixel across the strip once per period.
// Its position depends only on elapsed time, so it keeps no state.
type MovingDot struct {
	color  color.Color
	period time.Duration
}

func NewMovingDot(c color.Color, period time.Duration) (*MovingDot, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: moving dot period %v", ErrInvalidParam, period)
	}
	return &MovingDot{color: c, period: period}, nil
}

func (d *MovingDot) Name() string { return "Moving Dot" }

func (d *MovingDot) Reset() {}

func (d *MovingDot) position(n int, elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	frac := float64(elapsed%d.period) / float64(d.period)
	return int(frac * float64(n))
}

func (d *MovingDot) Apply(s *strip.Strip, elapsed time.Duration) bool {
	n := s.Len()
	pos := d.position(n, elapsed)

	changed := false
	for i := 0; i < n; i++ {
		on, _ := s.IsOn(i)
		if i == pos {
			cur, _ := s.Pixel(i)
			if !on || cur != d.color {
				set(s, i, d.color)
				changed = true
			}
			continue
		}
		if on {
			changed = true
		}
		_ = s.ClearPixel(i)
	}
	return changed
}
