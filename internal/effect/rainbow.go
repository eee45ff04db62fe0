package effect

import (
	"math"
	"time"

	"github.com/coreman2200/funtimes-ledstrip/internal/color"
	"github.com/coreman2200/funtimes-ledstrip/internal/strip"
)

const (
	rainbowDegreesPerSecond = 90.0
	hueRange                = 360.0
)

// Rainbow spreads the full hue circle over the strip and rotates it with time.
type Rainbow struct{}

func NewRainbow() *Rainbow { return &Rainbow{} }

func (r *Rainbow) Name() string { return "Rainbow" }

func (r *Rainbow) Reset() {}

// Hue returns the hue in degrees of pixel i on an n-pixel strip.
func (r *Rainbow) Hue(i, n int, elapsed time.Duration) float64 {
	seconds := float64(elapsed.Milliseconds()) / 1000.0
	base := math.Mod(seconds*rainbowDegreesPerSecond, hueRange)
	return math.Mod(base+hueRange*float64(i)/float64(n), hueRange)
}

func (r *Rainbow) Apply(s *strip.Strip, elapsed time.Duration) bool {
	n := s.Len()
	for i := 0; i < n; i++ {
		set(s, i, color.FromHSV(r.Hue(i, n, elapsed), 1, 1))
	}
	return true
}
