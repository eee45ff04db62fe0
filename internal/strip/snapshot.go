package strip

import (
	"fmt"

	"github.com/coreman2200/funtimes-ledstrip/internal/color"
)

// Snapshot is an immutable copy of a strip's observed colors at one instant.
type Snapshot struct {
	colors []color.Color
}

// NewSnapshot copies colors into a snapshot.
func NewSnapshot(colors []color.Color) Snapshot {
	return Snapshot{colors: append([]color.Color(nil), colors...)}
}

func (s Snapshot) Len() int { return len(s.colors) }

func (s Snapshot) At(i int) (color.Color, error) {
	if i < 0 || i >= len(s.colors) {
		return color.Off, fmt.Errorf("%w: index %d, length %d", ErrOutOfBounds, i, len(s.colors))
	}
	return s.colors[i], nil
}

// Colors returns a copy of the snapshot's colors.
func (s Snapshot) Colors() []color.Color {
	return append([]color.Color(nil), s.colors...)
}

// RGB packs the snapshot as 3 bytes per pixel, in strip order.
func (s Snapshot) RGB() []byte {
	out := make([]byte, len(s.colors)*3)
	for i, c := range s.colors {
		out[i*3+0] = c.R()
		out[i*3+1] = c.G()
		out[i*3+2] = c.B()
	}
	return out
}

// Lit counts pixels whose observed color is not off.
func (s Snapshot) Lit() int {
	n := 0
	for _, c := range s.colors {
		if !c.IsOff() {
			n++
		}
	}
	return n
}

func (s Snapshot) String() string {
	return fmt.Sprintf("snapshot{len=%d lit=%d}", len(s.colors), s.Lit())
}
