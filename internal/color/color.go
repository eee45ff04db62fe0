// Package color holds the immutable RGB value used by every pixel of a strip.
package color

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrComponentRange is returned when a channel falls outside 0..255.
	ErrComponentRange = errors.New("color component out of range")
	// ErrFactorRange is returned when a blend or brightness factor falls outside [0,1].
	ErrFactorRange = errors.New("color factor out of range")
)

// Color is a 24-bit RGB triple. The zero value is Off.
type Color struct {
	r, g, b uint8
}

var (
	Off     = Color{}
	White   = Color{255, 255, 255}
	Gray    = Color{128, 128, 128}
	Red     = Color{255, 0, 0}
	Green   = Color{0, 255, 0}
	Blue    = Color{0, 0, 255}
	Yellow  = Color{255, 255, 0}
	Cyan    = Color{0, 255, 255}
	Magenta = Color{255, 0, 255}
)

// New validates each component and builds a Color.
func New(r, g, b int) (Color, error) {
	for _, v := range [...]int{r, g, b} {
		if v < 0 || v > 255 {
			return Color{}, fmt.Errorf("%w: (%d,%d,%d)", ErrComponentRange, r, g, b)
		}
	}
	return Color{uint8(r), uint8(g), uint8(b)}, nil
}

// ParseHex accepts "#rrggbb" or "#rgb".
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrComponentRange, s)
	}
	r, g, b := c.RGB255()
	return Color{r, g, b}, nil
}

// FromHSV converts hue in degrees and saturation/value in [0,1].
// Channels are rounded to the nearest integer after clamping.
func FromHSV(h, s, v float64) Color {
	c := colorful.Hsv(h, s, v)
	return Color{toByte(c.R), toByte(c.G), toByte(c.B)}
}

func (c Color) R() uint8 { return c.r }
func (c Color) G() uint8 { return c.g }
func (c Color) B() uint8 { return c.b }

// IsOff reports whether all three channels are zero.
func (c Color) IsOff() bool { return c == Off }

// Blend interpolates linearly towards other. t=0 yields c, t=1 yields other.
func (c Color) Blend(other Color, t float64) (Color, error) {
	if math.IsNaN(t) || t < 0 || t > 1 {
		return Color{}, fmt.Errorf("%w: blend %v", ErrFactorRange, t)
	}
	return Color{
		lerp(c.r, other.r, t),
		lerp(c.g, other.g, t),
		lerp(c.b, other.b, t),
	}, nil
}

// WithBrightness scales every channel by factor.
func (c Color) WithBrightness(factor float64) (Color, error) {
	if math.IsNaN(factor) || factor < 0 || factor > 1 {
		return Color{}, fmt.Errorf("%w: brightness %v", ErrFactorRange, factor)
	}
	return Color{
		scale(c.r, factor),
		scale(c.g, factor),
		scale(c.b, factor),
	}, nil
}

// Hex formats the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
}

func (c Color) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.r, c.g, c.b)
}

func lerp(a, b uint8, t float64) uint8 {
	return clampByte(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func scale(v uint8, f float64) uint8 {
	return clampByte(math.Round(float64(v) * f))
}

func toByte(v float64) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(math.Round(v * 255))
}

func clampByte(x float64) uint8 {
	if x <= 0 {
		return 0
	}
	if x >= 255 {
		return 255
	}
	return uint8(x)
}
