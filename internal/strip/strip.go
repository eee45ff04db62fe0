// Package strip models a fixed-length chain of individually addressable pixels.
package strip

import (
	"errors"
	"fmt"

	"github.com/coreman2200/funtimes-ledstrip/internal/color"
)

var (
	ErrInvalidLength = errors.New("strip length must be at least 1")
	ErrOutOfBounds   = errors.New("pixel index out of bounds")
)

// pixel keeps its stored color while switched off; the observed color of an
// off pixel is always color.Off.
type pixel struct {
	on bool
	c  color.Color
}

func (p pixel) observed() color.Color {
	if !p.on {
		return color.Off
	}
	return p.c
}

// Strip is not safe for concurrent use; the controller serializes access.
type Strip struct {
	pixels []pixel
}

// New returns a strip of n pixels, all off.
func New(n int) (*Strip, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLength, n)
	}
	return &Strip{pixels: make([]pixel, n)}, nil
}

func (s *Strip) Len() int { return len(s.pixels) }

func (s *Strip) check(i int) error {
	if i < 0 || i >= len(s.pixels) {
		return fmt.Errorf("%w: index %d, length %d", ErrOutOfBounds, i, len(s.pixels))
	}
	return nil
}

// Fill sets every pixel to c and switches it on.
func (s *Strip) Fill(c color.Color) {
	for i := range s.pixels {
		s.pixels[i] = pixel{on: true, c: c}
	}
}

// Clear switches every pixel off and resets its stored color.
func (s *Strip) Clear() {
	for i := range s.pixels {
		s.pixels[i] = pixel{}
	}
}

// SetPixel stores c at i and switches the pixel on.
func (s *Strip) SetPixel(i int, c color.Color) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.pixels[i] = pixel{on: true, c: c}
	return nil
}

// ClearPixel switches pixel i off and resets its stored color.
func (s *Strip) ClearPixel(i int) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.pixels[i] = pixel{}
	return nil
}

// Pixel returns the observed color at i.
func (s *Strip) Pixel(i int) (color.Color, error) {
	if err := s.check(i); err != nil {
		return color.Off, err
	}
	return s.pixels[i].observed(), nil
}

func (s *Strip) IsOn(i int) (bool, error) {
	if err := s.check(i); err != nil {
		return false, err
	}
	return s.pixels[i].on, nil
}

// TurnOn restores the stored color of pixel i.
func (s *Strip) TurnOn(i int) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.pixels[i].on = true
	return nil
}

// TurnOff hides pixel i but keeps its stored color.
func (s *Strip) TurnOff(i int) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.pixels[i].on = false
	return nil
}

func (s *Strip) Toggle(i int) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.pixels[i].on = !s.pixels[i].on
	return nil
}

func (s *Strip) TurnOnAll() {
	for i := range s.pixels {
		s.pixels[i].on = true
	}
}

func (s *Strip) TurnOffAll() {
	for i := range s.pixels {
		s.pixels[i].on = false
	}
}

// Snapshot copies the observed colors.
func (s *Strip) Snapshot() Snapshot {
	colors := make([]color.Color, len(s.pixels))
	for i, p := range s.pixels {
		colors[i] = p.observed()
	}
	return Snapshot{colors: colors}
}
