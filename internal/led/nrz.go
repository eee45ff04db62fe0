package led

import (
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"

	"github.com/coreman2200/funtimes-ledstrip/internal/strip"
)

// DefaultFreq is the WS2812b bit rate.
const DefaultFreq = 800 * physic.KiloHertz

// NRZ drives a WS281x strip through an SPI port.
type NRZ struct {
	mu     sync.Mutex
	dev    *nrzled.Dev
	closer io.Closer
	errs   int
}

// NewNRZ wraps an already opened port. The caller keeps ownership of p.
func NewNRZ(p spi.Port, pixels int, freq physic.Frequency) (*NRZ, error) {
	if freq == 0 {
		freq = DefaultFreq
	}
	d, err := nrzled.NewSPI(p, &nrzled.Opts{NumPixels: pixels, Channels: 3, Freq: freq})
	if err != nil {
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	return &NRZ{dev: d}, nil
}

// OpenNRZ opens the named SPI port ("" for the first one) and owns it.
// periph's host drivers must be initialized first.
func OpenNRZ(name string, pixels int, freq physic.Frequency) (*NRZ, error) {
	p, err := spireg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open spi %q: %w", name, err)
	}
	n, err := NewNRZ(p, pixels, freq)
	if err != nil {
		p.Close()
		return nil, err
	}
	n.closer = p
	return n, nil
}

func (n *NRZ) String() string { return n.dev.String() }

// Errors counts failed writes.
func (n *NRZ) Errors() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.errs
}

func (n *NRZ) Apply(snap strip.Snapshot) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, err := n.dev.Write(snap.RGB()); err != nil {
		n.errs++
		log.Warn().Err(err).Str("dev", n.dev.String()).Msg("write frame")
	}
}

// Close blanks the strip and releases the port if it was opened here.
func (n *NRZ) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	err := n.dev.Halt()
	if n.closer != nil {
		if cerr := n.closer.Close(); err == nil {
			err = cerr
		}
		n.closer = nil
	}
	return err
}
