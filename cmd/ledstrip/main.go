package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-ledstrip/internal/app"
	"github.com/coreman2200/funtimes-ledstrip/internal/config"
	"github.com/coreman2200/funtimes-ledstrip/internal/effect"
	"github.com/coreman2200/funtimes-ledstrip/internal/led"
	"github.com/coreman2200/funtimes-ledstrip/internal/ws"
)

func main() {
	// ---- Flags (config.yaml overrides them when present) ----
	var (
		length     = flag.Int("length", 30, "number of pixels on the strip")
		fps        = flag.Int("fps", 25, "frames per second")
		effectName = flag.String("effect", "rainbow", "effect: "+strings.Join(effect.Default().List(), " | "))
		driver     = flag.String("driver", "sim", "driver: spi | sim")
		spiDev     = flag.String("spi-dev", "", "SPI port name (empty for the first one)")
		addr       = flag.String("addr", ":8080", "HTTP listen address for the preview (empty disables)")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		verbose    = flag.Bool("v", false, "log every frame")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// ---- Effective config: flags, then config.yaml on top ----
	cfg := config.Default()
	cfg.Length = *length
	cfg.FPS = *fps
	cfg.Effect = effect.Spec{Name: *effectName}
	cfg.Driver = *driver
	cfg.SPI.Dev = *spiDev
	cfg.Preview.Addr = *addr

	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
	} else {
		overlay(cfg, c)
	}

	// ---- Sinks ----
	sinks := led.NewComposite(&led.Log{})
	var nrz *led.NRZ
	switch cfg.Driver {
	case "spi":
		var err error
		nrz, err = openSPI(cfg)
		if err != nil {
			log.Warn().Err(err).
				Str("driver", "spi").
				Str("dev", cfg.SPI.Dev).
				Int("speed_hz", cfg.SPI.SpeedHz).
				Msg("SPI init failed; falling back to SIM")
			cfg.Driver = "sim"
		} else {
			sinks.Add(nrz)
		}
	case "sim", "":
		cfg.Driver = "sim"
	default:
		log.Warn().Str("driver", cfg.Driver).Msg("unknown driver; using SIM")
		cfg.Driver = "sim"
	}

	var preview *ws.Preview
	var srv *http.Server
	if cfg.Preview.Addr != "" {
		preview = ws.NewPreview()
		sinks.Add(preview)

		mux := http.NewServeMux()
		mux.HandleFunc("/ws", preview.HandleFrames)
		mux.HandleFunc("/health", preview.HandleHealth)
		srv = &http.Server{
			Addr:         cfg.Preview.Addr,
			Handler:      withCORS(mux),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
	}

	// ---- Animation ----
	core, err := app.InitCore(context.Background(), cfg, sinks)
	if err != nil {
		log.Fatal().Err(err).Msg("init failed")
	}

	if srv != nil {
		go func() {
			log.Info().Str("addr", srv.Addr).Str("driver", cfg.Driver).Msg("HTTP server starting")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatal().Err(err).Msg("http server crashed")
			}
		}()
	}

	// ---- Graceful shutdown ----
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	s := <-ch
	log.Info().Str("signal", s.String()).Msg("shutting down")

	if srv != nil {
		_ = srv.Close()
	}
	_ = core.Close()
	st := core.Eng.Stats()
	log.Info().Int64("ticks", st.Ticks).Int64("frames", st.Frames).Dur("mean_tick", st.MeanTick).Msg("stats")
	if preview != nil {
		_ = preview.Close()
	}
	if nrz != nil {
		if err := nrz.Close(); err != nil {
			log.Warn().Err(err).Msg("halt strip")
		}
	}
}

func openSPI(cfg *config.Config) (*led.NRZ, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	freq := led.DefaultFreq
	if cfg.SPI.SpeedHz > 0 {
		freq = physic.Frequency(cfg.SPI.SpeedHz) * physic.Hertz
	}
	return led.OpenNRZ(cfg.SPI.Dev, cfg.Length, freq)
}

// overlay copies every field set in c onto cfg.
func overlay(cfg, c *config.Config) {
	if c.Length > 0 {
		cfg.Length = c.Length
	}
	if c.FPS > 0 {
		cfg.FPS = c.FPS
	}
	if c.Driver != "" {
		cfg.Driver = c.Driver
	}
	if c.Effect.Name != "" {
		cfg.Effect = c.Effect
	}
	if c.Playlist != nil {
		cfg.Playlist = c.Playlist
	}
	if c.SPI.Dev != "" {
		cfg.SPI.Dev = c.SPI.Dev
	}
	if c.SPI.SpeedHz != 0 {
		cfg.SPI.SpeedHz = c.SPI.SpeedHz
	}
	if c.Preview.Addr != "" {
		cfg.Preview.Addr = c.Preview.Addr
	}
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}
