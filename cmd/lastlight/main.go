package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/lastlight/audio"
	"github.com/lixenwraith/lastlight/config"
	"github.com/lixenwraith/lastlight/constants"
	"github.com/lixenwraith/lastlight/engine"
	"github.com/lixenwraith/lastlight/logger"
	"github.com/lixenwraith/lastlight/modes"
	"github.com/lixenwraith/lastlight/network"
	"github.com/lixenwraith/lastlight/render"
	"github.com/lixenwraith/lastlight/status"
	"github.com/lixenwraith/lastlight/systems"
)

var (
	configFlag   = flag.String("config", "", "YAML tuning file")
	envFlag      = flag.String("env", ".env", "Environment file, skipped when missing")
	seedFlag     = flag.Int64("seed", 0, "Facility seed (0 = random)")
	spectateFlag = flag.String("spectate", "", "Spectator feed address, e.g. :8080")
	muteFlag     = flag.Bool("mute", false, "Disable audio")
	logFlag      = flag.String("log", "lastlight.log", "Log file")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}

	logFile, err := logger.OpenFile(*logFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			logger.Log.WithField("panic", r).Error("crashed")
			fmt.Fprintf(os.Stderr, "\n\x1b[31mLASTLIGHT CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	if err := run(cfg, screen); err != nil {
		logger.Log.WithError(err).Error("game loop failed")
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig layers defaults, the YAML file, the environment and flags
func loadConfig() (*config.Config, error) {
	if err := config.LoadEnvFile(*envFlag); err != nil {
		return nil, err
	}
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if *seedFlag != 0 {
		cfg.Facility.Seed = *seedFlag
	}
	if *spectateFlag != "" {
		cfg.Spectator.Addr = *spectateFlag
	}
	if *muteFlag {
		cfg.Audio.Mute = true
	}
	return cfg, cfg.Validate()
}

func run(cfg *config.Config, screen tcell.Screen) error {
	metrics := status.NewMetrics()

	sound := audio.NewSoundManager(cfg.Audio.Volume, cfg.Audio.Mute)
	if err := sound.Initialize(); err != nil {
		audio.LogInitError(err)
	}
	defer sound.Cleanup()

	var feed *network.Server
	if cfg.Spectator.Addr != "" {
		feed = network.NewServer(network.Config{
			Addr:        cfg.Spectator.Addr,
			RateHz:      cfg.Spectator.RateHz,
			CORSOrigins: cfg.Spectator.CORSOrigins,
			Metrics:     metrics,
		})
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if _, err := feed.Start(ctx); err != nil {
			return fmt.Errorf("start spectator feed: %w", err)
		}
		defer func() {
			sctx, scancel := context.WithTimeout(context.Background(), constants.SpectatorShutdownTimeout)
			defer scancel()
			if err := feed.Shutdown(sctx); err != nil {
				logger.Log.WithError(err).Warn("spectator shutdown")
			}
		}()
	}

	clock := engine.NewFrameClock(engine.NewMonotonicTimeProvider(), constants.MaxFrameDelta)
	router := modes.NewRouter(cfg.SessionConfig(), clock, systems.NewSession)

	// Each session owns its event queue, so handlers are rebound per session
	var events *engine.EventRouter
	router.OnSession(func(sess *engine.Session) {
		events = engine.NewEventRouter(sess.Events)
		events.Register(sound)
		events.Register(metrics)
		if feed != nil {
			events.Register(feed)
		}
		metrics.Sessions.Inc()
		logger.Log.WithFields(logrus.Fields{
			"session": sess.ID.String(),
			"seed":    sess.Layout.Seed,
		}).Info("session started")
	})

	renderer := render.NewTerminalRenderer(screen)
	renderer.Resize(screen.Size())
	keys := modes.DefaultKeyTable()

	eventChan := make(chan tcell.Event, 256)
	// Input polling uses raw goroutine as it interacts directly with terminal
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	frameTicker := time.NewTicker(constants.FrameInterval)
	defer frameTicker.Stop()

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				renderer.Resize(ev.Size())
				screen.Sync()
			case *tcell.EventKey:
				action, sprint := keys.Lookup(ev.Key(), ev.Rune())
				if err := router.HandleAction(action, sprint, time.Now()); err != nil {
					return err
				}
				if router.Quit() {
					logger.Log.Info("quit")
					return nil
				}
				sound.SetMuted(cfg.Audio.Mute != router.Muted())
			}

		case <-frameTicker.C:
			if router.Playing() {
				sess := router.Session
				dt := clock.Tick()
				start := time.Now()
				outcome := sess.Step(dt, router.Controller.Input(time.Now()))
				metrics.ObserveStep(sess, outcome, time.Since(start))
				if feed != nil {
					feed.Publish(sess)
				}
				events.DispatchAll()
				router.Observe(outcome)
			}

			var overlay *render.Overlay
			if router.Menu.Active() {
				overlay = router.Menu.Overlay(footer(router))
			}
			renderer.RenderFrame(router.Session, overlay)
			screen.Show()
		}
	}
}

func footer(r *modes.Router) string {
	if r.Muted() {
		return "enter select  ^S unmute  ^Q quit"
	}
	return "enter select  ^S mute  ^Q quit"
}
