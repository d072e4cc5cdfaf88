package modes

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/lastlight/engine"
	"github.com/lixenwraith/lastlight/logger"
)

// SessionFactory builds a ready-to-step session
type SessionFactory func(cfg engine.Config) (*engine.Session, error)

// Router owns the session lifecycle and routes actions to either the menu or
// the controller
type Router struct {
	Menu       Menu
	Controller Controller
	Session    *engine.Session

	cfg        engine.Config
	clock      *engine.FrameClock
	newSession SessionFactory
	quit       bool
	muted      bool
	onSession  func(*engine.Session)
}

// NewRouter starts at the main menu
func NewRouter(cfg engine.Config, clock *engine.FrameClock, factory SessionFactory) *Router {
	r := &Router{cfg: cfg, clock: clock, newSession: factory}
	r.openMenu(ScreenMain)
	return r
}

// OnSession registers a callback invoked whenever a new session replaces the old one
func (r *Router) OnSession(fn func(*engine.Session)) {
	r.onSession = fn
}

// Quit reports whether the game should exit
func (r *Router) Quit() bool {
	return r.quit
}

// Muted reports the toggle state of ActionToggleMute
func (r *Router) Muted() bool {
	return r.muted
}

// Playing reports whether steps should run
func (r *Router) Playing() bool {
	return r.Session != nil && !r.Menu.Active()
}

// HandleAction routes one key press
func (r *Router) HandleAction(a Action, sprint bool, now time.Time) error {
	switch a {
	case ActionQuit:
		return r.Dispatch(CommandQuit)
	case ActionToggleMute:
		r.muted = !r.muted
		return nil
	}

	if !r.Menu.Active() {
		if a == ActionPause {
			r.openMenu(ScreenPause)
			return nil
		}
		r.Controller.Press(a, sprint, now)
		return nil
	}

	switch a {
	case ActionUp:
		r.Menu.Move(-1)
	case ActionDown:
		r.Menu.Move(1)
	case ActionSelect, ActionInteract:
		return r.Dispatch(r.Menu.Select())
	case ActionPause:
		if r.Menu.Screen == ScreenPause {
			return r.Dispatch(CommandResume)
		}
	}
	return nil
}

// Dispatch executes a menu command
func (r *Router) Dispatch(cmd Command) error {
	logger.Log.WithField("command", cmd.String()).Debug("menu command")

	switch cmd {
	case CommandStartGame:
		sess, err := r.newSession(r.cfg)
		if err != nil {
			return fmt.Errorf("start game: %w", err)
		}
		r.Session = sess
		if r.onSession != nil {
			r.onSession(sess)
		}
		r.play()

	case CommandResume:
		if r.Session == nil {
			return nil
		}
		r.play()

	case CommandRestart:
		if r.Session == nil {
			return nil
		}
		r.Session.Reset()
		r.play()

	case CommandReturnToMenu:
		r.Session = nil
		r.openMenu(ScreenMain)

	case CommandQuit:
		r.quit = true
	}
	return nil
}

// Observe reacts to a step outcome, opening the end screens
func (r *Router) Observe(o engine.Outcome) {
	var screen Screen
	switch o.Kind {
	case engine.OutcomeWon:
		screen = ScreenWon
	case engine.OutcomeLost:
		screen = ScreenLost
	default:
		return
	}

	r.openMenu(screen)
	logger.Log.WithFields(logrus.Fields{
		"session": r.Session.ID.String(),
		"outcome": o.Kind.String(),
		"elapsed": r.Session.Elapsed.String(),
		"attempt": r.Session.Attempt,
	}).Info("session ended")
}

// openMenu freezes simulated time while a screen is up
func (r *Router) openMenu(s Screen) {
	r.Menu.Open(s)
	r.Controller.Release()
	r.clock.Pause()
}

func (r *Router) play() {
	r.Menu.Close()
	r.Controller.Release()
	r.clock.Resume()
}
