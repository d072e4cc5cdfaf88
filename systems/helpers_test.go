package systems

import (
	"testing"
	"time"

	"github.com/lixenwraith/lastlight/constants"
	"github.com/lixenwraith/lastlight/engine"
	"github.com/lixenwraith/lastlight/facility"
	"github.com/lixenwraith/lastlight/logger"
)

func init() {
	logger.Discard()
}

// newTestSession builds a session on a fixed layout with a parked drone and
// trap laying disabled, unless mutate changes that
func newTestSession(t *testing.T, layout string, mutate func(*engine.Config)) *engine.Session {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.DroneSpeed = 0
	cfg.TrapCap = 0
	if mutate != nil {
		mutate(&cfg)
	}
	sess := engine.NewSessionFromLayout(cfg, facility.MustParse(layout, constants.CellSize))
	Install(sess)
	return sess
}

func countEvents(events []engine.GameEvent, t engine.EventType) int {
	n := 0
	for _, ev := range events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func hold() engine.Input {
	return engine.Input{Interact: true}
}

const second = time.Second
