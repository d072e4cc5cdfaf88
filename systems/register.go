package systems

import (
	"github.com/lixenwraith/lastlight/engine"
)

// Install adds the full step pipeline to a session
func Install(sess *engine.Session) {
	sess.AddSystem(NewInteractionSystem())
	sess.AddSystem(NewDroneSystem())
	sess.AddSystem(NewOutcomeSystem())
	sess.AddSystem(NewGatingSystem())
	sess.AddSystem(NewResourceSystem())
}

// NewSession generates a facility and returns a session ready to Step
func NewSession(cfg engine.Config) (*engine.Session, error) {
	sess, err := engine.NewSession(cfg)
	if err != nil {
		return nil, err
	}
	Install(sess)
	return sess, nil
}
