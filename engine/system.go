package engine

import (
	"time"
)

// System is one stage of the per-step pipeline. Systems run in ascending
// Priority and observe every mutation made by earlier systems in the same step.
type System interface {
	Priority() int
	Update(s *Session, in Input, dt time.Duration)
}
