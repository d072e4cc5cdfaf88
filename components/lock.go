package components

// LockState is the state of the player's interaction lock
type LockState uint8

const (
	LockIdle LockState = iota
	LockGenerator
	LockDoor
)

func (s LockState) String() string {
	switch s {
	case LockGenerator:
		return "generator"
	case LockDoor:
		return "door"
	default:
		return "idle"
	}
}

// InteractionLock holds at most one timed-action target. While it is held the
// player cannot move; releasing the action returns it to idle without touching
// the target's progress.
type InteractionLock struct {
	State  LockState
	Target int // Index into the session's generators or doors
}

func (l *InteractionLock) Idle() bool {
	return l.State == LockIdle
}

func (l *InteractionLock) AcquireGenerator(i int) {
	l.State, l.Target = LockGenerator, i
}

func (l *InteractionLock) AcquireDoor(i int) {
	l.State, l.Target = LockDoor, i
}

// Release returns to idle unconditionally
func (l *InteractionLock) Release() {
	l.State, l.Target = LockIdle, 0
}
