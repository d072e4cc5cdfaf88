package engine

import (
	"sync/atomic"
)

// EventType identifies a simulation event.
// Events are produced by systems during Session.Step and consumed after the
// step by presentation handlers (audio, logging, metrics).
type EventType int

const (
	// EventGeneratorCompleted fires on the tick a generator's repair completes.
	// Payload: int generator index
	EventGeneratorCompleted EventType = iota

	// EventDoorsUnlocked fires once when the last generator completes and
	// every door becomes openable.
	EventDoorsUnlocked

	// EventDoorOpened fires on the tick a door's opening completes.
	// Payload: int door index
	EventDoorOpened

	// EventTrapLaid fires when a drone drops a trap.
	// Payload: grid.Tile of the new trap
	EventTrapLaid

	// EventItemCollected fires when the player picks up an item.
	// Payload: components.ItemType
	EventItemCollected

	// EventItemUsed fires when an inventory slot is consumed.
	// Payload: components.ItemType
	EventItemUsed

	// EventShieldAbsorbed fires on the onset of lethal contact blocked by the shield.
	// Payload: string cause ("trap" or "drone")
	EventShieldAbsorbed

	// EventPlayerCaught fires when contact ends the session.
	// Payload: string cause ("trap" or "drone")
	EventPlayerCaught

	// EventPlayerEscaped fires when the player reaches an open door.
	// Payload: int door index
	EventPlayerEscaped

	// EventFlashlightDepleted fires when the battery runs dry and the flashlight locks out
	EventFlashlightDepleted

	// EventSessionReset fires after Session.Reset rebuilt the level
	EventSessionReset
)

// String returns the name of the event type for debugging
func (e EventType) String() string {
	switch e {
	case EventGeneratorCompleted:
		return "GeneratorCompleted"
	case EventDoorsUnlocked:
		return "DoorsUnlocked"
	case EventDoorOpened:
		return "DoorOpened"
	case EventTrapLaid:
		return "TrapLaid"
	case EventItemCollected:
		return "ItemCollected"
	case EventItemUsed:
		return "ItemUsed"
	case EventShieldAbsorbed:
		return "ShieldAbsorbed"
	case EventPlayerCaught:
		return "PlayerCaught"
	case EventPlayerEscaped:
		return "PlayerEscaped"
	case EventFlashlightDepleted:
		return "FlashlightDepleted"
	case EventSessionReset:
		return "SessionReset"
	default:
		return "Unknown"
	}
}

// GameEvent is a single immutable event
type GameEvent struct {
	Type    EventType
	Payload any   // Event-specific data, see EventType docs
	Tick    int64 // Session tick that produced the event
}

const eventQueueSize = 256

// EventQueue is a lock-free ring buffer for game events.
//
// Push is safe for concurrent producers (CAS on tail). Consume is meant for a
// single consumer, the game loop. When the buffer is full the oldest events are
// overwritten.
type EventQueue struct {
	events [eventQueueSize]GameEvent
	head   atomic.Uint64 // Next position to read
	tail   atomic.Uint64 // Next position to write
}

// NewEventQueue creates an empty queue
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends an event, overwriting the oldest one on overflow
func (eq *EventQueue) Push(event GameEvent) {
	for {
		currentTail := eq.tail.Load()
		nextTail := currentTail + 1

		if eq.tail.CompareAndSwap(currentTail, nextTail) {
			eq.events[currentTail%eventQueueSize] = event

			// Drop the oldest unread event if the writer lapped the reader
			currentHead := eq.head.Load()
			if nextTail-currentHead > eventQueueSize {
				eq.head.CompareAndSwap(currentHead, nextTail-eventQueueSize)
			}
			return
		}
	}
}

// Consume returns all pending events in FIFO order and marks them read
func (eq *EventQueue) Consume() []GameEvent {
	currentHead := eq.head.Load()
	currentTail := eq.tail.Load()

	result := eq.window(currentHead, currentTail)
	if result == nil {
		return nil
	}

	for !eq.head.CompareAndSwap(currentHead, currentTail) {
		currentHead = eq.head.Load()
		currentTail = eq.tail.Load()
		if currentTail == currentHead {
			return result
		}
	}
	return result
}

// Peek returns pending events without consuming them
func (eq *EventQueue) Peek() []GameEvent {
	return eq.window(eq.head.Load(), eq.tail.Load())
}

// Len returns the number of pending events (capped at capacity)
func (eq *EventQueue) Len() int {
	available := eq.tail.Load() - eq.head.Load()
	if available > eventQueueSize {
		return eventQueueSize
	}
	return int(available)
}

// Clear drops every pending event
func (eq *EventQueue) Clear() {
	eq.head.Store(eq.tail.Load())
}

func (eq *EventQueue) window(head, tail uint64) []GameEvent {
	available := tail - head
	if available == 0 {
		return nil
	}
	if available > eventQueueSize {
		available = eventQueueSize
		head = tail - eventQueueSize
	}

	result := make([]GameEvent, available)
	for i := uint64(0); i < available; i++ {
		result[i] = eq.events[(head+i)%eventQueueSize]
	}
	return result
}
