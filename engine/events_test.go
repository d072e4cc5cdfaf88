package engine

import (
	"sync"
	"testing"
)

// TestEventQueueBasic tests basic push and consume operations
func TestEventQueueBasic(t *testing.T) {
	eq := NewEventQueue()

	eq.Push(GameEvent{Type: EventGeneratorCompleted, Payload: 0, Tick: 1})
	eq.Push(GameEvent{Type: EventDoorsUnlocked, Tick: 1})
	eq.Push(GameEvent{Type: EventDoorOpened, Payload: 1, Tick: 2})

	if eq.Len() != 3 {
		t.Errorf("Expected length 3, got %d", eq.Len())
	}

	events := eq.Consume()
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}

	// FIFO order
	want := []EventType{EventGeneratorCompleted, EventDoorsUnlocked, EventDoorOpened}
	for i, w := range want {
		if events[i].Type != w {
			t.Errorf("Event %d: Expected %v, got %v", i, w, events[i].Type)
		}
	}

	if again := eq.Consume(); len(again) != 0 {
		t.Errorf("Expected 0 events on second consume, got %d", len(again))
	}
}

// TestEventQueueConcurrent tests concurrent push operations from multiple goroutines
func TestEventQueueConcurrent(t *testing.T) {
	eq := NewEventQueue()
	numGoroutines := 10
	eventsPerGoroutine := 10

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < eventsPerGoroutine; j++ {
				eq.Push(GameEvent{Type: EventTrapLaid, Payload: id*100 + j})
			}
		}(i)
	}
	wg.Wait()

	events := eq.Consume()
	if len(events) != numGoroutines*eventsPerGoroutine {
		t.Errorf("Expected %d events, got %d", numGoroutines*eventsPerGoroutine, len(events))
	}
}

// TestEventQueueOverflow verifies oldest events are dropped when full
func TestEventQueueOverflow(t *testing.T) {
	eq := NewEventQueue()
	for i := 0; i < eventQueueSize+10; i++ {
		eq.Push(GameEvent{Type: EventItemUsed, Payload: i})
	}

	if eq.Len() != eventQueueSize {
		t.Errorf("Expected capped length %d, got %d", eventQueueSize, eq.Len())
	}

	events := eq.Consume()
	if len(events) != eventQueueSize {
		t.Fatalf("Expected %d events, got %d", eventQueueSize, len(events))
	}
	if events[0].Payload != 10 {
		t.Errorf("Expected oldest surviving payload 10, got %v", events[0].Payload)
	}
}

func TestEventQueuePeekAndClear(t *testing.T) {
	eq := NewEventQueue()
	eq.Push(GameEvent{Type: EventPlayerCaught, Payload: "trap"})

	if peeked := eq.Peek(); len(peeked) != 1 || peeked[0].Payload != "trap" {
		t.Errorf("Expected one peeked event, got %v", peeked)
	}
	if eq.Len() != 1 {
		t.Errorf("Expected peek to leave event queued, got length %d", eq.Len())
	}

	eq.Clear()
	if eq.Len() != 0 || eq.Consume() != nil {
		t.Error("Expected empty queue after clear")
	}
}

type recordingHandler struct {
	types []EventType
	seen  []GameEvent
}

func (h *recordingHandler) HandleEvent(ev GameEvent) { h.seen = append(h.seen, ev) }
func (h *recordingHandler) EventTypes() []EventType { return h.types }

func TestEventRouterDispatch(t *testing.T) {
	eq := NewEventQueue()
	router := NewEventRouter(eq)

	doors := &recordingHandler{types: []EventType{EventDoorOpened, EventDoorsUnlocked}}
	all := &recordingHandler{types: []EventType{EventDoorOpened, EventTrapLaid}}
	router.Register(doors)
	router.Register(all)

	if router.HandlerCount(EventDoorOpened) != 2 {
		t.Errorf("Expected 2 handlers for DoorOpened, got %d", router.HandlerCount(EventDoorOpened))
	}

	eq.Push(GameEvent{Type: EventDoorOpened})
	eq.Push(GameEvent{Type: EventTrapLaid})
	eq.Push(GameEvent{Type: EventItemUsed})

	if n := router.DispatchAll(); n != 3 {
		t.Errorf("Expected 3 dispatched, got %d", n)
	}
	if len(doors.seen) != 1 {
		t.Errorf("Expected door handler to see 1 event, got %d", len(doors.seen))
	}
	if len(all.seen) != 2 {
		t.Errorf("Expected second handler to see 2 events, got %d", len(all.seen))
	}
}

func TestEventTypeString(t *testing.T) {
	if EventPlayerEscaped.String() != "PlayerEscaped" {
		t.Errorf("Expected PlayerEscaped, got %s", EventPlayerEscaped.String())
	}
	if EventType(999).String() != "Unknown" {
		t.Errorf("Expected Unknown, got %s", EventType(999).String())
	}
}
