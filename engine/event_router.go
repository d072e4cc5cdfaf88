package engine

// EventHandler processes specific event types.
// Presentation concerns (audio cues, logging, metrics) implement this to react
// to the simulation without being called from inside it.
type EventHandler interface {
	// HandleEvent processes a single event
	HandleEvent(event GameEvent)

	// EventTypes returns the event types this handler processes
	EventTypes() []EventType
}

// EventRouter dispatches events to registered handlers
//
// Usage:
//  1. Create router: NewEventRouter(session.Events)
//  2. Register handlers: router.Register(handler)
//  3. Each frame: router.DispatchAll() after Session.Step
type EventRouter struct {
	handlers map[EventType][]EventHandler
	queue    *EventQueue
}

// NewEventRouter creates a router attached to the given queue
func NewEventRouter(queue *EventQueue) *EventRouter {
	return &EventRouter{
		handlers: make(map[EventType][]EventHandler),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types
func (r *EventRouter) Register(handler EventHandler) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// DispatchAll consumes all pending events and routes them in FIFO order.
// All handlers for an event run before the next event.
func (r *EventRouter) DispatchAll() int {
	events := r.queue.Consume()
	for _, ev := range events {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(ev)
		}
	}
	return len(events)
}

// HandlerCount returns the number of handlers registered for the given type
func (r *EventRouter) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}
