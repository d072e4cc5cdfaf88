package network

import (
	"encoding/json"
	"strings"

	"github.com/lixenwraith/lastlight/engine"
	"github.com/lixenwraith/lastlight/facility"
)

// MessageType identifies a spectator feed frame
type MessageType string

const (
	MsgSnapshot MessageType = "snapshot" // Full entity state, rate limited per client
	MsgLayout   MessageType = "layout"   // Facility grid, sent on connect and on new sessions
	MsgEvent    MessageType = "event"    // Game event, never rate limited
)

// Message is the JSON envelope of every websocket frame
type Message struct {
	Type MessageType `json:"type"`
	Data any         `json:"data"`
}

// LayoutView is the static facility a spectator draws entities over.
// Rows are top first in the facility marker format.
type LayoutView struct {
	Session  string   `json:"session"`
	Seed     int64    `json:"seed"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	CellSize float64  `json:"cell_size"`
	Rows     []string `json:"rows"`
}

// EventView is the wire form of a game event
type EventView struct {
	Type    string `json:"type"`
	Tick    int64  `json:"tick"`
	Payload any    `json:"payload,omitempty"`
}

// NewLayoutView captures the session's layout
func NewLayoutView(sess *engine.Session) *LayoutView {
	return newLayoutView(sess.ID.String(), sess.Layout)
}

func newLayoutView(id string, layout *facility.Result) *LayoutView {
	g := layout.Grid
	return &LayoutView{
		Session:  id,
		Seed:     layout.Seed,
		Width:    g.Width(),
		Height:   g.Height(),
		CellSize: g.CellSize(),
		Rows:     strings.Split(strings.TrimRight(layout.ASCII(), "\n"), "\n"),
	}
}

// NewEventView converts a game event; payloads that are Stringers are sent as text
func NewEventView(ev engine.GameEvent) EventView {
	payload := ev.Payload
	if s, ok := payload.(interface{ String() string }); ok {
		payload = s.String()
	}
	return EventView{Type: ev.Type.String(), Tick: ev.Tick, Payload: payload}
}

func encode(t MessageType, data any) ([]byte, error) {
	return json.Marshal(Message{Type: t, Data: data})
}
