package engine

// Entity kinds in snapshots
const (
	KindPlayer    = "player"
	KindDrone     = "drone"
	KindTrap      = "trap"
	KindItem      = "item"
	KindGenerator = "generator"
	KindDoor      = "door"
)

// EntityView is the presentation view of one entity. Positions are world
// centers; W and H are footprint extents.
type EntityView struct {
	Kind     string  `json:"kind"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	W        float64 `json:"w"`
	H        float64 `json:"h"`
	Progress float64 `json:"progress,omitempty"` // Objective completion ratio
	Active   bool    `json:"active,omitempty"`   // Generator repaired, door open
	Openable bool    `json:"openable,omitempty"`
	Item     string  `json:"item,omitempty"`
}

// Snapshot is a self-contained copy of what presentation needs for one frame
type Snapshot struct {
	SessionID string  `json:"session"`
	Tick      int64   `json:"tick"`
	Elapsed   float64 `json:"elapsed"`
	Phase     string  `json:"phase"`

	Battery         float64  `json:"battery"`
	LightRadius     float64  `json:"light_radius"`
	FlashlightOn    bool     `json:"flashlight_on"`
	ShieldRemaining float64  `json:"shield_remaining"`
	SpeedRemaining  float64  `json:"speed_remaining"`
	Inventory       []string `json:"inventory"`
	Interacting     string   `json:"interacting"`

	GeneratorsDone  int `json:"generators_done"`
	GeneratorsTotal int `json:"generators_total"`

	Player   EntityView   `json:"player"`
	Entities []EntityView `json:"entities"`
}

// Snapshot copies the current state for presentation
func (s *Session) Snapshot() *Snapshot {
	p := &s.Player
	snap := &Snapshot{
		SessionID:       s.ID.String(),
		Tick:            s.Tick,
		Elapsed:         s.Elapsed.Seconds(),
		Phase:           s.Phase.String(),
		Battery:         p.Battery,
		LightRadius:     p.Light.Radius,
		FlashlightOn:    p.Light.On,
		ShieldRemaining: p.ShieldRemaining.Seconds(),
		SpeedRemaining:  p.SpeedRemaining.Seconds(),
		Inventory:       make([]string, len(p.Inventory)),
		Interacting:     p.Lock.State.String(),
		GeneratorsDone:  s.GeneratorsComplete(),
		GeneratorsTotal: len(s.Generators),
		Player: EntityView{
			Kind: KindPlayer,
			X:    p.Pos.X,
			Y:    p.Pos.Y,
			W:    p.Radius * 2,
			H:    p.Radius * 2,
		},
	}
	for i, it := range p.Inventory {
		snap.Inventory[i] = it.String()
	}

	n := len(s.Generators) + len(s.Doors) + len(s.Items) + len(s.Traps) + len(s.Drones)
	snap.Entities = make([]EntityView, 0, n)

	for i := range s.Generators {
		gen := &s.Generators[i]
		v := boxView(KindGenerator, gen.Bounds.Center().X, gen.Bounds.Center().Y, gen.Bounds.Width(), gen.Bounds.Height())
		v.Progress = gen.Progress.Ratio()
		v.Active = gen.Complete()
		snap.Entities = append(snap.Entities, v)
	}
	for i := range s.Doors {
		door := &s.Doors[i]
		v := boxView(KindDoor, door.Bounds.Center().X, door.Bounds.Center().Y, door.Bounds.Width(), door.Bounds.Height())
		v.Progress = door.Progress.Ratio()
		v.Active = door.Open()
		v.Openable = door.Openable
		snap.Entities = append(snap.Entities, v)
	}
	for i := range s.Items {
		it := &s.Items[i]
		v := boxView(KindItem, it.Bounds.Center().X, it.Bounds.Center().Y, it.Bounds.Width(), it.Bounds.Height())
		v.Item = it.Type.String()
		snap.Entities = append(snap.Entities, v)
	}
	for i := range s.Traps {
		tr := &s.Traps[i]
		snap.Entities = append(snap.Entities,
			boxView(KindTrap, tr.Bounds.Center().X, tr.Bounds.Center().Y, tr.Bounds.Width(), tr.Bounds.Height()))
	}
	for i := range s.Drones {
		d := &s.Drones[i]
		snap.Entities = append(snap.Entities, boxView(KindDrone, d.Pos.X, d.Pos.Y, d.Radius*2, d.Radius*2))
	}

	return snap
}

func boxView(kind string, x, y, w, h float64) EntityView {
	return EntityView{Kind: kind, X: x, Y: y, W: w, H: h}
}
