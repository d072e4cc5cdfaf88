package systems

import (
	"testing"

	"github.com/lixenwraith/lastlight/components"
	"github.com/lixenwraith/lastlight/engine"
	"github.com/lixenwraith/lastlight/vmath"
)

const trapLayout = "" +
	"#########\n" +
	"#P.X...T#\n" +
	"#########\n"

// onTrap overlaps the trap at tile (3,1)
var onTrap = vmath.Vec2{X: 224, Y: 96}

func TestTrapLostOncePerOnset(t *testing.T) {
	sess := newTestSession(t, trapLayout, nil)
	sess.Player.Pos = onTrap

	lost := 0
	for i := 0; i < 10; i++ {
		if sess.Step(second/10, engine.Input{}).Kind == engine.OutcomeLost {
			lost++
		}
	}

	if lost != 1 {
		t.Errorf("Expected Lost exactly once, got %d", lost)
	}
	if sess.Phase != engine.PhaseLost {
		t.Errorf("Expected lost phase, got %v", sess.Phase)
	}
	if n := countEvents(sess.Events.Consume(), engine.EventPlayerCaught); n != 1 {
		t.Errorf("Expected one PlayerCaught event, got %d", n)
	}
}

func TestShieldAbsorbsUntilExpiry(t *testing.T) {
	sess := newTestSession(t, trapLayout, nil)
	sess.Player.Pos = onTrap
	sess.Player.ShieldRemaining = 5 * second

	for i := 0; i < 5; i++ {
		if got := sess.Step(second, engine.Input{}); got.Kind != engine.OutcomeNone {
			t.Fatalf("step %d: Expected shield to absorb, got %v", i, got.Kind)
		}
	}
	if n := countEvents(sess.Events.Consume(), engine.EventShieldAbsorbed); n != 1 {
		t.Errorf("Expected one ShieldAbsorbed on onset, got %d", n)
	}

	// Shield ran out while still standing on the trap: lethal onset
	if got := sess.Step(second, engine.Input{}); got.Kind != engine.OutcomeLost {
		t.Errorf("Expected Lost after shield expiry, got %v", got.Kind)
	}
}

func TestSeparateOnsetsAfterLeavingTrap(t *testing.T) {
	sess := newTestSession(t, trapLayout, nil)
	sess.Player.ShieldRemaining = 10 * second

	// Shielded on, off, on again: two distinct onsets
	sess.Player.Pos = onTrap
	sess.Step(second/10, engine.Input{})
	sess.Player.Pos = vmath.Vec2{X: 96, Y: 96}
	sess.Step(second/10, engine.Input{})
	sess.Player.Pos = onTrap
	sess.Step(second/10, engine.Input{})

	if n := countEvents(sess.Events.Consume(), engine.EventShieldAbsorbed); n != 2 {
		t.Errorf("Expected two absorbed onsets, got %d", n)
	}
}

func TestDroneContactIsFatal(t *testing.T) {
	sess := newTestSession(t, trapLayout, nil)
	sess.Player.Pos = sess.Drones[0].Pos.Add(vmath.Vec2{X: -20})

	if got := sess.Step(second/10, engine.Input{}); got.Kind != engine.OutcomeLost {
		t.Fatalf("Expected Lost on drone contact, got %v", got.Kind)
	}
	events := sess.Events.Consume()
	for _, ev := range events {
		if ev.Type == engine.EventPlayerCaught && ev.Payload != CauseDrone {
			t.Errorf("Expected drone cause, got %v", ev.Payload)
		}
	}
}

func TestItemPickup(t *testing.T) {
	sess := newTestSession(t, ""+
		"#########\n"+
		"#PII...T#\n"+
		"#########\n", nil)

	sess.Player.Pos = vmath.Vec2{X: 160, Y: 96}

	got := sess.Step(second/10, engine.Input{})
	if got.Kind != engine.OutcomeItemCollected || got.Item != components.ItemShield {
		t.Fatalf("Expected shield collected, got %v/%v", got.Kind, got.Item)
	}
	if len(sess.Items) != 1 || sess.Player.Inventory[0] != components.ItemShield {
		t.Errorf("Expected item moved into slot 0, got %d left, inv %v", len(sess.Items), sess.Player.Inventory)
	}

	sess.Player.Pos = vmath.Vec2{X: 224, Y: 96}
	got = sess.Step(second/10, engine.Input{})
	if got.Item != components.ItemSpeedBoost || len(sess.Items) != 0 {
		t.Errorf("Expected speed boost on second step, got %v", got.Item)
	}
}

func TestItemPickupFullInventory(t *testing.T) {
	sess := newTestSession(t, ""+
		"#########\n"+
		"#PI....T#\n"+
		"#########\n", nil)
	for i := range sess.Player.Inventory {
		sess.Player.Inventory[i] = components.ItemBatteryRefill
	}
	sess.Player.Pos = vmath.Vec2{X: 160, Y: 96}

	if got := sess.Step(second/10, engine.Input{}); got.Kind != engine.OutcomeNone {
		t.Errorf("Expected no pickup with full inventory, got %v", got.Kind)
	}
	if len(sess.Items) != 1 {
		t.Error("Expected item to stay in the world")
	}
}

func TestLostBeatsWonSameStep(t *testing.T) {
	sess := newTestSession(t, ""+
		"#######\n"+
		"#P.E.T#\n"+
		"#######\n", nil)

	door := &sess.Doors[0]
	door.Openable = true
	door.Advance(door.Progress.Duration)
	sess.Player.Pos = door.Bounds.Center()
	sess.Traps = append(sess.Traps, sess.NewTrap(door.Tile, components.TrapSourceFacility))

	if got := sess.Step(second/10, engine.Input{}); got.Kind != engine.OutcomeLost {
		t.Errorf("Expected Lost to take priority, got %v", got.Kind)
	}
}
