package components

import (
	"math/rand"
	"testing"
	"time"

	"github.com/lixenwraith/lastlight/constants"
	"github.com/lixenwraith/lastlight/grid"
	"github.com/lixenwraith/lastlight/vmath"
)

func TestProgressClampsAtDuration(t *testing.T) {
	p := NewProgress(5 * time.Second)
	want := []time.Duration{2 * time.Second, 4 * time.Second, 5 * time.Second}

	for i, w := range want {
		completed := p.Advance(2 * time.Second)
		if p.Elapsed != w {
			t.Errorf("step %d: Expected %v, got %v", i, w, p.Elapsed)
		}
		if completed != (i == 2) {
			t.Errorf("step %d: Expected completed=%v, got %v", i, i == 2, completed)
		}
	}

	if p.Advance(time.Second) {
		t.Error("Expected no second completion")
	}
	if p.Elapsed != 5*time.Second {
		t.Errorf("Expected sticky 5s, got %v", p.Elapsed)
	}
}

func TestProgressMonotonic(t *testing.T) {
	p := NewProgress(3 * time.Second)
	prev := p.Elapsed
	for _, dt := range []time.Duration{0, 500 * time.Millisecond, -time.Second, time.Second, 0, 4 * time.Second} {
		p.Advance(dt)
		if p.Elapsed < prev {
			t.Fatalf("Expected non-decreasing progress, got %v after %v", p.Elapsed, prev)
		}
		prev = p.Elapsed
	}
	if !p.Complete() || p.Ratio() != 1 {
		t.Errorf("Expected complete with ratio 1, got ratio %v", p.Ratio())
	}
}

func TestDoorGating(t *testing.T) {
	d := NewDoor(grid.Tile{}, vmath.AABB{}, 2*time.Second)

	for i := 0; i < 10; i++ {
		d.Advance(time.Second)
	}
	if d.Open() || d.Progress.Elapsed != 0 {
		t.Errorf("Expected locked door untouched, got open=%v elapsed=%v", d.Open(), d.Progress.Elapsed)
	}
	if !d.Blocking() {
		t.Error("Expected closed door to block")
	}

	d.Openable = true
	if !d.Advance(2 * time.Second) {
		t.Error("Expected completion on duration-equal progress")
	}
	if !d.Open() || d.Blocking() {
		t.Error("Expected open non-blocking door")
	}

	d.Openable = false
	if !d.Open() {
		t.Error("Expected open to stay sticky when openable drops")
	}
}

func TestGeneratorBlocking(t *testing.T) {
	g := NewGenerator(grid.Tile{}, vmath.AABB{}, time.Second)
	if !g.Blocking() {
		t.Error("Expected incomplete generator to block")
	}
	g.Advance(time.Second)
	if g.Blocking() || !g.Complete() {
		t.Error("Expected repaired generator to stop blocking")
	}
}

func TestInteractionLock(t *testing.T) {
	var l InteractionLock
	if !l.Idle() {
		t.Fatal("Expected zero lock idle")
	}

	l.AcquireDoor(2)
	if l.Idle() || l.State != LockDoor || l.Target != 2 {
		t.Errorf("Expected door lock on 2, got %v/%d", l.State, l.Target)
	}

	l.Release()
	if !l.Idle() {
		t.Error("Expected idle after release")
	}
}

func TestPlayerInventory(t *testing.T) {
	p := NewPlayer(vmath.Vec2{}, constants.CellSize)

	for _, it := range []ItemType{ItemShield, ItemSpeedBoost, ItemBatteryRefill} {
		if !p.AddItem(it) {
			t.Fatalf("Expected room for %v", it)
		}
	}
	if p.AddItem(ItemShield) {
		t.Error("Expected full inventory to refuse")
	}

	tests := []struct {
		name  string
		slot  int
		want  ItemType
		check func() bool
	}{
		{"shield", 0, ItemShield, func() bool { return p.ShieldRemaining == constants.ShieldDuration }},
		{"speed", 1, ItemSpeedBoost, func() bool { return p.SpeedRemaining == constants.SpeedBoostDuration }},
		{"empty after use", 1, ItemNone, func() bool { return true }},
		{"out of range", 7, ItemNone, func() bool { return true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.UseSlot(tt.slot); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
			if !tt.check() {
				t.Error("Expected effect applied")
			}
		})
	}

	p.Battery = 3
	p.Light.Lockout = time.Second
	if p.UseSlot(2) != ItemBatteryRefill || p.Battery != constants.BatteryMax || p.Light.Lockout != 0 {
		t.Errorf("Expected battery refilled, got %v", p.Battery)
	}
}

func TestPlayerSpeed(t *testing.T) {
	p := NewPlayer(vmath.Vec2{}, constants.CellSize)

	if p.Speed(false) != constants.PlayerWalkSpeed {
		t.Errorf("Expected walk speed, got %v", p.Speed(false))
	}
	if p.Speed(true) != constants.PlayerSprintSpeed {
		t.Errorf("Expected sprint speed, got %v", p.Speed(true))
	}
	p.SpeedRemaining = time.Second
	if p.Speed(true) != constants.PlayerSprintSpeed*constants.SpeedBoostMultiplier {
		t.Errorf("Expected boosted sprint, got %v", p.Speed(true))
	}
}

func TestDroneTrapTimerRange(t *testing.T) {
	d := Drone{
		TrapMin: 10 * time.Second,
		TrapMax: 20 * time.Second,
		Rng:     rand.New(rand.NewSource(1)),
	}
	for i := 0; i < 100; i++ {
		d.RollTrapTimer()
		if d.TrapTimer < d.TrapMin || d.TrapTimer > d.TrapMax {
			t.Fatalf("Expected timer in range, got %v", d.TrapTimer)
		}
	}

	d.RollHeading()
	if mag := d.Dir.Mag(); mag < 0.999 || mag > 1.001 {
		t.Errorf("Expected unit heading, got magnitude %v", mag)
	}
}

func TestParseDroneMode(t *testing.T) {
	tests := []struct {
		in      string
		want    DroneMode
		wantErr bool
	}{
		{"", DroneWaypoint, false},
		{"Waypoint", DroneWaypoint, false},
		{" bounce ", DroneBounce, false},
		{"chase", DroneWaypoint, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDroneMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected err=%v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}
