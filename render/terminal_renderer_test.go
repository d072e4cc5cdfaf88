package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/lastlight/constants"
	"github.com/lixenwraith/lastlight/engine"
	"github.com/lixenwraith/lastlight/facility"
	"github.com/lixenwraith/lastlight/logger"
)

func init() {
	logger.Discard()
}

const hallway = "" +
	"###############\n" +
	"#P...........T#\n" +
	"###############\n"

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func runeAt(s tcell.Screen, x, y int) rune {
	ch, _, _, _ := s.GetContent(x, y)
	return ch
}

func rowText(s tcell.Screen, y, w int) string {
	var b strings.Builder
	for x := 0; x < w; x++ {
		b.WriteRune(runeAt(s, x, y))
	}
	return b.String()
}

func TestCameraOrigin(t *testing.T) {
	tests := []struct {
		name                string
		focus, view, extent int
		want                int
	}{
		{"world fits", 5, 20, 15, 0},
		{"near start", 2, 10, 41, 0},
		{"centered", 20, 10, 41, 15},
		{"near end", 40, 10, 41, 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CameraOrigin(tt.focus, tt.view, tt.extent); got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestRenderHallway(t *testing.T) {
	screen := newScreen(t, 40, 8)
	sess := engine.NewSessionFromLayout(engine.DefaultConfig(), facility.MustParse(hallway, constants.CellSize))
	r := NewTerminalRenderer(screen)

	r.RenderFrame(sess, nil)

	// Player tile (row 1, col 1) sits below the two HUD rows
	if got := runeAt(screen, 2, 3); got != constants.GlyphPlayer {
		t.Errorf("Expected player glyph, got %q", got)
	}
	if got := runeAt(screen, 2, 2); got != constants.GlyphWall {
		t.Errorf("Expected lit wall above player, got %q", got)
	}
	if got := runeAt(screen, 16, 3); got != constants.GlyphDark {
		t.Errorf("Expected dark floor beyond light radius, got %q", got)
	}
	if got := runeAt(screen, 26, 3); got == constants.GlyphDrone {
		t.Error("Expected drone hidden in darkness")
	}
	if hud := rowText(screen, 0, 40); !strings.HasPrefix(hud, "BAT ") || !strings.Contains(hud, "GEN 0/0") {
		t.Errorf("Expected battery and generator status, got %q", hud)
	}
	if inv := rowText(screen, 1, 40); !strings.HasPrefix(inv, "[1]- [2]- [3]-") {
		t.Errorf("Expected empty inventory, got %q", inv)
	}
}

func TestRenderWidenedLight(t *testing.T) {
	screen := newScreen(t, 40, 8)
	sess := engine.NewSessionFromLayout(engine.DefaultConfig(), facility.MustParse(hallway, constants.CellSize))
	sess.Player.Light.Radius = constants.LightRadiusMax
	r := NewTerminalRenderer(screen)

	r.RenderFrame(sess, nil)

	if got := runeAt(screen, 16, 3); got != constants.GlyphFloor {
		t.Errorf("Expected lit floor inside widened radius, got %q", got)
	}
}

func TestRenderCameraFollowsPlayer(t *testing.T) {
	screen := newScreen(t, 40, 12)
	cfg := engine.DefaultConfig()
	cfg.Facility.Seed = 5
	sess, err := engine.NewSession(cfg)
	if err != nil {
		t.Fatalf("Expected session, got %v", err)
	}
	// Far corner of a 41x41 facility
	floors := sess.Grid.FloorTiles()
	sess.Player.Pos = sess.Grid.TileCenter(floors[len(floors)-1])

	r := NewTerminalRenderer(screen)
	r.RenderFrame(sess, nil)

	found := false
	for y := constants.HUDHeight; y < 12 && !found; y++ {
		for x := 0; x < 40; x++ {
			if runeAt(screen, x, y) == constants.GlyphPlayer {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("Expected player inside the viewport")
	}
}

func TestRenderOverlay(t *testing.T) {
	screen := newScreen(t, 40, 10)
	r := NewTerminalRenderer(screen)

	r.RenderFrame(nil, &Overlay{
		Title:    constants.TitleText,
		Options:  []string{"Start", "Quit"},
		Selected: 1,
	})

	var all strings.Builder
	for y := 0; y < 10; y++ {
		all.WriteString(rowText(screen, y, 40))
	}
	text := all.String()
	if !strings.Contains(text, constants.TitleText) {
		t.Errorf("Expected title in overlay, got %q", text)
	}
	if !strings.Contains(text, "> Quit <") {
		t.Error("Expected selected option marked")
	}
}

func TestBatteryColorEnds(t *testing.T) {
	if BatteryColor(0) != RgbBatteryLow {
		t.Error("Expected low color at empty")
	}
	if BatteryColor(1.5) != RgbBatteryHigh {
		t.Error("Expected high color clamped at full")
	}
}
