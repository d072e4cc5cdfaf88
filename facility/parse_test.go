package facility

import (
	"errors"
	"testing"

	"github.com/lixenwraith/lastlight/grid"
)

func TestParseMarkers(t *testing.T) {
	res, err := Parse(
		"#######\n"+
			"#E...G#\n"+
			"#.#.#.#\n"+
			"#P.IX.#\n"+
			"#....T#\n"+
			"#######\n", 64)
	if err != nil {
		t.Fatal(err)
	}

	if res.PlayerSpawn != (grid.Tile{X: 1, Y: 2}) {
		t.Errorf("Expected player at (1,2), got %v", res.PlayerSpawn)
	}
	if res.ThreatSpawn != (grid.Tile{X: 5, Y: 1}) {
		t.Errorf("Expected threat at (5,1), got %v", res.ThreatSpawn)
	}
	if len(res.Exits) != 1 || res.Exits[0] != (grid.Tile{X: 1, Y: 4}) {
		t.Errorf("Expected exit at (1,4), got %v", res.Exits)
	}
	if len(res.Generators) != 1 || len(res.Items) != 1 || len(res.Hazards) != 1 {
		t.Errorf("Expected one of each marker, got %d/%d/%d", len(res.Generators), len(res.Items), len(res.Hazards))
	}
	if !res.Grid.IsFloor(res.Generators[0]) {
		t.Error("Expected marker tiles to be floor")
	}
}

func TestParseRoundTrip(t *testing.T) {
	res, err := Generate(testConfig(101))
	if err != nil {
		t.Fatal(err)
	}
	back, err := Parse(res.ASCII(), res.Grid.CellSize())
	if err != nil {
		t.Fatal(err)
	}
	if back.ASCII() != res.ASCII() {
		t.Error("Expected ASCII round trip to be stable")
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse("###\n#.#\n###\n", 1); !errors.Is(err, ErrMissingSpawn) {
		t.Errorf("Expected ErrMissingSpawn, got %v", err)
	}
	if _, err := Parse("#P#\n#?T\n", 1); !errors.Is(err, grid.ErrBadLayout) {
		t.Errorf("Expected ErrBadLayout, got %v", err)
	}
}
