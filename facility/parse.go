package facility

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lixenwraith/lastlight/grid"
)

// ErrMissingSpawn is returned by Parse when a layout lacks 'P' or 'T'
var ErrMissingSpawn = errors.New("facility: layout missing spawn")

// Parse reads a layout in the ASCII marker format, top row first. Marker tiles
// are floor. Markers are collected in raster order.
func Parse(text string, cellSize float64) (*Result, error) {
	rows := strings.Split(strings.TrimRight(text, "\n"), "\n")
	g, err := grid.Parse(rows, cellSize)
	if err != nil {
		return nil, err
	}

	res := &Result{Grid: g}
	var havePlayer, haveThreat bool

	for row, line := range rows {
		for col, ch := range []rune(line) {
			t := g.TileAt(row, col)
			switch ch {
			case MarkWall, MarkFloor:
			case MarkPlayer:
				res.PlayerSpawn, havePlayer = t, true
			case MarkThreat:
				res.ThreatSpawn, haveThreat = t, true
			case MarkExit:
				res.Exits = append(res.Exits, t)
			case MarkGenerator:
				res.Generators = append(res.Generators, t)
			case MarkItem:
				res.Items = append(res.Items, t)
			case MarkHazard:
				res.Hazards = append(res.Hazards, t)
			default:
				return nil, fmt.Errorf("%w: unknown marker %q at row %d col %d", grid.ErrBadLayout, ch, row, col)
			}
		}
	}

	if !havePlayer || !haveThreat {
		return nil, ErrMissingSpawn
	}
	return res, nil
}

// MustParse is Parse for fixtures known to be valid
func MustParse(text string, cellSize float64) *Result {
	res, err := Parse(text, cellSize)
	if err != nil {
		panic(err)
	}
	return res
}
