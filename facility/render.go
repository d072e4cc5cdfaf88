package facility

import (
	"image"
	"image/color"
	"strings"

	"github.com/fogleman/gg"

	"github.com/lixenwraith/lastlight/grid"
)

// Marker runes used by ASCII; later entries in markerOrder win on shared tiles
const (
	MarkWall      = '#'
	MarkFloor     = '.'
	MarkPlayer    = 'P'
	MarkThreat    = 'T'
	MarkExit      = 'E'
	MarkGenerator = 'G'
	MarkItem      = 'I'
	MarkHazard    = 'X'
)

var (
	colorWall      = color.RGBA{24, 24, 32, 255}
	colorFloor     = color.RGBA{90, 90, 104, 255}
	colorPlayer    = color.RGBA{80, 200, 255, 255}
	colorThreat    = color.RGBA{255, 60, 60, 255}
	colorExit      = color.RGBA{80, 255, 120, 255}
	colorGenerator = color.RGBA{255, 200, 40, 255}
	colorItem      = color.RGBA{200, 120, 255, 255}
	colorHazard    = color.RGBA{255, 120, 0, 255}
)

// Markers returns every placed marker keyed by tile
func (r *Result) Markers() map[grid.Tile]rune {
	m := make(map[grid.Tile]rune, 2+len(r.Exits)+len(r.Generators)+len(r.Items)+len(r.Hazards))
	for _, t := range r.Hazards {
		m[t] = MarkHazard
	}
	for _, t := range r.Items {
		m[t] = MarkItem
	}
	for _, t := range r.Generators {
		m[t] = MarkGenerator
	}
	for _, t := range r.Exits {
		m[t] = MarkExit
	}
	m[r.ThreatSpawn] = MarkThreat
	m[r.PlayerSpawn] = MarkPlayer
	return m
}

// ASCII renders the layout top row first with marker overlays
func (r *Result) ASCII() string {
	g := r.Grid
	marks := r.Markers()

	var sb strings.Builder
	sb.Grow((g.Width() + 1) * g.Height())
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			if ch, ok := marks[g.TileAt(row, col)]; ok {
				sb.WriteRune(ch)
				continue
			}
			if g.CellAt(row, col) == grid.Wall {
				sb.WriteRune(MarkWall)
			} else {
				sb.WriteRune(MarkFloor)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Image draws the layout with scale pixels per tile
func (r *Result) Image(scale int) image.Image {
	if scale < 1 {
		scale = 1
	}
	g := r.Grid
	s := float64(scale)
	dc := gg.NewContext(g.Width()*scale, g.Height()*scale)

	dc.SetColor(colorWall)
	dc.DrawRectangle(0, 0, float64(g.Width())*s, float64(g.Height())*s)
	dc.Fill()

	dc.SetColor(colorFloor)
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			if g.CellAt(row, col) == grid.Floor {
				dc.DrawRectangle(float64(col)*s, float64(row)*s, s, s)
			}
		}
	}
	dc.Fill()

	for t, mark := range r.Markers() {
		row, col := g.RowCol(t)
		cx, cy := (float64(col)+0.5)*s, (float64(row)+0.5)*s
		dc.SetColor(markerColor(mark))
		switch mark {
		case MarkExit, MarkGenerator:
			dc.DrawRectangle(float64(col)*s+1, float64(row)*s+1, s-2, s-2)
		default:
			dc.DrawCircle(cx, cy, s*0.35)
		}
		dc.Fill()
	}

	return dc.Image()
}

// SavePNG writes Image(scale) to path
func (r *Result) SavePNG(path string, scale int) error {
	return gg.SavePNG(path, r.Image(scale))
}

func markerColor(mark rune) color.Color {
	switch mark {
	case MarkPlayer:
		return colorPlayer
	case MarkThreat:
		return colorThreat
	case MarkExit:
		return colorExit
	case MarkGenerator:
		return colorGenerator
	case MarkItem:
		return colorItem
	case MarkHazard:
		return colorHazard
	default:
		return colorFloor
	}
}
