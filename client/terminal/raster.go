package terminal

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/cbodonnell/frontline/client/render"
	"github.com/cbodonnell/frontline/pkg/game/types"
	"github.com/charmbracelet/lipgloss"
)

const (
	// glyphWidth is how many terminal columns one tile takes.
	glyphWidth = 2

	glyphFog      = "░"
	glyphResource = "*"
	glyphEmpty    = " "
)

// Glyph is one tile of the terminal board.
type Glyph struct {
	Ch       string
	FG, BG   color.NRGBA
	Selected bool
	// hasUnit is set once the unit body has been taken for the tile.
	hasUnit bool
}

// Raster is a rows x cols glyph grid for the viewport.
type Raster struct {
	Top, Left  int
	Rows, Cols int
	Glyphs     [][]Glyph
}

// Rasterize folds a draw list into one glyph per tile. Ops outside the window are ignored.
// unitTypes maps unit ids to their kind so the unit glyph can show it.
func Rasterize(ops render.DrawList, top, left, rows, cols int, unitTypes map[string]types.UnitType) *Raster {
	r := &Raster{Top: top, Left: left, Rows: rows, Cols: cols, Glyphs: make([][]Glyph, rows)}
	for i := range r.Glyphs {
		r.Glyphs[i] = make([]Glyph, cols)
		for j := range r.Glyphs[i] {
			r.Glyphs[i][j] = Glyph{Ch: glyphEmpty}
		}
	}

	for _, op := range ops {
		row, col := op.Cell.R-top, op.Cell.C-left
		if row < 0 || row >= rows || col < 0 || col >= cols {
			continue
		}
		g := &r.Glyphs[row][col]
		switch op.Layer {
		case render.LayerTerrain:
			g.BG = op.Color
		case render.LayerFog:
			if op.Kind == render.OpFillRect {
				g.BG = blend(g.BG, op.Color)
				g.Ch = glyphFog
				g.FG = render.ColorFogBorder
			}
		case render.LayerTerritory:
			g.BG = blend(g.BG, op.Color)
		case render.LayerResource:
			g.Ch = glyphResource
			g.FG = render.Opaque(op.Color)
		case render.LayerUnit:
			if g.hasUnit {
				continue
			}
			g.hasUnit = true
			g.Ch = unitGlyph(unitTypes[op.UnitID])
			g.FG = op.Color
		case render.LayerSelection:
			g.Selected = true
		}
	}
	return r
}

func unitGlyph(t types.UnitType) string {
	switch t {
	case types.UnitTypeInfantry:
		return "i"
	case types.UnitTypeArtillery:
		return "a"
	case types.UnitTypeTank:
		return "T"
	case types.UnitTypeSubmarine:
		return "s"
	case types.UnitTypeBattleship:
		return "B"
	default:
		return "?"
	}
}

// blend composites src over an opaque dst.
func blend(dst, src color.NRGBA) color.NRGBA {
	a := uint32(src.A)
	mix := func(d, s uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*(0xff-a)) / 0xff)
	}
	return color.NRGBA{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 0xff}
}

func hex(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// Render draws the raster with lipgloss styles, one line per row.
// cursor, when inside the window, is drawn in reverse video.
func (r *Raster) Render(cursor *types.Cell) string {
	var b strings.Builder
	for i, row := range r.Glyphs {
		for j, g := range row {
			style := lipgloss.NewStyle().Foreground(hex(g.FG)).Background(hex(g.BG))
			if g.Selected {
				style = style.Background(hex(render.ColorSelection))
			}
			if cursor != nil && cursor.R == r.Top+i && cursor.C == r.Left+j {
				style = style.Reverse(true)
			}
			b.WriteString(style.Render(g.Ch + strings.Repeat(" ", glyphWidth-1)))
		}
		if i < len(r.Glyphs)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
