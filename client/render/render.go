package render

import (
	"image/color"

	"github.com/cbodonnell/frontline/pkg/game"
	"github.com/cbodonnell/frontline/pkg/game/constants"
	"github.com/cbodonnell/frontline/pkg/game/types"
)

// Layer is the compositing step an op belongs to. Ops of one cell always appear in layer order.
type Layer int

const (
	LayerTerrain Layer = iota
	LayerFog
	LayerTerritory
	LayerResource
	LayerUnit
	LayerSelection
)

func (l Layer) String() string {
	switch l {
	case LayerTerrain:
		return "terrain"
	case LayerFog:
		return "fog"
	case LayerTerritory:
		return "territory"
	case LayerResource:
		return "resource"
	case LayerUnit:
		return "unit"
	case LayerSelection:
		return "selection"
	default:
		return "unknown"
	}
}

type OpKind int

const (
	OpFillRect OpKind = iota
	OpStrokeRect
	OpFillCircle
)

// Rect is in surface pixels. For circles X and Y are the centre and W the radius.
type Rect struct {
	X, Y, W, H float32
}

// Op is one draw call.
type Op struct {
	Kind        OpKind
	Layer       Layer
	Cell        types.Cell
	Rect        Rect
	Color       color.NRGBA
	StrokeWidth float32
	// UnitID and Owner are set on unit layer ops.
	UnitID string
	Owner  types.PlayerID
}

type DrawList []Op

// Input is everything a frame depends on. Visibility must already be derived on Snapshot.
type Input struct {
	Snapshot *types.Snapshot
	Self     types.PlayerID
	// Top and Left are the first visible row and column.
	Top, Left int
	// Rows and Cols are the viewport size in cells.
	Rows, Cols int
	Selection  *types.Cell
}

const (
	tile       = float32(constants.TileSize)
	unitInset  = 10
	unitSize   = 20
	barOffsetY = 32
	barHeight  = 4
	resourceR  = 7
)

// Render produces the draw list for one frame. It has no side effects.
func Render(in Input) DrawList {
	s := in.Snapshot
	if s == nil {
		return nil
	}

	rowEnd := min(s.Rows(), in.Top+in.Rows)
	colEnd := min(s.Cols(), in.Left+in.Cols)
	if in.Top < 0 || in.Left < 0 || rowEnd <= in.Top || colEnd <= in.Left {
		return nil
	}

	units := game.NewSnapshotUnitIndex(s)
	resources := make(map[types.Cell]bool, len(s.ResourcePoints))
	for _, p := range s.ResourcePoints {
		resources[types.Cell{R: p.R, C: p.C}] = true
	}

	out := make(DrawList, 0, (rowEnd-in.Top)*(colEnd-in.Left)*2)
	for r := in.Top; r < rowEnd; r++ {
		for c := in.Left; c < colEnd; c++ {
			cell := types.Cell{R: r, C: c}
			t := &s.Map[r][c]
			x := float32(c-in.Left) * tile
			y := float32(r-in.Top) * tile
			tileRect := Rect{X: x, Y: y, W: tile, H: tile}

			terrain := ColorWater
			if t.IsLand {
				terrain = ColorLand
			}
			out = append(out, Op{Kind: OpFillRect, Layer: LayerTerrain, Cell: cell, Rect: tileRect, Color: terrain})

			if !t.Visible {
				out = append(out,
					Op{Kind: OpFillRect, Layer: LayerFog, Cell: cell, Rect: tileRect, Color: ColorFog},
					Op{Kind: OpStrokeRect, Layer: LayerFog, Cell: cell, Rect: tileRect, Color: ColorFogBorder, StrokeWidth: 1},
				)
				continue
			}

			if t.Owner != 0 {
				out = append(out, Op{Kind: OpFillRect, Layer: LayerTerritory, Cell: cell, Rect: tileRect, Color: OwnerColor(t.Owner)})
			}

			if resources[cell] {
				out = append(out, Op{
					Kind:  OpFillCircle,
					Layer: LayerResource,
					Cell:  cell,
					Rect:  Rect{X: x + tile/2, Y: y + tile/2, W: resourceR, H: resourceR},
					Color: ColorResource,
				})
			}

			if u := units.At(r, c); u != nil && (u.Owner == in.Self || t.Visible) {
				out = appendUnit(out, cell, x, y, u, in.Self)
			}

			if in.Selection != nil && *in.Selection == cell {
				out = append(out, Op{Kind: OpStrokeRect, Layer: LayerSelection, Cell: cell, Rect: tileRect, Color: ColorSelection, StrokeWidth: 3})
			}
		}
	}
	return out
}

func appendUnit(out DrawList, cell types.Cell, x, y float32, u *types.Unit, self types.PlayerID) DrawList {
	body := ColorEnemyUnit
	if u.Owner == self {
		body = ColorOwnUnit
	}
	unitOp := func(rect Rect, c color.NRGBA) Op {
		return Op{Kind: OpFillRect, Layer: LayerUnit, Cell: cell, Rect: rect, Color: c, UnitID: u.ID, Owner: u.Owner}
	}

	out = append(out,
		unitOp(Rect{X: x + unitInset, Y: y + unitInset, W: unitSize, H: unitSize}, body),
		unitOp(Rect{X: x + unitInset, Y: y + barOffsetY, W: unitSize, H: barHeight}, ColorHealthBar),
	)
	if w := unitSize * HealthFraction(u.HP); w > 0 {
		out = append(out, unitOp(Rect{X: x + unitInset, Y: y + barOffsetY, W: w, H: barHeight}, ColorHealthFill))
	}
	return out
}

// HealthFraction is hp / MaxUnitHP clamped to [0, 1].
func HealthFraction(hp int) float32 {
	f := float32(hp) / float32(constants.MaxUnitHP)
	return max(0, min(1, f))
}
