package session

import (
	"github.com/cbodonnell/frontline/pkg/game/constants"
	"github.com/cbodonnell/frontline/pkg/game/types"
)

// Viewport is the camera window over the grid. X and Y are the top-left column and row.
// Pan and CenterOn keep X in [0, GridCols-Cols] and Y in [0, GridRows-Rows].
type Viewport struct {
	X, Y       int
	Rows, Cols int

	GridRows, GridCols int
}

// NewViewport sizes the window from a surface in pixels.
func NewViewport(gridRows, gridCols, screenWidth, screenHeight int) Viewport {
	return Viewport{
		Rows:     screenHeight / constants.TileSize,
		Cols:     screenWidth / constants.TileSize,
		GridRows: gridRows,
		GridCols: gridCols,
	}
}

func DefaultViewport() Viewport {
	return NewViewport(constants.GridRows, constants.GridCols, constants.CanvasWidth, constants.CanvasHeight)
}

func (v Viewport) MaxX() int {
	return max(0, v.GridCols-v.Cols)
}

func (v Viewport) MaxY() int {
	return max(0, v.GridRows-v.Rows)
}

// AtOrigin reports whether the camera has never left (0,0).
func (v Viewport) AtOrigin() bool {
	return v.X == 0 && v.Y == 0
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// Pan moves each non-zero axis by its delta and clamps it.
func (v *Viewport) Pan(dx, dy int) {
	if dx != 0 {
		v.X = clamp(v.X+dx, 0, v.MaxX())
	}
	if dy != 0 {
		v.Y = clamp(v.Y+dy, 0, v.MaxY())
	}
}

// CenterOn puts the cell near the middle of the window, clamped to the grid.
func (v *Viewport) CenterOn(cell types.Cell) {
	v.Y = clamp(cell.R-v.Rows/2, 0, v.MaxY())
	v.X = clamp(cell.C-v.Cols/2, 0, v.MaxX())
}

// Resize changes the grid extents and re-clamps the camera.
func (v *Viewport) Resize(gridRows, gridCols int) {
	v.GridRows = gridRows
	v.GridCols = gridCols
	v.X = clamp(v.X, 0, v.MaxX())
	v.Y = clamp(v.Y, 0, v.MaxY())
}

// CellAt maps a surface pixel to the grid cell under it.
func (v Viewport) CellAt(px, py int) (types.Cell, bool) {
	if px < 0 || py < 0 {
		return types.Cell{}, false
	}
	col, row := px/constants.TileSize, py/constants.TileSize
	if col >= v.Cols || row >= v.Rows {
		return types.Cell{}, false
	}
	return types.Cell{R: row + v.Y, C: col + v.X}, true
}

// Contains reports whether the cell is inside the window.
func (v Viewport) Contains(cell types.Cell) bool {
	return cell.R >= v.Y && cell.R < v.Y+v.Rows && cell.C >= v.X && cell.C < v.X+v.Cols
}
