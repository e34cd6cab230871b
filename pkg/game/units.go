package game

import (
	"github.com/cbodonnell/frontline/pkg/game/constants"
	"github.com/cbodonnell/frontline/pkg/game/types"
	"github.com/solarlune/resolv"
)

const (
	// UnitTag marks unit objects in the index space.
	UnitTag = "unit"

	unitInset = 10
	unitSize  = constants.TileSize - 2*unitInset
)

// UnitIndex answers "which unit stands on this cell" without scanning the unit list.
// Units are placed in a resolv space laid out in tile pixels, one space cell per tile,
// as the same 20x20 square the renderer draws for them.
type UnitIndex struct {
	space *resolv.Space
	rows  int
	cols  int
}

// NewUnitIndex indexes the units of a snapshot. Units outside the grid are skipped.
func NewUnitIndex(rows, cols int, units []*types.Unit) *UnitIndex {
	space := resolv.NewSpace(cols*constants.TileSize, rows*constants.TileSize, constants.TileSize, constants.TileSize)
	idx := &UnitIndex{
		space: space,
		rows:  rows,
		cols:  cols,
	}
	for _, u := range units {
		if u == nil || u.Y < 0 || u.Y >= rows || u.X < 0 || u.X >= cols {
			continue
		}
		obj := resolv.NewObject(
			float64(u.X*constants.TileSize+unitInset),
			float64(u.Y*constants.TileSize+unitInset),
			unitSize, unitSize,
			UnitTag,
		)
		obj.Data = u
		space.Add(obj)
	}
	return idx
}

// NewSnapshotUnitIndex indexes the units of s using its map dimensions.
func NewSnapshotUnitIndex(s *types.Snapshot) *UnitIndex {
	return NewUnitIndex(s.Rows(), s.Cols(), s.Units)
}

// At returns the first unit in snapshot order standing on the cell, or nil.
func (i *UnitIndex) At(r, c int) *types.Unit {
	return i.find(r, c, func(*types.Unit) bool { return true })
}

// OwnedAt returns the first unit of owner standing on the cell, or nil.
func (i *UnitIndex) OwnedAt(r, c int, owner types.PlayerID) *types.Unit {
	return i.find(r, c, func(u *types.Unit) bool { return u.Owner == owner })
}

func (i *UnitIndex) find(r, c int, match func(*types.Unit) bool) *types.Unit {
	if r < 0 || r >= i.rows || c < 0 || c >= i.cols {
		return nil
	}
	cell := i.space.Cell(c, r)
	if cell == nil {
		return nil
	}
	for _, obj := range cell.Objects {
		if !obj.HasTags(UnitTag) {
			continue
		}
		u, ok := obj.Data.(*types.Unit)
		if !ok || u.X != c || u.Y != r {
			continue
		}
		if match(u) {
			return u
		}
	}
	return nil
}
