package game

import (
	"testing"

	"github.com/cbodonnell/frontline/pkg/game/types"
	"github.com/stretchr/testify/assert"
)

func TestUnitIndex(t *testing.T) {
	mine := &types.Unit{ID: "a", Owner: 1, Type: types.UnitTypeInfantry, X: 3, Y: 2}
	theirs := &types.Unit{ID: "b", Owner: 2, Type: types.UnitTypeTank, X: 4, Y: 2}
	stacked := &types.Unit{ID: "c", Owner: 1, Type: types.UnitTypeTank, X: 4, Y: 2}
	offGrid := &types.Unit{ID: "d", Owner: 1, Type: types.UnitTypeTank, X: 99, Y: 2}

	idx := NewUnitIndex(8, 8, []*types.Unit{mine, theirs, stacked, offGrid, nil})

	assert.Same(t, mine, idx.At(2, 3))
	assert.Same(t, mine, idx.OwnedAt(2, 3, 1))
	assert.Nil(t, idx.OwnedAt(2, 3, 2))

	assert.NotNil(t, idx.At(2, 4))
	assert.Same(t, theirs, idx.OwnedAt(2, 4, 2))
	assert.Same(t, stacked, idx.OwnedAt(2, 4, 1))

	assert.Nil(t, idx.At(0, 0))
	assert.Nil(t, idx.At(-1, 3))
	assert.Nil(t, idx.At(2, 99))
}

func TestNewSnapshotUnitIndex(t *testing.T) {
	s := types.NewEmptySnapshot(3, 3)
	u := &types.Unit{ID: "a", Owner: 1, Type: types.UnitTypeSubmarine, X: 2, Y: 2}
	s.Units = []*types.Unit{u}

	idx := NewSnapshotUnitIndex(s)

	assert.Same(t, u, idx.At(2, 2))
	assert.Nil(t, idx.At(2, 1))
}
