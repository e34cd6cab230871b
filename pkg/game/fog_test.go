package game

import (
	"testing"

	"github.com/cbodonnell/frontline/pkg/game/constants"
	"github.com/cbodonnell/frontline/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visibleCells(s *types.Snapshot) map[types.Cell]bool {
	out := map[types.Cell]bool{}
	for r := range s.Map {
		for c := range s.Map[r] {
			if s.Map[r][c].Visible {
				out[types.Cell{R: r, C: c}] = true
			}
		}
	}
	return out
}

func TestVisionRadius(t *testing.T) {
	tests := []struct {
		unitType types.UnitType
		want     int
	}{
		{types.UnitTypeBattleship, 5},
		{types.UnitTypeTank, 4},
		{types.UnitTypeInfantry, 2},
		{types.UnitTypeArtillery, 2},
		{types.UnitTypeSubmarine, 2},
		{types.UnitType("mech"), DefaultVisionRadius},
	}
	for _, tt := range tests {
		t.Run(string(tt.unitType), func(t *testing.T) {
			assert.Equal(t, tt.want, VisionRadius(tt.unitType))
		})
	}
}

func TestRecomputeVisibility_TerritoryOnly(t *testing.T) {
	s := types.NewEmptySnapshot(constants.GridRows, constants.GridCols)
	s.Territories[1] = []string{"3,4", "3,5", "bogus", "99,99", "-1,0"}
	s.Territories[2] = []string{"10,10"}

	RecomputeVisibility(s, 1)

	assert.Equal(t, map[types.Cell]bool{
		{R: 3, C: 4}: true,
		{R: 3, C: 5}: true,
	}, visibleCells(s))
}

func TestRecomputeVisibility_UnitRadius(t *testing.T) {
	s := types.NewEmptySnapshot(constants.GridRows, constants.GridCols)
	s.Units = []*types.Unit{
		{ID: "t1", Owner: 1, Type: types.UnitTypeTank, X: 20, Y: 10},
		{ID: "e1", Owner: 2, Type: types.UnitTypeBattleship, X: 50, Y: 20},
	}

	RecomputeVisibility(s, 1)

	for r := range s.Map {
		for c := range s.Map[r] {
			want := r >= 6 && r <= 14 && c >= 16 && c <= 24
			assert.Equal(t, want, s.Map[r][c].Visible, "cell (%d,%d)", r, c)
		}
	}
}

func TestRecomputeVisibility_ClipsAtEdges(t *testing.T) {
	s := types.NewEmptySnapshot(constants.GridRows, constants.GridCols)
	s.Units = []*types.Unit{
		{ID: "b1", Owner: 1, Type: types.UnitTypeBattleship, X: 0, Y: 0},
	}

	RecomputeVisibility(s, 1)

	assert.Len(t, visibleCells(s), 36)
	assert.True(t, Visible(s, 5, 5))
	assert.False(t, Visible(s, 6, 0))
	assert.False(t, Visible(s, -1, 0))
}

func TestRecomputeVisibility_NoMemory(t *testing.T) {
	s := types.NewEmptySnapshot(constants.GridRows, constants.GridCols)
	s.Units = []*types.Unit{{ID: "i1", Owner: 1, Type: types.UnitTypeInfantry, X: 5, Y: 5}}
	RecomputeVisibility(s, 1)
	first := visibleCells(s)
	require.Len(t, first, 25)

	RecomputeVisibility(s, 1)
	assert.Equal(t, first, visibleCells(s))

	s.Units[0].X = 30
	RecomputeVisibility(s, 1)
	assert.False(t, Visible(s, 5, 5))
	assert.True(t, Visible(s, 5, 30))
}

func TestRecomputeVisibility_NoSelf(t *testing.T) {
	s := types.NewEmptySnapshot(4, 4)
	s.Territories[0] = []string{"1,1"}
	s.Units = []*types.Unit{{ID: "x", Owner: 0, Type: types.UnitTypeTank, X: 1, Y: 1}}

	RecomputeVisibility(s, 0)

	assert.Empty(t, visibleCells(s))
}
