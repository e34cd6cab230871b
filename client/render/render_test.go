package render

import (
	"testing"

	"github.com/cbodonnell/frontline/pkg/game"
	"github.com/cbodonnell/frontline/pkg/game/constants"
	"github.com/cbodonnell/frontline/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *types.Snapshot {
	s := types.NewEmptySnapshot(constants.GridRows, constants.GridCols)
	for r := 0; r < 10; r++ {
		for c := 0; c < 10; c++ {
			s.Map[r][c].IsLand = true
		}
	}
	s.Map[2][2].Owner = 1
	s.Map[2][3].Owner = 7
	s.Territories[1] = []string{"2,2"}
	s.ResourcePoints = []types.ResourcePoint{{R: 2, C: 2, Type: "fundoil"}}
	s.Units = []*types.Unit{
		{ID: "own", Owner: 1, Type: types.UnitTypeInfantry, X: 2, Y: 2, HP: 5},
		{ID: "near", Owner: 2, Type: types.UnitTypeTank, X: 3, Y: 3, HP: 10},
		{ID: "far", Owner: 2, Type: types.UnitTypeTank, X: 20, Y: 15, HP: 10},
	}
	s.SelfID = 1
	game.RecomputeVisibility(s, 1)
	return s
}

func testInput(s *types.Snapshot) Input {
	return Input{
		Snapshot: s,
		Self:     1,
		Rows:     constants.ViewportRows,
		Cols:     constants.ViewportCols,
	}
}

func opsAt(dl DrawList, cell types.Cell) DrawList {
	var out DrawList
	for _, op := range dl {
		if op.Cell == cell {
			out = append(out, op)
		}
	}
	return out
}

func TestRender_Deterministic(t *testing.T) {
	s := testSnapshot()
	in := testInput(s)
	in.Selection = &types.Cell{R: 2, C: 2}

	first := Render(in)
	second := Render(in)

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestRender_VisitsOnlyViewport(t *testing.T) {
	s := testSnapshot()
	in := testInput(s)
	in.Top = 14
	in.Left = 39

	dl := Render(in)

	seen := map[types.Cell]bool{}
	for _, op := range dl {
		assert.GreaterOrEqual(t, op.Cell.R, 14)
		assert.Less(t, op.Cell.R, constants.GridRows)
		assert.GreaterOrEqual(t, op.Cell.C, 39)
		assert.Less(t, op.Cell.C, constants.GridCols)
		seen[op.Cell] = true
	}
	assert.Len(t, seen, 18*25)
}

func TestRender_ClipsAtGridEdge(t *testing.T) {
	s := types.NewEmptySnapshot(4, 4)
	in := Input{Snapshot: s, Self: 1, Top: 2, Left: 1, Rows: 18, Cols: 25}

	dl := Render(in)

	seen := map[types.Cell]bool{}
	for _, op := range dl {
		seen[op.Cell] = true
	}
	assert.Len(t, seen, 2*3)
	assert.Equal(t, Rect{X: 0, Y: 0, W: 40, H: 40}, dl[0].Rect)
}

func TestRender_LayerOrder(t *testing.T) {
	s := testSnapshot()
	in := testInput(s)
	in.Selection = &types.Cell{R: 2, C: 2}

	ops := opsAt(Render(in), types.Cell{R: 2, C: 2})

	var layers []Layer
	for _, op := range ops {
		if len(layers) == 0 || layers[len(layers)-1] != op.Layer {
			layers = append(layers, op.Layer)
		}
	}
	assert.Equal(t, []Layer{LayerTerrain, LayerTerritory, LayerResource, LayerUnit, LayerSelection}, layers)

	assert.Equal(t, ColorLand, ops[0].Color)
	assert.Equal(t, Palette[1], ops[1].Color)
	assert.Equal(t, OpFillCircle, ops[2].Kind)
	assert.Equal(t, Rect{X: 100, Y: 100, W: 7, H: 7}, ops[2].Rect)
	assert.Equal(t, ColorOwnUnit, ops[3].Color)
	assert.Equal(t, Rect{X: 90, Y: 90, W: 20, H: 20}, ops[3].Rect)
	last := ops[len(ops)-1]
	assert.Equal(t, OpStrokeRect, last.Kind)
	assert.Equal(t, float32(3), last.StrokeWidth)
}

func TestRender_FogHidesEverythingElse(t *testing.T) {
	s := testSnapshot()
	in := testInput(s)
	in.Selection = &types.Cell{R: 15, C: 20}

	ops := opsAt(Render(in), types.Cell{R: 15, C: 20})

	require.Len(t, ops, 3)
	assert.Equal(t, LayerTerrain, ops[0].Layer)
	assert.Equal(t, ColorWater, ops[0].Color)
	assert.Equal(t, LayerFog, ops[1].Layer)
	assert.Equal(t, LayerFog, ops[2].Layer)
	assert.Equal(t, OpStrokeRect, ops[2].Kind)
}

func TestRender_EnemyInFogNeverDrawn(t *testing.T) {
	s := testSnapshot()
	require.False(t, s.Map[15][20].Visible)

	for top := 0; top <= constants.GridRows-constants.ViewportRows; top += 7 {
		for left := 0; left <= constants.GridCols-constants.ViewportCols; left += 13 {
			in := testInput(s)
			in.Top, in.Left = top, left
			for _, op := range Render(in) {
				assert.NotEqual(t, "far", op.UnitID)
			}
		}
	}
}

func TestRender_VisibleEnemy(t *testing.T) {
	s := testSnapshot()
	require.True(t, s.Map[3][3].Visible)

	ops := opsAt(Render(testInput(s)), types.Cell{R: 3, C: 3})

	var unitOps DrawList
	for _, op := range ops {
		if op.Layer == LayerUnit {
			unitOps = append(unitOps, op)
		}
	}
	require.Len(t, unitOps, 3)
	assert.Equal(t, ColorEnemyUnit, unitOps[0].Color)
	assert.Equal(t, "near", unitOps[0].UnitID)
	assert.Equal(t, types.PlayerID(2), unitOps[0].Owner)
}

func TestRender_TerritoryFallback(t *testing.T) {
	s := testSnapshot()
	s.Map[2][3].Visible = true

	ops := opsAt(Render(testInput(s)), types.Cell{R: 2, C: 3})

	require.GreaterOrEqual(t, len(ops), 2)
	assert.Equal(t, LayerTerritory, ops[1].Layer)
	assert.Equal(t, ColorTerritoryOther, ops[1].Color)
}

func TestHealthFraction(t *testing.T) {
	tests := []struct {
		hp   int
		want float32
	}{
		{hp: 10, want: 1},
		{hp: 5, want: 0.5},
		{hp: 0, want: 0},
		{hp: -3, want: 0},
		{hp: 15, want: 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, HealthFraction(tt.hp), 1e-6, "hp %d", tt.hp)
	}
}

func TestRender_ZeroHealthHasNoFill(t *testing.T) {
	s := testSnapshot()
	s.Units[0].HP = 0

	var unitOps DrawList
	for _, op := range opsAt(Render(testInput(s)), types.Cell{R: 2, C: 2}) {
		if op.Layer == LayerUnit {
			unitOps = append(unitOps, op)
		}
	}
	assert.Len(t, unitOps, 2)
}

func TestOwnerColor(t *testing.T) {
	for id, c := range Palette {
		assert.Equal(t, c, OwnerColor(id))
	}
	assert.Equal(t, ColorTerritoryOther, OwnerColor(6))
	assert.Equal(t, uint8(0xff), Opaque(OwnerColor(3)).A)
}
