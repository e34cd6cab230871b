package session

import (
	"testing"

	"github.com/cbodonnell/frontline/pkg/game/constants"
	"github.com/cbodonnell/frontline/pkg/game/types"
	"github.com/stretchr/testify/assert"
)

func TestDefaultViewport(t *testing.T) {
	v := DefaultViewport()
	assert.Equal(t, 18, v.Rows)
	assert.Equal(t, 25, v.Cols)
	assert.Equal(t, 39, v.MaxX())
	assert.Equal(t, 14, v.MaxY())
}

func TestViewport_CenterOn(t *testing.T) {
	tests := []struct {
		name  string
		start types.Cell
		wantX int
		wantY int
	}{
		{name: "middle", start: types.Cell{R: 10, C: 30}, wantX: 18, wantY: 1},
		{name: "top left", start: types.Cell{R: 0, C: 0}, wantX: 0, wantY: 0},
		{name: "bottom right", start: types.Cell{R: 31, C: 63}, wantX: 39, wantY: 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := DefaultViewport()
			v.CenterOn(tt.start)
			assert.Equal(t, tt.wantX, v.X)
			assert.Equal(t, tt.wantY, v.Y)
		})
	}
}

func TestViewport_PanAxesIndependent(t *testing.T) {
	v := DefaultViewport()
	v.Pan(100, 0)
	assert.Equal(t, 39, v.X)
	assert.Equal(t, 0, v.Y)
	v.Pan(0, -1)
	assert.Equal(t, 0, v.Y)
	v.Pan(-1, 1)
	assert.Equal(t, 38, v.X)
	assert.Equal(t, 1, v.Y)
}

func TestViewport_CellAt(t *testing.T) {
	v := DefaultViewport()
	v.X, v.Y = 18, 1

	cell, ok := v.CellAt(45, 85)
	assert.True(t, ok)
	assert.Equal(t, types.Cell{R: 3, C: 19}, cell)
	assert.True(t, v.Contains(cell))

	_, ok = v.CellAt(-1, 0)
	assert.False(t, ok)
	_, ok = v.CellAt(constants.CanvasWidth, 0)
	assert.False(t, ok)
}

func TestViewport_ResizeReclamps(t *testing.T) {
	v := DefaultViewport()
	v.X, v.Y = 39, 14
	v.Resize(20, 30)
	assert.Equal(t, 5, v.X)
	assert.Equal(t, 2, v.Y)
}
