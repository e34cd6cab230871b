package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCellKey(t *testing.T) {
	tests := []struct {
		key     string
		want    Cell
		wantErr bool
	}{
		{key: "3,7", want: Cell{R: 3, C: 7}},
		{key: " 0 , 63", want: Cell{R: 0, C: 63}},
		{key: "3", wantErr: true},
		{key: "a,1", wantErr: true},
		{key: "1,b", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := ParseCellKey(tt.key)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, mustParse(t, got.Key()))
		})
	}
}

func mustParse(t *testing.T, key string) Cell {
	t.Helper()
	c, err := ParseCellKey(key)
	require.NoError(t, err)
	return c
}

func TestSnapshot_DecodeGameUpdate(t *testing.T) {
	payload := `{
		"self_id": 2,
		"self_resources": {"fund": 900, "man": 220, "food": 240, "steel": 140, "oil": 100},
		"players_info": [{"id": 1, "name": "Red"}, {"id": 2, "name": "Blue"}],
		"start_pos": {"r": 1, "c": 1},
		"map": [[{"isLand": true, "owner": null, "fort": null}, {"isLand": false, "owner": 2, "fort": null}]],
		"units": [{"id": "u1", "owner": 2, "type": "tank", "x": 1, "y": 0, "moveLeft": 3, "hp": 8, "seaTransport": false}],
		"resourcePoints": [{"r": 0, "c": 0, "type": "fundoil"}],
		"turn": 4,
		"territories": {"1": [], "2": ["0,1"]}
	}`

	s := &Snapshot{}
	require.NoError(t, json.Unmarshal([]byte(payload), s))

	assert.Equal(t, PlayerID(2), s.SelfID)
	assert.Equal(t, 900, s.SelfResources.Fund)
	assert.Equal(t, "Blue", s.PlayerName(2))
	assert.Equal(t, "", s.PlayerName(9))
	assert.Equal(t, &Cell{R: 1, C: 1}, s.StartPos)
	assert.Equal(t, 1, s.Rows())
	assert.Equal(t, 2, s.Cols())
	assert.Equal(t, PlayerID(0), s.TileAt(0, 0).Owner)
	assert.Equal(t, PlayerID(2), s.TileAt(0, 1).Owner)
	assert.Nil(t, s.TileAt(1, 0))
	assert.True(t, s.HasResourceAt(0, 0))
	assert.False(t, s.HasResourceAt(0, 1))
	assert.Equal(t, []string{"0,1"}, s.Territories[2])
	require.Len(t, s.Units, 1)
	assert.Equal(t, UnitTypeTank, s.Units[0].Type)
	assert.Equal(t, Cell{R: 0, C: 1}, s.Units[0].Cell())
	assert.Equal(t, 4, s.Turn)
}

func TestSnapshot_VisibleIsNotSerialized(t *testing.T) {
	s := NewEmptySnapshot(1, 1)
	s.Map[0][0].Visible = true

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "isible")
}

func TestUnitType_Known(t *testing.T) {
	for _, ut := range ProducibleUnitTypes {
		assert.True(t, ut.Known(), ut)
	}
	assert.False(t, UnitType("mech").Known())
	assert.Equal(t, "mech", UnitType("mech").Label())
}
