package types

// Tile is one map cell. Visible is derived on the client and never serialized.
type Tile struct {
	IsLand  bool     `json:"isLand"`
	Owner   PlayerID `json:"owner"`
	Visible bool     `json:"-"`
}

// Snapshot is the full game state pushed by the server with every game_update.
type Snapshot struct {
	Map            [][]Tile              `json:"map"`
	Units          []*Unit               `json:"units"`
	ResourcePoints []ResourcePoint       `json:"resourcePoints"`
	Territories    map[PlayerID][]string `json:"territories"`
	SelfID         PlayerID              `json:"self_id"`
	SelfResources  Resources             `json:"self_resources"`
	StartPos       *Cell                 `json:"start_pos"`
	PlayersInfo    []PlayerInfo          `json:"players_info"`
	Turn           int                   `json:"turn"`
}

// Rows returns the number of rows in the map.
func (s *Snapshot) Rows() int {
	return len(s.Map)
}

// Cols returns the number of columns in the map.
func (s *Snapshot) Cols() int {
	if len(s.Map) == 0 {
		return 0
	}
	return len(s.Map[0])
}

// InBounds reports whether the cell lies inside the map.
func (s *Snapshot) InBounds(r, c int) bool {
	return r >= 0 && r < len(s.Map) && c >= 0 && c < len(s.Map[r])
}

// TileAt returns the tile at the cell, or nil when out of bounds.
func (s *Snapshot) TileAt(r, c int) *Tile {
	if !s.InBounds(r, c) {
		return nil
	}
	return &s.Map[r][c]
}

// PlayerName returns the display name of a player, or "" when unknown.
func (s *Snapshot) PlayerName(id PlayerID) string {
	for _, p := range s.PlayersInfo {
		if p.ID == id {
			return p.Name
		}
	}
	return ""
}

// HasResourceAt reports whether a resource site exists at the cell.
func (s *Snapshot) HasResourceAt(r, c int) bool {
	for _, p := range s.ResourcePoints {
		if p.R == r && p.C == c {
			return true
		}
	}
	return false
}

// NewEmptySnapshot builds a snapshot with an all-water map of the given size.
func NewEmptySnapshot(rows, cols int) *Snapshot {
	m := make([][]Tile, rows)
	for r := range m {
		m[r] = make([]Tile, cols)
	}
	return &Snapshot{
		Map:         m,
		Territories: make(map[PlayerID][]string),
	}
}
