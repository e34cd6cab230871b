package types

import (
	"fmt"
	"strconv"
	"strings"
)

// PlayerID is the server assigned player identifier. Zero means no player.
type PlayerID int

// Cell is a grid coordinate.
type Cell struct {
	R int `json:"r"`
	C int `json:"c"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.R, c.C)
}

// Key returns the "r,c" form used by the server for territory sets.
func (c Cell) Key() string {
	return fmt.Sprintf("%d,%d", c.R, c.C)
}

// ParseCellKey parses a territory key of the form "r,c".
func ParseCellKey(key string) (Cell, error) {
	r, c, ok := strings.Cut(key, ",")
	if !ok {
		return Cell{}, fmt.Errorf("invalid cell key %q", key)
	}
	row, err := strconv.Atoi(strings.TrimSpace(r))
	if err != nil {
		return Cell{}, fmt.Errorf("invalid row in cell key %q: %v", key, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(c))
	if err != nil {
		return Cell{}, fmt.Errorf("invalid column in cell key %q: %v", key, err)
	}
	return Cell{R: row, C: col}, nil
}

// PlayerInfo is the public name record of a player in the room.
type PlayerInfo struct {
	ID   PlayerID `json:"id"`
	Name string   `json:"name"`
}

// Resources is the local player's stockpile.
type Resources struct {
	Fund  int `json:"fund"`
	Man   int `json:"man"`
	Food  int `json:"food"`
	Steel int `json:"steel"`
	Oil   int `json:"oil"`
}

// ResourcePoint is a resource site on the map.
type ResourcePoint struct {
	R    int    `json:"r"`
	C    int    `json:"c"`
	Type string `json:"type"`
}
