package devserver

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/cbodonnell/frontline/pkg/game/types"
)

// unitDef is the spawn profile of a unit type.
type unitDef struct {
	HP   int
	Move int
}

var unitDefs = map[types.UnitType]unitDef{
	types.UnitTypeInfantry:   {HP: 6, Move: 2},
	types.UnitTypeArtillery:  {HP: 7, Move: 1},
	types.UnitTypeTank:       {HP: 8, Move: 3},
	types.UnitTypeSubmarine:  {HP: 7, Move: 2},
	types.UnitTypeBattleship: {HP: 14, Move: 1},
}

var startingResources = types.Resources{Fund: 900, Man: 220, Food: 240, Steel: 140, Oil: 100}

var resourceTypes = []string{"fundfood", "fundsteel", "fundoil"}

const (
	landChance      = 0.55
	smoothingPasses = 4
	resourceCount   = 40
	searchRadius    = 30
)

// World is the mutable game state of a started room.
type World struct {
	Map            [][]types.Tile        `json:"map"`
	Units          []*types.Unit         `json:"units"`
	ResourcePoints []types.ResourcePoint `json:"resourcePoints"`
	Turn           int                   `json:"turn"`
}

func (w *World) rows() int { return len(w.Map) }

func (w *World) cols() int {
	if len(w.Map) == 0 {
		return 0
	}
	return len(w.Map[0])
}

func (w *World) inBounds(r, c int) bool {
	return r >= 0 && r < w.rows() && c >= 0 && c < w.cols()
}

// GenerateWorld builds a smoothed random island map with resource sites.
func GenerateWorld(rng *rand.Rand, rows, cols int) *World {
	m := make([][]types.Tile, rows)
	for r := range m {
		m[r] = make([]types.Tile, cols)
		for c := range m[r] {
			m[r][c].IsLand = rng.Float64() < landChance
		}
	}

	for i := 0; i < smoothingPasses; i++ {
		prev := make([][]bool, rows)
		for r := range prev {
			prev[r] = make([]bool, cols)
			for c := range prev[r] {
				prev[r][c] = m[r][c].IsLand
			}
		}
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				land := 0
				for dr := -1; dr <= 1; dr++ {
					for dc := -1; dc <= 1; dc++ {
						rr, cc := r+dr, c+dc
						if rr >= 0 && rr < rows && cc >= 0 && cc < cols && prev[rr][cc] {
							land++
						}
					}
				}
				m[r][c].IsLand = land >= 5
			}
		}
	}

	w := &World{Map: m, Turn: 1}
	taken := map[types.Cell]bool{}
	landCells := 0
	for r := range m {
		for c := range m[r] {
			if m[r][c].IsLand {
				landCells++
			}
		}
	}
	for len(w.ResourcePoints) < min(resourceCount, landCells) {
		r, c := rng.Intn(rows), rng.Intn(cols)
		cell := types.Cell{R: r, C: c}
		if !m[r][c].IsLand || taken[cell] {
			continue
		}
		taken[cell] = true
		w.ResourcePoints = append(w.ResourcePoints, types.ResourcePoint{R: r, C: c, Type: resourceTypes[rng.Intn(len(resourceTypes))]})
	}
	return w
}

// LoadWorld reads a world from a JSON file shaped like a game_update payload.
func LoadWorld(path string) (*World, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %v", err)
	}
	w := &World{}
	if err := json.Unmarshal(b, w); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fixture: %v", err)
	}
	if w.rows() == 0 || w.cols() == 0 {
		return nil, fmt.Errorf("fixture %s has an empty map", path)
	}
	if w.Turn == 0 {
		w.Turn = 1
	}
	return w, nil
}

// startSeeds returns the corner and centre search origins for player starts.
func startSeeds(rows, cols int) []types.Cell {
	return []types.Cell{
		{R: 2, C: 2},
		{R: rows - 3, C: 2},
		{R: rows - 3, C: cols - 3},
		{R: 2, C: cols - 3},
		{R: rows / 2, C: cols / 2},
	}
}

// findLand searches outward from seed for the nearest land cell without a unit.
func (w *World) findLand(seed types.Cell) (types.Cell, bool) {
	for rad := 0; rad < searchRadius; rad++ {
		for dr := -rad; dr <= rad; dr++ {
			for dc := -rad; dc <= rad; dc++ {
				r, c := seed.R+dr, seed.C+dc
				if w.inBounds(r, c) && w.Map[r][c].IsLand && w.unitAt(r, c) == nil {
					return types.Cell{R: r, C: c}, true
				}
			}
		}
	}
	return types.Cell{}, false
}

func (w *World) unitAt(r, c int) *types.Unit {
	for _, u := range w.Units {
		if u.X == c && u.Y == r {
			return u
		}
	}
	return nil
}

func (w *World) unitByID(id string) *types.Unit {
	for _, u := range w.Units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (w *World) spawn(id string, owner types.PlayerID, t types.UnitType, cell types.Cell) *types.Unit {
	def, ok := unitDefs[t]
	if !ok {
		def = unitDefs[types.UnitTypeInfantry]
	}
	u := &types.Unit{
		ID:       id,
		Owner:    owner,
		Type:     t,
		X:        cell.C,
		Y:        cell.R,
		HP:       def.HP,
		MoveLeft: def.Move,
	}
	w.Units = append(w.Units, u)
	w.Map[cell.R][cell.C].Owner = owner
	return u
}

func (w *World) refreshMoves() {
	for _, u := range w.Units {
		if def, ok := unitDefs[u.Type]; ok {
			u.MoveLeft = def.Move
		}
	}
}

// territories derives the owner to "r,c" sets from the tile owners.
func (w *World) territories() map[types.PlayerID][]string {
	out := map[types.PlayerID][]string{}
	for r := range w.Map {
		for c := range w.Map[r] {
			if owner := w.Map[r][c].Owner; owner != 0 {
				out[owner] = append(out[owner], types.Cell{R: r, C: c}.Key())
			}
		}
	}
	return out
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
