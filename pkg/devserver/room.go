package devserver

import (
	"github.com/cbodonnell/frontline/pkg/game/types"
)

// MaxPlayers is the number of player slots in a room.
const MaxPlayers = 5

type player struct {
	id        types.PlayerID
	name      string
	resources types.Resources
	startPos  *types.Cell
	client    *client
}

type room struct {
	id      string
	host    *player
	players []*player
	slots   []types.PlayerID
	started bool
	ended   map[types.PlayerID]bool
	world   *World
}

func newRoom(id string) *room {
	slots := make([]types.PlayerID, 0, MaxPlayers)
	for i := 1; i <= MaxPlayers; i++ {
		slots = append(slots, types.PlayerID(i))
	}
	return &room{
		id:    id,
		slots: slots,
		ended: map[types.PlayerID]bool{},
	}
}

// addPlayer takes the next free slot. It returns nil when the room is full.
func (r *room) addPlayer(name string, c *client) *player {
	if len(r.slots) == 0 {
		return nil
	}
	p := &player{
		id:        r.slots[0],
		name:      name,
		resources: startingResources,
		client:    c,
	}
	r.slots = r.slots[1:]
	r.players = append(r.players, p)
	if r.host == nil {
		r.host = p
	}
	return p
}

func (r *room) removePlayer(p *player) {
	for i, other := range r.players {
		if other == p {
			r.players = append(r.players[:i], r.players[i+1:]...)
			break
		}
	}
	delete(r.ended, p.id)
	if r.host == p {
		r.host = nil
		if len(r.players) > 0 {
			r.host = r.players[0]
		}
	}
}

// start places every player on the nearest land to its seed with one infantry.
func (r *room) start(w *World, newID func() string) {
	r.world = w
	r.started = true
	seeds := startSeeds(w.rows(), w.cols())
	for i, p := range r.players {
		cell, ok := w.findLand(seeds[i%len(seeds)])
		if !ok {
			continue
		}
		start := cell
		p.startPos = &start
		w.spawn(newID(), p.id, types.UnitTypeInfantry, cell)
	}
}

// endTurn records p as done. It reports whether every player is done, in which case
// the turn advances and unit moves refresh.
func (r *room) endTurn(p *player) bool {
	r.ended[p.id] = true
	for _, other := range r.players {
		if !r.ended[other.id] {
			return false
		}
	}
	r.ended = map[types.PlayerID]bool{}
	r.world.Turn++
	r.world.refreshMoves()
	return true
}

func (r *room) playersInfo() []types.PlayerInfo {
	out := make([]types.PlayerInfo, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, types.PlayerInfo{ID: p.id, Name: p.name})
	}
	return out
}

// snapshotFor builds the game_update for one player. It shares slices with the world,
// so it must be marshalled before the room lock is released.
func (r *room) snapshotFor(p *player) *types.Snapshot {
	return &types.Snapshot{
		Map:            r.world.Map,
		Units:          r.world.Units,
		ResourcePoints: r.world.ResourcePoints,
		Territories:    r.world.territories(),
		SelfID:         p.id,
		SelfResources:  p.resources,
		StartPos:       p.startPos,
		PlayersInfo:    r.playersInfo(),
		Turn:           r.world.Turn,
	}
}
