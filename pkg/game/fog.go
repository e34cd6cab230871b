package game

import (
	"github.com/cbodonnell/frontline/pkg/game/types"
	"github.com/cbodonnell/frontline/pkg/log"
)

// DefaultVisionRadius applies to unit types missing from the vision table.
const DefaultVisionRadius = 2

// visionRadii maps unit types to their Chebyshev sight radius in cells.
var visionRadii = map[types.UnitType]int{
	types.UnitTypeBattleship: 5,
	types.UnitTypeTank:       4,
	types.UnitTypeInfantry:   2,
	types.UnitTypeArtillery:  2,
	types.UnitTypeSubmarine:  2,
}

// VisionRadius returns the sight radius of a unit type.
func VisionRadius(t types.UnitType) int {
	if r, ok := visionRadii[t]; ok {
		return r
	}
	return DefaultVisionRadius
}

// RecomputeVisibility derives the Visible flag of every tile from scratch.
// Cells are visible when they belong to self's territory or lie within the
// square sight radius of one of self's units. Nothing from earlier snapshots is
// remembered, so the result depends only on the snapshot and self.
func RecomputeVisibility(s *types.Snapshot, self types.PlayerID) {
	if s == nil {
		return
	}
	for r := range s.Map {
		for c := range s.Map[r] {
			s.Map[r][c].Visible = false
		}
	}

	if self == 0 {
		return
	}

	for _, key := range s.Territories[self] {
		cell, err := types.ParseCellKey(key)
		if err != nil {
			log.Debug("Skipping malformed territory key: %v", err)
			continue
		}
		if s.InBounds(cell.R, cell.C) {
			s.Map[cell.R][cell.C].Visible = true
		}
	}

	for _, u := range s.Units {
		if u == nil || u.Owner != self {
			continue
		}
		radius := VisionRadius(u.Type)
		for dr := -radius; dr <= radius; dr++ {
			for dc := -radius; dc <= radius; dc++ {
				rr, cc := u.Y+dr, u.X+dc
				if s.InBounds(rr, cc) {
					s.Map[rr][cc].Visible = true
				}
			}
		}
	}
}

// Visible reads the derived visibility of a cell; out of bounds cells are never visible.
func Visible(s *types.Snapshot, r, c int) bool {
	t := s.TileAt(r, c)
	return t != nil && t.Visible
}
