package render

import (
	"image/color"

	"github.com/cbodonnell/frontline/pkg/game/types"
)

const territoryAlpha = 0x44

var (
	ColorLand           = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	ColorWater          = color.NRGBA{0x00, 0xcc, 0xff, 0xff}
	ColorFog            = color.NRGBA{0x00, 0x00, 0x00, 0xb3}
	ColorFogBorder      = color.NRGBA{0x22, 0x22, 0x22, 0xff}
	ColorResource       = color.NRGBA{0xff, 0xd2, 0x7f, 0xff}
	ColorOwnUnit        = color.NRGBA{0x0f, 0xb5, 0xff, 0xff}
	ColorEnemyUnit      = color.NRGBA{0xff, 0x00, 0x00, 0xff}
	ColorHealthBar      = color.NRGBA{0x00, 0x00, 0x00, 0xff}
	ColorHealthFill     = color.NRGBA{0x00, 0xff, 0x00, 0xff}
	ColorSelection      = color.NRGBA{0xfa, 0xcc, 0x15, 0xff}
	ColorTerritoryOther = color.NRGBA{0x99, 0x99, 0x99, territoryAlpha}
)

// Palette tints owned tiles by owner id. Owners not listed get ColorTerritoryOther.
var Palette = map[types.PlayerID]color.NRGBA{
	1: {0x22, 0xc5, 0x5e, territoryAlpha},
	2: {0xef, 0x44, 0x44, territoryAlpha},
	3: {0x3b, 0x82, 0xf6, territoryAlpha},
	4: {0xf9, 0x73, 0x16, territoryAlpha},
	5: {0x8b, 0x5c, 0xf6, territoryAlpha},
}

// OwnerColor returns the territory tint of an owner.
func OwnerColor(owner types.PlayerID) color.NRGBA {
	if c, ok := Palette[owner]; ok {
		return c
	}
	return ColorTerritoryOther
}

// Opaque returns the tint at full alpha, for legends and the terminal backend.
func Opaque(c color.NRGBA) color.NRGBA {
	c.A = 0xff
	return c
}
