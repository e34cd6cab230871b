package objects

import (
	"fmt"
	"image/color"

	"github.com/cbodonnell/frontline/client/fonts"
	"github.com/cbodonnell/frontline/client/render"
	"github.com/cbodonnell/frontline/client/session"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const hudLineHeight = 18

var (
	hudBackground = color.NRGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}
	hudText       = color.NRGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff}
	hudMuted      = color.NRGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff}
)

// HUDObject is the side panel: turn, country, resources and selection at the top,
// the message log at the bottom. The action panel widgets sit between them.
type HUDObject struct {
	*BaseObject

	session  *session.Session
	x, y     int
	width    int
	height   int
	logTop   int
	logLines int
}

type NewHUDObjectOptions struct {
	Session *session.Session
	X, Y    int
	Width   int
	Height  int
	// LogTop is the y offset of the message log inside the panel.
	LogTop int
	ZIndex int
}

func NewHUDObject(id string, opts NewHUDObjectOptions) *HUDObject {
	return &HUDObject{
		BaseObject: NewBaseObject(id, &NewBaseObjectOpts{ZIndex: opts.ZIndex}),
		session:    opts.Session,
		x:          opts.X,
		y:          opts.Y,
		width:      opts.Width,
		height:     opts.Height,
		logTop:     opts.LogTop,
		logLines:   (opts.Height - opts.LogTop) / hudLineHeight,
	}
}

func (o *HUDObject) Draw(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, float32(o.x), float32(o.y), float32(o.width), float32(o.height), hudBackground, false)

	s := o.session
	res := s.Resources()
	lines := []string{
		fmt.Sprintf("Turn %d", s.Turn()),
		fmt.Sprintf("Country: %s", s.CountryName()),
		fmt.Sprintf("Room: %s", s.RoomID()),
		"",
		fmt.Sprintf("Fund  %d", res.Fund),
		fmt.Sprintf("Man   %d", res.Man),
		fmt.Sprintf("Food  %d", res.Food),
		fmt.Sprintf("Steel %d", res.Steel),
		fmt.Sprintf("Oil   %d", res.Oil),
		"",
		fmt.Sprintf("Selected: %s", s.SelectionLabel()),
	}
	y := o.y + hudLineHeight
	for _, line := range lines {
		text.Draw(screen, line, fonts.TTFSmallFont, o.x+10, y, hudText)
		y += hudLineHeight
	}

	o.drawOwnerSwatch(screen)

	y = o.y + o.logTop
	for i, line := range s.Log() {
		if i >= o.logLines {
			break
		}
		text.Draw(screen, line, fonts.TTFSmallFont, o.x+10, y, hudMuted)
		y += hudLineHeight
	}
}

// drawOwnerSwatch shows the local player's territory colour next to the country name.
func (o *HUDObject) drawOwnerSwatch(screen *ebiten.Image) {
	pid := o.session.PlayerID()
	if pid == 0 {
		return
	}
	c := render.Opaque(render.OwnerColor(pid))
	vector.DrawFilledRect(screen, float32(o.x+o.width-30), float32(o.y+hudLineHeight+6), 16, 16, c, false)
}
