package objects

import (
	"image/color"
	"strings"

	"github.com/cbodonnell/frontline/client/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

var overlayShade = color.NRGBA{A: 0xc0}

// TextOverlayObject centres a large message over a dimmed screen, with an optional hint below.
type TextOverlayObject struct {
	*BaseObject

	text string
	hint string
}

func NewTextOverlayObject(id string, text string, hint string) *TextOverlayObject {
	return &TextOverlayObject{
		BaseObject: NewBaseObject(id, &NewBaseObjectOpts{ZIndex: 100}),
		text:       text,
		hint:       hint,
	}
}

func (o *TextOverlayObject) Draw(screen *ebiten.Image) {
	drawOverlay(screen, o.text, o.hint)
}

func drawOverlay(screen *ebiten.Image, msg, hint string) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), overlayShade, false)

	t := strings.ToUpper(msg)
	f := fonts.TTFLargeFont
	bounds, _ := font.BoundString(f, t)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(w-bounds.Max.X.Round())/2, float64(h)/2)
	op.ColorScale.ScaleWithColor(color.White)
	text.DrawWithOptions(screen, t, f, op)

	if hint == "" {
		return
	}
	hb, _ := font.BoundString(fonts.TTFSmallFont, hint)
	text.Draw(screen, hint, fonts.TTFSmallFont, (w-hb.Max.X.Round())/2, h/2+40, hudMuted)
}
