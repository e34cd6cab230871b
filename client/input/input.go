package input

import (
	"github.com/cbodonnell/frontline/pkg/game/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	// repeatDelay and repeatInterval are in ticks.
	repeatDelay    = 20
	repeatInterval = 4
)

// IsPositiveJustPressed returns a boolean value indicating whether the generic positive input is just pressed.
// This is used to handle both keyboard and touch inputs.
func IsPositiveJustPressed() bool {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return true
	}
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	return len(touchIDs) > 0
}

// IsCancelJustPressed is the escape key; it drops the selection.
func IsCancelJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

func IsEndTurnJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyE)
}

func IsMoveModeJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyM)
}

func IsResetViewJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyHome)
}

func IsZoomJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyZ)
}

func IsDebugJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyF3)
}

// repeating is true on the first tick of a press and then periodically while held.
func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0
}

// PanDelta returns the camera step requested by the arrow keys this tick.
func PanDelta() (dx, dy int) {
	if repeating(ebiten.KeyLeft) {
		dx--
	}
	if repeating(ebiten.KeyRight) {
		dx++
	}
	if repeating(ebiten.KeyUp) {
		dy--
	}
	if repeating(ebiten.KeyDown) {
		dy++
	}
	return dx, dy
}

var produceKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5}

// ProduceJustPressed maps the number keys to the producible unit types in menu order.
func ProduceJustPressed() (types.UnitType, bool) {
	for i, key := range produceKeys {
		if i < len(types.ProducibleUnitTypes) && inpututil.IsKeyJustPressed(key) {
			return types.ProducibleUnitTypes[i], true
		}
	}
	return "", false
}

// ClickPosition returns the screen position of a left click or tap this tick.
func ClickPosition() (x, y int, ok bool) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y = ebiten.CursorPosition()
		return x, y, true
	}
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		x, y = ebiten.TouchPosition(ids[0])
		return x, y, true
	}
	return 0, 0, false
}
