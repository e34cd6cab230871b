package scenes

import "github.com/cbodonnell/frontline/client/objects"

type ErrorScene struct {
	*BaseScene
}

var _ Scene = &ErrorScene{}

func NewErrorScene(msg string, hint string) (Scene, error) {
	return &ErrorScene{
		BaseScene: NewBaseScene(objects.NewTextOverlayObject("overlay-error", msg, hint)),
	}, nil
}
