package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/cinecam/engine"
)

// previewInput maps skip control ids onto keyboard keys. The default
// skip control is bound to Enter so skippable shots advance on a key
// the player would naturally reach for.
type previewInput struct{}

func (previewInput) SkipPressed(controlID int) bool {
	switch controlID {
	case engine.DefaultSkipControl:
		return inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	default:
		return false
	}
}
