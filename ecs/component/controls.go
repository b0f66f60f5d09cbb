package component

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rtscamera/input"
)

type Controls struct {
	Source  input.Source
	Enabled bool
	// Viewport, when set, is passed to the source as the pixel size pointer
	// deltas are measured against.
	Viewport mgl32.Vec2
}

var ControlsComponent = NewComponent[Controls]()
