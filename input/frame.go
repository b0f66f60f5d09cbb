package input

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rtscamera/common"
)

// FrameInput is one tick of camera input. It is rebuilt every frame and never
// stored.
type FrameInput struct {
	// Pan is a camera-local direction: X is right, Y is forward.
	Pan mgl32.Vec2

	EdgePan bool
	// EdgeDir points at the triggered screen edge(s) in the same camera-local
	// axes as Pan.
	EdgeDir mgl32.Vec2

	Grabbing bool
	// Grab is the pointer motion in pixels this frame, screen Y pointing down.
	Grab mgl32.Vec2

	// Zoom is a continuous axis; positive zooms out.
	Zoom float32
	// ZoomStep counts discrete wheel notches; positive zooms out.
	ZoomStep float32

	// Rotate is a continuous yaw axis; positive turns counterclockwise seen
	// from above.
	Rotate float32
	// RotateAngle is an immediate yaw change in radians.
	RotateAngle float32

	// Pitch is a continuous axis; positive tilts toward the horizon.
	Pitch float32

	Viewport mgl32.Vec2
}

type PanSource int

const (
	PanNone PanSource = iota
	PanKeys
	PanEdge
	PanGrab
)

func (p PanSource) String() string {
	switch p {
	case PanKeys:
		return "keys"
	case PanEdge:
		return "edge"
	case PanGrab:
		return "grab"
	default:
		return "none"
	}
}

// Sanitize zeroes non-finite values, bounds the directions to unit length and
// leaves exactly one pan source active. Grab beats keys, keys beat edge pan.
func (f FrameInput) Sanitize() FrameInput {
	out := FrameInput{
		Pan:         common.ClampLen(common.FiniteVec2(f.Pan), 1),
		EdgePan:     f.EdgePan,
		EdgeDir:     common.ClampLen(common.FiniteVec2(f.EdgeDir), 1),
		Grabbing:    f.Grabbing,
		Grab:        common.FiniteVec2(f.Grab),
		Zoom:        common.Finite(f.Zoom),
		ZoomStep:    common.Finite(f.ZoomStep),
		Rotate:      common.Finite(f.Rotate),
		RotateAngle: common.Finite(f.RotateAngle),
		Pitch:       common.Finite(f.Pitch),
		Viewport:    common.FiniteVec2(f.Viewport),
	}

	switch out.PanSource() {
	case PanGrab:
		out.Pan = mgl32.Vec2{}
		out.EdgePan = false
		out.EdgeDir = mgl32.Vec2{}
	case PanKeys:
		out.Grab = mgl32.Vec2{}
		out.EdgePan = false
		out.EdgeDir = mgl32.Vec2{}
	case PanEdge:
		out.Grab = mgl32.Vec2{}
	default:
		out.Grab = mgl32.Vec2{}
		out.EdgePan = false
		out.EdgeDir = mgl32.Vec2{}
	}
	return out
}

// PanSource reports which pan input wins this frame.
func (f FrameInput) PanSource() PanSource {
	switch {
	case f.Grabbing:
		return PanGrab
	case f.Pan != (mgl32.Vec2{}):
		return PanKeys
	case f.EdgePan && f.EdgeDir != (mgl32.Vec2{}):
		return PanEdge
	default:
		return PanNone
	}
}

// Merge combines two frames from sources driving the same camera. Axes add;
// the pan sources are re-resolved by Sanitize afterwards.
func Merge(a, b FrameInput) FrameInput {
	out := FrameInput{
		Pan:         a.Pan.Add(b.Pan),
		EdgePan:     a.EdgePan || b.EdgePan,
		EdgeDir:     a.EdgeDir.Add(b.EdgeDir),
		Grabbing:    a.Grabbing || b.Grabbing,
		Grab:        a.Grab.Add(b.Grab),
		Zoom:        a.Zoom + b.Zoom,
		ZoomStep:    a.ZoomStep + b.ZoomStep,
		Rotate:      a.Rotate + b.Rotate,
		RotateAngle: a.RotateAngle + b.RotateAngle,
		Pitch:       a.Pitch + b.Pitch,
		Viewport:    a.Viewport,
	}
	if out.Viewport == (mgl32.Vec2{}) {
		out.Viewport = b.Viewport
	}
	return out.Sanitize()
}
