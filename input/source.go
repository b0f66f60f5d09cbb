package input

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// PollOptions carries the per-camera settings a source needs while building a
// frame.
type PollOptions struct {
	// EdgePanMargin is the edge band width as a fraction of viewport height.
	EdgePanMargin float32
	// Viewport overrides the size reported by the source when non-zero.
	// Viewport is the pixel size the axes are measured against.
	Viewport mgl32.Vec2
}

// unitViewport measures pointer deltas in viewport fractions. Only a grabbing
// ActionSource reports it, so merged sources keep a real pixel viewport.
var unitViewport = mgl32.Vec2{1, 1}

// Source produces one FrameInput per tick.
type Source interface {
	Poll(opts PollOptions) FrameInput
}

// SourceFunc adapts a function to Source.
type SourceFunc func(opts PollOptions) FrameInput

func (f SourceFunc) Poll(opts PollOptions) FrameInput {
	return f(opts)
}

// Sources polls every source and merges the results.
type Sources []Source

func (s Sources) Poll(opts PollOptions) FrameInput {
	var out FrameInput
	for _, src := range s {
		if src == nil {
			continue
		}
		out = Merge(out, src.Poll(opts))
	}
	return out.Sanitize()
}

func (s Sources) Consume() {
	for _, src := range s {
		if c, ok := src.(Consumer); ok {
			c.Consume()
		}
	}
}

// ActionSource is fed by an external action-mapping layer. The layer writes the
// action values before the camera systems run. Poll only reads them; Consume
// clears the one-shot deltas.
//
// Share a single ActionSource between cameras to drive all of them, or give each
// camera its own to address them individually.
//
// RotateAxis and GrabAxis are pixels of a viewport taken from PollOptions, then
// from the Viewport field. With neither set they are fractions of the
// viewport: RotateAxis 1 is a drag across the full width, GrabAxis 1 is the
// full height.
type ActionSource struct {
	// Pan is a camera-local direction, X right and Y forward.
	Pan mgl32.Vec2
	// ZoomAxis is a zoom delta in wheel notches; positive zooms out.
	ZoomAxis float32
	// RotateMode turns RotateAxis into yaw.
	RotateMode bool
	// RotateAxis is a horizontal pointer delta in pixels.
	RotateAxis float32
	// GrabMode turns GrabAxis into a drag pan.
	GrabMode bool
	// GrabAxis is a pointer delta in pixels.
	GrabAxis mgl32.Vec2

	// Viewport is the pixel size the axes are measured against.
	Viewport mgl32.Vec2
}

// Consumer is implemented by sources holding one-shot deltas. The owner calls
// Consume once per tick after every camera has polled.
type Consumer interface {
	Consume()
}

func (a *ActionSource) Poll(opts PollOptions) FrameInput {
	if a == nil {
		return FrameInput{}
	}

	viewport := a.Viewport
	if opts.Viewport != (mgl32.Vec2{}) {
		viewport = opts.Viewport
	}
	measured := viewport
	if measured.X() <= 0 || measured.Y() <= 0 {
		measured = unitViewport
	}

	in := FrameInput{
		Pan:      a.Pan,
		ZoomStep: a.ZoomAxis,
		Viewport: viewport,
	}
	if a.GrabMode {
		in.Grabbing = true
		in.Grab = a.GrabAxis
		in.Viewport = measured
	}
	if a.RotateMode {
		in.RotateAngle = RotateDragAngle(a.RotateAxis, measured.X())
	}
	return in.Sanitize()
}

// Consume clears the one-shot deltas. Held values (Pan, modes) persist until
// the mapping layer changes them.
func (a *ActionSource) Consume() {
	if a == nil {
		return
	}
	a.ZoomAxis = 0
	a.RotateAxis = 0
	a.GrabAxis = mgl32.Vec2{}
}

// RotateDragAngle converts a horizontal drag in pixels to yaw radians: a drag
// across the full viewport width turns half a revolution, dragging right
// turns clockwise.
func RotateDragAngle(dx, width float32) float32 {
	if width <= 0 {
		return 0
	}
	return -dx / width * math.Pi
}
