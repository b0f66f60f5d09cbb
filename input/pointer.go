package input

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Action int

const (
	ActionPanForward Action = iota
	ActionPanBack
	ActionPanLeft
	ActionPanRight
	ActionRotateLeft
	ActionRotateRight
	ActionPitchUp
	ActionPitchDown
	ActionZoomIn
	ActionZoomOut
	// ActionRotateDrag turns horizontal pointer motion into yaw while held.
	ActionRotateDrag
	// ActionGrab drags the world under the pointer while held.
	ActionGrab
	actionCount
)

var actionNames = [...]string{
	ActionPanForward:  "pan_forward",
	ActionPanBack:     "pan_back",
	ActionPanLeft:     "pan_left",
	ActionPanRight:    "pan_right",
	ActionRotateLeft:  "rotate_left",
	ActionRotateRight: "rotate_right",
	ActionPitchUp:     "pitch_up",
	ActionPitchDown:   "pitch_down",
	ActionZoomIn:      "zoom_in",
	ActionZoomOut:     "zoom_out",
	ActionRotateDrag:  "rotate_drag",
	ActionGrab:        "grab",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// ParseAction is the inverse of Action.String.
func ParseAction(name string) (Action, bool) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), true
		}
	}
	return 0, false
}

type ScrollUnit int

const (
	ScrollLines ScrollUnit = iota
	ScrollPixels
)

// pixelsPerNotch converts high resolution scroll into wheel notches.
const pixelsPerNotch = 1000

// Device is the raw pointer and keyboard state PointerSource reads once per
// tick.
type Device interface {
	Cursor() (mgl32.Vec2, bool)
	Viewport() mgl32.Vec2
	Held(a Action) bool
	Scroll() (mgl32.Vec2, ScrollUnit)
	CaptureCursor(captured bool)
}

type PointerSettings struct {
	EdgePan bool `yaml:"edge_pan"`
	Grab    bool `yaml:"grab"`
	// KeyRotate is the rotate axis value produced by the rotate keys.
	KeyRotate float32 `yaml:"key_rotate"`
	// KeyPitch is the pitch axis value produced by the pitch keys.
	KeyPitch float32 `yaml:"key_pitch"`
	// KeyZoom is the zoom axis value produced by the zoom keys.
	KeyZoom float32 `yaml:"key_zoom"`
	// ZoomSensitivity scales wheel notches.
	ZoomSensitivity float32 `yaml:"zoom_sensitivity"`
	// CaptureOnRotate hides and locks the cursor while rotate-dragging.
	CaptureOnRotate bool `yaml:"capture_on_rotate"`
	// CaptureOnGrab hides and locks the cursor while grabbing.
	CaptureOnGrab bool `yaml:"capture_on_grab"`
}

func DefaultPointerSettings() PointerSettings {
	return PointerSettings{
		EdgePan:         true,
		Grab:            true,
		KeyRotate:       1,
		KeyPitch:        1,
		KeyZoom:         1,
		ZoomSensitivity: 1,
		CaptureOnRotate: true,
	}
}

// PointerSource is the built-in input layer: pan keys, rotate and pitch keys,
// wheel zoom, rotate-drag, grab-drag and screen edge panning.
type PointerSource struct {
	Device   Device
	Settings PointerSettings

	prevCursor mgl32.Vec2
	hasPrev    bool
	captured   bool
}

func NewPointerSource(device Device, settings PointerSettings) *PointerSource {
	return &PointerSource{Device: device, Settings: settings}
}

func (p *PointerSource) Poll(opts PollOptions) FrameInput {
	if p == nil || p.Device == nil {
		return FrameInput{}
	}
	d := p.Device
	s := p.Settings

	viewport := d.Viewport()
	if opts.Viewport != (mgl32.Vec2{}) {
		viewport = opts.Viewport
	}
	in := FrameInput{Viewport: viewport}

	cursor, inside := d.Cursor()
	var delta mgl32.Vec2
	if p.hasPrev {
		delta = cursor.Sub(p.prevCursor)
	}
	p.prevCursor = cursor
	p.hasPrev = true

	grabbing := s.Grab && d.Held(ActionGrab)
	rotating := d.Held(ActionRotateDrag)

	if grabbing {
		in.Grabbing = true
		in.Grab = delta
	}
	if rotating {
		in.RotateAngle = RotateDragAngle(delta.X(), viewport.X())
	}

	in.Pan = keyAxes(d, ActionPanRight, ActionPanLeft, ActionPanForward, ActionPanBack)
	if in.Pan != (mgl32.Vec2{}) {
		in.Pan = in.Pan.Normalize()
	}
	in.Rotate = keyAxis(d, ActionRotateLeft, ActionRotateRight) * s.KeyRotate
	in.Pitch = keyAxis(d, ActionPitchUp, ActionPitchDown) * s.KeyPitch
	in.Zoom = keyAxis(d, ActionZoomOut, ActionZoomIn) * s.KeyZoom

	scroll, unit := d.Scroll()
	notches := scroll.Y()
	if unit == ScrollPixels {
		notches /= pixelsPerNotch
	}
	// Scrolling up zooms in.
	in.ZoomStep = -notches * s.ZoomSensitivity

	if s.EdgePan && inside && !grabbing && !rotating && in.Pan == (mgl32.Vec2{}) {
		if dir, ok := EdgeDirection(cursor, viewport, opts.EdgePanMargin*viewport.Y()); ok {
			in.EdgePan = true
			in.EdgeDir = dir
		}
	}

	capture := (rotating && s.CaptureOnRotate) || (grabbing && s.CaptureOnGrab)
	if capture != p.captured {
		d.CaptureCursor(capture)
		p.captured = capture
	}

	return in.Sanitize()
}

// Reset forgets the previous cursor position so the next poll reports no
// pointer motion, and releases a captured cursor.
func (p *PointerSource) Reset() {
	if p == nil {
		return
	}
	p.hasPrev = false
	if p.captured && p.Device != nil {
		p.Device.CaptureCursor(false)
	}
	p.captured = false
}

// EdgeDirection reports the camera-local pan direction for a cursor within
// margin pixels of the viewport border. X is right, Y is forward (top edge).
// Corners yield a normalized diagonal. A cursor outside the viewport or a
// non-positive margin yields nothing.
func EdgeDirection(cursor, viewport mgl32.Vec2, margin float32) (mgl32.Vec2, bool) {
	if margin <= 0 || viewport.X() <= 0 || viewport.Y() <= 0 {
		return mgl32.Vec2{}, false
	}
	x, y := cursor.X(), cursor.Y()
	w, h := viewport.X(), viewport.Y()
	if x < 0 || y < 0 || x > w || y > h {
		return mgl32.Vec2{}, false
	}

	var dir mgl32.Vec2
	if x < margin {
		dir[0] = -1
	} else if x > w-margin {
		dir[0] = 1
	}
	if y < margin {
		dir[1] = 1
	} else if y > h-margin {
		dir[1] = -1
	}
	if dir == (mgl32.Vec2{}) {
		return dir, false
	}
	return dir.Normalize(), true
}

func keyAxis(d Device, pos, neg Action) float32 {
	var v float32
	if d.Held(pos) {
		v++
	}
	if d.Held(neg) {
		v--
	}
	return v
}

func keyAxes(d Device, right, left, forward, back Action) mgl32.Vec2 {
	return mgl32.Vec2{keyAxis(d, right, left), keyAxis(d, forward, back)}
}
