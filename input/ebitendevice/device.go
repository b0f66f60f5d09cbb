// Package ebitendevice reads camera controls from ebiten's keyboard, mouse and
// gamepad state.
package ebitendevice

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rtscamera/input"
)

// Device implements input.Device on top of ebiten. Call SetViewport from the
// game's Layout so edge panning and drag scaling use the logical screen size.
type Device struct {
	bindings Bindings
	viewport mgl32.Vec2
	captured bool
}

func New(bindings Bindings) *Device {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &Device{bindings: bindings}
}

func (d *Device) SetViewport(width, height int) {
	d.viewport = mgl32.Vec2{float32(width), float32(height)}
}

func (d *Device) Viewport() mgl32.Vec2 {
	return d.viewport
}

// Cursor reports the cursor in screen pixels. It is outside while the window
// is unfocused or the cursor has left the screen.
func (d *Device) Cursor() (mgl32.Vec2, bool) {
	x, y := ebiten.CursorPosition()
	pos := mgl32.Vec2{float32(x), float32(y)}
	if !ebiten.IsFocused() {
		return pos, false
	}
	inside := x >= 0 && y >= 0 && float32(x) < d.viewport.X() && float32(y) < d.viewport.Y()
	return pos, inside
}

func (d *Device) Held(a input.Action) bool {
	b, ok := d.bindings[a]
	if !ok {
		return false
	}
	for _, k := range b.Keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	for _, mb := range b.Mouse {
		if ebiten.IsMouseButtonPressed(mb) {
			return true
		}
	}
	if len(b.Gamepad) > 0 {
		for _, id := range ebiten.GamepadIDs() {
			if !ebiten.IsStandardGamepadLayoutAvailable(id) {
				continue
			}
			for _, gb := range b.Gamepad {
				if ebiten.IsStandardGamepadButtonPressed(id, gb) {
					return true
				}
			}
		}
	}
	return false
}

// Scroll reports wheel movement in notches; ebiten normalizes trackpads to
// the same unit.
func (d *Device) Scroll() (mgl32.Vec2, input.ScrollUnit) {
	x, y := ebiten.Wheel()
	return mgl32.Vec2{float32(x), float32(y)}, input.ScrollLines
}

func (d *Device) CaptureCursor(captured bool) {
	if captured == d.captured {
		return
	}
	d.captured = captured
	if captured {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		return
	}
	ebiten.SetCursorMode(ebiten.CursorModeVisible)
}

// GamepadSource pans with the left stick and rotates and pitches with the
// right stick of the first standard-layout gamepad.
type GamepadSource struct {
	Deadzone float64
	// RotateScale and PitchScale turn full stick deflection into axis values.
	RotateScale float32
	PitchScale  float32
}

func NewGamepadSource(deadzone float64) *GamepadSource {
	return &GamepadSource{Deadzone: deadzone, RotateScale: 1, PitchScale: 1}
}

func (g *GamepadSource) Poll(opts input.PollOptions) input.FrameInput {
	var in input.FrameInput
	for _, id := range ebiten.GamepadIDs() {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > g.Deadzone {
			// Stick up is negative.
			in.Pan = mgl32.Vec2{float32(lx), float32(-ly)}
		}
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Abs(rx) > g.Deadzone {
			in.Rotate = float32(-rx) * g.RotateScale
		}
		if math.Abs(ry) > g.Deadzone {
			in.Pitch = float32(-ry) * g.PitchScale
		}
		break
	}
	return in.Sanitize()
}
