package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rtscamera/common"
	"github.com/milk9111/rtscamera/input"
)

// Resolve applies one frame of input to the target state. Pan directions come
// from the actual yaw so panning follows what is on screen, and grab drags are
// scaled by the actual distance so the grabbed ground stays under the pointer.
// Focus height is left alone; it belongs to the ground sampler.
func Resolve(cfg Config, target, actual State, in input.FrameInput, dt float32) State {
	in = in.Sanitize()
	if !common.IsFinite(dt) || dt < 0 {
		dt = 0
	}

	next := target
	right, forward := PanAxes(actual.Yaw)

	switch in.PanSource() {
	case input.PanKeys:
		step := cfg.PanSpeed * cfg.PanScale(target.Zoom) * dt
		next.Focus = next.Focus.Add(localToWorld(right, forward, in.Pan).Mul(step))
	case input.PanEdge:
		step := cfg.EdgePanSpeed * cfg.PanScale(target.Zoom) * dt
		next.Focus = next.Focus.Add(localToWorld(right, forward, in.EdgeDir).Mul(step))
	case input.PanGrab:
		scale := GrabScale(cfg, actual.Zoom, in.Viewport.Y())
		// Dragging right moves the world right, so the focus moves left.
		drag := forward.Mul(in.Grab.Y()).Sub(right.Mul(in.Grab.X()))
		next.Focus = next.Focus.Add(drag.Mul(scale))
	}

	next.Zoom = cfg.ClampZoom(target.Zoom + in.Zoom*cfg.ZoomSpeed*dt + in.ZoomStep*cfg.ZoomStep)
	next.Yaw = common.WrapAngle(target.Yaw + in.Rotate*cfg.RotateSpeed*dt + in.RotateAngle)

	if cfg.DynamicAngle {
		next.Pitch = cfg.DynamicPitch(next.Zoom)
	} else {
		next.Pitch = cfg.ClampPitch(target.Pitch + in.Pitch*cfg.PitchSpeed*dt)
	}
	return next
}

// GrabScale is the world distance covered by one pixel of pointer motion at
// the focus, for a viewport of the given pixel height.
func GrabScale(cfg Config, zoom, viewportHeight float32) float32 {
	if viewportHeight <= 0 {
		return 0
	}
	halfHeight := cfg.Distance(zoom) * float32(math.Tan(float64(cfg.FieldOfView)/2))
	return 2 * halfHeight / viewportHeight
}

func localToWorld(right, forward mgl32.Vec3, v mgl32.Vec2) mgl32.Vec3 {
	return right.Mul(v.X()).Add(forward.Mul(v.Y()))
}
