package camera

import (
	"math"

	"github.com/milk9111/rtscamera/common"
)

// Smooth moves every axis of actual toward target by
// (target-actual)*(1-exp(-k*dt)). Yaw takes the shortest arc. A rate of zero,
// or DisableSmoothing, snaps the axis.
func Smooth(cfg Config, actual, target State, dt float32) State {
	out := SmoothPlanar(cfg, actual, target, dt)
	out.Focus[1] = SmoothHeight(cfg, actual.Focus[1], target.Focus[1], dt)
	return out
}

// SmoothPlanar is Smooth for every axis except focus height.
func SmoothPlanar(cfg Config, actual, target State, dt float32) State {
	r := cfg.rates()
	out := actual
	out.Focus[0] = common.Damp(actual.Focus[0], target.Focus[0], r.pan, dt)
	out.Focus[2] = common.Damp(actual.Focus[2], target.Focus[2], r.pan, dt)
	out.Zoom = common.Damp(actual.Zoom, target.Zoom, r.zoom, dt)
	out.Yaw = common.DampAngle(actual.Yaw, target.Yaw, r.yaw, dt)
	out.Pitch = common.Damp(actual.Pitch, target.Pitch, r.pitch, dt)
	return out
}

func SmoothHeight(cfg Config, actual, target, dt float32) float32 {
	return common.Damp(actual, target, cfg.rates().height, dt)
}

func sincos(a float32) (float32, float32) {
	s, c := math.Sincos(float64(a))
	return float32(s), float32(c)
}
