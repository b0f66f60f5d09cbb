package camera

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rtscamera/common"
)

// State is one copy of the camera's degrees of freedom. A camera keeps a
// target copy that input moves directly and an actual copy that follows it.
type State struct {
	// Focus is the point the camera orbits. Y is ground height plus the
	// configured height offset.
	Focus mgl32.Vec3
	Zoom  float32
	// Yaw is wrapped to [0, 2π). Zero looks toward -Z.
	Yaw   float32
	Pitch float32
}

func (s State) Finite() bool {
	return common.IsFiniteVec3(s.Focus) &&
		common.IsFinite(s.Zoom) &&
		common.IsFinite(s.Yaw) &&
		common.IsFinite(s.Pitch)
}

// PanAxes returns the horizontal right and forward directions for a yaw.
func PanAxes(yaw float32) (right, forward mgl32.Vec3) {
	s, c := sincos(yaw)
	right = mgl32.Vec3{c, 0, -s}
	forward = mgl32.Vec3{-s, 0, -c}
	return right, forward
}

// ViewDirection is the unit vector from the camera toward its focus.
func ViewDirection(yaw, pitch float32) mgl32.Vec3 {
	_, forward := PanAxes(yaw)
	sp, cp := sincos(pitch)
	return forward.Mul(sp).Sub(mgl32.Vec3{0, cp, 0})
}
