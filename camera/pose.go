package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Pose is the composed camera transform for one frame.
type Pose struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat
	Focus       mgl32.Vec3
	Distance    float32
}

// Compose places the camera Distance(zoom) back from the focus along the view
// direction given by yaw and pitch. The orientation looks at the focus with
// +Y up; at pitch 0 the top of the screen points along the pan forward axis.
func Compose(cfg Config, s State) Pose {
	dist := cfg.Distance(s.Zoom)
	dir := ViewDirection(s.Yaw, s.Pitch)
	orientation := mgl32.QuatRotate(s.Yaw, mgl32.Vec3{0, 1, 0}).
		Mul(mgl32.QuatRotate(s.Pitch-math.Pi/2, mgl32.Vec3{1, 0, 0})).
		Normalize()

	return Pose{
		Position:    s.Focus.Sub(dir.Mul(dist)),
		Orientation: orientation,
		Focus:       s.Focus,
		Distance:    dist,
	}
}

// Forward is the unit view direction.
func (p Pose) Forward() mgl32.Vec3 {
	return p.Orientation.Rotate(mgl32.Vec3{0, 0, -1})
}

func (p Pose) Up() mgl32.Vec3 {
	return p.Orientation.Rotate(mgl32.Vec3{0, 1, 0})
}

// View is the world-to-camera matrix.
func (p Pose) View() mgl32.Mat4 {
	return p.Orientation.Conjugate().Mat4().Mul4(mgl32.Translate3D(-p.Position[0], -p.Position[1], -p.Position[2]))
}

// Projection is a perspective matrix using the configured field of view.
func (c Config) Projection(aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(c.FieldOfView, aspect, near, far)
}
