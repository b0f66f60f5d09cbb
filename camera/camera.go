package camera

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rtscamera/common"
	"github.com/milk9111/rtscamera/input"
)

// HeightSampler answers the ground height under a world XZ point. ok is false
// when nothing is underneath.
type HeightSampler interface {
	HeightAt(x, z float32) (height float32, ok bool)
}

// Tracker reports the position of a lock target. ok is false once the target
// is gone.
type Tracker interface {
	Position() (pos mgl32.Vec3, ok bool)
}

type TrackerFunc func() (mgl32.Vec3, bool)

func (f TrackerFunc) Position() (mgl32.Vec3, bool) {
	return f()
}

// Camera is a single RTS camera: a target state driven by input, an actual
// state that follows it, and the pose composed from the actual state.
// It is not safe for concurrent use.
type Camera struct {
	cfg    Config
	target State
	actual State
	pose   Pose

	lastGround float32
	hasGround  bool

	tracker   Tracker
	lockPoint mgl32.Vec3
	released  bool

	started   bool
	snapFocus bool
	snapAll   bool
	rejected  int
}

type Option func(*Camera)

func WithFocus(x, z float32) Option {
	return func(c *Camera) {
		c.target.Focus[0] = x
		c.target.Focus[2] = z
	}
}

func WithZoom(zoom float32) Option {
	return func(c *Camera) {
		c.target.Zoom = zoom
	}
}

// WithDistance sets the initial zoom from a focus distance.
func WithDistance(d float32) Option {
	return func(c *Camera) {
		c.target.Zoom = c.cfg.ZoomForDistance(d)
	}
}

func WithYaw(yaw float32) Option {
	return func(c *Camera) {
		c.target.Yaw = yaw
	}
}

func WithPitch(pitch float32) Option {
	return func(c *Camera) {
		c.target.Pitch = pitch
	}
}

// New validates cfg and returns a camera whose actual state starts equal to
// its target.
func New(cfg Config, opts ...Option) (*Camera, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Camera{cfg: cfg}
	c.target = State{
		Focus: mgl32.Vec3{0, cfg.DefaultHeight + cfg.HeightOffset, 0},
		Zoom:  cfg.MaxZoom,
		Pitch: cfg.Pitch,
	}
	for _, opt := range opts {
		opt(c)
	}
	if !c.target.Finite() {
		return nil, fmt.Errorf("%w: initial state is not finite", ErrInvalidConfig)
	}

	c.target.Zoom = cfg.ClampZoom(c.target.Zoom)
	c.target.Yaw = common.WrapAngle(c.target.Yaw)
	if cfg.DynamicAngle {
		c.target.Pitch = cfg.DynamicPitch(c.target.Zoom)
	} else {
		c.target.Pitch = cfg.ClampPitch(c.target.Pitch)
	}
	c.actual = c.target
	c.pose = Compose(cfg, c.actual)
	return c, nil
}

func (c *Camera) Config() Config { return c.cfg }
func (c *Camera) Target() State  { return c.target }
func (c *Camera) Actual() State  { return c.actual }
func (c *Camera) Pose() Pose     { return c.pose }

// Rejected counts updates whose resolved target was not finite and was
// discarded.
func (c *Camera) Rejected() int { return c.rejected }

// ReplaceConfig swaps the configuration. The target is re-clamped to the new
// limits; the actual state follows through normal smoothing.
func (c *Camera) ReplaceConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	c.target.Zoom = cfg.ClampZoom(c.target.Zoom)
	if cfg.DynamicAngle {
		c.target.Pitch = cfg.DynamicPitch(c.target.Zoom)
	} else {
		c.target.Pitch = cfg.ClampPitch(c.target.Pitch)
	}
	return nil
}

func (c *Camera) SetTargetFocus(x, z float32) {
	if !common.IsFinite(x) || !common.IsFinite(z) {
		c.rejected++
		return
	}
	c.target.Focus[0] = x
	c.target.Focus[2] = z
}

func (c *Camera) SetTargetZoom(zoom float32) {
	if !common.IsFinite(zoom) {
		c.rejected++
		return
	}
	c.target.Zoom = c.cfg.ClampZoom(zoom)
}

func (c *Camera) SetTargetYaw(yaw float32) {
	if !common.IsFinite(yaw) {
		c.rejected++
		return
	}
	c.target.Yaw = common.WrapAngle(yaw)
}

// SetTargetPitch is ignored while DynamicAngle derives pitch from zoom.
func (c *Camera) SetTargetPitch(pitch float32) {
	if !common.IsFinite(pitch) {
		c.rejected++
		return
	}
	if c.cfg.DynamicAngle {
		return
	}
	c.target.Pitch = c.cfg.ClampPitch(pitch)
}

// SnapTo moves target and actual focus to x, z together. The next Update also
// snaps focus height, so the composed pose has no lag at the new location.
func (c *Camera) SnapTo(x, z float32) {
	if !common.IsFinite(x) || !common.IsFinite(z) {
		c.rejected++
		return
	}
	c.target.Focus[0], c.target.Focus[2] = x, z
	c.actual.Focus[0], c.actual.Focus[2] = x, z
	c.snapFocus = true
	c.pose = Compose(c.cfg, c.actual)
}

func (c *Camera) SnapZoom(zoom float32) {
	if !common.IsFinite(zoom) {
		c.rejected++
		return
	}
	c.target.Zoom = c.cfg.ClampZoom(zoom)
	c.actual.Zoom = c.target.Zoom
	if c.cfg.DynamicAngle {
		c.target.Pitch = c.cfg.DynamicPitch(c.target.Zoom)
		c.actual.Pitch = c.target.Pitch
	}
	c.pose = Compose(c.cfg, c.actual)
}

func (c *Camera) SnapYaw(yaw float32) {
	if !common.IsFinite(yaw) {
		c.rejected++
		return
	}
	c.target.Yaw = common.WrapAngle(yaw)
	c.actual.Yaw = c.target.Yaw
	c.pose = Compose(c.cfg, c.actual)
}

// Snap makes the actual state jump to the target on the next Update.
func (c *Camera) Snap() {
	c.snapAll = true
}

// LockOn makes the target focus follow t every Update until Unlock is called
// or t reports that it is gone.
func (c *Camera) LockOn(t Tracker) {
	c.tracker = t
}

func (c *Camera) Unlock() {
	c.tracker = nil
}

func (c *Camera) Locked() bool {
	return c.tracker != nil
}

// LockReleased reports whether the last Update dropped the lock because its
// target disappeared.
func (c *Camera) LockReleased() bool {
	return c.released
}

// Update runs one frame: resolve the target from input, apply the lock,
// smooth, sample ground under the smoothed focus and compose the pose.
func (c *Camera) Update(in input.FrameInput, ground HeightSampler, dt float32) Pose {
	if !common.IsFinite(dt) || dt < 0 {
		dt = 0
	}
	c.released = false

	next := Resolve(c.cfg, c.target, c.actual, in, dt)
	if c.tracker != nil {
		if pos, ok := c.tracker.Position(); ok && common.IsFiniteVec3(pos) {
			c.lockPoint = pos
			next.Focus[0], next.Focus[2] = pos[0], pos[2]
		} else {
			c.tracker = nil
			c.released = true
		}
	}
	if !next.Finite() {
		c.rejected++
		next = c.target
	}
	c.target = next

	if c.snapAll {
		c.actual = SnapPlanar(c.actual, c.target)
	} else {
		c.actual = SmoothPlanar(c.cfg, c.actual, c.target, dt)
	}
	if c.snapFocus {
		c.actual.Focus[0], c.actual.Focus[2] = c.target.Focus[0], c.target.Focus[2]
	}

	c.target.Focus[1] = c.groundHeight(ground, c.actual.Focus[0], c.actual.Focus[2]) + c.cfg.HeightOffset
	if !c.started || c.snapFocus || c.snapAll {
		c.actual.Focus[1] = c.target.Focus[1]
	} else {
		c.actual.Focus[1] = SmoothHeight(c.cfg, c.actual.Focus[1], c.target.Focus[1], dt)
	}

	c.started = true
	c.snapFocus = false
	c.snapAll = false
	c.pose = Compose(c.cfg, c.actual)
	return c.pose
}

// SnapPlanar copies every axis except focus height from target.
func SnapPlanar(actual, target State) State {
	out := target
	out.Focus[1] = actual.Focus[1]
	return out
}

// groundHeight keeps the last sampled height when nothing is underneath and
// falls back to DefaultHeight until the first hit.
func (c *Camera) groundHeight(ground HeightSampler, x, z float32) float32 {
	if ground != nil {
		if h, ok := ground.HeightAt(x, z); ok && common.IsFinite(h) {
			c.lastGround = h
			c.hasGround = true
			return h
		}
	}
	if c.hasGround {
		return c.lastGround
	}
	return c.cfg.DefaultHeight
}

// LastLockPoint is the most recent position reported by the lock target.
func (c *Camera) LastLockPoint() mgl32.Vec3 {
	return c.lockPoint
}
