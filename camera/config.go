package camera

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rtscamera/common"
)

var ErrInvalidConfig = errors.New("camera: invalid config")

// ZoomCurve maps normalized zoom to a fraction of the distance range.
type ZoomCurve string

const (
	ZoomCurveLinear      ZoomCurve = "linear"
	ZoomCurveExponential ZoomCurve = "exponential"
	ZoomCurveSmoothstep  ZoomCurve = "smoothstep"
)

// Config is immutable for the life of a camera unless replaced wholesale with
// Camera.ReplaceConfig. Angles are radians. Zoom is normalized: 0 is fully
// zoomed in (MinDistance), 1 is fully zoomed out (MaxDistance).
type Config struct {
	PanSpeed      float32 `yaml:"pan_speed"`
	EdgePanMargin float32 `yaml:"edge_pan_margin"`
	EdgePanSpeed  float32 `yaml:"edge_pan_speed"`
	// Pan speed multipliers at zoom 0 and zoom 1.
	PanScaleZoomedIn  float32 `yaml:"pan_scale_zoomed_in"`
	PanScaleZoomedOut float32 `yaml:"pan_scale_zoomed_out"`

	ZoomSpeed float32   `yaml:"zoom_speed"`
	ZoomStep  float32   `yaml:"zoom_step"`
	MinZoom   float32   `yaml:"min_zoom"`
	MaxZoom   float32   `yaml:"max_zoom"`
	ZoomCurve ZoomCurve `yaml:"zoom_curve"`

	MinDistance float32 `yaml:"min_distance"`
	MaxDistance float32 `yaml:"max_distance"`

	RotateSpeed float32 `yaml:"rotate_speed"`

	// Pitch is measured from straight down: 0 is top-down, π/2 looks at the
	// horizon.
	Pitch        float32 `yaml:"pitch"`
	PitchSpeed   float32 `yaml:"pitch_speed"`
	MinAngle     float32 `yaml:"min_angle"`
	MaxAngle     float32 `yaml:"max_angle"`
	DynamicAngle bool    `yaml:"dynamic_angle"`

	HeightOffset  float32 `yaml:"height_offset"`
	DefaultHeight float32 `yaml:"default_height"`

	// FieldOfView is the vertical field of view, used to keep grabbed ground
	// under the pointer.
	FieldOfView float32 `yaml:"field_of_view"`

	SmoothnessPan    float32 `yaml:"smoothness_pan"`
	SmoothnessZoom   float32 `yaml:"smoothness_zoom"`
	SmoothnessRotate float32 `yaml:"smoothness_rotate"`
	SmoothnessPitch  float32 `yaml:"smoothness_pitch"`
	SmoothnessHeight float32 `yaml:"smoothness_height"`
	DisableSmoothing bool    `yaml:"disable_smoothing"`
}

func DefaultConfig() Config {
	return Config{
		PanSpeed:          15,
		EdgePanMargin:     0.05,
		EdgePanSpeed:      15,
		PanScaleZoomedIn:  0.5,
		PanScaleZoomedOut: 1,

		ZoomSpeed: 1,
		ZoomStep:  0.1,
		MinZoom:   0,
		MaxZoom:   1,
		ZoomCurve: ZoomCurveLinear,

		MinDistance: 2,
		MaxDistance: 30,

		RotateSpeed: 2,

		Pitch:      mgl32.DegToRad(25),
		PitchSpeed: 1,
		MinAngle:   0,
		MaxAngle:   mgl32.DegToRad(60),

		HeightOffset: 0,

		FieldOfView: mgl32.DegToRad(45),

		SmoothnessPan:    8,
		SmoothnessZoom:   8,
		SmoothnessRotate: 8,
		SmoothnessPitch:  8,
		SmoothnessHeight: 8,
	}
}

// Validate rejects configurations the controller cannot run with. Errors wrap
// ErrInvalidConfig.
func (c Config) Validate() error {
	if err := checkFinite(c); err != nil {
		return err
	}

	nonNegative := []struct {
		name  string
		value float32
	}{
		{"pan_speed", c.PanSpeed},
		{"edge_pan_margin", c.EdgePanMargin},
		{"edge_pan_speed", c.EdgePanSpeed},
		{"pan_scale_zoomed_in", c.PanScaleZoomedIn},
		{"pan_scale_zoomed_out", c.PanScaleZoomedOut},
		{"zoom_speed", c.ZoomSpeed},
		{"zoom_step", c.ZoomStep},
		{"rotate_speed", c.RotateSpeed},
		{"pitch_speed", c.PitchSpeed},
		{"smoothness_pan", c.SmoothnessPan},
		{"smoothness_zoom", c.SmoothnessZoom},
		{"smoothness_rotate", c.SmoothnessRotate},
		{"smoothness_pitch", c.SmoothnessPitch},
		{"smoothness_height", c.SmoothnessHeight},
	}
	for _, f := range nonNegative {
		if f.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidConfig, f.name, f.value)
		}
	}

	if c.EdgePanMargin >= 0.5 {
		return fmt.Errorf("%w: edge_pan_margin must be below 0.5, got %v", ErrInvalidConfig, c.EdgePanMargin)
	}
	if c.MinZoom < 0 || c.MaxZoom > 1 {
		return fmt.Errorf("%w: zoom range [%v, %v] outside [0, 1]", ErrInvalidConfig, c.MinZoom, c.MaxZoom)
	}
	if c.MinZoom >= c.MaxZoom {
		return fmt.Errorf("%w: min_zoom %v must be below max_zoom %v", ErrInvalidConfig, c.MinZoom, c.MaxZoom)
	}
	if c.MinDistance <= 0 {
		return fmt.Errorf("%w: min_distance must be positive, got %v", ErrInvalidConfig, c.MinDistance)
	}
	if c.MinDistance >= c.MaxDistance {
		return fmt.Errorf("%w: min_distance %v must be below max_distance %v", ErrInvalidConfig, c.MinDistance, c.MaxDistance)
	}
	if c.MinAngle < 0 || c.MaxAngle > math.Pi/2 {
		return fmt.Errorf("%w: angle range [%v, %v] outside [0, π/2]", ErrInvalidConfig, c.MinAngle, c.MaxAngle)
	}
	if c.MinAngle > c.MaxAngle {
		return fmt.Errorf("%w: min_angle %v > max_angle %v", ErrInvalidConfig, c.MinAngle, c.MaxAngle)
	}
	if c.Pitch < c.MinAngle || c.Pitch > c.MaxAngle {
		return fmt.Errorf("%w: pitch %v outside [%v, %v]", ErrInvalidConfig, c.Pitch, c.MinAngle, c.MaxAngle)
	}
	if c.FieldOfView <= 0 || c.FieldOfView >= math.Pi {
		return fmt.Errorf("%w: field_of_view must be in (0, π), got %v", ErrInvalidConfig, c.FieldOfView)
	}
	switch c.ZoomCurve {
	case ZoomCurveLinear, ZoomCurveExponential, ZoomCurveSmoothstep:
	default:
		return fmt.Errorf("%w: unknown zoom_curve %q", ErrInvalidConfig, c.ZoomCurve)
	}
	return nil
}

func checkFinite(c Config) error {
	v := reflect.ValueOf(c)
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() != reflect.Float32 {
			continue
		}
		if !common.IsFinite(float32(f.Float())) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidConfig, t.Field(i).Tag.Get("yaml"))
		}
	}
	return nil
}

// Distance maps a normalized zoom to the focus distance.
func (c Config) Distance(zoom float32) float32 {
	t := common.Clamp(zoom, 0, 1)
	switch c.ZoomCurve {
	case ZoomCurveExponential:
		if c.MinDistance <= 0 || c.MaxDistance <= c.MinDistance {
			return c.MinDistance
		}
		return c.MinDistance * float32(math.Pow(float64(c.MaxDistance/c.MinDistance), float64(t)))
	case ZoomCurveSmoothstep:
		t = t * t * (3 - 2*t)
	}
	return common.Lerp(c.MinDistance, c.MaxDistance, t)
}

// ZoomForDistance is the inverse of Distance, clamped to the zoom limits.
func (c Config) ZoomForDistance(d float32) float32 {
	var t float32
	if c.MaxDistance > c.MinDistance {
		f := common.Clamp(d, c.MinDistance, c.MaxDistance)
		switch c.ZoomCurve {
		case ZoomCurveExponential:
			t = float32(math.Log(float64(f/c.MinDistance)) / math.Log(float64(c.MaxDistance/c.MinDistance)))
		case ZoomCurveSmoothstep:
			y := float64(common.InverseLerp(c.MinDistance, c.MaxDistance, f))
			t = float32(0.5 - math.Sin(math.Asin(1-2*y)/3))
		default:
			t = common.InverseLerp(c.MinDistance, c.MaxDistance, f)
		}
	}
	return c.ClampZoom(t)
}

func (c Config) ClampZoom(z float32) float32 {
	return common.Clamp(z, c.MinZoom, c.MaxZoom)
}

func (c Config) ClampPitch(p float32) float32 {
	return common.Clamp(p, c.MinAngle, c.MaxAngle)
}

// PanScale is the pan speed multiplier at the given zoom.
func (c Config) PanScale(zoom float32) float32 {
	return common.Lerp(c.PanScaleZoomedIn, c.PanScaleZoomedOut, common.Clamp(zoom, 0, 1))
}

// DynamicPitch tilts toward the horizon when zoomed in and toward top-down
// when zoomed out.
func (c Config) DynamicPitch(zoom float32) float32 {
	return common.Lerp(c.MaxAngle, c.MinAngle, common.Clamp(zoom, 0, 1))
}

// Smoothing rates per axis. DisableSmoothing makes every axis snap.
type rates struct {
	pan, zoom, yaw, pitch, height float32
}

func (c Config) rates() rates {
	if c.DisableSmoothing {
		return rates{}
	}
	return rates{
		pan:    c.SmoothnessPan,
		zoom:   c.SmoothnessZoom,
		yaw:    c.SmoothnessRotate,
		pitch:  c.SmoothnessPitch,
		height: c.SmoothnessHeight,
	}
}
