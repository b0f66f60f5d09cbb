package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const TwoPi = 2 * math.Pi

func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// InverseLerp returns where v sits between a and b. Equal bounds give 0.
func InverseLerp(a, b, v float32) float32 {
	if a == b {
		return 0
	}
	return (v - a) / (b - a)
}

func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WrapAngle maps a radian angle into [0, 2π).
func WrapAngle(a float32) float32 {
	w := math.Mod(float64(a), TwoPi)
	if w < 0 {
		w += TwoPi
	}
	out := float32(w)
	if out >= float32(TwoPi) {
		return 0
	}
	return out
}

// AngleDelta is the signed shortest rotation from `from` to `to`, in (-π, π].
func AngleDelta(from, to float32) float32 {
	d := math.Mod(float64(to)-float64(from), TwoPi)
	if d > math.Pi {
		d -= TwoPi
	} else if d <= -math.Pi {
		d += TwoPi
	}
	return float32(d)
}

// DampFactor is the fraction of the remaining gap closed in dt by an
// exponential decay with rate k. A non-positive rate closes the whole gap.
func DampFactor(k, dt float32) float32 {
	if k <= 0 {
		return 1
	}
	if dt <= 0 {
		return 0
	}
	return float32(1 - math.Exp(-float64(k)*float64(dt)))
}

func Damp(current, target, k, dt float32) float32 {
	return current + (target-current)*DampFactor(k, dt)
}

// DampAngle damps along the shortest arc and returns a wrapped angle.
func DampAngle(current, target, k, dt float32) float32 {
	return WrapAngle(current + AngleDelta(current, target)*DampFactor(k, dt))
}

func IsFinite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func IsFiniteVec2(v mgl32.Vec2) bool {
	return IsFinite(v[0]) && IsFinite(v[1])
}

func IsFiniteVec3(v mgl32.Vec3) bool {
	return IsFinite(v[0]) && IsFinite(v[1]) && IsFinite(v[2])
}

// Finite returns v, or 0 when v is NaN or infinite.
func Finite(v float32) float32 {
	if !IsFinite(v) {
		return 0
	}
	return v
}

func FiniteVec2(v mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{Finite(v[0]), Finite(v[1])}
}

// ClampLen shortens v to at most max length.
func ClampLen(v mgl32.Vec2, max float32) mgl32.Vec2 {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Mul(max / l)
}
