package terrain

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rtscamera/common"
)

// Footprint is the XZ outline of a ground piece in its local frame. The index
// stores it as a Chipmunk shape with X mapped to X and Z mapped to Y.
type Footprint interface {
	validate() error
	shape(body *cp.Body, origin mgl32.Vec2) *cp.Shape
}

type Rect struct {
	Min, Max mgl32.Vec2
}

// CenteredRect is a w by d rectangle around the local origin.
func CenteredRect(w, d float32) Rect {
	return Rect{Min: mgl32.Vec2{-w / 2, -d / 2}, Max: mgl32.Vec2{w / 2, d / 2}}
}

func (r Rect) validate() error {
	if !common.IsFiniteVec2(r.Min) || !common.IsFiniteVec2(r.Max) {
		return fmt.Errorf("%w: rect %v-%v is not finite", ErrBadFootprint, r.Min, r.Max)
	}
	if r.Min.X() >= r.Max.X() || r.Min.Y() >= r.Max.Y() {
		return fmt.Errorf("%w: rect min %v not below max %v", ErrBadFootprint, r.Min, r.Max)
	}
	return nil
}

func (r Rect) shape(body *cp.Body, origin mgl32.Vec2) *cp.Shape {
	bb := cp.BB{
		L: float64(origin.X() + r.Min.X()),
		B: float64(origin.Y() + r.Min.Y()),
		R: float64(origin.X() + r.Max.X()),
		T: float64(origin.Y() + r.Max.Y()),
	}
	return cp.NewBox2(body, bb, 0)
}

type Circle struct {
	Radius float32
}

func (c Circle) validate() error {
	if !common.IsFinite(c.Radius) || c.Radius <= 0 {
		return fmt.Errorf("%w: circle radius %v", ErrBadFootprint, c.Radius)
	}
	return nil
}

func (c Circle) shape(body *cp.Body, origin mgl32.Vec2) *cp.Shape {
	return cp.NewCircle(body, float64(c.Radius), toVector(origin))
}

// Polygon is a convex outline; non-convex input is replaced by its hull.
type Polygon []mgl32.Vec2

func (p Polygon) validate() error {
	if len(p) < 3 {
		return fmt.Errorf("%w: polygon needs 3 vertices, got %d", ErrBadFootprint, len(p))
	}
	for _, v := range p {
		if !common.IsFiniteVec2(v) {
			return fmt.Errorf("%w: polygon vertex %v is not finite", ErrBadFootprint, v)
		}
	}
	return nil
}

func (p Polygon) shape(body *cp.Body, origin mgl32.Vec2) *cp.Shape {
	verts := make([]cp.Vector, 0, len(p))
	for _, v := range p {
		verts = append(verts, toVector(origin.Add(v)))
	}
	return cp.NewPolyShape(body, len(verts), verts, cp.NewTransformIdentity(), 0)
}

func toVector(v mgl32.Vec2) cp.Vector {
	return cp.Vector{X: float64(v.X()), Y: float64(v.Y())}
}
