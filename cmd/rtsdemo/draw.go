package main

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rtscamera/terrain"
)

const (
	nearPlane = 0.1
	farPlane  = 500
)

// projector maps world points to screen pixels for one frame.
type projector struct {
	viewProj      mgl32.Mat4
	width, height float64
}

func newProjector(view, proj mgl32.Mat4, width, height int) projector {
	return projector{viewProj: proj.Mul4(view), width: float64(width), height: float64(height)}
}

func (p projector) project(v mgl32.Vec3) (float64, float64, bool) {
	clip := p.viewProj.Mul4x1(v.Vec4(1))
	if clip.W() <= nearPlane {
		return 0, 0, false
	}
	x := float64(clip.X() / clip.W())
	y := float64(clip.Y() / clip.W())
	return (x + 1) / 2 * p.width, (1 - y) / 2 * p.height, true
}

func (p projector) line(screen *ebiten.Image, a, b mgl32.Vec3, c color.Color) {
	ax, ay, ok := p.project(a)
	if !ok {
		return
	}
	bx, by, ok := p.project(b)
	if !ok {
		return
	}
	ebitenutil.DrawLine(screen, ax, ay, bx, by, c)
}

func (p projector) cross(screen *ebiten.Image, at mgl32.Vec3, size float32, c color.Color) {
	p.line(screen, at.Add(mgl32.Vec3{-size, 0, 0}), at.Add(mgl32.Vec3{size, 0, 0}), c)
	p.line(screen, at.Add(mgl32.Vec3{0, 0, -size}), at.Add(mgl32.Vec3{0, 0, size}), c)
	p.line(screen, at, at.Add(mgl32.Vec3{0, size * 2, 0}), c)
}

// groundDrawer draws terrain footprints as wireframes lifted to the indexed
// ground height at each vertex.
type groundDrawer struct {
	screen *ebiten.Image
	proj   projector
	ground *terrain.Index
}

func (d *groundDrawer) point(v cp.Vector) mgl32.Vec3 {
	x, z := float32(v.X), float32(v.Y)
	h, _ := d.ground.HeightAt(x, z)
	return mgl32.Vec3{x, h, z}
}

func (d *groundDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if d.screen == nil {
		return
	}
	c := fcolorToRGBA(fill)
	steps := 24
	prev := d.point(cp.Vector{X: pos.X + radius, Y: pos.Y})
	for i := 1; i <= steps; i++ {
		th := float64(i) * (2 * math.Pi / float64(steps))
		cur := d.point(cp.Vector{X: pos.X + math.Cos(th)*radius, Y: pos.Y + math.Sin(th)*radius})
		d.proj.line(d.screen, prev, cur, c)
		prev = cur
	}
	// spoke to the summit
	d.proj.line(d.screen, prev, d.point(pos), c)
}

func (d *groundDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	if d.screen == nil {
		return
	}
	d.proj.line(d.screen, d.point(a), d.point(b), fcolorToRGBA(fill))
}

func (d *groundDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.DrawSegment(a, b, outline, data)
}

func (d *groundDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if d.screen == nil || count == 0 {
		return
	}
	c := fcolorToRGBA(fill)
	for i := 0; i < count; i++ {
		j := (i + 1) % count
		d.proj.line(d.screen, d.point(verts[i]), d.point(verts[j]), c)
	}
}

func (d *groundDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if d.screen == nil {
		return
	}
	d.proj.cross(d.screen, d.point(pos), float32(size/2), fcolorToRGBA(fill))
}

func (d *groundDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *groundDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1.0, B: 0.2, A: 1.0}
}

func (d *groundDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: 0.4, G: 0.7, B: 1.0, A: 1.0}
}

func (d *groundDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1.0}
}

func (d *groundDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1.0, G: 0.1, B: 0.1, A: 1.0}
}

func (d *groundDrawer) Data() interface{} {
	return nil
}

func fcolorToRGBA(c cp.FColor) color.RGBA {
	clamp := func(v float32) uint8 {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return uint8(v * 255)
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}
