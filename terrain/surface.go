package terrain

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rtscamera/common"
)

var (
	ErrNilSurface   = errors.New("terrain: surface is nil")
	ErrNilFootprint = errors.New("terrain: footprint is nil")
	ErrBadHeightMap = errors.New("terrain: invalid height map")
	ErrBadFootprint = errors.New("terrain: invalid footprint")
)

// Surface is the top of a ground piece in its local XZ frame.
type Surface interface {
	HeightAt(x, z float32) float32
}

type SurfaceFunc func(x, z float32) float32

func (f SurfaceFunc) HeightAt(x, z float32) float32 {
	return f(x, z)
}

// Flat is a constant height, used for planes and box tops.
type Flat float32

func (f Flat) HeightAt(x, z float32) float32 {
	return float32(f)
}

// Dome is the upper half of a sphere centered on the local origin. Its
// footprint is a Circle of the same radius.
type Dome struct {
	Radius float32
}

func (d Dome) HeightAt(x, z float32) float32 {
	r2 := d.Radius*d.Radius - x*x - z*z
	if r2 <= 0 {
		return 0
	}
	return float32(math.Sqrt(float64(r2)))
}

// HeightMap is a regular grid of samples starting at the local origin and
// extending along +X and +Z. Heights are row major by Z.
type HeightMap struct {
	Cols, Rows int
	CellSize   float32
	Heights    []float32
}

func NewHeightMap(cols, rows int, cellSize float32, heights []float32) (*HeightMap, error) {
	if cols < 2 || rows < 2 {
		return nil, fmt.Errorf("%w: need at least 2x2 samples, got %dx%d", ErrBadHeightMap, cols, rows)
	}
	if cellSize <= 0 || !common.IsFinite(cellSize) {
		return nil, fmt.Errorf("%w: cell size %v", ErrBadHeightMap, cellSize)
	}
	if len(heights) != cols*rows {
		return nil, fmt.Errorf("%w: %d heights for %dx%d grid", ErrBadHeightMap, len(heights), cols, rows)
	}
	return &HeightMap{Cols: cols, Rows: rows, CellSize: cellSize, Heights: heights}, nil
}

// Size is the local XZ extent covered by the grid.
func (h *HeightMap) Size() mgl32.Vec2 {
	return mgl32.Vec2{float32(h.Cols-1) * h.CellSize, float32(h.Rows-1) * h.CellSize}
}

// Footprint covers the whole grid.
func (h *HeightMap) Footprint() Rect {
	return Rect{Max: h.Size()}
}

// HeightAt samples bilinearly, clamping to the grid border. A malformed grid
// reads as flat ground at 0.
func (h *HeightMap) HeightAt(x, z float32) float32 {
	if !h.valid() {
		return 0
	}
	gx := common.Clamp(x/h.CellSize, 0, float32(h.Cols-1))
	gz := common.Clamp(z/h.CellSize, 0, float32(h.Rows-1))

	x0 := int(gx)
	z0 := int(gz)
	x1 := min(x0+1, h.Cols-1)
	z1 := min(z0+1, h.Rows-1)
	fx := gx - float32(x0)
	fz := gz - float32(z0)

	top := common.Lerp(h.at(x0, z0), h.at(x1, z0), fx)
	bottom := common.Lerp(h.at(x0, z1), h.at(x1, z1), fx)
	return common.Lerp(top, bottom, fz)
}

func (h *HeightMap) valid() bool {
	return h != nil && h.Cols >= 1 && h.Rows >= 1 &&
		h.CellSize > 0 && common.IsFinite(h.CellSize) &&
		len(h.Heights) == h.Cols*h.Rows
}

func (h *HeightMap) at(col, row int) float32 {
	return h.Heights[row*h.Cols+col]
}
