package terrain

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rtscamera/common"
)

// ID identifies a ground piece in the index, usually its entity.
type ID uint64

type piece struct {
	id        ID
	footprint Footprint
	surface   Surface
	origin    mgl32.Vec3
	shape     *cp.Shape
}

// Index answers "how high is the ground here" over any number of ground
// pieces. Footprints live in a Chipmunk space as static shapes; a query finds
// every footprint containing the point and returns the highest surface.
type Index struct {
	space  *cp.Space
	pieces map[ID]*piece
}

func NewIndex() *Index {
	return &Index{
		space:  cp.NewSpace(),
		pieces: map[ID]*piece{},
	}
}

// Add inserts or replaces a ground piece. origin places the footprint in XZ and
// offsets the surface height by origin.Y.
func (ix *Index) Add(id ID, footprint Footprint, surface Surface, origin mgl32.Vec3) error {
	if footprint == nil {
		return ErrNilFootprint
	}
	if surface == nil {
		return ErrNilSurface
	}
	if err := footprint.validate(); err != nil {
		return fmt.Errorf("terrain: piece %d: %w", id, err)
	}
	if !common.IsFiniteVec3(origin) {
		return fmt.Errorf("terrain: piece %d origin %v is not finite", id, origin)
	}

	ix.Remove(id)
	p := &piece{id: id, footprint: footprint, surface: surface, origin: origin}
	ix.attach(p)
	ix.pieces[id] = p
	return nil
}

// Move relocates a piece. It reports false for unknown ids.
func (ix *Index) Move(id ID, origin mgl32.Vec3) bool {
	p, ok := ix.pieces[id]
	if !ok || !common.IsFiniteVec3(origin) {
		return false
	}
	if p.origin == origin {
		return true
	}
	ix.space.RemoveShape(p.shape)
	p.origin = origin
	ix.attach(p)
	return true
}

func (ix *Index) Remove(id ID) bool {
	p, ok := ix.pieces[id]
	if !ok {
		return false
	}
	ix.space.RemoveShape(p.shape)
	delete(ix.pieces, id)
	return true
}

func (ix *Index) Has(id ID) bool {
	_, ok := ix.pieces[id]
	return ok
}

func (ix *Index) Len() int {
	return len(ix.pieces)
}

// IDs returns the indexed ids in ascending order.
func (ix *Index) IDs() []ID {
	ids := make([]ID, 0, len(ix.pieces))
	for id := range ix.pieces {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// HeightAt returns the highest surface whose footprint contains x, z.
func (ix *Index) HeightAt(x, z float32) (float32, bool) {
	if ix == nil || len(ix.pieces) == 0 {
		return 0, false
	}

	point := cp.Vector{X: float64(x), Y: float64(z)}
	best := float32(0)
	found := false
	ix.space.BBQuery(cp.NewBBForCircle(point, 0), cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		p, ok := shape.UserData.(*piece)
		if !ok {
			return
		}
		if shape.PointQuery(point).Distance > 0 {
			return
		}
		h := p.origin.Y() + p.surface.HeightAt(x-p.origin.X(), z-p.origin.Z())
		if !common.IsFinite(h) {
			return
		}
		if !found || h > best {
			best = h
			found = true
		}
	}, nil)
	return best, found
}

// DebugDraw hands every footprint to a Chipmunk drawer. Vertices are XZ, so
// the drawer's Y is world Z.
func (ix *Index) DebugDraw(d cp.Drawer) {
	if ix == nil || d == nil {
		return
	}
	cp.DrawSpace(ix.space, d)
}

func (ix *Index) attach(p *piece) {
	shape := p.footprint.shape(ix.space.StaticBody, mgl32.Vec2{p.origin.X(), p.origin.Z()})
	shape.UserData = p
	p.shape = ix.space.AddShape(shape)
}
