package system

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rtscamera/common"
	"github.com/milk9111/rtscamera/ecs"
	"github.com/milk9111/rtscamera/ecs/component"
	"github.com/milk9111/rtscamera/terrain"
)

// GroundSystem mirrors tagged ground entities into a terrain index. Moving an
// entity moves its footprint; replacing its Ground component rebuilds it.
// Ground rotation is ignored.
type GroundSystem struct {
	index   *terrain.Index
	sources map[terrain.ID]*component.Ground
	failed  map[terrain.ID]failedGround
}

// failedGround remembers a rejected piece so the error is logged once until
// the component or its position changes.
type failedGround struct {
	ground *component.Ground
	pos    mgl32.Vec3
}

func (f failedGround) same(g *component.Ground, pos mgl32.Vec3) bool {
	return f.ground == g && (f.pos == pos || !common.IsFiniteVec3(pos))
}

func NewGroundSystem() *GroundSystem {
	return &GroundSystem{
		index:   terrain.NewIndex(),
		sources: map[terrain.ID]*component.Ground{},
		failed:  map[terrain.ID]failedGround{},
	}
}

// Index is the height sampler the camera systems read.
func (s *GroundSystem) Index() *terrain.Index {
	return s.index
}

func (s *GroundSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	live := make(map[terrain.ID]struct{}, s.index.Len())
	ecs.ForEach3(w, component.GroundTagComponent.Kind(), component.GroundComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.GroundTag, g *component.Ground, t *component.Transform) {
		id := terrain.ID(e)
		live[id] = struct{}{}

		if s.sources[id] == g && s.index.Move(id, t.Position) {
			return
		}
		if f, ok := s.failed[id]; ok && f.same(g, t.Position) {
			return
		}
		if err := s.index.Add(id, g.Footprint, g.Surface, t.Position); err != nil {
			log.Printf("ground: entity=%v index error: %v", e, err)
			s.index.Remove(id)
			delete(s.sources, id)
			s.failed[id] = failedGround{ground: g, pos: t.Position}
			return
		}
		delete(s.failed, id)
		s.sources[id] = g
	})

	for _, id := range s.index.IDs() {
		if _, ok := live[id]; !ok {
			s.index.Remove(id)
			delete(s.sources, id)
		}
	}
	for id := range s.failed {
		if _, ok := live[id]; !ok {
			delete(s.failed, id)
		}
	}
}
