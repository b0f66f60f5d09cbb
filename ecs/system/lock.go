package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rtscamera/camera"
	"github.com/milk9111/rtscamera/ecs"
	"github.com/milk9111/rtscamera/ecs/component"
)

// LockSystem points cameras carrying a CameraLock at their target's
// transform. Removing the component unlocks the camera. When the target dies
// or loses its transform the camera system drops the lock and the component.
type LockSystem struct {
	locked map[ecs.Entity]ecs.Entity
}

func NewLockSystem() *LockSystem {
	return &LockSystem{locked: map[ecs.Entity]ecs.Entity{}}
}

func (s *LockSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.CameraComponent.Kind(), component.CameraLockComponent.Kind(), func(e ecs.Entity, cam *component.Camera, lock *component.CameraLock) {
		if cam.Camera == nil {
			return
		}
		target := ecs.Entity(lock.Target)
		if current, ok := s.locked[e]; ok && current == target && cam.Camera.Locked() {
			return
		}
		cam.Camera.LockOn(entityTracker(w, target))
		s.locked[e] = target
	})

	for e := range s.locked {
		cam, ok := ecs.Get(w, e, component.CameraComponent.Kind())
		if ok && ecs.Has(w, e, component.CameraLockComponent.Kind()) {
			continue
		}
		if ok && cam.Camera != nil {
			cam.Camera.Unlock()
		}
		delete(s.locked, e)
	}
}

// entityTracker follows target's transform for as long as it is alive.
func entityTracker(w *ecs.World, target ecs.Entity) camera.Tracker {
	return camera.TrackerFunc(func() (mgl32.Vec3, bool) {
		if !ecs.IsAlive(w, target) {
			return mgl32.Vec3{}, false
		}
		t, ok := ecs.Get(w, target, component.TransformComponent.Kind())
		if !ok {
			return mgl32.Vec3{}, false
		}
		return t.Position, true
	})
}
