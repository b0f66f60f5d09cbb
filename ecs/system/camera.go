package system

import (
	"log"

	"github.com/milk9111/rtscamera/camera"
	"github.com/milk9111/rtscamera/ecs"
	"github.com/milk9111/rtscamera/ecs/component"
	"github.com/milk9111/rtscamera/input"
)

// CameraSystem advances every camera by the world's delta time and writes the
// resulting pose into the camera entity's transform.
type CameraSystem struct {
	ground camera.HeightSampler
}

func NewCameraSystem(ground camera.HeightSampler) *CameraSystem {
	return &CameraSystem{ground: ground}
}

func (s *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach(w, component.CameraComponent.Kind(), func(e ecs.Entity, cam *component.Camera) {
		if cam.Camera == nil {
			return
		}

		rejected := cam.Camera.Rejected()
		pose := cam.Camera.Update(cam.Input, s.ground, dt)
		cam.Input = input.FrameInput{}
		if n := cam.Camera.Rejected() - rejected; n > 0 {
			log.Printf("camera: entity=%v dropped %d non-finite target update(s)", e, n)
		}

		if cam.Camera.LockReleased() {
			var target ecs.Entity
			if lock, ok := ecs.Get(w, e, component.CameraLockComponent.Kind()); ok {
				target = ecs.Entity(lock.Target)
				ecs.Remove(w, e, component.CameraLockComponent.Kind())
			}
			log.Printf("camera: entity=%v lock on %v released, target gone", e, target)
			w.Events().PushCameraEvent(ecs.CameraEvent{
				Camera: e,
				Kind:   ecs.CameraEventLockReleased,
				Target: target,
			})
		}

		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.Position = pose.Position
			t.Rotation = pose.Orientation
			return
		}
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
			Position: pose.Position,
			Rotation: pose.Orientation,
		}); err != nil {
			log.Printf("camera: entity=%v add transform: %v", e, err)
		}
	})
}

// EventSystem hands camera events to a callback before the world clears them
// at the end of the frame. Register it after the camera systems.
type EventSystem struct {
	handle func(ecs.CameraEvent)
}

func NewEventSystem(handle func(ecs.CameraEvent)) *EventSystem {
	return &EventSystem{handle: handle}
}

func (s *EventSystem) Update(w *ecs.World) {
	if w == nil || s.handle == nil {
		return
	}
	for _, evt := range w.Events().Drain() {
		if ce, ok := evt.Data.(ecs.CameraEvent); ok {
			s.handle(ce)
		}
	}
}
