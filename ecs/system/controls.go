package system

import (
	"github.com/milk9111/rtscamera/ecs"
	"github.com/milk9111/rtscamera/ecs/component"
	"github.com/milk9111/rtscamera/input"
)

type resetter interface {
	Reset()
}

// ControlsSystem polls each camera's input source into Camera.Input. Sources
// holding one-shot deltas are consumed after every camera has polled, so a
// shared source drives all of its cameras with the same frame.
type ControlsSystem struct {
	enabled map[ecs.Entity]bool
}

func NewControlsSystem() *ControlsSystem {
	return &ControlsSystem{enabled: map[ecs.Entity]bool{}}
}

func (s *ControlsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var consumers []input.Consumer
	ecs.ForEach(w, component.CameraComponent.Kind(), func(e ecs.Entity, cam *component.Camera) {
		cam.Input = input.FrameInput{}
		if cam.Camera == nil {
			return
		}

		controls, ok := ecs.Get(w, e, component.ControlsComponent.Kind())
		if !ok || controls.Source == nil {
			delete(s.enabled, e)
			return
		}
		if !controls.Enabled {
			if s.enabled[e] {
				if r, ok := controls.Source.(resetter); ok {
					r.Reset()
				}
			}
			s.enabled[e] = false
			return
		}
		s.enabled[e] = true

		cam.Input = controls.Source.Poll(input.PollOptions{
			EdgePanMargin: cam.Camera.Config().EdgePanMargin,
			Viewport:      controls.Viewport,
		})
		if c, ok := controls.Source.(input.Consumer); ok {
			consumers = append(consumers, c)
		}
	})

	for _, c := range consumers {
		c.Consume()
	}

	for e := range s.enabled {
		if !ecs.IsAlive(w, e) {
			delete(s.enabled, e)
		}
	}
}
