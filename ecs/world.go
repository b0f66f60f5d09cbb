package ecs

import (
	"github.com/milk9111/rtscamera/common"
	"github.com/milk9111/rtscamera/ecs/component"
)

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// World owns entities, their components, the per-frame clock and the system
// order.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]store
	scheduler Scheduler
	events    EventQueue

	dt      float32
	elapsed float64
}

func NewWorld() *World {
	return &World{stores: map[component.ComponentID]store{}}
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

func (w *World) Systems() []System {
	if w == nil {
		return nil
	}
	return w.scheduler.Systems()
}

// Update advances the clock by dt seconds, runs every system once and clears
// events nobody drained.
func (w *World) Update(dt float32) {
	if w == nil {
		return
	}
	if dt < 0 || !common.IsFinite(dt) {
		dt = 0
	}
	w.dt = dt
	w.elapsed += float64(dt)
	w.scheduler.Update(w)
	w.events.flush()
}

// DeltaTime is the frame time passed to the current Update.
func (w *World) DeltaTime() float32 {
	if w == nil {
		return 0
	}
	return w.dt
}

// Elapsed is the total simulated time in seconds.
func (w *World) Elapsed() float64 {
	if w == nil {
		return 0
	}
	return w.elapsed
}

func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// First returns the lowest-index entity that has kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	if w == nil || kind == nil {
		return 0, false
	}
	s, ok := w.stores[kind.ID()]
	if !ok {
		return 0, false
	}
	var best Entity
	for _, e := range w.entities.live() {
		if s.has(e) {
			best = e
			break
		}
	}
	return best, best.Valid()
}
