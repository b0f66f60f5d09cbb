// Package rtscamera wires the RTS camera systems into an ecs.World.
//
// Frame order: config reload, controls, scripts, locks, ground, camera, then
// the optional event callback.
package rtscamera

import (
	"github.com/milk9111/rtscamera/ecs"
	"github.com/milk9111/rtscamera/ecs/system"
	"github.com/milk9111/rtscamera/terrain"
)

type Options struct {
	// Changes enables hot reload of camera prefabs and scripts, usually a
	// *prefabs.Watcher.
	Changes system.ChangeSource
	// OnEvent receives lock releases, reloads and script failures.
	OnEvent func(ecs.CameraEvent)
}

// Plugin exposes the systems Install registered.
type Plugin struct {
	Controls *system.ControlsSystem
	Scripts  *system.CameraScriptSystem
	Locks    *system.LockSystem
	Ground   *system.GroundSystem
	Cameras  *system.CameraSystem
}

func Install(w *ecs.World, opts Options) *Plugin {
	ground := system.NewGroundSystem()
	p := &Plugin{
		Controls: system.NewControlsSystem(),
		Scripts:  system.NewCameraScriptSystem(ground.Index()),
		Locks:    system.NewLockSystem(),
		Ground:   ground,
		Cameras:  system.NewCameraSystem(ground.Index()),
	}

	if opts.Changes != nil {
		w.AddSystem(system.NewConfigReloadSystem(opts.Changes))
	}
	w.AddSystem(p.Controls)
	w.AddSystem(p.Scripts)
	w.AddSystem(p.Locks)
	w.AddSystem(p.Ground)
	w.AddSystem(p.Cameras)
	if opts.OnEvent != nil {
		w.AddSystem(system.NewEventSystem(opts.OnEvent))
	}
	return p
}

// Terrain is the ground index the cameras sample.
func (p *Plugin) Terrain() *terrain.Index {
	return p.Ground.Index()
}
