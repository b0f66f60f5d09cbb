package system

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/milk9111/rtscamera/camera"
	"github.com/milk9111/rtscamera/ecs"
	"github.com/milk9111/rtscamera/ecs/component"
	"github.com/milk9111/rtscamera/prefabs"
)

// ChangeSource reports prefab files changed since the last call.
// *prefabs.Watcher implements it.
type ChangeSource interface {
	Pending() (changed []string, errs []error)
}

// ConfigReloadSystem applies edited camera configs and marks edited scripts
// for recompilation. A config that fails to load or validate is logged and
// the camera keeps its current one.
type ConfigReloadSystem struct {
	changes ChangeSource
	load    func(name string) (camera.Config, error)
}

func NewConfigReloadSystem(changes ChangeSource) *ConfigReloadSystem {
	return &ConfigReloadSystem{changes: changes, load: prefabs.LoadCameraConfig}
}

func (s *ConfigReloadSystem) Update(w *ecs.World) {
	if w == nil || s.changes == nil {
		return
	}

	changed, errs := s.changes.Pending()
	for _, err := range errs {
		log.Printf("prefabs: watch error: %v", err)
	}
	for _, path := range changed {
		if strings.EqualFold(filepath.Ext(path), ".tengo") {
			s.reloadScripts(w, path)
			continue
		}
		s.reloadConfigs(w, path)
	}
}

func (s *ConfigReloadSystem) reloadConfigs(w *ecs.World, path string) {
	ecs.ForEach(w, component.CameraComponent.Kind(), func(e ecs.Entity, cam *component.Camera) {
		if cam.Camera == nil || !prefabs.SameFile(path, cam.ConfigName) {
			return
		}

		cfg, err := s.load(cam.ConfigName)
		if err == nil {
			err = cam.Camera.ReplaceConfig(cfg)
		}
		if err != nil {
			log.Printf("camera: entity=%v reload %s error: %v", e, cam.ConfigName, err)
			w.Events().PushCameraEvent(ecs.CameraEvent{Camera: e, Kind: ecs.CameraEventConfigRejected, Err: err})
			return
		}

		log.Printf("camera: entity=%v reloaded %s", e, cam.ConfigName)
		w.Events().PushCameraEvent(ecs.CameraEvent{Camera: e, Kind: ecs.CameraEventConfigReloaded})
	})
}

func (s *ConfigReloadSystem) reloadScripts(w *ecs.World, path string) {
	ecs.ForEach(w, component.CameraScriptComponent.Kind(), func(e ecs.Entity, script *component.CameraScript) {
		if !prefabs.SameFile(path, script.Path) {
			return
		}
		script.Revision++
		script.Disabled = false
		log.Printf("camera: entity=%v script %s changed, recompiling", e, script.Path)
	})
}
