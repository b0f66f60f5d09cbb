package entity

import (
	"fmt"

	"github.com/milk9111/rtscamera/camera"
	"github.com/milk9111/rtscamera/ecs"
	"github.com/milk9111/rtscamera/ecs/component"
	"github.com/milk9111/rtscamera/input"
	"github.com/milk9111/rtscamera/prefabs"
)

// NewCamera spawns a camera entity whose transform already holds the initial
// pose.
func NewCamera(w *ecs.World, cfg camera.Config, opts ...camera.Option) (ecs.Entity, error) {
	return newCamera(w, cfg, "", opts...)
}

// NewCameraFromPrefab loads the named camera prefab. The camera hot reloads
// when that file changes and a ConfigReloadSystem is running.
func NewCameraFromPrefab(w *ecs.World, name string, opts ...camera.Option) (ecs.Entity, error) {
	cfg, err := prefabs.LoadCameraConfig(name)
	if err != nil {
		return 0, fmt.Errorf("camera: load spec: %w", err)
	}
	return newCamera(w, cfg, name, opts...)
}

func newCamera(w *ecs.World, cfg camera.Config, configName string, opts ...camera.Option) (ecs.Entity, error) {
	cam, err := camera.New(cfg, opts...)
	if err != nil {
		return 0, fmt.Errorf("camera: new: %w", err)
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}

	pose := cam.Pose()
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: pose.Position,
		Rotation: pose.Orientation,
	}); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}

	if err := ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		Camera:     cam,
		ConfigName: configName,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	return e, nil
}

// AttachControls makes src drive the camera. Pass the same source to several
// cameras to drive them together.
func AttachControls(w *ecs.World, cam ecs.Entity, src input.Source) error {
	if err := ecs.Add(w, cam, component.ControlsComponent.Kind(), &component.Controls{
		Source:  src,
		Enabled: true,
	}); err != nil {
		return fmt.Errorf("camera: add controls: %w", err)
	}
	return nil
}

func AttachScript(w *ecs.World, cam ecs.Entity, path string) error {
	if err := ecs.Add(w, cam, component.CameraScriptComponent.Kind(), &component.CameraScript{Path: path}); err != nil {
		return fmt.Errorf("camera: add script: %w", err)
	}
	return nil
}

// LockOn makes the camera follow target until it is unlocked or target
// disappears.
func LockOn(w *ecs.World, cam, target ecs.Entity) error {
	if !ecs.Has(w, cam, component.CameraComponent.Kind()) {
		return fmt.Errorf("camera: lock %v: %w", cam, component.ErrEntityNotAlive)
	}
	if err := ecs.Add(w, cam, component.CameraLockComponent.Kind(), &component.CameraLock{Target: uint64(target)}); err != nil {
		return fmt.Errorf("camera: add lock: %w", err)
	}
	return nil
}

func Unlock(w *ecs.World, cam ecs.Entity) bool {
	return ecs.Remove(w, cam, component.CameraLockComponent.Kind())
}
