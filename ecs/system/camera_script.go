package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/rtscamera/camera"
	"github.com/milk9111/rtscamera/ecs"
	"github.com/milk9111/rtscamera/ecs/component"
	"github.com/milk9111/rtscamera/prefabs"
)

// Globals a camera script reads. They hold the camera's target state.
var cameraScriptInputs = []string{"dt", "elapsed", "focus_x", "focus_y", "focus_z", "zoom", "yaw", "pitch"}

// Globals a camera script may assign with =. Outputs left unassigned in a
// frame leave the matching target alone.
var (
	cameraScriptTargets = []string{"target_x", "target_z", "target_zoom", "target_yaw", "target_pitch"}
	cameraScriptOutputs = append(append([]string(nil), cameraScriptTargets...), "snap")
)

type cameraScriptRuntime struct {
	path     string
	revision int
	compiled *tengo.Compiled
}

// CameraScriptSystem runs a tengo script per scripted camera every frame. A
// script that fails to load, compile or run is logged once and disabled until
// its file changes.
type CameraScriptSystem struct {
	ground camera.HeightSampler
	cache  map[ecs.Entity]*cameraScriptRuntime
	load   func(path string) ([]byte, error)
}

func NewCameraScriptSystem(ground camera.HeightSampler) *CameraScriptSystem {
	return &CameraScriptSystem{
		ground: ground,
		cache:  map[ecs.Entity]*cameraScriptRuntime{},
		load:   prefabs.LoadScript,
	}
}

func (s *CameraScriptSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	active := map[ecs.Entity]struct{}{}
	ecs.ForEach2(w, component.CameraScriptComponent.Kind(), component.CameraComponent.Kind(), func(e ecs.Entity, script *component.CameraScript, cam *component.Camera) {
		if script.Disabled || cam.Camera == nil {
			return
		}
		active[e] = struct{}{}

		rt, err := s.runtime(e, script)
		if err == nil {
			err = rt.run(w, e, cam.Camera, s.ground)
		}
		if err != nil {
			log.Printf("camera: entity=%v script %s error: %v", e, script.Path, err)
			script.Disabled = true
			delete(s.cache, e)
			w.Events().PushCameraEvent(ecs.CameraEvent{Camera: e, Kind: ecs.CameraEventScriptFailed, Err: err})
		}
	})

	for e := range s.cache {
		if _, ok := active[e]; !ok {
			delete(s.cache, e)
		}
	}
}

func (s *CameraScriptSystem) runtime(e ecs.Entity, script *component.CameraScript) (*cameraScriptRuntime, error) {
	if strings.TrimSpace(script.Path) == "" {
		return nil, fmt.Errorf("empty script path")
	}
	if rt, ok := s.cache[e]; ok && rt.path == script.Path && rt.revision == script.Revision {
		return rt, nil
	}

	src, err := s.load(script.Path)
	if err != nil {
		return nil, err
	}
	compiled, err := compileCameraScript(src)
	if err != nil {
		return nil, err
	}

	rt := &cameraScriptRuntime{path: script.Path, revision: script.Revision, compiled: compiled}
	s.cache[e] = rt
	return rt, nil
}

func compileCameraScript(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)
	for _, name := range cameraScriptInputs {
		_ = script.Add(name, 0.0)
	}
	for _, name := range cameraScriptOutputs {
		_ = script.Add(name, nil)
	}
	_ = script.Add("engine", &tengo.ImmutableMap{Value: map[string]tengo.Object{}})

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return script.Compile()
}

func (rt *cameraScriptRuntime) run(w *ecs.World, e ecs.Entity, cam *camera.Camera, ground camera.HeightSampler) error {
	target := cam.Target()
	inputs := map[string]any{
		"dt":      float64(w.DeltaTime()),
		"elapsed": w.Elapsed(),
		"focus_x": float64(target.Focus.X()),
		"focus_y": float64(target.Focus.Y()),
		"focus_z": float64(target.Focus.Z()),
		"zoom":    float64(target.Zoom),
		"yaw":     float64(target.Yaw),
		"pitch":   float64(target.Pitch),
	}
	for _, name := range cameraScriptInputs {
		if err := rt.compiled.Set(name, inputs[name]); err != nil {
			return err
		}
	}
	for _, name := range cameraScriptOutputs {
		if err := rt.compiled.Set(name, nil); err != nil {
			return err
		}
	}
	if err := rt.compiled.Set("engine", buildCameraScriptEngine(e, cam, ground)); err != nil {
		return err
	}

	if err := rt.compiled.Run(); err != nil {
		return err
	}
	return rt.apply(cam)
}

func (rt *cameraScriptRuntime) apply(cam *camera.Camera) error {
	outputs := make(map[string]float32, len(cameraScriptTargets))
	for _, name := range cameraScriptTargets {
		v := rt.compiled.Get(name)
		if v.IsUndefined() {
			continue
		}
		f, ok := tengo.ToFloat64(v.Object())
		if !ok {
			return fmt.Errorf("%s must be a number, got %s", name, v.Object().TypeName())
		}
		outputs[name] = float32(f)
	}

	x, hasX := outputs["target_x"]
	z, hasZ := outputs["target_z"]
	if hasX || hasZ {
		focus := cam.Target().Focus
		if !hasX {
			x = focus.X()
		}
		if !hasZ {
			z = focus.Z()
		}
		cam.SetTargetFocus(x, z)
	}
	if zoom, ok := outputs["target_zoom"]; ok {
		cam.SetTargetZoom(zoom)
	}
	if yaw, ok := outputs["target_yaw"]; ok {
		cam.SetTargetYaw(yaw)
	}
	if pitch, ok := outputs["target_pitch"]; ok {
		cam.SetTargetPitch(pitch)
	}
	if snap := rt.compiled.Get("snap"); !snap.IsUndefined() && snap.Bool() {
		cam.Snap()
	}
	return nil
}

func buildCameraScriptEngine(e ecs.Entity, cam *camera.Camera, ground camera.HeightSampler) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["ground_height"] = &tengo.UserFunction{Name: "ground_height", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, okX := tengo.ToFloat64(args[0])
		z, okZ := tengo.ToFloat64(args[1])
		if !okX || !okZ {
			return nil, tengo.ErrInvalidArgumentType{Name: "x, z", Expected: "float", Found: args[0].TypeName()}
		}
		h := cam.Config().DefaultHeight
		if ground != nil {
			if sampled, ok := ground.HeightAt(float32(x), float32(z)); ok {
				h = sampled
			}
		}
		return &tengo.Float{Value: float64(h)}, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, arg := range args {
			parts = append(parts, objectAsString(arg))
		}
		log.Printf("camera: entity=%v script: %s", e, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	values["locked"] = &tengo.UserFunction{Name: "locked", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if cam.Locked() {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
