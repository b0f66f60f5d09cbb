package rtscamera

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rtscamera/camera"
	"github.com/milk9111/rtscamera/ecs"
	"github.com/milk9111/rtscamera/ecs/component"
	"github.com/milk9111/rtscamera/ecs/entity"
	"github.com/milk9111/rtscamera/input"
)

type noChanges struct{}

func (noChanges) Pending() ([]string, []error) { return nil, nil }

func TestInstallOrder(t *testing.T) {
	cases := []struct {
		name string
		opts Options
		want []string
	}{
		{"minimal", Options{}, []string{"Controls", "CameraScript", "Lock", "Ground", "Camera"}},
		{"full", Options{Changes: noChanges{}, OnEvent: func(ecs.CameraEvent) {}},
			[]string{"ConfigReload", "Controls", "CameraScript", "Lock", "Ground", "Camera", "Event"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			Install(w, c.opts)

			systems := w.Systems()
			if len(systems) != len(c.want) {
				t.Fatalf("expected %d systems, got %d", len(c.want), len(systems))
			}
			for i, s := range systems {
				got := fmt.Sprintf("%T", s)
				if got != "*system."+c.want[i]+"System" {
					t.Fatalf("system %d is %s, want %s", i, got, c.want[i])
				}
			}
		})
	}
}

func TestInstalledPipeline(t *testing.T) {
	w := ecs.NewWorld()
	var events []ecs.CameraEvent
	p := Install(w, Options{OnEvent: func(evt ecs.CameraEvent) { events = append(events, evt) }})

	if _, err := entity.NewBox(w, 40, 40, 1, mgl32.Vec3{}); err != nil {
		t.Fatal(err)
	}
	if _, err := entity.NewBox(w, 4, 4, 6, mgl32.Vec3{10, 0, 0}); err != nil {
		t.Fatal(err)
	}
	unit, err := entity.NewUnit(w, mgl32.Vec3{10, 0, 0})
	if err != nil {
		t.Fatal(err)
	}

	cfg := camera.DefaultConfig()
	cfg.DisableSmoothing = true
	cam, err := entity.NewCamera(w, cfg)
	if err != nil {
		t.Fatal(err)
	}
	src := &input.ActionSource{}
	if err := entity.AttachControls(w, cam, src); err != nil {
		t.Fatal(err)
	}

	w.Update(1.0 / 60)
	if h, ok := p.Terrain().HeightAt(10, 0); !ok || h != 6 {
		t.Fatalf("expected tall box indexed at 6, got %v ok=%v", h, ok)
	}

	c, _ := ecs.Get(w, cam, component.CameraComponent.Kind())
	if y := c.Camera.Actual().Focus.Y(); y != 1 {
		t.Fatalf("camera should rest on the base box at 1, got %v", y)
	}

	if err := entity.LockOn(w, cam, unit); err != nil {
		t.Fatal(err)
	}
	w.Update(1.0 / 60)
	focus := c.Camera.Actual().Focus
	if focus.X() != 10 || focus.Z() != 0 || focus.Y() != 6 {
		t.Fatalf("locked camera should sit on the tall box over the unit, got %v", focus)
	}

	ecs.DestroyEntity(w, unit)
	w.Update(1.0 / 60)
	if len(events) != 1 || events[0].Kind != ecs.CameraEventLockReleased || events[0].Target != unit {
		t.Fatalf("expected lock release event, got %v", events)
	}

	src.ZoomAxis = -1
	w.Update(1.0 / 60)
	if z := c.Camera.Actual().Zoom; z >= 1 {
		t.Fatalf("wheel up should zoom in, zoom=%v", z)
	}
	if src.ZoomAxis != 0 {
		t.Fatalf("wheel delta should be consumed")
	}
}
