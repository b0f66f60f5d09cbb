package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
)

func TestComposeGeometry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinDistance, cfg.MaxDistance = 10, 10
	focus := mgl32.Vec3{3, 1, -4}

	cases := []struct {
		name     string
		yaw      float32
		pitch    float32
		position mgl32.Vec3
		forward  mgl32.Vec3
		up       mgl32.Vec3
	}{
		{
			name:     "top_down",
			position: mgl32.Vec3{3, 11, -4},
			forward:  mgl32.Vec3{0, -1, 0},
			up:       mgl32.Vec3{0, 0, -1},
		},
		{
			name:     "top_down_yawed",
			yaw:      math.Pi / 2,
			position: mgl32.Vec3{3, 11, -4},
			forward:  mgl32.Vec3{0, -1, 0},
			up:       mgl32.Vec3{-1, 0, 0},
		},
		{
			name:     "horizon",
			pitch:    math.Pi / 2,
			position: mgl32.Vec3{3, 1, 6},
			forward:  mgl32.Vec3{0, 0, -1},
			up:       mgl32.Vec3{0, 1, 0},
		},
		{
			name:     "forty_five",
			pitch:    math.Pi / 4,
			position: mgl32.Vec3{3, 1 + 10/math.Sqrt2, -4 + 10/math.Sqrt2},
			forward:  mgl32.Vec3{0, -1 / math.Sqrt2, -1 / math.Sqrt2},
			up:       mgl32.Vec3{0, 1 / math.Sqrt2, -1 / math.Sqrt2},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pose := Compose(cfg, State{Focus: focus, Yaw: c.yaw, Pitch: c.pitch})

			if diff := cmp.Diff(c.position, pose.Position, approx); diff != "" {
				t.Fatalf("position mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(c.forward, pose.Forward(), approx); diff != "" {
				t.Fatalf("forward mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(c.up, pose.Up(), approx); diff != "" {
				t.Fatalf("up mismatch (-want +got):\n%s", diff)
			}
			if d := pose.Position.Sub(focus).Len(); !near(d, 10, 1e-4) {
				t.Fatalf("expected distance 10, got %v", d)
			}
		})
	}
}

func TestViewMatrixCentersFocus(t *testing.T) {
	cfg := DefaultConfig()
	s := State{Focus: mgl32.Vec3{12, 3, 7}, Zoom: 0.4, Yaw: 2.1, Pitch: 0.6}
	pose := Compose(cfg, s)

	eye := pose.View().Mul4x1(s.Focus.Vec4(1))
	want := mgl32.Vec4{0, 0, -pose.Distance, 1}
	if diff := cmp.Diff(want, eye, approx); diff != "" {
		t.Fatalf("focus should sit on the view axis (-want +got):\n%s", diff)
	}
}

func TestViewDirectionMatchesPanAxes(t *testing.T) {
	for _, yaw := range []float32{0, 0.7, 2, 4.5} {
		_, forward := PanAxes(yaw)
		dir := ViewDirection(yaw, math.Pi/2)
		if diff := cmp.Diff(forward, dir, approx); diff != "" {
			t.Fatalf("yaw %v: horizon view should match pan forward (-want +got):\n%s", yaw, diff)
		}
	}
}
