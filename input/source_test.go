package input

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestActionSource(t *testing.T) {
	t.Run("grab_mode", func(t *testing.T) {
		a := &ActionSource{
			Pan:      mgl32.Vec2{1, 0},
			GrabMode: true,
			GrabAxis: mgl32.Vec2{-4, 2},
			Viewport: mgl32.Vec2{800, 600},
		}
		in := a.Poll(PollOptions{})
		if in.PanSource() != PanGrab || in.Grab != (mgl32.Vec2{-4, 2}) {
			t.Fatalf("expected grab pan, got %+v", in)
		}
		if in.Pan != (mgl32.Vec2{}) {
			t.Fatalf("grab should suppress pan, got %v", in.Pan)
		}
	})

	t.Run("rotate_mode", func(t *testing.T) {
		a := &ActionSource{RotateMode: true, RotateAxis: -200, Viewport: mgl32.Vec2{800, 600}}
		in := a.Poll(PollOptions{})
		if math.Abs(float64(in.RotateAngle-math.Pi/4)) > 1e-5 {
			t.Fatalf("expected rotate π/4, got %v", in.RotateAngle)
		}
	})

	t.Run("no_viewport_uses_fractions", func(t *testing.T) {
		a := &ActionSource{RotateMode: true, RotateAxis: 0.5, GrabMode: true, GrabAxis: mgl32.Vec2{0.25, 0}}
		in := a.Poll(PollOptions{})
		if math.Abs(float64(in.RotateAngle+math.Pi/2)) > 1e-5 {
			t.Fatalf("half-width drag should turn a quarter revolution, got %v", in.RotateAngle)
		}
		if in.Viewport != (mgl32.Vec2{1, 1}) || in.Grab != (mgl32.Vec2{0.25, 0}) {
			t.Fatalf("expected grab measured in viewport fractions, got %+v", in)
		}
	})

	t.Run("poll_viewport_overrides_field", func(t *testing.T) {
		a := &ActionSource{RotateMode: true, RotateAxis: 400, Viewport: mgl32.Vec2{100, 100}}
		in := a.Poll(PollOptions{Viewport: mgl32.Vec2{800, 600}})
		if math.Abs(float64(in.RotateAngle+math.Pi/2)) > 1e-5 {
			t.Fatalf("expected rotate -π/2 against 800px, got %v", in.RotateAngle)
		}
	})

	t.Run("idle_source_reports_no_viewport", func(t *testing.T) {
		a := &ActionSource{Pan: mgl32.Vec2{1, 0}}
		if in := a.Poll(PollOptions{}); in.Viewport != (mgl32.Vec2{}) {
			t.Fatalf("expected no viewport, got %v", in.Viewport)
		}
	})

	t.Run("rotate_axis_ignored_without_mode", func(t *testing.T) {
		a := &ActionSource{RotateAxis: 100, Viewport: mgl32.Vec2{800, 600}}
		if in := a.Poll(PollOptions{}); in.RotateAngle != 0 {
			t.Fatalf("expected no rotation, got %v", in.RotateAngle)
		}
	})

	t.Run("consume_clears_deltas_only", func(t *testing.T) {
		a := &ActionSource{
			Pan:        mgl32.Vec2{0, 1},
			ZoomAxis:   2,
			GrabMode:   true,
			GrabAxis:   mgl32.Vec2{1, 1},
			RotateAxis: 3,
		}
		a.Consume()
		if a.ZoomAxis != 0 || a.RotateAxis != 0 || a.GrabAxis != (mgl32.Vec2{}) {
			t.Fatalf("expected deltas cleared, got %+v", a)
		}
		if a.Pan != (mgl32.Vec2{0, 1}) || !a.GrabMode {
			t.Fatalf("expected held values kept, got %+v", a)
		}
	})

	t.Run("nil_source", func(t *testing.T) {
		var a *ActionSource
		if in := a.Poll(PollOptions{}); in != (FrameInput{}) {
			t.Fatalf("expected empty frame, got %+v", in)
		}
	})
}

func TestSourcesMergeAndConsume(t *testing.T) {
	actions := &ActionSource{ZoomAxis: 1}
	fixed := SourceFunc(func(PollOptions) FrameInput {
		return FrameInput{Rotate: 0.5}
	})

	srcs := Sources{actions, fixed, nil}
	in := srcs.Poll(PollOptions{})
	if in.ZoomStep != 1 || in.Rotate != 0.5 {
		t.Fatalf("expected merged axes, got %+v", in)
	}

	srcs.Consume()
	if in := srcs.Poll(PollOptions{}); in.ZoomStep != 0 {
		t.Fatalf("expected consumed zoom, got %v", in.ZoomStep)
	}
}
