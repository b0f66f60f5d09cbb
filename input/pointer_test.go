package input

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type fakeDevice struct {
	cursor   mgl32.Vec2
	outside  bool
	viewport mgl32.Vec2
	held     map[Action]bool
	scroll   mgl32.Vec2
	unit     ScrollUnit
	captures []bool
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		cursor:   mgl32.Vec2{400, 300},
		viewport: mgl32.Vec2{800, 600},
		held:     map[Action]bool{},
	}
}

func (d *fakeDevice) Cursor() (mgl32.Vec2, bool)       { return d.cursor, !d.outside }
func (d *fakeDevice) Viewport() mgl32.Vec2             { return d.viewport }
func (d *fakeDevice) Held(a Action) bool               { return d.held[a] }
func (d *fakeDevice) Scroll() (mgl32.Vec2, ScrollUnit) { return d.scroll, d.unit }
func (d *fakeDevice) CaptureCursor(c bool)             { d.captures = append(d.captures, c) }

var approx = cmpopts.EquateApprox(0, 1e-5)

func TestEdgeDirection(t *testing.T) {
	viewport := mgl32.Vec2{800, 600}
	diag := float32(1 / math.Sqrt2)

	cases := []struct {
		name   string
		cursor mgl32.Vec2
		margin float32
		want   mgl32.Vec2
		ok     bool
	}{
		{"center", mgl32.Vec2{400, 300}, 30, mgl32.Vec2{}, false},
		{"left", mgl32.Vec2{5, 300}, 30, mgl32.Vec2{-1, 0}, true},
		{"right", mgl32.Vec2{795, 300}, 30, mgl32.Vec2{1, 0}, true},
		{"top_is_forward", mgl32.Vec2{400, 2}, 30, mgl32.Vec2{0, 1}, true},
		{"bottom_is_back", mgl32.Vec2{400, 590}, 30, mgl32.Vec2{0, -1}, true},
		{"top_left_corner", mgl32.Vec2{1, 1}, 30, mgl32.Vec2{-diag, diag}, true},
		{"bottom_right_corner", mgl32.Vec2{799, 599}, 30, mgl32.Vec2{diag, -diag}, true},
		{"outside", mgl32.Vec2{-10, 300}, 30, mgl32.Vec2{}, false},
		{"disabled", mgl32.Vec2{0, 0}, 0, mgl32.Vec2{}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := EdgeDirection(c.cursor, viewport, c.margin)
			if ok != c.ok {
				t.Fatalf("expected ok=%v, got %v", c.ok, ok)
			}
			if diff := cmp.Diff(c.want, got, approx); diff != "" {
				t.Fatalf("direction mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPointerSourcePanPriority(t *testing.T) {
	opts := PollOptions{EdgePanMargin: 0.05}

	cases := []struct {
		name  string
		setup func(d *fakeDevice)
		move  mgl32.Vec2
		want  PanSource
	}{
		{
			name:  "edge_when_idle",
			setup: func(d *fakeDevice) { d.cursor = mgl32.Vec2{2, 300} },
			want:  PanEdge,
		},
		{
			name: "keys_suppress_edge",
			setup: func(d *fakeDevice) {
				d.cursor = mgl32.Vec2{2, 300}
				d.held[ActionPanForward] = true
			},
			want: PanKeys,
		},
		{
			name: "grab_suppresses_keys_and_edge",
			setup: func(d *fakeDevice) {
				d.cursor = mgl32.Vec2{2, 300}
				d.held[ActionPanForward] = true
				d.held[ActionGrab] = true
			},
			move: mgl32.Vec2{5, 0},
			want: PanGrab,
		},
		{
			name: "rotate_drag_disables_edge",
			setup: func(d *fakeDevice) {
				d.cursor = mgl32.Vec2{2, 300}
				d.held[ActionRotateDrag] = true
			},
			want: PanNone,
		},
		{
			name: "cursor_outside_window",
			setup: func(d *fakeDevice) {
				d.cursor = mgl32.Vec2{2, 300}
				d.outside = true
			},
			want: PanNone,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := newFakeDevice()
			c.setup(d)
			src := NewPointerSource(d, DefaultPointerSettings())
			src.Poll(opts)
			d.cursor = d.cursor.Add(c.move)

			in := src.Poll(opts)
			if got := in.PanSource(); got != c.want {
				t.Fatalf("expected %v, got %v (%+v)", c.want, got, in)
			}
			if c.want == PanGrab && in.Grab != c.move {
				t.Fatalf("expected grab delta %v, got %v", c.move, in.Grab)
			}
		})
	}
}

func TestPointerSourceRotateDrag(t *testing.T) {
	d := newFakeDevice()
	d.held[ActionRotateDrag] = true
	src := NewPointerSource(d, DefaultPointerSettings())

	first := src.Poll(PollOptions{})
	if first.RotateAngle != 0 {
		t.Fatalf("first poll has no previous cursor, got rotate %v", first.RotateAngle)
	}

	d.cursor = d.cursor.Add(mgl32.Vec2{400, 0})
	in := src.Poll(PollOptions{})
	want := float32(-math.Pi / 2)
	if math.Abs(float64(in.RotateAngle-want)) > 1e-5 {
		t.Fatalf("expected rotate %v, got %v", want, in.RotateAngle)
	}
	if len(d.captures) != 1 || !d.captures[0] {
		t.Fatalf("expected cursor capture while rotating, got %v", d.captures)
	}

	d.held[ActionRotateDrag] = false
	src.Poll(PollOptions{})
	if len(d.captures) != 2 || d.captures[1] {
		t.Fatalf("expected cursor release after rotating, got %v", d.captures)
	}
}

func TestPointerSourceWheel(t *testing.T) {
	cases := []struct {
		name   string
		scroll float32
		unit   ScrollUnit
		sens   float32
		want   float32
	}{
		{"line_up_zooms_in", 1, ScrollLines, 1, -1},
		{"line_down_zooms_out", -2, ScrollLines, 1, 2},
		{"sensitivity", 1, ScrollLines, 0.5, -0.5},
		{"pixels", 500, ScrollPixels, 1, -0.5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := newFakeDevice()
			d.scroll = mgl32.Vec2{0, c.scroll}
			d.unit = c.unit
			settings := DefaultPointerSettings()
			settings.ZoomSensitivity = c.sens

			in := NewPointerSource(d, settings).Poll(PollOptions{})
			if math.Abs(float64(in.ZoomStep-c.want)) > 1e-6 {
				t.Fatalf("expected zoom step %v, got %v", c.want, in.ZoomStep)
			}
		})
	}
}

func TestPointerSourceKeys(t *testing.T) {
	d := newFakeDevice()
	d.held[ActionPanForward] = true
	d.held[ActionPanRight] = true
	d.held[ActionRotateLeft] = true
	d.held[ActionPitchDown] = true
	settings := DefaultPointerSettings()
	settings.KeyRotate = 2

	in := NewPointerSource(d, settings).Poll(PollOptions{})
	diag := float32(1 / math.Sqrt2)
	want := FrameInput{
		Pan:      mgl32.Vec2{diag, diag},
		Rotate:   2,
		Pitch:    -1,
		Viewport: d.viewport,
	}
	if diff := cmp.Diff(want, in, approx); diff != "" {
		t.Fatalf("frame mismatch (-want +got):\n%s", diff)
	}
}

func TestActionParsing(t *testing.T) {
	for a := Action(0); a < actionCount; a++ {
		got, ok := ParseAction(a.String())
		if !ok || got != a {
			t.Fatalf("ParseAction(%q) = %v, %v", a.String(), got, ok)
		}
	}
	if _, ok := ParseAction("jump"); ok {
		t.Fatalf("unexpected action parsed")
	}
}
