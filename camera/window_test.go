package camera

import (
	"math"
	"testing"

	"github.com/galvanized-sgi/sgi/math/lin"
	"github.com/galvanized-sgi/sgi/wireframe"
)

func canonicalWindow(width, height int) *Window {
	pos := wireframe.NewWorldPoint(0, 0, 100)
	normal := lin.NewV3S(0, 0, -1)
	up := lin.NewV3S(0, 1, 0)
	focus := wireframe.NewWorldPoint(0, 0, 100-1000)
	return New(width, height, pos, normal, up, focus, 1, 5, 1, Parallel)
}

func TestParallelProjectionScenarioS5(t *testing.T) {
	w := canonicalWindow(800, 600)
	p := wireframe.NewWorldPoint(25, 40, 0)
	win := w.Project(p)
	if !lin.Aeq(win.X, 25) || !lin.Aeq(win.Y, 40) {
		t.Fatalf("window coords: got %+v want (25,40)", win)
	}
	vp := w.WorldToViewport(p)
	wantVp := wireframe.WindowPoint{X: 25 + 400, Y: 600 - (40 + 300)}
	if !lin.Aeq(vp.X, wantVp.X) || !lin.Aeq(vp.Y, wantVp.Y) {
		t.Fatalf("viewport coords: got %+v want %+v", vp, wantVp)
	}
	world := w.ViewportToWorld(vp)
	if !lin.Aeq(world.X, 25) || !lin.Aeq(world.Y, 40) || world.W != 1 {
		t.Fatalf("recovered world point: got %+v want x=25,y=40,w=1", world)
	}
}

func TestViewportWorldRoundTrip(t *testing.T) {
	w := canonicalWindow(640, 480)
	cases := []wireframe.WindowPoint{
		{X: 320, Y: 240}, {X: 10, Y: 10}, {X: 600, Y: 400}, {X: 0, Y: 479},
	}
	for _, vp := range cases {
		world := w.ViewportToWorld(vp)
		got := w.WorldToViewport(world)
		if !approxEq(got.X, vp.X, 1e-3) || !approxEq(got.Y, vp.Y, 1e-3) {
			t.Errorf("round trip failed for %+v: got %+v", vp, got)
		}
	}
}

func approxEq(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestOrthonormalAfterNavigation(t *testing.T) {
	w := canonicalWindow(800, 600)
	w.Rotate(42, 0, 1)
	w.MoveForward()
	w.Rotate(-15, 1, 2)
	w.ZoomIn()
	w.MoveSidewaysRight()
	if !w.OrthonormalBasis(1e-6) {
		t.Errorf("basis not orthonormal after navigation: right=%+v up=%+v normal=%+v", w.Right, w.Up, w.Normal)
	}
}

func TestRotationPreservesOrthonormalityScenarioS6(t *testing.T) {
	w := canonicalWindow(800, 600)
	for i := 0; i < 5; i++ {
		w.Rotate(37, 1, 2)
	}
	if math.Abs(w.Right.Dot(w.Up)) > 1e-6 || math.Abs(w.Right.Dot(w.Normal)) > 1e-6 || math.Abs(w.Up.Dot(w.Normal)) > 1e-6 {
		t.Errorf("basis not orthogonal: right=%+v up=%+v normal=%+v", w.Right, w.Up, w.Normal)
	}
	for _, v := range []*lin.V3{w.Right, w.Up, w.Normal} {
		l := v.Len()
		if l < 1-1e-6 || l > 1+1e-6 {
			t.Errorf("vector %+v not unit length: %f", v, l)
		}
	}
}

func TestParallelProjectionIsAffineInRightUp(t *testing.T) {
	w := canonicalWindow(800, 600)
	p := wireframe.NewWorldPoint(13, -7, 0)
	win := w.Project(p)
	v := lin.NewV3S(p.X-w.Position.X, p.Y-w.Position.Y, p.Z-w.Position.Z)
	want := wireframe.WindowPoint{X: v.Dot(w.Right), Y: v.Dot(w.Up)}
	if !lin.Aeq(win.X, want.X) || !lin.Aeq(win.Y, want.Y) {
		t.Errorf("got %+v want %+v", win, want)
	}
}

func TestZoomClamped(t *testing.T) {
	w := canonicalWindow(800, 600)
	w.Zoom = MaxZoom
	w.ZoomIn()
	if w.Zoom != MaxZoom {
		t.Errorf("zoom should clamp at max: got %f", w.Zoom)
	}
	w.Zoom = MinZoom
	w.ZoomOut()
	if w.Zoom != MinZoom {
		t.Errorf("zoom should clamp at min: got %f", w.Zoom)
	}
}

func TestClickInWindow(t *testing.T) {
	w := canonicalWindow(100, 100)
	w.Padding = 5
	if !w.ClickInWindow(wireframe.WindowPoint{X: 50, Y: 50}) {
		t.Error("center should be inside padded window")
	}
	if w.ClickInWindow(wireframe.WindowPoint{X: 2, Y: 50}) {
		t.Error("point inside padding should be outside")
	}
}

func TestDegenerateUpHintFallsBackToWorldAxes(t *testing.T) {
	pos := wireframe.NewWorldPoint(0, 0, 0)
	normal := lin.NewV3S(0, 0, 1)
	up := lin.NewV3S(0, 0, 5) // colinear with normal
	focus := wireframe.NewWorldPoint(0, 0, -1000)
	w := New(100, 100, pos, normal, up, focus, 1, 1, 1, Parallel)
	if !w.Right.Eq(lin.NewV3S(1, 0, 0)) || !w.Up.Eq(lin.NewV3S(0, 1, 0)) {
		t.Errorf("expected fallback basis, got right=%+v up=%+v", w.Right, w.Up)
	}
}

func TestPerspectiveDegenerateReturnsInfinity(t *testing.T) {
	pos := wireframe.NewWorldPoint(0, 0, 100)
	normal := lin.NewV3S(0, 0, -1)
	up := lin.NewV3S(0, 1, 0)
	focus := wireframe.NewWorldPoint(0, 0, 100) // focus == position: degenerate
	w := New(800, 600, pos, normal, up, focus, 1, 1, 1, Perspective)
	p := wireframe.NewWorldPoint(10, 10, 0)
	got := w.Project(p)
	if !math.IsInf(got.X, 1) || !math.IsInf(got.Y, 1) {
		t.Errorf("expected infinity sentinel, got %+v", got)
	}
}
