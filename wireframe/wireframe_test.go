package wireframe

import (
	"testing"

	"github.com/galvanized-sgi/sgi/math/lin"
)

const tol = 1e-9

func aeq(a, b float64) bool { return approxEq(a, b, tol) }

func box() *Wireframe {
	w := New(1, "box")
	w.Vertices = []*WorldPoint{
		NewWorldPoint(0, 0, 0),
		NewWorldPoint(2, 0, 0),
		NewWorldPoint(2, 2, 0),
		NewWorldPoint(0, 2, 0),
	}
	w.Edges = [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}
	return w
}

func TestTranslateInverse(t *testing.T) {
	w := box()
	before := append([]*WorldPoint{}, w.Vertices...)
	orig := make([]WorldPoint, len(before))
	for i, v := range before {
		orig[i] = *v
	}
	w.Translate(3, -4, 5).Translate(-3, 4, -5)
	for i, v := range w.Vertices {
		if !aeq(v.X, orig[i].X) || !aeq(v.Y, orig[i].Y) || !aeq(v.Z, orig[i].Z) {
			t.Errorf("vertex %d: got %+v want %+v", i, v, orig[i])
		}
	}
}

func TestScalePreservesCentroid(t *testing.T) {
	w := box()
	c0 := w.Centroid()
	w.Scale(2.5)
	c1 := w.Centroid()
	if !aeq(c0.X, c1.X) || !aeq(c0.Y, c1.Y) || !aeq(c0.Z, c1.Z) {
		t.Errorf("centroid moved: got %+v want %+v", c1, c0)
	}
}

func TestRotateInverse(t *testing.T) {
	w := box()
	orig := make([]WorldPoint, len(w.Vertices))
	for i, v := range w.Vertices {
		orig[i] = *v
	}
	pivot := w.Centroid()
	w.Rotate(37, pivot, 0, 1).Rotate(-37, pivot, 0, 1)
	for i, v := range w.Vertices {
		if !aeq(v.X, orig[i].X) || !aeq(v.Y, orig[i].Y) || !aeq(v.Z, orig[i].Z) {
			t.Errorf("vertex %d: got %+v want %+v", i, v, orig[i])
		}
	}
}

func TestRotateNTimesIsIdentity(t *testing.T) {
	w := box()
	orig := make([]WorldPoint, len(w.Vertices))
	for i, v := range w.Vertices {
		orig[i] = *v
	}
	pivot := w.Centroid()
	const n = 12
	theta := 360.0 / n
	for i := 0; i < n; i++ {
		w.Rotate(theta, pivot, 1, 2)
	}
	const loose = 1e-6
	for i, v := range w.Vertices {
		if !approxEq(v.X, orig[i].X, loose) || !approxEq(v.Y, orig[i].Y, loose) || !approxEq(v.Z, orig[i].Z, loose) {
			t.Errorf("vertex %d: got %+v want %+v", i, v, orig[i])
		}
	}
}

func TestIsPointMark(t *testing.T) {
	w := New(2, "lone")
	w.Vertices = []*WorldPoint{NewWorldPoint(1, 1, 1)}
	if !w.IsPointMark() {
		t.Error("wireframe with no topology should be a point mark")
	}
	w2 := box()
	if w2.IsPointMark() {
		t.Error("wireframe with edges should not be a point mark")
	}
}

func TestTransformIdentity(t *testing.T) {
	w := box()
	orig := make([]WorldPoint, len(w.Vertices))
	for i, v := range w.Vertices {
		orig[i] = *v
	}
	w.Transform(lin.M4I)
	for i, v := range w.Vertices {
		if !v.Eq(&orig[i]) {
			t.Errorf("vertex %d changed under identity transform: got %+v want %+v", i, v, orig[i])
		}
	}
}

func TestControlPointsOutOfRange(t *testing.T) {
	w := box()
	_, bad, ok := w.ControlPoints([]int{0, 1, 99})
	if ok || bad != 99 {
		t.Errorf("expected out-of-range index 99, got ok=%v bad=%d", ok, bad)
	}
}
