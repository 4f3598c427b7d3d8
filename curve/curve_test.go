package curve

import (
	"math"
	"testing"

	"github.com/galvanized-sgi/sgi/wireframe"
)

func wp(x, y float64) wireframe.WindowPoint { return wireframe.WindowPoint{X: x, Y: y} }

func aeq(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestBezierLineDegree2(t *testing.T) {
	ctrl := []wireframe.WindowPoint{wp(0, 0), wp(10, 10)}
	out, err := Evaluate(ctrl, Bezier, 2, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 5 {
		t.Fatalf("expected 5 samples, got %d", len(out))
	}
	for i, p := range out {
		want := wp(float64(i)*2.5, float64(i)*2.5)
		if !aeq(p.X, want.X) || !aeq(p.Y, want.Y) {
			t.Errorf("sample %d: got %+v want %+v", i, p, want)
		}
	}
}

func TestBezierEndpoints(t *testing.T) {
	ctrl := []wireframe.WindowPoint{wp(0, 0), wp(5, 20), wp(15, 20), wp(20, 0)}
	out, err := Evaluate(ctrl, Bezier, 4, 8)
	if err != nil {
		t.Fatal(err)
	}
	if !aeq(out[0].X, ctrl[0].X) || !aeq(out[0].Y, ctrl[0].Y) {
		t.Errorf("t=0 sample %+v != first control point %+v", out[0], ctrl[0])
	}
	last := out[len(out)-1]
	lastCtrl := ctrl[len(ctrl)-1]
	if !aeq(last.X, lastCtrl.X) || !aeq(last.Y, lastCtrl.Y) {
		t.Errorf("t=1 sample %+v != last control point %+v", last, lastCtrl)
	}
}

func TestBezierCubicScenarioS3(t *testing.T) {
	ctrl := []wireframe.WindowPoint{wp(0, 0), wp(0, 100), wp(100, 100), wp(100, 0)}
	out, err := Evaluate(ctrl, Bezier, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	want := []wireframe.WindowPoint{wp(0, 0), wp(15.625, 56.25), wp(50, 75), wp(84.375, 56.25), wp(100, 0)}
	if len(out) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(out))
	}
	for i := range want {
		if !aeq(out[i].X, want[i].X) || !aeq(out[i].Y, want[i].Y) {
			t.Errorf("sample %d: got %+v want %+v", i, out[i], want[i])
		}
	}
}

func TestBSplineRequiresFourPoints(t *testing.T) {
	ctrl := []wireframe.WindowPoint{wp(0, 0), wp(1, 1), wp(2, 2)}
	if _, err := Evaluate(ctrl, BSpline, 4, 10); err == nil {
		t.Error("expected insufficient control points error")
	}
}

func TestBSplineForwardDifferencesScenarioS4(t *testing.T) {
	ctrl := []wireframe.WindowPoint{wp(0, 0), wp(0, 10), wp(10, 10), wp(10, 0)}
	out, err := Evaluate(ctrl, BSpline, 4, 10)
	if err != nil {
		t.Fatal(err)
	}
	first := out[0]
	if !aeq(first.X, 5.0/3) || !aeq(first.Y, 25.0/3) {
		t.Errorf("first sample: got %+v want (%.6f, %.6f)", first, 5.0/3, 25.0/3)
	}
	last := out[len(out)-1]
	if !aeq(last.X, 25.0/3) || !aeq(last.Y, 25.0/3) {
		t.Errorf("last sample: got %+v want (%.6f, %.6f)", last, 25.0/3, 25.0/3)
	}

	minX, maxX, minY, maxY := ctrl[0].X, ctrl[0].X, ctrl[0].Y, ctrl[0].Y
	for _, c := range ctrl {
		minX, maxX = math.Min(minX, c.X), math.Max(maxX, c.X)
		minY, maxY = math.Min(minY, c.Y), math.Max(maxY, c.Y)
	}
	for _, p := range out {
		if p.X < minX-1e-6 || p.X > maxX+1e-6 || p.Y < minY-1e-6 || p.Y > maxY+1e-6 {
			t.Errorf("sample %+v escapes the control polygon's convex hull bounds", p)
		}
	}
}

// referenceBSplineBlending evaluates the same cubic uniform B-spline
// segment via direct blending-function evaluation (the Bézier-like basis
// applied to M_B), used to cross-check the forward-difference path.
func referenceBSplineBlending(ctrl []wireframe.WindowPoint, n int) []wireframe.WindowPoint {
	var out []wireframe.WindowPoint
	first := true
	for start := 0; start+4 <= len(ctrl); start++ {
		window := ctrl[start : start+4]
		gx := [4]float64{window[0].X, window[1].X, window[2].X, window[3].X}
		gy := [4]float64{window[0].Y, window[1].Y, window[2].Y, window[3].Y}
		cx := matVec(mB, gx)
		cy := matVec(mB, gy)
		seg := make([]wireframe.WindowPoint, 0, n+1)
		for i := 0; i <= n; i++ {
			t := float64(i) / float64(n)
			tv := [4]float64{t * t * t, t * t, t, 1}
			var x, y float64
			for k := 0; k < 4; k++ {
				x += tv[k] * cx[k]
				y += tv[k] * cy[k]
			}
			seg = append(seg, wireframe.WindowPoint{X: x, Y: y})
		}
		if !first {
			seg = seg[1:]
		}
		out = append(out, seg...)
		first = false
	}
	return out
}

func TestBSplineForwardDifferencesAgreeWithBlending(t *testing.T) {
	ctrl := []wireframe.WindowPoint{wp(0, 0), wp(2, 8), wp(8, 10), wp(12, 2), wp(16, -4)}
	fd, err := Evaluate(ctrl, BSpline, 4, 20)
	if err != nil {
		t.Fatal(err)
	}
	blend := referenceBSplineBlending(ctrl, 20)
	if len(fd) != len(blend) {
		t.Fatalf("length mismatch: forward-diff %d vs blending %d", len(fd), len(blend))
	}
	for i := range fd {
		if !aeq(fd[i].X, blend[i].X) || !aeq(fd[i].Y, blend[i].Y) {
			t.Errorf("sample %d diverges: forward-diff %+v vs blending %+v", i, fd[i], blend[i])
		}
	}
}
