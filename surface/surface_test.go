package surface

import (
	"math"
	"testing"

	"github.com/galvanized-sgi/sgi/wireframe"
)

func wp(x, y float64) wireframe.WindowPoint { return wireframe.WindowPoint{X: x, Y: y} }

func aeq(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

// flatGrid builds a 4x4 row-major control grid with u along rows (x) and v
// along columns (y), independent of each other, so corners are exactly
// known in both (u,v) parameter space and (x,y) control coordinate space.
func flatGrid() []wireframe.WindowPoint {
	pts := make([]wireframe.WindowPoint, 0, 16)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			pts = append(pts, wp(float64(i)*10, float64(j)*10))
		}
	}
	return pts
}

func TestBezierSurfaceCorners(t *testing.T) {
	pts := flatGrid()
	patches, err := Evaluate(pts, 4, 4, Bezier, BlendingFunctions, 8)
	if err != nil {
		t.Fatal(err)
	}
	patch := patches[0]
	corners := map[string]struct {
		got  wireframe.WindowPoint
		want wireframe.WindowPoint
	}{
		"(0,0)": {patch[0][0], pts[0*4+0]},
		"(1,0)": {patch[len(patch)-1][0], pts[3*4+0]},
		"(0,1)": {patch[0][len(patch[0])-1], pts[0*4+3]},
		"(1,1)": {patch[len(patch)-1][len(patch[0])-1], pts[3*4+3]},
	}
	for name, c := range corners {
		if !aeq(c.got.X, c.want.X) || !aeq(c.got.Y, c.want.Y) {
			t.Errorf("corner %s: got %+v want %+v", name, c.got, c.want)
		}
	}
}

func TestDegreeConstraintViolations(t *testing.T) {
	pts := make([]wireframe.WindowPoint, 9) // 3x3, not a multiple of 4
	if _, err := Evaluate(pts, 3, 3, Bezier, BlendingFunctions, 4); err == nil {
		t.Error("expected degree constraint violation for 3x3 Bezier grid")
	}
	if _, err := Evaluate(pts, 3, 3, BSpline, ForwardDifferences, 4); err == nil {
		t.Error("expected degree constraint violation for 3x3 BSpline grid")
	}
	if _, err := Evaluate(make([]wireframe.WindowPoint, 5), 4, 4, Bezier, BlendingFunctions, 4); err == nil {
		t.Error("expected control-point count mismatch error")
	}
}

func TestForwardDifferencesAgreeWithBlending(t *testing.T) {
	pts := make([]wireframe.WindowPoint, 0, 16)
	vals := []float64{0, 3, 9, 2, 1, 8, 7, 4, 6, 5, 0, 3, 9, 1, 2, 6}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			pts = append(pts, wp(float64(i)*4+float64(j), vals[i*4+j]))
		}
	}
	steps := 10
	blend, err := Evaluate(pts, 4, 4, Bezier, BlendingFunctions, steps)
	if err != nil {
		t.Fatal(err)
	}
	fd, err := Evaluate(pts, 4, 4, Bezier, ForwardDifferences, steps)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i <= steps; i++ {
		for j := 0; j <= steps; j++ {
			b, f := blend[0][i][j], fd[0][i][j]
			if !aeq(b.X, f.X) || !aeq(b.Y, f.Y) {
				t.Errorf("sample (%d,%d): blending %+v vs forward-diff %+v", i, j, b, f)
			}
		}
	}
}

func TestBSplinePatchCount(t *testing.T) {
	pts := make([]wireframe.WindowPoint, 25) // 5x5 grid -> overlapping windows
	patches, err := Evaluate(pts, 5, 5, BSpline, BlendingFunctions, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(patches) != 4 { // (5-4+1)^2 = 4
		t.Errorf("expected 4 overlapping BSpline patches, got %d", len(patches))
	}
}
