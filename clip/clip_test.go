package clip

import (
	"math"
	"testing"

	"github.com/galvanized-sgi/sgi/wireframe"
)

func wp(x, y float64) wireframe.WindowPoint { return wireframe.WindowPoint{X: x, Y: y} }

func aeq(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestLineClipScenarioS1(t *testing.T) {
	r := Rect{0, 0, 100, 100}
	ns, ne, ok := Line(CohenSutherland, r, wp(-50, 50), wp(150, 50))
	if !ok {
		t.Fatal("expected line to be retained")
	}
	if !aeq(ns.X, 0) || !aeq(ns.Y, 50) || !aeq(ne.X, 100) || !aeq(ne.Y, 50) {
		t.Errorf("got (%v,%v)-(%v,%v) want (0,50)-(100,50)", ns.X, ns.Y, ne.X, ne.Y)
	}
}

func TestCohenSutherlandAndLiangBarskyAgree(t *testing.T) {
	r := Rect{0, 0, 100, 100}
	cases := [][2]wireframe.WindowPoint{
		{wp(-50, 50), wp(150, 50)},
		{wp(10, 10), wp(90, 90)},
		{wp(-10, -10), wp(110, 110)},
		{wp(50, -20), wp(50, 120)},
	}
	for _, c := range cases {
		cs0, cs1, csOk := Line(CohenSutherland, r, c[0], c[1])
		lb0, lb1, lbOk := Line(LiangBarsky, r, c[0], c[1])
		if csOk != lbOk {
			t.Fatalf("ok mismatch for %+v: cs=%v lb=%v", c, csOk, lbOk)
		}
		if !csOk {
			continue
		}
		if !aeq(cs0.X, lb0.X) || !aeq(cs0.Y, lb0.Y) || !aeq(cs1.X, lb1.X) || !aeq(cs1.Y, lb1.Y) {
			t.Errorf("endpoints differ for %+v: cs=(%v,%v) lb=(%v,%v)", c, cs0, cs1, lb0, lb1)
		}
	}
}

func TestLineFullyOutsideRejected(t *testing.T) {
	r := Rect{0, 0, 100, 100}
	_, _, csOk := Line(CohenSutherland, r, wp(-50, -50), wp(-10, -10))
	_, _, lbOk := Line(LiangBarsky, r, wp(-50, -50), wp(-10, -10))
	if csOk || lbOk {
		t.Error("expected both algorithms to reject a fully outside line")
	}
}

func TestPolygonClipScenarioS2(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	poly := []wireframe.WindowPoint{wp(-2, 2), wp(2, 12), wp(12, 8), wp(8, -2)}
	out, ok := Polygon(r, poly)
	if !ok {
		t.Fatal("expected polygon to survive clipping")
	}
	if len(out) < 6 {
		t.Errorf("expected at least 6 vertices, got %d: %+v", len(out), out)
	}
	for _, p := range out {
		if p.X < -1e-6 || p.X > 10+1e-6 || p.Y < -1e-6 || p.Y > 10+1e-6 {
			t.Errorf("vertex %+v outside clip rectangle", p)
		}
	}
}

func TestPolygonEntirelyInsideUnchanged(t *testing.T) {
	r := Rect{0, 0, 100, 100}
	poly := []wireframe.WindowPoint{wp(10, 10), wp(90, 10), wp(90, 90), wp(10, 90)}
	out, ok := Polygon(r, poly)
	if !ok {
		t.Fatal("expected polygon retained")
	}
	if len(out) != len(poly) {
		t.Fatalf("got %d vertices, want %d", len(out), len(poly))
	}
	for i := range poly {
		if !aeq(out[i].X, poly[i].X) || !aeq(out[i].Y, poly[i].Y) {
			t.Errorf("vertex %d: got %+v want %+v", i, out[i], poly[i])
		}
	}
}

func TestPolygonClipIdempotent(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	poly := []wireframe.WindowPoint{wp(-2, 2), wp(2, 12), wp(12, 8), wp(8, -2)}
	once, ok := Polygon(r, poly)
	if !ok {
		t.Fatal("expected polygon retained")
	}
	twice, ok := Polygon(r, once)
	if !ok {
		t.Fatal("expected already-clipped polygon retained")
	}
	if len(once) != len(twice) {
		t.Fatalf("vertex count changed: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if !aeq(once[i].X, twice[i].X) || !aeq(once[i].Y, twice[i].Y) {
			t.Errorf("vertex %d: got %+v want %+v", i, twice[i], once[i])
		}
	}
}

func TestPointContainment(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	if !r.ContainsPoint(wp(5, 5)) {
		t.Error("center point should be contained")
	}
	if r.ContainsPoint(wp(-1, 5)) {
		t.Error("point left of rect should not be contained")
	}
	if !r.ContainsPoint(wp(0, 0)) || !r.ContainsPoint(wp(10, 10)) {
		t.Error("boundary points should be contained (inclusive)")
	}
}
