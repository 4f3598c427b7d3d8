package scene

import (
	"errors"
	"testing"

	"github.com/galvanized-sgi/sgi/curve"
	"github.com/galvanized-sgi/sgi/surface"
	"github.com/galvanized-sgi/sgi/wireframe"
)

func newRegistry() *Registry {
	return NewRegistry(curve.Bezier, 8, surface.Bezier, surface.BlendingFunctions, 8)
}

func TestAddRemoveAssignsIdsAndTolerates(t *testing.T) {
	r := newRegistry()
	a := r.Add(wireframe.New(0, "a"))
	b := r.Add(wireframe.New(0, "b"))
	if a.ID != 0 || b.ID != 1 {
		t.Fatalf("expected sequential ids, got %d, %d", a.ID, b.ID)
	}
	r.Remove(a.ID)
	if len(r.Snapshot()) != 1 {
		t.Fatalf("expected 1 wireframe after remove, got %d", len(r.Snapshot()))
	}
	r.Remove(999) // missing id: silent no-op
	if len(r.Snapshot()) != 1 {
		t.Fatalf("remove of missing id should be a no-op")
	}
}

func TestSnapshotIsDefensiveCopy(t *testing.T) {
	r := newRegistry()
	r.Add(wireframe.New(0, "a"))
	snap := r.Snapshot()
	r.Add(wireframe.New(0, "b"))
	if len(snap) != 1 {
		t.Errorf("snapshot should not see subsequent adds, got %d entries", len(snap))
	}
}

func TestUndoLayering(t *testing.T) {
	r := newRegistry()
	r.Add(wireframe.New(0, "a"))

	r.BeginBuild()
	r.AddBuildPoint(wireframe.NewWorldPoint(0, 0, 0))
	r.Undo() // pops the buffered point
	if r.BufferLen() != 0 || !r.Building() {
		t.Fatalf("expected empty buffer still in build mode, got len=%d building=%v", r.BufferLen(), r.Building())
	}

	r.Undo() // buffer already empty: cancels build mode
	if r.Building() {
		t.Fatal("expected build mode cancelled")
	}

	r.Undo() // not building: removes the last wireframe
	if len(r.Snapshot()) != 0 {
		t.Fatalf("expected last wireframe removed, got %d remaining", len(r.Snapshot()))
	}
}

func TestFinishBuildAsPolylineSinglePoint(t *testing.T) {
	r := newRegistry()
	r.BeginBuild()
	r.AddBuildPoint(wireframe.NewWorldPoint(1, 2, 3))
	w, err := r.FinishBuildAsPolyline()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !w.IsPointMark() || len(w.Vertices) != 1 {
		t.Errorf("expected a single-vertex point mark, got %+v", w)
	}
}

func TestFinishBuildAsPolylineChain(t *testing.T) {
	r := newRegistry()
	r.BeginBuild()
	for i := 0; i < 3; i++ {
		r.AddBuildPoint(wireframe.NewWorldPoint(float64(i), 0, 0))
	}
	w, err := r.FinishBuildAsPolyline()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.Edges) != 2 {
		t.Errorf("expected 2 edges for a 3-point chain, got %d", len(w.Edges))
	}
}

func TestFinishPolygonRequiresThreePoints(t *testing.T) {
	r := newRegistry()
	r.BeginBuild()
	r.AddBuildPoint(wireframe.NewWorldPoint(0, 0, 0))
	r.AddBuildPoint(wireframe.NewWorldPoint(1, 0, 0))
	_, err := r.FinishPolygon()
	if !errors.Is(err, ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}
	if r.BufferLen() != 2 {
		t.Errorf("buffer should be restored on failure, got len %d", r.BufferLen())
	}

	r.AddBuildPoint(wireframe.NewWorldPoint(1, 1, 0))
	w, err := r.FinishPolygon()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.Edges) != 3 || len(w.Faces) != 1 || len(w.Faces[0].Indices) != 3 {
		t.Errorf("expected a closed triangle with one face, got %+v", w)
	}
}

func TestFinishCurveDegrades(t *testing.T) {
	r := newRegistry()

	r.BeginBuild()
	r.AddBuildPoint(wireframe.NewWorldPoint(0, 0, 0))
	r.AddBuildPoint(wireframe.NewWorldPoint(1, 0, 0))
	w, err := r.FinishCurve()
	if err != nil || len(w.Edges) != 1 || len(w.Curves) != 0 {
		t.Fatalf("expected a 2-point curve to finish as a line, got %+v err=%v", w, err)
	}

	r.BeginBuild()
	r.AddBuildPoint(wireframe.NewWorldPoint(0, 0, 0))
	r.AddBuildPoint(wireframe.NewWorldPoint(1, 1, 0))
	r.AddBuildPoint(wireframe.NewWorldPoint(2, 0, 0))
	w, err = r.FinishCurve()
	if err != nil || len(w.Curves) != 1 || w.Curves[0].Degree != 3 {
		t.Fatalf("expected a 3-point curve with degree 3, got %+v err=%v", w, err)
	}

	r.BeginBuild()
	for i := 0; i < 6; i++ {
		r.AddBuildPoint(wireframe.NewWorldPoint(float64(i), 0, 0))
	}
	w, err = r.FinishCurve()
	if err != nil || len(w.Curves) != 1 || w.Curves[0].Degree != 4 {
		t.Fatalf("expected degree capped at 4 for 6 points, got %+v err=%v", w, err)
	}
}

func TestFinishSurfaceGridValidatesCount(t *testing.T) {
	r := newRegistry()
	r.BeginBuild()
	for i := 0; i < 12; i++ {
		r.AddBuildPoint(wireframe.NewWorldPoint(float64(i), 0, 0))
	}
	_, err := r.FinishSurfaceGrid(4, 4, surface.Bezier, surface.BlendingFunctions)
	if !errors.Is(err, ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation for mismatched nu*nv, got %v", err)
	}
	w, err := r.FinishSurfaceGrid(3, 4, surface.Bezier, surface.BlendingFunctions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.Surfaces) != 1 || w.Surfaces[0].DegreeU != 3 || w.Surfaces[0].DegreeV != 4 {
		t.Errorf("unexpected surface shape: %+v", w.Surfaces)
	}
}

func TestFinishSurfaceInfersSquareGrid(t *testing.T) {
	r := newRegistry()
	r.BeginBuild()
	for i := 0; i < 16; i++ {
		r.AddBuildPoint(wireframe.NewWorldPoint(float64(i), 0, 0))
	}
	w, err := r.FinishSurface()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Surfaces[0].DegreeU != 4 || w.Surfaces[0].DegreeV != 4 {
		t.Errorf("expected a 4x4 grid, got %+v", w.Surfaces[0])
	}

	r.BeginBuild()
	for i := 0; i < 10; i++ {
		r.AddBuildPoint(wireframe.NewWorldPoint(float64(i), 0, 0))
	}
	_, err = r.FinishSurface()
	if !errors.Is(err, ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation for non-square count, got %v", err)
	}
}

func TestClearResetsEverything(t *testing.T) {
	r := newRegistry()
	r.Add(wireframe.New(0, "a"))
	r.BeginBuild()
	r.AddBuildPoint(wireframe.NewWorldPoint(0, 0, 0))
	r.Clear()
	if len(r.Snapshot()) != 0 || r.BufferLen() != 0 || r.Building() {
		t.Error("expected Clear to reset wireframes, buffer, and build mode")
	}
}
