// Package scene implements the object registry and render driver
// orchestration of spec.md §4.7/§4.9: the set of live wireframes plus an
// in-progress "build buffer" used by the interactive point/line/polygon/
// curve/surface authoring workflow, and the per-frame projection, curve/
// surface evaluation, clipping, and draw pipeline.
package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/galvanized-sgi/sgi/curve"
	"github.com/galvanized-sgi/sgi/surface"
	"github.com/galvanized-sgi/sgi/wireframe"
)

// ErrConstraintViolation reports a build-buffer size that cannot satisfy
// the operation being finished, per spec.md §7's ConstraintViolation class.
var ErrConstraintViolation = errors.New("scene: constraint violation")

// Registry holds the set of live wireframes plus the in-progress build
// buffer. The zero value is ready to use.
type Registry struct {
	wireframes []*wireframe.Wireframe
	nextID     int

	building bool
	buffer   []*wireframe.WorldPoint

	CurveType        curve.Type
	CurveCoefficient int
	SurfaceType      surface.Type
	SurfaceAlgorithm surface.Algorithm
	SurfaceSteps     int
}

// NewRegistry returns an empty registry with the given default build
// parameters.
func NewRegistry(curveType curve.Type, curveCoefficient int, surfaceType surface.Type, alg surface.Algorithm, surfaceSteps int) *Registry {
	return &Registry{
		CurveType: curveType, CurveCoefficient: curveCoefficient,
		SurfaceType: surfaceType, SurfaceAlgorithm: alg, SurfaceSteps: surfaceSteps,
	}
}

// Add assigns the next id and appends w to the registry.
func (r *Registry) Add(w *wireframe.Wireframe) *wireframe.Wireframe {
	w.ID = r.nextID
	r.nextID++
	r.wireframes = append(r.wireframes, w)
	return w
}

// Remove deletes the wireframe with the given id, if present. Missing ids
// are a silent no-op; the render driver is expected to tolerate them too.
func (r *Registry) Remove(id int) {
	for i, w := range r.wireframes {
		if w.ID == id {
			r.wireframes = append(r.wireframes[:i], r.wireframes[i+1:]...)
			return
		}
	}
}

// Clear empties all registry state, including any in-progress build.
func (r *Registry) Clear() {
	r.wireframes = nil
	r.buffer = nil
	r.building = false
}

// Snapshot returns a defensive copy of the live wireframe list, per
// spec.md §4.7 step 1: the render driver observes a consistent slice even
// if the registry is mutated on the next frame.
func (r *Registry) Snapshot() []*wireframe.Wireframe {
	out := make([]*wireframe.Wireframe, len(r.wireframes))
	copy(out, r.wireframes)
	return out
}

// Wireframes returns the live wireframe slice itself (not a copy, unlike
// Snapshot), e.g. for the CLI summary's count.
func (r *Registry) Wireframes() []*wireframe.Wireframe { return r.wireframes }

// BeginBuild enters build mode with an empty buffer.
func (r *Registry) BeginBuild() {
	r.building = true
	r.buffer = nil
}

// CancelBuild discards the buffer and leaves build mode.
func (r *Registry) CancelBuild() {
	r.building = false
	r.buffer = nil
}

// Building reports whether the registry is currently accumulating a build
// buffer.
func (r *Registry) Building() bool { return r.building }

// AddBuildPoint appends a point to the build buffer. It is a no-op outside
// build mode.
func (r *Registry) AddBuildPoint(p *wireframe.WorldPoint) {
	if !r.building {
		return
	}
	r.buffer = append(r.buffer, p)
}

// BufferLen returns the number of points currently buffered.
func (r *Registry) BufferLen() int { return len(r.buffer) }

// Undo implements spec.md §4.9's layered undo: pop the last buffered
// point if the buffer is non-empty; else cancel build mode if a (now
// empty) build was in progress; else remove the most recently added
// wireframe.
func (r *Registry) Undo() {
	switch {
	case len(r.buffer) > 0:
		r.buffer = r.buffer[:len(r.buffer)-1]
	case r.building:
		r.building = false
	case len(r.wireframes) > 0:
		r.wireframes = r.wireframes[:len(r.wireframes)-1]
	}
}

// FinishBuildAsPolyline consumes the buffer: one point becomes a
// vertex-only (point-mark) wireframe; two or more become one wireframe
// holding a chain of edges between consecutive points. It does not emit a
// separate single-edge wireframe per segment.
func (r *Registry) FinishBuildAsPolyline() (*wireframe.Wireframe, error) {
	pts := r.takeBuffer()
	if len(pts) == 0 {
		return nil, fmt.Errorf("%w: no buffered points to finish", ErrConstraintViolation)
	}
	w := wireframe.New(0, "")
	w.Vertices = pts
	for i := 0; i+1 < len(pts); i++ {
		w.Edges = append(w.Edges, [2]int{i, i + 1})
	}
	return r.Add(w), nil
}

// FinishPolygon consumes the buffer into a single wireframe with a closed
// edge ring and one face referencing every vertex, requiring >= 3 points.
func (r *Registry) FinishPolygon() (*wireframe.Wireframe, error) {
	pts := r.takeBuffer()
	if len(pts) < 3 {
		r.restoreBuffer(pts)
		return nil, fmt.Errorf("%w: polygon needs >= 3 points, got %d", ErrConstraintViolation, len(pts))
	}
	w := wireframe.New(0, "")
	w.Vertices = pts
	idx := make([]int, len(pts))
	for i := range pts {
		j := (i + 1) % len(pts)
		w.Edges = append(w.Edges, [2]int{i, j})
		idx[i] = i
	}
	w.Faces = []wireframe.Face{{Indices: idx}}
	return r.Add(w), nil
}

// FinishCurve consumes the buffer into a single Curve of the registry's
// current curve type, degrading per spec.md §4.9: exactly 2 points finish
// as a line segment, exactly 3 as a quadratic Bezier (degree 3), >= 4 as a
// curve of degree min(4, len(buffer)).
func (r *Registry) FinishCurve() (*wireframe.Wireframe, error) {
	pts := r.takeBuffer()
	if len(pts) < 2 {
		r.restoreBuffer(pts)
		return nil, fmt.Errorf("%w: curve needs >= 2 points, got %d", ErrConstraintViolation, len(pts))
	}
	w := wireframe.New(0, "")
	w.Vertices = pts
	idx := make([]int, len(pts))
	for i := range idx {
		idx[i] = i
	}

	if len(pts) == 2 {
		w.Edges = [][2]int{{0, 1}}
		return r.Add(w), nil
	}

	degree := len(pts)
	if degree > 4 {
		degree = 4
	}
	typ := r.CurveType
	if len(pts) == 3 {
		typ = curve.Bezier
	}
	w.Curves = []wireframe.Curve{{
		Type: typ, ControlPointIndices: idx, Start: 0, End: 1, Degree: degree,
	}}
	return r.Add(w), nil
}

// FinishSurface consumes the entire buffer as a square nu-by-nv control
// grid, inferring nu = nv = sqrt(len(buffer)).
func (r *Registry) FinishSurface() (*wireframe.Wireframe, error) {
	n := len(r.buffer)
	side := int(math.Round(math.Sqrt(float64(n))))
	if side*side != n {
		return nil, fmt.Errorf("%w: %d buffered points is not a perfect square; use FinishSurfaceGrid", ErrConstraintViolation, n)
	}
	return r.FinishSurfaceGrid(side, side, r.SurfaceType, r.SurfaceAlgorithm)
}

// FinishSurfaceGrid consumes the buffer as an explicit nu-by-nv control
// grid, per SPEC_FULL.md §4.9a's interactive-dialog variant: the caller
// supplies the shape rather than relying on a perfect-square inference.
func (r *Registry) FinishSurfaceGrid(nu, nv int, surfaceType surface.Type, alg surface.Algorithm) (*wireframe.Wireframe, error) {
	if len(r.buffer) != nu*nv {
		return nil, fmt.Errorf("%w: have %d buffered points, want nu*nv=%d", ErrConstraintViolation, len(r.buffer), nu*nv)
	}
	pts := r.takeBuffer()
	w := wireframe.New(0, "")
	w.Vertices = pts
	idx := make([]int, len(pts))
	for i := range idx {
		idx[i] = i
	}
	w.Surfaces = []wireframe.Surface{{
		Type: surfaceType, Algorithm: alg, ControlPointIndices: idx,
		DegreeU: nu, DegreeV: nv, Steps: r.SurfaceSteps,
		StartU: 0, EndU: 1, StartV: 0, EndV: 1,
	}}
	return r.Add(w), nil
}

func (r *Registry) takeBuffer() []*wireframe.WorldPoint {
	pts := r.buffer
	r.buffer = nil
	r.building = false
	return pts
}

func (r *Registry) restoreBuffer(pts []*wireframe.WorldPoint) {
	r.buffer = pts
	r.building = true
}
