// Package wireframe implements the composite geometric object of the
// modeler: a named collection of vertices plus zero or more edges, faces,
// curves, and surfaces, along with its affine transform operations.
package wireframe

import (
	"math"

	"github.com/galvanized-sgi/sgi/math/lin"
)

// WorldPoint is a homogeneous world-space point. w is 1 for affine points;
// the documented transforms below all preserve w=1.
type WorldPoint = lin.V4

// NewWorldPoint returns the affine point (x, y, z, 1).
func NewWorldPoint(x, y, z float64) *WorldPoint { return &WorldPoint{X: x, Y: y, Z: z, W: 1} }

// CurveType selects the curve family used by a Curve.
type CurveType int

const (
	Bezier CurveType = iota
	BSpline
)

// SurfaceType selects the surface family used by a Surface.
type SurfaceType int

const (
	SurfaceBezier SurfaceType = iota
	SurfaceBSpline
)

// SurfaceAlgorithm selects the tensor-product patch evaluation method.
type SurfaceAlgorithm int

const (
	BlendingFunctions SurfaceAlgorithm = iota
	ForwardDifferences
)

// Curve is a parametric curve over a sequence of control points owned by
// the enclosing Wireframe's vertex list.
type Curve struct {
	Type                 CurveType
	ControlPointIndices  []int
	Start, End           float64 // serialization parameters; evaluator uses [0,1]
	Degree               int
}

// Surface is a parametric tensor-product surface over a row-major control
// grid owned by the enclosing Wireframe's vertex list.
type Surface struct {
	Type                SurfaceType
	Algorithm           SurfaceAlgorithm
	ControlPointIndices []int
	DegreeU, DegreeV    int
	Steps               int
	StartU, EndU        float64
	StartV, EndV        float64
}

// Face is an ordered index sequence with an optional fill color; absent
// color means outline-only.
type Face struct {
	Indices   []int
	FillColor string
}

// Appearance groups the cosmetic attributes of a Wireframe.
type Appearance struct {
	Thickness        float64
	LineColor        string
	DefaultFillColor string
}

// Wireframe is the composite geometric entity: vertices plus zero or more
// edges, faces, curves, surfaces, and an appearance.
type Wireframe struct {
	ID       int
	Name     string
	Vertices []*WorldPoint
	Edges    [][2]int
	Faces    []Face
	Curves   []Curve
	Surfaces []Surface
	Appearance Appearance
}

// New returns an empty, named wireframe. Callers append vertices/edges/
// faces/curves/surfaces directly; the zero value is otherwise ready to use.
func New(id int, name string) *Wireframe {
	return &Wireframe{ID: id, Name: name}
}

// Centroid is the componentwise mean of the affine (w=1) vertex positions.
// It returns the origin for an empty wireframe.
func (w *Wireframe) Centroid() *WorldPoint {
	c := &WorldPoint{W: 1}
	if len(w.Vertices) == 0 {
		return c
	}
	var x, y, z float64
	for _, v := range w.Vertices {
		x += v.X
		y += v.Y
		z += v.Z
	}
	n := float64(len(w.Vertices))
	c.X, c.Y, c.Z = x/n, y/n, z/n
	return c
}

// Translate multiplies every vertex by the 4x4 translation matrix built
// from (dx, dy, dz). Modifies w in place and returns it for chaining.
func (w *Wireframe) Translate(dx, dy, dz float64) *Wireframe {
	m := lin.NewM4I().TranslateMT(dx, dy, dz)
	w.applyMatrix(m)
	return w
}

// Scale translates to origin-at-centroid, applies a uniform scale, then
// translates back, leaving the centroid fixed.
func (w *Wireframe) Scale(factor float64) *Wireframe {
	c := w.Centroid()
	m := lin.NewM4I().TranslateMT(-c.X, -c.Y, -c.Z)
	m.ScaleMS(factor, factor, factor)
	m.TranslateMT(c.X, c.Y, c.Z)
	w.applyMatrix(m)
	return w
}

// Rotate translates so pivot lies at the origin, applies a planar rotation
// of degrees° in the plane spanned by coordinate axes axisA, axisB (each in
// {0,1,2}, axisA != axisB), then translates back. A nil pivot defaults to
// the current centroid.
func (w *Wireframe) Rotate(degrees float64, pivot *WorldPoint, axisA, axisB int) *Wireframe {
	if pivot == nil {
		pivot = w.Centroid()
	}
	m := lin.NewM4I().TranslateMT(-pivot.X, -pivot.Y, -pivot.Z)
	r := lin.NewM4().SetPlane(lin.Rad(degrees), axisA, axisB)
	m.Mult(m, r)
	m.TranslateMT(pivot.X, pivot.Y, pivot.Z)
	w.applyMatrix(m)
	return w
}

// Transform replaces every vertex v with v*M (row-vector convention,
// matching the lin package's matrix memory layout).
func (w *Wireframe) Transform(m *lin.M4) *Wireframe {
	w.applyMatrix(m)
	return w
}

func (w *Wireframe) applyMatrix(m *lin.M4) {
	for _, v := range w.Vertices {
		v.MultvM(v, m)
	}
}

// IsPointMark reports whether the wireframe has no edges, faces, curves, or
// surfaces, in which case its vertices are rendered as individual points.
func (w *Wireframe) IsPointMark() bool {
	return len(w.Edges) == 0 && len(w.Faces) == 0 && len(w.Curves) == 0 && len(w.Surfaces) == 0
}

// vertexAt is a small bounds-checked accessor used by ControlPoints;
// out-of-range indices are a §7 OutOfRange condition.
func (w *Wireframe) vertexAt(i int) (*WorldPoint, bool) {
	if i < 0 || i >= len(w.Vertices) {
		return nil, false
	}
	return w.Vertices[i], true
}

// ControlPoints resolves a sequence of vertex indices into world points,
// reporting the first out-of-range index if any.
func (w *Wireframe) ControlPoints(indices []int) ([]*WorldPoint, int, bool) {
	pts := make([]*WorldPoint, 0, len(indices))
	for _, idx := range indices {
		v, ok := w.vertexAt(idx)
		if !ok {
			return nil, idx, false
		}
		pts = append(pts, v)
	}
	return pts, -1, true
}

// approxEq is a small tolerance helper local to tests in this package that
// do not want a dependency on lin's internal Epsilon constant directly.
func approxEq(a, b, tol float64) bool { return math.Abs(a-b) <= tol }
