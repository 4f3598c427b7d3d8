package wireframe

// WindowPoint is a 2D point on the camera's window plane. It is its own
// small struct rather than a reuse of lin.V3 with a dropped Z — the two
// types are never interchanged by a caller and keeping WindowPoint distinct
// avoids a type that silently carries an always-zero third field; see
// DESIGN.md for the full rationale.
type WindowPoint struct {
	X, Y float64
}

// Add returns the componentwise sum.
func (p WindowPoint) Add(o WindowPoint) WindowPoint { return WindowPoint{p.X + o.X, p.Y + o.Y} }

// Sub returns the componentwise difference.
func (p WindowPoint) Sub(o WindowPoint) WindowPoint { return WindowPoint{p.X - o.X, p.Y - o.Y} }

// Scale returns p scaled by s.
func (p WindowPoint) Scale(s float64) WindowPoint { return WindowPoint{p.X * s, p.Y * s} }

// WindowObjectKind tags the variant held by a WindowObject.
type WindowObjectKind int

const (
	KindPoint WindowObjectKind = iota
	KindLine
	KindPolygon
	KindSurface
)

// WindowObject is the tagged variant emitted by a Wireframe for a single
// frame: a point mark, a line segment, a polygon outline (optionally
// filled), or a tessellated surface grid.
type WindowObject struct {
	Kind WindowObjectKind

	// Point
	Point WindowPoint

	// Line: Start, End
	Start, End WindowPoint

	// Polygon: ordered, implicitly closed; FillColor empty means outline only.
	Polygon   []WindowPoint
	FillColor string

	// Surface: row-major grid of (Steps+1) rows, each of length (Steps+1).
	Grid  [][]WindowPoint
	Steps int
}

// NewPointObject returns a Point-kind WindowObject.
func NewPointObject(p WindowPoint) WindowObject {
	return WindowObject{Kind: KindPoint, Point: p}
}

// NewLineObject returns a Line-kind WindowObject.
func NewLineObject(start, end WindowPoint) WindowObject {
	return WindowObject{Kind: KindLine, Start: start, End: end}
}

// NewPolygonObject returns a Polygon-kind WindowObject. fillColor is empty
// for an outline-only polygon.
func NewPolygonObject(pts []WindowPoint, fillColor string) WindowObject {
	return WindowObject{Kind: KindPolygon, Polygon: pts, FillColor: fillColor}
}

// NewSurfaceObject returns a Surface-kind WindowObject.
func NewSurfaceObject(grid [][]WindowPoint, steps int) WindowObject {
	return WindowObject{Kind: KindSurface, Grid: grid, Steps: steps}
}

// PolygonLines returns the edges of a closed polygon as adjacent WindowPoint pairs,
// i.e. (p[0],p[1]), (p[1],p[2]), ..., (p[n-1],p[0]).
func PolygonLines(pts []WindowPoint) [][2]WindowPoint {
	if len(pts) < 2 {
		return nil
	}
	lines := make([][2]WindowPoint, 0, len(pts))
	for i := range pts {
		j := (i + 1) % len(pts)
		lines = append(lines, [2]WindowPoint{pts[i], pts[j]})
	}
	return lines
}

// GridLines returns the horizontal and vertical neighbor segments of a
// tessellated surface grid, used by the render driver to lower a Surface
// window object to line primitives for the clipper.
func GridLines(grid [][]WindowPoint) [][2]WindowPoint {
	var lines [][2]WindowPoint
	for i := range grid {
		for j := range grid[i] {
			if j+1 < len(grid[i]) {
				lines = append(lines, [2]WindowPoint{grid[i][j], grid[i][j+1]})
			}
			if i+1 < len(grid) {
				lines = append(lines, [2]WindowPoint{grid[i][j], grid[i+1][j]})
			}
		}
	}
	return lines
}
