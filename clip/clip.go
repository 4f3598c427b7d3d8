// Package clip implements 2D clipping against an axis-aligned rectangle:
// Cohen-Sutherland and Liang-Barsky line clipping and Sutherland-Hodgman
// polygon clipping, per spec.md §4.6. Algorithms are ported directly from
// original_source/src/clipping.py.
package clip

import "github.com/galvanized-sgi/sgi/wireframe"

// Algorithm selects the line-clipping method.
type Algorithm int

const (
	CohenSutherland Algorithm = iota
	LiangBarsky
)

// Rect is the axis-aligned clip rectangle.
type Rect struct {
	XMin, YMin, XMax, YMax float64
}

// ContainsPoint retains a point iff it lies within the rectangle inclusive
// of its boundary.
func (r Rect) ContainsPoint(p wireframe.WindowPoint) bool {
	return p.X >= r.XMin && p.X <= r.XMax && p.Y >= r.YMin && p.Y <= r.YMax
}

const (
	codeLeft   = 1
	codeRight  = 2
	codeBottom = 4
	codeTop    = 8
)

func (r Rect) outCode(p wireframe.WindowPoint) int {
	code := 0
	if p.X < r.XMin {
		code |= codeLeft
	} else if p.X > r.XMax {
		code |= codeRight
	}
	if p.Y < r.YMin {
		code |= codeBottom
	} else if p.Y > r.YMax {
		code |= codeTop
	}
	return code
}

// Line clips a line segment against r using the selected algorithm. ok is
// false when the segment is entirely rejected.
func Line(a Algorithm, r Rect, start, end wireframe.WindowPoint) (ns, ne wireframe.WindowPoint, ok bool) {
	switch a {
	case LiangBarsky:
		return liangBarsky(r, start, end)
	default:
		return cohenSutherland(r, start, end)
	}
}

// cohenSutherland clips using the classic outcode algorithm. Intersections
// are tried in the order TOP, BOTTOM, RIGHT, LEFT, matching spec.md §4.6.
func cohenSutherland(r Rect, start, end wireframe.WindowPoint) (wireframe.WindowPoint, wireframe.WindowPoint, bool) {
	p0, p1 := start, end
	c0, c1 := r.outCode(p0), r.outCode(p1)
	for {
		if c0 == 0 && c1 == 0 {
			return p0, p1, true
		}
		if c0&c1 != 0 {
			return wireframe.WindowPoint{}, wireframe.WindowPoint{}, false
		}
		var out int
		var px, py float64
		if c0 != 0 {
			out = c0
		} else {
			out = c1
		}
		dx, dy := p1.X-p0.X, p1.Y-p0.Y
		switch {
		case out&codeTop != 0:
			px = p0.X + dx*(r.YMax-p0.Y)/dy
			py = r.YMax
		case out&codeBottom != 0:
			px = p0.X + dx*(r.YMin-p0.Y)/dy
			py = r.YMin
		case out&codeRight != 0:
			py = p0.Y + dy*(r.XMax-p0.X)/dx
			px = r.XMax
		case out&codeLeft != 0:
			py = p0.Y + dy*(r.XMin-p0.X)/dx
			px = r.XMin
		}
		if out == c0 {
			p0 = wireframe.WindowPoint{X: px, Y: py}
			c0 = r.outCode(p0)
		} else {
			p1 = wireframe.WindowPoint{X: px, Y: py}
			c1 = r.outCode(p1)
		}
	}
}

// liangBarsky clips using the parametric t_enter/t_exit method.
func liangBarsky(r Rect, start, end wireframe.WindowPoint) (wireframe.WindowPoint, wireframe.WindowPoint, bool) {
	dx := end.X - start.X
	dy := end.Y - start.Y
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{start.X - r.XMin, r.XMax - start.X, start.Y - r.YMin, r.YMax - start.Y}

	tEnter, tExit := 0.0, 1.0
	for i := 0; i < 4; i++ {
		if p[i] == 0 {
			if q[i] < 0 {
				return wireframe.WindowPoint{}, wireframe.WindowPoint{}, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > tEnter {
				tEnter = t
			}
		} else {
			if t < tExit {
				tExit = t
			}
		}
	}
	if tEnter > tExit {
		return wireframe.WindowPoint{}, wireframe.WindowPoint{}, false
	}
	ns := wireframe.WindowPoint{X: start.X + tEnter*dx, Y: start.Y + tEnter*dy}
	ne := wireframe.WindowPoint{X: start.X + tExit*dx, Y: start.Y + tExit*dy}
	return ns, ne, true
}

type edge int

const (
	edgeLeft edge = iota
	edgeTop
	edgeRight
	edgeBottom
)

// Polygon clips a polygon against r using Sutherland-Hodgman: four passes,
// one per window edge, in the fixed order LEFT, TOP, RIGHT, BOTTOM. ok is
// false when any pass reduces the vertex count below 3.
func Polygon(r Rect, pts []wireframe.WindowPoint) ([]wireframe.WindowPoint, bool) {
	current := pts
	for _, e := range []edge{edgeLeft, edgeTop, edgeRight, edgeBottom} {
		current = clipEdge(r, current, e)
		if len(current) < 3 {
			return nil, false
		}
	}
	return current, true
}

func inside(r Rect, e edge, p wireframe.WindowPoint) bool {
	switch e {
	case edgeLeft:
		return p.X >= r.XMin
	case edgeRight:
		return p.X <= r.XMax
	case edgeTop:
		return p.Y <= r.YMax
	default: // edgeBottom
		return p.Y >= r.YMin
	}
}

func intersect(r Rect, e edge, a, b wireframe.WindowPoint) wireframe.WindowPoint {
	dx, dy := b.X-a.X, b.Y-a.Y
	switch e {
	case edgeLeft:
		t := (r.XMin - a.X) / dx
		return wireframe.WindowPoint{X: r.XMin, Y: a.Y + t*dy}
	case edgeRight:
		t := (r.XMax - a.X) / dx
		return wireframe.WindowPoint{X: r.XMax, Y: a.Y + t*dy}
	case edgeTop:
		t := (r.YMax - a.Y) / dy
		return wireframe.WindowPoint{X: a.X + t*dx, Y: r.YMax}
	default: // edgeBottom
		t := (r.YMin - a.Y) / dy
		return wireframe.WindowPoint{X: a.X + t*dx, Y: r.YMin}
	}
}

func clipEdge(r Rect, pts []wireframe.WindowPoint, e edge) []wireframe.WindowPoint {
	if len(pts) == 0 {
		return nil
	}
	var out []wireframe.WindowPoint
	n := len(pts)
	for i := 0; i < n; i++ {
		curr := pts[i]
		prev := pts[(i-1+n)%n]
		currIn := inside(r, e, curr)
		prevIn := inside(r, e, prev)
		switch {
		case currIn && prevIn:
			out = append(out, curr)
		case prevIn && !currIn:
			out = append(out, intersect(r, e, prev, curr))
		case !prevIn && currIn:
			out = append(out, intersect(r, e, prev, curr), curr)
		}
	}
	return out
}
