// Package curve evaluates parametric curves (Bézier and cubic uniform
// B-spline) over a sequence of already-projected window-plane control
// points, producing an ordered sample sequence per spec.md §4.3.
package curve

import (
	"errors"
	"fmt"

	"github.com/galvanized-sgi/sgi/wireframe"
)

// ErrInsufficientControlPoints is returned when the control point count
// cannot satisfy the chosen curve type or degree.
var ErrInsufficientControlPoints = errors.New("curve: insufficient control points")

// Type mirrors wireframe.CurveType so callers need not import wireframe
// just to name a curve family.
type Type = wireframe.CurveType

const (
	Bezier  = wireframe.Bezier
	BSpline = wireframe.BSpline
)

// binomial returns C(n, k).
func binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	result := 1.0
	for i := 0; i < k; i++ {
		result *= float64(n-i) / float64(i+1)
	}
	return result
}

// Evaluate produces the ordered window-point sample sequence for the given
// control points under the chosen curve type, degree (used by Bézier only;
// BSpline is always cubic, but a degree below 2 is rejected for both types),
// and curveCoefficient N (segments per curve segment).
func Evaluate(points []wireframe.WindowPoint, typ Type, degree, n int) ([]wireframe.WindowPoint, error) {
	if degree < 2 {
		return nil, fmt.Errorf("%w: degree %d < 2", ErrInsufficientControlPoints, degree)
	}
	switch typ {
	case Bezier:
		return evaluateBezier(points, degree, n)
	case BSpline:
		return evaluateBSpline(points, n)
	default:
		return nil, fmt.Errorf("curve: unknown curve type %d", typ)
	}
}

// evaluateBezier walks points in a sliding window of size d that advances
// by d-1 each step so consecutive segments share their joint point.
func evaluateBezier(points []wireframe.WindowPoint, d, n int) ([]wireframe.WindowPoint, error) {
	if len(points) < d {
		return nil, fmt.Errorf("%w: need at least %d points, got %d", ErrInsufficientControlPoints, d, len(points))
	}
	var out []wireframe.WindowPoint
	first := true
	for start := 0; start+d <= len(points); start += d - 1 {
		window := points[start : start+d]
		seg := sampleBezierSegment(window, n)
		if !first {
			seg = seg[1:]
		}
		out = append(out, seg...)
		first = false
	}
	return out, nil
}

func sampleBezierSegment(ctrl []wireframe.WindowPoint, n int) []wireframe.WindowPoint {
	d := len(ctrl)
	samples := make([]wireframe.WindowPoint, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		var x, y float64
		for k := 0; k < d; k++ {
			basis := binomial(d-1, k) * ipow(1-t, d-1-k) * ipow(t, k)
			x += basis * ctrl[k].X
			y += basis * ctrl[k].Y
		}
		samples = append(samples, wireframe.WindowPoint{X: x, Y: y})
	}
	return samples
}

func ipow(base float64, exp int) float64 {
	if exp <= 0 {
		return 1
	}
	result := 1.0
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}

// mB is the cubic uniform B-spline basis matrix, scaled by 1/6.
var mB = [4][4]float64{
	{-1.0 / 6, 3.0 / 6, -3.0 / 6, 1.0 / 6},
	{3.0 / 6, -6.0 / 6, 3.0 / 6, 0},
	{-3.0 / 6, 0, 3.0 / 6, 0},
	{1.0 / 6, 4.0 / 6, 1.0 / 6, 0},
}

func evaluateBSpline(points []wireframe.WindowPoint, n int) ([]wireframe.WindowPoint, error) {
	if len(points) < 4 {
		return nil, fmt.Errorf("%w: B-spline needs at least 4 points, got %d", ErrInsufficientControlPoints, len(points))
	}
	var out []wireframe.WindowPoint
	first := true
	for start := 0; start+4 <= len(points); start++ {
		window := points[start : start+4]
		seg := sampleBSplineSegment(window, n)
		if !first {
			seg = seg[1:]
		}
		out = append(out, seg...)
		first = false
	}
	return out, nil
}

func sampleBSplineSegment(ctrl []wireframe.WindowPoint, n int) []wireframe.WindowPoint {
	gx := [4]float64{ctrl[0].X, ctrl[1].X, ctrl[2].X, ctrl[3].X}
	gy := [4]float64{ctrl[0].Y, ctrl[1].Y, ctrl[2].Y, ctrl[3].Y}
	cx := matVec(mB, gx)
	cy := matVec(mB, gy)

	h := 1.0 / float64(n)
	x := cx[3]
	dx := cx[2]*h + cx[1]*h*h + cx[0]*h*h*h
	d2x := 2*cx[1]*h*h + 6*cx[0]*h*h*h
	d3x := 6 * cx[0] * h * h * h

	y := cy[3]
	dy := cy[2]*h + cy[1]*h*h + cy[0]*h*h*h
	d2y := 2*cy[1]*h*h + 6*cy[0]*h*h*h
	d3y := 6 * cy[0] * h * h * h

	samples := make([]wireframe.WindowPoint, 0, n+1)
	for i := 0; i <= n; i++ {
		samples = append(samples, wireframe.WindowPoint{X: x, Y: y})
		x += dx
		dx += d2x
		d2x += d3x
		y += dy
		dy += d2y
		d2y += d3y
	}
	return samples
}

func matVec(m [4][4]float64, v [4]float64) [4]float64 {
	var out [4]float64
	for i := 0; i < 4; i++ {
		var sum float64
		for j := 0; j < 4; j++ {
			sum += m[i][j] * v[j]
		}
		out[i] = sum
	}
	return out
}
