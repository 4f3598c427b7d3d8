// Package surface evaluates bicubic tensor-product surfaces (Bézier and
// B-spline patches) over a row-major control grid, by either direct
// blending-function evaluation or incremental forward differences, per
// spec.md §4.4.
package surface

import (
	"errors"
	"fmt"

	"github.com/galvanized-sgi/sgi/wireframe"
)

// ErrDegreeConstraint is returned when the control grid shape is
// incompatible with the chosen surface type.
var ErrDegreeConstraint = errors.New("surface: degree constraint violated")

type Type = wireframe.SurfaceType
type Algorithm = wireframe.SurfaceAlgorithm

const (
	Bezier  = wireframe.SurfaceBezier
	BSpline = wireframe.SurfaceBSpline

	BlendingFunctions  = wireframe.BlendingFunctions
	ForwardDifferences = wireframe.ForwardDifferences
)

var mBezier = [4][4]float64{
	{-1, 3, -3, 1},
	{3, -6, 3, 0},
	{-3, 3, 0, 0},
	{1, 0, 0, 0},
}

var mBSpline = [4][4]float64{
	{-1.0 / 6, 3.0 / 6, -3.0 / 6, 1.0 / 6},
	{3.0 / 6, -6.0 / 6, 3.0 / 6, 0},
	{-3.0 / 6, 0, 3.0 / 6, 0},
	{1.0 / 6, 4.0 / 6, 1.0 / 6, 0},
}

// Evaluate produces the (steps+1)x(steps+1) window-point grid for every
// 4x4 patch selected from the nu-by-nv row-major control grid, per the
// given surface type and algorithm. Grids are returned in patch order,
// outer index over u-patches then v-patches matching the row-major input.
func Evaluate(points []wireframe.WindowPoint, nu, nv int, typ Type, alg Algorithm, steps int) ([][][]wireframe.WindowPoint, error) {
	if len(points) != nu*nv {
		return nil, fmt.Errorf("%w: have %d points, want nu*nv=%d", ErrDegreeConstraint, len(points), nu*nv)
	}
	var patchStep int
	switch typ {
	case Bezier:
		if nu <= 0 || nv <= 0 || nu%4 != 0 || nv%4 != 0 {
			return nil, fmt.Errorf("%w: Bezier surface requires nu,nv positive multiples of 4, got (%d,%d)", ErrDegreeConstraint, nu, nv)
		}
		patchStep = 4
	case BSpline:
		if nu < 4 || nv < 4 {
			return nil, fmt.Errorf("%w: BSpline surface requires nu,nv >= 4, got (%d,%d)", ErrDegreeConstraint, nu, nv)
		}
		patchStep = 1
	default:
		return nil, fmt.Errorf("surface: unknown surface type %d", typ)
	}

	grid := func(u, v int) wireframe.WindowPoint { return points[u*nv+v] }

	var patches [][][]wireframe.WindowPoint
	for u0 := 0; u0+4 <= nu; u0 += patchStep {
		for v0 := 0; v0+4 <= nv; v0 += patchStep {
			var gx, gy [4][4]float64
			for i := 0; i < 4; i++ {
				for j := 0; j < 4; j++ {
					p := grid(u0+i, v0+j)
					gx[i][j] = p.X
					gy[i][j] = p.Y
				}
			}
			var m [4][4]float64
			if typ == Bezier {
				m = mBezier
			} else {
				m = mBSpline
			}
			cx := sandwich(m, gx)
			cy := sandwich(m, gy)

			var patch [][]wireframe.WindowPoint
			switch alg {
			case BlendingFunctions:
				patch = evalBlending(cx, cy, steps)
			case ForwardDifferences:
				patch = evalForwardDifferences(cx, cy, steps)
			default:
				return nil, fmt.Errorf("surface: unknown algorithm %d", alg)
			}
			patches = append(patches, patch)
		}
	}
	return patches, nil
}

// sandwich computes M * G * M^T for 4x4 matrices.
func sandwich(m, g [4][4]float64) [4][4]float64 {
	mg := matMul(m, g)
	mt := transpose(m)
	return matMul(mg, mt)
}

func matMul(a, b [4][4]float64) [4][4]float64 {
	var out [4][4]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

func transpose(m [4][4]float64) [4][4]float64 {
	var out [4][4]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[j][i] = m[i][j]
		}
	}
	return out
}

func evalBlending(cx, cy [4][4]float64, steps int) [][]wireframe.WindowPoint {
	grid := make([][]wireframe.WindowPoint, steps+1)
	for i := 0; i <= steps; i++ {
		u := float64(i) / float64(steps)
		uVec := [4]float64{u * u * u, u * u, u, 1}
		row := make([]wireframe.WindowPoint, steps+1)
		for j := 0; j <= steps; j++ {
			v := float64(j) / float64(steps)
			vVec := [4]float64{v * v * v, v * v, v, 1}
			row[j] = wireframe.WindowPoint{
				X: quadForm(uVec, cx, vVec),
				Y: quadForm(uVec, cy, vVec),
			}
		}
		grid[i] = row
	}
	return grid
}

func quadForm(u [4]float64, m [4][4]float64, v [4]float64) float64 {
	var sum float64
	for i := 0; i < 4; i++ {
		var rowSum float64
		for j := 0; j < 4; j++ {
			rowSum += m[i][j] * v[j]
		}
		sum += u[i] * rowSum
	}
	return sum
}

func evalForwardDifferences(cx, cy [4][4]float64, steps int) [][]wireframe.WindowPoint {
	delta := 1.0 / float64(steps)
	d := [4][4]float64{
		{0, 0, 0, 1},
		{delta * delta * delta, delta * delta, delta, 0},
		{6 * delta * delta * delta, 2 * delta * delta, 0, 0},
		{6 * delta * delta * delta, 0, 0, 0},
	}
	dt := transpose(d)
	fx := matMul(matMul(d, cx), dt)
	fy := matMul(matMul(d, cy), dt)

	grid := make([][]wireframe.WindowPoint, steps+1)
	for i := range grid {
		grid[i] = make([]wireframe.WindowPoint, steps+1)
	}
	for i := 0; i <= steps; i++ {
		// f_x, f_y are the first column of FX/FY, taken as a 4-vector of
		// (value, 1st difference, 2nd difference, 3rd difference) along u at
		// the current v. The inner loop therefore steps u, so each sample is
		// stored at grid[j][i], the same [u][v] layout evalBlending uses.
		fxCol := [4]float64{fx[0][0], fx[1][0], fx[2][0], fx[3][0]}
		fyCol := [4]float64{fy[0][0], fy[1][0], fy[2][0], fy[3][0]}
		for j := 0; j <= steps; j++ {
			grid[j][i] = wireframe.WindowPoint{X: fxCol[0], Y: fyCol[0]}
			fxCol[0] += fxCol[1]
			fxCol[1] += fxCol[2]
			fxCol[2] += fxCol[3]
			fyCol[0] += fyCol[1]
			fyCol[1] += fyCol[2]
			fyCol[2] += fyCol[3]
		}
		if i < steps {
			fx[0][0] += fx[0][1]
			fx[0][1] += fx[0][2]
			fx[0][2] += fx[0][3]
			fx[1][0] += fx[1][1]
			fx[1][1] += fx[1][2]
			fx[1][2] += fx[1][3]
			fx[2][0] += fx[2][1]
			fx[2][1] += fx[2][2]
			fx[2][2] += fx[2][3]
			fx[3][0] += fx[3][1]
			fx[3][1] += fx[3][2]
			fx[3][2] += fx[3][3]
			fy[0][0] += fy[0][1]
			fy[0][1] += fy[0][2]
			fy[0][2] += fy[0][3]
			fy[1][0] += fy[1][1]
			fy[1][1] += fy[1][2]
			fy[1][2] += fy[1][3]
			fy[2][0] += fy[2][1]
			fy[2][1] += fy[2][2]
			fy[2][2] += fy[2][3]
			fy[3][0] += fy[3][1]
			fy[3][1] += fy[3][2]
			fy[3][2] += fy[3][3]
		}
	}
	return grid
}
