// Package camera implements the Window: the virtual camera's state, basis
// construction, navigation, parallel/perspective projection, and
// window/viewport coordinate conversions, per spec.md §4.5. The algorithms
// are ported directly from original_source/sgi/src/window.py.
package camera

import (
	"math"

	"github.com/galvanized-sgi/sgi/math/lin"
	"github.com/galvanized-sgi/sgi/wireframe"
)

// Projection selects parallel or one-point perspective projection.
type Projection int

const (
	Parallel Projection = iota
	Perspective
)

const (
	MinZoom = 0.1
	MaxZoom = 100.0
)

// Infinity is the sentinel WindowPoint returned by perspective projection
// on a degenerate (singular) solve, per spec.md §4.5/§7 GeometricDegeneracy.
var Infinity = wireframe.WindowPoint{X: math.Inf(1), Y: math.Inf(1)}

// Window is the virtual camera: position/orientation in world space, an
// orthonormal right/up/normal basis, a projection mode, and the window-
// to-viewport mapping state.
type Window struct {
	Width, Height int

	Position *wireframe.WorldPoint
	Normal   *lin.V3
	Focus    *wireframe.WorldPoint
	Up       *lin.V3
	Right    *lin.V3

	MovementSpeed, RotationSpeed float64
	Zoom                         float64
	Projection                   Projection

	Padding        float64
	WindowFocus    wireframe.WindowPoint
	ViewportCenter wireframe.WindowPoint
}

// New constructs a Window, deriving right/up from normal and upHint per
// spec.md §4.5: when normal is parallel or anti-parallel to upHint, the
// basis falls back to right=(1,0,0), up=(0,1,0).
func New(width, height int, position *wireframe.WorldPoint, normal, upHint *lin.V3, focus *wireframe.WorldPoint, movementSpeed, rotationSpeed, zoom float64, proj Projection) *Window {
	w := &Window{
		Width: width, Height: height,
		Position:      position,
		Normal:        lin.NewV3().Set(normal).Unit(),
		Focus:         focus,
		MovementSpeed: movementSpeed,
		RotationSpeed: rotationSpeed,
		Zoom:          zoom,
		Projection:    proj,
		ViewportCenter: wireframe.WindowPoint{X: float64(width) / 2, Y: float64(height) / 2},
	}
	w.Right, w.Up = buildBasis(w.Normal, upHint)
	return w
}

// buildBasis derives right/up from normal and an up hint, falling back to
// world axes when the hint is colinear with normal.
func buildBasis(normal, upHint *lin.V3) (right, up *lin.V3) {
	cross := lin.NewV3().Cross(normal, upHint)
	if cross.AeqZ() {
		return lin.NewV3S(1, 0, 0), lin.NewV3S(0, 1, 0)
	}
	right = cross.Unit()
	up = lin.NewV3().Cross(right, normal).Unit()
	return right, up
}

func (w *Window) moveAmount() float64 {
	return math.Max(w.MovementSpeed/w.Zoom, 1)
}

// MoveRight/MoveLeft translate position along world axis 0.
func (w *Window) MoveRight() { w.Position.X += w.moveAmount() }
func (w *Window) MoveLeft()  { w.Position.X -= w.moveAmount() }

// MoveUp/MoveDown translate position along world axis 1.
func (w *Window) MoveUp()   { w.Position.Y += w.moveAmount() }
func (w *Window) MoveDown() { w.Position.Y -= w.moveAmount() }

// MoveAbove/MoveBelow translate position along world axis 2.
func (w *Window) MoveAbove() { w.Position.Z += w.moveAmount() }
func (w *Window) MoveBelow() { w.Position.Z -= w.moveAmount() }

// MoveForward/MoveBackward translate position along the view normal.
func (w *Window) MoveForward()  { w.translateAlong(w.Normal, w.MovementSpeed) }
func (w *Window) MoveBackward() { w.translateAlong(w.Normal, -w.MovementSpeed) }

// MoveSidewaysLeft/MoveSidewaysRight translate position along right.
func (w *Window) MoveSidewaysLeft()  { w.translateAlong(w.Right, -w.MovementSpeed) }
func (w *Window) MoveSidewaysRight() { w.translateAlong(w.Right, w.MovementSpeed) }

// MoveUpward/MoveDownward translate position along up.
func (w *Window) MoveUpward()   { w.translateAlong(w.Up, w.MovementSpeed) }
func (w *Window) MoveDownward() { w.translateAlong(w.Up, -w.MovementSpeed) }

func (w *Window) translateAlong(axis *lin.V3, amount float64) {
	w.Position.X += axis.X * amount
	w.Position.Y += axis.Y * amount
	w.Position.Z += axis.Z * amount
}

// Rotate applies a planar rotation of angleDeg degrees in the plane spanned
// by world axes a1, a2 to right and up, then reconstructs normal = up x
// right and recenters focus 1000 units behind position along normal.
func (w *Window) Rotate(angleDeg float64, a1, a2 int) {
	r := lin.NewM3().SetPlane(lin.Rad(angleDeg), a1, a2)
	w.Right.MultvM(w.Right, r)
	w.Up.MultvM(w.Up, r)
	w.Normal.Cross(w.Up, w.Right).Unit()
	w.Focus.X = w.Position.X - 1000*w.Normal.X
	w.Focus.Y = w.Position.Y - 1000*w.Normal.Y
	w.Focus.Z = w.Position.Z - 1000*w.Normal.Z
}

// ZoomIn/ZoomOut scale zoom by 1.1, clamped to [MinZoom, MaxZoom].
func (w *Window) ZoomIn()  { w.Zoom = clamp(w.Zoom*1.1, MinZoom, MaxZoom) }
func (w *Window) ZoomOut() { w.Zoom = clamp(w.Zoom/1.1, MinZoom, MaxZoom) }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Recenter resets the window to its canonical pose.
func (w *Window) Recenter() {
	w.Position = wireframe.NewWorldPoint(0, 0, 100)
	w.Normal = lin.NewV3S(0, 0, -1)
	w.Right = lin.NewV3S(1, 0, 0)
	w.Up = lin.NewV3S(0, 1, 0)
	w.Zoom = 1
	w.WindowFocus = wireframe.WindowPoint{}
}

// Project dispatches to the parallel or perspective projection depending
// on w.Projection.
func (w *Window) Project(p *wireframe.WorldPoint) wireframe.WindowPoint {
	if w.Projection == Perspective {
		return w.projectPerspective(p)
	}
	return w.projectParallel(p)
}

// projectParallel projects p onto the window plane through Position with
// normal Normal, per spec.md §4.5.
func (w *Window) projectParallel(p *wireframe.WorldPoint) wireframe.WindowPoint {
	point := lin.NewV3S(p.X, p.Y, p.Z)
	pos := lin.NewV3S(w.Position.X, w.Position.Y, w.Position.Z)
	diff := lin.NewV3().Sub(pos, point)
	denom := w.Normal.Dot(w.Normal)
	t := w.Normal.Dot(diff) / denom
	c := lin.NewV3().Scale(w.Normal, t)
	c.Add(c, point)
	v := lin.NewV3().Sub(c, pos)
	return wireframe.WindowPoint{X: v.Dot(w.Right), Y: v.Dot(w.Up)}
}

// projectPerspective solves the one-point perspective system described in
// spec.md §4.5: M = [right | up | (p-focus)], r = focus - position,
// M*x = r, window coordinates are (x, y). Returns Infinity on a singular
// system or when the normal is orthogonal to r (degenerate geometry).
func (w *Window) projectPerspective(p *wireframe.WorldPoint) wireframe.WindowPoint {
	focus := lin.NewV3S(w.Focus.X, w.Focus.Y, w.Focus.Z)
	position := lin.NewV3S(w.Position.X, w.Position.Y, w.Position.Z)
	point := lin.NewV3S(p.X, p.Y, p.Z)

	third := lin.NewV3().Sub(point, focus)
	r := lin.NewV3().Sub(focus, position)

	if lin.AeqZ(w.Normal.Dot(r)) {
		return Infinity
	}

	m := &lin.M3{
		Xx: w.Right.X, Yx: w.Right.Y, Zx: w.Right.Z,
		Xy: w.Up.X, Yy: w.Up.Y, Zy: w.Up.Z,
		Xz: third.X, Yz: third.Y, Zz: third.Z,
	}
	det := m.Det()
	if lin.AeqZ(det) {
		return Infinity
	}
	inv := lin.NewM3().Inv(m)
	x := lin.NewV3().MultMv(inv, r)
	return wireframe.WindowPoint{X: x.X, Y: x.Y}
}

// WorldToWindow projects p and applies the window_focus pan, returning raw
// (unzoomed, unflipped) window-plane coordinates.
func (w *Window) WorldToWindow(p *wireframe.WorldPoint) wireframe.WindowPoint {
	return w.Project(p).Add(w.WindowFocus)
}

// WindowToViewport converts window-plane coordinates to viewport pixel
// coordinates: scale by zoom, offset by viewport center, and flip the
// vertical axis so a top-left-origin raster canvas matches math
// orientation.
func (w *Window) WindowToViewport(win wireframe.WindowPoint) wireframe.WindowPoint {
	x := win.X*w.Zoom + w.ViewportCenter.X
	y := win.Y*w.Zoom + w.ViewportCenter.Y
	return wireframe.WindowPoint{X: x, Y: float64(w.Height) - y}
}

// ViewportToWindow is the inverse of WindowToViewport.
func (w *Window) ViewportToWindow(vp wireframe.WindowPoint) wireframe.WindowPoint {
	y := float64(w.Height) - vp.Y
	x := (vp.X - w.ViewportCenter.X) / w.Zoom
	yy := (y - w.ViewportCenter.Y) / w.Zoom
	return wireframe.WindowPoint{X: x, Y: yy}
}

// WorldToViewport composes WorldToWindow and WindowToViewport.
func (w *Window) WorldToViewport(p *wireframe.WorldPoint) wireframe.WindowPoint {
	return w.WindowToViewport(w.WorldToWindow(p))
}

// ViewportToWorld inverts WorldToViewport using the current right/up/
// position basis: position + x_window*right + y_window*up, at w=1. The
// window_focus pan applied on the way out is subtracted back on the way
// in, since it was added after projection and before the viewport scaling.
func (w *Window) ViewportToWorld(vp wireframe.WindowPoint) *wireframe.WorldPoint {
	win := w.ViewportToWindow(vp)
	win = win.Sub(w.WindowFocus)
	out := wireframe.NewWorldPoint(0, 0, 0)
	out.X = w.Position.X + win.X*w.Right.X + win.Y*w.Up.X
	out.Y = w.Position.Y + win.X*w.Right.Y + win.Y*w.Up.Y
	out.Z = w.Position.Z + win.X*w.Right.Z + win.Y*w.Up.Z
	return out
}

// ClickInWindow reports whether a viewport-coordinate point lies within
// the padded viewport rectangle [padding,padding] to
// [width-padding,height-padding].
func (w *Window) ClickInWindow(vp wireframe.WindowPoint) bool {
	return vp.X >= w.Padding && vp.X <= float64(w.Width)-w.Padding &&
		vp.Y >= w.Padding && vp.Y <= float64(w.Height)-w.Padding
}

// Corners returns the padded viewport rectangle's min and max corners.
func (w *Window) Corners() (min, max wireframe.WindowPoint) {
	return wireframe.WindowPoint{X: w.Padding, Y: w.Padding},
		wireframe.WindowPoint{X: float64(w.Width) - w.Padding, Y: float64(w.Height) - w.Padding}
}

// OrthonormalBasis reports whether right, up, normal remain mutually
// orthogonal unit vectors within tolerance, per spec.md §4.5's invariant.
func (w *Window) OrthonormalBasis(tol float64) bool {
	return approxOne(w.Right.Len(), tol) && approxOne(w.Up.Len(), tol) && approxOne(w.Normal.Len(), tol) &&
		approxZero(w.Right.Dot(w.Up), tol) && approxZero(w.Right.Dot(w.Normal), tol) && approxZero(w.Up.Dot(w.Normal), tol)
}

func approxOne(v, tol float64) bool  { return math.Abs(v-1) <= tol }
func approxZero(v, tol float64) bool { return math.Abs(v) <= tol }
