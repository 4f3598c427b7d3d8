package scene

import (
	"fmt"
	"math"
	"sort"

	"github.com/galvanized-sgi/sgi/camera"
	"github.com/galvanized-sgi/sgi/clip"
	"github.com/galvanized-sgi/sgi/curve"
	"github.com/galvanized-sgi/sgi/surface"
	"github.com/galvanized-sgi/sgi/wireframe"
)

// Canvas is the abstract draw-primitive sink the render driver targets,
// grounded on the teacher's render.Draw abstraction (a small interface of
// setters consumed by a backend-specific renderer, rather than coupling the
// driver to any particular output technology).
type Canvas interface {
	DrawPoint(p wireframe.WindowPoint, color string)
	DrawLine(a, b wireframe.WindowPoint, color string)
	DrawPolygon(pts []wireframe.WindowPoint, fillColor, lineColor string)

	// Debug overlay primitives, per SPEC_FULL.md §4.7a. A hosting sink that
	// has no use for them may implement all four as no-ops.
	DrawGrid(spacing float64, color string)
	DrawAxes(color string)
	DrawBorder(color string)
	DrawLabel(text string, at wireframe.WindowPoint)
}

// BuildingColor is the distinguished color the driver uses to draw the
// in-progress build buffer overlay, per spec.md §4.7 step 6.
const BuildingColor = "building"

// Driver orchestrates one frame of spec.md §4.7's render algorithm against
// a Registry, a camera.Window, and a clip.Algorithm.
type Driver struct {
	Window        *camera.Window
	ClipAlgorithm clip.Algorithm
	Debug         bool
}

// NewDriver returns a Driver targeting w, clipping lines with a.
func NewDriver(w *camera.Window, a clip.Algorithm) *Driver {
	return &Driver{Window: w, ClipAlgorithm: a}
}

// Render executes one frame of spec.md §4.7's algorithm: snapshot, optional
// debug overlay, distance sort (far first), per-wireframe projection and
// lowering to window objects, clipping, drawing, and finally the build
// buffer overlay.
func (d *Driver) Render(r *Registry, canvas Canvas) {
	frame := r.Snapshot()

	if d.Debug {
		canvas.DrawBorder("debug")
		canvas.DrawAxes("debug")
		canvas.DrawGrid(1, "debug")
		pos := d.Window.Position
		lo, _ := d.Window.Corners()
		canvas.DrawLabel(fmt.Sprintf("(%.2f, %.2f, %.2f)", pos.X, pos.Y, pos.Z), lo)
	}

	sort.SliceStable(frame, func(i, j int) bool {
		return d.distanceToWindow(frame[i]) > d.distanceToWindow(frame[j])
	})

	for _, w := range frame {
		for _, obj := range d.windowObjects(w) {
			d.drawObject(obj, canvas)
		}
	}

	d.renderBuildBuffer(r, canvas)
}

func (d *Driver) distanceToWindow(w *wireframe.Wireframe) float64 {
	c := w.Centroid()
	pos := d.Window.Position
	dx, dy, dz := c.X-pos.X, c.Y-pos.Y, c.Z-pos.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// windowObjects projects w's vertices and lowers it to zero or more
// wireframe.WindowObjects, per spec.md §4.7 step 4: a point mark becomes a
// Point per vertex, each edge becomes a Line, each face becomes a Polygon,
// each Curve is evaluated via the curve package, and each Surface is
// evaluated via the surface package.
func (d *Driver) windowObjects(w *wireframe.Wireframe) []wireframe.WindowObject {
	projected := make([]wireframe.WindowPoint, len(w.Vertices))
	for i, v := range w.Vertices {
		projected[i] = d.Window.WorldToWindow(v)
	}

	var out []wireframe.WindowObject

	if w.IsPointMark() {
		for _, p := range projected {
			out = append(out, wireframe.NewPointObject(p))
		}
		return out
	}

	for _, e := range w.Edges {
		if e[0] < 0 || e[0] >= len(projected) || e[1] < 0 || e[1] >= len(projected) {
			continue
		}
		out = append(out, wireframe.NewLineObject(projected[e[0]], projected[e[1]]))
	}

	for _, f := range w.Faces {
		pts := make([]wireframe.WindowPoint, 0, len(f.Indices))
		valid := true
		for _, idx := range f.Indices {
			if idx < 0 || idx >= len(projected) {
				valid = false
				break
			}
			pts = append(pts, projected[idx])
		}
		if valid {
			out = append(out, wireframe.NewPolygonObject(pts, f.FillColor))
		}
	}

	for _, c := range w.Curves {
		pts, ok := resolveIndices(projected, c.ControlPointIndices)
		if !ok {
			continue
		}
		samples, err := curve.Evaluate(pts, c.Type, c.Degree, curveSteps(c))
		if err != nil {
			continue
		}
		for i := 0; i+1 < len(samples); i++ {
			out = append(out, wireframe.NewLineObject(samples[i], samples[i+1]))
		}
	}

	for _, s := range w.Surfaces {
		pts, ok := resolveIndices(projected, s.ControlPointIndices)
		if !ok {
			continue
		}
		steps := s.Steps
		if steps <= 0 {
			steps = 1
		}
		patches, err := surface.Evaluate(pts, s.DegreeU, s.DegreeV, s.Type, s.Algorithm, steps)
		if err != nil {
			continue
		}
		for _, grid := range patches {
			out = append(out, wireframe.NewSurfaceObject(grid, steps))
		}
	}

	return out
}

func curveSteps(c wireframe.Curve) int {
	if c.Degree < 2 {
		return 2
	}
	return 8
}

func resolveIndices(pts []wireframe.WindowPoint, indices []int) ([]wireframe.WindowPoint, bool) {
	out := make([]wireframe.WindowPoint, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(pts) {
			return nil, false
		}
		out = append(out, pts[idx])
	}
	return out, true
}

// drawObject clips obj against the window's viewport and sends whatever
// survives to canvas, per spec.md §4.7 step 5.
func (d *Driver) drawObject(obj wireframe.WindowObject, canvas Canvas) {
	lo, hi := d.Window.Corners()
	rect := clip.Rect{XMin: lo.X, YMin: lo.Y, XMax: hi.X, YMax: hi.Y}

	switch obj.Kind {
	case wireframe.KindPoint:
		vp := d.Window.WindowToViewport(obj.Point)
		if rect.ContainsPoint(vp) {
			canvas.DrawPoint(vp, "")
		}
	case wireframe.KindLine:
		a := d.Window.WindowToViewport(obj.Start)
		b := d.Window.WindowToViewport(obj.End)
		if ns, ne, ok := clip.Line(d.ClipAlgorithm, rect, a, b); ok {
			canvas.DrawLine(ns, ne, "")
		}
	case wireframe.KindPolygon:
		vp := make([]wireframe.WindowPoint, len(obj.Polygon))
		for i, p := range obj.Polygon {
			vp[i] = d.Window.WindowToViewport(p)
		}
		if out, ok := clip.Polygon(rect, vp); ok {
			canvas.DrawPolygon(out, obj.FillColor, "")
		}
	case wireframe.KindSurface:
		for _, line := range wireframe.GridLines(obj.Grid) {
			a := d.Window.WindowToViewport(line[0])
			b := d.Window.WindowToViewport(line[1])
			if ns, ne, ok := clip.Line(d.ClipAlgorithm, rect, a, b); ok {
				canvas.DrawLine(ns, ne, "")
			}
		}
	}
}

// renderBuildBuffer draws the in-progress build buffer: every buffered
// point as a clipped point, and every consecutive pair as a clipped line,
// all in BuildingColor, per spec.md §4.7 step 6.
func (d *Driver) renderBuildBuffer(r *Registry, canvas Canvas) {
	if len(r.buffer) == 0 {
		return
	}
	lo, hi := d.Window.Corners()
	rect := clip.Rect{XMin: lo.X, YMin: lo.Y, XMax: hi.X, YMax: hi.Y}

	projected := make([]wireframe.WindowPoint, len(r.buffer))
	for i, p := range r.buffer {
		projected[i] = d.Window.WorldToViewport(p)
	}
	for _, p := range projected {
		if rect.ContainsPoint(p) {
			canvas.DrawPoint(p, BuildingColor)
		}
	}
	for i := 0; i+1 < len(projected); i++ {
		if ns, ne, ok := clip.Line(d.ClipAlgorithm, rect, projected[i], projected[i+1]); ok {
			canvas.DrawLine(ns, ne, BuildingColor)
		}
	}
}
