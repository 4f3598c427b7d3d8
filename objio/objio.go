// Package objio reads and writes the OBJ-derived text format documented in
// spec.md §6: a line-oriented grammar describing one or more Wireframes.
// Grounded on gazed-vu's load/obj.go (scan-and-dispatch parsing style) and
// load/mtl.go (usemtl pending-state token handling).
package objio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/galvanized-sgi/sgi/wireframe"
)

// ErrMalformedLine is the sentinel wrapped into every parse error, so
// callers can errors.Is regardless of which line failed.
var ErrMalformedLine = errors.New("objio: malformed line")

// ParseError identifies the offending line for an actionable message, per
// spec.md §7's InputFormat propagation policy.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("objio: line %d: %v: %q", e.Line, e.Err, e.Text)
}
func (e *ParseError) Unwrap() error { return e.Err }

// Read parses r into an ordered list of Wireframes, assigning ids by
// position (first object gets id 0, etc; callers that already own a
// registry id counter should use Registry.Add instead of this id).
func Read(r io.Reader) ([]*wireframe.Wireframe, error) {
	scanner := bufio.NewScanner(r)
	var wireframes []*wireframe.Wireframe
	var cur *wireframe.Wireframe
	var pendingColor string
	var pendingCurve *pendingCurveState
	var pendingSurface *pendingSurfaceState
	lineNo := 0

	flush := func() {
		if cur != nil {
			wireframes = append(wireframes, cur)
		}
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		head := fields[0]
		body := fields[1:]

		switch head {
		case "o", "g":
			if len(body) != 1 {
				return nil, parseErr(lineNo, line, fmt.Errorf("%w: expected a name", ErrMalformedLine))
			}
			flush()
			cur = wireframe.New(len(wireframes), body[0])
			pendingColor = ""
			pendingCurve = nil
			pendingSurface = nil

		case "v":
			if cur == nil {
				cur = wireframe.New(len(wireframes), "")
			}
			if len(body) != 3 {
				return nil, parseErr(lineNo, line, fmt.Errorf("%w: expected 3 reals", ErrMalformedLine))
			}
			x, y, z, err := parse3(body)
			if err != nil {
				return nil, parseErr(lineNo, line, err)
			}
			cur.Vertices = append(cur.Vertices, wireframe.NewWorldPoint(x, y, z))

		case "l":
			if cur == nil || len(body) < 2 {
				return nil, parseErr(lineNo, line, fmt.Errorf("%w: line needs >= 2 indices", ErrMalformedLine))
			}
			idx, err := parseIndices(body)
			if err != nil {
				return nil, parseErr(lineNo, line, err)
			}
			for i := 0; i+1 < len(idx); i++ {
				cur.Edges = append(cur.Edges, [2]int{idx[i] - 1, idx[i+1] - 1})
			}

		case "usemtl":
			if len(body) != 1 {
				return nil, parseErr(lineNo, line, fmt.Errorf("%w: expected a color token", ErrMalformedLine))
			}
			pendingColor = body[0]

		case "f":
			if cur == nil || len(body) < 3 {
				return nil, parseErr(lineNo, line, fmt.Errorf("%w: face needs >= 3 indices", ErrMalformedLine))
			}
			idx, err := parseIndices(body)
			if err != nil {
				return nil, parseErr(lineNo, line, err)
			}
			for i := range idx {
				idx[i]--
			}
			cur.Faces = append(cur.Faces, wireframe.Face{Indices: idx, FillColor: pendingColor})
			pendingColor = ""

		case "ctype":
			if cur == nil || len(body) != 1 {
				return nil, parseErr(lineNo, line, fmt.Errorf("%w: expected a curve type", ErrMalformedLine))
			}
			ct, err := parseCurveType(body[0])
			if err != nil {
				return nil, parseErr(lineNo, line, err)
			}
			pendingCurve = &pendingCurveState{typ: ct}

		case "deg":
			switch {
			case pendingCurve != nil:
				if len(body) != 1 {
					return nil, parseErr(lineNo, line, fmt.Errorf("%w: curve deg expects 1 field", ErrMalformedLine))
				}
				d, err := strconv.Atoi(body[0])
				if err != nil {
					return nil, parseErr(lineNo, line, fmt.Errorf("%w: %v", ErrMalformedLine, err))
				}
				pendingCurve.degree = d
			case pendingSurface != nil:
				if len(body) != 2 {
					return nil, parseErr(lineNo, line, fmt.Errorf("%w: surface deg expects 2 fields", ErrMalformedLine))
				}
				du, err1 := strconv.Atoi(body[0])
				dv, err2 := strconv.Atoi(body[1])
				if err1 != nil || err2 != nil {
					return nil, parseErr(lineNo, line, fmt.Errorf("%w: bad surface degree", ErrMalformedLine))
				}
				pendingSurface.du, pendingSurface.dv = du, dv
			default:
				return nil, parseErr(lineNo, line, fmt.Errorf("%w: deg without an open ctype/stype block", ErrMalformedLine))
			}

		case "curv":
			if cur == nil || pendingCurve == nil {
				return nil, parseErr(lineNo, line, fmt.Errorf("%w: curv without an open ctype block", ErrMalformedLine))
			}
			if len(body) < 3 {
				return nil, parseErr(lineNo, line, fmt.Errorf("%w: curv needs start, end, and indices", ErrMalformedLine))
			}
			start, err1 := strconv.ParseFloat(body[0], 64)
			end, err2 := strconv.ParseFloat(body[1], 64)
			if err1 != nil || err2 != nil {
				return nil, parseErr(lineNo, line, fmt.Errorf("%w: bad curv start/end", ErrMalformedLine))
			}
			idx, err := parseIndices(body[2:])
			if err != nil {
				return nil, parseErr(lineNo, line, err)
			}
			for i := range idx {
				idx[i]--
			}
			degree := pendingCurve.degree
			if degree == 0 {
				degree = len(idx)
			}
			if err := validateCurveCounts(pendingCurve.typ, degree, len(idx)); err != nil {
				return nil, parseErr(lineNo, line, err)
			}
			cur.Curves = append(cur.Curves, wireframe.Curve{
				Type: pendingCurve.typ, ControlPointIndices: idx,
				Start: start, End: end, Degree: degree,
			})
			pendingCurve = nil

		case "stype":
			if cur == nil || len(body) < 1 {
				return nil, parseErr(lineNo, line, fmt.Errorf("%w: expected a surface type", ErrMalformedLine))
			}
			st, err := parseSurfaceType(body[0])
			if err != nil {
				return nil, parseErr(lineNo, line, err)
			}
			alg := wireframe.BlendingFunctions
			if len(body) >= 2 {
				alg, err = parseAlgorithm(body[1])
				if err != nil {
					return nil, parseErr(lineNo, line, err)
				}
			}
			pendingSurface = &pendingSurfaceState{typ: st, alg: alg}

		case "surf":
			if cur == nil || pendingSurface == nil {
				return nil, parseErr(lineNo, line, fmt.Errorf("%w: surf without an open stype block", ErrMalformedLine))
			}
			if len(body) < 5 {
				return nil, parseErr(lineNo, line, fmt.Errorf("%w: surf needs u0,u1,v0,v1 and indices", ErrMalformedLine))
			}
			nums := make([]float64, 4)
			for i := 0; i < 4; i++ {
				v, err := strconv.ParseFloat(body[i], 64)
				if err != nil {
					return nil, parseErr(lineNo, line, fmt.Errorf("%w: bad surf bound", ErrMalformedLine))
				}
				nums[i] = v
			}
			idx, err := parseIndices(body[4:])
			if err != nil {
				return nil, parseErr(lineNo, line, err)
			}
			if len(idx) != pendingSurface.du*pendingSurface.dv {
				return nil, parseErr(lineNo, line, fmt.Errorf("%w: surf has %d indices, want du*dv=%d",
					ErrMalformedLine, len(idx), pendingSurface.du*pendingSurface.dv))
			}
			for i := range idx {
				idx[i]--
			}
			cur.Surfaces = append(cur.Surfaces, wireframe.Surface{
				Type: pendingSurface.typ, Algorithm: pendingSurface.alg,
				ControlPointIndices: idx, DegreeU: pendingSurface.du, DegreeV: pendingSurface.dv,
				StartU: nums[0], EndU: nums[1], StartV: nums[2], EndV: nums[3],
			})
			pendingSurface = nil

		case "parm":
			// accepted and ignored per spec.md §6.

		default:
			return nil, parseErr(lineNo, line, fmt.Errorf("%w: unrecognized header %q", ErrMalformedLine, head))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	return wireframes, nil
}

type pendingCurveState struct {
	typ    wireframe.CurveType
	degree int
}

type pendingSurfaceState struct {
	typ    wireframe.SurfaceType
	alg    wireframe.SurfaceAlgorithm
	du, dv int
}

func parseErr(line int, text string, err error) error {
	return &ParseError{Line: line, Text: text, Err: err}
}

// validateCurveCounts checks a curv block's resolved control-point count
// against its curve type's degree constraint, mirroring the surf block's
// len(idx) != du*dv check and curve.Evaluate's own control-point-count
// errors: B-spline needs at least 4 control points, and a degree-d Bezier
// needs at least d (curve.evaluateBezier's sliding window silently stops
// short of any trailing points that don't fill a full window, the same
// way scene.Registry.FinishCurve's degree-capping produces them).
func validateCurveCounts(typ wireframe.CurveType, degree, n int) error {
	switch typ {
	case wireframe.BSpline:
		if n < 4 {
			return fmt.Errorf("%w: bspline curve needs >= 4 control points, got %d", ErrMalformedLine, n)
		}
	default: // Bezier
		if degree < 2 {
			return fmt.Errorf("%w: bezier curve degree %d < 2", ErrMalformedLine, degree)
		}
		if n < degree {
			return fmt.Errorf("%w: bezier curve needs >= %d control points for degree %d, got %d", ErrMalformedLine, degree, degree, n)
		}
	}
	return nil
}

func parse3(fields []string) (x, y, z float64, err error) {
	vals := make([]float64, 3)
	for i, f := range fields {
		v, e := strconv.ParseFloat(f, 64)
		if e != nil {
			return 0, 0, 0, fmt.Errorf("%w: %v", ErrMalformedLine, e)
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], nil
}

func parseIndices(fields []string) ([]int, error) {
	idx := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: bad index %q", ErrMalformedLine, f)
		}
		idx = append(idx, v)
	}
	return idx, nil
}

func parseCurveType(s string) (wireframe.CurveType, error) {
	switch s {
	case "bezier":
		return wireframe.Bezier, nil
	case "bspline":
		return wireframe.BSpline, nil
	default:
		return 0, fmt.Errorf("%w: unknown curve type %q", ErrMalformedLine, s)
	}
}

func parseSurfaceType(s string) (wireframe.SurfaceType, error) {
	switch s {
	case "bezier":
		return wireframe.SurfaceBezier, nil
	case "bspline":
		return wireframe.SurfaceBSpline, nil
	default:
		return 0, fmt.Errorf("%w: unknown surface type %q", ErrMalformedLine, s)
	}
}

func parseAlgorithm(s string) (wireframe.SurfaceAlgorithm, error) {
	switch s {
	case "blend", "blending":
		return wireframe.BlendingFunctions, nil
	case "forward", "fd":
		return wireframe.ForwardDifferences, nil
	default:
		return 0, fmt.Errorf("%w: unknown surface algorithm %q", ErrMalformedLine, s)
	}
}

// Write emits one text block per wireframe: vertex lines, edge lines, face
// lines, curve blocks, and surface blocks in that order, with 1-based
// indices, matching the grammar Read accepts.
func Write(w io.Writer, wireframes []*wireframe.Wireframe) error {
	bw := bufio.NewWriter(w)
	for _, wf := range wireframes {
		name := wf.Name
		if name == "" {
			name = fmt.Sprintf("object%d", wf.ID)
		}
		fmt.Fprintf(bw, "o %s\n", name)
		for _, v := range wf.Vertices {
			fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
		}
		for _, e := range wf.Edges {
			fmt.Fprintf(bw, "l %d %d\n", e[0]+1, e[1]+1)
		}
		for _, f := range wf.Faces {
			if f.FillColor != "" {
				fmt.Fprintf(bw, "usemtl %s\n", f.FillColor)
			}
			fmt.Fprint(bw, "f")
			for _, idx := range f.Indices {
				fmt.Fprintf(bw, " %d", idx+1)
			}
			fmt.Fprint(bw, "\n")
		}
		for _, c := range wf.Curves {
			fmt.Fprintf(bw, "ctype %s\n", curveTypeName(c.Type))
			fmt.Fprintf(bw, "deg %d\n", c.Degree)
			fmt.Fprintf(bw, "curv %g %g", c.Start, c.End)
			for _, idx := range c.ControlPointIndices {
				fmt.Fprintf(bw, " %d", idx+1)
			}
			fmt.Fprint(bw, "\n")
		}
		for _, s := range wf.Surfaces {
			fmt.Fprintf(bw, "stype %s %s\n", surfaceTypeName(s.Type), algorithmName(s.Algorithm))
			fmt.Fprintf(bw, "deg %d %d\n", s.DegreeU, s.DegreeV)
			fmt.Fprintf(bw, "surf %g %g %g %g", s.StartU, s.EndU, s.StartV, s.EndV)
			for _, idx := range s.ControlPointIndices {
				fmt.Fprintf(bw, " %d", idx+1)
			}
			fmt.Fprint(bw, "\n")
		}
	}
	return bw.Flush()
}

func curveTypeName(t wireframe.CurveType) string {
	if t == wireframe.BSpline {
		return "bspline"
	}
	return "bezier"
}

func surfaceTypeName(t wireframe.SurfaceType) string {
	if t == wireframe.SurfaceBSpline {
		return "bspline"
	}
	return "bezier"
}

func algorithmName(a wireframe.SurfaceAlgorithm) string {
	if a == wireframe.ForwardDifferences {
		return "forward"
	}
	return "blend"
}
