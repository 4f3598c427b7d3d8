// Package sgiconfig persists application state between runs (spec.md §6)
// and provides functional-options construction for camera.Window and
// scene.Registry, grounded on the teacher's config.go (Attr/Config
// functional options) and load/shd.go (gopkg.in/yaml.v3 marshaling).
package sgiconfig

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/galvanized-sgi/sgi/camera"
	"github.com/galvanized-sgi/sgi/clip"
	"github.com/galvanized-sgi/sgi/curve"
	"github.com/galvanized-sgi/sgi/surface"
)

// State is the persisted application state schema from spec.md §6, loaded
// and saved with gopkg.in/yaml.v3.
type State struct {
	WindowPosition        [3]float64 `yaml:"window_position"`
	WindowNormal          [3]float64 `yaml:"window_normal"`
	WindowFocus           [3]float64 `yaml:"window_focus"`
	WindowUp              [3]float64 `yaml:"window_up"`
	WindowZoom            float64    `yaml:"window_zoom"`
	LineClippingAlgorithm int        `yaml:"line_clipping_algorithm"`
	CurveType             int        `yaml:"curve_type"`
	CurveCoefficient      int        `yaml:"curve_coefficient"`
	SurfaceType           int        `yaml:"surface_type"`
	SurfaceDegree         int        `yaml:"surface_degree"`
	Debug                 bool       `yaml:"debug"`
}

// Defaults returns the state of a freshly recentered canonical window with
// default curve/surface/clip settings.
func Defaults() State {
	return State{
		WindowPosition:        [3]float64{0, 0, 100},
		WindowNormal:          [3]float64{0, 0, -1},
		WindowFocus:           [3]float64{0, 0, -900},
		WindowUp:              [3]float64{0, 1, 0},
		WindowZoom:            1,
		LineClippingAlgorithm: int(clip.CohenSutherland),
		CurveType:             int(curve.Bezier),
		CurveCoefficient:      8,
		SurfaceType:           int(surface.Bezier),
		SurfaceDegree:         4,
		Debug:                 false,
	}
}

// Marshal encodes s as YAML.
func Marshal(s State) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("sgiconfig: marshal: %w", err)
	}
	return data, nil
}

// Unmarshal decodes YAML into a State.
func Unmarshal(data []byte) (State, error) {
	var s State
	if err := yaml.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("sgiconfig: unmarshal: %w", err)
	}
	return s, nil
}

// ClipAlgorithm returns s's line clipping algorithm as a clip.Algorithm.
func (s State) ClipAlgorithm() clip.Algorithm { return clip.Algorithm(s.LineClippingAlgorithm) }

// Curve returns s's curve type as a curve.Type.
func (s State) Curve() curve.Type { return curve.Type(s.CurveType) }

// Surface returns s's surface type as a surface.Type.
func (s State) Surface() surface.Type { return surface.Type(s.SurfaceType) }
