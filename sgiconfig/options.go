package sgiconfig

import (
	"github.com/galvanized-sgi/sgi/camera"
	"github.com/galvanized-sgi/sgi/curve"
	"github.com/galvanized-sgi/sgi/math/lin"
	"github.com/galvanized-sgi/sgi/scene"
	"github.com/galvanized-sgi/sgi/surface"
	"github.com/galvanized-sgi/sgi/wireframe"
)

// windowConfig collects camera.Window construction parameters so NewWindow
// can take a small set of WindowOptions instead of a long fixed argument
// list, following the teacher's Attr/Config functional-options shape.
type windowConfig struct {
	width, height                int
	position, focus              *wireframe.WorldPoint
	normal, up                   *lin.V3
	movementSpeed, rotationSpeed float64
	zoom                         float64
	projection                   camera.Projection
}

// WindowOption overrides one windowConfig attribute. For use in NewWindow.
type WindowOption func(*windowConfig)

func defaultWindowConfig(width, height int) windowConfig {
	return windowConfig{
		width: width, height: height,
		position:      wireframe.NewWorldPoint(0, 0, 100),
		focus:         wireframe.NewWorldPoint(0, 0, -900),
		normal:        lin.NewV3S(0, 0, -1),
		up:            lin.NewV3S(0, 1, 0),
		movementSpeed: 1,
		rotationSpeed: 5,
		zoom:          1,
		projection:    camera.Parallel,
	}
}

// Position sets the window's world-space position.
func Position(x, y, z float64) WindowOption {
	return func(c *windowConfig) { c.position = wireframe.NewWorldPoint(x, y, z) }
}

// Normal sets the window's view normal.
func Normal(x, y, z float64) WindowOption {
	return func(c *windowConfig) { c.normal = lin.NewV3S(x, y, z) }
}

// Up sets the window's up hint, used for basis construction.
func Up(x, y, z float64) WindowOption {
	return func(c *windowConfig) { c.up = lin.NewV3S(x, y, z) }
}

// Focus sets the window's perspective focus point.
func Focus(x, y, z float64) WindowOption {
	return func(c *windowConfig) { c.focus = wireframe.NewWorldPoint(x, y, z) }
}

// Zoom sets the window's initial zoom factor.
func Zoom(z float64) WindowOption {
	return func(c *windowConfig) { c.zoom = z }
}

// Speed sets the window's movement and rotation speeds.
func Speed(movement, rotation float64) WindowOption {
	return func(c *windowConfig) { c.movementSpeed, c.rotationSpeed = movement, rotation }
}

// ProjectionMode sets the window's projection method.
func ProjectionMode(p camera.Projection) WindowOption {
	return func(c *windowConfig) { c.projection = p }
}

// FromState applies a persisted State's window fields as WindowOptions.
func FromState(s State) WindowOption {
	return func(c *windowConfig) {
		c.position = wireframe.NewWorldPoint(s.WindowPosition[0], s.WindowPosition[1], s.WindowPosition[2])
		c.normal = lin.NewV3S(s.WindowNormal[0], s.WindowNormal[1], s.WindowNormal[2])
		c.up = lin.NewV3S(s.WindowUp[0], s.WindowUp[1], s.WindowUp[2])
		c.focus = wireframe.NewWorldPoint(s.WindowFocus[0], s.WindowFocus[1], s.WindowFocus[2])
		c.zoom = s.WindowZoom
	}
}

// NewWindow constructs a camera.Window with the given viewport size,
// applying opts over sensible defaults (canonical pose, unit zoom, parallel
// projection).
func NewWindow(width, height int, opts ...WindowOption) *camera.Window {
	cfg := defaultWindowConfig(width, height)
	for _, opt := range opts {
		opt(&cfg)
	}
	return camera.New(cfg.width, cfg.height, cfg.position, cfg.normal, cfg.up, cfg.focus,
		cfg.movementSpeed, cfg.rotationSpeed, cfg.zoom, cfg.projection)
}

// registryConfig collects scene.Registry construction parameters.
type registryConfig struct {
	curveType        curve.Type
	curveCoefficient int
	surfaceType      surface.Type
	surfaceAlgorithm surface.Algorithm
	surfaceSteps     int
}

// RegistryOption overrides one registryConfig attribute. For use in
// NewRegistry.
type RegistryOption func(*registryConfig)

func defaultRegistryConfig() registryConfig {
	return registryConfig{
		curveType:        curve.Bezier,
		curveCoefficient: 8,
		surfaceType:      surface.Bezier,
		surfaceAlgorithm: surface.BlendingFunctions,
		surfaceSteps:     8,
	}
}

// CurveSettings sets the registry's default curve type and coefficient.
func CurveSettings(t curve.Type, coefficient int) RegistryOption {
	return func(c *registryConfig) { c.curveType, c.curveCoefficient = t, coefficient }
}

// SurfaceSettings sets the registry's default surface type, algorithm, and
// tessellation step count.
func SurfaceSettings(t surface.Type, alg surface.Algorithm, steps int) RegistryOption {
	return func(c *registryConfig) { c.surfaceType, c.surfaceAlgorithm, c.surfaceSteps = t, alg, steps }
}

// RegistryFromState applies a persisted State's curve/surface fields as
// RegistryOptions.
func RegistryFromState(s State) RegistryOption {
	return func(c *registryConfig) {
		c.curveType = s.Curve()
		c.curveCoefficient = s.CurveCoefficient
		c.surfaceType = s.Surface()
		c.surfaceSteps = s.SurfaceDegree
	}
}

// NewRegistry constructs a scene.Registry, applying opts over sensible
// defaults.
func NewRegistry(opts ...RegistryOption) *scene.Registry {
	cfg := defaultRegistryConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return scene.NewRegistry(cfg.curveType, cfg.curveCoefficient, cfg.surfaceType, cfg.surfaceAlgorithm, cfg.surfaceSteps)
}
