// Package scene is the interactive playground controller: it spawns and
// removes shapes on touch and turns accelerometer samples into world gravity.
// The host calls Setup once, then Tick every frame and TouchesBegan on input,
// all from the same goroutine.
package scene

import (
	"image/color"
	"log"
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tumbler/common"
	"github.com/milk9111/tumbler/config"
	"github.com/milk9111/tumbler/ecs"
	"github.com/milk9111/tumbler/ecs/component"
	"github.com/milk9111/tumbler/motion"
	"github.com/milk9111/tumbler/shape"
)

// Physics is the subset of the physics engine the scene drives.
type Physics interface {
	InstallBoundary(bounds common.Rect)
	SetGravity(g cp.Vector)
	Gravity() cp.Vector
	EnsureBody(w *ecs.World, e ecs.Entity) bool
	RemoveBody(e ecs.Entity)
	HitTest(p cp.Vector) (ecs.Entity, bool)
}

// Sensor is the motion handle owned by the scene.
type Sensor interface {
	Start(interval time.Duration)
	Latest() (motion.Sample, bool)
	Stop()
}

// ScaleMode decides how the scene's bounds are presented on a screen of a
// different size.
type ScaleMode int

const (
	// ScaleModeFill stretches each axis independently.
	ScaleModeFill ScaleMode = iota
	// ScaleModeAspectFit scales uniformly and centres, leaving margins.
	ScaleModeAspectFit
)

// Fit returns the per-axis scale and the offset that place a w×h view on an
// outW×outH screen.
func (m ScaleMode) Fit(w, h, outW, outH float64) (sx, sy, ox, oy float64) {
	if w <= 0 || h <= 0 || outW <= 0 || outH <= 0 {
		return 1, 1, 0, 0
	}
	sx, sy = outW/w, outH/h
	if m == ScaleModeAspectFit {
		s := math.Min(sx, sy)
		sx, sy = s, s
		ox, oy = (outW-w*s)/2, (outH-h*s)/2
	}
	return sx, sy, ox, oy
}

// Point is a touch location in view coordinates: origin top-left, y down.
type Point struct {
	X, Y float64
}

type Scene struct {
	world   *ecs.World
	physics Physics
	sensor  Sensor
	rng     shape.Random
	tuning  config.Tuning

	active     bool
	bounds     common.Rect
	background color.Color
	scaleMode  ScaleMode
}

func New(world *ecs.World, physics Physics, sensor Sensor, rng shape.Random, tuning config.Tuning) *Scene {
	if world == nil {
		world = ecs.NewWorld()
	}
	if rng == nil {
		rng = shape.NewRandom(time.Now().UnixNano())
	}
	return &Scene{
		world:     world,
		physics:   physics,
		sensor:    sensor,
		rng:       rng,
		tuning:    tuning,
		scaleMode: ScaleModeFill,
	}
}

// Setup activates the scene inside bounds. Only the first call has effect.
func (s *Scene) Setup(bounds common.Rect) {
	if s.active {
		log.Printf("Scene: Setup called twice, ignoring")
		return
	}
	s.active = true
	s.bounds = bounds
	s.background = s.tuning.Colors.Background.Color
	s.scaleMode = ScaleModeAspectFit

	if s.physics != nil {
		s.physics.InstallBoundary(bounds)
	}
	if s.sensor != nil {
		s.sensor.Start(s.tuning.SampleInterval())
	}

	w, h := int(bounds.Width), int(bounds.Height)
	for i := 0; i < s.tuning.InitialShapes; i++ {
		pos := cp.Vector{
			X: bounds.X + float64(s.rng.Intn(w)),
			Y: bounds.Y + float64(s.rng.Intn(h)),
		}
		s.spawn(pos)
	}
	log.Printf("Scene: active %vx%v with %d shapes", bounds.Width, bounds.Height, s.world.Len())
}

// Tick copies the latest accelerometer sample into world gravity. Without a
// sample, gravity keeps its previous value.
func (s *Scene) Tick(now time.Duration) {
	if !s.active || s.sensor == nil || s.physics == nil {
		return
	}
	sample, ok := s.sensor.Latest()
	if !ok {
		return
	}
	g := s.tuning.Gravity
	s.physics.SetGravity(cp.Vector{
		X: sample.Acceleration.X * g,
		Y: sample.Acceleration.Y * g,
	})
}

// TouchesBegan handles each point on its own: background touches spawn a
// shape there, touches on a shape remove it.
func (s *Scene) TouchesBegan(points []Point) {
	if !s.active {
		return
	}
	for _, p := range points {
		loc := s.ViewToScene(p)
		if e, ok := s.hitTest(loc); ok {
			s.remove(e)
			continue
		}
		s.spawn(loc)
	}
}

// Clear removes every shape. Gravity and the boundary are kept.
func (s *Scene) Clear() {
	if !s.active {
		return
	}
	for _, e := range s.Entities() {
		s.remove(e)
	}
}

// Teardown stops motion sampling. The scene stays active.
func (s *Scene) Teardown() {
	if s.sensor != nil {
		s.sensor.Stop()
	}
}

// ApplyTuning swaps in new tuning. Gravity takes effect on the next sample,
// colours and body material on the next spawn.
func (s *Scene) ApplyTuning(t config.Tuning) {
	s.tuning = t
	if s.active {
		s.background = t.Colors.Background.Color
	}
}

func (s *Scene) hitTest(p cp.Vector) (ecs.Entity, bool) {
	if s.physics == nil {
		return 0, false
	}
	e, ok := s.physics.HitTest(p)
	if !ok || !s.world.IsAlive(e) {
		return 0, false
	}
	return e, true
}

func (s *Scene) spawn(pos cp.Vector) ecs.Entity {
	kind := shape.RandomKind(s.rng)
	outline := shape.OutlineFor(kind)
	collider := shape.ColliderFor(kind, outline)

	e := s.world.CreateEntity()
	if err := ecs.Add(s.world, e, component.TransformComponent, component.Transform{X: pos.X, Y: pos.Y}); err != nil {
		panic("scene: add transform: " + err.Error())
	}
	if err := ecs.Add(s.world, e, component.ShapeComponent, component.Shape{
		Kind:    kind,
		Outline: outline,
		Fill:    s.tuning.Colors.Fill.Color,
	}); err != nil {
		panic("scene: add shape: " + err.Error())
	}
	if err := ecs.Add(s.world, e, component.PhysicsBodyComponent, component.PhysicsBody{
		Collider:   collider,
		Mass:       s.tuning.Body.Mass,
		Friction:   s.tuning.Body.Friction,
		Elasticity: s.tuning.Body.Elasticity,
	}); err != nil {
		panic("scene: add physics body: " + err.Error())
	}
	if s.physics != nil && !s.physics.EnsureBody(s.world, e) {
		log.Printf("Scene: no body for %s entity %s", kind, e)
	}
	return e
}

func (s *Scene) remove(e ecs.Entity) {
	if s.physics != nil {
		s.physics.RemoveBody(e)
	}
	s.world.DestroyEntity(e)
}

// ViewToScene flips a view point into scene space (origin bottom-left, y up).
func (s *Scene) ViewToScene(p Point) cp.Vector {
	return cp.Vector{X: s.bounds.X + p.X, Y: s.bounds.Y + s.bounds.Height - p.Y}
}

// SceneToView is the inverse of ViewToScene.
func (s *Scene) SceneToView(v cp.Vector) Point {
	return Point{X: v.X - s.bounds.X, Y: s.bounds.Y + s.bounds.Height - v.Y}
}

func (s *Scene) World() *ecs.World {
	return s.world
}

// Entities returns every spawned shape.
func (s *Scene) Entities() []ecs.Entity {
	return s.world.Query(component.ShapeComponent.Kind())
}

func (s *Scene) Count() int {
	return len(s.Entities())
}

// Position returns the scene-space position of e.
func (s *Scene) Position(e ecs.Entity) (cp.Vector, bool) {
	t, ok := ecs.Get(s.world, e, component.TransformComponent)
	if !ok {
		return cp.Vector{}, false
	}
	return cp.Vector{X: t.X, Y: t.Y}, true
}

func (s *Scene) Gravity() cp.Vector {
	if s.physics == nil {
		return cp.Vector{}
	}
	return s.physics.Gravity()
}

func (s *Scene) Active() bool {
	return s.active
}

func (s *Scene) Bounds() common.Rect {
	return s.bounds
}

func (s *Scene) Background() color.Color {
	return s.background
}

func (s *Scene) ScaleMode() ScaleMode {
	return s.scaleMode
}

func (s *Scene) Tuning() config.Tuning {
	return s.tuning
}
