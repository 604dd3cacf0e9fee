package system

import (
	"log"

	"github.com/milk9111/tumbler/ecs"
	"github.com/milk9111/tumbler/ecs/component"
)

// DefaultStep is the fixed simulation step at ebiten's default 60 TPS.
const DefaultStep = 1.0 / 60.0

// PhysicsSystem keeps the Chipmunk space in step with the ECS world: it drops
// bodies of destroyed entities, builds bodies for new ones, advances the
// simulation and writes body poses back into Transform components.
type PhysicsSystem struct {
	world *ecs.PhysicsWorld
	step  float64
}

func NewPhysicsSystem(pw *ecs.PhysicsWorld, step float64) *PhysicsSystem {
	if step <= 0 {
		step = DefaultStep
	}
	return &PhysicsSystem{world: pw, step: step}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || ps.world == nil || w == nil {
		return
	}

	ps.world.Prune(w)
	ps.syncEntities(w)
	ps.world.Step(ps.step)
	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		if _, ok := ps.world.Body(e); ok {
			continue
		}
		if !ps.world.EnsureBody(w, e) {
			log.Printf("PhysicsSystem: could not build body for entity %s", e)
		}
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		body, ok := ps.world.Body(e)
		if !ok {
			continue
		}
		t, _ := ecs.Get(w, e, component.TransformComponent)
		pos := body.Position()
		t.X = pos.X
		t.Y = pos.Y
		t.Rotation = body.Angle()
		if err := ecs.Add(w, e, component.TransformComponent, t); err != nil {
			log.Printf("PhysicsSystem: sync transform for entity %s: %v", e, err)
		}
	}
}
