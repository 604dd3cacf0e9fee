package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tumbler/common"
	"github.com/milk9111/tumbler/ecs"
	"github.com/milk9111/tumbler/ecs/component"
	"github.com/milk9111/tumbler/shape"
)

func addShape(t *testing.T, w *ecs.World, kind shape.Kind, x, y float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.TransformComponent, component.Transform{X: x, Y: y}); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	collider := shape.ColliderFor(kind, shape.OutlineFor(kind))
	if err := ecs.Add(w, e, component.PhysicsBodyComponent, component.PhysicsBody{Collider: collider, Mass: 1}); err != nil {
		t.Fatalf("add body: %v", err)
	}
	return e
}

func TestPhysicsSystemBuildsBodiesLazily(t *testing.T) {
	w := ecs.NewWorld()
	pw := ecs.NewPhysicsWorld(0)
	ps := NewPhysicsSystem(pw, 0)
	e := addShape(t, w, shape.Square, 160, 240)

	ps.Update(w)

	if _, ok := pw.Body(e); !ok {
		t.Fatalf("expected body to be built on update")
	}
}

func TestPhysicsSystemGravityMovesBodies(t *testing.T) {
	cases := []struct {
		name    string
		gravity cp.Vector
		check   func(t *testing.T, before, after component.Transform)
	}{
		{"none", cp.Vector{}, func(t *testing.T, before, after component.Transform) {
			if before.X != after.X || before.Y != after.Y {
				t.Fatalf("body moved without gravity: %v -> %v", before, after)
			}
		}},
		{"down", cp.Vector{X: 0, Y: -common.EarthGravity}, func(t *testing.T, before, after component.Transform) {
			if after.Y >= before.Y {
				t.Fatalf("expected body to fall, y %v -> %v", before.Y, after.Y)
			}
		}},
		{"right", cp.Vector{X: common.EarthGravity, Y: 0}, func(t *testing.T, before, after component.Transform) {
			if after.X <= before.X {
				t.Fatalf("expected body to slide right, x %v -> %v", before.X, after.X)
			}
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			pw := ecs.NewPhysicsWorld(0)
			pw.InstallBoundary(common.Rect{Width: 320, Height: 480})
			pw.SetGravity(c.gravity)
			ps := NewPhysicsSystem(pw, 0)
			e := addShape(t, w, shape.Circle, 160, 240)
			before, _ := ecs.Get(w, e, component.TransformComponent)

			for i := 0; i < 10; i++ {
				ps.Update(w)
			}

			after, _ := ecs.Get(w, e, component.TransformComponent)
			c.check(t, before, after)
		})
	}
}

func TestPhysicsSystemBoundaryHoldsBodies(t *testing.T) {
	w := ecs.NewWorld()
	pw := ecs.NewPhysicsWorld(0)
	pw.InstallBoundary(common.Rect{Width: 320, Height: 480})
	pw.SetGravity(cp.Vector{Y: -common.EarthGravity})
	ps := NewPhysicsSystem(pw, 0)
	e := addShape(t, w, shape.Square, 160, 100)

	for i := 0; i < 300; i++ {
		ps.Update(w)
	}

	tr, _ := ecs.Get(w, e, component.TransformComponent)
	if tr.Y < 0 {
		t.Fatalf("body fell through the floor: y=%v", tr.Y)
	}
}

func TestPhysicsSystemPrunesDestroyed(t *testing.T) {
	w := ecs.NewWorld()
	pw := ecs.NewPhysicsWorld(0)
	ps := NewPhysicsSystem(pw, 0)
	e := addShape(t, w, shape.Triangle, 10, 10)
	ps.Update(w)

	w.DestroyEntity(e)
	ps.Update(w)

	if pw.BodyCount() != 0 {
		t.Fatalf("expected destroyed entity's body to be removed, %d left", pw.BodyCount())
	}
}
