package ecs

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tumbler/common"
	"github.com/milk9111/tumbler/ecs/component"
	"github.com/milk9111/tumbler/shape"
)

const (
	collisionTypeBoundary cp.CollisionType = iota + 1
	collisionTypeShape
)

const (
	defaultIterations     = 20
	defaultPointsPerMeter = 150.0
	boundaryFriction      = 0.6
)

// PhysicsWorld owns the Chipmunk space, the boundary edge loop and the
// mapping from collider shapes back to entities.
type PhysicsWorld struct {
	space          *cp.Space
	pointsPerMeter float64
	gravity        cp.Vector

	boundary      []*cp.Shape
	shapeToEntity map[*cp.Shape]Entity
	bodies        map[Entity]*component.PhysicsBody
}

// NewPhysicsWorld creates a space with zero gravity. pointsPerMeter scales
// world gravity (m/s²) into scene points; values <= 0 use the default.
func NewPhysicsWorld(pointsPerMeter float64) *PhysicsWorld {
	if pointsPerMeter <= 0 {
		pointsPerMeter = defaultPointsPerMeter
	}
	space := cp.NewSpace()
	space.Iterations = defaultIterations
	space.SetGravity(cp.Vector{})

	return &PhysicsWorld{
		space:          space,
		pointsPerMeter: pointsPerMeter,
		shapeToEntity:  make(map[*cp.Shape]Entity),
		bodies:         make(map[Entity]*component.PhysicsBody),
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// SetPointsPerMeter rescales gravity handed to the space.
func (pw *PhysicsWorld) SetPointsPerMeter(ppm float64) {
	if pw == nil || ppm <= 0 {
		return
	}
	pw.pointsPerMeter = ppm
	pw.space.SetGravity(pw.gravity.Mult(ppm))
}

// SetGravity sets world gravity in m/s².
func (pw *PhysicsWorld) SetGravity(g cp.Vector) {
	if pw == nil {
		return
	}
	pw.gravity = g
	pw.space.SetGravity(g.Mult(pw.pointsPerMeter))
}

// Gravity returns world gravity in m/s².
func (pw *PhysicsWorld) Gravity() cp.Vector {
	if pw == nil {
		return cp.Vector{}
	}
	return pw.gravity
}

// InstallBoundary replaces the edge loop around bounds.
func (pw *PhysicsWorld) InstallBoundary(bounds common.Rect) {
	if pw == nil || pw.space == nil {
		return
	}
	for _, s := range pw.boundary {
		pw.space.RemoveShape(s)
	}
	pw.boundary = pw.boundary[:0]
	if bounds.Empty() {
		return
	}

	l, b := bounds.X, bounds.Y
	r, t := bounds.X+bounds.Width, bounds.Y+bounds.Height
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: l, Y: b}, b: cp.Vector{X: r, Y: b}},
		{a: cp.Vector{X: r, Y: b}, b: cp.Vector{X: r, Y: t}},
		{a: cp.Vector{X: r, Y: t}, b: cp.Vector{X: l, Y: t}},
		{a: cp.Vector{X: l, Y: t}, b: cp.Vector{X: l, Y: b}},
	}
	for _, seg := range segments {
		s := cp.NewSegment(pw.space.StaticBody, seg.a, seg.b, 0)
		s.SetFriction(boundaryFriction)
		s.SetCollisionType(collisionTypeBoundary)
		pw.space.AddShape(s)
		pw.boundary = append(pw.boundary, s)
	}
}

// EnsureBody builds the Chipmunk body and collider for e from its
// PhysicsBody and Transform components. The body starts at rest.
func (pw *PhysicsWorld) EnsureBody(w *World, e Entity) bool {
	if pw == nil || pw.space == nil || !w.IsAlive(e) {
		return false
	}
	if _, ok := pw.bodies[e]; ok {
		return true
	}
	pb, ok := Get(w, e, component.PhysicsBodyComponent)
	if !ok {
		return false
	}
	t, ok := Get(w, e, component.TransformComponent)
	if !ok {
		return false
	}

	mass := pb.Mass
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, pb.Collider.Moment(mass))
	body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
	body.SetAngle(t.Rotation)
	body.SetVelocity(0, 0)
	body.SetAngularVelocity(0)

	var s *cp.Shape
	switch pb.Collider.Kind {
	case shape.ColliderPolygon:
		verts := pb.Collider.LocalVertices()
		s = cp.NewPolyShape(body, len(verts), verts, cp.NewTransformIdentity(), 0)
	case shape.ColliderBox:
		s = cp.NewBox(body, pb.Collider.Width, pb.Collider.Height, 0)
	case shape.ColliderDisc:
		s = cp.NewCircle(body, pb.Collider.Radius, cp.Vector{})
	default:
		log.Printf("PhysicsWorld: EnsureBody entity %s has unknown collider %d", e, pb.Collider.Kind)
		return false
	}
	s.SetFriction(pb.Friction)
	s.SetElasticity(pb.Elasticity)
	s.SetCollisionType(collisionTypeShape)
	s.UserData = e

	pw.space.AddBody(body)
	pw.space.AddShape(s)
	pw.shapeToEntity[s] = e

	pb.Body = body
	pb.Shape = s
	if err := Add(w, e, component.PhysicsBodyComponent, pb); err != nil {
		log.Printf("PhysicsWorld: EnsureBody entity %s: %v", e, err)
	}
	pw.bodies[e] = &pb
	return true
}

// RemoveBody takes e's body and collider out of the space.
func (pw *PhysicsWorld) RemoveBody(e Entity) {
	if pw == nil || pw.space == nil {
		return
	}
	pb, ok := pw.bodies[e]
	if !ok {
		return
	}
	if pb.Shape != nil {
		pw.space.RemoveShape(pb.Shape)
		delete(pw.shapeToEntity, pb.Shape)
	}
	if pb.Body != nil {
		pw.space.RemoveBody(pb.Body)
	}
	delete(pw.bodies, e)
}

// Prune drops bodies whose entities are no longer alive.
func (pw *PhysicsWorld) Prune(w *World) {
	if pw == nil {
		return
	}
	for e := range pw.bodies {
		if !w.IsAlive(e) {
			pw.RemoveBody(e)
		}
	}
}

// HitTest returns the entity under p. A point inside a collider wins;
// otherwise the nearest body whose bounding box contains p is a hit, so taps
// on an edge or in the empty corners of a triangle or circle still land.
func (pw *PhysicsWorld) HitTest(p cp.Vector) (Entity, bool) {
	if pw == nil || pw.space == nil {
		return 0, false
	}
	if info := pw.space.PointQueryNearest(p, 0, cp.SHAPE_FILTER_ALL); info != nil && info.Shape != nil {
		if e, ok := pw.shapeToEntity[info.Shape]; ok {
			return e, true
		}
	}

	var (
		best     Entity
		bestDist = math.Inf(1)
		found    bool
	)
	for e, pb := range pw.bodies {
		if pb.Shape == nil || pb.Body == nil || !bbContains(pb.Shape.BB(), p) {
			continue
		}
		d := pb.Body.Position().Sub(p).LengthSq()
		if d < bestDist || (d == bestDist && e > best) {
			best, bestDist, found = e, d, true
		}
	}
	return best, found
}

func bbContains(bb cp.BB, p cp.Vector) bool {
	return p.X >= bb.L && p.X <= bb.R && p.Y >= bb.B && p.Y <= bb.T
}

// BodyCount returns the number of entity bodies in the space.
func (pw *PhysicsWorld) BodyCount() int {
	if pw == nil {
		return 0
	}
	return len(pw.bodies)
}

// Body returns the runtime body for e.
func (pw *PhysicsWorld) Body(e Entity) (*cp.Body, bool) {
	if pw == nil {
		return nil, false
	}
	pb, ok := pw.bodies[e]
	if !ok || pb.Body == nil {
		return nil, false
	}
	return pb.Body, true
}

// Step advances the simulation.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt)
}
