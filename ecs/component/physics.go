package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tumbler/shape"
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Body and Shape stay nil until the physics world builds them.
type PhysicsBody struct {
	Body       *cp.Body
	Shape      *cp.Shape
	Collider   shape.Collider
	Mass       float64
	Friction   float64
	Elasticity float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
