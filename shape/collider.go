package shape

import "github.com/jakecoffman/cp"

type ColliderKind int

const (
	ColliderPolygon ColliderKind = iota
	ColliderBox
	ColliderDisc
)

func (k ColliderKind) String() string {
	switch k {
	case ColliderPolygon:
		return "polygon"
	case ColliderBox:
		return "box"
	case ColliderDisc:
		return "disc"
	default:
		return "unknown"
	}
}

// Collider describes the physics shape for a kind. Vertices are in outline
// space; Anchor is the outline point that sits on the body origin.
type Collider struct {
	Kind     ColliderKind
	Vertices []cp.Vector
	Width    float64
	Height   float64
	Radius   float64
	Anchor   cp.Vector
}

// ColliderFor returns the collider matching kind. Triangles take their
// polygon from outline; squares and circles are sized from Bounds.
func ColliderFor(kind Kind, outline Outline) Collider {
	b := Bounds()
	c := Collider{Anchor: outline.Center()}
	switch kind {
	case Triangle:
		c.Kind = ColliderPolygon
		c.Vertices = outline.Vertices()
	case Square:
		c.Kind = ColliderBox
		c.Width = b.Width
		c.Height = b.Height
	case Circle:
		c.Kind = ColliderDisc
		c.Radius = b.Width / 2
	}
	return c
}

// LocalVertices returns the polygon vertices relative to Anchor.
func (c Collider) LocalVertices() []cp.Vector {
	out := make([]cp.Vector, len(c.Vertices))
	for i, v := range c.Vertices {
		out[i] = v.Sub(c.Anchor)
	}
	return out
}

// Moment returns the moment of inertia for a body of the given mass.
func (c Collider) Moment(mass float64) float64 {
	switch c.Kind {
	case ColliderPolygon:
		verts := c.LocalVertices()
		return cp.MomentForPoly(mass, len(verts), verts, cp.Vector{}, 0)
	case ColliderBox:
		return cp.MomentForBox(mass, c.Width, c.Height)
	case ColliderDisc:
		return cp.MomentForCircle(mass, 0, c.Radius, cp.Vector{})
	default:
		return cp.MomentForBox(mass, Size, Size)
	}
}
