package component

import (
	"image/color"

	"github.com/milk9111/tumbler/shape"
)

// Shape is the visual of a spawned entity, built from its outline.
type Shape struct {
	Kind    shape.Kind
	Outline shape.Outline
	Fill    color.Color
}

var ShapeComponent = NewComponent[Shape]()
