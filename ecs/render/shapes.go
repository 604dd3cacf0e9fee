// Package render draws the ECS world with ebiten. Scene space has y up, so
// every point is flipped against the view height on the way to the screen.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tumbler/ecs"
	"github.com/milk9111/tumbler/ecs/component"
	"github.com/milk9111/tumbler/shape"
	"golang.org/x/image/colornames"
)

var whiteSubImage *ebiten.Image

func whiteSource() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// ShapeRenderer fills every entity carrying Shape and Transform components.
type ShapeRenderer struct {
	vertices []ebiten.Vertex
	indices  []uint16
}

func NewShapeRenderer() *ShapeRenderer {
	return &ShapeRenderer{}
}

// Draw renders all shapes into screen; viewHeight is the scene height used
// to flip y.
func (r *ShapeRenderer) Draw(w *ecs.World, screen *ebiten.Image, viewHeight float64) {
	if r == nil || w == nil || screen == nil {
		return
	}
	for _, e := range w.Query(component.ShapeComponent.Kind(), component.TransformComponent.Kind()) {
		sh, ok := ecs.Get(w, e, component.ShapeComponent)
		if !ok {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		path := OutlinePath(sh.Outline, t, viewHeight)
		fill := sh.Fill
		if fill == nil {
			fill = colornames.White
		}
		r.fill(screen, path, fill)
	}
}

func (r *ShapeRenderer) fill(screen *ebiten.Image, path *vector.Path, clr color.Color) {
	r.vertices, r.indices = path.AppendVerticesAndIndicesForFilling(r.vertices[:0], r.indices[:0])
	cr, cg, cb, ca := clr.RGBA()
	for i := range r.vertices {
		r.vertices[i].SrcX = 1
		r.vertices[i].SrcY = 1
		r.vertices[i].ColorR = float32(cr) / 0xffff
		r.vertices[i].ColorG = float32(cg) / 0xffff
		r.vertices[i].ColorB = float32(cb) / 0xffff
		r.vertices[i].ColorA = float32(ca) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(r.vertices, r.indices, whiteSource(), op)
}

const outlineSegments = 32

// DrawOutlines strokes every shape's flattened outline in clr.
func DrawOutlines(w *ecs.World, screen *ebiten.Image, viewHeight float64, clr color.Color) {
	if w == nil || screen == nil {
		return
	}
	for _, e := range w.Query(component.ShapeComponent.Kind(), component.TransformComponent.Kind()) {
		sh, ok := ecs.Get(w, e, component.ShapeComponent)
		if !ok {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		pts := sh.Outline.Flatten(outlineSegments)
		toScreen := placer(sh.Outline, t, viewHeight)
		for i := range pts {
			ax, ay := toScreen(pts[i])
			bx, by := toScreen(pts[(i+1)%len(pts)])
			vector.StrokeLine(screen, ax, ay, bx, by, 1, clr, true)
		}
	}
}

// placer maps outline points to screen coordinates for an outline centred
// on t.
func placer(o shape.Outline, t component.Transform, viewHeight float64) func(cp.Vector) (float32, float32) {
	center := o.Center()
	rot := cp.ForAngle(t.Rotation)
	return func(p cp.Vector) (float32, float32) {
		world := p.Sub(center).Rotate(rot).Add(cp.Vector{X: t.X, Y: t.Y})
		return float32(world.X), float32(viewHeight - world.Y)
	}
}

// OutlinePath places outline at transform t and converts it to a screen
// path. The outline is centred on the transform position.
func OutlinePath(o shape.Outline, t component.Transform, viewHeight float64) *vector.Path {
	toScreen := placer(o, t, viewHeight)

	path := &vector.Path{}
	for _, c := range o.Commands {
		switch c.Op {
		case shape.OpMoveTo:
			x, y := toScreen(c.Point)
			path.MoveTo(x, y)
		case shape.OpLineTo:
			x, y := toScreen(c.Point)
			path.LineTo(x, y)
		case shape.OpArc:
			x, y := toScreen(c.Point)
			// Flipping y mirrors angles, so a counter-clockwise sweep in
			// scene space runs the other way on screen.
			start := -(c.StartAngle + t.Rotation)
			end := -(c.EndAngle + t.Rotation)
			if math.Abs(c.EndAngle-c.StartAngle) >= 2*math.Pi {
				path.MoveTo(x+float32(c.Radius), y)
				path.Arc(x, y, float32(c.Radius), 0, 2*math.Pi, vector.Clockwise)
				continue
			}
			path.Arc(x, y, float32(c.Radius), float32(start), float32(end), vector.CounterClockwise)
		case shape.OpClose:
			path.Close()
		}
	}
	return path
}
