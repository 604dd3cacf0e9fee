package shape

import (
	"math"

	"github.com/jakecoffman/cp"
)

type Op int

const (
	OpMoveTo Op = iota
	OpLineTo
	OpArc
	OpClose
)

// PathCommand is one step of an outline. MoveTo and LineTo use Point; Arc
// uses Point as the centre together with Radius and the angle range.
type PathCommand struct {
	Op         Op
	Point      cp.Vector
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

// Outline is a closed path in box space: origin at the bottom-left corner of
// Bounds, y pointing up.
type Outline struct {
	Commands []PathCommand
}

// OutlineFor builds the outline for kind inside Bounds.
func OutlineFor(kind Kind) Outline {
	b := Bounds()
	w, h := b.Width, b.Height

	var cmds []PathCommand
	switch kind {
	case Triangle:
		cmds = []PathCommand{
			{Op: OpMoveTo, Point: cp.Vector{X: 0, Y: 0}},
			{Op: OpLineTo, Point: cp.Vector{X: w, Y: 0}},
			{Op: OpLineTo, Point: cp.Vector{X: w / 2, Y: h}},
			{Op: OpClose},
		}
	case Square:
		cmds = []PathCommand{
			{Op: OpMoveTo, Point: cp.Vector{X: 0, Y: 0}},
			{Op: OpLineTo, Point: cp.Vector{X: w, Y: 0}},
			{Op: OpLineTo, Point: cp.Vector{X: w, Y: h}},
			{Op: OpLineTo, Point: cp.Vector{X: 0, Y: h}},
			{Op: OpClose},
		}
	case Circle:
		// Bounds is square, so the inscribed ellipse is a circle.
		cmds = []PathCommand{
			{Op: OpArc, Point: cp.Vector{X: w / 2, Y: h / 2}, Radius: w / 2, StartAngle: 0, EndAngle: 2 * math.Pi},
			{Op: OpClose},
		}
	}
	return Outline{Commands: cmds}
}

// Center returns the point outlines are centred on when placed in the scene.
func (o Outline) Center() cp.Vector {
	b := Bounds()
	return cp.Vector{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// Vertices returns the corner points of the MoveTo and LineTo commands.
func (o Outline) Vertices() []cp.Vector {
	verts := make([]cp.Vector, 0, len(o.Commands))
	for _, c := range o.Commands {
		if c.Op == OpMoveTo || c.Op == OpLineTo {
			verts = append(verts, c.Point)
		}
	}
	return verts
}

// Flatten approximates the outline as a closed polyline, splitting each arc
// into segments straight lines. The debug overlay strokes it.
func (o Outline) Flatten(segments int) []cp.Vector {
	if segments < 3 {
		segments = 3
	}
	points := make([]cp.Vector, 0, len(o.Commands)+segments)
	for _, c := range o.Commands {
		switch c.Op {
		case OpMoveTo, OpLineTo:
			points = append(points, c.Point)
		case OpArc:
			sweep := c.EndAngle - c.StartAngle
			full := math.Abs(sweep) >= 2*math.Pi
			n := segments
			if !full {
				n = segments + 1
			}
			for i := 0; i < n; i++ {
				t := c.StartAngle + sweep*float64(i)/float64(segments)
				points = append(points, cp.Vector{
					X: c.Point.X + math.Cos(t)*c.Radius,
					Y: c.Point.Y + math.Sin(t)*c.Radius,
				})
			}
		}
	}
	return points
}
