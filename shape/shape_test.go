package shape

import (
	"math"
	"reflect"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestOutlineDeterministic(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			a := OutlineFor(kind)
			b := OutlineFor(kind)
			if !reflect.DeepEqual(a, b) {
				t.Fatalf("outline for %s changed between calls: %v vs %v", kind, a, b)
			}
			if len(a.Commands) == 0 {
				t.Fatalf("outline for %s is empty", kind)
			}
			if last := a.Commands[len(a.Commands)-1]; last.Op != OpClose {
				t.Fatalf("outline for %s is not closed, last op %v", kind, last.Op)
			}
		})
	}
}

func TestOutlineGeometry(t *testing.T) {
	cases := []struct {
		name  string
		kind  Kind
		verts []cp.Vector
	}{
		{"triangle", Triangle, []cp.Vector{{X: 0, Y: 0}, {X: Size, Y: 0}, {X: Size / 2, Y: Size}}},
		{"square", Square, []cp.Vector{{X: 0, Y: 0}, {X: Size, Y: 0}, {X: Size, Y: Size}, {X: 0, Y: Size}}},
		{"circle", Circle, []cp.Vector{}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := OutlineFor(c.kind).Vertices()
			if !reflect.DeepEqual(got, c.verts) {
				t.Fatalf("expected vertices %v, got %v", c.verts, got)
			}
		})
	}

	t.Run("circle_inscribed", func(t *testing.T) {
		o := OutlineFor(Circle)
		arc := o.Commands[0]
		if arc.Op != OpArc {
			t.Fatalf("expected arc command, got %v", arc.Op)
		}
		if arc.Point != (cp.Vector{X: Size / 2, Y: Size / 2}) || arc.Radius != Size/2 {
			t.Fatalf("circle not inscribed in bounds: centre %v radius %v", arc.Point, arc.Radius)
		}
		for _, p := range o.Flatten(32) {
			if d := p.Distance(arc.Point); math.Abs(d-Size/2) > 1e-9 {
				t.Fatalf("flattened point %v is %v from centre", p, d)
			}
		}
	})
}

func TestColliderMatchesKind(t *testing.T) {
	b := Bounds()
	for _, kind := range Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			o := OutlineFor(kind)
			c := ColliderFor(kind, o)
			switch kind {
			case Triangle:
				if c.Kind != ColliderPolygon {
					t.Fatalf("expected polygon, got %s", c.Kind)
				}
				if !reflect.DeepEqual(c.Vertices, o.Vertices()) {
					t.Fatalf("polygon vertices %v differ from outline %v", c.Vertices, o.Vertices())
				}
			case Square:
				if c.Kind != ColliderBox {
					t.Fatalf("expected box, got %s", c.Kind)
				}
				if c.Width != b.Width || c.Height != b.Height {
					t.Fatalf("expected box %vx%v, got %vx%v", b.Width, b.Height, c.Width, c.Height)
				}
			case Circle:
				if c.Kind != ColliderDisc {
					t.Fatalf("expected disc, got %s", c.Kind)
				}
				if c.Radius != b.Width/2 {
					t.Fatalf("expected radius %v, got %v", b.Width/2, c.Radius)
				}
			}
			if c.Anchor != (cp.Vector{X: Size / 2, Y: Size / 2}) {
				t.Fatalf("expected anchor at box centre, got %v", c.Anchor)
			}
			if m := c.Moment(1); m <= 0 || math.IsInf(m, 0) || math.IsNaN(m) {
				t.Fatalf("bad moment %v", m)
			}
		})
	}
}

func TestLocalVerticesCentred(t *testing.T) {
	c := ColliderFor(Triangle, OutlineFor(Triangle))
	want := []cp.Vector{{X: -Size / 2, Y: -Size / 2}, {X: Size / 2, Y: -Size / 2}, {X: 0, Y: Size / 2}}
	if got := c.LocalVertices(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRandomKindDistribution(t *testing.T) {
	const n = 10000
	r := NewRandom(42)
	counts := make(map[Kind]int)
	for i := 0; i < n; i++ {
		k := RandomKind(r)
		if k < Triangle || k > Circle {
			t.Fatalf("kind %d outside {0,1,2}", k)
		}
		counts[k]++
	}
	for _, k := range Kinds {
		got := counts[k]
		if got == 0 {
			t.Fatalf("%s never picked", k)
		}
		if got < n/3-n/20 || got > n/3+n/20 {
			t.Fatalf("%s picked %d times out of %d, expected roughly a third", k, got, n)
		}
	}
}

func TestRandomBounds(t *testing.T) {
	r := NewRandom(7)
	for i := 0; i < 1000; i++ {
		if v := r.Intn(5); v < 0 || v >= 5 {
			t.Fatalf("Intn(5) returned %d", v)
		}
		if v := r.IntRange(2, 4); v < 2 || v > 4 {
			t.Fatalf("IntRange(2, 4) returned %d", v)
		}
	}
	if v := r.Intn(0); v != 0 {
		t.Fatalf("Intn(0) should be 0, got %d", v)
	}
}
