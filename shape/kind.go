// Package shape describes the three spawnable shapes: their shared bounding
// box, the outline drawn for each, and the collider that matches it.
package shape

import (
	"math/rand"

	"github.com/milk9111/tumbler/common"
)

// Size is the side length of the square box every outline is built in.
const Size = 64.0

// Bounds returns the logical box shared by all shapes.
func Bounds() common.Rect {
	return common.Rect{Width: Size, Height: Size}
}

type Kind int

const (
	Triangle Kind = iota
	Square
	Circle
)

// Kinds lists every shape kind in declaration order.
var Kinds = [...]Kind{Triangle, Square, Circle}

func (k Kind) String() string {
	switch k {
	case Triangle:
		return "triangle"
	case Square:
		return "square"
	case Circle:
		return "circle"
	default:
		return "unknown"
	}
}

// Random is the integer source used for shape and position selection.
type Random interface {
	// IntRange returns a uniform integer in [min, max].
	IntRange(min, max int) int
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
}

type mathRandom struct {
	r *rand.Rand
}

// NewRandom returns a Random backed by math/rand seeded with seed.
func NewRandom(seed int64) Random {
	return &mathRandom{r: rand.New(rand.NewSource(seed))}
}

func (m *mathRandom) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + m.r.Intn(max-min+1)
}

func (m *mathRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return m.r.Intn(n)
}

// RandomKind picks one of the three kinds uniformly.
func RandomKind(r Random) Kind {
	return Kind(r.IntRange(int(Triangle), int(Circle)))
}
