// Package mobile is the ebitenmobile binding. The host app forwards its
// accelerometer callback to SetAcceleration.
package mobile

import (
	"github.com/hajimehoshi/ebiten/v2/mobile"
	"github.com/milk9111/tumbler/config"
	"github.com/milk9111/tumbler/game"
	"github.com/milk9111/tumbler/motion"
)

var feed = motion.NewFeed()

func init() {
	mobile.SetGame(game.New(game.Options{
		Tuning: config.Default(),
		Feed:   feed,
	}))
}

// SetAcceleration records the newest accelerometer reading in units of g.
// It is safe to call from any thread.
func SetAcceleration(x, y, z float64) {
	feed.Push(motion.Acceleration{X: x, Y: y, Z: z})
}

// ClearAcceleration drops the last reading, for when the host's sensor
// stops reporting. Gravity keeps its current value until the next reading.
func ClearAcceleration() {
	feed.Clear()
}

// Dummy forces gomobile to compile this package.
func Dummy() {}
