package game

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tumbler/common"
	"github.com/milk9111/tumbler/motion"
)

const stickDeadZone = 0.3

// Input emulates device tilt on desktop. With nothing held the device reads
// as upright, so gravity points down the screen.
type Input struct {
	feed *motion.Feed
}

func NewInput(feed *motion.Feed) *Input {
	return &Input{feed: feed}
}

// Update polls keyboard and gamepad and pushes the resulting tilt to the feed.
func (i *Input) Update() {
	var x, y float64
	// Keyboard A/D/W/S or arrows
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		x -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		x += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		y += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		y -= 1
	}

	// Gamepad left stick overrides the keyboard when pushed past the dead zone.
	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		gid := ids[0]
		sx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		sy := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(sx, sy) > stickDeadZone {
			// stick y is down-positive
			x, y = common.Clamp(sx, -1, 1), -common.Clamp(sy, -1, 1)
		}
	}

	if x == 0 && y == 0 {
		y = -1
	}
	if i.feed != nil {
		i.feed.Push(motion.Acceleration{X: x, Y: y}.ClampPlanar())
	}
}
