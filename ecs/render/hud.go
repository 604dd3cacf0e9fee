package render

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/font/basicfont"
)

var hudFace text.Face = text.NewGoXFace(basicfont.Face7x13)

// HUD prints frame rate, scene counts, gravity and sensor state in the
// top-left corner.
type HUD struct {
	Color color.Color
}

type Stats struct {
	Nodes   int
	Bodies  int
	Gravity cp.Vector
	// SampleInterval is zero while the sensor is stopped.
	SampleInterval time.Duration
}

func (h *HUD) Draw(screen *ebiten.Image, s Stats) {
	if h == nil || screen == nil {
		return
	}
	sensor := "off"
	if s.SampleInterval > 0 {
		sensor = fmt.Sprintf("%.0f Hz", float64(time.Second)/float64(s.SampleInterval))
	}
	msg := fmt.Sprintf("FPS: %.1f\nNodes: %d (bodies %d)\nGravity: (%.2f, %.2f)\nSensor: %s",
		ebiten.ActualFPS(), s.Nodes, s.Bodies, s.Gravity.X, s.Gravity.Y, sensor)
	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.LineSpacing = 16
	clr := h.Color
	if clr == nil {
		clr = color.NRGBA{R: 0x80, G: 0xff, B: 0x80, A: 0xff}
	}
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, msg, hudFace, op)
}
