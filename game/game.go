// Package game wires the scene, physics, motion sampling and rendering into
// an ebiten.Game shared by the desktop binary and the mobile binding.
package game

import (
	"errors"
	"image/color"
	"log"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/tumbler/common"
	"github.com/milk9111/tumbler/config"
	"github.com/milk9111/tumbler/ecs"
	"github.com/milk9111/tumbler/ecs/render"
	"github.com/milk9111/tumbler/ecs/system"
	"github.com/milk9111/tumbler/motion"
	"github.com/milk9111/tumbler/scene"
	"github.com/milk9111/tumbler/shape"
)

var outlineColor = color.NRGBA{R: 0xff, G: 0xc0, B: 0x40, A: 0xff}

type Options struct {
	Width  int
	Height int
	Tuning config.Tuning
	// ConfigPath is watched for changes when set.
	ConfigPath string
	Seed       int64
	Debug      bool
	// EmulateTilt drives the feed from keyboard and gamepad. Mobile hosts
	// push real accelerometer readings instead.
	EmulateTilt bool
	Feed        *motion.Feed
}

type Game struct {
	world     *ecs.World
	physics   *ecs.PhysicsWorld
	scheduler *ecs.Scheduler
	scene     *scene.Scene
	sensor    *motion.Manager
	input     *Input
	shapes    *render.ShapeRenderer
	hud       *render.HUD
	watcher   *config.Watcher
	pauseUI   *ebitenui.UI
	canvas    *ebiten.Image

	width     int
	height    int
	outWidth  int
	outHeight int
	debug     bool
	flagDebug bool
	paused    bool
	quit      bool
	started   time.Time
	touchIDs  []ebiten.TouchID
	points    []scene.Point
}

func New(opts Options) *Game {
	if opts.Width <= 0 {
		opts.Width = common.BaseWidth
	}
	if opts.Height <= 0 {
		opts.Height = common.BaseHeight
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	feed := opts.Feed
	if feed == nil {
		feed = motion.NewFeed()
	}

	world := ecs.NewWorld()
	physics := ecs.NewPhysicsWorld(opts.Tuning.PointsPerMeter)
	sensor := motion.NewManager(feed)

	g := &Game{
		world:     world,
		physics:   physics,
		scheduler: ecs.NewScheduler(system.NewPhysicsSystem(physics, 1/float64(ebiten.DefaultTPS))),
		scene:     scene.New(world, physics, sensor, shape.NewRandom(opts.Seed), opts.Tuning),
		sensor:    sensor,
		shapes:    render.NewShapeRenderer(),
		hud:       &render.HUD{},
		width:     opts.Width,
		height:    opts.Height,
		outWidth:  opts.Width,
		outHeight: opts.Height,
		debug:     opts.Debug || opts.Tuning.Debug,
		flagDebug: opts.Debug,
		started:   time.Now(),
	}
	if opts.EmulateTilt {
		g.input = NewInput(feed)
	}
	g.pauseUI = NewPauseUI(g)

	if opts.ConfigPath != "" {
		w, err := config.NewWatcher(opts.ConfigPath)
		if err != nil {
			log.Printf("Game: config hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g
}

func (g *Game) Update() error {
	if g.quit || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	g.reloadConfig()

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if !g.scene.Active() {
		g.scene.Setup(common.Rect{Width: float64(g.width), Height: float64(g.height)})
	}

	if g.input != nil {
		g.input.Update()
	}
	if pts := g.collectTouches(); len(pts) > 0 {
		g.scene.TouchesBegan(pts)
	}
	g.scene.Tick(time.Since(g.started))
	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) collectTouches() []scene.Point {
	g.points = g.points[:0]
	view := common.Rect{Width: float64(g.width), Height: float64(g.height)}
	sx, sy, ox, oy := g.fit()
	add := func(x, y int) {
		vx, vy := (float64(x)-ox)/sx, (float64(y)-oy)/sy
		// letterbox margins map outside the view
		if view.Contains(vx, vy) {
			g.points = append(g.points, scene.Point{X: vx, Y: vy})
		}
	}
	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		add(ebiten.TouchPosition(id))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		add(ebiten.CursorPosition())
	}
	return g.points
}

func (g *Game) reloadConfig() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			t, err := config.Load(path)
			if err != nil {
				log.Printf("Game: keeping previous tuning: %v", err)
				continue
			}
			g.scene.ApplyTuning(t)
			g.physics.SetPointsPerMeter(t.PointsPerMeter)
			g.debug = g.flagDebug || t.Debug
			log.Printf("Game: reloaded %s", path)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("Game: config watcher: %v", err)
		default:
			return
		}
	}
}

// fit returns the canvas-to-screen transform for the scene's scale mode.
func (g *Game) fit() (sx, sy, ox, oy float64) {
	return g.scene.ScaleMode().Fit(float64(g.width), float64(g.height), float64(g.outWidth), float64(g.outHeight))
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.canvas == nil {
		g.canvas = ebiten.NewImage(g.width, g.height)
	}
	g.canvas.Clear()
	if bg := g.scene.Background(); bg != nil {
		g.canvas.Fill(bg)
	}
	h := float64(g.height)
	g.shapes.Draw(g.world, g.canvas, h)
	if g.debug {
		render.DrawPhysicsDebug(g.physics.Space(), g.canvas, h)
		render.DrawOutlines(g.world, g.canvas, h, outlineColor)
		var interval time.Duration
		if g.sensor.Active() {
			interval = g.sensor.Interval()
		}
		g.hud.Draw(g.canvas, render.Stats{
			Nodes:          g.scene.Count(),
			Bodies:         g.physics.BodyCount(),
			Gravity:        g.scene.Gravity(),
			SampleInterval: interval,
		})
	}

	sx, sy, ox, oy := g.fit()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(sx, sy)
	op.GeoM.Translate(ox, oy)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(g.canvas, op)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

// Layout reports the outside size as is and presents the fixed logical
// canvas on it according to the scene's scale mode.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		outsideWidth, outsideHeight = g.width, g.height
	}
	g.outWidth, g.outHeight = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Close stops sampling and the config watcher.
func (g *Game) Close() error {
	g.scene.Teardown()
	if g.watcher != nil {
		err := g.watcher.Close()
		g.watcher = nil
		return err
	}
	return nil
}

// Run starts the ebiten loop and cleans up once it returns.
func Run(g *Game) error {
	err := ebiten.RunGame(g)
	if cerr := g.Close(); cerr != nil {
		log.Printf("Game: close: %v", cerr)
	}
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
