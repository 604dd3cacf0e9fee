// Command catalog previews the three shape kinds with their colliders
// overlaid, for checking outlines without the random spawner.
package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/tumbler/config"
	"github.com/milk9111/tumbler/ecs"
	"github.com/milk9111/tumbler/ecs/component"
	"github.com/milk9111/tumbler/ecs/render"
	"github.com/milk9111/tumbler/shape"
)

const (
	screenWidth  = 320
	screenHeight = 160
)

type Game struct {
	world     *ecs.World
	physics   *ecs.PhysicsWorld
	renderer  *render.ShapeRenderer
	entities  []ecs.Entity
	colliders bool
}

func NewGame() *Game {
	tuning := config.Default()
	g := &Game{
		world:     ecs.NewWorld(),
		physics:   ecs.NewPhysicsWorld(tuning.PointsPerMeter),
		renderer:  render.NewShapeRenderer(),
		colliders: true,
	}

	step := float64(screenWidth) / float64(len(shape.Kinds))
	for i, kind := range shape.Kinds {
		outline := shape.OutlineFor(kind)
		e := g.world.CreateEntity()
		x := step*float64(i) + step/2
		y := float64(screenHeight) / 2
		if err := ecs.Add(g.world, e, component.TransformComponent, component.Transform{X: x, Y: y}); err != nil {
			log.Fatal(err)
		}
		if err := ecs.Add(g.world, e, component.ShapeComponent, component.Shape{
			Kind:    kind,
			Outline: outline,
			Fill:    tuning.Colors.Fill.Color,
		}); err != nil {
			log.Fatal(err)
		}
		if err := ecs.Add(g.world, e, component.PhysicsBodyComponent, component.PhysicsBody{
			Collider: shape.ColliderFor(kind, outline),
			Mass:     tuning.Body.Mass,
		}); err != nil {
			log.Fatal(err)
		}
		g.physics.EnsureBody(g.world, e)
		g.entities = append(g.entities, e)
	}
	return g
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.colliders = !g.colliders
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.world, screen, screenHeight)
	if g.colliders {
		render.DrawPhysicsDebug(g.physics.Space(), screen, screenHeight)
	}
	for _, e := range g.entities {
		sh, ok := ecs.Get(g.world, e, component.ShapeComponent)
		if !ok {
			continue
		}
		pb, _ := ecs.Get(g.world, e, component.PhysicsBodyComponent)
		t, _ := ecs.Get(g.world, e, component.TransformComponent)
		label := fmt.Sprintf("%s\n%s", sh.Kind, pb.Collider.Kind)
		ebitenutil.DebugPrintAt(screen, label, int(t.X)-shape.Size/2, screenHeight-int(t.Y)+shape.Size/2+4)
	}
	ebitenutil.DebugPrintAt(screen, "C: toggle colliders", 4, 4)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowTitle("tumbler catalog")
	if err := ebiten.RunGame(NewGame()); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
