package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tumbler/common"
	"github.com/milk9111/tumbler/config"
	"github.com/milk9111/tumbler/game"
)

func main() {
	debug := flag.Bool("debug", false, "show the physics debug overlay and HUD")
	configPath := flag.String("config", "", "tuning file (default "+config.DefaultFile+" if present)")
	seed := flag.Int64("seed", 0, "random seed for shape kinds and spawn positions (0 picks one)")
	width := flag.Int("w", common.BaseWidth, "logical screen width")
	height := flag.Int("h", common.BaseHeight, "logical screen height")
	flag.Parse()

	path := *configPath
	if path == "" {
		if _, err := os.Stat(config.DefaultFile); err == nil {
			path = config.DefaultFile
		}
	}
	tuning, err := config.Load(path)
	if err != nil {
		log.Printf("Config: %v, using defaults", err)
		tuning = config.Default()
		path = ""
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("tumbler")

	g := game.New(game.Options{
		Width:       *width,
		Height:      *height,
		Tuning:      tuning,
		ConfigPath:  path,
		Seed:        *seed,
		Debug:       *debug,
		EmulateTilt: true,
	})

	if err := game.Run(g); err != nil {
		log.Fatal(err)
	}
}
