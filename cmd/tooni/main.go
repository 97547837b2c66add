// Command tooni is an avatar customizer: pick accessories for the
// character, set a background color or drop in a photo, and save the
// result as tooni.png.
//
// Settings come from TOONI_* environment variables; see package config.
package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/tooni/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	g, err := newGame(cfg)
	if err != nil {
		log.Fatalf("start: %v", err)
	}
	defer g.Close()

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
