//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"lifeworld/internal/app"
	_ "lifeworld/internal/rules/coex"
	_ "lifeworld/internal/rules/move"
	_ "lifeworld/internal/rules/normal"
	"lifeworld/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	w, err := world.New(cfg.World())
	if err != nil {
		log.Fatalf("create world: %v", err)
	}
	size := w.Size()
	w.SeedRandom(cfg.Density, 0, 0, size.W-1, size.H-1)

	game := app.New(w, cfg.Scale, cfg.Density)
	log.Printf("lifeworld %dx%d rule=%s", size.W, size.H, w.Algorithm().Name())

	ebiten.SetWindowTitle("lifeworld — " + w.Algorithm().Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(game.WindowSize())

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
