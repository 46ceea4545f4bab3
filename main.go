package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	seed := flag.Int64("seed", 0, "fixed run seed (0 picks one from the clock)")
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game := NewGame(*seed, *debug)

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(game.width, game.height)
	ebiten.SetWindowTitle("runner")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
