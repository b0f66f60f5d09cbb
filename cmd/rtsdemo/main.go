package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	config := flag.String("config", "camera.yaml", "camera prefab in prefabs/ (camera_cinematic.yaml for the fixed-angle preset)")
	controls := flag.String("controls", "controls.yaml", "input bindings prefab in prefabs/")
	script := flag.String("script", "", "camera script in prefabs/scripts/, e.g. orbit.tengo")
	watch := flag.Bool("watch", false, "reload prefabs and scripts from disk when they change")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("rtscamera")

	game, err := NewGame(gameOptions{
		config:   *config,
		controls: *controls,
		script:   *script,
		watch:    *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
