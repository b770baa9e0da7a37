// Command cadence-view plays a scene file in a window.
//
// Usage:
//
//	cadence-view [flags] scene.yaml
//
// Flags:
//
//	--config  Path to a config file (default: $HOME/.config/cadence/config.yaml)
//	--script  JSON playback script to run against the scene
//	--remote  Enable MQTT remote control, overriding the config file
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/phanxgames/cadence"
	"github.com/phanxgames/cadence/anim"
	"github.com/phanxgames/cadence/ebitenhost"
	"github.com/phanxgames/cadence/internal/config"
	"github.com/phanxgames/cadence/remote"
	"github.com/phanxgames/cadence/scenefile"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	scriptPath := flag.String("script", "", "JSON playback script")
	remoteFlag := flag.Bool("remote", false, "enable MQTT remote control")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: cadence-view [flags] scene.yaml")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	doc, err := scenefile.LoadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	el, _, err := doc.Build()
	if err != nil {
		log.Fatalf("%s: %v", flag.Arg(0), err)
	}

	background, err := cadence.ParseColor(cfg.Window.Background)
	if err != nil {
		log.Fatalf("window.background: %v", err)
	}

	scene := cadence.NewScene(anim.New(cfg.Engine.AnimConfig()))
	scene.SetDebugMode(cfg.Debug)
	scene.Render(el)
	defer scene.Unmount()

	var runner *cadence.ScriptRunner
	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatalf("script: %v", err)
		}
		runner, err = cadence.LoadScript(data)
		if err != nil {
			log.Fatalf("%s: %v", *scriptPath, err)
		}
		scene.SetScriptRunner(runner)
	}

	if cfg.Remote.Enabled || *remoteFlag {
		client := remote.New(cfg.Remote.Config, scene)
		if err := client.Connect(); err != nil {
			log.Fatal(err)
		}
		defer client.Close()
		log.Printf("listening for commands on %s", client.Config().Topic)
	}

	err = ebitenhost.Run(scene, ebitenhost.RunConfig{
		Title:         cfg.Window.Title + " - " + filepath.Base(flag.Arg(0)),
		Width:         cfg.Window.Width,
		Height:        cfg.Window.Height,
		TPS:           cfg.Engine.TPS,
		Background:    background,
		ShowFPS:       cfg.Window.ShowFPS,
		ScreenshotDir: cfg.Window.ScreenshotDir,
	})
	if err != nil {
		log.Fatal(err)
	}
}
