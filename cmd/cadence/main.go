// Command cadence plays a scene file in the terminal.
//
// Usage:
//
//	cadence [flags] scene.yaml
//
// Flags:
//
//	--config  Path to a config file (default: $HOME/.config/cadence/config.yaml)
//	--remote  Enable MQTT remote control, overriding the config file
//
// Every component with an id is listed with its progress; the selected one
// can be paused, reversed, restarted and scrubbed from the keyboard.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/phanxgames/cadence"
	"github.com/phanxgames/cadence/anim"
	"github.com/phanxgames/cadence/internal/config"
	"github.com/phanxgames/cadence/remote"
	"github.com/phanxgames/cadence/scenefile"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	remoteFlag := flag.Bool("remote", false, "enable MQTT remote control")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: cadence [flags] scene.yaml")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *remoteFlag {
		cfg.Remote.Enabled = true
	}

	doc, err := scenefile.LoadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	el, nodes, err := doc.Build()
	if err != nil {
		log.Fatalf("%s: %v", flag.Arg(0), err)
	}

	scene := cadence.NewScene(anim.New(cfg.Engine.AnimConfig()))
	scene.SetDebugMode(cfg.Debug)

	m := newModel(scene, nodes, filepath.Base(flag.Arg(0)), cfg.Engine.TPS)
	cadence.SetWarningOutput(m.warnings)
	scene.Render(el)

	if cfg.Remote.Enabled {
		mqtt.ERROR = log.New(m.warnings, "[mqtt] ", 0)
		client := remote.New(cfg.Remote.Config, scene)
		client.Warnings = m.warnings
		if err := client.Connect(); err != nil {
			log.Fatal(err)
		}
		defer client.Close()
		m.remote = client.Config().Topic
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running player: %v\n", err)
		os.Exit(1)
	}
	scene.Unmount()
}
