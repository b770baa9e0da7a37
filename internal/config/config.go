// Package config loads settings for the cadence binaries.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/phanxgames/cadence/anim"
	"github.com/phanxgames/cadence/remote"
)

// Config holds application configuration.
type Config struct {
	Engine EngineConfig
	Window WindowConfig
	Remote RemoteConfig
	Debug  bool
}

// EngineConfig holds animation engine settings.
type EngineConfig struct {
	LagThreshold float64 `mapstructure:"lag_threshold"`
	AdjustedLag  float64 `mapstructure:"adjusted_lag"`
	DefaultEase  string  `mapstructure:"default_ease"`
	TPS          int
}

// WindowConfig holds presentation settings for the windowed viewer.
type WindowConfig struct {
	Width         int
	Height        int
	Title         string
	Background    string
	ShowFPS       bool   `mapstructure:"show_fps"`
	ScreenshotDir string `mapstructure:"screenshot_dir"`
}

// RemoteConfig enables MQTT control.
type RemoteConfig struct {
	Enabled       bool
	remote.Config `mapstructure:",squash"`
}

// AnimConfig converts the engine section for anim.New.
func (c EngineConfig) AnimConfig() anim.Config {
	return anim.Config{
		LagThreshold: c.LagThreshold,
		AdjustedLag:  c.AdjustedLag,
		DefaultEase:  c.DefaultEase,
	}
}

// Load reads configuration from file and env. Env var overrides use prefix
// CADENCE_, e.g. CADENCE_REMOTE_BROKER. An explicit path wins over
// CADENCE_CONFIG, which wins over $HOME/.config/cadence/config.yaml.
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("engine.lag_threshold", 0.5)
	v.SetDefault("engine.adjusted_lag", 1.0/30)
	v.SetDefault("engine.default_ease", "")
	v.SetDefault("engine.tps", 60)
	v.SetDefault("window.width", 800)
	v.SetDefault("window.height", 600)
	v.SetDefault("window.title", "cadence")
	v.SetDefault("window.background", "#1e1e2e")
	v.SetDefault("window.show_fps", false)
	v.SetDefault("window.screenshot_dir", "screenshots")
	v.SetDefault("remote.enabled", false)
	v.SetDefault("remote.broker", "tcp://localhost:1883")
	v.SetDefault("remote.username", "")
	v.SetDefault("remote.password", "")
	v.SetDefault("remote.topic", remote.DefaultTopic)
	v.SetDefault("remote.qos", 0)
	v.SetDefault("remote.client_id", "")
	v.SetDefault("remote.keep_alive", "30s")
	v.SetDefault("remote.ping_timeout", "5s")
	v.SetDefault("debug", false)

	if path == "" {
		path = os.Getenv("CADENCE_CONFIG")
	}
	explicit := path != ""
	if explicit {
		// The extension picks the format (yaml, toml, json); bare names are yaml.
		v.SetConfigFile(path)
		if filepath.Ext(path) == "" {
			v.SetConfigType("yaml")
		}
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "cadence"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CADENCE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// The default location is optional; an explicit file is not.
	if err := v.ReadInConfig(); err != nil && explicit {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Engine.TPS <= 0 {
		return Config{}, fmt.Errorf("engine.tps must be positive, got %d", c.Engine.TPS)
	}
	return c, nil
}
