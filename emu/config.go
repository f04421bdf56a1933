package emu

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"

	"fami/emu/log"
)

type Config struct {
	General   GeneralConfig   `toml:"general"`
	Emulation EmulationConfig `toml:"emulation"`

	TraceOut io.WriteCloser `toml:"-"`
}

type GeneralConfig struct {
	// Comma-separated module names with debug logging enabled,
	// or "all".
	DebugModules string `toml:"debug_modules"`
}

type EmulationConfig struct {
	// Run as fast as the host allows instead of pacing at NTSC speed.
	NoSpeedLimit bool `toml:"no_speed_limit"`
}

var ConfigDir string = sync.OnceValue(func() string {
	dir := configdir.LocalConfig("fami")
	if err := configdir.MakePath(dir); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})()

const cfgFilename = "config.toml"

// LoadConfigOrDefault loads the configuration from the fami config
// directory, or provides a default one.
func LoadConfigOrDefault() Config {
	var cfg Config
	_, err := toml.DecodeFile(filepath.Join(ConfigDir, cfgFilename), &cfg)
	if err != nil {
		return Config{}
	}
	return cfg
}

// SaveConfig into fami config directory.
func SaveConfig(cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(ConfigDir, cfgFilename), buf, 0644)
}
