// Package config holds the tool's defaults and the optional YAML override
// file a user can drop into the collection root.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the collection root.
const FileName = "romuless.yml"

// Config is the effective run configuration. Every field has a compiled-in
// default; a config file only overrides the fields it sets.
type Config struct {
	// Extensions is the ROM file whitelist the scanner filters on.
	Extensions []string `yaml:"extensions,omitempty"`
	// QuarantineDir is the directory name under the collection root that
	// holds excluded files.
	QuarantineDir string `yaml:"quarantine_dir,omitempty"`
	// Keep is the default keep language list for sort mode.
	Keep []string `yaml:"keep,flow,omitempty"`
	// LogFile is the report filename, relative to the collection root
	// unless absolute.
	LogFile string `yaml:"log_file,omitempty"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Extensions:    defaultExtensions(),
		QuarantineDir: "Moved ROMS",
		Keep:          []string{"en"},
		LogFile:       "rom_sort_log.txt",
	}
}

// Load resolves the effective configuration for a run. With explicit == ""
// it looks for FileName in root and silently falls back to defaults when the
// file does not exist. An explicit path that cannot be read is an error.
func Load(root, explicit string) (Config, error) {
	cfg := Default()

	path := explicit
	if path == "" {
		path = filepath.Join(root, FileName)
		if _, err := os.Stat(path); err != nil {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if len(override.Extensions) > 0 {
		cfg.Extensions = override.Extensions
	}
	if override.QuarantineDir != "" {
		cfg.QuarantineDir = override.QuarantineDir
	}
	if len(override.Keep) > 0 {
		cfg.Keep = override.Keep
	}
	if override.LogFile != "" {
		cfg.LogFile = override.LogFile
	}
	return cfg, nil
}

// defaultExtensions covers the MiSTer FPGA-era systems and then some.
func defaultExtensions() []string {
	return []string{
		// Atari / early consoles
		".a26", ".a52", ".a78",
		// Nintendo home + handheld
		".nes", ".fds", ".sfc", ".smc", ".gb", ".gbc", ".gba",
		".nds", ".dsi", ".3ds", ".cia",
		".n64", ".z64", ".v64",
		// Sega
		".sms", ".gg", ".sg", ".sgx",
		".md", ".smd", ".gen", ".32x", ".meg", ".bin", ".rom",
		// PC Engine / TurboGrafx
		".pce",
		// SNK / Neo Geo
		".neo", ".ngp", ".ngc", ".ngpc",
		// Optical / disc images
		".cue", ".iso", ".chd", ".gdi", ".cdi",
		".mdf", ".mds", ".nrg",
		".cso", ".pbp",
		// PSP / Vita
		".vpk", ".psv", ".psvita",
		// Switch-style formats
		".nsp", ".xci",
		// Arcade / compressed sets
		".zip", ".7z", ".7zip", ".rar",
		// 8/16-bit computer tape and disk images
		".adf", ".d64", ".tap", ".tzx",
	}
}
