package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hmtavares/dod-trainer/internal/game"
	"github.com/hmtavares/dod-trainer/internal/logging"
)

// DefaultFile is the config file looked for in the working directory
const DefaultFile = "dod.hcl"

// Config represents the complete trainer configuration
type Config struct {
	Game  GameSettings
	Log   LogSettings
	Shell ShellSettings
}

// GameSettings controls how a session is dealt
type GameSettings struct {
	Players int   `hcl:"players,optional"`
	Seed    int64 `hcl:"seed,optional"`
}

// LogSettings controls the session log file
type LogSettings struct {
	// Level is one of debug, info, warn (or warning) and error, in any case
	Level string `hcl:"level,optional"`
	// Prefix names the log file <prefix>_<timestamp>.log in Dir
	Prefix string `hcl:"prefix,optional"`
	// File is a fixed log file name. It wins over Prefix and is appended to.
	File string `hcl:"file,optional"`
	Dir  string `hcl:"dir,optional"`
}

// ShellSettings contains user interface settings
type ShellSettings struct {
	Prompt        string `hcl:"prompt,optional"`
	HistoryFile   string `hcl:"history_file,optional"`
	NoColor       bool   `hcl:"no_color,optional"`
	TUI           bool   `hcl:"tui,optional"`
	TranscriptDir string `hcl:"transcript_dir,optional"`
	AutoSave      bool   `hcl:"auto_save,optional"`
}

// file mirrors Config with optional blocks so a partial file decodes
type file struct {
	Game  *GameSettings  `hcl:"game,block"`
	Log   *LogSettings   `hcl:"log,block"`
	Shell *ShellSettings `hcl:"shell,block"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Game: GameSettings{
			Players: 0,
			Seed:    0,
		},
		Log: LogSettings{
			Level:  "info",
			Prefix: logging.DefaultPrefix,
			File:   "",
			Dir:    ".",
		},
		Shell: ShellSettings{
			Prompt:        "",
			HistoryFile:   "",
			NoColor:       false,
			TUI:           false,
			TranscriptDir: ".",
			AutoSave:      false,
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	return raw.merge(Default()), nil
}

// merge overlays the blocks present in the file onto defaults
func (f *file) merge(cfg *Config) *Config {
	if f.Game != nil {
		cfg.Game = *f.Game
	}

	if f.Log != nil {
		if f.Log.Level != "" {
			cfg.Log.Level = f.Log.Level
		}
		if f.Log.Prefix != "" {
			cfg.Log.Prefix = f.Log.Prefix
		}
		if f.Log.File != "" {
			cfg.Log.File = f.Log.File
		}
		if f.Log.Dir != "" {
			cfg.Log.Dir = f.Log.Dir
		}
	}

	if f.Shell != nil {
		transcriptDir := cfg.Shell.TranscriptDir
		cfg.Shell = *f.Shell
		if cfg.Shell.TranscriptDir == "" {
			cfg.Shell.TranscriptDir = transcriptDir
		}
	}

	return cfg
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if p := c.Game.Players; p != 0 && (p < game.MinPlayers || p > game.MaxPlayers) {
		return fmt.Errorf("%w: got %d", game.ErrInvalidPlayerCount, p)
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}

	return nil
}
