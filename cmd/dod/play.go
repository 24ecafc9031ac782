package main

import (
	"fmt"
	"os"

	"github.com/coder/quartz"
	"github.com/hmtavares/dod-trainer/internal/config"
	"github.com/hmtavares/dod-trainer/internal/game"
	"github.com/hmtavares/dod-trainer/internal/logging"
	"github.com/hmtavares/dod-trainer/internal/randutil"
	"github.com/hmtavares/dod-trainer/internal/shell"
	"github.com/hmtavares/dod-trainer/internal/tui"
)

type PlayCmd struct {
	Players       int    `arg:"" optional:"" help:"Number of players (3-6)"`
	Config        string `short:"c" default:"dod.hcl" help:"Config file"`
	LogFile       string `name:"logfile" aliases:"log-file" help:"Log file prefix, _<timestamp>.log is appended (default dod)"`
	LogLevel      string `name:"level" aliases:"log-level" help:"Log level (DEBUG, INFO, WARN, ERROR)"`
	Seed          int64  `help:"RNG seed (0 for random)"`
	TUI           bool   `name:"tui" help:"Use the full-screen interface"`
	NoColor       bool   `name:"no-color" help:"Disable colored output"`
	TranscriptDir string `name:"transcript-dir" help:"Directory for saved transcripts"`
}

// settings merges the config file with flags; flags win
func (c *PlayCmd) settings() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}

	if c.Players != 0 {
		cfg.Game.Players = c.Players
	}
	if c.Seed != 0 {
		cfg.Game.Seed = c.Seed
	}
	if c.LogFile != "" {
		cfg.Log.Prefix = c.LogFile
		cfg.Log.File = ""
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	if c.TUI {
		cfg.Shell.TUI = true
	}
	if c.NoColor {
		cfg.Shell.NoColor = true
	}
	if c.TranscriptDir != "" {
		cfg.Shell.TranscriptDir = c.TranscriptDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Game.Players == 0 {
		return nil, fmt.Errorf("%w: pass the number of players or set game.players in %s",
			game.ErrInvalidPlayerCount, c.Config)
	}
	return cfg, nil
}

func (c *PlayCmd) Run() error {
	cfg, err := c.settings()
	if err != nil {
		return err
	}

	clock := quartz.NewReal()
	seed := randutil.Resolve(cfg.Game.Seed, clock.Now())

	logger, logPath, closeLog, err := logging.OpenFile(logging.Options{
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
		Dir:    cfg.Log.Dir,
		Prefix: cfg.Log.Prefix,
		Clock:  clock,
	})
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Info("Session starting", "players", cfg.Game.Players, "seed", seed, "version", version)

	session, err := game.NewSession(cfg.Game.Players,
		game.WithRand(randutil.New(seed)),
		game.WithLogger(logger),
		game.WithClock(clock),
	)
	if err != nil {
		logger.Error("Deal failed", "error", err)
		return err
	}

	opts := shell.Options{
		Out:           os.Stdout,
		Logger:        logger,
		Clock:         clock,
		NoColor:       cfg.Shell.NoColor,
		Prompt:        cfg.Shell.Prompt,
		Seed:          seed,
		TranscriptDir: cfg.Shell.TranscriptDir,
		AutoSave:      cfg.Shell.AutoSave,
	}

	ctx := notifyShutdown(func(sig os.Signal) {
		logger.Info("Received signal, shutting down", "signal", sig.String())
	})

	if cfg.Shell.TUI {
		m, err := tui.New(session, opts)
		if err != nil {
			return err
		}
		runErr := tui.Run(ctx, m)
		if err := m.Shell().Close(); err != nil {
			logger.Error("Auto-save failed", "error", err)
		}
		if ctx.Err() != nil {
			return nil
		}
		return runErr
	}

	sh := shell.New(session, opts)
	if err := sh.Start(); err != nil {
		return err
	}

	rl, err := shell.NewReadline(sh, cfg.Shell.HistoryFile)
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	go func() {
		<-ctx.Done()
		rl.Close()
	}()

	runErr := sh.Run(rl)
	if err := sh.Close(); err != nil {
		logger.Error("Auto-save failed", "error", err)
	}
	fmt.Printf("Session log written to %s\n", logPath)

	if ctx.Err() != nil {
		return nil
	}
	return runErr
}
