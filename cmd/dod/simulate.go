package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hmtavares/dod-trainer/internal/logging"
	"github.com/hmtavares/dod-trainer/internal/randutil"
	"github.com/hmtavares/dod-trainer/internal/simulator"
	"github.com/rs/zerolog"
)

type SimulateCmd struct {
	Games     int    `default:"10000" help:"Number of games to deal"`
	Players   int    `default:"0" help:"Players per game (0 cycles through 3-6)"`
	Workers   int    `default:"0" help:"Parallel workers (0 for one per CPU)"`
	Seed      int64  `default:"0" help:"RNG seed (0 for random)"`
	Questions int    `default:"0" help:"Random questions asked and checked per game"`
	Format    string `enum:"text,yaml" default:"text" help:"Report format (text, yaml)"`
	JSON      bool   `name:"json-log" help:"Log progress as JSON"`
	Verbose   bool   `short:"V" help:"Log every deal"`
}

func (c *SimulateCmd) Run() error {
	var out zerolog.Logger
	if c.JSON {
		out = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	}

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	seed := randutil.Resolve(c.Seed, time.Now())

	level := log.WarnLevel
	if c.Verbose {
		level = log.DebugLevel
	}

	ctx := notifyShutdown(func(sig os.Signal) {
		out.Warn().Str("signal", sig.String()).Msg("Interrupted, abandoning remaining games")
	})
	out.Info().
		Int("games", c.Games).
		Int("players", c.Players).
		Int("workers", workers).
		Int64("seed", seed).
		Msg("Simulation starting")

	start := time.Now()
	stats, err := simulator.New(simulator.Config{
		Games:     c.Games,
		Players:   c.Players,
		Workers:   workers,
		Seed:      seed,
		Questions: c.Questions,
		Logger:    logging.New(os.Stderr, level),
	}).Run(ctx)
	if err != nil {
		out.Error().Err(err).Int64("seed", seed).Msg("Simulation failed")
		return err
	}

	elapsed := time.Since(start)
	out.Info().
		Int("games", stats.Games).
		Dur("elapsed", elapsed).
		Float64("games_per_sec", float64(stats.Games)/elapsed.Seconds()).
		Msg("Simulation complete")

	report := simulator.NewReport(stats, seed)
	switch c.Format {
	case "yaml":
		return report.WriteYAML(os.Stdout)
	default:
		if err := report.WriteText(os.Stdout); err != nil {
			return err
		}
		fmt.Printf("\nReplay with --seed %d\n", seed)
		return nil
	}
}
