package game

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// SessionOption configures a Session during creation.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	rng    *rand.Rand
	logger *log.Logger
	clock  quartz.Clock
	id     string
}

// WithRand sets the random source used for shuffling and least-suit ties.
// Pass randutil.New(seed) for a reproducible game.
func WithRand(rng *rand.Rand) SessionOption {
	return func(c *sessionConfig) {
		c.rng = rng
	}
}

// WithLogger sets the session logger
func WithLogger(logger *log.Logger) SessionOption {
	return func(c *sessionConfig) {
		c.logger = logger
	}
}

// WithClock sets the clock used to timestamp the session and its questions
func WithClock(clock quartz.Clock) SessionOption {
	return func(c *sessionConfig) {
		c.clock = clock
	}
}

// WithID overrides the generated session ID
func WithID(id string) SessionOption {
	return func(c *sessionConfig) {
		c.id = id
	}
}
