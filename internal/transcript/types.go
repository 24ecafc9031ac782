// Package transcript records a training session as a TOML document: the
// public setup, every question asked and, once revealed, the hidden cards.
package transcript

import "time"

// Transcript is one session's record
type Transcript struct {
	Session    string     `toml:"session"`
	Players    int        `toml:"players"`
	Seed       int64      `toml:"seed,omitempty"`
	Started    time.Time  `toml:"started"`
	Saved      time.Time  `toml:"saved"`
	Exposed    string     `toml:"exposed,omitempty"`
	LeastSuits []string   `toml:"least_suits"`
	Hand       []string   `toml:"hand"`
	Questions  []Question `toml:"question,omitempty"`
	Reveal     *Reveal    `toml:"reveal,omitempty"`
}

// Question is one answered query
type Question struct {
	Seq     int       `toml:"seq"`
	Player  int       `toml:"player"`
	Start   int       `toml:"start"`
	End     int       `toml:"end"`
	Suit    string    `toml:"suit"`
	Count   int       `toml:"count"`
	Shown   []string  `toml:"shown"`
	AskedAt time.Time `toml:"asked_at"`
}

// Reveal holds the hidden cards, included only after the player reveals
type Reveal struct {
	Evidence []string   `toml:"evidence"`
	Hands    [][]string `toml:"hands"`
}
