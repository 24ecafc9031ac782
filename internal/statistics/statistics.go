// Package statistics accumulates what simulated deals look like: how short
// each player's least suit is, how often it is a tie, and which suit ends
// up least.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/hmtavares/dod-trainer/internal/deck"
)

// HandResult describes one dealt hand
type HandResult struct {
	Player     int       // 1-based seat
	Size       int       // cards held
	Least      deck.Suit // least suit announced for the hand
	LeastCount int       // cards held in the least suit
	TiedSuits  int       // suits sharing the lowest count, 1 when there is no tie
}

// GameResult represents the outcome of a single simulated deal
type GameResult struct {
	Seed    int64 // RNG seed for this game (for replay)
	Players int
	Exposed bool // an exposed card was dealt
	Hands   []HandResult
	Answers []int // counts returned by the simulated questions
}

// PlayerCountStats tracks statistics for one table size
type PlayerCountStats struct {
	Games    int
	Hands    int
	SumLeast float64
	Ties     int
}

// Statistics tracks least-suit statistics across simulated games
type Statistics struct {
	Games     int
	Hands     int
	SumLeast  float64
	SumLeast2 float64   // Sum of squares for variance calculation
	Values    []float64 // Least-suit count per hand, for median/percentile

	Ties       int                // Hands where the least suit was picked from a tie
	SuitTally  [deck.NumSuits]int // How often each suit was least
	Exposed    int                // Games that dealt an exposed card
	Questions  int                // Simulated questions answered
	SumAnswers int                // Sum of their answers

	// Table size analytics, index is the player count
	ByPlayers [7]PlayerCountStats
}

// Mean returns the mean least-suit count per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumLeast / float64(s.Hands)
}

// Variance returns the sample variance of the least-suit count
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumLeast2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a game into the statistics
func (s *Statistics) Add(result GameResult) {
	s.Games++
	if result.Exposed {
		s.Exposed++
	}

	var bp *PlayerCountStats
	if result.Players >= 0 && result.Players < len(s.ByPlayers) {
		bp = &s.ByPlayers[result.Players]
		bp.Games++
	}

	for _, h := range result.Hands {
		v := float64(h.LeastCount)
		s.Hands++
		s.SumLeast += v
		s.SumLeast2 += v * v
		s.Values = append(s.Values, v)

		if h.Least.Valid() {
			s.SuitTally[h.Least]++
		}
		tied := h.TiedSuits > 1
		if tied {
			s.Ties++
		}

		if bp != nil {
			bp.Hands++
			bp.SumLeast += v
			if tied {
				bp.Ties++
			}
		}
	}

	for _, a := range result.Answers {
		s.Questions++
		s.SumAnswers += a
	}
}

// Median returns the median least-suit count
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// TieRate returns the fraction of hands whose least suit was a tie
func (s *Statistics) TieRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Ties) / float64(s.Hands)
}

// PlayerCountMean returns the mean least-suit count for a table size
func (s *Statistics) PlayerCountMean(players int) float64 {
	if players < 0 || players >= len(s.ByPlayers) {
		return 0
	}
	bp := s.ByPlayers[players]
	if bp.Hands == 0 {
		return 0
	}
	return bp.SumLeast / float64(bp.Hands)
}

// Validate checks that the tallies agree with each other
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}

	suitTotal := 0
	for _, n := range s.SuitTally {
		suitTotal += n
	}
	if suitTotal != s.Hands {
		return fmt.Errorf("suit tally total (%d) does not match hands count (%d)", suitTotal, s.Hands)
	}

	if s.Ties > s.Hands {
		return fmt.Errorf("ties (%d) exceed hands (%d)", s.Ties, s.Hands)
	}

	games, hands := 0, 0
	for _, bp := range s.ByPlayers {
		games += bp.Games
		hands += bp.Hands
	}
	if games != s.Games || hands != s.Hands {
		return fmt.Errorf("table size totals (%d games, %d hands) do not match (%d games, %d hands)",
			games, hands, s.Games, s.Hands)
	}

	return nil
}
