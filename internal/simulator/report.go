package simulator

import (
	"fmt"
	"io"

	"github.com/hmtavares/dod-trainer/internal/deck"
	"github.com/hmtavares/dod-trainer/internal/game"
	"github.com/hmtavares/dod-trainer/internal/statistics"
	"gopkg.in/yaml.v3"
)

// Report is the printable summary of a simulation run
type Report struct {
	Games      int               `yaml:"games"`
	Hands      int               `yaml:"hands"`
	Seed       int64             `yaml:"seed"`
	LeastSuit  LeastSuitReport   `yaml:"least_suit"`
	SuitTally  map[string]int    `yaml:"suit_tally"`
	ByPlayers  []TableSizeReport `yaml:"by_players"`
	Questions  int               `yaml:"questions,omitempty"`
	MeanAnswer float64           `yaml:"mean_answer,omitempty"`
}

// LeastSuitReport summarises the number of cards held in the least suit
type LeastSuitReport struct {
	Mean    float64    `yaml:"mean"`
	Median  float64    `yaml:"median"`
	StdDev  float64    `yaml:"stddev"`
	CI95    [2]float64 `yaml:"ci95,flow"`
	TieRate float64    `yaml:"tie_rate"`
}

// TableSizeReport summarises games with one player count
type TableSizeReport struct {
	Players   int     `yaml:"players"`
	Games     int     `yaml:"games"`
	Hands     int     `yaml:"hands"`
	HandSize  int     `yaml:"hand_size"`
	MeanLeast float64 `yaml:"mean_least"`
	TieRate   float64 `yaml:"tie_rate"`
}

// NewReport builds a report from collected statistics
func NewReport(stats *statistics.Statistics, seed int64) Report {
	low, high := stats.ConfidenceInterval95()
	r := Report{
		Games: stats.Games,
		Hands: stats.Hands,
		Seed:  seed,
		LeastSuit: LeastSuitReport{
			Mean:    stats.Mean(),
			Median:  stats.Median(),
			StdDev:  stats.StdDev(),
			CI95:    [2]float64{low, high},
			TieRate: stats.TieRate(),
		},
		SuitTally: make(map[string]int, deck.NumSuits),
		Questions: stats.Questions,
	}
	for _, s := range deck.Suits {
		r.SuitTally[s.String()] = stats.SuitTally[s]
	}
	if stats.Questions > 0 {
		r.MeanAnswer = float64(stats.SumAnswers) / float64(stats.Questions)
	}

	for p := game.MinPlayers; p <= game.MaxPlayers; p++ {
		bp := stats.ByPlayers[p]
		if bp.Games == 0 {
			continue
		}
		tr := TableSizeReport{
			Players:   p,
			Games:     bp.Games,
			Hands:     bp.Hands,
			HandSize:  game.CardsPerPlayer(p),
			MeanLeast: stats.PlayerCountMean(p),
		}
		if bp.Hands > 0 {
			tr.TieRate = float64(bp.Ties) / float64(bp.Hands)
		}
		r.ByPlayers = append(r.ByPlayers, tr)
	}
	return r
}

// WriteYAML writes the report as a YAML document
func (r Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// WriteText prints a human readable summary
func (r Report) WriteText(w io.Writer) error {
	ls := r.LeastSuit
	lines := []string{
		"\n=== SIMULATION RESULTS ===",
		fmt.Sprintf("Games dealt: %d (%d hands, seed %d)", r.Games, r.Hands, r.Seed),
		"\n=== LEAST SUIT ===",
		fmt.Sprintf("Cards in least suit: mean %.3f, median %.1f, std dev %.3f", ls.Mean, ls.Median, ls.StdDev),
		fmt.Sprintf("95%% CI: [%.3f, %.3f]", ls.CI95[0], ls.CI95[1]),
		fmt.Sprintf("Chosen from a tie: %.1f%% of hands", ls.TieRate*100),
	}
	for _, s := range deck.Suits {
		n := r.SuitTally[s.String()]
		pct := 0.0
		if r.Hands > 0 {
			pct = float64(n) / float64(r.Hands) * 100
		}
		lines = append(lines, fmt.Sprintf("Least suit %s: %d hands (%.1f%%)", s, n, pct))
	}

	lines = append(lines, "\n=== TABLE SIZE ANALYSIS ===")
	for _, tr := range r.ByPlayers {
		lines = append(lines, fmt.Sprintf("%d players: %d games, %d cards each, least suit mean %.3f, ties %.1f%%",
			tr.Players, tr.Games, tr.HandSize, tr.MeanLeast, tr.TieRate*100))
	}

	if r.Questions > 0 {
		lines = append(lines, "\n=== QUESTIONS ===",
			fmt.Sprintf("Questions answered: %d, mean answer %.3f", r.Questions, r.MeanAnswer))
	}

	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
