// Package simulator deals many sessions in parallel, checks every deal
// against the game rules and collects least-suit statistics.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/hmtavares/dod-trainer/internal/deck"
	"github.com/hmtavares/dod-trainer/internal/game"
	"github.com/hmtavares/dod-trainer/internal/randutil"
	"github.com/hmtavares/dod-trainer/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// ErrInvariant is returned when a simulated game breaks a game rule
var ErrInvariant = errors.New("simulator: invariant violated")

// Config holds configuration for running simulations
type Config struct {
	Games     int
	Players   int // 0 cycles through every table size
	Workers   int
	Seed      int64
	Questions int // questions asked per game
	Logger    *log.Logger
}

// Simulator runs batches of simulated games
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config}
}

// Run plays every game and returns the combined statistics. Games are
// added in order so results depend only on the seed, not on scheduling.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Games < 1 {
		return nil, fmt.Errorf("simulator: games must be positive, got %d", s.config.Games)
	}
	if p := s.config.Players; p != 0 && (p < game.MinPlayers || p > game.MaxPlayers) {
		return nil, fmt.Errorf("%w: got %d", game.ErrInvalidPlayerCount, p)
	}

	results := make([]statistics.GameResult, s.config.Games)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i := range s.config.Games {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := s.playGame(i)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.config.Logger.Info("Simulation complete", "games", stats.Games, "hands", stats.Hands)
	return stats, nil
}

// players returns the table size for game i
func (s *Simulator) players(i int) int {
	if s.config.Players != 0 {
		return s.config.Players
	}
	return game.MinPlayers + i%(game.MaxPlayers-game.MinPlayers+1)
}

// playGame deals one session, verifies it and asks random questions
func (s *Simulator) playGame(i int) (statistics.GameResult, error) {
	seed := randutil.Derive(s.config.Seed, i)
	rng := randutil.New(seed)
	players := s.players(i)

	session, err := game.NewSession(players,
		game.WithRand(rng),
		game.WithLogger(s.config.Logger),
		game.WithID(fmt.Sprintf("sim-%d", i+1)),
	)
	if err != nil {
		return statistics.GameResult{}, err
	}

	result, err := checkDeal(session)
	if err != nil {
		s.config.Logger.Error("Bad deal", "error", err, "seed", seed)
		return statistics.GameResult{}, err
	}
	result.Seed = seed

	if s.config.Questions > 0 {
		if _, err := session.DrawQuestions(); err != nil {
			return statistics.GameResult{}, err
		}
	}
	for range s.config.Questions {
		q := randomQuery(rng, players)
		a, err := session.Ask(q)
		if err != nil {
			return statistics.GameResult{}, err
		}
		h, err := session.Hand(q.Player)
		if err != nil {
			return statistics.GameResult{}, err
		}
		if want := bruteCount(h.Cards(), q); a.Count != want {
			return statistics.GameResult{}, fmt.Errorf("%w: %s answered %d, recount gives %d", ErrInvariant, q, a.Count, want)
		}
		result.Answers = append(result.Answers, a.Count)
	}

	return result, nil
}

// checkDeal verifies hand sizes, the exposed card and each least suit
func checkDeal(session *game.Session) (statistics.GameResult, error) {
	players := session.NumPlayers()
	size := game.CardsPerPlayer(players)
	_, exposed := session.Exposed()

	result := statistics.GameResult{Players: players, Exposed: exposed}

	if exposed == (players == 5) {
		return result, fmt.Errorf("%w: exposed card dealt=%v with %d players", ErrInvariant, exposed, players)
	}
	if n := len(session.Evidence()); n != game.EvidenceCards {
		return result, fmt.Errorf("%w: %d evidence cards", ErrInvariant, n)
	}

	for _, h := range session.Hands() {
		if h.Size() != size {
			return result, fmt.Errorf("%w: player %d holds %d cards, want %d", ErrInvariant, h.Player(), h.Size(), size)
		}

		counts := h.SuitCounts()
		lowest := min(counts[0], counts[1], counts[2])
		tied := 0
		for _, n := range counts {
			if n == lowest {
				tied++
			}
		}
		if counts[h.Least()] != lowest {
			return result, fmt.Errorf("%w: player %d least suit %s holds %d, lowest is %d",
				ErrInvariant, h.Player(), h.Least(), counts[h.Least()], lowest)
		}

		result.Hands = append(result.Hands, statistics.HandResult{
			Player:     h.Player(),
			Size:       h.Size(),
			Least:      h.Least(),
			LeastCount: lowest,
			TiedSuits:  tied,
		})
	}
	return result, nil
}

func randomQuery(rng *rand.Rand, players int) game.Query {
	q := game.Query{
		Player: 1 + rng.IntN(players),
		Start:  deck.MinRank + deck.Rank(rng.IntN(deck.NumRanks)),
		End:    deck.MinRank + deck.Rank(rng.IntN(deck.NumRanks)),
		Suit:   game.AllSuits,
	}
	if n := rng.IntN(deck.NumSuits + 1); n < deck.NumSuits {
		q.Suit = game.OnlySuit(deck.Suits[n])
	}
	return q
}

// bruteCount recounts a query straight from the cards, without the grid
func bruteCount(cards []deck.Card, q game.Query) int {
	in := func(r deck.Rank) bool {
		if q.Start <= q.End {
			return r >= q.Start && r <= q.End
		}
		return r >= q.Start || r <= q.End
	}
	want, only := q.Suit.Suit()

	n := 0
	for _, c := range cards {
		if only && c.Suit != want {
			continue
		}
		if in(c.Rank) {
			n++
		}
	}
	return n
}
