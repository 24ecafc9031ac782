// Package game implements the Deduce or Die rules: dealing a session,
// tracking each hand's suit/rank grid and answering range questions.
//
// The main type is Session, which owns the player deck, the question deck,
// every hand and the question log.
//
// # Basic Usage
//
// Deal a four player game and ask a question:
//
//	s, err := game.NewSession(4)
//	if err != nil {
//	    return err
//	}
//	s.DrawQuestions()
//	a, err := s.Ask(game.Query{Player: 2, Start: 7, End: 1, Suit: game.AllSuits})
//
// Ranges wrap: 7 to 1 covers 7, 8, 9 and 1.
//
// # Deterministic Testing
//
// For deterministic testing, inject the random source and clock:
//
//	s, err := game.NewSession(4,
//	    game.WithRand(randutil.New(42)),
//	    game.WithClock(quartz.NewMock(t)),
//	)
//
// # Architecture
//
// Session delegates responsibilities to smaller pieces:
//   - deck.Deck: Shuffles and deals, reshuffling its discards when empty
//   - Hand: Holds a player's cards, grid and announced least suit
//   - Grid: Counts cards by suit and rank, including wrap-around spans
//
// A session is single threaded. The simulator runs many sessions at once,
// each with its own random source.
package game
