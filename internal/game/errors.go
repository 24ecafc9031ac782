package game

import (
	"errors"

	"github.com/hmtavares/dod-trainer/internal/deck"
)

// Setup and consistency errors. These indicate a bug or a corrupted deck and
// end the session.
var (
	ErrInvalidPlayerCount = errors.New("game: there must be 3-6 players")
	ErrDealConsistency    = errors.New("game: bad deal")
	ErrDuplicateCard      = errors.New("game: duplicate card in hand")
	ErrEmptyDeck          = deck.ErrEmptyDeck
)

// Query errors. These come from user input; the caller reports them and the
// session carries on unchanged.
var (
	ErrInvalidPlayer = errors.New("game: invalid player")
	ErrInvalidRange  = errors.New("game: invalid range")
	ErrInvalidSuit   = errors.New("game: invalid suit")
)

// IsRecoverable reports whether err is a query validation error that a shell
// should print before prompting again.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrInvalidPlayer) ||
		errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrInvalidSuit)
}
