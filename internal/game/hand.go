package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/hmtavares/dod-trainer/internal/deck"
	"github.com/hmtavares/dod-trainer/internal/randutil"
)

// Hand is the set of cards dealt to one player. The cards, grid and least
// suit are fixed once the hand is dealt.
type Hand struct {
	player int
	cards  []deck.Card
	grid   Grid
	least  deck.Suit
}

// NewHand draws size cards from d for the given player. The deck is mutated;
// callers hand the same deck to each player in turn.
func NewHand(player, size int, d *deck.Deck, rng *rand.Rand, logger *log.Logger) (*Hand, error) {
	cards, err := d.Draw(size)
	if err != nil {
		return nil, fmt.Errorf("dealing player %d: %w", player, err)
	}
	return NewHandFromCards(player, cards, rng, logger)
}

// NewHandFromCards builds a hand from cards that have already been dealt
func NewHandFromCards(player int, cards []deck.Card, rng *rand.Rand, logger *log.Logger) (*Hand, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := &Hand{
		player: player,
		cards:  append([]deck.Card(nil), cards...),
	}

	for _, c := range h.cards {
		dup, err := h.grid.Set(c)
		if err != nil {
			return nil, err
		}
		if dup {
			return nil, fmt.Errorf("%w: player %d holds %s twice", ErrDuplicateCard, player, c)
		}
	}

	least, tied, minCount := leastSuit(h.grid, rng)
	h.least = least

	logger.Info("Hand dealt", "player", player, "cards", deck.FormatCards(h.cards))
	logger.Debug("Hand grid", "player", player, "grid", h.grid.String())
	logger.Info("Least suit", "player", player, "count", minCount, "tied", tied, "choice", least)

	return h, nil
}

// leastSuit returns one of the suits holding the fewest cards, chosen
// uniformly among ties, along with every tied suit and the minimum count.
func leastSuit(g Grid, rng *rand.Rand) (deck.Suit, []deck.Suit, int) {
	minCount := deck.NumRanks + 1
	var tied []deck.Suit
	for _, s := range deck.Suits {
		n := g.RowCount(s)
		switch {
		case n < minCount:
			minCount = n
			tied = []deck.Suit{s}
		case n == minCount:
			tied = append(tied, s)
		}
	}
	return randutil.Pick(rng, tied), tied, minCount
}

// CountRange counts the cards held with ranks in the inclusive, wrap-around
// range start..end, restricted by filter.
func (h *Hand) CountRange(start, end deck.Rank, filter SuitFilter) (int, error) {
	span, err := RankSpan(start, end)
	if err != nil {
		return 0, err
	}
	suits, err := filter.Suits()
	if err != nil {
		return 0, err
	}

	count := 0
	for _, s := range suits {
		count += h.grid.CountSpan(s, span)
	}
	return count, nil
}

// Player returns the 1-based player number
func (h *Hand) Player() int {
	return h.player
}

// Cards returns a copy of the cards in deal order
func (h *Hand) Cards() []deck.Card {
	return append([]deck.Card(nil), h.cards...)
}

// Size returns the number of cards in the hand
func (h *Hand) Size() int {
	return len(h.cards)
}

// Grid returns the presence grid
func (h *Hand) Grid() Grid {
	return h.grid
}

// Least returns the public least-suit signal for the hand
func (h *Hand) Least() deck.Suit {
	return h.least
}

// Has reports whether the hand holds c
func (h *Hand) Has(c deck.Card) bool {
	return h.grid.Has(c)
}

// SuitCounts returns the number of cards held per suit, in grid order
func (h *Hand) SuitCounts() [deck.NumSuits]int {
	var counts [deck.NumSuits]int
	for i, s := range deck.Suits {
		counts[i] = h.grid.RowCount(s)
	}
	return counts
}

// String returns the cards as the table shows them
func (h *Hand) String() string {
	return deck.FormatCards(h.cards)
}
