package game

import (
	"fmt"
	"strings"

	"github.com/hmtavares/dod-trainer/internal/deck"
)

// Grid records which cards a hand holds: one row per suit, one column per
// rank. A cell is 1 when the card is held and 0 otherwise.
type Grid [deck.NumSuits][deck.NumRanks]uint8

// SuitIndex maps a suit to its grid row
func SuitIndex(s deck.Suit) (int, error) {
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSuit, s)
	}
	return int(s), nil
}

// RankSpan lists the ranks covered by the inclusive range start..end. When
// start > end the range wraps past 9 back to 1, so 7..1 covers 7, 8, 9, 1.
// start == end covers a single rank.
func RankSpan(start, end deck.Rank) ([]deck.Rank, error) {
	if !start.Valid() {
		return nil, fmt.Errorf("%w: start %d outside %d-%d", ErrInvalidRange, start, deck.MinRank, deck.MaxRank)
	}
	if !end.Valid() {
		return nil, fmt.Errorf("%w: end %d outside %d-%d", ErrInvalidRange, end, deck.MinRank, deck.MaxRank)
	}

	length := end.Index() - start.Index() + 1
	if start > end {
		length += deck.NumRanks
	}

	span := make([]deck.Rank, length)
	for i := range span {
		span[i] = deck.MinRank + deck.Rank((start.Index()+i)%deck.NumRanks)
	}
	return span, nil
}

// Set marks a card as held and reports whether it was already set
func (g *Grid) Set(c deck.Card) (bool, error) {
	row, err := SuitIndex(c.Suit)
	if err != nil {
		return false, err
	}
	if !c.Rank.Valid() {
		return false, fmt.Errorf("%w: %s", deck.ErrInvalidCard, c)
	}

	col := c.Rank.Index()
	dup := g[row][col] != 0
	g[row][col] = 1
	return dup, nil
}

// Has reports whether the grid holds the card
func (g Grid) Has(c deck.Card) bool {
	if !c.Suit.Valid() || !c.Rank.Valid() {
		return false
	}
	return g[c.Suit][c.Rank.Index()] != 0
}

// RowCount counts the cards held in one suit
func (g Grid) RowCount(s deck.Suit) int {
	if !s.Valid() {
		return 0
	}
	n := 0
	for _, cell := range g[s] {
		n += int(cell)
	}
	return n
}

// CountSpan counts the cells set in the given rank columns of one suit row
func (g Grid) CountSpan(s deck.Suit, span []deck.Rank) int {
	n := 0
	for _, r := range span {
		n += int(g[s][r.Index()])
	}
	return n
}

// String renders the grid one suit per line, e.g. "D 0 1 0 0 0 0 0 0 1"
func (g Grid) String() string {
	var b strings.Builder
	for i, s := range deck.Suits {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.String())
		for _, cell := range g[s] {
			fmt.Fprintf(&b, " %d", cell)
		}
	}
	return b.String()
}

// SuitFilter selects either a single suit or all suits for a range count
type SuitFilter struct {
	suit deck.Suit
	all  bool
}

// AllSuits counts every suit
var AllSuits = SuitFilter{all: true}

// OnlySuit restricts a count to one suit
func OnlySuit(s deck.Suit) SuitFilter {
	return SuitFilter{suit: s}
}

// ParseSuitFilter maps a suit token to a filter. "d", "h" and "s" (either
// case) select one suit; an empty token or "*" selects all suits.
func ParseSuitFilter(tok string) (SuitFilter, error) {
	if tok == "" || tok == "*" {
		return AllSuits, nil
	}
	s, err := deck.ParseSuit(tok)
	if err != nil {
		return SuitFilter{}, fmt.Errorf("%w: %q", ErrInvalidSuit, tok)
	}
	return OnlySuit(s), nil
}

// All reports whether the filter covers every suit
func (f SuitFilter) All() bool {
	return f.all
}

// Suit returns the selected suit; false when the filter covers all suits
func (f SuitFilter) Suit() (deck.Suit, bool) {
	return f.suit, !f.all
}

// Suits lists the suits the filter covers
func (f SuitFilter) Suits() ([]deck.Suit, error) {
	if f.all {
		return deck.Suits[:], nil
	}
	if _, err := SuitIndex(f.suit); err != nil {
		return nil, err
	}
	return []deck.Suit{f.suit}, nil
}

// String returns the suit letter, or "*" for all suits
func (f SuitFilter) String() string {
	if f.all {
		return "*"
	}
	return f.suit.String()
}
