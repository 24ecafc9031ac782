package deck

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCard is returned when a rank or suit is outside the game's domain.
var ErrInvalidCard = errors.New("deck: invalid card")

// Suit represents a card suit. The numeric value doubles as the row index
// into a hand grid.
type Suit uint8

const (
	Diamonds Suit = iota
	Hearts
	Spades
)

// NumSuits is the number of suits in a Deduce or Die deck
const NumSuits = 3

// Suits lists every suit in grid order
var Suits = [NumSuits]Suit{Diamonds, Hearts, Spades}

// String returns the single-letter suit code used at the table
func (s Suit) String() string {
	switch s {
	case Diamonds:
		return "D"
	case Hearts:
		return "H"
	case Spades:
		return "S"
	default:
		return "?"
	}
}

// Symbol returns the unicode suit symbol for display
func (s Suit) Symbol() string {
	switch s {
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Valid reports whether s is one of the three game suits
func (s Suit) Valid() bool {
	return s <= Spades
}

// ParseSuit parses a suit letter, ignoring case
func ParseSuit(s string) (Suit, error) {
	switch strings.ToUpper(s) {
	case "D":
		return Diamonds, nil
	case "H":
		return Hearts, nil
	case "S":
		return Spades, nil
	default:
		return 0, fmt.Errorf("%w: bad suit %q", ErrInvalidCard, s)
	}
}

// Rank represents a card rank from 1 to 9
type Rank int

const (
	MinRank Rank = 1
	MaxRank Rank = 9
)

// NumRanks is the number of ranks per suit
const NumRanks = int(MaxRank - MinRank + 1)

// Valid reports whether r is in [MinRank, MaxRank]
func (r Rank) Valid() bool {
	return r >= MinRank && r <= MaxRank
}

// Index returns the zero-based grid column for the rank
func (r Rank) Index() int {
	return int(r - MinRank)
}

// Card represents a playing card. Cards are comparable values.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a card, rejecting ranks and suits outside the deck
func NewCard(rank Rank, suit Suit) (Card, error) {
	if !rank.Valid() {
		return Card{}, fmt.Errorf("%w: bad rank %d", ErrInvalidCard, rank)
	}
	if !suit.Valid() {
		return Card{}, fmt.Errorf("%w: bad suit %d", ErrInvalidCard, suit)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// MustCard is like NewCard but panics on an invalid card. Intended for
// tests and package-level tables.
func MustCard(rank Rank, suit Suit) Card {
	c, err := NewCard(rank, suit)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the table notation for a card (e.g., "7D")
func (c Card) String() string {
	return fmt.Sprintf("%d%s", c.Rank, c.Suit)
}

// Pretty returns the card with its suit symbol (e.g., "7♦")
func (c Card) Pretty() string {
	return fmt.Sprintf("%d%s", c.Rank, c.Suit.Symbol())
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// ParseCard parses a string like "7d" into a Card
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	if s[0] < '1' || s[0] > '9' {
		return Card{}, fmt.Errorf("%w: bad rank %q", ErrInvalidCard, s[0])
	}
	suit, err := ParseSuit(s[1:])
	if err != nil {
		return Card{}, err
	}

	return NewCard(Rank(s[0]-'0'), suit)
}

// ParseCards parses a whitespace or comma separated list such as "7D 8d,9S"
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})

	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards renders cards the way the table reads them: "[7D, 8H]"
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Canonical returns one card per rank and suit in suit-major order
func Canonical() []Card {
	cards := make([]Card, 0, NumSuits*NumRanks)
	for _, suit := range Suits {
		for rank := MinRank; rank <= MaxRank; rank++ {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}
	return cards
}
