package deck

import (
	"errors"
	"io"
	rand "math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"
)

var (
	// ErrEmptyDeck is returned when a draw finds both the drawable and the
	// discard piles empty.
	ErrEmptyDeck = errors.New("deck: empty deck")

	// ErrNotADeck is returned when combining with a missing deck.
	ErrNotADeck = errors.New("deck: can only combine with another deck")
)

// Size is the number of cards in one full deck
const Size = NumSuits * NumRanks

// Deck holds the drawable cards and a separate discard pile. The top of the
// deck is the end of the cards slice.
type Deck struct {
	name     string
	cards    []Card
	discards []Card
	rng      *rand.Rand
	logger   *log.Logger
}

// New creates a full shuffled deck. A nil logger discards output.
func New(name string, rng *rand.Rand, logger *log.Logger) *Deck {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	d := &Deck{
		name:   name,
		cards:  Canonical(),
		rng:    rng,
		logger: logger.WithPrefix("deck"),
	}

	d.Shuffle()
	return d
}

// Shuffle shuffles the drawable cards using Fisher-Yates
func (d *Deck) Shuffle() {
	shuffle(d.cards, d.rng)
}

func shuffle(cards []Card, rng *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		var j int
		if rng != nil {
			j = rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Draw removes n cards from the top of the deck. When the drawable cards run
// out the discards are shuffled in as the new deck. If both piles are empty
// the cards drawn so far are returned to the deck and ErrEmptyDeck is
// returned.
func (d *Deck) Draw(n int) ([]Card, error) {
	drawn := make([]Card, 0, n)
	for range n {
		if len(d.cards) == 0 {
			d.reshuffle()
		}
		if len(d.cards) == 0 {
			for i := len(drawn) - 1; i >= 0; i-- {
				d.cards = append(d.cards, drawn[i])
			}
			return nil, ErrEmptyDeck
		}

		last := len(d.cards) - 1
		drawn = append(drawn, d.cards[last])
		d.cards = d.cards[:last]
	}
	return drawn, nil
}

// DrawOne draws a single card
func (d *Deck) DrawOne() (Card, error) {
	cards, err := d.Draw(1)
	if err != nil {
		return Card{}, err
	}
	return cards[0], nil
}

func (d *Deck) reshuffle() {
	d.cards = d.discards
	d.discards = nil
	d.Shuffle()

	if len(d.cards) == 0 {
		d.logger.Warn("Deck empty", "deck", d.name)
		return
	}
	d.logger.Info("Deck shuffled", "deck", d.name, "cards", len(d.cards))
	d.logger.Debug("Shuffled order", "deck", d.name, "cards", FormatCards(d.cards))
}

// Discard puts cards on the discard pile. The caller is responsible for only
// discarding cards that came from this deck.
func (d *Deck) Discard(cards ...Card) {
	d.discards = append(d.discards, cards...)
}

// Combine appends the other deck's drawable cards to this deck. The other
// deck is left untouched.
func (d *Deck) Combine(other *Deck) error {
	if other == nil {
		return ErrNotADeck
	}
	d.cards = append(d.cards, other.cards...)
	return nil
}

// Name returns the deck name used in logs
func (d *Deck) Name() string {
	return d.name
}

// Remaining returns the number of drawable cards
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// DiscardCount returns the number of cards on the discard pile
func (d *Deck) DiscardCount() int {
	return len(d.discards)
}

// IsEmpty returns true when neither pile holds a card
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0 && len(d.discards) == 0
}

// Cards returns a copy of the drawable cards, bottom first
func (d *Deck) Cards() []Card {
	return append([]Card(nil), d.cards...)
}

// Discards returns a copy of the discard pile
func (d *Deck) Discards() []Card {
	return append([]Card(nil), d.discards...)
}

// String renders the drawable cards nine to a line
func (d *Deck) String() string {
	var b strings.Builder
	for i, c := range d.cards {
		b.WriteString(c.String())
		switch {
		case i == len(d.cards)-1:
		case (i+1)%NumRanks == 0:
			b.WriteString("\n")
		default:
			b.WriteString(", ")
		}
	}
	return b.String()
}
