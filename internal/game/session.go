package game

import (
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/hmtavares/dod-trainer/internal/deck"
	"github.com/hmtavares/dod-trainer/internal/gameid"
)

const (
	MinPlayers = 3
	MaxPlayers = 6

	// EvidenceCards are set aside face down before the deal
	EvidenceCards = 2
	// QuestionCards are showing at any time during play
	QuestionCards = 3
)

// cardsPerPlayer is the hand size for each legal table size. Only a five
// player game uses the whole deck; the others leave one card to expose.
var cardsPerPlayer = map[int]int{
	3: 8,
	4: 6,
	5: 5,
	6: 4,
}

// CardsPerPlayer returns the hand size for n players, or 0 if n is not a
// legal table size.
func CardsPerPlayer(n int) int {
	return cardsPerPlayer[n]
}

// Session is one game of Deduce or Die: the dealt hands, the evidence, the
// exposed card and the question deck that drives each query.
type Session struct {
	id         string
	numPlayers int
	startedAt  time.Time

	playerDeck   *deck.Deck
	questionDeck *deck.Deck

	evidence   []deck.Card
	exposed    deck.Card
	hasExposed bool
	hands      []*Hand

	questionCards []deck.Card
	questions     []Answer

	rng    *rand.Rand
	logger *log.Logger
	clock  quartz.Clock
}

// NewSession shuffles the player deck, sets two evidence cards aside, deals
// every player and exposes the leftover card if there is one.
func NewSession(numPlayers int, opts ...SessionOption) (*Session, error) {
	if numPlayers < MinPlayers || numPlayers > MaxPlayers {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPlayerCount, numPlayers)
	}

	cfg := &sessionConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.clock == nil {
		cfg.clock = quartz.NewReal()
	}
	if cfg.id == "" {
		cfg.id = gameid.Generate()
	}

	s := &Session{
		id:         cfg.id,
		numPlayers: numPlayers,
		startedAt:  cfg.clock.Now(),
		rng:        cfg.rng,
		logger:     cfg.logger.With("session", gameid.Short(cfg.id)),
		clock:      cfg.clock,
	}
	s.logger.Info("Session start", "players", numPlayers)

	s.playerDeck = deck.New("Player", s.rng, s.logger)
	s.questionDeck = deck.New("Question", s.rng, s.logger)
	if err := s.questionDeck.Combine(deck.New("Question-2", s.rng, s.logger)); err != nil {
		return nil, err
	}
	s.logger.Debug("Player deck", "cards", "\n"+s.playerDeck.String())
	s.logger.Debug("Question deck", "cards", "\n"+s.questionDeck.String())

	if err := s.deal(); err != nil {
		s.logger.Error("Deal failed", "error", err)
		return nil, err
	}
	return s, nil
}

func (s *Session) deal() error {
	evidence, err := s.playerDeck.Draw(EvidenceCards)
	if err != nil {
		return fmt.Errorf("%w: drawing evidence: %w", ErrDealConsistency, err)
	}
	s.evidence = evidence
	s.logger.Info("Evidence set aside", "cards", deck.FormatCards(evidence))

	size := CardsPerPlayer(s.numPlayers)
	s.hands = make([]*Hand, 0, s.numPlayers)
	for p := 1; p <= s.numPlayers; p++ {
		h, err := NewHand(p, size, s.playerDeck, s.rng, s.logger)
		if err != nil {
			if errors.Is(err, deck.ErrEmptyDeck) {
				return fmt.Errorf("%w: %w", ErrDealConsistency, err)
			}
			return err
		}
		s.hands = append(s.hands, h)
	}

	exposed, err := s.playerDeck.DrawOne()
	switch {
	case errors.Is(err, deck.ErrEmptyDeck):
		if s.numPlayers != 5 {
			return fmt.Errorf("%w: no card left to expose with %d players", ErrDealConsistency, s.numPlayers)
		}
	case err != nil:
		return err
	case s.numPlayers == 5:
		return fmt.Errorf("%w: card %s left over with 5 players", ErrDealConsistency, exposed)
	default:
		s.exposed = exposed
		s.hasExposed = true
	}

	if s.hasExposed {
		s.logger.Info("Exposed card", "card", s.exposed)
	} else {
		s.logger.Info("No exposed card")
	}

	return s.verifyDeal()
}

// verifyDeal checks that evidence, hands and the exposed card account for
// every card in the player deck exactly once.
func (s *Session) verifyDeal() error {
	seen := make(map[deck.Card]bool, deck.Size)
	add := func(c deck.Card) error {
		if seen[c] {
			return fmt.Errorf("%w: %s dealt twice", ErrDealConsistency, c)
		}
		seen[c] = true
		return nil
	}

	for _, c := range s.evidence {
		if err := add(c); err != nil {
			return err
		}
	}
	for _, h := range s.hands {
		for _, c := range h.cards {
			if err := add(c); err != nil {
				return err
			}
		}
	}
	if s.hasExposed {
		if err := add(s.exposed); err != nil {
			return err
		}
	}

	if len(seen) != deck.Size {
		return fmt.Errorf("%w: %d cards dealt, want %d", ErrDealConsistency, len(seen), deck.Size)
	}
	return nil
}

// DrawQuestions draws three cards from the question deck and makes them the
// visible question cards. The deck reshuffles its discards when it runs out.
func (s *Session) DrawQuestions() ([]deck.Card, error) {
	cards, err := s.questionDeck.Draw(QuestionCards)
	if err != nil {
		return nil, fmt.Errorf("drawing question cards: %w", err)
	}
	s.questionCards = cards
	s.logger.Debug("Question cards", "cards", deck.FormatCards(cards))
	return s.QuestionCards(), nil
}

// DiscardQuestions moves the visible question cards to the question deck's
// discard pile.
func (s *Session) DiscardQuestions() {
	if len(s.questionCards) == 0 {
		return
	}
	s.questionDeck.Discard(s.questionCards...)
	s.questionCards = nil
}

// CountSuit counts the cards player holds in the inclusive, wrap-around
// range start..end, restricted by filter.
func (s *Session) CountSuit(player int, start, end deck.Rank, filter SuitFilter) (int, error) {
	h, err := s.Hand(player)
	if err != nil {
		return 0, err
	}
	return h.CountRange(start, end, filter)
}

// Ask runs one question cycle: the query is answered and logged, then the
// question cards are discarded and three new ones drawn. An invalid query
// returns an error and leaves the session unchanged.
func (s *Session) Ask(q Query) (Answer, error) {
	count, err := s.CountSuit(q.Player, q.Start, q.End, q.Suit)
	if err != nil {
		return Answer{}, err
	}

	a := Answer{
		Seq:       len(s.questions) + 1,
		Query:     q,
		Count:     count,
		Questions: s.QuestionCards(),
		AskedAt:   s.clock.Now(),
	}
	s.questions = append(s.questions, a)
	s.logger.Info(a.String(), "seq", a.Seq)

	s.DiscardQuestions()
	if _, err := s.DrawQuestions(); err != nil {
		return a, err
	}
	return a, nil
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// NumPlayers returns the number of players dealt in
func (s *Session) NumPlayers() int {
	return s.numPlayers
}

// StartedAt returns when the session was dealt
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// Evidence returns the two evidence cards
func (s *Session) Evidence() []deck.Card {
	return append([]deck.Card(nil), s.evidence...)
}

// Exposed returns the exposed card; false in a five player game
func (s *Session) Exposed() (deck.Card, bool) {
	return s.exposed, s.hasExposed
}

// Hands returns every hand, player 1 first
func (s *Session) Hands() []*Hand {
	return append([]*Hand(nil), s.hands...)
}

// Hand returns the hand for a 1-based player number
func (s *Session) Hand(player int) (*Hand, error) {
	if player < 1 || player > s.numPlayers {
		return nil, fmt.Errorf("%w: %d (players are 1-%d)", ErrInvalidPlayer, player, s.numPlayers)
	}
	return s.hands[player-1], nil
}

// Human returns player 1's hand
func (s *Session) Human() *Hand {
	return s.hands[0]
}

// QuestionCards returns the visible question cards
func (s *Session) QuestionCards() []deck.Card {
	return append([]deck.Card(nil), s.questionCards...)
}

// Questions returns every answered query in the order asked
func (s *Session) Questions() []Answer {
	return append([]Answer(nil), s.questions...)
}

// QuestionDeckState returns the drawable and discarded counts of the
// question deck
func (s *Session) QuestionDeckState() (remaining, discards int) {
	return s.questionDeck.Remaining(), s.questionDeck.DiscardCount()
}
