package game

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/hmtavares/dod-trainer/internal/deck"
	"github.com/hmtavares/dod-trainer/internal/gameid"
	"github.com/hmtavares/dod-trainer/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, players int, seed int64) *Session {
	t.Helper()
	s, err := NewSession(players, WithRand(randutil.New(seed)), WithClock(quartz.NewMock(t)))
	require.NoError(t, err)
	return s
}

func TestDealArithmetic(t *testing.T) {
	t.Parallel()
	for n := MinPlayers; n <= MaxPlayers; n++ {
		exposed := 1
		if n == 5 {
			exposed = 0
		}
		assert.Equal(t, deck.Size, EvidenceCards+n*CardsPerPlayer(n)+exposed, "%d players", n)
	}
	assert.Zero(t, CardsPerPlayer(2))
	assert.Zero(t, CardsPerPlayer(7))
}

func TestNewSessionRejectsPlayerCount(t *testing.T) {
	t.Parallel()
	for _, n := range []int{-1, 0, 1, 2, 7, 10} {
		_, err := NewSession(n)
		assert.ErrorIs(t, err, ErrInvalidPlayerCount, "%d players", n)
	}
}

func TestNewSessionDealsEveryCardOnce(t *testing.T) {
	t.Parallel()
	for n := MinPlayers; n <= MaxPlayers; n++ {
		for seed := int64(1); seed <= 5; seed++ {
			s := newTestSession(t, n, seed)

			require.Len(t, s.Hands(), n)
			seen := make(map[deck.Card]bool)
			for _, c := range s.Evidence() {
				seen[c] = true
			}
			for i, h := range s.Hands() {
				assert.Equal(t, i+1, h.Player())
				assert.Equal(t, CardsPerPlayer(n), h.Size())
				for _, c := range h.Cards() {
					assert.False(t, seen[c], "card %s dealt twice", c)
					seen[c] = true
				}
			}
			if c, ok := s.Exposed(); ok {
				assert.False(t, seen[c])
				seen[c] = true
			}
			assert.Len(t, seen, deck.Size, "%d players seed %d", n, seed)
		}
	}
}

func TestFourPlayerSession(t *testing.T) {
	t.Parallel()
	s := newTestSession(t, 4, 42)

	assert.Equal(t, 4, s.NumPlayers())
	assert.Len(t, s.Evidence(), 2)
	for _, h := range s.Hands() {
		assert.Equal(t, 6, h.Size())
	}
	_, ok := s.Exposed()
	assert.True(t, ok, "4 player game exposes the leftover card")
	assert.Equal(t, s.Hands()[0], s.Human())
}

func TestFivePlayerSession(t *testing.T) {
	t.Parallel()
	s := newTestSession(t, 5, 42)

	_, ok := s.Exposed()
	assert.False(t, ok, "5 player game uses every card")

	total := len(s.Evidence())
	for _, h := range s.Hands() {
		assert.Equal(t, 5, h.Size())
		total += h.Size()
	}
	assert.Equal(t, deck.Size, total)
}

func TestSessionIsReproducible(t *testing.T) {
	t.Parallel()
	a := newTestSession(t, 3, 99)
	b := newTestSession(t, 3, 99)

	assert.Equal(t, a.Evidence(), b.Evidence())
	for i := range a.Hands() {
		assert.Equal(t, a.Hands()[i].Cards(), b.Hands()[i].Cards())
		assert.Equal(t, a.Hands()[i].Least(), b.Hands()[i].Least())
	}
}

func TestSessionID(t *testing.T) {
	t.Parallel()
	s := newTestSession(t, 3, 1)
	assert.NoError(t, gameid.Validate(s.ID()))

	named, err := NewSession(3, WithID("table-1"))
	require.NoError(t, err)
	assert.Equal(t, "table-1", named.ID())
}

func TestCountSuitValidatesPlayer(t *testing.T) {
	t.Parallel()
	for n := MinPlayers; n <= MaxPlayers; n++ {
		s := newTestSession(t, n, int64(n))

		_, err := s.CountSuit(0, 1, 9, AllSuits)
		assert.ErrorIs(t, err, ErrInvalidPlayer)
		_, err = s.CountSuit(n+1, 1, 9, AllSuits)
		assert.ErrorIs(t, err, ErrInvalidPlayer)

		for p := 1; p <= n; p++ {
			got, err := s.CountSuit(p, 1, 9, AllSuits)
			require.NoError(t, err)
			assert.Equal(t, CardsPerPlayer(n), got)
		}
	}
}

func TestCountSuitPropagatesHandErrors(t *testing.T) {
	t.Parallel()
	s := newTestSession(t, 3, 1)
	_, err := s.CountSuit(2, 0, 4, AllSuits)
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.True(t, IsRecoverable(err))
}

func TestQuestionCycle(t *testing.T) {
	t.Parallel()
	s := newTestSession(t, 4, 3)

	assert.Empty(t, s.QuestionCards())
	first, err := s.DrawQuestions()
	require.NoError(t, err)
	require.Len(t, first, QuestionCards)
	remaining, discards := s.QuestionDeckState()
	assert.Equal(t, 2*deck.Size-QuestionCards, remaining)
	assert.Zero(t, discards)

	s.DiscardQuestions()
	assert.Empty(t, s.QuestionCards())
	_, discards = s.QuestionDeckState()
	assert.Equal(t, QuestionCards, discards)

	s.DiscardQuestions()
	_, discards = s.QuestionDeckState()
	assert.Equal(t, QuestionCards, discards, "discarding twice is a no-op")
}

func TestQuestionDeckNeverRunsDry(t *testing.T) {
	t.Parallel()
	s := newTestSession(t, 6, 12)

	// 54 cards go round many times when each set is discarded
	for i := range 100 {
		cards, err := s.DrawQuestions()
		require.NoError(t, err, "draw %d", i)
		require.Len(t, cards, QuestionCards)
		s.DiscardQuestions()

		remaining, discards := s.QuestionDeckState()
		require.Equal(t, 2*deck.Size, remaining+discards)
	}
}

func TestAsk(t *testing.T) {
	t.Parallel()
	clock := quartz.NewMock(t)
	s, err := NewSession(3, WithRand(randutil.New(4)), WithClock(clock))
	require.NoError(t, err)
	require.Equal(t, clock.Now(), s.StartedAt())

	shown, err := s.DrawQuestions()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	clock.Advance(time.Minute).MustWait(ctx)

	q := Query{Player: 2, Start: 7, End: 1, Suit: OnlySuit(deck.Hearts)}
	want, err := s.Hands()[1].CountRange(7, 1, OnlySuit(deck.Hearts))
	require.NoError(t, err)

	a, err := s.Ask(q)
	require.NoError(t, err)
	assert.Equal(t, 1, a.Seq)
	assert.Equal(t, want, a.Count)
	assert.Equal(t, shown, a.Questions)
	assert.Equal(t, s.StartedAt().Add(time.Minute), a.AskedAt)
	assert.Len(t, s.QuestionCards(), QuestionCards)
	_, discards := s.QuestionDeckState()
	assert.Equal(t, QuestionCards, discards)

	require.Len(t, s.Questions(), 1)
	assert.Equal(t, a, s.Questions()[0])
}

func TestAskInvalidLeavesSessionUnchanged(t *testing.T) {
	t.Parallel()
	s := newTestSession(t, 3, 5)
	shown, err := s.DrawQuestions()
	require.NoError(t, err)

	for _, q := range []Query{
		{Player: 4, Start: 1, End: 2, Suit: AllSuits},
		{Player: 1, Start: 0, End: 2, Suit: AllSuits},
		{Player: 1, Start: 1, End: 2, Suit: OnlySuit(deck.Suit(5))},
	} {
		_, err := s.Ask(q)
		require.Error(t, err)
		assert.True(t, IsRecoverable(err), "%v", err)
	}

	assert.Empty(t, s.Questions())
	assert.Equal(t, shown, s.QuestionCards())
}

func TestAnswerString(t *testing.T) {
	t.Parallel()
	a := Answer{Query: Query{Player: 2, Start: 7, End: 1, Suit: OnlySuit(deck.Diamonds)}, Count: 3}
	assert.Equal(t, "Ask: Player 2 | 7-1:D / Answer: 3", a.String())

	a.Query.Suit = AllSuits
	assert.Equal(t, "Ask: Player 2 | 7-1:* / Answer: 3", a.String())
}

func TestIsRecoverable(t *testing.T) {
	t.Parallel()
	assert.True(t, IsRecoverable(ErrInvalidPlayer))
	assert.True(t, IsRecoverable(ErrInvalidSuit))
	assert.False(t, IsRecoverable(ErrDealConsistency))
	assert.False(t, IsRecoverable(ErrEmptyDeck))
	assert.False(t, IsRecoverable(nil))
}
