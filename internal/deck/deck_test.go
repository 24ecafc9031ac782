package deck

import (
	"strings"
	"testing"

	"github.com/hmtavares/dod-trainer/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeckHoldsEveryCardOnce(t *testing.T) {
	t.Parallel()
	d := New("player", randutil.New(1), nil)
	require.Equal(t, Size, d.Remaining())

	seen := make(map[Card]int)
	for range Size {
		c, err := d.DrawOne()
		require.NoError(t, err)
		seen[c]++
	}

	assert.Len(t, seen, Size)
	for _, c := range Canonical() {
		assert.Equal(t, 1, seen[c], "card %s", c)
	}

	_, err := d.DrawOne()
	assert.ErrorIs(t, err, ErrEmptyDeck)
}

func TestShuffleIsDeterministicPerSeed(t *testing.T) {
	t.Parallel()
	a := New("a", randutil.New(42), nil)
	b := New("b", randutil.New(42), nil)
	c := New("c", randutil.New(43), nil)

	assert.Equal(t, a.Cards(), b.Cards())
	assert.NotEqual(t, a.Cards(), c.Cards())
	assert.NotEqual(t, Canonical(), a.Cards(), "deck should be shuffled")
}

func TestDrawReshufflesDiscards(t *testing.T) {
	t.Parallel()
	d := New("question", randutil.New(7), nil)

	all, err := d.Draw(Size)
	require.NoError(t, err)
	require.Equal(t, 0, d.Remaining())

	d.Discard(all[:5]...)
	require.Equal(t, 5, d.DiscardCount())

	drawn, err := d.Draw(3)
	require.NoError(t, err)
	assert.Len(t, drawn, 3)
	assert.Equal(t, 0, d.DiscardCount(), "discards move into the deck")
	assert.Equal(t, 2, d.Remaining())
	for _, c := range drawn {
		assert.Contains(t, all[:5], c)
	}
}

func TestDrawReshufflesMidDraw(t *testing.T) {
	t.Parallel()
	d := New("question", randutil.New(9), nil)

	all, err := d.Draw(Size - 1)
	require.NoError(t, err)
	d.Discard(all[:2]...)

	drawn, err := d.Draw(3)
	require.NoError(t, err)
	assert.Len(t, drawn, 3)
	assert.True(t, d.IsEmpty())
}

func TestDrawEmptyRestoresDeck(t *testing.T) {
	t.Parallel()
	d := New("player", randutil.New(3), nil)
	_, err := d.Draw(Size - 2)
	require.NoError(t, err)
	before := d.Cards()

	_, err = d.Draw(3)
	require.ErrorIs(t, err, ErrEmptyDeck)
	assert.Equal(t, before, d.Cards(), "failed draw leaves the deck unchanged")
}

func TestCombine(t *testing.T) {
	t.Parallel()
	q := New("question", randutil.New(1), nil)
	other := New("", randutil.New(2), nil)

	require.NoError(t, q.Combine(other))
	assert.Equal(t, 2*Size, q.Remaining())
	assert.Equal(t, Size, other.Remaining(), "combined deck is not drained")

	counts := make(map[Card]int)
	for _, c := range q.Cards() {
		counts[c]++
	}
	for _, c := range Canonical() {
		assert.Equal(t, 2, counts[c], "card %s", c)
	}

	assert.ErrorIs(t, q.Combine(nil), ErrNotADeck)
}

func TestDeckString(t *testing.T) {
	t.Parallel()
	d := New("player", randutil.New(1), nil)
	lines := strings.Split(d.String(), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Len(t, strings.Split(line, ", "), NumRanks)
	}
}
