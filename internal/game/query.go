package game

import (
	"fmt"
	"time"

	"github.com/hmtavares/dod-trainer/internal/deck"
)

// Query asks how many cards a player holds in a rank range
type Query struct {
	Player int
	Start  deck.Rank
	End    deck.Rank
	Suit   SuitFilter
}

// String renders the query as "Player 2 | 7-1:D"
func (q Query) String() string {
	return fmt.Sprintf("Player %d | %d-%d:%s", q.Player, q.Start, q.End, q.Suit)
}

// Answer is a recorded, answered query
type Answer struct {
	Seq       int
	Query     Query
	Count     int
	Questions []deck.Card // question cards showing when the query was asked
	AskedAt   time.Time
}

// String renders the answer the way the question log shows it
func (a Answer) String() string {
	return fmt.Sprintf("Ask: %s / Answer: %d", a.Query, a.Count)
}
