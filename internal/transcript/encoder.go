package transcript

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/hmtavares/dod-trainer/internal/deck"
	"github.com/hmtavares/dod-trainer/internal/fileutil"
	"github.com/hmtavares/dod-trainer/internal/game"
)

// Meta carries details the session itself does not know
type Meta struct {
	Seed     int64
	Revealed bool
	SavedAt  time.Time
}

// Build captures the current state of a session
func Build(s *game.Session, meta Meta) *Transcript {
	t := &Transcript{
		Session: s.ID(),
		Players: s.NumPlayers(),
		Seed:    meta.Seed,
		Started: s.StartedAt(),
		Saved:   meta.SavedAt,
		Hand:    cardStrings(s.Human().Cards()),
	}

	if c, ok := s.Exposed(); ok {
		t.Exposed = c.String()
	}
	for _, h := range s.Hands() {
		t.LeastSuits = append(t.LeastSuits, h.Least().String())
	}

	for _, a := range s.Questions() {
		t.Questions = append(t.Questions, Question{
			Seq:     a.Seq,
			Player:  a.Query.Player,
			Start:   int(a.Query.Start),
			End:     int(a.Query.End),
			Suit:    a.Query.Suit.String(),
			Count:   a.Count,
			Shown:   cardStrings(a.Questions),
			AskedAt: a.AskedAt,
		})
	}

	if meta.Revealed {
		r := &Reveal{Evidence: cardStrings(s.Evidence())}
		for _, h := range s.Hands() {
			r.Hands = append(r.Hands, cardStrings(h.Cards()))
		}
		t.Reveal = r
	}

	return t
}

func cardStrings(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

// Encode writes the transcript to the provided writer in TOML format.
func Encode(w io.Writer, t *Transcript) error {
	if t == nil {
		return fmt.Errorf("transcript: transcript is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(t)
}

// Decode reads a transcript written by Encode
func Decode(r io.Reader) (*Transcript, error) {
	var t Transcript
	if _, err := toml.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("transcript: %w", err)
	}
	return &t, nil
}

// FileName returns the default transcript file name for a session
func FileName(t *Transcript) string {
	return fmt.Sprintf("dod_%s_%s.toml", t.Started.Format("20060102_150405"), t.Session)
}

// Save writes the transcript atomically. An empty path means FileName(t)
// inside dir. It returns the path written.
func Save(t *Transcript, dir, path string) (string, error) {
	if path == "" {
		path = filepath.Join(dir, FileName(t))
	}
	if d := filepath.Dir(path); d != "." {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return "", fmt.Errorf("transcript: %w", err)
		}
	}

	err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return Encode(w, t)
	})
	if err != nil {
		return "", fmt.Errorf("transcript: %w", err)
	}
	return path, nil
}
