package simulator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hmtavares/dod-trainer/internal/deck"
	"github.com/hmtavares/dod-trainer/internal/statistics"
	"gopkg.in/yaml.v3"
)

func sampleStats() *statistics.Statistics {
	stats := &statistics.Statistics{}
	stats.Add(statistics.GameResult{
		Players: 3,
		Exposed: true,
		Hands: []statistics.HandResult{
			{Player: 1, Size: 8, Least: deck.Diamonds, LeastCount: 2, TiedSuits: 1},
			{Player: 2, Size: 8, Least: deck.Spades, LeastCount: 1, TiedSuits: 1},
			{Player: 3, Size: 8, Least: deck.Spades, LeastCount: 2, TiedSuits: 2},
		},
		Answers: []int{1, 3},
	})
	return stats
}

func TestNewReport(t *testing.T) {
	r := NewReport(sampleStats(), 42)

	if r.Games != 1 || r.Hands != 3 || r.Seed != 42 {
		t.Errorf("Unexpected totals: %+v", r)
	}
	if r.SuitTally["D"] != 1 || r.SuitTally["H"] != 0 || r.SuitTally["S"] != 2 {
		t.Errorf("Unexpected suit tally: %v", r.SuitTally)
	}
	if len(r.ByPlayers) != 1 || r.ByPlayers[0].Players != 3 || r.ByPlayers[0].HandSize != 8 {
		t.Errorf("Unexpected table size breakdown: %+v", r.ByPlayers)
	}
	if r.MeanAnswer != 2 {
		t.Errorf("Expected mean answer 2, got %f", r.MeanAnswer)
	}
}

func TestReportYAML(t *testing.T) {
	r := NewReport(sampleStats(), 42)

	var buf bytes.Buffer
	if err := r.WriteYAML(&buf); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}
	if !strings.Contains(buf.String(), "least_suit:") {
		t.Errorf("YAML missing least_suit section:\n%s", buf.String())
	}

	var got Report
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got.Hands != r.Hands || got.SuitTally["S"] != 2 || len(got.ByPlayers) != 1 {
		t.Errorf("YAML did not carry the report: %+v", got)
	}
}

func TestReportText(t *testing.T) {
	var buf bytes.Buffer
	if err := NewReport(sampleStats(), 42).WriteText(&buf); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Games dealt: 1 (3 hands, seed 42)", "Least suit S: 2 hands", "3 players: 1 games", "Questions answered: 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("Text report missing %q:\n%s", want, out)
		}
	}
}
