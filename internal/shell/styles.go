package shell

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hmtavares/dod-trainer/internal/deck"
	"github.com/muesli/termenv"
)

// Styles contains styling for shell output
type Styles struct {
	Title    lipgloss.Style
	Prompt   lipgloss.Style
	Info     lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Answer   lipgloss.Style
	RedCard  lipgloss.Style
	DarkCard lipgloss.Style
	Player   lipgloss.Style
}

// NewStyles builds styles rendered for w. With noColor set, or when w is
// not a terminal, output is plain text.
func NewStyles(w io.Writer, noColor bool) *Styles {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Styles{
		Title: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		Prompt:   r.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		Info:     r.NewStyle().Foreground(lipgloss.Color("#626262")),
		Success:  r.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Error:    r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Warning:  r.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true),
		Answer:   r.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		RedCard:  r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		DarkCard: r.NewStyle().Foreground(lipgloss.Color("#74B9FF")).Bold(true),
		Player:   r.NewStyle().Foreground(lipgloss.Color("#74B9FF")),
	}
}

// Card renders one card coloured by suit
func (s *Styles) Card(c deck.Card) string {
	if c.IsRed() {
		return s.RedCard.Render(c.String())
	}
	return s.DarkCard.Render(c.String())
}

// Cards renders cards as "[7D, 3H]"
func (s *Styles) Cards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = s.Card(c)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
