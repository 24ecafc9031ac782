package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hmtavares/dod-trainer/internal/deck"
)

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true)

	SectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	QuestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	RedCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	DarkCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// formatCards formats cards with colors
func formatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return "[]"
	}

	formatted := make([]string, 0, len(cards))
	for _, card := range cards {
		if card.IsRed() {
			formatted = append(formatted, RedCardStyle.Render(card.String()))
		} else {
			formatted = append(formatted, DarkCardStyle.Render(card.String()))
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}
