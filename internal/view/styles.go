package view

import "github.com/charmbracelet/lipgloss"

// MinCardWidth is the narrowest card rendered, borders included.
const MinCardWidth = 24

// Card width as a percentage of the terminal width, below and at-or-above
// the breakpoint.
const (
	narrowPercent = 85
	widePercent   = 65
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#101019", Dark: "#e3e3ed"})

	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#101019", Dark: "#e3e3ed"})

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"})

	mutedText = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
)

// FocusedCard returns the card style for the card under the cursor.
func FocusedCard() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "#545284", Dark: "#8d8ac9"}).
		Padding(0, 1)
}

// UnfocusedCard returns the card style for every other card.
func UnfocusedCard() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "240", Dark: "240"}).
		Padding(0, 1)
}

// CardWidth returns the card width for a terminal totalWidth columns wide.
// Below breakpoint cards take 85% of the width, otherwise 65%, never less
// than MinCardWidth and never more than totalWidth.
func CardWidth(totalWidth, breakpoint int) int {
	if totalWidth <= 0 {
		return 0
	}
	pct := widePercent
	if totalWidth < breakpoint {
		pct = narrowPercent
	}
	w := totalWidth * pct / 100
	if w < MinCardWidth {
		w = MinCardWidth
	}
	if w > totalWidth {
		w = totalWidth
	}
	return w
}
