// ABOUTME: Defines lipgloss style variables for the board editor columns, cards, dialogs and status bar.
// ABOUTME: Provides BackgroundSwatch, which previews a board background using a contrasting foreground.
package tui

import (
	"github.com/2389-research/progress/board"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	// Column borders
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
	FocusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62"))

	// Title styling
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	// Cards
	CardStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	SelectedCardStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Bold(true)
	CardLabelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	EmptyStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	DirtyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	// Detail panel labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(10)
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	// Prompt dialog
	PromptStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 1)
)

// BackgroundSwatch renders a short sample of the board background. Colour
// backgrounds are painted with black or white text, whichever reads better;
// file backgrounds show the path.
func BackgroundSwatch(bg board.Background) string {
	hex, ok := bg.Hex()
	if !ok {
		return ValueStyle.Render("[file] " + bg.Value)
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(swatchForeground(hex))).
		Padding(0, 1).
		Render(hex)
}

// swatchForeground reports the text colour BackgroundSwatch uses over hex.
func swatchForeground(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "#000000"
	}
	if l, _, _ := c.Lab(); l < 0.5 {
		return "#ffffff"
	}
	return "#000000"
}
