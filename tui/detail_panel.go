// ABOUTME: Bubble Tea sub-model showing the focused card: name, list, labels and its description.
// ABOUTME: Descriptions are treated as Markdown and rendered for the terminal with glamour.
package tui

import (
	"strings"

	"github.com/2389-research/progress/board"
	"github.com/charmbracelet/glamour"
)

// DetailPanelModel displays the focused card.
type DetailPanelModel struct {
	width  int
	height int
}

// NewDetailPanelModel creates a new DetailPanelModel.
func NewDetailPanelModel() DetailPanelModel {
	return DetailPanelModel{}
}

// SetSize sets the available dimensions.
func (m *DetailPanelModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// View renders card, or a placeholder when card is nil.
func (m DetailPanelModel) View(card *board.Card) string {
	title := TitleStyle.Render("CARD")

	var content string
	if card == nil {
		content = title + "\n\n" + ValueStyle.Render("No card selected")
	} else {
		var lines []string
		lines = append(lines, title)
		lines = append(lines, row("Name:", card.Name()))
		if l := card.List(); l != nil {
			lines = append(lines, row("List:", l.Name()))
		}
		lines = append(lines, row("Labels:", strings.Join(card.Labels(), ", ")))
		lines = append(lines, row("ID:", card.ID().String()))
		if desc := strings.TrimSpace(card.Description()); desc != "" {
			lines = append(lines, "", m.renderMarkdown(desc))
		}
		content = strings.Join(lines, "\n")
	}

	style := BorderStyle
	if m.width > 0 {
		style = style.Width(m.width)
	}
	if m.height > 0 {
		style = style.Height(m.height)
	}
	return style.Render(content)
}

// renderMarkdown renders md with glamour's plain style so the output does not
// depend on the terminal. On failure the raw text is shown.
func (m DetailPanelModel) renderMarkdown(md string) string {
	wrap := m.width - 4
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

// row renders a label-value pair using the standard label and value styles.
func row(label, value string) string {
	return LabelStyle.Render(label) + ValueStyle.Render(value)
}
