// ABOUTME: Bubble Tea sub-model rendering a board's lists side by side with the focused card highlighted.
// ABOUTME: Reads the board on every View so it always reflects the latest mutation.
package tui

import (
	"fmt"
	"strings"

	"github.com/2389-research/progress/board"
	"github.com/charmbracelet/lipgloss"
	"github.com/oklog/ulid/v2"
)

// minColumnWidth keeps narrow terminals readable; columns overflow instead.
const minColumnWidth = 18

// BoardPanelModel displays every list of a board as a column.
type BoardPanelModel struct {
	board *board.Board
	width int
}

// NewBoardPanelModel creates a panel over b.
func NewBoardPanelModel(b *board.Board) BoardPanelModel {
	return BoardPanelModel{board: b}
}

// SetWidth sets the available width for rendering.
func (m *BoardPanelModel) SetWidth(w int) {
	m.width = w
}

// View renders the columns. focusList and focusCard are handles; either may
// be zero or stale, in which case nothing is highlighted.
func (m BoardPanelModel) View(focusList, focusCard ulid.ULID) string {
	lists := m.board.CardLists()
	if len(lists) == 0 {
		return BorderStyle.Render(EmptyStyle.Render("No lists. Press A to add one."))
	}

	colWidth := minColumnWidth
	if m.width > 0 {
		// Each column spends two cells on its border.
		if w := m.width/len(lists) - 2; w > colWidth {
			colWidth = w
		}
	}

	columns := make([]string, 0, len(lists))
	for _, l := range lists {
		columns = append(columns, renderColumn(l, colWidth, l.ID() == focusList, focusCard))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func renderColumn(l *board.CardList, width int, focused bool, focusCard ulid.ULID) string {
	var b strings.Builder

	title := fmt.Sprintf("%s (%d)", l.Name(), l.Len())
	b.WriteString(TitleStyle.Render(truncate(title, width)))

	cards := l.Cards()
	if len(cards) == 0 {
		b.WriteString("\n")
		b.WriteString(EmptyStyle.Render("empty"))
	}
	for _, c := range cards {
		b.WriteString("\n")
		line := truncate(c.Name(), width-2)
		if focused && c.ID() == focusCard {
			b.WriteString(SelectedCardStyle.Render("> " + line))
		} else {
			b.WriteString(CardStyle.Render("  " + line))
		}
		if labels := c.Labels(); len(labels) > 0 {
			b.WriteString("\n")
			b.WriteString(CardLabelStyle.Render(truncate("  #"+strings.Join(labels, " #"), width)))
		}
	}

	style := BorderStyle
	if focused {
		style = FocusedBorderStyle
	}
	return style.Width(width).Render(b.String())
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if n <= 3 || len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
