// ABOUTME: Implements a single-line status bar for the bottom of the board editor.
// ABOUTME: Displays board name, list and card counts, unsaved marker, and the last message or error.
package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// StatusBarModel displays board status in a single line.
type StatusBarModel struct {
	boardName string
	lists     int
	cards     int
	dirty     bool
	message   string
	err       error
	width     int
}

// NewStatusBarModel creates a StatusBarModel for the named board.
func NewStatusBarModel(boardName string) StatusBarModel {
	return StatusBarModel{boardName: boardName}
}

// SetCounts updates the list and card totals.
func (m *StatusBarModel) SetCounts(lists, cards int) {
	m.lists = lists
	m.cards = cards
}

// SetBoardName updates the displayed board name.
func (m *StatusBarModel) SetBoardName(name string) {
	m.boardName = name
}

// SetDirty marks whether there are unsaved changes.
func (m *StatusBarModel) SetDirty(dirty bool) {
	m.dirty = dirty
}

// SetMessage shows an informational message and clears any error.
func (m *StatusBarModel) SetMessage(msg string) {
	m.message = msg
	m.err = nil
}

// SetError shows err until the next message or error.
func (m *StatusBarModel) SetError(err error) {
	m.err = err
	m.message = ""
}

// Err returns the error currently shown, if any.
func (m StatusBarModel) Err() error {
	return m.err
}

// Message returns the informational message currently shown.
func (m StatusBarModel) Message() string {
	return m.message
}

// SetWidth sets the bar width for rendering.
func (m *StatusBarModel) SetWidth(w int) {
	m.width = w
}

// View renders the status bar as a single styled line.
func (m StatusBarModel) View() string {
	content := fmt.Sprintf("Board: %s | %d lists | %d cards", m.boardName, m.lists, m.cards)
	if m.dirty {
		content += " | " + DirtyStyle.Render("modified")
	}
	switch {
	case m.err != nil:
		content += " | " + ErrorStyle.Render("error: "+m.err.Error())
	case m.message != "":
		content += " | " + m.message
	}

	style := StatusBarStyle.Width(m.width)

	return lipgloss.PlaceHorizontal(m.width, lipgloss.Left, style.Render(content))
}
