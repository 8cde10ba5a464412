// ABOUTME: PromptModel is the single-line text dialog used for naming cards, lists and backgrounds.
// ABOUTME: Wraps a bubbles textinput; the caller decides what a submitted value means via PromptKind.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PromptKind says what a submitted prompt value is for.
type PromptKind int

const (
	PromptNone PromptKind = iota
	PromptNewCard
	PromptNewList
	PromptRenameCard
	PromptRenameList
	PromptBackground
)

// String returns the dialog title for the kind.
func (k PromptKind) String() string {
	switch k {
	case PromptNewCard:
		return "New card"
	case PromptNewList:
		return "New list"
	case PromptRenameCard:
		return "Rename card"
	case PromptRenameList:
		return "Rename list"
	case PromptBackground:
		return "Background (colour #rrggbb | file PATH)"
	default:
		return ""
	}
}

// PromptModel renders a text input dialog. It is inactive until Open is
// called and goes back to inactive on Submit or Cancel.
type PromptModel struct {
	textInput textinput.Model
	kind      PromptKind
}

// NewPromptModel creates an inactive prompt.
func NewPromptModel() PromptModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 256

	return PromptModel{textInput: ti}
}

// Open activates the dialog for kind, pre-filled with initial.
func (m *PromptModel) Open(kind PromptKind, initial string) {
	m.kind = kind
	m.textInput.SetValue(initial)
	m.textInput.CursorEnd()
	m.textInput.Focus()
}

// Submit returns the kind and the trimmed value, then closes the dialog.
func (m *PromptModel) Submit() (PromptKind, string) {
	kind, value := m.kind, strings.TrimSpace(m.textInput.Value())
	m.Cancel()
	return kind, value
}

// Cancel closes the dialog without a result.
func (m *PromptModel) Cancel() {
	m.kind = PromptNone
	m.textInput.Reset()
	m.textInput.Blur()
}

// IsActive returns whether the dialog is visible.
func (m *PromptModel) IsActive() bool {
	return m.kind != PromptNone
}

// Kind returns what the open dialog is collecting.
func (m *PromptModel) Kind() PromptKind {
	return m.kind
}

// Update forwards key events to the embedded textinput.
func (m PromptModel) Update(msg tea.Msg) PromptModel {
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	_ = cmd // textinput cmds (cursor blink) are ignored in sub-model updates
	return m
}

// View renders the dialog, or an empty string when inactive.
func (m PromptModel) View() string {
	if !m.IsActive() {
		return ""
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("[?] %s\n", m.kind))
	b.WriteString(m.textInput.View())
	b.WriteString("\n")
	b.WriteString(EmptyStyle.Render("enter to confirm, esc to cancel"))

	return PromptStyle.Render(b.String())
}
