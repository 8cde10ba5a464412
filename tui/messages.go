// ABOUTME: Bubble Tea message types and commands used by the board editor.
// ABOUTME: Saving runs as a tea.Cmd so file I/O stays off the Update path.
package tui

import (
	"github.com/2389-research/progress/board"
	tea "github.com/charmbracelet/bubbletea"
)

// SaveFunc persists a board. The editor does not know where or how.
type SaveFunc func(*board.Board) error

// SavedMsg reports the outcome of a save started with the s key. Gen is the
// editor's edit generation when the save began.
type SavedMsg struct {
	Path string
	Gen  uint64
	Err  error
}

// SaveCmd runs save against b and reports the result as a SavedMsg
// stamped with gen.
func SaveCmd(save SaveFunc, b *board.Board, gen uint64) tea.Cmd {
	return func() tea.Msg {
		if save == nil {
			return SavedMsg{Gen: gen, Err: errNoSaver}
		}
		err := save(b)
		return SavedMsg{Path: b.Path(), Gen: gen, Err: err}
	}
}
