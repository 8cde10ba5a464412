// ABOUTME: Tests for StatusBarModel which renders the board editor's single-line status bar.
// ABOUTME: Covers construction, counts, dirty marker, message/error precedence, and View() rendering.
package tui

import (
	"errors"
	"strings"
	"testing"
)

func TestStatusBarNewStatusBarModel(t *testing.T) {
	m := NewStatusBarModel("Roadmap")
	if m.boardName != "Roadmap" {
		t.Errorf("boardName = %q, want %q", m.boardName, "Roadmap")
	}
	if m.dirty || m.err != nil || m.message != "" {
		t.Errorf("new status bar not clean: %+v", m)
	}
}

func TestStatusBarViewContainsCounts(t *testing.T) {
	tests := []struct {
		name  string
		lists int
		cards int
		want  string
	}{
		{name: "empty", lists: 0, cards: 0, want: "0 lists | 0 cards"},
		{name: "some", lists: 3, cards: 7, want: "3 lists | 7 cards"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewStatusBarModel("test")
			m.SetCounts(tt.lists, tt.cards)
			m.SetWidth(120)
			if view := m.View(); !strings.Contains(view, tt.want) {
				t.Errorf("View() does not contain %q, got: %q", tt.want, view)
			}
		})
	}
}

func TestStatusBarDirtyMarker(t *testing.T) {
	m := NewStatusBarModel("test")
	m.SetWidth(120)
	if strings.Contains(m.View(), "modified") {
		t.Error("clean board should not show modified")
	}
	m.SetDirty(true)
	if !strings.Contains(m.View(), "modified") {
		t.Error("dirty board should show modified")
	}
}

func TestStatusBarMessageAndErrorReplaceEachOther(t *testing.T) {
	m := NewStatusBarModel("test")
	m.SetWidth(120)

	m.SetMessage("saved")
	if !strings.Contains(m.View(), "saved") {
		t.Errorf("View() missing message: %q", m.View())
	}

	m.SetError(errors.New("disk full"))
	view := m.View()
	if !strings.Contains(view, "error: disk full") {
		t.Errorf("View() missing error: %q", view)
	}
	if strings.Contains(view, "saved") {
		t.Errorf("error should replace message: %q", view)
	}

	m.SetMessage("ok again")
	if m.Err() != nil {
		t.Errorf("SetMessage should clear the error, got %v", m.Err())
	}
}
