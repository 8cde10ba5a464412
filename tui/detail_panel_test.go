// ABOUTME: Tests for DetailPanelModel, the focused-card panel of the board editor.
// ABOUTME: Covers the empty placeholder, card fields, and glamour rendering of descriptions.
package tui

import (
	"strings"
	"testing"

	"github.com/2389-research/progress/board"
)

func TestDetailPanelNoCard(t *testing.T) {
	m := NewDetailPanelModel()
	if view := m.View(nil); !strings.Contains(view, "No card selected") {
		t.Errorf("View(nil) = %q, want placeholder", view)
	}
}

func TestDetailPanelShowsCardFields(t *testing.T) {
	l := board.NewCardList("Doing")
	c := board.NewCardWithContent("Ship it", "", []string{"urgent", "ops"})
	if err := l.AddCard(c); err != nil {
		t.Fatalf("AddCard: %v", err)
	}

	m := NewDetailPanelModel()
	m.SetSize(60, 20)
	view := m.View(c)
	for _, want := range []string{"Ship it", "Doing", "urgent, ops", c.ID().String()} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestDetailPanelRendersDescriptionMarkdown(t *testing.T) {
	c := board.NewCardWithContent("Docs", "# Heading\n\nSome **bold** text.", nil)

	m := NewDetailPanelModel()
	m.SetSize(60, 20)
	view := m.View(c)
	if !strings.Contains(view, "Heading") || !strings.Contains(view, "bold") {
		t.Errorf("description not rendered:\n%s", view)
	}
}
