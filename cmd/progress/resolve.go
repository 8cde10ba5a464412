// ABOUTME: Resolves command-line references to boards, lists and cards.
// ABOUTME: A board is a file path or library ULID; lists and cards match by ULID first, then by name.
package main

import (
	"fmt"
	"os"

	"github.com/2389-research/progress/board"
	"github.com/2389-research/progress/store"
	"github.com/oklog/ulid/v2"
)

// openBoard loads ref as a board file when such a file exists, otherwise as
// the ULID of a library board.
func (c *cli) openBoard(ref string) (*board.Board, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return store.Load(ref)
	}
	id, err := ulid.ParseStrict(ref)
	if err != nil {
		return nil, fmt.Errorf("board %q: no such file and not a board ID", ref)
	}
	mgr, err := c.manager()
	if err != nil {
		return nil, err
	}
	return mgr.OpenBoard(id)
}

// saveBoard writes b back to its file and refreshes the library index.
func (c *cli) saveBoard(b *board.Board) error {
	mgr, err := c.manager()
	if err != nil {
		return err
	}
	return mgr.SaveBoard(b)
}

// findList returns the list whose ULID or name is ref.
func findList(b *board.Board, ref string) (*board.CardList, error) {
	if id, err := ulid.ParseStrict(ref); err == nil {
		if l, ok := b.FindCardList(id); ok {
			return l, nil
		}
	}
	for _, l := range b.CardLists() {
		if l.Name() == ref {
			return l, nil
		}
	}
	return nil, fmt.Errorf("list %q: %w", ref, board.ErrNotFound)
}

// findCard returns the card whose ULID or name is ref, with its owning list.
// Name matches scan lists left to right and cards top to bottom.
func findCard(b *board.Board, ref string) (*board.Card, *board.CardList, error) {
	if id, err := ulid.ParseStrict(ref); err == nil {
		if card, l, ok := b.FindCard(id); ok {
			return card, l, nil
		}
	}
	for _, l := range b.CardLists() {
		for _, card := range l.Cards() {
			if card.Name() == ref {
				return card, l, nil
			}
		}
	}
	return nil, nil, fmt.Errorf("card %q: %w", ref, board.ErrNotFound)
}

// findCardIn returns the card in l whose ULID or name is ref.
func findCardIn(l *board.CardList, ref string) (*board.Card, error) {
	if id, err := ulid.ParseStrict(ref); err == nil {
		if card, ok := l.Card(id); ok {
			return card, nil
		}
	}
	for _, card := range l.Cards() {
		if card.Name() == ref {
			return card, nil
		}
	}
	return nil, fmt.Errorf("card %q in list %q: %w", ref, l.Name(), board.ErrNotFound)
}
