// ABOUTME: CardList is an ordered, owning container of cards and itself a named Item.
// ABOUTME: Provides add, remove, reorder and snapshot views with unique membership.
package board

import (
	"sync"

	"github.com/oklog/ulid/v2"
)

// CardList owns an ordered sequence of cards.
//
// Lock order: a Board's lock, then CardList.cardsMu (ascending ULID when two
// are held), then entity locks.
type CardList struct {
	entity

	cardsMu sync.RWMutex
	cards   *Sequence[*Card]

	// Guarded by entity.mu.
	board *Board
}

var _ Item = (*CardList)(nil)

// NewCardList creates an empty, unowned list with a fresh ULID.
func NewCardList(name string) *CardList {
	return RestoreCardList(ulid.ULID{}, name)
}

// RestoreCardList recreates a list with a known ULID. A zero id gets a fresh one.
func RestoreCardList(id ulid.ULID, name string) *CardList {
	l := &CardList{cards: NewSequence[*Card]()}
	l.init(id, name)
	return l
}

// Kind implements Item.
func (l *CardList) Kind() ItemKind {
	return KindCardList
}

// Board returns the owning board, or nil.
func (l *CardList) Board() *Board {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.board
}

// AddCard appends card at the end of the list and takes ownership of it.
// It fails with ErrDuplicateMember when the card is already in this list,
// ErrOwnedElsewhere when another list owns it, and ErrDestroyed when the card
// or this list has been destroyed. On failure the list is unchanged.
func (l *CardList) AddCard(card *Card) error {
	const op = "add_card"
	if card == nil {
		return membershipErr(op, KindCard, nil, ErrNotFound)
	}

	l.cardsMu.Lock()
	defer l.cardsMu.Unlock()

	if l.Destroyed() {
		return membershipErr(op, KindCardList, l, ErrDestroyed)
	}
	if _, taken := l.cards.Get(card.ID()); taken {
		return membershipErr(op, KindCard, card, ErrDuplicateMember)
	}
	if err := card.claim(l); err != nil {
		return membershipErr(op, KindCard, card, err)
	}
	if err := l.cards.Append(card); err != nil {
		card.transfer(nil)
		return membershipErr(op, KindCard, card, err)
	}
	return nil
}

// NewCard creates a card named name and appends it.
func (l *CardList) NewCard(name string) (*Card, error) {
	c := NewCard(name)
	if err := l.AddCard(c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveCard removes card from the list and destroys it. Handles to the card
// stay readable but report Destroyed() and cannot be re-added anywhere.
func (l *CardList) RemoveCard(card *Card) error {
	const op = "remove_card"
	if card == nil {
		return membershipErr(op, KindCard, nil, ErrNotFound)
	}

	l.cardsMu.Lock()
	defer l.cardsMu.Unlock()

	if err := l.cards.Remove(card); err != nil {
		return membershipErr(op, KindCard, card, err)
	}
	card.destroy()
	return nil
}

// ReorderCard moves moved to immediately after anchor. A nil anchor moves it
// to the head of the list. Both must be members, otherwise ErrNotFound is
// returned and the order is untouched. moved == anchor is a no-op.
func (l *CardList) ReorderCard(moved, anchor *Card) error {
	const op = "reorder_card"
	if moved == nil {
		return membershipErr(op, KindCard, nil, ErrNotFound)
	}

	l.cardsMu.Lock()
	defer l.cardsMu.Unlock()

	if !l.cards.Contains(moved) {
		return membershipErr(op, KindCard, moved, ErrNotFound)
	}
	if anchor != nil && !l.cards.Contains(anchor) {
		return membershipErr(op, KindCard, anchor, ErrNotFound)
	}
	return l.cards.MoveAfter(moved, anchor)
}

// Cards returns the cards in order. The returned slice is a snapshot.
func (l *CardList) Cards() []*Card {
	l.cardsMu.RLock()
	defer l.cardsMu.RUnlock()
	return l.cards.Values()
}

// Len returns the number of cards.
func (l *CardList) Len() int {
	l.cardsMu.RLock()
	defer l.cardsMu.RUnlock()
	return l.cards.Len()
}

// Contains reports whether card is in this list.
func (l *CardList) Contains(card *Card) bool {
	l.cardsMu.RLock()
	defer l.cardsMu.RUnlock()
	return l.cards.Contains(card)
}

// IndexOf returns the position of card, or -1.
func (l *CardList) IndexOf(card *Card) int {
	l.cardsMu.RLock()
	defer l.cardsMu.RUnlock()
	return l.cards.IndexOf(card)
}

// Card looks a card up by ULID.
func (l *CardList) Card(id ulid.ULID) (*Card, bool) {
	l.cardsMu.RLock()
	defer l.cardsMu.RUnlock()
	return l.cards.Get(id)
}

// claim makes b the owner of l. Called with b's lock held.
func (l *CardList) claim(b *Board) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.destroyed {
		return ErrDestroyed
	}
	if l.board != nil && l.board != b {
		return ErrOwnedElsewhere
	}
	l.board = b
	return nil
}

func (l *CardList) release() {
	l.mu.Lock()
	l.board = nil
	l.mu.Unlock()
}

// destroy cascades destruction to every card, then to the list itself.
func (l *CardList) destroy() {
	l.cardsMu.Lock()
	for _, c := range l.cards.Clear() {
		c.destroy()
	}
	l.cardsMu.Unlock()

	l.mu.Lock()
	l.board = nil
	l.destroyed = true
	l.mu.Unlock()
}
