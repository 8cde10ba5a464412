// ABOUTME: Board is the root of the tree: an ordered, owning container of card lists.
// ABOUTME: Also carries the board name, persistence path and validated background descriptor.
package board

import (
	"sync"

	"github.com/oklog/ulid/v2"
)

// Board owns an ordered sequence of card lists. Removing a list destroys it
// together with all of its cards.
type Board struct {
	id ulid.ULID

	mu         sync.RWMutex
	name       string
	path       string
	background Background
	lists      *Sequence[*CardList]
}

// NewBoard creates an empty board with the default background.
func NewBoard(name string) *Board {
	return RestoreBoard(ulid.ULID{}, name)
}

// RestoreBoard recreates a board with a known ULID. A zero id gets a fresh one.
func RestoreBoard(id ulid.ULID, name string) *Board {
	return &Board{
		id:         orFresh(id),
		name:       name,
		background: DefaultBackground(),
		lists:      NewSequence[*CardList](),
	}
}

// ID returns the board's stable identifier.
func (b *Board) ID() ulid.ULID {
	return b.id
}

// Name returns the board name.
func (b *Board) Name() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.name
}

// SetName replaces the board name.
func (b *Board) SetName(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.name = name
}

// Path returns the file the board was last loaded from or saved to.
func (b *Board) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

// SetPath records the board's persistence path.
func (b *Board) SetPath(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.path = path
}

// SetBackground validates and stores a new background. On error the previous
// background is kept.
func (b *Board) SetBackground(kind BackgroundKind, value string) error {
	if err := ValidateBackground(kind, value); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.background = Background{Kind: kind, Value: value}
	return nil
}

// Background returns the current background descriptor.
func (b *Board) Background() Background {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.background
}

// BackgroundKind returns the current background kind.
func (b *Board) BackgroundKind() BackgroundKind {
	return b.Background().Kind
}

// BackgroundValue returns the current background value.
func (b *Board) BackgroundValue() string {
	return b.Background().Value
}

// AddCardList appends list and takes ownership of it.
func (b *Board) AddCardList(list *CardList) error {
	const op = "add_cardlist"
	if list == nil {
		return membershipErr(op, KindCardList, nil, ErrNotFound)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, taken := b.lists.Get(list.ID()); taken {
		return membershipErr(op, KindCardList, list, ErrDuplicateMember)
	}
	if err := list.claim(b); err != nil {
		return membershipErr(op, KindCardList, list, err)
	}
	if err := b.lists.Append(list); err != nil {
		list.release()
		return membershipErr(op, KindCardList, list, err)
	}
	return nil
}

// NewCardList creates a list named name and appends it.
func (b *Board) NewCardList(name string) (*CardList, error) {
	l := NewCardList(name)
	if err := b.AddCardList(l); err != nil {
		return nil, err
	}
	return l, nil
}

// RemoveCardList removes list from the board and destroys it along with
// every card it holds.
func (b *Board) RemoveCardList(list *CardList) error {
	const op = "remove_cardlist"
	if list == nil {
		return membershipErr(op, KindCardList, nil, ErrNotFound)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.lists.Remove(list); err != nil {
		return membershipErr(op, KindCardList, list, err)
	}
	list.destroy()
	return nil
}

// ReorderCardList moves moved to immediately after anchor; a nil anchor moves
// it to the front. Fails with ErrNotFound, order untouched, if either is absent.
func (b *Board) ReorderCardList(moved, anchor *CardList) error {
	const op = "reorder_cardlist"
	if moved == nil {
		return membershipErr(op, KindCardList, nil, ErrNotFound)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.lists.Contains(moved) {
		return membershipErr(op, KindCardList, moved, ErrNotFound)
	}
	if anchor != nil && !b.lists.Contains(anchor) {
		return membershipErr(op, KindCardList, anchor, ErrNotFound)
	}
	return b.lists.MoveAfter(moved, anchor)
}

// CardLists returns the lists in order. The returned slice is a snapshot.
func (b *Board) CardLists() []*CardList {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lists.Values()
}

// Snapshot is a consistent view of a board taken under its lock.
type Snapshot struct {
	Name       string
	Background Background
	Lists      []*CardList
}

// Walk calls fn with a snapshot while holding the board read lock, so no
// MoveCard can run until fn returns. fn may read the lists and their cards
// but must not call back into b.
func (b *Board) Walk(fn func(Snapshot)) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	fn(Snapshot{Name: b.name, Background: b.background, Lists: b.lists.Values()})
}

// Len returns the number of lists.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lists.Len()
}

// IndexOf returns the position of list, or -1.
func (b *Board) IndexOf(list *CardList) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lists.IndexOf(list)
}

// FindCardList resolves a list handle. ok is false once the list is gone.
func (b *Board) FindCardList(id ulid.ULID) (*CardList, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lists.Get(id)
}

// FindCard resolves a card handle to the card and the list holding it.
func (b *Board) FindCard(id ulid.ULID) (*Card, *CardList, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, l := range b.lists.Values() {
		if c, ok := l.Card(id); ok {
			return c, l, true
		}
	}
	return nil, nil, false
}

// CardCount returns the number of cards across all lists.
func (b *Board) CardCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for _, l := range b.lists.Values() {
		n += l.Len()
	}
	return n
}
