// ABOUTME: Card is the leaf entity of a board, holding a name and free-form content.
// ABOUTME: Content fields are opaque to the ordering engine and carried through verbatim.
package board

import "github.com/oklog/ulid/v2"

// Card is a single card. Its owning list is tracked so that a card can never
// sit in two lists at once.
type Card struct {
	entity

	// Guarded by entity.mu.
	description string
	labels      []string
	list        *CardList
}

var _ Item = (*Card)(nil)

// NewCard creates an unowned card with a fresh ULID.
func NewCard(name string) *Card {
	return RestoreCard(ulid.ULID{}, name, "", nil)
}

// NewCardWithContent creates an unowned card with content fields set.
func NewCardWithContent(name, description string, labels []string) *Card {
	return RestoreCard(ulid.ULID{}, name, description, labels)
}

// RestoreCard recreates a card with a known ULID, as done when loading a
// saved board. A zero id gets a fresh ULID.
func RestoreCard(id ulid.ULID, name, description string, labels []string) *Card {
	c := &Card{description: description, labels: cloneStrings(labels)}
	c.init(id, name)
	return c
}

// Kind implements Item.
func (c *Card) Kind() ItemKind {
	return KindCard
}

// Description returns the card's description text.
func (c *Card) Description() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.description
}

// SetDescription replaces the description text.
func (c *Card) SetDescription(description string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.description = description
}

// Labels returns a copy of the card's labels.
func (c *Card) Labels() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneStrings(c.labels)
}

// SetLabels replaces the labels with a copy of labels.
func (c *Card) SetLabels(labels []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.labels = cloneStrings(labels)
}

// List returns the owning list, or nil for an unowned or destroyed card.
func (c *Card) List() *CardList {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.list
}

// claim makes l the owner of c. Called with l's card lock held.
func (c *Card) claim(l *CardList) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return ErrDestroyed
	}
	if c.list != nil && c.list != l {
		return ErrOwnedElsewhere
	}
	c.list = l
	return nil
}

// transfer hands ownership to l during a move.
func (c *Card) transfer(l *CardList) {
	c.mu.Lock()
	c.list = l
	c.mu.Unlock()
}

func (c *Card) destroy() {
	c.mu.Lock()
	c.list = nil
	c.destroyed = true
	c.mu.Unlock()
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
