// ABOUTME: Item is the named-entity capability shared by cards and card lists.
// ABOUTME: entity carries the identity, name and destroyed flag both kinds embed.
package board

import (
	"sync"

	"github.com/oklog/ulid/v2"
)

// ItemKind tags which variant of Item a value is.
type ItemKind string

const (
	KindCard     ItemKind = "card"
	KindCardList ItemKind = "cardlist"
)

// Item is a named, uniquely identified entity. Two items with equal names are
// still distinct; identity is the entity itself, surfaced as its ULID.
type Item interface {
	ID() ulid.ULID
	Kind() ItemKind
	Name() string
	SetName(name string)
	// Destroyed reports whether the entity was removed from its owner.
	// A destroyed entity can never be placed in a container again.
	Destroyed() bool
}

// entity is the shared state behind every Item. mu is a leaf lock: it is
// never held while acquiring a container lock.
type entity struct {
	id ulid.ULID

	mu        sync.RWMutex
	name      string
	destroyed bool
}

func (e *entity) init(id ulid.ULID, name string) {
	e.id = orFresh(id)
	e.name = name
}

// ID returns the entity's stable identifier.
func (e *entity) ID() ulid.ULID {
	return e.id
}

// Name returns the current name.
func (e *entity) Name() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.name
}

// SetName replaces the name.
func (e *entity) SetName(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.name = name
}

// Destroyed reports whether the entity has been removed from its owner.
func (e *entity) Destroyed() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.destroyed
}
