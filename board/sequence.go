// ABOUTME: Sequence is an insertion-ordered collection with unique membership by identity.
// ABOUTME: It backs both Board -> CardList and CardList -> Card; owners provide locking.
package board

import "github.com/oklog/ulid/v2"

// member is an entity that can live in a Sequence. In practice T is *Card or
// *CardList, so the zero value (nil) is the "before first" anchor.
type member interface {
	comparable
	ID() ulid.ULID
}

// Sequence keeps members in a user-controlled order. Membership is by
// identity: a second, distinct entity with the same ULID is also rejected so
// that lookups by handle stay unambiguous. Sequence is not safe for concurrent
// use; the owning container guards it.
type Sequence[T member] struct {
	items []T
	index map[ulid.ULID]T
}

// NewSequence creates an empty Sequence.
func NewSequence[T member]() *Sequence[T] {
	return &Sequence[T]{index: make(map[ulid.ULID]T)}
}

// Len returns the number of members.
func (s *Sequence[T]) Len() int {
	return len(s.items)
}

// Contains reports whether v itself is a member.
func (s *Sequence[T]) Contains(v T) bool {
	var zero T
	if v == zero {
		return false
	}
	got, ok := s.index[v.ID()]
	return ok && got == v
}

// Get looks a member up by its ULID.
func (s *Sequence[T]) Get(id ulid.ULID) (T, bool) {
	v, ok := s.index[id]
	return v, ok
}

// IndexOf returns the position of v, or -1 when v is not a member.
func (s *Sequence[T]) IndexOf(v T) int {
	if !s.Contains(v) {
		return -1
	}
	for i, it := range s.items {
		if it == v {
			return i
		}
	}
	return -1
}

// Values returns the members in order. The slice is a copy.
func (s *Sequence[T]) Values() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Append adds v at the end.
func (s *Sequence[T]) Append(v T) error {
	var zero T
	if v == zero {
		return ErrNotFound
	}
	if _, exists := s.index[v.ID()]; exists {
		return ErrDuplicateMember
	}
	s.items = append(s.items, v)
	s.index[v.ID()] = v
	return nil
}

// Remove deletes v, keeping the relative order of the others.
func (s *Sequence[T]) Remove(v T) error {
	i := s.IndexOf(v)
	if i < 0 {
		return ErrNotFound
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, v.ID())
	return nil
}

// MoveAfter repositions moved to immediately follow anchor. A zero anchor
// moves it to the head. moved == anchor is a successful no-op. Nothing
// changes unless both are members.
func (s *Sequence[T]) MoveAfter(moved, anchor T) error {
	var zero T
	if !s.Contains(moved) {
		return ErrNotFound
	}
	if anchor != zero && !s.Contains(anchor) {
		return ErrNotFound
	}
	if moved == anchor {
		return nil
	}

	from := s.IndexOf(moved)
	s.items = append(s.items[:from], s.items[from+1:]...)

	to := 0
	if anchor != zero {
		to = s.IndexOf(anchor) + 1
	}
	s.items = append(s.items, zero)
	copy(s.items[to+1:], s.items[to:])
	s.items[to] = moved
	return nil
}

// Clear drops every member and returns them in their former order.
func (s *Sequence[T]) Clear() []T {
	out := s.items
	s.items = nil
	s.index = make(map[ulid.ULID]T)
	return out
}
