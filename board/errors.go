// ABOUTME: Sentinel and typed errors for board, list and card mutations.
// ABOUTME: Every rejected mutation is reported as one of these, never as a panic.
package board

import (
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"
)

var (
	// ErrNotFound indicates a remove, reorder or move referenced an entity
	// that is not a member of the target sequence.
	ErrNotFound = errors.New("not a member of the sequence")

	// ErrDuplicateMember indicates an add referenced an entity already present.
	ErrDuplicateMember = errors.New("already a member of the sequence")

	// ErrOwnedElsewhere indicates an add referenced an entity owned by another
	// container. Use Board.MoveCard to transfer ownership.
	ErrOwnedElsewhere = errors.New("owned by another container")

	// ErrDestroyed indicates the entity was removed from its owner and can no
	// longer be placed anywhere.
	ErrDestroyed = errors.New("entity has been destroyed")

	// ErrInvalidBackground indicates an unsupported background kind or a value
	// that does not fit its kind.
	ErrInvalidBackground = errors.New("invalid background")
)

// MembershipError describes a rejected add, remove, reorder or move.
type MembershipError struct {
	Op   string
	Kind ItemKind
	ID   ulid.ULID
	Err  error
}

func (e *MembershipError) Error() string {
	if e.ID == (ulid.ULID{}) {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Kind, e.ID, e.Err)
}

func (e *MembershipError) Unwrap() error {
	return e.Err
}

// membershipErr builds a MembershipError. it may be a literal nil when the
// caller passed no entity at all.
func membershipErr(op string, kind ItemKind, it Item, err error) error {
	me := &MembershipError{Op: op, Kind: kind, Err: err}
	if it != nil {
		me.ID = it.ID()
	}
	return me
}

// BackgroundError describes a rejected background descriptor.
type BackgroundError struct {
	Kind   BackgroundKind
	Value  string
	Reason string
}

func (e *BackgroundError) Error() string {
	return fmt.Sprintf("invalid background %s=%q: %s", e.Kind, e.Value, e.Reason)
}

func (e *BackgroundError) Unwrap() error {
	return ErrInvalidBackground
}
