// ABOUTME: ULID generation helper using crypto/rand entropy.
// ABOUTME: Every board, list and card gets a ULID as its stable, non-owning handle.
package board

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID using crypto/rand entropy.
func NewULID() ulid.ULID {
	return ulid.MustNew(ulid.Now(), rand.Reader)
}

// orFresh returns id, or a freshly generated ULID when id is the zero value.
func orFresh(id ulid.ULID) ulid.ULID {
	if id == (ulid.ULID{}) {
		return NewULID()
	}
	return id
}
