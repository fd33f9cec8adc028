// Package store provides the document store the aggregates live in.
// Each aggregate is a single JSON document that is read and rewritten
// wholesale on every mutation; the only atomicity the backends
// guarantee is the write of one document.  There are no cross-document
// transactions anywhere in the system, which is why the activation
// workflow reports partial success instead of rolling back.
package store

import (
	"context"
	"errors"
)

// Names of the documents the repositories use.
const (
	DocInventory = "rooms"
	DocContracts = "contracts"
	DocResidents = "residents"
)

// ErrNotFound is returned by Load when the named document has never
// been saved.  Repositories treat it as an empty aggregate.
var ErrNotFound = errors.New("document not found")

// DocumentStore reads and writes whole aggregate documents.  Save
// replaces the full document body; there are no partial or streaming
// writes.
type DocumentStore interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, body []byte) error
}
