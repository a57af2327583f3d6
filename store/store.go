// Package store defines the document-store boundary the aggregation client
// reads from. Implementations live in sub-packages; the client only sees this
// interface.
package store

import (
	"context"
	"errors"
	"fmt"
)

// MembershipLimit is the store-side ceiling on the number of values a single
// membership query may filter on. Callers must batch larger sets.
const MembershipLimit = 10

// FieldDocumentID is the pseudo-field selecting a document's identifier in
// membership queries. Adapters translate it to their native sentinel.
const FieldDocumentID = "__name__"

// ErrUnavailable indicates the store connection cannot be used. It is
// surfaced unchanged; this layer does not retry.
var ErrUnavailable = errors.New("document store unavailable")

// ErrNotFound indicates a single-document lookup matched nothing.
var ErrNotFound = errors.New("document not found")

// Document is the normalized {id, reference, data} triple every read returns.
// Data carries the raw field mapping; typed decoding happens in the ceremony
// package.
type Document struct {
	// ID is the document identifier, unique within its collection.
	ID string
	// Ref is an opaque adapter-owned handle to the stored document. May be
	// nil for adapters that have no meaningful reference (e.g. fakes).
	Ref interface{}
	// Data maps field names to values. Fields may be absent; this layer does
	// not validate presence.
	Data map[string]interface{}
}

// Store is the read-only surface consumed by the aggregation client.
type Store interface {
	// ListCollection returns every document under the given slash-separated
	// collection path, in store iteration order.
	ListCollection(ctx context.Context, path string) ([]Document, error)

	// GetDocument looks up a single document by id under a collection path.
	// Returns ErrNotFound (possibly wrapped) when absent.
	GetDocument(ctx context.Context, path, id string) (*Document, error)

	// QueryMembership returns the documents of a top-level collection whose
	// field value is in the given set. The set must not exceed
	// MembershipLimit; exceeding it is a caller error.
	QueryMembership(ctx context.Context, collection, field string, values []string) ([]Document, error)
}

// CheckMembershipSize validates a membership value set against the store
// ceiling. Adapters call it before issuing the query.
func CheckMembershipSize(values []string) error {
	if len(values) > MembershipLimit {
		return fmt.Errorf("membership query with %d values exceeds limit of %d", len(values), MembershipLimit)
	}
	return nil
}
