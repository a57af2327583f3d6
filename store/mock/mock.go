// Package mock provides an in-memory store.Store for tests.
package mock

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/zkceremonies/setupboard/store"
)

// Store is a mocked document store backed by maps. The zero value is usable.
//
// Failure injection: set Fail to make every call return that error, or
// FailF for per-call control. Counters record how many of each call were
// issued so tests can assert on query shapes.
type Store struct {
	sync.Mutex

	collections map[string][]store.Document

	// Fail, when non-nil, is returned by every store call.
	Fail error
	// FailF, when non-nil, is consulted per membership query; returning a
	// non-nil error fails that query only.
	FailF func(collection string, values []string) error

	// ListCalls and MembershipCalls count issued calls; MembershipSizes
	// records the value-set size of each membership query in order.
	ListCalls       int
	MembershipCalls int
	MembershipSizes []int
}

// Add stores a document under a collection path. An empty id gets a
// store-assigned one, mirroring server-side id allocation.
func (s *Store) Add(path string, doc store.Document) store.Document {
	s.Lock()
	defer s.Unlock()
	if s.collections == nil {
		s.collections = make(map[string][]store.Document)
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	s.collections[path] = append(s.collections[path], doc)
	return doc
}

func (s *Store) ListCollection(_ context.Context, path string) ([]store.Document, error) {
	s.Lock()
	defer s.Unlock()
	s.ListCalls++
	if s.Fail != nil {
		return nil, s.Fail
	}
	docs := make([]store.Document, len(s.collections[path]))
	copy(docs, s.collections[path])
	return docs, nil
}

func (s *Store) GetDocument(_ context.Context, path, id string) (*store.Document, error) {
	s.Lock()
	defer s.Unlock()
	if s.Fail != nil {
		return nil, s.Fail
	}
	for _, doc := range s.collections[path] {
		if doc.ID == id {
			d := doc
			return &d, nil
		}
	}
	return nil, fmt.Errorf("%s/%s: %w", path, id, store.ErrNotFound)
}

func (s *Store) QueryMembership(_ context.Context, collection, field string, values []string) ([]store.Document, error) {
	if err := store.CheckMembershipSize(values); err != nil {
		return nil, err
	}

	s.Lock()
	defer s.Unlock()
	s.MembershipCalls++
	s.MembershipSizes = append(s.MembershipSizes, len(values))
	if s.Fail != nil {
		return nil, s.Fail
	}
	if s.FailF != nil {
		if err := s.FailF(collection, values); err != nil {
			return nil, err
		}
	}

	wanted := make(map[string]bool, len(values))
	for _, v := range values {
		wanted[v] = true
	}
	var out []store.Document
	for _, doc := range s.collections[collection] {
		switch {
		case field == store.FieldDocumentID && wanted[doc.ID]:
			out = append(out, doc)
		case field != store.FieldDocumentID:
			if v, ok := doc.Data[field].(string); ok && wanted[v] {
				out = append(out, doc)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
