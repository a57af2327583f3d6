// Package firestore adapts a Cloud Firestore database to the store.Store
// interface. It is the store the ceremony coordinator writes to; this side
// only ever reads.
package firestore

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/zkceremonies/setupboard/log"
	"github.com/zkceremonies/setupboard/store"
)

type fsStore struct {
	client *firestore.Client
	log    log.Logger
}

// New connects to the Firestore database of the given project and returns it
// as a store.Store. Credentials follow the usual google-cloud resolution
// order; pass option.WithCredentialsFile to override.
func New(ctx context.Context, l log.Logger, projectID string, opts ...option.ClientOption) (store.Store, io.Closer, error) {
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to firestore: %w", mapErr(err))
	}
	s := &fsStore{client: client, log: l.Named("firestore")}
	return s, client, nil
}

func (s *fsStore) ListCollection(ctx context.Context, path string) ([]store.Document, error) {
	iter := s.client.Collection(path).Documents(ctx)
	defer iter.Stop()

	var docs []store.Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing %q: %w", path, mapErr(err))
		}
		docs = append(docs, snapToDocument(snap))
	}
	s.log.Debugw("collection listed", "path", path, "docs", len(docs))
	return docs, nil
}

func (s *fsStore) GetDocument(ctx context.Context, path, id string) (*store.Document, error) {
	snap, err := s.client.Collection(path).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("%s/%s: %w", path, id, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting %s/%s: %w", path, id, mapErr(err))
	}
	doc := snapToDocument(snap)
	return &doc, nil
}

func (s *fsStore) QueryMembership(ctx context.Context, collection, field string, values []string) ([]store.Document, error) {
	if err := store.CheckMembershipSize(values); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}

	col := s.client.Collection(collection)
	var q firestore.Query
	if field == store.FieldDocumentID {
		// Firestore wants document references, not bare ids, for __name__
		// membership predicates.
		refs := make([]interface{}, len(values))
		for i, v := range values {
			refs[i] = col.Doc(v)
		}
		q = col.Where(firestore.DocumentID, "in", refs)
	} else {
		vals := make([]interface{}, len(values))
		for i, v := range values {
			vals[i] = v
		}
		q = col.Where(field, "in", vals)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var docs []store.Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("membership query on %q: %w", collection, mapErr(err))
		}
		docs = append(docs, snapToDocument(snap))
	}
	return docs, nil
}

func snapToDocument(snap *firestore.DocumentSnapshot) store.Document {
	return store.Document{
		ID:   snap.Ref.ID,
		Ref:  snap.Ref,
		Data: snap.Data(),
	}
}

// mapErr folds transport-level failures into store.ErrUnavailable so callers
// can match on the sentinel without importing grpc.
func mapErr(err error) error {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	default:
		return err
	}
}
