package client

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/zkceremonies/setupboard/ceremony"
	"github.com/zkceremonies/setupboard/store"
)

// Participants reads a ceremony's participant documents.
func (c *Client) Participants(ctx context.Context, ceremonyID string) ([]ceremony.Participant, error) {
	docs, err := c.ReadCollection(ctx, ceremony.ParticipantsPath(ceremonyID))
	if err != nil {
		return nil, err
	}

	parts := make([]ceremony.Participant, 0, len(docs))
	for _, doc := range docs {
		p, err := ceremony.ParseParticipant(doc)
		if err != nil {
			return nil, fmt.Errorf("ceremony %s: %w", ceremonyID, err)
		}
		parts = append(parts, p)
	}
	return parts, nil
}

// Avatars resolves the avatar URLs of a ceremony's participants. Participant
// ids are batched against the avatars collection in membership queries of at
// most store.MembershipLimit ids each, all batches in flight at once.
//
// Partial failures do not abort the fan-out: the returned slice always holds
// the URLs of the batches that succeeded, and the returned error joins the
// failures of the rest (nil when every batch succeeded). Participants with
// no avatar document are omitted, not errored. A ceremony with no
// participants returns an empty slice without touching the store again.
func (c *Client) Avatars(ctx context.Context, ceremonyID string) ([]string, error) {
	parts, err := c.Participants(ctx, ceremonyID)
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, nil
	}

	ids := make([]string, len(parts))
	for i, p := range parts {
		ids[i] = p.ID
	}
	return c.avatarsFor(ctx, ids)
}

// avatarsFor runs the batched membership lookups for an already known id
// list. Shared by Avatars and the project assembly.
func (c *Client) avatarsFor(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	batches := Chunk(ids, store.MembershipLimit)
	res, err := Fanout(ctx, CollectAll, batches, func(ctx context.Context, batch []string) ([]string, error) {
		docs, err := c.store.QueryMembership(ctx, ceremony.CollectionAvatars, store.FieldDocumentID, batch)
		if err != nil {
			return nil, err
		}
		urls := make([]string, 0, len(docs))
		for _, doc := range docs {
			if url, ok := doc.Data[ceremony.FieldAvatarURL].(string); ok && url != "" {
				urls = append(urls, url)
			}
		}
		return urls, nil
	})
	if err != nil {
		return nil, err
	}

	var merr *multierror.Error
	for _, batchErr := range res.Errors {
		merr = multierror.Append(merr, batchErr)
	}
	if merr != nil {
		c.log.Warnw("partial avatar fetch failure",
			"batches", len(batches),
			"failed", len(res.Errors))
	}
	return res.Results, merr.ErrorOrNil()
}
