package client

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/zkceremonies/setupboard/ceremony"
)

// Project is the aggregate the view layer renders: one ceremony together
// with its ordered circuits, participants, per-circuit contributions, and
// the participants' avatar URLs.
type Project struct {
	Ceremony      ceremony.Ceremony                  `json:"ceremony"`
	Circuits      []ceremony.Circuit                 `json:"circuits,omitempty"`
	Participants  []ceremony.Participant             `json:"participants,omitempty"`
	Contributions map[string][]ceremony.Contribution `json:"contributions,omitempty"`
	AvatarURLs    []string                           `json:"avatarUrls,omitempty"`
}

// ListCeremonies reads the top-level ceremonies collection.
func (c *Client) ListCeremonies(ctx context.Context) ([]ceremony.Ceremony, error) {
	docs, err := c.ReadCollection(ctx, ceremony.CollectionCeremonies)
	if err != nil {
		return nil, err
	}

	out := make([]ceremony.Ceremony, 0, len(docs))
	for _, doc := range docs {
		cer, err := ceremony.ParseCeremony(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, cer)
	}
	return out, nil
}

// FetchProject assembles the full aggregate for one ceremony. Circuits and
// participants are fetched concurrently; contributions follow once the
// circuit list is known, one concurrent read per circuit. A missing ceremony
// or a failed sub-fetch fails the whole call, except avatars: those stay
// best-effort, with partial failures logged and the partial set kept.
func (c *Client) FetchProject(ctx context.Context, ceremonyID string) (*Project, error) {
	doc, err := c.store.GetDocument(ctx, ceremony.CollectionCeremonies, ceremonyID)
	if err != nil {
		return nil, fmt.Errorf("fetching ceremony %s: %w", ceremonyID, err)
	}
	cer, err := ceremony.ParseCeremony(*doc)
	if err != nil {
		return nil, err
	}

	p := &Project{Ceremony: cer}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		circuits, err := c.Circuits(gctx, ceremonyID)
		if err != nil {
			return err
		}
		p.Circuits = circuits
		return nil
	})
	g.Go(func() error {
		parts, err := c.Participants(gctx, ceremonyID)
		if err != nil {
			return err
		}
		p.Participants = parts
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cg, cgctx := errgroup.WithContext(ctx)
	contribs := make([][]ceremony.Contribution, len(p.Circuits))
	for i, circ := range p.Circuits {
		i, circ := i, circ
		cg.Go(func() error {
			list, err := c.Contributions(cgctx, ceremonyID, circ.ID)
			if err != nil {
				return err
			}
			contribs[i] = list
			return nil
		})
	}
	if err := cg.Wait(); err != nil {
		return nil, err
	}
	if len(p.Circuits) > 0 {
		p.Contributions = make(map[string][]ceremony.Contribution, len(p.Circuits))
		for i, circ := range p.Circuits {
			p.Contributions[circ.ID] = contribs[i]
		}
	}

	ids := make([]string, len(p.Participants))
	for i, part := range p.Participants {
		ids[i] = part.ID
	}
	urls, err := c.avatarsFor(ctx, ids)
	if err != nil {
		c.log.Warnw("avatar fetch incomplete", "ceremony", ceremonyID, "err", err)
	}
	p.AvatarURLs = urls

	return p, nil
}
