package client

import (
	"context"
	"fmt"

	"github.com/zkceremonies/setupboard/ceremony"
)

// Contributions reads the contributions submitted to one circuit, in store
// iteration order.
func (c *Client) Contributions(ctx context.Context, ceremonyID, circuitID string) ([]ceremony.Contribution, error) {
	docs, err := c.ReadCollection(ctx, ceremony.ContributionsPath(ceremonyID, circuitID))
	if err != nil {
		return nil, err
	}

	contribs := make([]ceremony.Contribution, 0, len(docs))
	for _, doc := range docs {
		contrib, err := ceremony.ParseContribution(doc)
		if err != nil {
			return nil, fmt.Errorf("circuit %s: %w", circuitID, err)
		}
		contribs = append(contribs, contrib)
	}
	return contribs, nil
}
