package client

import (
	"context"
	"fmt"
	"sort"

	"github.com/zkceremonies/setupboard/ceremony"
)

// Circuits reads a ceremony's circuits and returns them sorted ascending by
// sequencePosition. Downstream contribution scheduling depends on this
// order; the raw store iteration order carries no meaning.
//
// Circuits sharing a sequencePosition are ordered by document id so the
// result is deterministic across calls.
func (c *Client) Circuits(ctx context.Context, ceremonyID string) ([]ceremony.Circuit, error) {
	docs, err := c.ReadCollection(ctx, ceremony.CircuitsPath(ceremonyID))
	if err != nil {
		return nil, err
	}

	circuits := make([]ceremony.Circuit, 0, len(docs))
	for _, doc := range docs {
		circ, err := ceremony.ParseCircuit(doc)
		if err != nil {
			return nil, fmt.Errorf("ceremony %s: %w", ceremonyID, err)
		}
		circuits = append(circuits, circ)
	}

	sort.Slice(circuits, func(i, j int) bool {
		if circuits[i].SequencePosition != circuits[j].SequencePosition {
			return circuits[i].SequencePosition < circuits[j].SequencePosition
		}
		return circuits[i].ID < circuits[j].ID
	})
	return circuits, nil
}
