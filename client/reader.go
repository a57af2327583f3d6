package client

import (
	"context"
	"fmt"

	"github.com/zkceremonies/setupboard/store"
)

// ReadCollection materializes every document under path in one logical call.
// Store errors propagate unchanged apart from path context; there is no
// local recovery or retry here.
func (c *Client) ReadCollection(ctx context.Context, path string) ([]store.Document, error) {
	docs, err := c.store.ListCollection(ctx, path)
	if err != nil {
		c.log.Errorw("collection read failed", "path", path, "err", err)
		return nil, fmt.Errorf("reading collection %q: %w", path, err)
	}
	return docs, nil
}
