// Package client implements the read-side aggregation layer of the ceremony
// dashboard. It fetches flat document collections from the store, restores
// the circuit pipeline order, fans membership queries out in bounded batches,
// and merges partial results into view-ready project aggregates.
package client

import (
	"errors"

	"github.com/zkceremonies/setupboard/log"
	"github.com/zkceremonies/setupboard/store"
)

// Client aggregates ceremony state from a document store. It holds no state
// between calls and never writes.
type Client struct {
	store store.Store
	log   log.Logger
}

// Option configures a Client.
type Option func(*Client) error

// WithLogger sets the logger used for boundary diagnostics.
func WithLogger(l log.Logger) Option {
	return func(c *Client) error {
		c.log = l
		return nil
	}
}

// New creates a client reading from the given store.
func New(s store.Store, opts ...Option) (*Client, error) {
	if s == nil {
		return nil, errors.New("missing store")
	}
	c := &Client{store: s, log: log.DefaultLogger().Named("client")}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}
