package client

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Mode selects the fan-out aggregation policy.
type Mode int

const (
	// CollectAll records per-batch failures and lets the remaining batches
	// finish. The dashboard callers always use this mode so one bad batch
	// does not blank out everything else.
	CollectAll Mode = iota
	// FailFast aborts the whole fan-out on the first batch failure.
	FailFast
)

// Chunk partitions items into contiguous batches of at most size elements.
// Relative order is preserved, nothing is duplicated or dropped, and the last
// batch may be shorter. An empty input yields no batches.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		panic("chunk size must be positive")
	}
	if len(items) == 0 {
		return nil
	}
	batches := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[start:end])
	}
	return batches
}

// FanoutResult is the merged outcome of a CollectAll fan-out. Every batch
// lands in exactly one of the two sides: its outputs flattened into Results,
// or its failure recorded in Errors.
type FanoutResult[R any] struct {
	Results []R
	Errors  []error
}

// Fanout dispatches op over all batches concurrently and merges the
// outcomes.
//
// Under CollectAll the returned error is always nil; callers must inspect
// FanoutResult.Errors for partial failures. Results are flattened in batch
// order. Under FailFast the first failing batch cancels the rest through the
// group context and its error is returned with an empty result.
//
// Each batch writes into its own slot and slots are merged once after the
// join, so no locking is needed around the accumulators.
func Fanout[T, R any](ctx context.Context, mode Mode, batches [][]T, op func(context.Context, []T) ([]R, error)) (FanoutResult[R], error) {
	if len(batches) == 0 {
		return FanoutResult[R]{}, nil
	}

	slots := make([][]R, len(batches))
	errs := make([]error, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	for i, batch := range batches {
		i, batch := i, batch
		g.Go(func() error {
			out, err := op(gctx, batch)
			if err != nil {
				errs[i] = fmt.Errorf("batch %d: %w", i, err)
				if mode == FailFast {
					return errs[i]
				}
				return nil
			}
			slots[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return FanoutResult[R]{}, err
	}

	var res FanoutResult[R]
	for i := range batches {
		if errs[i] != nil {
			res.Errors = append(res.Errors, errs[i])
			continue
		}
		res.Results = append(res.Results, slots[i]...)
	}
	return res, nil
}
