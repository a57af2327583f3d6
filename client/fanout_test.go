package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		n     int
		size  int
		sizes []int
	}{
		{0, 10, nil},
		{1, 10, []int{1}},
		{10, 10, []int{10}},
		{11, 10, []int{10, 1}},
		{25, 10, []int{10, 10, 5}},
		{30, 10, []int{10, 10, 10}},
		{7, 3, []int{3, 3, 1}},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("n=%d,k=%d", test.n, test.size), func(t *testing.T) {
			items := make([]int, test.n)
			for i := range items {
				items[i] = i
			}

			batches := Chunk(items, test.size)
			require.Len(t, batches, len(test.sizes))

			var flat []int
			for i, b := range batches {
				require.Len(t, b, test.sizes[i])
				flat = append(flat, b...)
			}
			// concatenation restores the input exactly: order preserved, no
			// duplication, no loss
			require.Equal(t, items, flat)
		})
	}
}

func TestChunkPanicsOnBadSize(t *testing.T) {
	require.Panics(t, func() { Chunk([]int{1}, 0) })
}

func TestFanoutCollectAll(t *testing.T) {
	tests := []struct {
		name     string
		batches  int
		failing  map[int]bool
		wantOK   int
		wantErrs int
	}{
		{"all succeed", 4, nil, 4, 0},
		{"one fails", 4, map[int]bool{2: true}, 3, 1},
		{"half fail", 4, map[int]bool{0: true, 3: true}, 2, 2},
		{"all fail", 3, map[int]bool{0: true, 1: true, 2: true}, 0, 3},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			batches := make([][]int, test.batches)
			for i := range batches {
				batches[i] = []int{i}
			}

			res, err := Fanout(context.Background(), CollectAll, batches, func(_ context.Context, b []int) ([]string, error) {
				if test.failing[b[0]] {
					return nil, errors.New("boom")
				}
				return []string{fmt.Sprintf("out-%d", b[0])}, nil
			})
			require.NoError(t, err)
			require.Len(t, res.Results, test.wantOK)
			require.Len(t, res.Errors, test.wantErrs)
			// every batch lands on exactly one side
			require.Equal(t, test.batches, len(res.Results)+len(res.Errors))
		})
	}
}

func TestFanoutCollectAllFlattens(t *testing.T) {
	batches := Chunk([]int{1, 2, 3, 4, 5}, 2)
	res, err := Fanout(context.Background(), CollectAll, batches, func(_ context.Context, b []int) ([]int, error) {
		out := make([]int, len(b))
		for i, v := range b {
			out[i] = v * 10
		}
		return out, nil
	})
	require.NoError(t, err)
	require.Empty(t, res.Errors)
	require.Equal(t, []int{10, 20, 30, 40, 50}, res.Results)
}

func TestFanoutFailFast(t *testing.T) {
	batches := [][]int{{0}, {1}, {2}}
	res, err := Fanout(context.Background(), FailFast, batches, func(_ context.Context, b []int) ([]int, error) {
		if b[0] == 1 {
			return nil, errors.New("boom")
		}
		return b, nil
	})
	require.Error(t, err)
	require.ErrorContains(t, err, "boom")
	require.Empty(t, res.Results)
	require.Empty(t, res.Errors)
}

func TestFanoutNoBatches(t *testing.T) {
	called := false
	res, err := Fanout(context.Background(), CollectAll, nil, func(_ context.Context, _ []int) ([]int, error) {
		called = true
		return nil, nil
	})
	require.NoError(t, err)
	require.Empty(t, res.Results)
	require.Empty(t, res.Errors)
	require.False(t, called)
}

// All batches must be in flight at once: each operation blocks until every
// other one has started, so a serial executor would deadlock here.
func TestFanoutDispatchesConcurrently(t *testing.T) {
	const n = 5
	batches := make([][]int, n)
	for i := range batches {
		batches[i] = []int{i}
	}

	var started sync.WaitGroup
	started.Add(n)
	res, err := Fanout(context.Background(), CollectAll, batches, func(_ context.Context, b []int) ([]int, error) {
		started.Done()
		started.Wait()
		return b, nil
	})
	require.NoError(t, err)
	require.Len(t, res.Results, n)
}
