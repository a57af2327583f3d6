package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkceremonies/setupboard/ceremony"
	"github.com/zkceremonies/setupboard/store"
	"github.com/zkceremonies/setupboard/store/mock"
)

func TestCircuitsOrdering(t *testing.T) {
	s := &mock.Store{}
	seedCeremony(s, "zkevm", 0)
	// inserted out of pipeline order on purpose
	addCircuit(s, "zkevm", "multiplier", 2)
	addCircuit(s, "zkevm", "poseidon", 0)
	addCircuit(s, "zkevm", "merkle", 1)

	c := newTestClient(t, s)
	circuits, err := c.Circuits(context.Background(), "zkevm")
	require.NoError(t, err)
	require.Len(t, circuits, 3)

	positions := make([]int64, len(circuits))
	for i, circ := range circuits {
		positions[i] = circ.SequencePosition
	}
	require.Equal(t, []int64{0, 1, 2}, positions)
	require.Equal(t, "poseidon", circuits[0].ID)
	require.Equal(t, "merkle", circuits[1].ID)
	require.Equal(t, "multiplier", circuits[2].ID)
}

func TestCircuitsTieBreakByID(t *testing.T) {
	s := &mock.Store{}
	seedCeremony(s, "zkevm", 0)
	addCircuit(s, "zkevm", "zeta", 1)
	addCircuit(s, "zkevm", "alpha", 1)

	c := newTestClient(t, s)
	circuits, err := c.Circuits(context.Background(), "zkevm")
	require.NoError(t, err)
	require.Equal(t, "alpha", circuits[0].ID)
	require.Equal(t, "zeta", circuits[1].ID)
}

func TestCircuitsBadDocument(t *testing.T) {
	s := &mock.Store{}
	s.Add(ceremony.CircuitsPath("zkevm"), store.Document{
		ID:   "broken",
		Data: map[string]interface{}{ceremony.FieldSequencePosition: "first"},
	})

	c := newTestClient(t, s)
	_, err := c.Circuits(context.Background(), "zkevm")
	require.Error(t, err)
	require.ErrorContains(t, err, "sequencePosition")
}

func TestCircuitsStoreError(t *testing.T) {
	s := &mock.Store{Fail: store.ErrUnavailable}

	c := newTestClient(t, s)
	_, err := c.Circuits(context.Background(), "zkevm")
	require.ErrorIs(t, err, store.ErrUnavailable)
}
