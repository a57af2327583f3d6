package ceremony

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkceremonies/setupboard/store"
)

func TestParseCeremony(t *testing.T) {
	doc := store.Document{
		ID: "zkevm",
		Data: map[string]interface{}{
			"title":       "zkEVM Phase 2",
			"description": "trusted setup for the zkEVM circuits",
			"state":       "OPENED",
			"type":        "PHASE2",
			"prefix":      "zkevm",
			"startDate":   int64(1690000000000),
			"endDate":     int64(1700000000000),
		},
	}

	c, err := ParseCeremony(doc)
	require.NoError(t, err)
	require.Equal(t, "zkevm", c.ID)
	require.Equal(t, "zkEVM Phase 2", c.Title)
	require.Equal(t, "OPENED", c.State)
	require.Equal(t, int64(1690000000000), c.StartDate)
	require.Equal(t, doc.Data, c.Data)
}

func TestParseCeremonyToleratesAbsentFields(t *testing.T) {
	c, err := ParseCeremony(store.Document{ID: "bare", Data: map[string]interface{}{}})
	require.NoError(t, err)
	require.Equal(t, "bare", c.ID)
	require.Empty(t, c.Title)
	require.Zero(t, c.StartDate)
}

func TestParseCeremonyWrongType(t *testing.T) {
	_, err := ParseCeremony(store.Document{
		ID:   "bad",
		Data: map[string]interface{}{"title": 42},
	})
	require.Error(t, err)
	require.ErrorContains(t, err, "title")
}

func TestParseCircuitNumericEncodings(t *testing.T) {
	// firestore hands back int64, JSON fixtures float64, fakes plain int
	for _, v := range []interface{}{int64(3), float64(3), int(3)} {
		c, err := ParseCircuit(store.Document{
			ID:   "circ",
			Data: map[string]interface{}{FieldSequencePosition: v},
		})
		require.NoError(t, err)
		require.Equal(t, int64(3), c.SequencePosition)
	}
}

func TestParseCircuitNegativePosition(t *testing.T) {
	_, err := ParseCircuit(store.Document{
		ID:   "circ",
		Data: map[string]interface{}{FieldSequencePosition: int64(-1)},
	})
	require.Error(t, err)
}

func TestParseCircuitMissingPositionDefaultsToZero(t *testing.T) {
	c, err := ParseCircuit(store.Document{ID: "circ", Data: map[string]interface{}{"name": "poseidon"}})
	require.NoError(t, err)
	require.Zero(t, c.SequencePosition)
	require.Equal(t, "poseidon", c.Name)
}

func TestParseContribution(t *testing.T) {
	c, err := ParseContribution(store.Document{
		ID: "c1",
		Data: map[string]interface{}{
			"participantId": "p0",
			"zkeyIndex":     "00042",
			"valid":         true,
		},
	})
	require.NoError(t, err)
	require.Equal(t, "p0", c.ParticipantID)
	require.Equal(t, "00042", c.ZkeyIndex)
	require.True(t, c.Valid)

	_, err = ParseContribution(store.Document{
		ID:   "c2",
		Data: map[string]interface{}{"valid": "yes"},
	})
	require.Error(t, err)
}

func TestPaths(t *testing.T) {
	require.Equal(t, "ceremonies/x/circuits", CircuitsPath("x"))
	require.Equal(t, "ceremonies/x/participants", ParticipantsPath("x"))
	require.Equal(t, "ceremonies/x/circuits/y/contributions", ContributionsPath("x", "y"))
}
