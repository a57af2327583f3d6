package client

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkceremonies/setupboard/ceremony"
	"github.com/zkceremonies/setupboard/log"
	"github.com/zkceremonies/setupboard/store"
	"github.com/zkceremonies/setupboard/store/mock"
)

func newTestClient(t *testing.T, s store.Store) *Client {
	t.Helper()
	c, err := New(s, WithLogger(log.DefaultLogger()))
	require.NoError(t, err)
	return c
}

// seedCeremony populates the fake store with one ceremony plus the given
// number of participants. Participant ids are p0, p1, ...
func seedCeremony(s *mock.Store, id string, participants int) {
	s.Add(ceremony.CollectionCeremonies, store.Document{
		ID:   id,
		Data: map[string]interface{}{"title": id, "state": "OPENED"},
	})
	for i := 0; i < participants; i++ {
		s.Add(ceremony.ParticipantsPath(id), store.Document{
			ID:   fmt.Sprintf("p%d", i),
			Data: map[string]interface{}{"status": "CONTRIBUTED"},
		})
	}
}

func addCircuit(s *mock.Store, ceremonyID, circuitID string, pos int) {
	s.Add(ceremony.CircuitsPath(ceremonyID), store.Document{
		ID: circuitID,
		Data: map[string]interface{}{
			"name":                         circuitID,
			ceremony.FieldSequencePosition: int64(pos),
		},
	})
}

func addAvatar(s *mock.Store, participantID, url string) {
	s.Add(ceremony.CollectionAvatars, store.Document{
		ID:   participantID,
		Data: map[string]interface{}{ceremony.FieldAvatarURL: url},
	})
}
