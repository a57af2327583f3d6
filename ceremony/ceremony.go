// Package ceremony holds the typed view of trusted-setup ceremony documents
// and the collection layout they live under. Decoding from raw store
// documents happens here, at the boundary, so the client core only handles
// typed values.
package ceremony

import (
	"fmt"

	"github.com/zkceremonies/setupboard/store"
)

// Collection layout of the coordinator's database.
const (
	CollectionCeremonies = "ceremonies"
	CollectionAvatars    = "avatars"

	FieldAvatarURL        = "avatarUrl"
	FieldSequencePosition = "sequencePosition"
)

// CircuitsPath returns the circuits sub-collection of a ceremony.
func CircuitsPath(ceremonyID string) string {
	return fmt.Sprintf("%s/%s/circuits", CollectionCeremonies, ceremonyID)
}

// ParticipantsPath returns the participants sub-collection of a ceremony.
func ParticipantsPath(ceremonyID string) string {
	return fmt.Sprintf("%s/%s/participants", CollectionCeremonies, ceremonyID)
}

// ContributionsPath returns the contributions sub-collection of a circuit.
func ContributionsPath(ceremonyID, circuitID string) string {
	return fmt.Sprintf("%s/%s/circuits/%s/contributions", CollectionCeremonies, ceremonyID, circuitID)
}

// Ceremony is one multi-party setup round. Optional fields keep their zero
// value when the document omits them.
type Ceremony struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title,omitempty"`
	Description string                 `json:"description,omitempty"`
	State       string                 `json:"state,omitempty"`
	Type        string                 `json:"type,omitempty"`
	Prefix      string                 `json:"prefix,omitempty"`
	StartDate   int64                  `json:"startDate,omitempty"`
	EndDate     int64                  `json:"endDate,omitempty"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// Circuit is a unit of computation within a ceremony. SequencePosition
// orders circuits into the parallel-contribution pipeline; the fetcher sorts
// on it.
type Circuit struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name,omitempty"`
	Prefix           string                 `json:"prefix,omitempty"`
	SequencePosition int64                  `json:"sequencePosition"`
	Data             map[string]interface{} `json:"data,omitempty"`
}

// Participant is a ceremony member. Its ID doubles as the join key into the
// avatars collection.
type Participant struct {
	ID                   string                 `json:"id"`
	Status               string                 `json:"status,omitempty"`
	ContributionProgress int64                  `json:"contributionProgress,omitempty"`
	Data                 map[string]interface{} `json:"data,omitempty"`
}

// Contribution is a participant's submitted contribution to one circuit.
type Contribution struct {
	ID            string                 `json:"id"`
	ParticipantID string                 `json:"participantId,omitempty"`
	Valid         bool                   `json:"valid,omitempty"`
	ZkeyIndex     string                 `json:"zkeyIndex,omitempty"`
	Data          map[string]interface{} `json:"data,omitempty"`
}

// ParseCeremony decodes a ceremony document. Absent fields are tolerated;
// present fields of the wrong type are errors.
func ParseCeremony(doc store.Document) (Ceremony, error) {
	c := Ceremony{ID: doc.ID, Data: doc.Data}
	var err error
	if c.Title, err = optString(doc, "title"); err != nil {
		return Ceremony{}, err
	}
	if c.Description, err = optString(doc, "description"); err != nil {
		return Ceremony{}, err
	}
	if c.State, err = optString(doc, "state"); err != nil {
		return Ceremony{}, err
	}
	if c.Type, err = optString(doc, "type"); err != nil {
		return Ceremony{}, err
	}
	if c.Prefix, err = optString(doc, "prefix"); err != nil {
		return Ceremony{}, err
	}
	if c.StartDate, err = optInt(doc, "startDate"); err != nil {
		return Ceremony{}, err
	}
	if c.EndDate, err = optInt(doc, "endDate"); err != nil {
		return Ceremony{}, err
	}
	return c, nil
}

// ParseCircuit decodes a circuit document. A missing sequencePosition parses
// as 0; the fetcher's document-id tie-break keeps the order deterministic.
func ParseCircuit(doc store.Document) (Circuit, error) {
	c := Circuit{ID: doc.ID, Data: doc.Data}
	var err error
	if c.Name, err = optString(doc, "name"); err != nil {
		return Circuit{}, err
	}
	if c.Prefix, err = optString(doc, "prefix"); err != nil {
		return Circuit{}, err
	}
	if c.SequencePosition, err = optInt(doc, FieldSequencePosition); err != nil {
		return Circuit{}, err
	}
	if c.SequencePosition < 0 {
		return Circuit{}, fmt.Errorf("circuit %s: negative sequencePosition %d", doc.ID, c.SequencePosition)
	}
	return c, nil
}

// ParseParticipant decodes a participant document.
func ParseParticipant(doc store.Document) (Participant, error) {
	p := Participant{ID: doc.ID, Data: doc.Data}
	var err error
	if p.Status, err = optString(doc, "status"); err != nil {
		return Participant{}, err
	}
	if p.ContributionProgress, err = optInt(doc, "contributionProgress"); err != nil {
		return Participant{}, err
	}
	return p, nil
}

// ParseContribution decodes a contribution document.
func ParseContribution(doc store.Document) (Contribution, error) {
	c := Contribution{ID: doc.ID, Data: doc.Data}
	var err error
	if c.ParticipantID, err = optString(doc, "participantId"); err != nil {
		return Contribution{}, err
	}
	if c.ZkeyIndex, err = optString(doc, "zkeyIndex"); err != nil {
		return Contribution{}, err
	}
	if v, ok := doc.Data["valid"]; ok {
		b, ok := v.(bool)
		if !ok {
			return Contribution{}, typeErr(doc.ID, "valid", "bool", v)
		}
		c.Valid = b
	}
	return c, nil
}

func optString(doc store.Document, field string) (string, error) {
	v, ok := doc.Data[field]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", typeErr(doc.ID, field, "string", v)
	}
	return s, nil
}

// optInt accepts the numeric encodings the store adapters produce: int64
// from firestore, float64 from JSON fixtures, plain int from fakes.
func optInt(doc store.Document, field string) (int64, error) {
	v, ok := doc.Data[field]
	if !ok || v == nil {
		return 0, nil
	}
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	default:
		return 0, typeErr(doc.ID, field, "integer", v)
	}
}

func typeErr(id, field, want string, got interface{}) error {
	return fmt.Errorf("document %s: field %q: want %s, got %T", id, field, want, got)
}
