package reservations

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const EventReservationSynced = "ReservationSynced"

type Envelope struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	Payload      json.RawMessage `json:"payload"`
}

// ReservationSyncedPayload is published once per upserted row.
type ReservationSyncedPayload struct {
	Reservation Reservation `json:"reservation"`
	StatusCode  string      `json:"status_code"`
}

// PartitionKey keeps every event of one booking on the same partition.
func PartitionKey(id int64) []byte { return []byte(strconv.FormatInt(id, 10)) }

// NewSyncedEvent wraps r and its vendor status in a version 1 envelope and
// returns the encoded message value.
func NewSyncedEvent(r Reservation, status, producer string, at time.Time) ([]byte, error) {
	const op = "reservations.NewSyncedEvent"

	payload, err := json.Marshal(ReservationSyncedPayload{Reservation: r, StatusCode: status})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	b, err := json.Marshal(Envelope{
		EventID:      uuid.NewString(),
		EventType:    EventReservationSynced,
		EventVersion: 1,
		OccurredAt:   at.UTC(),
		Producer:     producer,
		Payload:      payload,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}
