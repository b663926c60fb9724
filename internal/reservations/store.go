package reservations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDecode is returned when a stored row cannot be turned back into a
// Reservation.
var ErrDecode = errors.New("reservation decode failed")

type Store interface {
	// Upsert inserts r or overwrites every column of the row with the same ID.
	Upsert(ctx context.Context, r Reservation) error
	// ListAll returns every row ordered by start, then ID.
	ListAll(ctx context.Context) ([]Reservation, error)
}

func encodeOptions(opts []string) (string, error) {
	if opts == nil {
		opts = []string{}
	}
	b, err := json.Marshal(opts)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeOptions(id int64, raw string) ([]string, error) {
	var opts []string
	if err := json.Unmarshal([]byte(raw), &opts); err != nil {
		return nil, fmt.Errorf("%w: options of reservation %d: %v", ErrDecode, id, err)
	}
	if opts == nil {
		opts = []string{}
	}
	return opts, nil
}
