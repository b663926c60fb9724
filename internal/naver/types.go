package naver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Response mirrors the GraphQL "bookings" reply. Only the fields the
// calendar needs are declared; everything else upstream sends is ignored.
type Response struct {
	Data   Data           `json:"data"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

type Data struct {
	Booking *BookingPage `json:"booking"`
}

type GraphQLError struct {
	Message string `json:"message"`
}

type BookingPage struct {
	Bookings   []Booking `json:"bookings"`
	TotalCount int       `json:"totalCount"`
}

type Booking struct {
	StatusCode  StatusCode `json:"bookingStatusCode"`
	IsCompleted bool       `json:"isCompleted"`
	Snapshot    Snapshot   `json:"snapshotJson"`
}

// Snapshot is the booking as it looked when it was made. The vendor sends it
// either as an object or as a JSON document encoded in a string.
type Snapshot struct {
	BookingID    Int64    `json:"bookingId"`
	BusinessID   Int64    `json:"businessId"`
	BusinessName string   `json:"serviceName"`
	ItemID       Int64    `json:"bizItemId"`
	ItemName     string   `json:"bizItemName"`
	Start        Time     `json:"startDateTime"`
	End          Time     `json:"endDateTime"`
	Address      Address  `json:"businessAddressJson"`
	Options      []Option `json:"bookingOptionJson"`
}

type Address struct {
	RoadAddr string `json:"roadAddr"`
}

type Option struct {
	Name string `json:"name"`
}

func (s *Snapshot) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return errors.New("snapshotJson is null")
	}
	if len(b) > 0 && b[0] == '"' {
		var inner string
		if err := json.Unmarshal(b, &inner); err != nil {
			return fmt.Errorf("snapshotJson: %w", err)
		}
		b = []byte(inner)
	}

	type plain Snapshot
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("snapshotJson: %w", err)
	}
	switch {
	case p.BookingID == 0:
		return errors.New("snapshotJson: missing bookingId")
	case p.Start.IsZero():
		return fmt.Errorf("snapshotJson: booking %d has no startDateTime", p.BookingID)
	case p.End.IsZero():
		return fmt.Errorf("snapshotJson: booking %d has no endDateTime", p.BookingID)
	}
	*s = Snapshot(p)
	return nil
}

// Int64 accepts a JSON number or a numeric string.
type Int64 int64

func (n *Int64) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %s", b)
	}
	*n = Int64(v)
	return nil
}

// Time is a vendor timestamp normalized to UTC at decode time.
type Time struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func (t *Time) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("invalid timestamp %s", b)
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// ParseTime parses a vendor timestamp. Values without an offset are taken
// as UTC. The result is always in UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			return v.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}
