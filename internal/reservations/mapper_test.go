package reservations

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ariefcatur/reservation-calendar/internal/naver"
)

func vendorBooking(status naver.StatusCode, opts ...string) naver.Booking {
	kst := time.FixedZone("KST", 9*3600)
	b := naver.Booking{
		StatusCode: status,
		Snapshot: naver.Snapshot{
			BookingID:    1001,
			BusinessID:   77,
			BusinessName: "Spa X",
			ItemID:       5,
			ItemName:     "60min Massage",
			Start:        naver.Time{Time: time.Date(2024, 3, 1, 19, 0, 0, 0, kst)},
			End:          naver.Time{Time: time.Date(2024, 3, 1, 20, 0, 0, 0, kst)},
			Address:      naver.Address{RoadAddr: "123 Main St"},
		},
	}
	for _, o := range opts {
		b.Snapshot.Options = append(b.Snapshot.Options, naver.Option{Name: o})
	}
	return b
}

func TestFromBooking(t *testing.T) {
	got := FromBooking(vendorBooking(naver.StatusReserved, "Oil", "Towel"))

	assert.Equal(t, Reservation{
		ID:           1001,
		BusinessID:   77,
		BusinessName: "Spa X",
		ItemID:       5,
		ItemName:     "60min Massage",
		Start:        time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		End:          time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC),
		Options:      []string{"Oil", "Towel"},
		Location:     "123 Main St",
	}, got)
}

func TestFromBooking_NoOptions(t *testing.T) {
	got := FromBooking(vendorBooking(naver.StatusReserved))
	assert.NotNil(t, got.Options)
	assert.Empty(t, got.Options)
}

func TestFromBooking_IgnoresStatus(t *testing.T) {
	reserved := FromBooking(vendorBooking(naver.StatusReserved, "Oil"))
	cancelled := FromBooking(vendorBooking(naver.StatusCancel, "Oil"))
	completed := FromBooking(vendorBooking(naver.StatusCompleted, "Oil"))

	assert.Equal(t, reserved, cancelled)
	assert.Equal(t, reserved, completed)
}

func TestFromBooking_Deterministic(t *testing.T) {
	b := vendorBooking(naver.StatusReserved, "A", "B", "C")
	assert.Equal(t, FromBooking(b), FromBooking(b))
}
