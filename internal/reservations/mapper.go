package reservations

import "github.com/ariefcatur/reservation-calendar/internal/naver"

// FromBooking flattens a vendor booking into a Reservation. Every booking
// maps, whatever its status code.
func FromBooking(b naver.Booking) Reservation {
	s := b.Snapshot
	opts := make([]string, 0, len(s.Options))
	for _, o := range s.Options {
		opts = append(opts, o.Name)
	}
	return Reservation{
		ID:           int64(s.BookingID),
		BusinessID:   int64(s.BusinessID),
		BusinessName: s.BusinessName,
		ItemID:       int64(s.ItemID),
		ItemName:     s.ItemName,
		Start:        s.Start.UTC(),
		End:          s.End.UTC(),
		Options:      opts,
		Location:     s.Address.RoadAddr,
	}
}
