package reservations

import "time"

// Reservation is the stored shape of a vendor booking. ID is the vendor
// booking id and the primary key.
type Reservation struct {
	ID           int64     `json:"id"`
	BusinessID   int64     `json:"business_id"`
	BusinessName string    `json:"business_name"`
	ItemID       int64     `json:"item_id"`
	ItemName     string    `json:"item_name"`
	Start        time.Time `json:"start_date_time"`
	End          time.Time `json:"end_date_time"`
	Options      []string  `json:"options"`
	Location     string    `json:"location"`
}
