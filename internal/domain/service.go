package domain

import "time"

// ServiceItem is a catalog entry for an add-on service (breakfast,
// parking, spa access).
type ServiceItem struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description,omitempty"`
	UnitPrice   float64   `json:"unit_price" validate:"required,gte=0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ServiceLine binds a quantity of a catalog service to one booking.
// LineTotal is captured at attachment time and never recomputed from the
// catalog, so later price edits do not rewrite history.
type ServiceLine struct {
	ID            int64     `json:"id"`
	BookingID     int64     `json:"booking_id"`
	ServiceItemID int64     `json:"service_item_id"`
	Quantity      int       `json:"quantity" validate:"required,gte=1"`
	LineTotal     float64   `json:"line_total"`
	CreatedAt     time.Time `json:"created_at"`

	ServiceItem *ServiceItem `json:"service_item,omitempty"`
}
