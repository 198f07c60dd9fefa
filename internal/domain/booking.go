package domain

import "time"

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingCheckedIn  BookingStatus = "checked_in"
	BookingCheckedOut BookingStatus = "checked_out"
	BookingCancelled  BookingStatus = "cancelled"
)

func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCheckedIn, BookingCheckedOut, BookingCancelled:
		return true
	}
	return false
}

// Terminal reports whether a booking may no longer change status.
func (s BookingStatus) Terminal() bool {
	return s == BookingCheckedOut || s == BookingCancelled
}

// Booking is a stay on one room over the half-open date range
// [CheckIn, CheckOut). Total is derived: nights × base rate plus the
// line totals of attached services, recomputed on every mutation that
// touches the lines.
type Booking struct {
	ID          int64         `json:"id"`
	UserID      int64         `json:"user_id" validate:"required"`
	RoomID      int64         `json:"room_id" validate:"required"`
	CheckIn     time.Time     `json:"check_in" validate:"required"`
	CheckOut    time.Time     `json:"check_out" validate:"required"`
	Guests      int           `json:"guests" validate:"required,gte=1"`
	Status      BookingStatus `json:"status"`
	Total       float64       `json:"total"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	CancelledAt *time.Time    `json:"cancelled_at,omitempty"`

	User  *User         `json:"user,omitempty"`
	Room  *Room         `json:"room,omitempty"`
	Lines []ServiceLine `json:"lines,omitempty"`
}

// Active reports whether the booking counts for overlap and
// reference-integrity checks.
func (b *Booking) Active() bool {
	return b.Status != BookingCancelled
}

// Overlaps reports whether two half-open date ranges [s1,e1) and [s2,e2)
// share at least one night. A checkout and a check-in on the same day do
// not conflict, so back-to-back stays are allowed.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// Nights returns the number of nights between check-in and check-out,
// rounding partial days up. For any valid range the result is at least 1.
func Nights(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	n := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		n++
	}
	return n
}
