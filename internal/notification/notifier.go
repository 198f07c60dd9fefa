package notification

import (
	"time"

	"hotelier/internal/domain"
)

// Notifier translates ledger changes into hub events. It satisfies the
// notifier ports of the booking and payment services.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) BookingCreated(b *domain.Booking) {
	n.hub.Broadcast(Event{
		Type:      EventBookingCreated,
		BookingID: b.ID,
		RoomID:    b.RoomID,
		UserID:    b.UserID,
		Amount:    b.Total,
		At:        time.Now().UTC(),
	})
}

func (n *Notifier) BookingCancelled(b *domain.Booking) {
	n.hub.Broadcast(Event{
		Type:      EventBookingCancelled,
		BookingID: b.ID,
		RoomID:    b.RoomID,
		UserID:    b.UserID,
		At:        time.Now().UTC(),
	})
}

func (n *Notifier) PaymentRecorded(p *domain.Payment) {
	n.hub.Broadcast(Event{
		Type:      EventPaymentRecorded,
		BookingID: p.BookingID,
		Amount:    p.Amount,
		At:        time.Now().UTC(),
	})
}
