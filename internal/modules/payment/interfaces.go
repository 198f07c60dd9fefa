package payment

import (
	"context"
	"time"

	"hotelier/internal/domain"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment, confirmBooking bool) error
	UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus, confirmBooking bool) (*domain.Payment, error)
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error)
}

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type Notifier interface {
	PaymentRecorded(p *domain.Payment)
}

// nowFunc lets tests pin the default payment date.
type nowFunc func() time.Time
