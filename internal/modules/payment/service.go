package payment

import (
	"context"
	"fmt"
	"math"
	"time"

	"hotelier/internal/domain"
)

const dateLayout = "2006-01-02"

type Service struct {
	payments PaymentRepository
	bookings BookingRepository
	notifier Notifier
	now      nowFunc
}

func NewService(payments PaymentRepository, bookings BookingRepository, notifier Notifier) *Service {
	return &Service{
		payments: payments,
		bookings: bookings,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Record appends a payment to a booking's ledger. A payment recorded as
// paid confirms the booking in the same transaction, whatever state the
// booking was in.
func (s *Service) Record(ctx context.Context, req RecordPaymentRequest) (*domain.Payment, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}

	method := domain.PaymentMethod(req.Method)
	if !domain.ValidPaymentMethod(method) {
		return nil, fmt.Errorf("%w: unknown payment method %q", domain.ErrValidation, req.Method)
	}

	status := domain.PaymentPending
	if req.Status != "" {
		status = domain.PaymentStatus(req.Status)
		if !domain.ValidPaymentStatus(status) {
			return nil, fmt.Errorf("%w: unknown payment status %q", domain.ErrValidation, req.Status)
		}
	}

	date := s.now()
	if req.Date != "" {
		parsed, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date, expected YYYY-MM-DD", domain.ErrValidation)
		}
		date = parsed.UTC()
	}

	if _, err := s.bookings.GetByID(ctx, req.BookingID); err != nil {
		return nil, fmt.Errorf("%w: unknown booking", domain.ErrValidation)
	}

	p := &domain.Payment{
		BookingID: req.BookingID,
		Amount:    roundMoney(req.Amount),
		Method:    method,
		Date:      date,
		Status:    status,
		CreatedAt: s.now(),
		UpdatedAt: s.now(),
	}

	if err := s.payments.Create(ctx, p, status == domain.PaymentPaid); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.PaymentRecorded(p)
	}
	return p, nil
}

// UpdateStatus rewrites a payment's status. A transition into paid
// confirms the booking; leaving paid does not roll anything back.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Payment, error) {
	if !domain.ValidPaymentStatus(status) {
		return nil, fmt.Errorf("%w: unknown payment status %q", domain.ErrValidation, status)
	}

	current, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newlyPaid := status == domain.PaymentPaid && current.Status != domain.PaymentPaid
	return s.payments.UpdateStatus(ctx, id, status, newlyPaid)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Payment, error) {
	return s.payments.GetByID(ctx, id)
}

func (s *Service) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	if _, err := s.bookings.GetByID(ctx, bookingID); err != nil {
		return nil, err
	}
	return s.payments.ListByBooking(ctx, bookingID)
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
