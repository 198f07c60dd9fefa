package booking

import (
	"context"
	"time"

	"hotelier/internal/domain"
)

// BookingRepository is the reservation ledger.
type BookingRepository interface {
	CreateWithLines(ctx context.Context, b *domain.Booking, lines []domain.ServiceLine) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ActiveByRoom(ctx context.Context, roomID, excludeID int64) ([]domain.Booking, error)
	ActiveByRooms(ctx context.Context, roomIDs []int64) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListByRoom(ctx context.Context, roomID int64) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, at time.Time) error
}

// RoomRepository exposes the room inventory side of the catalog.
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	ListAvailable(ctx context.Context, minGuests int, typeID *int64) ([]domain.Room, error)
}

type RoomTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.RoomType, error)
}

type ServiceItemRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceItem, error)
}

// ServiceLineRepository is the service attachment ledger.
type ServiceLineRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceLine, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.ServiceLine, error)
	Attach(ctx context.Context, l *domain.ServiceLine, newTotal float64) error
	Detach(ctx context.Context, lineID, bookingID int64, newTotal float64) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Notifier pushes ledger events to connected staff; failures are ignored.
type Notifier interface {
	BookingCreated(b *domain.Booking)
	BookingCancelled(b *domain.Booking)
}
