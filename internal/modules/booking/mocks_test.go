package booking

import (
	"context"
	"time"

	"hotelier/internal/domain"

	"github.com/stretchr/testify/mock"
)

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) CreateWithLines(ctx context.Context, b *domain.Booking, lines []domain.ServiceLine) error {
	args := m.Called(ctx, b, lines)
	return args.Error(0)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) ActiveByRoom(ctx context.Context, roomID, excludeID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, roomID, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) ActiveByRooms(ctx context.Context, roomIDs []int64) ([]domain.Booking, error) {
	args := m.Called(ctx, roomIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) ListByRoom(ctx context.Context, roomID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockBookingRepo) Cancel(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

type mockRoomRepo struct{ mock.Mock }

func (m *mockRoomRepo) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *mockRoomRepo) ListAvailable(ctx context.Context, minGuests int, typeID *int64) ([]domain.Room, error) {
	args := m.Called(ctx, minGuests, typeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

type mockRoomTypeRepo struct{ mock.Mock }

func (m *mockRoomTypeRepo) GetByID(ctx context.Context, id int64) (*domain.RoomType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoomType), args.Error(1)
}

type mockItemRepo struct{ mock.Mock }

func (m *mockItemRepo) GetByID(ctx context.Context, id int64) (*domain.ServiceItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceItem), args.Error(1)
}

type mockLineRepo struct{ mock.Mock }

func (m *mockLineRepo) GetByID(ctx context.Context, id int64) (*domain.ServiceLine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceLine), args.Error(1)
}

func (m *mockLineRepo) ListByBooking(ctx context.Context, bookingID int64) ([]domain.ServiceLine, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServiceLine), args.Error(1)
}

func (m *mockLineRepo) Attach(ctx context.Context, l *domain.ServiceLine, newTotal float64) error {
	args := m.Called(ctx, l, newTotal)
	return args.Error(0)
}

func (m *mockLineRepo) Detach(ctx context.Context, lineID, bookingID int64, newTotal float64) error {
	args := m.Called(ctx, lineID, bookingID, newTotal)
	return args.Error(0)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) BookingCreated(b *domain.Booking)   { m.Called(b) }
func (m *mockNotifier) BookingCancelled(b *domain.Booking) { m.Called(b) }
