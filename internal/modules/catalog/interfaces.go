package catalog

import (
	"context"

	"hotelier/internal/domain"
)

type RoomTypeRepository interface {
	Create(ctx context.Context, t *domain.RoomType) error
	Update(ctx context.Context, t *domain.RoomType) error
	GetByID(ctx context.Context, id int64) (*domain.RoomType, error)
	List(ctx context.Context) ([]domain.RoomType, error)
	Delete(ctx context.Context, id int64) error
}

type RoomRepository interface {
	Create(ctx context.Context, r *domain.Room) error
	Update(ctx context.Context, r *domain.Room) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context) ([]domain.Room, error)
	ListByType(ctx context.Context, typeID int64) ([]domain.Room, error)
	UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error
	Delete(ctx context.Context, id int64) error
}

type ServiceItemRepository interface {
	Create(ctx context.Context, s *domain.ServiceItem) error
	Update(ctx context.Context, s *domain.ServiceItem) error
	GetByID(ctx context.Context, id int64) (*domain.ServiceItem, error)
	List(ctx context.Context) ([]domain.ServiceItem, error)
	Delete(ctx context.Context, id int64) error
}

// BookingCounter answers "is this entity still referenced by the ledger".
type BookingCounter interface {
	CountActiveByRoom(ctx context.Context, roomID int64) (int64, error)
}

type ServiceLineCounter interface {
	CountByServiceItem(ctx context.Context, serviceItemID int64) (int64, error)
}
