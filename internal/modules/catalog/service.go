package catalog

import (
	"context"
	"fmt"

	"hotelier/internal/domain"
)

type Service struct {
	roomTypes RoomTypeRepository
	rooms     RoomRepository
	items     ServiceItemRepository
	bookings  BookingCounter
	lines     ServiceLineCounter
}

func NewService(
	roomTypes RoomTypeRepository,
	rooms RoomRepository,
	items ServiceItemRepository,
	bookings BookingCounter,
	lines ServiceLineCounter,
) *Service {
	return &Service{
		roomTypes: roomTypes,
		rooms:     rooms,
		items:     items,
		bookings:  bookings,
		lines:     lines,
	}
}

/* ---------- ROOM TYPES ---------- */

func (s *Service) CreateRoomType(ctx context.Context, req CreateRoomTypeRequest) (*domain.RoomType, error) {
	t := &domain.RoomType{
		Name:        req.Name,
		Description: req.Description,
		Capacity:    req.Capacity,
		BaseRate:    req.BaseRate,
	}
	if err := s.roomTypes.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) UpdateRoomType(ctx context.Context, id int64, req UpdateRoomTypeRequest) (*domain.RoomType, error) {
	t, err := s.roomTypes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			return nil, fmt.Errorf("%w: capacity must be at least 1", domain.ErrValidation)
		}
		t.Capacity = *req.Capacity
	}
	if req.BaseRate != nil {
		if *req.BaseRate < 0 {
			return nil, fmt.Errorf("%w: base rate may not be negative", domain.ErrValidation)
		}
		t.BaseRate = *req.BaseRate
	}

	if err := s.roomTypes.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) ListRoomTypes(ctx context.Context) ([]domain.RoomType, error) {
	return s.roomTypes.List(ctx)
}

func (s *Service) GetRoomType(ctx context.Context, id int64) (*domain.RoomType, error) {
	return s.roomTypes.GetByID(ctx, id)
}

// RoomsByType lists the rooms referencing a type, the query behind the
// type deletion guard.
func (s *Service) RoomsByType(ctx context.Context, typeID int64) ([]domain.Room, error) {
	if _, err := s.roomTypes.GetByID(ctx, typeID); err != nil {
		return nil, err
	}
	return s.rooms.ListByType(ctx, typeID)
}

func (s *Service) DeleteRoomType(ctx context.Context, id int64) error {
	rooms, err := s.RoomsByType(ctx, id)
	if err != nil {
		return err
	}
	if len(rooms) > 0 {
		return fmt.Errorf("%w: %d rooms still reference this room type", domain.ErrReferentialIntegrity, len(rooms))
	}
	return s.roomTypes.Delete(ctx, id)
}

/* ---------- ROOMS ---------- */

func (s *Service) CreateRoom(ctx context.Context, req CreateRoomRequest) (*domain.Room, error) {
	if _, err := s.roomTypes.GetByID(ctx, req.RoomTypeID); err != nil {
		return nil, fmt.Errorf("%w: unknown room type", domain.ErrValidation)
	}

	room := &domain.Room{
		RoomTypeID: req.RoomTypeID,
		Label:      req.Label,
		Status:     domain.RoomAvailable,
		Features:   req.Features,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) UpdateRoom(ctx context.Context, id int64, req UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RoomTypeID != nil {
		if _, err := s.roomTypes.GetByID(ctx, *req.RoomTypeID); err != nil {
			return nil, fmt.Errorf("%w: unknown room type", domain.ErrValidation)
		}
		room.RoomTypeID = *req.RoomTypeID
	}
	if req.Label != nil {
		room.Label = *req.Label
	}
	if req.Features != nil {
		room.Features = *req.Features
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// SetRoomStatus is a management action; the booking engine never flips
// room status on its own.
func (s *Service) SetRoomStatus(ctx context.Context, id int64, status domain.RoomStatus) (*domain.Room, error) {
	if !domain.ValidRoomStatus(status) {
		return nil, fmt.Errorf("%w: unknown room status %q", domain.ErrValidation, status)
	}
	if err := s.rooms.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.rooms.GetByID(ctx, id)
}

func (s *Service) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return s.rooms.List(ctx)
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	return s.rooms.GetByID(ctx, id)
}

func (s *Service) DeleteRoom(ctx context.Context, id int64) error {
	if _, err := s.rooms.GetByID(ctx, id); err != nil {
		return err
	}

	cnt, err := s.bookings.CountActiveByRoom(ctx, id)
	if err != nil {
		return err
	}
	if cnt > 0 {
		return fmt.Errorf("%w: %d non-cancelled bookings still reference this room", domain.ErrReferentialIntegrity, cnt)
	}
	return s.rooms.Delete(ctx, id)
}

/* ---------- SERVICES ---------- */

func (s *Service) CreateService(ctx context.Context, req CreateServiceRequest) (*domain.ServiceItem, error) {
	item := &domain.ServiceItem{
		Name:        req.Name,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) UpdateService(ctx context.Context, id int64, req UpdateServiceRequest) (*domain.ServiceItem, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.UnitPrice != nil {
		if *req.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: unit price may not be negative", domain.ErrValidation)
		}
		item.UnitPrice = *req.UnitPrice
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) ListServices(ctx context.Context) ([]domain.ServiceItem, error) {
	return s.items.List(ctx)
}

func (s *Service) DeleteService(ctx context.Context, id int64) error {
	if _, err := s.items.GetByID(ctx, id); err != nil {
		return err
	}

	cnt, err := s.lines.CountByServiceItem(ctx, id)
	if err != nil {
		return err
	}
	if cnt > 0 {
		return fmt.Errorf("%w: %d service lines still reference this service", domain.ErrReferentialIntegrity, cnt)
	}
	return s.items.Delete(ctx, id)
}
