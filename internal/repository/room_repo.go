package repository

import (
	"context"
	"errors"
	"time"

	"hotelier/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	RoomTypeID int64     `gorm:"column:room_type_id;index"`
	Label      string    `gorm:"column:label"`
	Status     string    `gorm:"column:status"`
	Features   *string   `gorm:"column:features"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) *domain.Room {
	var features string
	if m.Features != nil {
		features = *m.Features
	}

	return &domain.Room{
		ID:         m.ID,
		RoomTypeID: m.RoomTypeID,
		Label:      m.Label,
		Status:     domain.RoomStatus(m.Status),
		Features:   features,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toRoomModel(r *domain.Room) roomModel {
	var features *string
	if r.Features != "" {
		v := r.Features
		features = &v
	}

	return roomModel{
		ID:         r.ID,
		RoomTypeID: r.RoomTypeID,
		Label:      r.Label,
		Status:     string(r.Status),
		Features:   features,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	var ms []roomModel
	tx := r.db.WithContext(ctx).Order("id ASC").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRooms(ms), nil
}

// ListByType returns the rooms referencing a room type; the catalog uses
// it as the deletion guard for types.
func (r *RoomRepository) ListByType(ctx context.Context, typeID int64) ([]domain.Room, error) {
	var ms []roomModel
	tx := r.db.WithContext(ctx).
		Where("room_type_id = ?", typeID).
		Order("id ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRooms(ms), nil
}

// ListAvailable returns rooms in status available whose type holds at
// least minGuests, optionally narrowed to one type, ordered by room id
// so availability results are deterministic.
func (r *RoomRepository) ListAvailable(ctx context.Context, minGuests int, typeID *int64) ([]domain.Room, error) {
	q := r.db.WithContext(ctx).
		Joins("JOIN room_types ON room_types.id = rooms.room_type_id").
		Where("rooms.status = ?", string(domain.RoomAvailable)).
		Where("room_types.capacity >= ?", minGuests)
	if typeID != nil {
		q = q.Where("rooms.room_type_id = ?", *typeID)
	}

	var ms []roomModel
	tx := q.Order("rooms.id ASC").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRooms(ms), nil
}

func (r *RoomRepository) UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&roomModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&roomModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func toDomainRooms(ms []roomModel) []domain.Room {
	out := make([]domain.Room, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainRoom(m))
	}
	return out
}
