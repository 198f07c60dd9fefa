package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelier/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	UserID      int64      `gorm:"column:user_id;index"`
	RoomID      int64      `gorm:"column:room_id;index"`
	CheckIn     time.Time  `gorm:"column:check_in"`
	CheckOut    time.Time  `gorm:"column:check_out"`
	Guests      int        `gorm:"column:guests"`
	Status      string     `gorm:"column:status"`
	Total       float64    `gorm:"column:total"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	CancelledAt *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:          m.ID,
		UserID:      m.UserID,
		RoomID:      m.RoomID,
		CheckIn:     m.CheckIn,
		CheckOut:    m.CheckOut,
		Guests:      m.Guests,
		Status:      domain.BookingStatus(m.Status),
		Total:       m.Total,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		CancelledAt: m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:          b.ID,
		UserID:      b.UserID,
		RoomID:      b.RoomID,
		CheckIn:     b.CheckIn,
		CheckOut:    b.CheckOut,
		Guests:      b.Guests,
		Status:      string(b.Status),
		Total:       b.Total,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
		CancelledAt: b.CancelledAt,
	}
}

// CreateWithLines inserts the booking and all of its initial service
// lines in one transaction: an insert failure anywhere leaves no partial
// booking behind.
func (r *BookingRepository) CreateWithLines(ctx context.Context, b *domain.Booking, lines []domain.ServiceLine) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toBookingModel(b)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}

		for i := range lines {
			lm := toServiceLineModel(&lines[i])
			lm.BookingID = m.ID
			if err := tx.Create(&lm).Error; err != nil {
				return err
			}
			lines[i] = *toDomainServiceLine(lm)
		}

		*b = *toDomainBooking(m)
		b.Lines = lines
		return nil
	})
	return mapBookingWriteError(err)
}

// mapBookingWriteError translates a violation of the
// bookings_room_stay_excl exclusion constraint (SQLSTATE 23P01, raised
// by postgres when two non-cancelled stays overlap) into the domain
// conflict error. Anything else passes through untouched.
func mapBookingWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23P01" {
		return fmt.Errorf("%w: room is not available for the selected dates", domain.ErrConflict)
	}
	return err
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// ActiveByRoom returns the non-cancelled bookings of a room; the
// availability engine applies the overlap predicate to them. A non-zero
// excludeID ignores the booking being edited.
func (r *BookingRepository) ActiveByRoom(ctx context.Context, roomID, excludeID int64) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Where("status <> ?", string(domain.BookingCancelled))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var ms []bookingModel
	tx := q.Order("id ASC").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(ms), nil
}

// ActiveByRooms returns the non-cancelled bookings of the candidate
// rooms in one query.
func (r *BookingRepository) ActiveByRooms(ctx context.Context, roomIDs []int64) ([]domain.Booking, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}

	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Where("room_id IN ?", roomIDs).
		Where("status <> ?", string(domain.BookingCancelled)).
		Order("id ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(ms), nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(ms), nil
}

func (r *BookingRepository) ListByRoom(ctx context.Context, roomID int64) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("id ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(ms), nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
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

func (r *BookingRepository) Cancel(ctx context.Context, id int64, at time.Time) error {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       string(domain.BookingCancelled),
			"cancelled_at": at,
			"updated_at":   at,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountActiveByRoom counts non-cancelled bookings referencing the room;
// the catalog uses it as the room deletion guard.
func (r *BookingRepository) CountActiveByRoom(ctx context.Context, roomID int64) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("room_id = ?", roomID).
		Where("status <> ?", string(domain.BookingCancelled)).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

// CountActiveByUser counts non-cancelled bookings referencing the user;
// identity uses it as the user deletion guard.
func (r *BookingRepository) CountActiveByUser(ctx context.Context, userID int64) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("user_id = ?", userID).
		Where("status <> ?", string(domain.BookingCancelled)).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

func toDomainBookings(ms []bookingModel) []domain.Booking {
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out
}
