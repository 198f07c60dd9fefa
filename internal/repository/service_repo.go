package repository

import (
	"context"
	"errors"
	"time"

	"hotelier/internal/domain"

	"gorm.io/gorm"
)

type ServiceItemRepository struct {
	db *gorm.DB
}

func NewServiceItemRepository(db *gorm.DB) *ServiceItemRepository {
	return &ServiceItemRepository{db: db}
}

type serviceItemModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name"`
	Description *string   `gorm:"column:description"`
	UnitPrice   float64   `gorm:"column:unit_price"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (serviceItemModel) TableName() string { return "service_items" }

func toDomainServiceItem(m serviceItemModel) *domain.ServiceItem {
	var desc string
	if m.Description != nil {
		desc = *m.Description
	}

	return &domain.ServiceItem{
		ID:          m.ID,
		Name:        m.Name,
		Description: desc,
		UnitPrice:   m.UnitPrice,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toServiceItemModel(s *domain.ServiceItem) serviceItemModel {
	var desc *string
	if s.Description != "" {
		v := s.Description
		desc = &v
	}

	return serviceItemModel{
		ID:          s.ID,
		Name:        s.Name,
		Description: desc,
		UnitPrice:   s.UnitPrice,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (r *ServiceItemRepository) Create(ctx context.Context, s *domain.ServiceItem) error {
	m := toServiceItemModel(s)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainServiceItem(m)
	return nil
}

func (r *ServiceItemRepository) Update(ctx context.Context, s *domain.ServiceItem) error {
	m := toServiceItemModel(s)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainServiceItem(m)
	return nil
}

func (r *ServiceItemRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceItem, error) {
	var m serviceItemModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainServiceItem(m), nil
}

func (r *ServiceItemRepository) List(ctx context.Context) ([]domain.ServiceItem, error) {
	var ms []serviceItemModel
	tx := r.db.WithContext(ctx).Order("id ASC").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.ServiceItem, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainServiceItem(m))
	}
	return out, nil
}

func (r *ServiceItemRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&serviceItemModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type ServiceLineRepository struct {
	db *gorm.DB
}

func NewServiceLineRepository(db *gorm.DB) *ServiceLineRepository {
	return &ServiceLineRepository{db: db}
}

type serviceLineModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	BookingID     int64     `gorm:"column:booking_id;index"`
	ServiceItemID int64     `gorm:"column:service_item_id;index"`
	Quantity      int       `gorm:"column:quantity"`
	LineTotal     float64   `gorm:"column:line_total"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (serviceLineModel) TableName() string { return "service_lines" }

func toDomainServiceLine(m serviceLineModel) *domain.ServiceLine {
	return &domain.ServiceLine{
		ID:            m.ID,
		BookingID:     m.BookingID,
		ServiceItemID: m.ServiceItemID,
		Quantity:      m.Quantity,
		LineTotal:     m.LineTotal,
		CreatedAt:     m.CreatedAt,
	}
}

func toServiceLineModel(l *domain.ServiceLine) serviceLineModel {
	return serviceLineModel{
		ID:            l.ID,
		BookingID:     l.BookingID,
		ServiceItemID: l.ServiceItemID,
		Quantity:      l.Quantity,
		LineTotal:     l.LineTotal,
		CreatedAt:     l.CreatedAt,
	}
}

func (r *ServiceLineRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceLine, error) {
	var m serviceLineModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainServiceLine(m), nil
}

func (r *ServiceLineRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.ServiceLine, error) {
	var ms []serviceLineModel
	tx := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("id ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.ServiceLine, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainServiceLine(m))
	}
	return out, nil
}

// Attach inserts the line and writes the freshly recomputed booking
// total in one transaction, so the derived-total invariant holds after
// every mutation.
func (r *ServiceLineRepository) Attach(ctx context.Context, l *domain.ServiceLine, newTotal float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toServiceLineModel(l)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}

		if err := updateBookingTotal(tx, m.BookingID, newTotal); err != nil {
			return err
		}

		*l = *toDomainServiceLine(m)
		return nil
	})
}

// Detach removes the line and writes the recomputed booking total in
// one transaction.
func (r *ServiceLineRepository) Detach(ctx context.Context, lineID, bookingID int64, newTotal float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&serviceLineModel{}, lineID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		return updateBookingTotal(tx, bookingID, newTotal)
	})
}

// CountByServiceItem counts lines referencing a catalog service; the
// catalog uses it as the service deletion guard.
func (r *ServiceLineRepository) CountByServiceItem(ctx context.Context, serviceItemID int64) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&serviceLineModel{}).
		Where("service_item_id = ?", serviceItemID).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

func updateBookingTotal(tx *gorm.DB, bookingID int64, total float64) error {
	res := tx.Model(&bookingModel{}).
		Where("id = ?", bookingID).
		Updates(map[string]interface{}{
			"total":      total,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
