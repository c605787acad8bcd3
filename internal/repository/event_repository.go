package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Leganyst/booking-core/internal/model"
)

type EventRepository interface {
	// Добавить событие аудита; записи только дописываются.
	Append(ctx context.Context, event *model.Event) error
	// События по записи, свежие сверху.
	ListByBooking(ctx context.Context, bookingID string) ([]model.Event, error)
}

type GormEventRepository struct {
	db *gorm.DB
}

func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

func (r *GormEventRepository) Append(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *GormEventRepository) ListByBooking(ctx context.Context, bookingID string) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
