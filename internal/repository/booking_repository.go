package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Leganyst/booking-core/internal/model"
)

type BookingRepository interface {
	// Создать новую запись.
	Create(ctx context.Context, booking *model.Booking) error
	// Получить запись по ID вместе с услугой.
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	// Записи провайдера, чьи интервалы пересекают [from, to).
	// Услуга подгружается ради её буфера.
	ListByProviderIntersecting(ctx context.Context, providerID string, from, to time.Time) ([]model.Booking, error)
	// Все записи клиента, свежие сверху.
	ListByUser(ctx context.Context, userID string) ([]model.Booking, error)
	// Есть ли запись провайдера, пересекающая [start, end) без буферов.
	HasOverlapping(ctx context.Context, providerID string, start, end time.Time) (bool, error)
}

// Реализация на GORM.
type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *GormBookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	var b model.Booking
	if err := r.db.WithContext(ctx).Preload("Service").First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *GormBookingRepository) ListByProviderIntersecting(
	ctx context.Context,
	providerID string,
	from, to time.Time,
) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Preload("Service").
		Where("provider_id = ?", providerID).
		Where("start_dt < ? AND end_dt > ?", to, from).
		Order("start_dt ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *GormBookingRepository) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Preload("Service").
		Where("user_id = ?", userID).
		Order("start_dt DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *GormBookingRepository) HasOverlapping(
	ctx context.Context,
	providerID string,
	start, end time.Time,
) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("provider_id = ?", providerID).
		// Полуоткрытое пересечение: начало раньше конца чужого интервала
		// и конец позже его начала.
		Where("start_dt < ? AND end_dt > ?", end, start)

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
