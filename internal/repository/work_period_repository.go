package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Leganyst/booking-core/internal/model"
)

type WorkPeriodRepository interface {
	// Все периоды провайдера.
	ListByProvider(ctx context.Context, providerID string) ([]model.WorkPeriod, error)
	// Периоды провайдера на конкретный день недели (понедельник=0).
	ListByProviderWeekday(ctx context.Context, providerID string, weekday int) ([]model.WorkPeriod, error)
	// Найти период по ID.
	GetByID(ctx context.Context, id string) (*model.WorkPeriod, error)
	// Создать период.
	Create(ctx context.Context, period *model.WorkPeriod) error
	// Обновить границы периода.
	UpdateTimes(ctx context.Context, id string, startTime, endTime string) error
	// Удалить период; false — период не найден.
	DeleteByID(ctx context.Context, id string) (bool, error)
	// Удалить все периоды провайдера на день недели; возвращает число удалённых.
	DeleteByProviderWeekday(ctx context.Context, providerID string, weekday int) (int64, error)
}

// Реализация на GORM.
type GormWorkPeriodRepository struct {
	db *gorm.DB
}

func NewGormWorkPeriodRepository(db *gorm.DB) *GormWorkPeriodRepository {
	return &GormWorkPeriodRepository{db: db}
}

func (r *GormWorkPeriodRepository) ListByProvider(ctx context.Context, providerID string) ([]model.WorkPeriod, error) {
	var periods []model.WorkPeriod
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("weekday ASC, start_time ASC").
		Find(&periods).Error
	if err != nil {
		return nil, err
	}
	return periods, nil
}

func (r *GormWorkPeriodRepository) ListByProviderWeekday(ctx context.Context, providerID string, weekday int) ([]model.WorkPeriod, error) {
	var periods []model.WorkPeriod
	err := r.db.WithContext(ctx).
		Where("provider_id = ? AND weekday = ?", providerID, weekday).
		Order("start_time ASC").
		Find(&periods).Error
	if err != nil {
		return nil, err
	}
	return periods, nil
}

func (r *GormWorkPeriodRepository) GetByID(ctx context.Context, id string) (*model.WorkPeriod, error) {
	var p model.WorkPeriod
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormWorkPeriodRepository) Create(ctx context.Context, period *model.WorkPeriod) error {
	return r.db.WithContext(ctx).Create(period).Error
}

func (r *GormWorkPeriodRepository) UpdateTimes(ctx context.Context, id string, startTime, endTime string) error {
	return r.db.WithContext(ctx).
		Model(&model.WorkPeriod{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"start_time": startTime,
			"end_time":   endTime,
		}).Error
}

func (r *GormWorkPeriodRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.WorkPeriod{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormWorkPeriodRepository) DeleteByProviderWeekday(ctx context.Context, providerID string, weekday int) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("provider_id = ? AND weekday = ?", providerID, weekday).
		Delete(&model.WorkPeriod{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
