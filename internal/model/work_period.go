package model

import (
	"time"

	"github.com/google/uuid"
)

// work_periods — еженедельные рабочие интервалы провайдера.
// Инвариант: на одной паре (provider_id, weekday) интервалы не пересекаются,
// это гарантирует валидация перед записью.
type WorkPeriod struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	ProviderID uuid.UUID `gorm:"type:uuid;not null;index:idx_work_periods_provider_weekday,priority:1"`

	// Понедельник=0 ... воскресенье=6.
	Weekday int `gorm:"not null;index:idx_work_periods_provider_weekday,priority:2"`

	// Время в формате "HH:MM", start < end.
	StartTime string `gorm:"type:varchar(5);not null"`
	EndTime   string `gorm:"type:varchar(5);not null"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Provider *Provider `gorm:"foreignKey:ProviderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
