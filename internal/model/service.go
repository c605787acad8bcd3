package model

import (
	"time"

	"github.com/google/uuid"
)

// services
type Service struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	ProviderID uuid.UUID `gorm:"type:uuid;not null;index"`

	Title       string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`

	Price float64 `gorm:"not null"`

	// Длительность услуги в минутах.
	DurationMins int `gorm:"not null"`

	// Обязательный буфер между записями этой услуги и соседними, в минутах.
	CoolingPeriodMins int `gorm:"not null;default:0"`

	Active bool `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Provider *Provider `gorm:"foreignKey:ProviderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
