package model

import (
	"time"

	"github.com/google/uuid"
)

// bookings — подтверждённые записи; после создания неизменяемы.
// Уникальный индекс (provider_id, start_dt) закрывает гонку двух
// одновременных коммитов на один и тот же слот на уровне хранилища.
type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProviderID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookings_provider_start,priority:1"`
	ServiceID  uuid.UUID `gorm:"type:uuid;not null;index"`

	StartDt time.Time `gorm:"type:timestamp with time zone;not null;uniqueIndex:idx_bookings_provider_start,priority:2"`
	EndDt   time.Time `gorm:"type:timestamp with time zone;not null"`

	Price   float64 `gorm:"not null"`
	Comment string  `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`

	User     *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Provider *Provider `gorm:"foreignKey:ProviderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Service  *Service  `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
