package model

import "gorm.io/gorm"

// AutoMigrate выполняет миграцию всех сущностей движка доступности.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Provider{},
		&Service{},
		&WorkPeriod{},
		&Booking{},
		&Event{},
	)
}
