package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Leganyst/booking-core/internal/model"
)

// newTestDB открывает изолированную in-memory sqlite-базу с минимальной
// схемой движка. cache=shared держит одну базу на все соединения пула.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	schema := []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			telegram_id INTEGER NOT NULL,
			display_name TEXT,
			contact_phone TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE providers (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			display_name TEXT NOT NULL,
			description TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE services (
			id TEXT PRIMARY KEY,
			provider_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			price REAL NOT NULL,
			duration_mins INTEGER NOT NULL,
			cooling_period_mins INTEGER NOT NULL DEFAULT 0,
			active INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE work_periods (
			id TEXT PRIMARY KEY,
			provider_id TEXT NOT NULL,
			weekday INTEGER NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE bookings (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			provider_id TEXT NOT NULL,
			service_id TEXT NOT NULL,
			start_dt DATETIME NOT NULL,
			end_dt DATETIME NOT NULL,
			price REAL NOT NULL,
			comment TEXT,
			created_at DATETIME,
			UNIQUE (provider_id, start_dt)
		);`,
		`CREATE TABLE events (
			id TEXT PRIMARY KEY,
			event_type TEXT NOT NULL,
			created_at DATETIME,
			user_id TEXT,
			booking_id TEXT,
			details TEXT
		);`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	return db
}

type fixture struct {
	UserID     uuid.UUID
	ProviderID uuid.UUID
	ServiceID  uuid.UUID
}

// seedProvider создаёт клиента, провайдера и услугу с заданными параметрами.
func seedProvider(t *testing.T, db *gorm.DB, durationMins, coolingMins int) fixture {
	t.Helper()

	user := &model.User{TelegramID: 100500, DisplayName: "client"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	providerUser := &model.User{TelegramID: 100501, DisplayName: "master"}
	if err := db.Create(providerUser).Error; err != nil {
		t.Fatalf("seed provider user: %v", err)
	}

	provider := &model.Provider{UserID: providerUser.ID, DisplayName: "master"}
	if err := db.Create(provider).Error; err != nil {
		t.Fatalf("seed provider: %v", err)
	}

	svc := &model.Service{
		ProviderID:        provider.ID,
		Title:             "haircut",
		Price:             1500,
		DurationMins:      durationMins,
		CoolingPeriodMins: coolingMins,
		Active:            true,
	}
	if err := db.Create(svc).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}

	return fixture{UserID: user.ID, ProviderID: provider.ID, ServiceID: svc.ID}
}

func seedWorkPeriod(t *testing.T, db *gorm.DB, providerID uuid.UUID, weekday int, start, end string) *model.WorkPeriod {
	t.Helper()
	p := &model.WorkPeriod{ProviderID: providerID, Weekday: weekday, StartTime: start, EndTime: end}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed work period: %v", err)
	}
	return p
}

func seedBooking(t *testing.T, db *gorm.DB, fx fixture, start, end time.Time) *model.Booking {
	t.Helper()
	b := &model.Booking{
		UserID:     fx.UserID,
		ProviderID: fx.ProviderID,
		ServiceID:  fx.ServiceID,
		StartDt:    start,
		EndDt:      end,
		Price:      1500,
	}
	if err := db.Create(b).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return b
}

func fixedClock(ts time.Time) Clock {
	return func() time.Time { return ts }
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
