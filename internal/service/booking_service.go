package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Leganyst/booking-core/internal/model"
	"github.com/Leganyst/booking-core/internal/repository"
)

// BookingService создаёт записи и проверяет конфликты.
//
// Коммит защищён трижды: мьютекс на провайдера сериализует проверку и
// вставку внутри процесса, перепроверка конфликта идёт в одной транзакции
// со вставкой, а уникальный индекс (provider_id, start_dt) отбивает
// одновременный старт на тот же момент даже из другого процесса.
type BookingService struct {
	db  *gorm.DB
	log *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewBookingService(db *gorm.DB, log *zap.Logger) *BookingService {
	return &BookingService{
		db:    db,
		log:   log,
		locks: make(map[string]*sync.Mutex),
	}
}

// CheckConflict — грубая проверка: пересекает ли [start, end) какую-либо
// запись провайдера. Буферы услуг здесь не учитываются — это финальный
// заслон, а не генерация слотов.
func (s *BookingService) CheckConflict(ctx context.Context, providerID uuid.UUID, start, end time.Time) (bool, error) {
	repo := repository.NewGormBookingRepository(s.db)
	return repo.HasOverlapping(ctx, providerID.String(), start, end)
}

// CreateBooking перепроверяет конфликт и создаёт запись в одной транзакции.
// Проигрыш гонки возвращает ErrSlotTaken; вызывающая сторона предлагает
// выбрать слот заново.
func (s *BookingService) CreateBooking(
	ctx context.Context,
	userID, providerID, serviceID uuid.UUID,
	start, end time.Time,
	price float64,
	comment string,
) (*model.Booking, error) {
	if !end.After(start) {
		return nil, ErrInvalidInterval
	}

	svc, err := repository.NewGormServiceRepository(s.db).GetByID(ctx, serviceID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	// Инвариант записи: конец = начало + длительность услуги.
	if !end.Equal(start.Add(time.Duration(svc.DurationMins) * time.Minute)) {
		return nil, ErrInvalidInterval
	}

	lock := s.providerLock(providerID.String())
	lock.Lock()
	defer lock.Unlock()

	var booking *model.Booking
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repository.NewGormBookingRepository(tx)

		taken, err := repo.HasOverlapping(ctx, providerID.String(), start, end)
		if err != nil {
			return fmt.Errorf("conflict re-check: %w", err)
		}
		if taken {
			return ErrSlotTaken
		}

		b := &model.Booking{
			UserID:     userID,
			ProviderID: providerID,
			ServiceID:  serviceID,
			StartDt:    start,
			EndDt:      end,
			Price:      price,
			Comment:    comment,
		}
		if err := repo.Create(ctx, b); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlotTaken
			}
			return fmt.Errorf("create booking: %w", err)
		}

		details, _ := json.Marshal(map[string]any{
			"provider_id": providerID.String(),
			"service_id":  serviceID.String(),
			"start_dt":    start.Format(time.RFC3339),
			"end_dt":      end.Format(time.RFC3339),
			"price":       price,
		})
		ev := &model.Event{
			EventType: model.EventTypeBookingCreated,
			UserID:    &userID,
			BookingID: &b.ID,
			Details:   details,
		}
		if err := repository.NewGormEventRepository(tx).Append(ctx, ev); err != nil {
			return fmt.Errorf("append booking event: %w", err)
		}

		booking = b
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			s.recordConflictLost(ctx, userID, providerID, start, end)
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	return booking, nil
}

// GetBooking возвращает запись по ID.
func (s *BookingService) GetBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	b, err := repository.NewGormBookingRepository(s.db).GetByID(ctx, id.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// ListUserBookings возвращает записи клиента, свежие сверху.
func (s *BookingService) ListUserBookings(ctx context.Context, userID uuid.UUID) ([]model.Booking, error) {
	return repository.NewGormBookingRepository(s.db).ListByUser(ctx, userID.String())
}

// providerLock выдаёт мьютекс провайдера, создавая его при первом обращении.
// Карта не чистится: один мьютекс на провайдера живёт до конца процесса.
// TODO: вытеснять записи неактивных провайдеров, если их счёт пойдёт
// на сотни тысяч.
func (s *BookingService) providerLock(providerID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[providerID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[providerID] = lock
	}
	return lock
}

// recordConflictLost фиксирует проигранную гонку в аудите, вне транзакции.
func (s *BookingService) recordConflictLost(ctx context.Context, userID, providerID uuid.UUID, start, end time.Time) {
	details, err := json.Marshal(map[string]any{
		"provider_id": providerID.String(),
		"start_dt":    start.Format(time.RFC3339),
		"end_dt":      end.Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	ev := &model.Event{
		EventType: model.EventTypeBookingConflictLost,
		UserID:    &userID,
		Details:   details,
	}
	if err := repository.NewGormEventRepository(s.db).Append(ctx, ev); err != nil {
		s.log.Warn("append conflict event failed", zap.Error(err))
	}
}
