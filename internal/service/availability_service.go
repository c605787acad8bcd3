package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Leganyst/booking-core/internal/cache"
	"github.com/Leganyst/booking-core/internal/model"
	"github.com/Leganyst/booking-core/internal/repository"
	"github.com/Leganyst/booking-core/internal/timeslot"
)

// Clock — подменяемый источник текущего времени.
type Clock func() time.Time

const (
	// DefaultLeadMinutes — минимальное опережение записи.
	DefaultLeadMinutes = 60

	// maxProbeDays — потолок окна для поиска дней со свободными слотами
	// (пять недель календаря).
	maxProbeDays = 35
)

// AvailabilityService вычисляет доступные слоты по рабочим периодам и
// существующим записям. Каждый вызов считает заново по одному снимку данных.
type AvailabilityService struct {
	periods  repository.WorkPeriodRepository
	bookings repository.BookingRepository
	now      Clock
	leadMins int
	cache    cache.Cache // может быть nil
	cacheTTL time.Duration
	log      *zap.Logger
}

func NewAvailabilityService(
	periods repository.WorkPeriodRepository,
	bookings repository.BookingRepository,
	now Clock,
	log *zap.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		periods:  periods,
		bookings: bookings,
		now:      now,
		leadMins: DefaultLeadMinutes,
		log:      log,
	}
}

// WithCache включает кэширование индикаторов занятости дней.
func (s *AvailabilityService) WithCache(c cache.Cache, ttl time.Duration) *AvailabilityService {
	s.cache = c
	s.cacheTTL = ttl
	return s
}

// WithLeadMinutes переопределяет минимальное опережение записи.
// Значения <= 0 оставляют опережение по умолчанию.
func (s *AvailabilityService) WithLeadMinutes(mins int) *AvailabilityService {
	if mins > 0 {
		s.leadMins = mins
	}
	return s
}

// ComputeSlots возвращает доступные слоты провайдера на дату для услуги с
// заданной длительностью и буфером. Слоты раньше now+leadMins пропускаются.
// Результат упорядочен по началу.
func (s *AvailabilityService) ComputeSlots(
	ctx context.Context,
	providerID uuid.UUID,
	date time.Time,
	durationMins, coolingMins int,
) ([]timeslot.Slot, error) {
	weekday := mondayWeekday(date)

	periods, err := s.periods.ListByProviderWeekday(ctx, providerID.String(), weekday)
	if err != nil {
		return nil, fmt.Errorf("list work periods: %w", err)
	}
	if len(periods) == 0 {
		// Выходной день — единственное условие «закрыто».
		return nil, nil
	}

	dayStart := truncateToDay(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	bookings, err := s.bookings.ListByProviderIntersecting(ctx, providerID.String(), dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	minStart := s.now().Add(time.Duration(s.leadMins) * time.Minute)

	slots := timeslot.ComputeSlots(
		asValidationPeriods(periods),
		asBusyIntervals(bookings),
		date,
		durationMins,
		coolingMins,
		minStart,
	)
	return slots, nil
}

// HasAvailableSlotsOnDate — дешёвая проверка «есть ли хоть один слот»,
// используется для отрисовки индикаторов по дням. При включённом кэше
// результат переживает cacheTTL.
func (s *AvailabilityService) HasAvailableSlotsOnDate(
	ctx context.Context,
	providerID uuid.UUID,
	date time.Time,
	durationMins, coolingMins int,
) (bool, error) {
	key := fmt.Sprintf("availability:%s:%s:%d:%d",
		providerID, date.Format("2006-01-02"), durationMins, coolingMins)

	if s.cache != nil {
		if val, ok := s.cache.Get(ctx, key); ok {
			return val == "1", nil
		}
	}

	slots, err := s.ComputeSlots(ctx, providerID, date, durationMins, coolingMins)
	if err != nil {
		return false, err
	}
	has := len(slots) > 0

	if s.cache != nil {
		val := "0"
		if has {
			val = "1"
		}
		s.cache.Set(ctx, key, val, s.cacheTTL)
	}

	return has, nil
}

// FindBookableDays возвращает дни из окна [from, from+days), на которые у
// провайдера есть хотя бы один слот. Окно ограничено пятью неделями.
func (s *AvailabilityService) FindBookableDays(
	ctx context.Context,
	providerID uuid.UUID,
	from time.Time,
	days int,
	durationMins, coolingMins int,
) ([]time.Time, error) {
	if days > maxProbeDays {
		days = maxProbeDays
	}

	var bookable []time.Time
	for i := 0; i < days; i++ {
		day := truncateToDay(from).AddDate(0, 0, i)
		has, err := s.HasAvailableSlotsOnDate(ctx, providerID, day, durationMins, coolingMins)
		if err != nil {
			return nil, err
		}
		if has {
			bookable = append(bookable, day)
		}
	}
	return bookable, nil
}

// mondayWeekday переводит time.Weekday (воскресенье=0) в нумерацию движка
// (понедельник=0).
func mondayWeekday(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func asValidationPeriods(periods []model.WorkPeriod) []timeslot.Period {
	out := make([]timeslot.Period, 0, len(periods))
	for _, p := range periods {
		out = append(out, timeslot.Period{ID: p.ID, Start: p.StartTime, End: p.EndTime})
	}
	return out
}

func asBusyIntervals(bookings []model.Booking) []timeslot.BusyInterval {
	out := make([]timeslot.BusyInterval, 0, len(bookings))
	for _, b := range bookings {
		cooling := 0
		if b.Service != nil {
			cooling = b.Service.CoolingPeriodMins
		}
		out = append(out, timeslot.BusyInterval{
			Start:       b.StartDt,
			End:         b.EndDt,
			CoolingMins: cooling,
		})
	}
	return out
}
