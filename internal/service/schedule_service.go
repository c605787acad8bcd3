package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Leganyst/booking-core/internal/model"
	"github.com/Leganyst/booking-core/internal/repository"
	"github.com/Leganyst/booking-core/internal/timeslot"
)

// ScheduleService управляет еженедельными рабочими периодами провайдера.
// Любое добавление и редактирование проходит через валидатор — иначе
// пересекающиеся периоды попали бы в базу.
type ScheduleService struct {
	periods repository.WorkPeriodRepository
	events  repository.EventRepository
	log     *zap.Logger
}

func NewScheduleService(
	periods repository.WorkPeriodRepository,
	events repository.EventRepository,
	log *zap.Logger,
) *ScheduleService {
	return &ScheduleService{periods: periods, events: events, log: log}
}

// ListPeriods возвращает все периоды провайдера.
func (s *ScheduleService) ListPeriods(ctx context.Context, providerID uuid.UUID) ([]model.WorkPeriod, error) {
	return s.periods.ListByProvider(ctx, providerID.String())
}

// ListPeriodsForWeekday возвращает периоды провайдера на день недели.
func (s *ScheduleService) ListPeriodsForWeekday(ctx context.Context, providerID uuid.UUID, weekday int) ([]model.WorkPeriod, error) {
	if weekday < 0 || weekday > 6 {
		return nil, ErrInvalidWeekday
	}
	return s.periods.ListByProviderWeekday(ctx, providerID.String(), weekday)
}

// AddPeriod проверяет и сохраняет новый рабочий период.
func (s *ScheduleService) AddPeriod(ctx context.Context, providerID uuid.UUID, weekday int, start, end string) (*model.WorkPeriod, error) {
	if weekday < 0 || weekday > 6 {
		return nil, ErrInvalidWeekday
	}

	siblings, err := s.periods.ListByProviderWeekday(ctx, providerID.String(), weekday)
	if err != nil {
		return nil, fmt.Errorf("list sibling periods: %w", err)
	}

	res := timeslot.ValidateSchedulePeriod(asValidationPeriods(siblings), start, end, uuid.Nil)
	if !res.OK {
		return nil, &PeriodRejectedError{Result: res}
	}

	period := &model.WorkPeriod{
		ProviderID: providerID,
		Weekday:    weekday,
		StartTime:  start,
		EndTime:    end,
	}
	if err := s.periods.Create(ctx, period); err != nil {
		return nil, fmt.Errorf("create work period: %w", err)
	}

	s.appendScheduleEvent(ctx, providerID, "period_added", period)
	return period, nil
}

// UpdatePeriod меняет границы существующего периода, перепроверяя его
// против остальных периодов того же дня (сам период исключается).
func (s *ScheduleService) UpdatePeriod(ctx context.Context, periodID uuid.UUID, start, end string) (*model.WorkPeriod, error) {
	period, err := s.periods.GetByID(ctx, periodID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get work period: %w", err)
	}

	siblings, err := s.periods.ListByProviderWeekday(ctx, period.ProviderID.String(), period.Weekday)
	if err != nil {
		return nil, fmt.Errorf("list sibling periods: %w", err)
	}

	res := timeslot.ValidateSchedulePeriod(asValidationPeriods(siblings), start, end, periodID)
	if !res.OK {
		return nil, &PeriodRejectedError{Result: res}
	}

	if err := s.periods.UpdateTimes(ctx, periodID.String(), start, end); err != nil {
		return nil, fmt.Errorf("update work period: %w", err)
	}

	period.StartTime = start
	period.EndTime = end
	s.appendScheduleEvent(ctx, period.ProviderID, "period_updated", period)
	return period, nil
}

// DeletePeriod удаляет период по ID. Уже сделанные записи не трогает:
// изменение расписания не отменяет существующие брони.
func (s *ScheduleService) DeletePeriod(ctx context.Context, periodID uuid.UUID) error {
	ok, err := s.periods.DeleteByID(ctx, periodID.String())
	if err != nil {
		return fmt.Errorf("delete work period: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// ClearWeekday удаляет все периоды провайдера на день недели.
func (s *ScheduleService) ClearWeekday(ctx context.Context, providerID uuid.UUID, weekday int) (int64, error) {
	if weekday < 0 || weekday > 6 {
		return 0, ErrInvalidWeekday
	}
	deleted, err := s.periods.DeleteByProviderWeekday(ctx, providerID.String(), weekday)
	if err != nil {
		return 0, fmt.Errorf("clear weekday: %w", err)
	}
	return deleted, nil
}

// appendScheduleEvent пишет событие аудита; сбой аудита не валит операцию.
func (s *ScheduleService) appendScheduleEvent(ctx context.Context, providerID uuid.UUID, action string, period *model.WorkPeriod) {
	if s.events == nil {
		return
	}
	details, err := json.Marshal(map[string]any{
		"action":      action,
		"provider_id": providerID.String(),
		"weekday":     period.Weekday,
		"start_time":  period.StartTime,
		"end_time":    period.EndTime,
	})
	if err != nil {
		return
	}
	ev := &model.Event{
		EventType: model.EventTypeScheduleUpdated,
		Details:   details,
	}
	if err := s.events.Append(ctx, ev); err != nil {
		s.log.Warn("append schedule event failed", zap.Error(err))
	}
}
