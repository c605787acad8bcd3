package service

import (
	"errors"
	"fmt"

	"github.com/Leganyst/booking-core/internal/timeslot"
)

var (
	// ErrNotFound — провайдер, услуга, период или запись не существуют.
	ErrNotFound = errors.New("not found")
	// ErrSlotTaken — слот заняли раньше; вызывающая сторона предлагает
	// выбрать время заново, автоповтора нет.
	ErrSlotTaken = errors.New("slot already taken")
	// ErrInvalidInterval — интервал записи не согласуется с услугой.
	ErrInvalidInterval = errors.New("booking interval does not match service duration")
	// ErrInvalidWeekday — день недели вне диапазона 0..6.
	ErrInvalidWeekday = errors.New("weekday must be in range 0..6")
)

// PeriodRejectedError — отклонение рабочего периода валидатором расписания.
// Данные при этом не меняются; причина возвращается наверх для переспроса.
type PeriodRejectedError struct {
	Result timeslot.ValidationResult
}

func (e *PeriodRejectedError) Error() string {
	if e.Result.Reason == timeslot.ReasonOverlap && e.Result.Conflict != nil {
		return fmt.Sprintf("schedule period rejected: %s (%s-%s)",
			e.Result.Reason, e.Result.Conflict.Start, e.Result.Conflict.End)
	}
	return fmt.Sprintf("schedule period rejected: %s", e.Result.Reason)
}
