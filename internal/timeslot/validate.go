package timeslot

import "github.com/google/uuid"

// Причина отклонения нового рабочего периода.
type RejectReason string

const (
	ReasonNone              RejectReason = ""
	ReasonInvalidFormat     RejectReason = "invalid time format"
	ReasonStartNotBeforeEnd RejectReason = "start must be before end"
	ReasonOverlap           RejectReason = "overlaps existing period"
)

// Period — рабочий интервал одного дня недели, как он хранится в базе.
type Period struct {
	ID    uuid.UUID
	Start string // "HH:MM"
	End   string // "HH:MM"
}

// ValidationResult — итог проверки нового периода.
// При ReasonOverlap Conflict указывает на пересёкшийся период.
type ValidationResult struct {
	OK       bool
	Reason   RejectReason
	Conflict *Period
}

// ValidateSchedulePeriod проверяет новый период против уже существующих на
// том же дне недели. excludeID исключает период из проверки при
// редактировании; uuid.Nil — ничего не исключать. Это единственное место,
// где пересекающиеся рабочие периоды отсекаются.
func ValidateSchedulePeriod(existing []Period, newStart, newEnd string, excludeID uuid.UUID) ValidationResult {
	start, err := ParseClock(newStart)
	if err != nil {
		return ValidationResult{Reason: ReasonInvalidFormat}
	}
	end, err := ParseClock(newEnd)
	if err != nil {
		return ValidationResult{Reason: ReasonInvalidFormat}
	}

	if start >= end {
		return ValidationResult{Reason: ReasonStartNotBeforeEnd}
	}

	for _, p := range existing {
		if excludeID != uuid.Nil && p.ID == excludeID {
			continue
		}
		ps, err := ParseClock(p.Start)
		if err != nil {
			continue
		}
		pe, err := ParseClock(p.End)
		if err != nil {
			continue
		}
		if Overlaps(start, end, ps, pe) {
			conflict := p
			return ValidationResult{Reason: ReasonOverlap, Conflict: &conflict}
		}
	}

	return ValidationResult{OK: true}
}
