package timeslot

import (
	"sort"
	"time"
)

// Slot — кандидат на запись: интервал ровно под длительность услуги.
type Slot struct {
	Start Clock
	End   Clock
}

// BusyInterval — занятый интервал существующей записи вместе с буфером
// её услуги. Буфер расширяет интервал с обеих сторон при проверке конфликта.
type BusyInterval struct {
	Start       time.Time
	End         time.Time
	CoolingMins int
}

// Шаг сетки кандидатов в минутах.
const slotStepMins = 30

// ComputeSlots генерирует доступные слоты на дату date по рабочим периодам
// periods и занятым интервалам busy. Слот проходит, если:
//   - целиком помещается в рабочий период (частичные слоты не выдаются);
//   - начинается не раньше minStart (порог опережения);
//   - его интервал, расширенный на coolingMins новой услуги, не пересекается
//     ни с одним занятым интервалом, расширенным на буфер своей услуги.
//
// Кандидаты идут с шагом 30 минут от начала периода; при coolingMins > 30
// сетка расширяется до coolingMins. Слот раньше minStart пропускается с
// фиксированным шагом 30 минут, не обрывая обход периода.
// Результат отсортирован по началу; вклад разных периодов не склеивается.
func ComputeSlots(
	periods []Period,
	busy []BusyInterval,
	date time.Time,
	durationMins int,
	coolingMins int,
	minStart time.Time,
) []Slot {
	if durationMins <= 0 {
		return nil
	}

	step := slotStepMins
	if coolingMins > step {
		step = coolingMins
	}

	var slots []Slot

	for _, p := range periods {
		periodStart, err := ParseClock(p.Start)
		if err != nil {
			continue
		}
		periodEnd, err := ParseClock(p.End)
		if err != nil {
			continue
		}

		for cursor := periodStart; cursor < periodEnd; {
			candidateEnd := cursor.Add(durationMins)
			if candidateEnd > periodEnd {
				break
			}

			slotStart := cursor.At(date)
			if slotStart.Before(minStart) {
				// Пропуск, а не останов: более поздний слот этого же
				// периода может ещё подойти.
				cursor = cursor.Add(slotStepMins)
				continue
			}
			slotEnd := candidateEnd.At(date)

			if !conflictsWithBusy(slotStart, slotEnd, coolingMins, busy) {
				slots = append(slots, Slot{Start: cursor, End: candidateEnd})
			}

			cursor = cursor.Add(step)
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start < slots[j].Start
	})

	return slots
}

// conflictsWithBusy проверяет кандидата против занятых интервалов.
// Буфер — взаимный: каждая сторона расширяется на буфер своей услуги.
func conflictsWithBusy(start, end time.Time, coolingMins int, busy []BusyInterval) bool {
	candStart := start.Add(-time.Duration(coolingMins) * time.Minute)
	candEnd := end.Add(time.Duration(coolingMins) * time.Minute)

	for _, b := range busy {
		busyStart := b.Start.Add(-time.Duration(b.CoolingMins) * time.Minute)
		busyEnd := b.End.Add(time.Duration(b.CoolingMins) * time.Minute)
		if OverlapsRange(candStart, candEnd, busyStart, busyEnd) {
			return true
		}
	}
	return false
}
