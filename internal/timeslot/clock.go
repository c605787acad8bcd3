package timeslot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidFormat = errors.New("invalid time format, expected HH:MM")

// Clock — время суток в минутах от полуночи.
// Арифметика не заворачивается через границу суток: для этого движка
// результаты всегда остаются внутри одного календарного дня.
type Clock int

// ParseClock разбирает строку "HH:MM" (час 0..23, минута 0..59).
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, ErrInvalidFormat
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, ErrInvalidFormat
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, ErrInvalidFormat
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, ErrInvalidFormat
	}
	return Clock(h*60 + m), nil
}

// String возвращает время в формате "HH:MM" с ведущими нулями.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Add добавляет минуты.
func (c Clock) Add(mins int) Clock {
	return c + Clock(mins)
}

// Sub вычитает минуты.
func (c Clock) Sub(mins int) Clock {
	return c - Clock(mins)
}

// At совмещает время суток с датой (в часовом поясе даты).
func (c Clock) At(date time.Time) time.Time {
	year, month, day := date.Date()
	return time.Date(year, month, day, 0, int(c), 0, 0, date.Location())
}

// Overlaps проверяет пересечение полуоткрытых интервалов [aStart, aEnd) и
// [bStart, bEnd). Касание границами пересечением не считается.
func Overlaps(aStart, aEnd, bStart, bEnd Clock) bool {
	return aStart < bEnd && aEnd > bStart
}

// OverlapsRange — то же для интервалов во времени.
func OverlapsRange(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
