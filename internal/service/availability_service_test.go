package service

import (
	"context"
	"testing"
	"time"

	"github.com/Leganyst/booking-core/internal/cache"
	"github.com/Leganyst/booking-core/internal/repository"
	"github.com/Leganyst/booking-core/internal/timeslot"
	"gorm.io/gorm"
)

// Понедельник.
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

// Накануне в полдень: порог опережения не задевает слоты понедельника.
var sundayNoon = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newAvailability(db *gorm.DB, now Clock) *AvailabilityService {
	return NewAvailabilityService(
		repository.NewGormWorkPeriodRepository(db),
		repository.NewGormBookingRepository(db),
		now,
		testLogger(),
	)
}

func slotsAsStrings(slots []timeslot.Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start.String()+"-"+s.End.String())
	}
	return out
}

func TestAvailabilityService_DayOff(t *testing.T) {
	db := newTestDB(t)
	fx := seedProvider(t, db, 60, 0)
	// Периоды только на вторник; понедельник — выходной.
	seedWorkPeriod(t, db, fx.ProviderID, 1, "09:00", "12:00")

	svc := newAvailability(db, fixedClock(sundayNoon))

	slots, err := svc.ComputeSlots(context.Background(), fx.ProviderID, monday, 60, 0)
	if err != nil {
		t.Fatalf("ComputeSlots: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots on a day off, got %v", slotsAsStrings(slots))
	}
}

func TestAvailabilityService_BasicGrid(t *testing.T) {
	db := newTestDB(t)
	fx := seedProvider(t, db, 60, 0)
	seedWorkPeriod(t, db, fx.ProviderID, 0, "09:00", "12:00")

	svc := newAvailability(db, fixedClock(sundayNoon))

	slots, err := svc.ComputeSlots(context.Background(), fx.ProviderID, monday, 60, 0)
	if err != nil {
		t.Fatalf("ComputeSlots: %v", err)
	}

	want := []string{"09:00-10:00", "09:30-10:30", "10:00-11:00", "10:30-11:30", "11:00-12:00"}
	got := slotsAsStrings(slots)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("slot %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAvailabilityService_BookingCoolingExcludesCandidates(t *testing.T) {
	db := newTestDB(t)
	// Услуга существующей записи имеет буфер 15 минут.
	fx := seedProvider(t, db, 60, 15)
	seedWorkPeriod(t, db, fx.ProviderID, 0, "09:00", "13:00")
	seedBooking(t, db, fx,
		time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC),
	)

	svc := newAvailability(db, fixedClock(sundayNoon))

	// Кандидатская услуга без буфера: занятость записи расширена до
	// 09:45–11:15, выживают только кандидаты с 11:30.
	slots, err := svc.ComputeSlots(context.Background(), fx.ProviderID, monday, 60, 0)
	if err != nil {
		t.Fatalf("ComputeSlots: %v", err)
	}

	got := slotsAsStrings(slots)
	want := []string{"11:30-12:30", "12:00-13:00"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for _, s := range got {
		if s == "09:30-10:30" {
			t.Fatalf("candidate 09:30-10:30 must be excluded")
		}
	}
}

func TestAvailabilityService_LeadTimeSkips(t *testing.T) {
	db := newTestDB(t)
	fx := seedProvider(t, db, 60, 0)
	seedWorkPeriod(t, db, fx.ProviderID, 0, "09:00", "12:00")

	// Сейчас 09:15 того же понедельника; с опережением 60 минут
	// порог — 10:15.
	now := time.Date(2025, 6, 2, 9, 15, 0, 0, time.UTC)
	svc := newAvailability(db, fixedClock(now))

	slots, err := svc.ComputeSlots(context.Background(), fx.ProviderID, monday, 60, 0)
	if err != nil {
		t.Fatalf("ComputeSlots: %v", err)
	}

	got := slotsAsStrings(slots)
	want := []string{"10:30-11:30", "11:00-12:00"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAvailabilityService_ConfiguredLeadShiftsGrid(t *testing.T) {
	db := newTestDB(t)
	fx := seedProvider(t, db, 60, 0)
	seedWorkPeriod(t, db, fx.ProviderID, 0, "09:00", "12:00")

	// То же «сейчас», что и в тесте выше, но опережение 90 минут
	// поднимает порог до 10:45.
	now := time.Date(2025, 6, 2, 9, 15, 0, 0, time.UTC)
	svc := newAvailability(db, fixedClock(now)).WithLeadMinutes(90)

	slots, err := svc.ComputeSlots(context.Background(), fx.ProviderID, monday, 60, 0)
	if err != nil {
		t.Fatalf("ComputeSlots: %v", err)
	}

	got := slotsAsStrings(slots)
	want := []string{"11:00-12:00"}
	if len(got) != len(want) || got[0] != want[0] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAvailabilityService_ProbeMatchesComputeSlots(t *testing.T) {
	db := newTestDB(t)
	fx := seedProvider(t, db, 60, 0)
	seedWorkPeriod(t, db, fx.ProviderID, 0, "09:00", "12:00")

	svc := newAvailability(db, fixedClock(sundayNoon))
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		slots, err := svc.ComputeSlots(ctx, fx.ProviderID, day, 60, 0)
		if err != nil {
			t.Fatalf("ComputeSlots(%v): %v", day, err)
		}
		has, err := svc.HasAvailableSlotsOnDate(ctx, fx.ProviderID, day, 60, 0)
		if err != nil {
			t.Fatalf("HasAvailableSlotsOnDate(%v): %v", day, err)
		}
		if has != (len(slots) > 0) {
			t.Fatalf("day %v: probe = %v, but ComputeSlots returned %d slots", day, has, len(slots))
		}
	}
}

func TestAvailabilityService_ProbeUsesCache(t *testing.T) {
	db := newTestDB(t)
	fx := seedProvider(t, db, 60, 0)
	// Периодов нет вовсе — без кэша проверка вернула бы false.

	mem := cache.NewMemoryCache()
	svc := newAvailability(db, fixedClock(sundayNoon)).WithCache(mem, time.Minute)
	ctx := context.Background()

	key := "availability:" + fx.ProviderID.String() + ":2025-06-02:60:0"
	mem.Set(ctx, key, "1", time.Minute)

	has, err := svc.HasAvailableSlotsOnDate(ctx, fx.ProviderID, monday, 60, 0)
	if err != nil {
		t.Fatalf("HasAvailableSlotsOnDate: %v", err)
	}
	if !has {
		t.Fatalf("expected cached positive answer")
	}
}

func TestAvailabilityService_FindBookableDays(t *testing.T) {
	db := newTestDB(t)
	fx := seedProvider(t, db, 60, 0)
	// Рабочие периоды только по понедельникам.
	seedWorkPeriod(t, db, fx.ProviderID, 0, "09:00", "12:00")

	svc := newAvailability(db, fixedClock(sundayNoon))

	days, err := svc.FindBookableDays(context.Background(), fx.ProviderID, monday, 7, 60, 0)
	if err != nil {
		t.Fatalf("FindBookableDays: %v", err)
	}
	if len(days) != 1 {
		t.Fatalf("expected exactly one bookable day in the week, got %v", days)
	}
	if !days[0].Equal(monday) {
		t.Fatalf("bookable day = %v, want %v", days[0], monday)
	}
}
