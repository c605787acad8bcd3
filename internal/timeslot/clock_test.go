package timeslot

import (
	"testing"
	"time"
)

func TestParseClock_Valid(t *testing.T) {
	cases := map[string]Clock{
		"00:00": 0,
		"09:00": 9 * 60,
		"9:30":  9*60 + 30,
		"23:59": 23*60 + 59,
	}
	for in, want := range cases {
		got, err := ParseClock(in)
		if err != nil {
			t.Fatalf("ParseClock(%q): unexpected error %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseClock(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParseClock_Invalid(t *testing.T) {
	for _, in := range []string{"", "09", "24:00", "12:60", "ab:cd", "12:00:00", "-1:30"} {
		if _, err := ParseClock(in); err != ErrInvalidFormat {
			t.Fatalf("ParseClock(%q): expected ErrInvalidFormat, got %v", in, err)
		}
	}
}

func TestClock_String_ZeroPadded(t *testing.T) {
	c, err := ParseClock("9:05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.String() != "09:05" {
		t.Fatalf("String() = %q, want %q", c.String(), "09:05")
	}
}

func TestClock_AddSub(t *testing.T) {
	c, _ := ParseClock("10:00")
	if got := c.Add(45).String(); got != "10:45" {
		t.Fatalf("Add(45) = %q, want 10:45", got)
	}
	if got := c.Sub(90).String(); got != "08:30" {
		t.Fatalf("Sub(90) = %q, want 08:30", got)
	}
}

func TestClock_At(t *testing.T) {
	c, _ := ParseClock("14:30")
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	got := c.At(date)
	want := time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("At() = %v, want %v", got, want)
	}
}

func TestOverlaps_TouchingBoundariesExcluded(t *testing.T) {
	a1, _ := ParseClock("09:00")
	a2, _ := ParseClock("10:00")
	b1, _ := ParseClock("10:00")
	b2, _ := ParseClock("11:00")

	if Overlaps(a1, a2, b1, b2) {
		t.Fatalf("touching intervals must not overlap")
	}
	if Overlaps(b1, b2, a1, a2) {
		t.Fatalf("touching intervals must not overlap (swapped)")
	}
}

func TestOverlaps_Symmetric(t *testing.T) {
	a1, _ := ParseClock("09:00")
	a2, _ := ParseClock("10:30")
	b1, _ := ParseClock("10:00")
	b2, _ := ParseClock("11:00")

	if !Overlaps(a1, a2, b1, b2) {
		t.Fatalf("expected overlap")
	}
	if Overlaps(a1, a2, b1, b2) != Overlaps(b1, b2, a1, a2) {
		t.Fatalf("Overlaps must be symmetric under swapping the pairs")
	}
}

func TestOverlaps_Contained(t *testing.T) {
	a1, _ := ParseClock("09:00")
	a2, _ := ParseClock("12:00")
	b1, _ := ParseClock("10:00")
	b2, _ := ParseClock("11:00")

	if !Overlaps(a1, a2, b1, b2) {
		t.Fatalf("contained interval must overlap")
	}
}
