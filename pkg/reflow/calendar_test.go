package reflow

import (
	"testing"
	"time"
)

func mustLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("LoadLocation(%q): %v", name, err)
	}
	return loc
}

func dailyShift(start, end int) []ShiftDefinition {
	var shifts []ShiftDefinition
	for d := time.Sunday; d <= time.Saturday; d++ {
		shifts = append(shifts, ShiftDefinition{DayOfWeek: d, StartHour: start, EndHour: end})
	}
	return shifts
}

func TestIsWithinWorkingHours(t *testing.T) {
	wc := &WorkCenter{
		ID:     "WC1",
		Shifts: dailyShift(9, 17),
		MaintenanceWindows: []MaintenanceWindow{
			{Start: time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC), End: time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC)},
		},
	}
	cal := NewCalendar()

	cases := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"inside shift", time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC), true},
		{"before shift", time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC), false},
		{"after shift", time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC), false},
		{"inside maintenance", time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC), false},
		{"maintenance end is workable", time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := cal.IsWithinWorkingHours(tc.t, wc, time.UTC)
			if got != tc.want {
				t.Errorf("IsWithinWorkingHours(%s) = %v, want %v", tc.t, got, tc.want)
			}
		})
	}
}

func TestShiftWraparound(t *testing.T) {
	// A night shift, 22:00 to 06:00, must terminate at 06:00 the next
	// day even though no shift definition names that following day.
	wc := &WorkCenter{
		ID: "WC1",
		Shifts: []ShiftDefinition{
			{DayOfWeek: time.Monday, StartHour: 22, EndHour: 6},
		},
	}
	cal := NewCalendar()

	within := time.Date(2025, 6, 2, 23, 0, 0, 0, time.UTC) // Monday 23:00
	if !cal.IsWithinWorkingHours(within, wc, time.UTC) {
		t.Fatalf("expected %s to be within the wraparound shift", within)
	}
	afterMidnight := time.Date(2025, 6, 3, 4, 0, 0, 0, time.UTC) // Tuesday 04:00
	if !cal.IsWithinWorkingHours(afterMidnight, wc, time.UTC) {
		t.Fatalf("expected %s to still be within the wraparound shift", afterMidnight)
	}
	terminated := time.Date(2025, 6, 3, 6, 0, 0, 0, time.UTC) // Tuesday 06:00 — shift over
	if cal.IsWithinWorkingHours(terminated, wc, time.UTC) {
		t.Fatalf("expected %s to be outside the wraparound shift", terminated)
	}
}

func TestZeroLengthShift(t *testing.T) {
	wc := &WorkCenter{
		ID:     "WC1",
		Shifts: []ShiftDefinition{{DayOfWeek: time.Monday, StartHour: 9, EndHour: 9}},
	}
	cal := NewCalendar()
	if cal.IsWithinWorkingHours(time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), wc, time.UTC) {
		t.Fatal("a shift with EndHour == StartHour should contain no working minutes")
	}
}

func TestFindEarliestValidStart_SkipsMaintenanceThenShiftGap(t *testing.T) {
	wc := &WorkCenter{
		ID:     "WC1",
		Shifts: dailyShift(9, 17),
		MaintenanceWindows: []MaintenanceWindow{
			{Start: time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC), End: time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC)},
		},
	}
	cal := NewCalendar()

	got, err := cal.FindEarliestValidStart(time.Date(2025, 6, 2, 11, 30, 0, 0, time.UTC), wc, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}

	got, err = cal.FindEarliestValidStart(time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC), wc, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestFindEarliestValidStart_NoWorkableSlot(t *testing.T) {
	wc := &WorkCenter{ID: "WC1"} // no shifts at all
	cal := NewCalendar()
	_, err := cal.FindEarliestValidStart(time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), wc, time.UTC)
	if err == nil {
		t.Fatal("expected NoWorkableSlotError")
	}
	if _, ok := err.(*NoWorkableSlotError); !ok {
		t.Fatalf("expected *NoWorkableSlotError, got %T", err)
	}
}

func TestCalculateEndDateWithShifts_SpansMaintenance(t *testing.T) {
	wc := &WorkCenter{
		ID:     "WC1",
		Shifts: dailyShift(9, 17),
		MaintenanceWindows: []MaintenanceWindow{
			{Start: time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC), End: time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC)},
		},
	}
	cal := NewCalendar()

	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	end, err := cal.CalculateEndDateWithShifts(start, 180, wc, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 10:00-11:00 (60 min) + skip maintenance + 13:00-15:00 (120 min) = 180
	want := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	if !end.Equal(want) {
		t.Errorf("got %s, want %s", end, want)
	}
}

func TestCalculateEndDateWithShifts_SpansMultipleDays(t *testing.T) {
	wc := &WorkCenter{ID: "WC1", Shifts: dailyShift(9, 17)}
	cal := NewCalendar()

	start := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC) // Monday 15:00, 2h left today
	end, err := cal.CalculateEndDateWithShifts(start, 10*60, wc, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Monday: 15:00-17:00 = 120 min, remaining 480 min = full Tuesday shift.
	want := time.Date(2025, 6, 3, 17, 0, 0, 0, time.UTC)
	if !end.Equal(want) {
		t.Errorf("got %s, want %s", end, want)
	}
}

func TestCalculateEndDateWithShifts_ZeroDuration(t *testing.T) {
	wc := &WorkCenter{ID: "WC1", Shifts: dailyShift(9, 17)}
	cal := NewCalendar()
	start := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	end, err := cal.CalculateEndDateWithShifts(start, 0, wc, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !end.Equal(start) {
		t.Errorf("zero duration should return start unchanged, got %s", end)
	}
}

func TestSubtractMaintenanceWindows(t *testing.T) {
	a := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	b := time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC)
	cal := NewCalendar()

	t.Run("fully covers", func(t *testing.T) {
		_, _, ok := cal.SubtractMaintenanceWindows(a, b, []MaintenanceWindow{
			{Start: a.Add(-time.Hour), End: b.Add(time.Hour)},
		})
		if ok {
			t.Fatal("expected empty result")
		}
	})

	t.Run("clips left", func(t *testing.T) {
		gotA, gotB, ok := cal.SubtractMaintenanceWindows(a, b, []MaintenanceWindow{
			{Start: a.Add(-time.Hour), End: a.Add(2 * time.Hour)},
		})
		if !ok {
			t.Fatal("expected non-empty result")
		}
		if !gotA.Equal(a.Add(2 * time.Hour)) {
			t.Errorf("got start %s, want %s", gotA, a.Add(2*time.Hour))
		}
		if !gotB.Equal(b) {
			t.Errorf("got end %s, want %s", gotB, b)
		}
	})

	t.Run("clips right", func(t *testing.T) {
		gotA, gotB, ok := cal.SubtractMaintenanceWindows(a, b, []MaintenanceWindow{
			{Start: b.Add(-2 * time.Hour), End: b.Add(time.Hour)},
		})
		if !ok {
			t.Fatal("expected non-empty result")
		}
		if !gotA.Equal(a) {
			t.Errorf("got start %s, want %s", gotA, a)
		}
		if !gotB.Equal(b.Add(-2 * time.Hour)) {
			t.Errorf("got end %s, want %s", gotB, b.Add(-2*time.Hour))
		}
	})

	t.Run("strictly inside", func(t *testing.T) {
		mid := a.Add(4 * time.Hour)
		gotA, gotB, ok := cal.SubtractMaintenanceWindows(a, b, []MaintenanceWindow{
			{Start: mid, End: mid.Add(time.Hour)},
		})
		if !ok {
			t.Fatal("expected non-empty result")
		}
		if !gotA.Equal(a) || !gotB.Equal(mid) {
			t.Errorf("got [%s, %s), want [%s, %s)", gotA, gotB, a, mid)
		}
	})
}

func TestFindEarliestValidStart_AlreadyValid(t *testing.T) {
	wc := &WorkCenter{ID: "WC1", Shifts: dailyShift(9, 17)}
	cal := NewCalendar()
	from := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	got, err := cal.FindEarliestValidStart(from, wc, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(from) {
		t.Errorf("expected the already-valid instant to be returned unchanged, got %s", got)
	}
}

func TestFindEarliestValidStart_LocalTimezone(t *testing.T) {
	loc := mustLoc(t, "America/New_York")
	wc := &WorkCenter{ID: "WC1", Shifts: dailyShift(9, 17)}
	cal := NewCalendar()

	// 2025-06-02 12:00 UTC is 08:00 in New York, one hour before the
	// shift opens in local time.
	from := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	got, err := cal.FindEarliestValidStart(from, wc, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 6, 2, 9, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}
}
