package reflow

import (
	"sort"
	"time"
)

// Calendar is the pure, stateless arithmetic layer over shifts and
// maintenance windows. It carries no fields — every method is a pure
// function of its arguments — the same zero-field, method-bag shape the
// teacher's SerialComparator uses for serial-effectivity comparison.
type Calendar struct{}

// NewCalendar returns a Calendar. It exists only for symmetry with the
// rest of the package's constructors; a Calendar{} literal works too.
func NewCalendar() Calendar { return Calendar{} }

// Slot is a maximal contiguous window in which work can occur.
type Slot struct {
	Start   time.Time
	End     time.Time
	Minutes int
}

type window struct {
	start time.Time
	end   time.Time
}

// civilMidnight returns local midnight, in loc, for the calendar day
// containing t.
func civilMidnight(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// shiftWindowsOn returns the union of shift windows whose start falls on
// the calendar day beginning at localDay (local midnight). An overnight
// shift's window still terminates at its declared end hour even if the
// following day carries no shift definitions of its own — it is
// computed as an absolute offset from localDay, never by re-deriving the
// end from another day's shift list.
func shiftWindowsOn(wc *WorkCenter, localDay time.Time) []window {
	var wins []window
	for _, s := range wc.Shifts {
		if s.DayOfWeek != localDay.Weekday() {
			continue
		}
		mins := s.minutes()
		if mins == 0 {
			continue
		}
		start := localDay.Add(time.Duration(s.StartHour) * time.Hour)
		end := start.Add(time.Duration(mins) * time.Minute)
		wins = append(wins, window{start: start, end: end})
	}
	return mergeWindows(wins)
}

// mergeWindows sorts and merges overlapping or touching windows (a shift
// ending at 17:00 and one starting at 17:00 become a single window).
func mergeWindows(wins []window) []window {
	if len(wins) < 2 {
		return wins
	}
	sort.Slice(wins, func(i, j int) bool { return wins[i].start.Before(wins[j].start) })
	merged := wins[:1]
	for _, w := range wins[1:] {
		last := &merged[len(merged)-1]
		if !w.start.After(last.end) {
			if w.end.After(last.end) {
				last.end = w.end
			}
			continue
		}
		merged = append(merged, w)
	}
	return merged
}

// windowsInRange returns the merged shift windows starting on any
// calendar day in [fromDay, toDay] (inclusive, both local midnights).
func windowsInRange(wc *WorkCenter, fromDay, toDay time.Time) []window {
	var wins []window
	for d := fromDay; !d.After(toDay); d = d.AddDate(0, 0, 1) {
		wins = append(wins, shiftWindowsOn(wc, d)...)
	}
	return mergeWindows(wins)
}

func inMaintenance(t time.Time, windows []MaintenanceWindow) bool {
	for _, w := range windows {
		if !t.Before(w.Start) && t.Before(w.End) {
			return true
		}
	}
	return false
}

// IsWithinWorkingHours reports whether t falls inside some shift of wc
// on its local day-of-week and is not inside any maintenance window.
func (Calendar) IsWithinWorkingHours(t time.Time, wc *WorkCenter, loc *time.Location) bool {
	day := civilMidnight(t, loc)
	// A wrap shift that started the previous local day can still cover
	// t, so the previous day's windows are candidates too.
	wins := windowsInRange(wc, day.AddDate(0, 0, -1), day)
	inShift := false
	for _, w := range wins {
		if !t.Before(w.start) && t.Before(w.end) {
			inShift = true
			break
		}
	}
	if !inShift {
		return false
	}
	return !inMaintenance(t, wc.MaintenanceWindows)
}

// slotSearchHorizon bounds findEarliestValidStart's forward probe.
const slotSearchHorizon = 30 * 24 * time.Hour

// FindEarliestValidStart returns the smallest instant >= from that is
// inside a shift and outside every maintenance window, probing forward
// through candidate breakpoints (shift starts and maintenance-window
// ends) for up to 30 days. Fails with NoWorkableSlotError if exhausted.
func (c Calendar) FindEarliestValidStart(from time.Time, wc *WorkCenter, loc *time.Location) (time.Time, error) {
	if c.IsWithinWorkingHours(from, wc, loc) {
		return from, nil
	}

	horizonEnd := from.Add(slotSearchHorizon)
	fromDay := civilMidnight(from, loc)
	wins := windowsInRange(wc, fromDay.AddDate(0, 0, -1), fromDay.AddDate(0, 0, 31))

	var candidates []time.Time
	for _, w := range wins {
		if !w.start.Before(from) {
			candidates = append(candidates, w.start)
		}
	}
	for _, mw := range wc.MaintenanceWindows {
		if !mw.End.Before(from) {
			candidates = append(candidates, mw.End)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Before(candidates[j]) })

	for _, cand := range candidates {
		if cand.After(horizonEnd) {
			break
		}
		if c.IsWithinWorkingHours(cand, wc, loc) {
			return cand, nil
		}
	}
	return time.Time{}, &NoWorkableSlotError{WorkCenterID: wc.ID, Horizon: slotSearchHorizon}
}

// SubtractMaintenanceWindows clips [a,b) by each maintenance window in
// turn: a window that fully covers the interval empties it; a window
// clipping the left edge advances a; a window clipping the right edge
// retracts b; a window strictly inside truncates at its start, returning
// only the left portion immediately. Returns ok=false for an empty
// result.
func (Calendar) SubtractMaintenanceWindows(a, b time.Time, windows []MaintenanceWindow) (time.Time, time.Time, bool) {
	sorted := make([]MaintenanceWindow, len(windows))
	copy(sorted, windows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	for _, w := range sorted {
		if !(w.Start.Before(b) && w.End.After(a)) {
			continue // no overlap with the current interval
		}
		switch {
		case !w.Start.After(a) && !w.End.Before(b):
			return time.Time{}, time.Time{}, false // fully covers
		case !w.Start.After(a):
			a = w.End // clips left
		case !w.End.Before(b):
			b = w.Start // clips right
		default:
			return a, w.Start, true // strictly inside: left portion only
		}
		if !a.Before(b) {
			return time.Time{}, time.Time{}, false
		}
	}
	return a, b, true
}

// FindNextWorkableSlot returns the next maximal contiguous slot in which
// work can occur: it starts at FindEarliestValidStart(from) and ends at
// the earliest of the containing shift's end or the start of the first
// maintenance window strictly after that start.
func (c Calendar) FindNextWorkableSlot(from time.Time, wc *WorkCenter, loc *time.Location) (*Slot, error) {
	start, err := c.FindEarliestValidStart(from, wc, loc)
	if err != nil {
		return nil, err
	}

	day := civilMidnight(start, loc)
	wins := windowsInRange(wc, day.AddDate(0, 0, -1), day)
	var shiftEnd time.Time
	for _, w := range wins {
		if !start.Before(w.start) && start.Before(w.end) {
			shiftEnd = w.end
			break
		}
	}
	if shiftEnd.IsZero() {
		return nil, &NoWorkableSlotError{WorkCenterID: wc.ID, Horizon: slotSearchHorizon}
	}

	s2, e2, ok := c.SubtractMaintenanceWindows(start, shiftEnd, wc.MaintenanceWindows)
	if !ok {
		return nil, &NoWorkableSlotError{WorkCenterID: wc.ID, Horizon: slotSearchHorizon}
	}

	return &Slot{Start: s2, End: e2, Minutes: int(e2.Sub(s2) / time.Minute)}, nil
}

// durationSearchHorizon bounds CalculateEndDateWithShifts' total walk,
// measured from the original start.
const durationSearchHorizon = 365 * 24 * time.Hour

// CalculateEndDateWithShifts walks forward from start consuming
// durationMinutes of working time, skipping off-shift and maintenance
// time as pure pass-through, and returns the resulting end instant.
func (c Calendar) CalculateEndDateWithShifts(start time.Time, durationMinutes int, wc *WorkCenter, loc *time.Location) (time.Time, error) {
	if durationMinutes == 0 {
		return start, nil
	}

	remaining := durationMinutes
	cursor := start
	horizon := start.Add(durationSearchHorizon)

	for {
		if cursor.After(horizon) {
			return time.Time{}, &NoWorkableSlotError{WorkCenterID: wc.ID, Horizon: durationSearchHorizon}
		}
		slot, err := c.FindNextWorkableSlot(cursor, wc, loc)
		if err != nil {
			return time.Time{}, err
		}
		if slot.Minutes >= remaining {
			return slot.Start.Add(time.Duration(remaining) * time.Minute), nil
		}
		remaining -= slot.Minutes
		cursor = slot.End
	}
}
