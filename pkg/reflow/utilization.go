package reflow

import (
	"time"

	"github.com/shopspring/decimal"
)

// UtilizationReport summarizes how much of a work center's available
// calendar time, over a reporting window, was consumed by scheduled
// production work versus fixed maintenance. It is a pure post-processor
// over a completed Output; the engine never computes it as part of
// Reflow.
type UtilizationReport struct {
	WorkCenterID       WorkCenterID
	AvailableMinutes   int64
	BusyMinutes        int64
	MaintenanceMinutes int64
	UtilizationPct     decimal.Decimal
}

// BuildUtilizationReport computes one UtilizationReport per work center
// in workCenters, measuring available time from their shift calendars
// and maintenance windows over [windowStart, windowEnd), and busy/
// maintenance time from output's results whose new schedule overlaps
// that window.
func BuildUtilizationReport(output *Output, workCenters []WorkCenter, windowStart, windowEnd time.Time, loc *time.Location) []UtilizationReport {
	cal := NewCalendar()

	reports := make([]UtilizationReport, len(workCenters))
	index := make(map[WorkCenterID]*UtilizationReport, len(workCenters))
	for i := range workCenters {
		reports[i] = UtilizationReport{
			WorkCenterID:     workCenters[i].ID,
			AvailableMinutes: availableMinutes(cal, &workCenters[i], windowStart, windowEnd, loc),
		}
		index[workCenters[i].ID] = &reports[i]
	}

	for _, r := range output.Results {
		rep, ok := index[r.WorkCenterID]
		if !ok {
			continue
		}
		overlap := overlapMinutes(r.NewStart, r.NewEnd, windowStart, windowEnd)
		if overlap <= 0 {
			continue
		}
		if r.IsFixed {
			rep.MaintenanceMinutes += overlap
		} else {
			rep.BusyMinutes += overlap
		}
	}

	hundred := decimal.NewFromInt(100)
	for i := range reports {
		if reports[i].AvailableMinutes == 0 {
			reports[i].UtilizationPct = decimal.Zero
			continue
		}
		busy := decimal.NewFromInt(reports[i].BusyMinutes)
		avail := decimal.NewFromInt(reports[i].AvailableMinutes)
		reports[i].UtilizationPct = busy.Div(avail).Mul(hundred).Round(2)
	}
	return reports
}

// availableMinutes sums workable calendar minutes for wc inside
// [from, to), walking shift-by-shift the same way CalculateEndDateWithShifts
// walks duration. Stops early if the calendar can find no further
// workable slot within its search horizon; the remainder of the window
// is simply reported as unavailable rather than erroring, since an
// idle work center is a legitimate report input, not a scheduling
// failure.
func availableMinutes(cal Calendar, wc *WorkCenter, from, to time.Time, loc *time.Location) int64 {
	if !from.Before(to) {
		return 0
	}
	var total int64
	cursor := from
	for cursor.Before(to) {
		slot, err := cal.FindNextWorkableSlot(cursor, wc, loc)
		if err != nil {
			break
		}
		if !slot.Start.Before(to) {
			break
		}
		end := slot.End
		if end.After(to) {
			end = to
		}
		total += int64(end.Sub(slot.Start) / time.Minute)
		cursor = slot.End
	}
	return total
}

func overlapMinutes(aStart, aEnd, bStart, bEnd time.Time) int64 {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !start.Before(end) {
		return 0
	}
	return int64(end.Sub(start) / time.Minute)
}
