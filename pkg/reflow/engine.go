package reflow

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"
)

// largeBatchThreshold is the order count above which Reflow lowers the
// garbage collector's target percentage to 50 for the duration of the
// call, so it collects more often. Mirrors the teacher's
// ExplodeDemand pacing trick for big bill-of-material expansions; here
// it pays for itself on the maps allocated per order during the walk.
const largeBatchThreshold = 100

// Engine computes new start/end times for a batch of work orders
// against a fixed set of work centers. A single Engine can serve many
// Reflow calls; its work center index is read-only after NewEngine.
type Engine struct {
	workCenters map[WorkCenterID]*WorkCenter
	cfg         Config
	cal         Calendar
}

// NewEngine validates cfg and indexes workCenters by id.
func NewEngine(workCenters []WorkCenter, cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	idx := make(map[WorkCenterID]*WorkCenter, len(workCenters))
	for i := range workCenters {
		idx[workCenters[i].ID] = &workCenters[i]
	}
	return &Engine{workCenters: idx, cfg: cfg, cal: NewCalendar()}, nil
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// Reflow computes new start/end times for orders, honoring
// dependencies, work center shifts, maintenance windows, and no-overlap
// scheduling on each work center. Orders are processed in deterministic
// topological order; a maintenance order is never moved but still
// occupies its work center for the purpose of sequencing the orders
// around it.
func (e *Engine) Reflow(ctx context.Context, orders []WorkOrder) (*Output, error) {
	started := time.Now()

	if len(orders) > largeBatchThreshold {
		old := debug.SetGCPercent(50)
		defer debug.SetGCPercent(old)
	}

	for _, o := range orders {
		if _, ok := e.workCenters[o.WorkCenterID]; !ok {
			return nil, &MissingWorkCenterError{OrderID: o.ID, WorkCenterID: o.WorkCenterID}
		}
	}

	g, err := buildGraph(orders)
	if err != nil {
		return nil, err
	}
	topo, err := topologicalSort(g)
	if err != nil {
		return nil, err
	}

	loc := e.cfg.Location()
	machineAvailability := make(map[WorkCenterID]time.Time, len(e.workCenters))
	orderEnd := make(map[WorkOrderID]time.Time, len(orders))

	results := make([]Result, 0, len(orders))
	var warnings []string
	rescheduled, fixed := 0, 0

	for i, id := range topo {
		if i%64 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		o := g.orders[id]
		wc := e.workCenters[o.WorkCenterID]

		if o.IsMaintenance {
			machineAvailability[o.WorkCenterID] = laterOf(machineAvailability[o.WorkCenterID], o.OriginalEnd)
			orderEnd[id] = o.OriginalEnd
			fixed++
			results = append(results, Result{
				WorkOrderID:     o.ID,
				WorkOrderNumber: o.Number,
				WorkCenterID:    o.WorkCenterID,
				OriginalStart:   o.OriginalStart,
				OriginalEnd:     o.OriginalEnd,
				NewStart:        o.OriginalStart,
				NewEnd:          o.OriginalEnd,
				WasRescheduled:  false,
				IsFixed:         true,
			})
			continue
		}

		var depEnd time.Time
		hasDeps := false
		for _, dep := range o.DependsOn {
			if end, ok := orderEnd[dep]; ok {
				hasDeps = true
				if end.After(depEnd) {
					depEnd = end
				}
			}
		}
		machAvail, hasMachHistory := machineAvailability[o.WorkCenterID]

		var earliest time.Time
		switch {
		case hasDeps && hasMachHistory:
			earliest = laterOf(depEnd, machAvail)
		case hasDeps:
			earliest = depEnd
		case hasMachHistory:
			earliest = machAvail
		default:
			if e.cfg.AllowEarlierStart {
				if e.cfg.Now.IsZero() {
					return nil, &ValidationError{Causes: []string{
						fmt.Sprintf("work order %s has neither machine history nor dependencies and AllowEarlierStart requires Config.Now", o.ID),
					}}
				}
				earliest = e.cfg.Now
			} else {
				earliest = o.OriginalStart
			}
		}

		if !e.cfg.AllowEarlierStart && earliest.Before(o.OriginalStart) {
			earliest = o.OriginalStart
		}

		validStart, err := e.cal.FindEarliestValidStart(earliest, wc, loc)
		if err != nil {
			return nil, attachOrder(err, o.ID)
		}
		newEnd, err := e.cal.CalculateEndDateWithShifts(validStart, o.DurationMinutes, wc, loc)
		if err != nil {
			return nil, attachOrder(err, o.ID)
		}

		machineAvailability[o.WorkCenterID] = newEnd
		orderEnd[id] = newEnd

		wasRescheduled := !validStart.Equal(o.OriginalStart) || !newEnd.Equal(o.OriginalEnd)
		if wasRescheduled {
			rescheduled++
		}
		if validStart.After(o.OriginalStart) {
			delayMinutes := int(validStart.Sub(o.OriginalStart).Minutes())
			warnings = append(warnings, fmt.Sprintf(
				"Work order %s delayed by %d minutes", o.Number, delayMinutes))
		}

		results = append(results, Result{
			WorkOrderID:     o.ID,
			WorkOrderNumber: o.Number,
			WorkCenterID:    o.WorkCenterID,
			OriginalStart:   o.OriginalStart,
			OriginalEnd:     o.OriginalEnd,
			NewStart:        validStart,
			NewEnd:          newEnd,
			WasRescheduled:  wasRescheduled,
			IsFixed:         false,
		})
	}

	return &Output{
		Results:  results,
		Warnings: warnings,
		Metadata: Metadata{
			TotalOrders:      len(orders),
			RescheduledCount: rescheduled,
			FixedCount:       fixed,
			ProcessingTimeMs: time.Since(started).Milliseconds(),
		},
	}, nil
}

// attachOrder fills the OrderID field of a NoWorkableSlotError raised
// deep inside the calendar layer, which has no notion of which order
// triggered the search.
func attachOrder(err error, id WorkOrderID) error {
	if nwse, ok := err.(*NoWorkableSlotError); ok {
		nwse.OrderID = id
	}
	return err
}
