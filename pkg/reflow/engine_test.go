package reflow

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func wc(id string, startHour, endHour int) WorkCenter {
	return WorkCenter{ID: WorkCenterID(id), Shifts: dailyShift(startHour, endHour)}
}

func newTestEngine(t *testing.T, centers []WorkCenter, cfg Config) *Engine {
	t.Helper()
	e, err := NewEngine(centers, cfg)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestReflow_DependencyDelaysDownstreamOrder(t *testing.T) {
	centers := []WorkCenter{wc("WC1", 9, 17)}
	e := newTestEngine(t, centers, Config{})

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC) // Monday
	orders := []WorkOrder{
		{
			ID: "A", WorkCenterID: "WC1",
			OriginalStart: day.Add(9 * time.Hour), OriginalEnd: day.Add(13 * time.Hour),
			DurationMinutes: 240,
		},
		{
			ID: "B", WorkCenterID: "WC1",
			OriginalStart: day.Add(9 * time.Hour), OriginalEnd: day.Add(11 * time.Hour),
			DurationMinutes: 120, DependsOn: []WorkOrderID{"A"},
		},
	}
	out, err := e.Reflow(context.Background(), orders)
	if err != nil {
		t.Fatalf("Reflow: %v", err)
	}
	byID := resultIndex(out.Results)
	if !byID["B"].NewStart.Equal(byID["A"].NewEnd) {
		t.Errorf("B should start exactly when A ends: A ends %s, B starts %s", byID["A"].NewEnd, byID["B"].NewStart)
	}
	if !byID["B"].WasRescheduled {
		t.Error("B should be marked as rescheduled since it slipped later than its original window")
	}
}

func TestReflow_NoOverlapOnSameWorkCenter(t *testing.T) {
	centers := []WorkCenter{wc("WC1", 9, 17)}
	e := newTestEngine(t, centers, Config{})

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	orders := []WorkOrder{
		{ID: "A", WorkCenterID: "WC1", OriginalStart: day.Add(9 * time.Hour), OriginalEnd: day.Add(11 * time.Hour), DurationMinutes: 120},
		{ID: "B", WorkCenterID: "WC1", OriginalStart: day.Add(9 * time.Hour), OriginalEnd: day.Add(11 * time.Hour), DurationMinutes: 120},
	}
	out, err := e.Reflow(context.Background(), orders)
	if err != nil {
		t.Fatalf("Reflow: %v", err)
	}
	byID := resultIndex(out.Results)
	a, b := byID["A"], byID["B"]
	if a.NewStart.Before(b.NewStart) {
		if a.NewEnd.After(b.NewStart) {
			t.Errorf("A and B overlap on WC1: A [%s,%s) B [%s,%s)", a.NewStart, a.NewEnd, b.NewStart, b.NewEnd)
		}
	} else if b.NewEnd.After(a.NewStart) {
		t.Errorf("A and B overlap on WC1: A [%s,%s) B [%s,%s)", a.NewStart, a.NewEnd, b.NewStart, b.NewEnd)
	}
}

func TestReflow_MaintenanceOrderIsNeverRescheduled(t *testing.T) {
	centers := []WorkCenter{wc("WC1", 9, 17)}
	e := newTestEngine(t, centers, Config{})

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	maintStart := day.Add(10 * time.Hour)
	maintEnd := day.Add(12 * time.Hour)
	orders := []WorkOrder{
		{ID: "M", WorkCenterID: "WC1", OriginalStart: maintStart, OriginalEnd: maintEnd, DurationMinutes: 120, IsMaintenance: true},
		{ID: "A", WorkCenterID: "WC1", OriginalStart: day.Add(9 * time.Hour), OriginalEnd: day.Add(10 * time.Hour), DurationMinutes: 60},
	}
	out, err := e.Reflow(context.Background(), orders)
	if err != nil {
		t.Fatalf("Reflow: %v", err)
	}
	byID := resultIndex(out.Results)
	if !byID["M"].NewStart.Equal(maintStart) || !byID["M"].NewEnd.Equal(maintEnd) {
		t.Errorf("maintenance order moved: got [%s,%s)", byID["M"].NewStart, byID["M"].NewEnd)
	}
	if !byID["M"].IsFixed {
		t.Error("maintenance order should be marked fixed")
	}
}

func TestReflow_MissingWorkCenter(t *testing.T) {
	e := newTestEngine(t, nil, Config{})
	orders := []WorkOrder{{ID: "A", WorkCenterID: "GHOST", DurationMinutes: 60}}
	_, err := e.Reflow(context.Background(), orders)
	if err == nil {
		t.Fatal("expected MissingWorkCenterError")
	}
	if _, ok := err.(*MissingWorkCenterError); !ok {
		t.Fatalf("expected *MissingWorkCenterError, got %T", err)
	}
}

func TestReflow_AllowEarlierStartRequiresDeterministicNow(t *testing.T) {
	centers := []WorkCenter{wc("WC1", 9, 17)}
	e := newTestEngine(t, centers, Config{AllowEarlierStart: true})

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	orders := []WorkOrder{
		{ID: "A", WorkCenterID: "WC1", OriginalStart: day.Add(9 * time.Hour), OriginalEnd: day.Add(10 * time.Hour), DurationMinutes: 60},
	}
	_, err := e.Reflow(context.Background(), orders)
	if err == nil {
		t.Fatal("expected ValidationError when AllowEarlierStart is set without Config.Now")
	}
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
}

func TestReflow_AllowEarlierStartUsesConfiguredNow(t *testing.T) {
	centers := []WorkCenter{wc("WC1", 9, 17)}
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	now := day.Add(9 * time.Hour)
	e := newTestEngine(t, centers, Config{AllowEarlierStart: true, Now: now})

	orders := []WorkOrder{
		{ID: "A", WorkCenterID: "WC1", OriginalStart: day.Add(11 * time.Hour), OriginalEnd: day.Add(12 * time.Hour), DurationMinutes: 60},
	}
	out, err := e.Reflow(context.Background(), orders)
	if err != nil {
		t.Fatalf("Reflow: %v", err)
	}
	got := resultIndex(out.Results)["A"]
	if !got.NewStart.Equal(now) {
		t.Errorf("expected order with no history/dependencies to anchor on Config.Now, got start %s, want %s", got.NewStart, now)
	}
}

func TestReflow_CircularDependencyAborts(t *testing.T) {
	centers := []WorkCenter{wc("WC1", 9, 17)}
	e := newTestEngine(t, centers, Config{})
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	orders := []WorkOrder{
		{ID: "A", WorkCenterID: "WC1", OriginalStart: day, DurationMinutes: 60, DependsOn: []WorkOrderID{"B"}},
		{ID: "B", WorkCenterID: "WC1", OriginalStart: day, DurationMinutes: 60, DependsOn: []WorkOrderID{"A"}},
	}
	_, err := e.Reflow(context.Background(), orders)
	if err == nil {
		t.Fatal("expected CircularDependencyError")
	}
	if _, ok := err.(*CircularDependencyError); !ok {
		t.Fatalf("expected *CircularDependencyError, got %T", err)
	}
}

func TestReflow_ConcurrentCallsDoNotShareState(t *testing.T) {
	centers := []WorkCenter{wc("WC1", 9, 17)}
	e := newTestEngine(t, centers, Config{})
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	run := func(offset time.Duration) (*Output, error) {
		orders := []WorkOrder{
			{ID: "A", WorkCenterID: "WC1", OriginalStart: day.Add(9*time.Hour + offset), OriginalEnd: day.Add(10*time.Hour + offset), DurationMinutes: 60},
		}
		return e.Reflow(context.Background(), orders)
	}

	var wg sync.WaitGroup
	results := make([]*Output, 8)
	errs := make([]error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = run(time.Duration(i) * time.Minute)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
		want := day.Add(9*time.Hour + time.Duration(i)*time.Minute)
		if !results[i].Results[0].NewStart.Equal(want) {
			t.Errorf("call %d: got start %s, want %s (state leaked across concurrent calls)", i, results[i].Results[0].NewStart, want)
		}
	}
}

func TestReflow_ContextCancellation(t *testing.T) {
	centers := []WorkCenter{wc("WC1", 9, 17)}
	e := newTestEngine(t, centers, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	orders := make([]WorkOrder, 200)
	for i := range orders {
		orders[i] = WorkOrder{ID: WorkOrderID(fmt.Sprintf("O%03d", i)), WorkCenterID: "WC1", OriginalStart: day, DurationMinutes: 30}
	}
	_, err := e.Reflow(ctx, orders)
	if err == nil {
		t.Fatal("expected a context cancellation error")
	}
}

func resultIndex(results []Result) map[WorkOrderID]Result {
	m := make(map[WorkOrderID]Result, len(results))
	for _, r := range results {
		m[r.WorkOrderID] = r
	}
	return m
}
