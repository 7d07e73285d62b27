package reflow

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func buildChainedOrders(n int, wcID WorkCenterID, day time.Time) []WorkOrder {
	orders := make([]WorkOrder, n)
	for i := 0; i < n; i++ {
		o := WorkOrder{
			ID:              WorkOrderID(fmt.Sprintf("O%05d", i)),
			WorkCenterID:    wcID,
			OriginalStart:   day.Add(time.Duration(i) * time.Minute),
			OriginalEnd:     day.Add(time.Duration(i)*time.Minute + 30*time.Minute),
			DurationMinutes: 30,
		}
		if i > 0 {
			o.DependsOn = []WorkOrderID{WorkOrderID(fmt.Sprintf("O%05d", i-1))}
		}
		orders[i] = o
	}
	return orders
}

func BenchmarkReflow_ChainedOrders_Small(b *testing.B) {
	benchmarkReflowChain(b, 50)
}

func BenchmarkReflow_ChainedOrders_Large(b *testing.B) {
	benchmarkReflowChain(b, 500)
}

func benchmarkReflowChain(b *testing.B, n int) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	centers := []WorkCenter{{ID: "WC1", Shifts: dailyShift(0, 23)}}
	e, err := NewEngine(centers, Config{})
	if err != nil {
		b.Fatalf("NewEngine: %v", err)
	}
	orders := buildChainedOrders(n, "WC1", day)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Reflow(ctx, orders); err != nil {
			b.Fatalf("Reflow failed: %v", err)
		}
	}
}

func BenchmarkReflow_WideFanOut(b *testing.B) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	centers := make([]WorkCenter, 20)
	for i := range centers {
		centers[i] = WorkCenter{ID: WorkCenterID(fmt.Sprintf("WC%02d", i)), Shifts: dailyShift(0, 23)}
	}
	e, err := NewEngine(centers, Config{})
	if err != nil {
		b.Fatalf("NewEngine: %v", err)
	}

	orders := make([]WorkOrder, 1000)
	for i := range orders {
		orders[i] = WorkOrder{
			ID:              WorkOrderID(fmt.Sprintf("O%05d", i)),
			WorkCenterID:    WorkCenterID(fmt.Sprintf("WC%02d", i%20)),
			OriginalStart:   day.Add(time.Duration(i) * time.Minute),
			OriginalEnd:     day.Add(time.Duration(i)*time.Minute + 15*time.Minute),
			DurationMinutes: 15,
		}
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Reflow(ctx, orders); err != nil {
			b.Fatalf("Reflow failed: %v", err)
		}
	}
}
