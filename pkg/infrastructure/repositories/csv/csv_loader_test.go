package csv

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempCSV(t *testing.T, name, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing temp CSV: %v", err)
	}
	return path
}

func TestLoadWorkOrders(t *testing.T) {
	path := writeTempCSV(t, "orders.csv", ""+
		"id,number,work_center_id,original_start,original_end,duration_minutes,is_maintenance,depends_on\n"+
		"A,WO-1,WC1,2025-06-02T08:00:00Z,2025-06-02T09:00:00Z,60,false,\n"+
		"B,WO-2,WC1,2025-06-02T09:00:00Z,2025-06-02T10:00:00Z,60,false,A\n")

	orders, err := NewLoader().LoadWorkOrders(path)
	if err != nil {
		t.Fatalf("LoadWorkOrders: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if len(orders[1].DependsOn) != 1 || orders[1].DependsOn[0] != "A" {
		t.Errorf("expected order B to depend on A, got %v", orders[1].DependsOn)
	}
}

func TestLoadWorkOrders_GeneratesIDWhenMissing(t *testing.T) {
	path := writeTempCSV(t, "orders.csv", ""+
		"id,number,work_center_id,original_start,original_end,duration_minutes,is_maintenance,depends_on\n"+
		",WO-1,WC1,2025-06-02T08:00:00Z,2025-06-02T09:00:00Z,60,false,\n")

	orders, err := NewLoader().LoadWorkOrders(path)
	if err != nil {
		t.Fatalf("LoadWorkOrders: %v", err)
	}
	if orders[0].ID == "" {
		t.Error("expected a generated id, got empty string")
	}
}

func TestLoadWorkOrders_HeaderMismatch(t *testing.T) {
	path := writeTempCSV(t, "orders.csv", "id,number\nA,WO-1\n")
	if _, err := NewLoader().LoadWorkOrders(path); err == nil {
		t.Fatal("expected a header mismatch error")
	}
}

func TestLoadWorkCentersWithShiftsAndMaintenance(t *testing.T) {
	centersPath := writeTempCSV(t, "centers.csv", "id,name\nWC1,Lathe 1\n")
	shiftsPath := writeTempCSV(t, "shifts.csv", ""+
		"work_center_id,day_of_week,start_hour,end_hour\n"+
		"WC1,Monday,9,17\n"+
		"WC1,Tuesday,9,17\n")
	windowsPath := writeTempCSV(t, "windows.csv", ""+
		"work_center_id,start,end,reason\n"+
		"WC1,2025-06-02T12:00:00Z,2025-06-02T13:00:00Z,lunch maintenance\n")

	loader := NewLoader()
	centers, err := loader.LoadWorkCenters(centersPath)
	if err != nil {
		t.Fatalf("LoadWorkCenters: %v", err)
	}
	if err := loader.LoadShifts(shiftsPath, centers); err != nil {
		t.Fatalf("LoadShifts: %v", err)
	}
	if err := loader.LoadMaintenanceWindows(windowsPath, centers); err != nil {
		t.Fatalf("LoadMaintenanceWindows: %v", err)
	}

	if len(centers) != 1 {
		t.Fatalf("expected 1 work center, got %d", len(centers))
	}
	wc := centers[0]
	if len(wc.Shifts) != 2 {
		t.Errorf("expected 2 shifts, got %d", len(wc.Shifts))
	}
	if wc.Shifts[0].DayOfWeek != time.Monday || wc.Shifts[0].StartHour != 9 || wc.Shifts[0].EndHour != 17 {
		t.Errorf("unexpected shift: %+v", wc.Shifts[0])
	}
	if len(wc.MaintenanceWindows) != 1 {
		t.Fatalf("expected 1 maintenance window, got %d", len(wc.MaintenanceWindows))
	}
	if wc.MaintenanceWindows[0].Reason != "lunch maintenance" {
		t.Errorf("expected reason 'lunch maintenance', got %q", wc.MaintenanceWindows[0].Reason)
	}
}

func TestLoadShifts_UnknownWorkCenter(t *testing.T) {
	centersPath := writeTempCSV(t, "centers.csv", "id,name\nWC1,Lathe 1\n")
	shiftsPath := writeTempCSV(t, "shifts.csv", "work_center_id,day_of_week,start_hour,end_hour\nGHOST,Monday,9,17\n")

	loader := NewLoader()
	centers, err := loader.LoadWorkCenters(centersPath)
	if err != nil {
		t.Fatalf("LoadWorkCenters: %v", err)
	}
	if err := loader.LoadShifts(shiftsPath, centers); err == nil {
		t.Fatal("expected an unknown work center error")
	}
}
