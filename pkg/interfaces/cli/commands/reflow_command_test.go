package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScenarioFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func writeSimpleScenario(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeScenarioFile(t, dir, "work_centers.csv", "id,name\nWC1,Lathe 1\n")
	writeScenarioFile(t, dir, "shifts.csv", "work_center_id,day_of_week,start_hour,end_hour\nWC1,Monday,0,23\nWC1,Tuesday,0,23\n")
	writeScenarioFile(t, dir, "work_orders.csv", ""+
		"id,number,work_center_id,original_start,original_end,duration_minutes,is_maintenance,depends_on\n"+
		"A,WO-1,WC1,2025-06-02T08:00:00Z,2025-06-02T09:00:00Z,60,false,\n")

	return dir
}

func TestReflowCmd_RunsAgainstScenarioDirectory(t *testing.T) {
	dir := writeSimpleScenario(t)

	root := NewRootCmd()
	root.SetArgs([]string{"reflow", "--scenario", dir, "--format", "json"})

	var out strings.Builder
	root.SetOut(&out)

	if err := root.Execute(); err != nil {
		t.Fatalf("reflow command failed: %v", err)
	}
}

func TestValidateCmd_RejectsUnknownWorkCenter(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "work_centers.csv", "id,name\nWC1,Lathe 1\n")
	writeScenarioFile(t, dir, "shifts.csv", "work_center_id,day_of_week,start_hour,end_hour\nWC1,Monday,0,23\n")
	writeScenarioFile(t, dir, "work_orders.csv", ""+
		"id,number,work_center_id,original_start,original_end,duration_minutes,is_maintenance,depends_on\n"+
		"A,WO-1,GHOST,2025-06-02T08:00:00Z,2025-06-02T09:00:00Z,60,false,\n")

	root := NewRootCmd()
	root.SetArgs([]string{"validate", "--scenario", dir})

	if err := root.Execute(); err == nil {
		t.Fatal("expected validate to fail for an unknown work center")
	}
}

func TestGanttCmd_WritesSVGFile(t *testing.T) {
	dir := writeSimpleScenario(t)
	outFile := filepath.Join(t.TempDir(), "chart.svg")

	root := NewRootCmd()
	root.SetArgs([]string{"gantt", "--scenario", dir, "--output", outFile})

	if err := root.Execute(); err != nil {
		t.Fatalf("gantt command failed: %v", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("reading chart file: %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("expected an SVG file")
	}
}

func TestBatchCmd_RunsMultipleScenarios(t *testing.T) {
	dir1 := writeSimpleScenario(t)
	dir2 := writeSimpleScenario(t)

	root := NewRootCmd()
	root.SetArgs([]string{"batch", dir1, dir2})

	if err := root.Execute(); err != nil {
		t.Fatalf("batch command failed: %v", err)
	}
}
