package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reflowlabs/reflow/pkg/domain/entities"
)

// Loader handles loading work orders, work centers, and maintenance
// windows from CSV files.
type Loader struct{}

// NewLoader creates a new CSV loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadWorkOrders loads work orders from a CSV file. A row with an empty
// id column is assigned a generated uuid, so hand-edited CSVs don't need
// to invent their own identifiers.
func (l *Loader) LoadWorkOrders(filename string) ([]*entities.WorkOrder, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open work orders file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read work orders CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("work orders CSV must have header and at least one data row")
	}

	expectedHeader := []string{"id", "number", "work_center_id", "original_start", "original_end", "duration_minutes", "is_maintenance", "depends_on"}
	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("work orders CSV header mismatch. Expected: %v, Got: %v", expectedHeader, header)
	}

	var orders []*entities.WorkOrder
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("work orders CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		order, err := parseWorkOrder(record)
		if err != nil {
			return nil, fmt.Errorf("work orders CSV row %d: %w", i+2, err)
		}

		orders = append(orders, &order)
	}

	return orders, nil
}

// LoadWorkCenters loads work centers from a CSV file. Each work center's
// shifts and maintenance windows are loaded separately via LoadShifts and
// LoadMaintenanceWindows and attached by work center id.
func (l *Loader) LoadWorkCenters(filename string) ([]*entities.WorkCenter, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open work centers file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read work centers CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("work centers CSV must have header and at least one data row")
	}

	expectedHeader := []string{"id", "name"}
	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("work centers CSV header mismatch. Expected: %v, Got: %v", expectedHeader, header)
	}

	var centers []*entities.WorkCenter
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("work centers CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		id := strings.TrimSpace(record[0])
		if id == "" {
			id = uuid.New().String()
		}

		centers = append(centers, &entities.WorkCenter{
			ID:   entities.WorkCenterID(id),
			Name: record[1],
		})
	}

	return centers, nil
}

// LoadShifts loads weekly shift definitions from a CSV file and attaches
// each one to the matching work center in centers by id.
func (l *Loader) LoadShifts(filename string, centers []*entities.WorkCenter) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open shifts file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read shifts CSV: %w", err)
	}

	if len(records) < 2 {
		return fmt.Errorf("shifts CSV must have header and at least one data row")
	}

	expectedHeader := []string{"work_center_id", "day_of_week", "start_hour", "end_hour"}
	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return fmt.Errorf("shifts CSV header mismatch. Expected: %v, Got: %v", expectedHeader, header)
	}

	byID := indexCenters(centers)

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return fmt.Errorf("shifts CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		workCenterID := entities.WorkCenterID(strings.TrimSpace(record[0]))
		center, ok := byID[workCenterID]
		if !ok {
			return fmt.Errorf("shifts CSV row %d: unknown work center id %q", i+2, workCenterID)
		}

		day, err := parseDayOfWeek(record[1])
		if err != nil {
			return fmt.Errorf("shifts CSV row %d: %w", i+2, err)
		}

		startHour, err := strconv.Atoi(record[2])
		if err != nil {
			return fmt.Errorf("shifts CSV row %d: invalid start_hour: %s", i+2, record[2])
		}
		endHour, err := strconv.Atoi(record[3])
		if err != nil {
			return fmt.Errorf("shifts CSV row %d: invalid end_hour: %s", i+2, record[3])
		}

		center.Shifts = append(center.Shifts, entities.ShiftDefinition{
			DayOfWeek: day,
			StartHour: startHour,
			EndHour:   endHour,
		})
	}

	return nil
}

// LoadMaintenanceWindows loads maintenance windows from a CSV file and
// attaches each one to the matching work center in centers by id.
func (l *Loader) LoadMaintenanceWindows(filename string, centers []*entities.WorkCenter) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open maintenance windows file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read maintenance windows CSV: %w", err)
	}

	if len(records) < 2 {
		return fmt.Errorf("maintenance windows CSV must have header and at least one data row")
	}

	expectedHeader := []string{"work_center_id", "start", "end", "reason"}
	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return fmt.Errorf("maintenance windows CSV header mismatch. Expected: %v, Got: %v", expectedHeader, header)
	}

	byID := indexCenters(centers)

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return fmt.Errorf("maintenance windows CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		workCenterID := entities.WorkCenterID(strings.TrimSpace(record[0]))
		center, ok := byID[workCenterID]
		if !ok {
			return fmt.Errorf("maintenance windows CSV row %d: unknown work center id %q", i+2, workCenterID)
		}

		start, err := time.Parse(time.RFC3339, record[1])
		if err != nil {
			return fmt.Errorf("maintenance windows CSV row %d: invalid start: %s (expected RFC3339)", i+2, record[1])
		}
		end, err := time.Parse(time.RFC3339, record[2])
		if err != nil {
			return fmt.Errorf("maintenance windows CSV row %d: invalid end: %s (expected RFC3339)", i+2, record[2])
		}

		center.MaintenanceWindows = append(center.MaintenanceWindows, entities.MaintenanceWindow{
			Start:  start,
			End:    end,
			Reason: record[3],
		})
	}

	return nil
}

func indexCenters(centers []*entities.WorkCenter) map[entities.WorkCenterID]*entities.WorkCenter {
	byID := make(map[entities.WorkCenterID]*entities.WorkCenter, len(centers))
	for _, c := range centers {
		byID[c.ID] = c
	}
	return byID
}

// Helper functions for parsing CSV records

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseWorkOrder(record []string) (entities.WorkOrder, error) {
	id := strings.TrimSpace(record[0])
	if id == "" {
		id = uuid.New().String()
	}

	number := record[1]
	workCenterID := entities.WorkCenterID(record[2])

	originalStart, err := time.Parse(time.RFC3339, record[3])
	if err != nil {
		return entities.WorkOrder{}, fmt.Errorf("invalid original_start: %s (expected RFC3339)", record[3])
	}
	originalEnd, err := time.Parse(time.RFC3339, record[4])
	if err != nil {
		return entities.WorkOrder{}, fmt.Errorf("invalid original_end: %s (expected RFC3339)", record[4])
	}

	durationMinutes, err := strconv.Atoi(record[5])
	if err != nil {
		return entities.WorkOrder{}, fmt.Errorf("invalid duration_minutes: %s", record[5])
	}

	isMaintenance, err := strconv.ParseBool(record[6])
	if err != nil {
		return entities.WorkOrder{}, fmt.Errorf("invalid is_maintenance: %s", record[6])
	}

	var dependsOn []entities.WorkOrderID
	if trimmed := strings.TrimSpace(record[7]); trimmed != "" {
		for _, dep := range strings.Split(trimmed, ";") {
			dependsOn = append(dependsOn, entities.WorkOrderID(strings.TrimSpace(dep)))
		}
	}

	return entities.WorkOrder{
		ID:              entities.WorkOrderID(id),
		Number:          number,
		WorkCenterID:    workCenterID,
		OriginalStart:   originalStart,
		OriginalEnd:     originalEnd,
		DurationMinutes: durationMinutes,
		IsMaintenance:   isMaintenance,
		DependsOn:       dependsOn,
	}, nil
}

func parseDayOfWeek(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunday", "sun", "0":
		return time.Sunday, nil
	case "monday", "mon", "1":
		return time.Monday, nil
	case "tuesday", "tue", "2":
		return time.Tuesday, nil
	case "wednesday", "wed", "3":
		return time.Wednesday, nil
	case "thursday", "thu", "4":
		return time.Thursday, nil
	case "friday", "fri", "5":
		return time.Friday, nil
	case "saturday", "sat", "6":
		return time.Saturday, nil
	default:
		return 0, fmt.Errorf("invalid day_of_week: %s", s)
	}
}
