package entities

import (
	"fmt"
	"time"
)

// ShiftDefinition is a recurring weekly window during which a work
// center can run work. DayOfWeek follows time.Weekday.
type ShiftDefinition struct {
	DayOfWeek time.Weekday
	StartHour int
	EndHour   int
}

// MaintenanceWindow is a half-open UTC interval during which a work
// center cannot run work.
type MaintenanceWindow struct {
	Start  time.Time
	End    time.Time
	Reason string
}

// WorkCenter is a validated machine or resource with a weekly shift
// calendar and a list of maintenance windows.
type WorkCenter struct {
	ID                 WorkCenterID
	Name               string
	Shifts             []ShiftDefinition
	MaintenanceWindows []MaintenanceWindow
}

// NewWorkCenter creates a validated WorkCenter.
func NewWorkCenter(id WorkCenterID, name string, shifts []ShiftDefinition, windows []MaintenanceWindow) (*WorkCenter, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("work center id cannot be empty")
	}
	for _, s := range shifts {
		if s.DayOfWeek < time.Sunday || s.DayOfWeek > time.Saturday {
			return nil, fmt.Errorf("work center %s: invalid day of week %d", id, s.DayOfWeek)
		}
		if s.StartHour < 0 || s.StartHour > 23 || s.EndHour < 0 || s.EndHour > 23 {
			return nil, fmt.Errorf("work center %s: shift hours must be in [0,23], got start=%d end=%d", id, s.StartHour, s.EndHour)
		}
	}
	for _, w := range windows {
		if w.Start.After(w.End) {
			return nil, fmt.Errorf("work center %s: maintenance window start %v cannot be after end %v", id, w.Start, w.End)
		}
	}

	return &WorkCenter{ID: id, Name: name, Shifts: shifts, MaintenanceWindows: windows}, nil
}
