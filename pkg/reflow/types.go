package reflow

import "time"

// WorkOrderID is an opaque identifier for a work order. Logic never
// parses it; it is compared only for equality and lexical ordering.
type WorkOrderID string

// WorkCenterID is an opaque identifier for a work center.
type WorkCenterID string

// WorkOrder is a unit of production work to be placed on the schedule.
type WorkOrder struct {
	ID              WorkOrderID
	Number          string // human label, never used for logic
	WorkCenterID    WorkCenterID
	OriginalStart   time.Time
	OriginalEnd     time.Time
	DurationMinutes int
	IsMaintenance   bool
	DependsOn       []WorkOrderID
}

// WorkCenter is a machine or resource with a weekly shift calendar and a
// list of maintenance windows.
type WorkCenter struct {
	ID                 WorkCenterID
	Name               string
	Shifts             []ShiftDefinition
	MaintenanceWindows []MaintenanceWindow
}

// ShiftDefinition is a recurring weekly window during which a work
// center can run work, interpreted in the configured timezone.
//
// DayOfWeek follows time.Weekday: 0 = Sunday .. 6 = Saturday.
// When EndHour <= StartHour the shift wraps past midnight into the next
// calendar day; EndHour == StartHour means zero minutes (see DESIGN.md
// open question 1).
type ShiftDefinition struct {
	DayOfWeek time.Weekday
	StartHour int
	EndHour   int
}

// wraps reports whether the shift crosses midnight.
func (s ShiftDefinition) wraps() bool {
	return s.EndHour <= s.StartHour
}

// minutes returns the shift's length in minutes, 0 for the
// EndHour==StartHour degenerate case.
func (s ShiftDefinition) minutes() int {
	if s.EndHour == s.StartHour {
		return 0
	}
	if s.wraps() {
		return (24-s.StartHour+s.EndHour)*60
	}
	return (s.EndHour - s.StartHour) * 60
}

// MaintenanceWindow is a half-open UTC interval [Start, End) during which
// a work center cannot run work. Takes precedence over shifts.
type MaintenanceWindow struct {
	Start  time.Time
	End    time.Time
	Reason string
}

// Config holds per-call scheduling configuration.
type Config struct {
	// AllowEarlierStart permits a schedule earlier than the original
	// start when upstream constraints allow it.
	AllowEarlierStart bool
	// Timezone is the IANA zone name governing all shift interpretation.
	// Empty means UTC.
	Timezone string
	// Now is the deterministic substitute for "current instant" used
	// only when AllowEarlierStart is true and an order has neither
	// machine history nor dependencies to anchor it (see DESIGN.md open
	// question 3). Required in that situation; ignored otherwise.
	Now time.Time

	loc *time.Location
}

// Location returns the resolved timezone, defaulting to UTC.
func (c *Config) Location() *time.Location {
	if c.loc != nil {
		return c.loc
	}
	return time.UTC
}

// Validate resolves the configured timezone and caches it, returning a
// ValidationError if the IANA name is unknown. The AllowEarlierStart +
// missing Now combination can only be detected per order — once it's
// known whether an order actually lacks machine history and
// dependencies — so Engine.Reflow checks that case itself.
func (c *Config) Validate() error {
	if c.Timezone == "" {
		c.loc = time.UTC
		return nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return &ValidationError{Causes: []string{
			"unknown timezone " + c.Timezone + ": " + err.Error(),
		}}
	}
	c.loc = loc
	return nil
}

// Result is the per-order outcome of a reflow call.
type Result struct {
	WorkOrderID     WorkOrderID
	WorkOrderNumber string
	WorkCenterID    WorkCenterID
	OriginalStart   time.Time
	OriginalEnd     time.Time
	NewStart        time.Time
	NewEnd          time.Time
	WasRescheduled  bool
	IsFixed         bool
}

// Metadata summarizes a reflow run.
type Metadata struct {
	TotalOrders      int
	RescheduledCount int
	FixedCount       int
	ProcessingTimeMs int64
}

// Output is the complete result of a single Reflow call.
type Output struct {
	Results  []Result
	Warnings []string
	Metadata Metadata
}
