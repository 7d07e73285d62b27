package dto

import (
	"time"

	"github.com/reflowlabs/reflow/pkg/reflow"
)

// ShiftDTO is the wire representation of a recurring weekly shift.
type ShiftDTO struct {
	DayOfWeek int `json:"dayOfWeek"`
	StartHour int `json:"startHour"`
	EndHour   int `json:"endHour"`
}

// MaintenanceWindowDTO is the wire representation of a maintenance
// window.
type MaintenanceWindowDTO struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Reason    string    `json:"reason,omitempty"`
}

// WorkCenterDataDTO is the `data` object nested inside a work center
// envelope.
type WorkCenterDataDTO struct {
	Name               string                 `json:"name,omitempty"`
	Shifts             []ShiftDTO             `json:"shifts"`
	MaintenanceWindows []MaintenanceWindowDTO `json:"maintenanceWindows,omitempty"`
}

// WorkCenterInputDTO is the wire representation of a work center: a
// docId plus its data envelope.
type WorkCenterInputDTO struct {
	DocID string            `json:"docId"`
	Data  WorkCenterDataDTO `json:"data"`
}

// WorkOrderDataDTO is the `data` object nested inside a work order
// envelope.
type WorkOrderDataDTO struct {
	WorkOrderNumber       string    `json:"workOrderNumber,omitempty"`
	WorkCenterID          string    `json:"workCenterId"`
	StartDate             time.Time `json:"startDate"`
	EndDate               time.Time `json:"endDate"`
	DurationMinutes       int       `json:"durationMinutes"`
	IsMaintenance         bool      `json:"isMaintenance,omitempty"`
	DependsOnWorkOrderIDs []string  `json:"dependsOnWorkOrderIds,omitempty"`
}

// WorkOrderInputDTO is the wire representation of a work order: a
// docId plus its data envelope.
type WorkOrderInputDTO struct {
	DocID string           `json:"docId"`
	Data  WorkOrderDataDTO `json:"data"`
}

// ReflowRequestDTO is the input to a reflow run.
type ReflowRequestDTO struct {
	WorkOrders        []WorkOrderInputDTO  `json:"workOrders"`
	WorkCenters       []WorkCenterInputDTO `json:"workCenters"`
	AllowEarlierStart bool                 `json:"allowEarlierStart,omitempty"`
	Timezone          string               `json:"timezone,omitempty"`
	Now               *time.Time           `json:"now,omitempty"`
}

// ResultDTO is the wire representation of a single order's outcome.
// WorkOrderID is carried explicitly because Results stays in
// processing (topological) order, not input order.
type ResultDTO struct {
	WorkOrderID     string    `json:"workOrderId"`
	WorkOrderNumber string    `json:"workOrderNumber"`
	WorkCenterID    string    `json:"workCenterId"`
	OriginalStart   time.Time `json:"originalStartDate"`
	OriginalEnd     time.Time `json:"originalEndDate"`
	NewStart        time.Time `json:"newStartDate"`
	NewEnd          time.Time `json:"newEndDate"`
	WasRescheduled  bool      `json:"wasRescheduled"`
	IsFixed         bool      `json:"isFixed"`
}

// MetadataDTO is the wire representation of a run's summary statistics.
type MetadataDTO struct {
	TotalOrders      int   `json:"totalOrders"`
	RescheduledCount int   `json:"rescheduledCount"`
	FixedCount       int   `json:"fixedCount"`
	ProcessingTimeMs int64 `json:"processingTimeMs"`
}

// ReflowResponseDTO is the output of a reflow run.
type ReflowResponseDTO struct {
	Results  []ResultDTO `json:"results"`
	Warnings []string    `json:"warnings,omitempty"`
	Metadata MetadataDTO `json:"metadata"`
}

// ToDomain translates a request DTO into the core engine's input types.
func (r ReflowRequestDTO) ToDomain() ([]reflow.WorkOrder, []reflow.WorkCenter, reflow.Config) {
	orders := make([]reflow.WorkOrder, len(r.WorkOrders))
	for i, w := range r.WorkOrders {
		dependsOn := make([]reflow.WorkOrderID, len(w.Data.DependsOnWorkOrderIDs))
		for j, d := range w.Data.DependsOnWorkOrderIDs {
			dependsOn[j] = reflow.WorkOrderID(d)
		}
		orders[i] = reflow.WorkOrder{
			ID:              reflow.WorkOrderID(w.DocID),
			Number:          w.Data.WorkOrderNumber,
			WorkCenterID:    reflow.WorkCenterID(w.Data.WorkCenterID),
			OriginalStart:   w.Data.StartDate,
			OriginalEnd:     w.Data.EndDate,
			DurationMinutes: w.Data.DurationMinutes,
			IsMaintenance:   w.Data.IsMaintenance,
			DependsOn:       dependsOn,
		}
	}

	centers := make([]reflow.WorkCenter, len(r.WorkCenters))
	for i, c := range r.WorkCenters {
		shifts := make([]reflow.ShiftDefinition, len(c.Data.Shifts))
		for j, s := range c.Data.Shifts {
			shifts[j] = reflow.ShiftDefinition{
				DayOfWeek: time.Weekday(s.DayOfWeek),
				StartHour: s.StartHour,
				EndHour:   s.EndHour,
			}
		}
		windows := make([]reflow.MaintenanceWindow, len(c.Data.MaintenanceWindows))
		for j, w := range c.Data.MaintenanceWindows {
			windows[j] = reflow.MaintenanceWindow{Start: w.StartDate, End: w.EndDate, Reason: w.Reason}
		}
		centers[i] = reflow.WorkCenter{ID: reflow.WorkCenterID(c.DocID), Name: c.Data.Name, Shifts: shifts, MaintenanceWindows: windows}
	}

	cfg := reflow.Config{AllowEarlierStart: r.AllowEarlierStart, Timezone: r.Timezone}
	if r.Now != nil {
		cfg.Now = *r.Now
	}
	return orders, centers, cfg
}

// FromDomain translates a completed engine Output into its wire form.
func FromDomain(out *reflow.Output) ReflowResponseDTO {
	results := make([]ResultDTO, len(out.Results))
	for i, r := range out.Results {
		results[i] = ResultDTO{
			WorkOrderID:     string(r.WorkOrderID),
			WorkOrderNumber: r.WorkOrderNumber,
			WorkCenterID:    string(r.WorkCenterID),
			OriginalStart:   r.OriginalStart,
			OriginalEnd:     r.OriginalEnd,
			NewStart:        r.NewStart,
			NewEnd:          r.NewEnd,
			WasRescheduled:  r.WasRescheduled,
			IsFixed:         r.IsFixed,
		}
	}
	return ReflowResponseDTO{
		Results:  results,
		Warnings: out.Warnings,
		Metadata: MetadataDTO{
			TotalOrders:      out.Metadata.TotalOrders,
			RescheduledCount: out.Metadata.RescheduledCount,
			FixedCount:       out.Metadata.FixedCount,
			ProcessingTimeMs: out.Metadata.ProcessingTimeMs,
		},
	}
}
