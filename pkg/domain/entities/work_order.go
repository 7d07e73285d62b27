package entities

import (
	"fmt"
	"time"
)

// WorkOrderID uniquely identifies a work order within a repository.
type WorkOrderID string

// WorkCenterID uniquely identifies a work center within a repository.
type WorkCenterID string

// WorkOrder is a validated unit of production work awaiting a
// schedule. Unlike pkg/reflow.WorkOrder, which is a lean value the
// engine walks millions of times, this entity carries the bookkeeping
// fields a repository and a human operator care about.
type WorkOrder struct {
	ID              WorkOrderID
	Number          string
	WorkCenterID    WorkCenterID
	OriginalStart   time.Time
	OriginalEnd     time.Time
	DurationMinutes int
	IsMaintenance   bool
	DependsOn       []WorkOrderID
	CreatedAt       time.Time
}

// NewWorkOrder creates a validated WorkOrder.
func NewWorkOrder(
	id WorkOrderID,
	number string,
	workCenterID WorkCenterID,
	originalStart, originalEnd time.Time,
	durationMinutes int,
	isMaintenance bool,
	dependsOn []WorkOrderID,
) (*WorkOrder, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("work order id cannot be empty")
	}
	if string(workCenterID) == "" {
		return nil, fmt.Errorf("work order %s: work center id cannot be empty", id)
	}
	if durationMinutes < 0 {
		return nil, fmt.Errorf("work order %s: duration must not be negative, got %d", id, durationMinutes)
	}
	if originalStart.After(originalEnd) {
		return nil, fmt.Errorf("work order %s: original start %v cannot be after original end %v", id, originalStart, originalEnd)
	}
	for _, dep := range dependsOn {
		if dep == id {
			return nil, fmt.Errorf("work order %s cannot depend on itself", id)
		}
	}

	return &WorkOrder{
		ID:              id,
		Number:          number,
		WorkCenterID:    workCenterID,
		OriginalStart:   originalStart,
		OriginalEnd:     originalEnd,
		DurationMinutes: durationMinutes,
		IsMaintenance:   isMaintenance,
		DependsOn:       dependsOn,
	}, nil
}
