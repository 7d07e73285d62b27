package reflow

import (
	"fmt"
	"strings"
	"time"
)

// MissingWorkCenterError indicates an order references an unknown work
// center. Fatal; aborts the reflow.
type MissingWorkCenterError struct {
	OrderID      WorkOrderID
	WorkCenterID WorkCenterID
}

func (e *MissingWorkCenterError) Error() string {
	return fmt.Sprintf("work order %s references unknown work center %s", e.OrderID, e.WorkCenterID)
}

// MissingDependencyError indicates an order depends on an unknown order.
// Fatal; caught during graph build.
type MissingDependencyError struct {
	OrderID      WorkOrderID
	DependencyID WorkOrderID
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("work order %s depends on unknown work order %s", e.OrderID, e.DependencyID)
}

// CircularDependencyError indicates the topological sort could not drain
// the graph. Carries a cycle witness: a sequence of ids that, read in
// order, re-encounters its first id.
type CircularDependencyError struct {
	Cycle []WorkOrderID
}

func (e *CircularDependencyError) Error() string {
	parts := make([]string, len(e.Cycle))
	for i, id := range e.Cycle {
		parts[i] = string(id)
	}
	return "circular dependency: " + strings.Join(parts, " -> ")
}

// NoWorkableSlotError indicates the calendar engine exhausted its search
// horizon looking for a workable slot or enough working minutes.
type NoWorkableSlotError struct {
	OrderID      WorkOrderID
	WorkCenterID WorkCenterID
	Horizon      time.Duration
}

func (e *NoWorkableSlotError) Error() string {
	return fmt.Sprintf("no workable slot found for work order %s on work center %s within %s",
		e.OrderID, e.WorkCenterID, e.Horizon)
}

// ValidationError indicates the input was structurally malformed.
// Unlike the other kinds it can carry more than one cause.
type ValidationError struct {
	Causes []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Causes, "; ")
}
