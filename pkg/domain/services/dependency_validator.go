package services

import (
	"fmt"

	"github.com/reflowlabs/reflow/pkg/domain/entities"
)

// DependencyValidator provides non-throwing preflight validation over a
// batch of work orders, surfacing every structural problem in one pass
// instead of aborting at the first one.
type DependencyValidator struct{}

// NewDependencyValidator creates a new DependencyValidator.
func NewDependencyValidator() *DependencyValidator {
	return &DependencyValidator{}
}

// ValidationResult collects every structural problem Validate found.
type ValidationResult struct {
	HasCycles        bool
	CyclePaths       [][]entities.WorkOrderID
	MissingCenters   []entities.WorkOrderID
	MissingDeps      map[entities.WorkOrderID][]entities.WorkOrderID
	DuplicateOrderID []entities.WorkOrderID
	Errors           []string
}

// Validate walks orders and workCenters and reports every problem it
// finds: unknown work centers, unknown dependencies, duplicate ids, and
// dependency cycles. It never aborts early — callers that want
// fail-fast behavior should call Engine.Reflow directly instead, which
// stops at the first fatal error.
func (v *DependencyValidator) Validate(orders []entities.WorkOrder, workCenters []entities.WorkCenter) *ValidationResult {
	result := &ValidationResult{
		MissingDeps: make(map[entities.WorkOrderID][]entities.WorkOrderID),
		Errors:      make([]string, 0),
	}

	centerIDs := make(map[entities.WorkCenterID]bool, len(workCenters))
	for _, wc := range workCenters {
		centerIDs[wc.ID] = true
	}

	seen := make(map[entities.WorkOrderID]bool, len(orders))
	orderIDs := make(map[entities.WorkOrderID]bool, len(orders))
	for _, o := range orders {
		orderIDs[o.ID] = true
	}

	for _, o := range orders {
		if seen[o.ID] {
			result.DuplicateOrderID = append(result.DuplicateOrderID, o.ID)
			result.Errors = append(result.Errors, fmt.Sprintf("duplicate work order id %s", o.ID))
		}
		seen[o.ID] = true

		if !centerIDs[o.WorkCenterID] {
			result.MissingCenters = append(result.MissingCenters, o.ID)
			result.Errors = append(result.Errors, fmt.Sprintf("work order %s references unknown work center %s", o.ID, o.WorkCenterID))
		}

		for _, dep := range o.DependsOn {
			if !orderIDs[dep] {
				result.MissingDeps[o.ID] = append(result.MissingDeps[o.ID], dep)
				result.Errors = append(result.Errors, fmt.Sprintf("work order %s depends on unknown work order %s", o.ID, dep))
			}
		}
	}

	adjacency := v.buildAdjacency(orders)
	cycles := v.detectCycles(adjacency)
	result.HasCycles = len(cycles) > 0
	result.CyclePaths = cycles
	for _, cycle := range cycles {
		result.Errors = append(result.Errors, fmt.Sprintf("circular dependency: %v", cycle))
	}

	return result
}

func (v *DependencyValidator) buildAdjacency(orders []entities.WorkOrder) map[entities.WorkOrderID][]entities.WorkOrderID {
	adjacency := make(map[entities.WorkOrderID][]entities.WorkOrderID, len(orders))
	for _, o := range orders {
		adjacency[o.ID] = append(adjacency[o.ID], o.DependsOn...)
	}
	return adjacency
}

// detectCycles runs a DFS with a recursion stack over adjacency,
// collecting every distinct cycle it encounters rather than stopping at
// the first one — the same algorithm pkg/reflow's findCycle uses, but
// exhaustive instead of fail-fast, since this is a preflight report.
func (v *DependencyValidator) detectCycles(adjacency map[entities.WorkOrderID][]entities.WorkOrderID) [][]entities.WorkOrderID {
	visited := make(map[entities.WorkOrderID]bool)
	onStack := make(map[entities.WorkOrderID]bool)
	var cycles [][]entities.WorkOrderID

	var visit func(id entities.WorkOrderID, path []entities.WorkOrderID)
	visit = func(id entities.WorkOrderID, path []entities.WorkOrderID) {
		visited[id] = true
		onStack[id] = true
		path = append(path, id)

		for _, dep := range adjacency[id] {
			if onStack[dep] {
				for i, p := range path {
					if p == dep {
						cycle := append([]entities.WorkOrderID{}, path[i:]...)
						cycles = append(cycles, append(cycle, dep))
						break
					}
				}
				continue
			}
			if !visited[dep] {
				visit(dep, path)
			}
		}

		onStack[id] = false
	}

	for id := range adjacency {
		if !visited[id] {
			visit(id, nil)
		}
	}
	return cycles
}
