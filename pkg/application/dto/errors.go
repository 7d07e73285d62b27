package dto

import (
	"errors"

	"github.com/reflowlabs/reflow/pkg/reflow"
)

// ErrorDTO is the wire representation of a failed reflow call. Error is
// the typed kind name (e.g. "MissingWorkCenterError"); Message is
// human-readable; the remaining fields carry the kind-specific payload
// and are omitted when not applicable to the kind.
type ErrorDTO struct {
	StatusCode          int      `json:"statusCode"`
	Error               string   `json:"error"`
	Message             string   `json:"message"`
	WorkOrderID         string   `json:"workOrderId,omitempty"`
	WorkCenterID        string   `json:"workCenterId,omitempty"`
	MissingDependencyID string   `json:"missingDependencyId,omitempty"`
	Cycle               []string `json:"cycle,omitempty"`
	Causes              []string `json:"causes,omitempty"`
}

// MapError classifies err against the engine's typed error kinds and
// produces a stable, structured ErrorDTO. Unrecognized errors map to a
// generic 500 with the kind name "InternalError", so callers never have
// to pattern-match error strings.
func MapError(err error) ErrorDTO {
	if err == nil {
		return ErrorDTO{}
	}

	var missingCenter *reflow.MissingWorkCenterError
	if errors.As(err, &missingCenter) {
		return ErrorDTO{
			StatusCode:   400,
			Error:        "MissingWorkCenterError",
			Message:      err.Error(),
			WorkOrderID:  string(missingCenter.OrderID),
			WorkCenterID: string(missingCenter.WorkCenterID),
		}
	}

	var missingDep *reflow.MissingDependencyError
	if errors.As(err, &missingDep) {
		return ErrorDTO{
			StatusCode:          400,
			Error:               "MissingDependencyError",
			Message:             err.Error(),
			WorkOrderID:         string(missingDep.OrderID),
			MissingDependencyID: string(missingDep.DependencyID),
		}
	}

	var circular *reflow.CircularDependencyError
	if errors.As(err, &circular) {
		cycle := make([]string, len(circular.Cycle))
		for i, id := range circular.Cycle {
			cycle[i] = string(id)
		}
		return ErrorDTO{
			StatusCode: 400,
			Error:      "CircularDependencyError",
			Message:    err.Error(),
			Cycle:      cycle,
		}
	}

	var noSlot *reflow.NoWorkableSlotError
	if errors.As(err, &noSlot) {
		return ErrorDTO{
			StatusCode:   400,
			Error:        "NoWorkableSlotError",
			Message:      err.Error(),
			WorkOrderID:  string(noSlot.OrderID),
			WorkCenterID: string(noSlot.WorkCenterID),
		}
	}

	var validation *reflow.ValidationError
	if errors.As(err, &validation) {
		return ErrorDTO{
			StatusCode: 400,
			Error:      "ValidationError",
			Message:    err.Error(),
			Causes:     validation.Causes,
		}
	}

	return ErrorDTO{StatusCode: 500, Error: "InternalError", Message: err.Error()}
}
