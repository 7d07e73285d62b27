package services

import (
	"context"
	"fmt"
	"time"

	"github.com/reflowlabs/reflow/pkg/application/dto"
	"github.com/reflowlabs/reflow/pkg/domain/entities"
	"github.com/reflowlabs/reflow/pkg/domain/repositories"
	"github.com/reflowlabs/reflow/pkg/domain/services"
	"github.com/reflowlabs/reflow/pkg/infrastructure/events"
	"github.com/reflowlabs/reflow/pkg/reflow"
)

// ReflowService orchestrates a reflow run: it loads work orders and
// work centers from their repositories, builds a pkg/reflow.Engine,
// runs it, publishes lifecycle events, and returns a wire-ready DTO.
type ReflowService struct {
	workOrders  repositories.WorkOrderRepository
	workCenters repositories.WorkCenterRepository
	store       events.EventStore
	observer    ReflowObserver
}

// NewReflowService constructs a ReflowService. A nil store or observer
// falls back to a no-op implementation.
func NewReflowService(workOrders repositories.WorkOrderRepository, workCenters repositories.WorkCenterRepository, store events.EventStore, observer ReflowObserver) *ReflowService {
	return &ReflowService{
		workOrders:  workOrders,
		workCenters: workCenters,
		store:       store,
		observer:    observerOrNoop(observer),
	}
}

// Validate runs the non-throwing preflight checks over the repository's
// current contents without invoking the scheduler itself.
func (s *ReflowService) Validate() (*services.ValidationResult, error) {
	orders, centers, err := s.loadAll()
	if err != nil {
		return nil, err
	}
	v := services.NewDependencyValidator()
	return v.Validate(orders, centers), nil
}

// Run executes a reflow over every work order currently in the
// repository, against every known work center.
func (s *ReflowService) Run(ctx context.Context, cfg reflow.Config) (dto.ReflowResponseDTO, error) {
	started := time.Now()

	orders, centers, err := s.loadAll()
	if err != nil {
		return dto.ReflowResponseDTO{}, err
	}

	s.publish(events.NewReflowStartedEvent("reflow", len(orders)))

	engineOrders := make([]reflow.WorkOrder, len(orders))
	for i, o := range orders {
		engineOrders[i] = toEngineOrder(o)
	}
	engineCenters := make([]reflow.WorkCenter, len(centers))
	for i, c := range centers {
		engineCenters[i] = toEngineCenter(c)
	}

	engine, err := reflow.NewEngine(engineCenters, cfg)
	if err != nil {
		s.publish(events.NewReflowFailedEvent("reflow", err.Error()))
		s.observe(ctx, "reflow.run", started, false, err, nil)
		return dto.ReflowResponseDTO{}, err
	}

	out, err := engine.Reflow(ctx, engineOrders)
	if err != nil {
		s.publish(events.NewReflowFailedEvent("reflow", err.Error()))
		s.observe(ctx, "reflow.run", started, false, err, nil)
		return dto.ReflowResponseDTO{}, err
	}

	for _, r := range out.Results {
		entityResult := toEntityResult(r)
		s.publish(events.NewOrderScheduledEvent(string(r.WorkOrderID), entityResult))
		if r.NewEnd.After(r.OriginalEnd) {
			s.publish(events.NewOrderDelayedEvent(string(r.WorkOrderID), entityResult,
				fmt.Sprintf("new end %s is after original end %s", r.NewEnd, r.OriginalEnd)))
		}
	}
	s.publish(events.NewReflowCompletedEvent("reflow", toEntityMetadata(out.Metadata)))
	s.observe(ctx, "reflow.run", started, true, nil, map[string]any{
		"order_count":       len(orders),
		"rescheduled_count": out.Metadata.RescheduledCount,
		"fixed_count":       out.Metadata.FixedCount,
	})

	return dto.FromDomain(out), nil
}

func (s *ReflowService) loadAll() ([]entities.WorkOrder, []entities.WorkCenter, error) {
	orderPtrs, err := s.workOrders.GetAll()
	if err != nil {
		return nil, nil, fmt.Errorf("loading work orders: %w", err)
	}
	centerPtrs, err := s.workCenters.GetAll()
	if err != nil {
		return nil, nil, fmt.Errorf("loading work centers: %w", err)
	}
	orders := make([]entities.WorkOrder, len(orderPtrs))
	for i, o := range orderPtrs {
		orders[i] = *o
	}
	centers := make([]entities.WorkCenter, len(centerPtrs))
	for i, c := range centerPtrs {
		centers[i] = *c
	}
	return orders, centers, nil
}

func (s *ReflowService) publish(event events.Event) {
	if s.store == nil {
		return
	}
	_ = s.store.AppendEvent(event.StreamID(), event)
}

func (s *ReflowService) observe(ctx context.Context, name string, started time.Time, success bool, err error, fields map[string]any) {
	s.observer.ObserveReflow(ctx, ReflowEvent{
		Name:      name,
		Duration:  time.Since(started),
		Success:   success,
		Err:       err,
		Fields:    fields,
		StartedAt: started,
	})
}

func toEngineOrder(o entities.WorkOrder) reflow.WorkOrder {
	dependsOn := make([]reflow.WorkOrderID, len(o.DependsOn))
	for i, d := range o.DependsOn {
		dependsOn[i] = reflow.WorkOrderID(d)
	}
	return reflow.WorkOrder{
		ID:              reflow.WorkOrderID(o.ID),
		Number:          o.Number,
		WorkCenterID:    reflow.WorkCenterID(o.WorkCenterID),
		OriginalStart:   o.OriginalStart,
		OriginalEnd:     o.OriginalEnd,
		DurationMinutes: o.DurationMinutes,
		IsMaintenance:   o.IsMaintenance,
		DependsOn:       dependsOn,
	}
}

func toEngineCenter(c entities.WorkCenter) reflow.WorkCenter {
	shifts := make([]reflow.ShiftDefinition, len(c.Shifts))
	for i, s := range c.Shifts {
		shifts[i] = reflow.ShiftDefinition{DayOfWeek: s.DayOfWeek, StartHour: s.StartHour, EndHour: s.EndHour}
	}
	windows := make([]reflow.MaintenanceWindow, len(c.MaintenanceWindows))
	for i, w := range c.MaintenanceWindows {
		windows[i] = reflow.MaintenanceWindow{Start: w.Start, End: w.End, Reason: w.Reason}
	}
	return reflow.WorkCenter{ID: reflow.WorkCenterID(c.ID), Name: c.Name, Shifts: shifts, MaintenanceWindows: windows}
}

func toEntityResult(r reflow.Result) entities.ReflowResult {
	return entities.ReflowResult{
		WorkOrderID:    entities.WorkOrderID(r.WorkOrderID),
		WorkCenterID:   entities.WorkCenterID(r.WorkCenterID),
		OriginalStart:  r.OriginalStart,
		OriginalEnd:    r.OriginalEnd,
		NewStart:       r.NewStart,
		NewEnd:         r.NewEnd,
		WasRescheduled: r.WasRescheduled,
		IsFixed:        r.IsFixed,
	}
}

func toEntityMetadata(m reflow.Metadata) entities.ReflowMetadata {
	return entities.ReflowMetadata{
		TotalOrders:      m.TotalOrders,
		RescheduledCount: m.RescheduledCount,
		FixedCount:       m.FixedCount,
		ProcessingTimeMs: m.ProcessingTimeMs,
	}
}
