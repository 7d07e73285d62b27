package memory

import (
	"fmt"
	"sync"

	"github.com/reflowlabs/reflow/pkg/domain/entities"
	"github.com/reflowlabs/reflow/pkg/domain/repositories"
)

// WorkOrderRepository is an in-memory, concurrency-safe
// repositories.WorkOrderRepository.
type WorkOrderRepository struct {
	mu     sync.RWMutex
	orders []entities.WorkOrder
	byID   map[entities.WorkOrderID]int
}

// NewWorkOrderRepository creates an empty in-memory work order
// repository with room for expectedOrders entries.
func NewWorkOrderRepository(expectedOrders int) *WorkOrderRepository {
	return &WorkOrderRepository{
		orders: make([]entities.WorkOrder, 0, expectedOrders),
		byID:   make(map[entities.WorkOrderID]int, expectedOrders),
	}
}

var _ repositories.WorkOrderRepository = (*WorkOrderRepository)(nil)

// LoadWorkOrders loads orders into the repository, overwriting any
// existing order with the same id.
func (r *WorkOrderRepository) LoadWorkOrders(orders []*entities.WorkOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range orders {
		r.put(*o)
	}
	return nil
}

func (r *WorkOrderRepository) put(o entities.WorkOrder) {
	if idx, exists := r.byID[o.ID]; exists {
		r.orders[idx] = o
		return
	}
	r.byID[o.ID] = len(r.orders)
	r.orders = append(r.orders, o)
}

// GetByID returns the work order with the given id.
func (r *WorkOrderRepository) GetByID(id entities.WorkOrderID) (*entities.WorkOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, exists := r.byID[id]
	if !exists {
		return nil, fmt.Errorf("work order not found: %s", id)
	}
	o := r.orders[idx]
	return &o, nil
}

// GetByWorkCenter returns every work order assigned to workCenterID.
func (r *WorkOrderRepository) GetByWorkCenter(workCenterID entities.WorkCenterID) ([]*entities.WorkOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entities.WorkOrder
	for i := range r.orders {
		if r.orders[i].WorkCenterID == workCenterID {
			o := r.orders[i]
			out = append(out, &o)
		}
	}
	return out, nil
}

// GetAll returns every work order in the repository.
func (r *WorkOrderRepository) GetAll() ([]*entities.WorkOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entities.WorkOrder, len(r.orders))
	for i := range r.orders {
		o := r.orders[i]
		out[i] = &o
	}
	return out, nil
}
