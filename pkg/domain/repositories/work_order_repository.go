package repositories

import "github.com/reflowlabs/reflow/pkg/domain/entities"

// WorkOrderRepository provides access to work orders awaiting a
// schedule.
type WorkOrderRepository interface {
	GetByID(id entities.WorkOrderID) (*entities.WorkOrder, error)
	GetByWorkCenter(workCenterID entities.WorkCenterID) ([]*entities.WorkOrder, error)
	GetAll() ([]*entities.WorkOrder, error)
	LoadWorkOrders(orders []*entities.WorkOrder) error
}
