package repositories

import "github.com/reflowlabs/reflow/pkg/domain/entities"

// WorkCenterRepository provides access to work center shift calendars
// and maintenance windows.
type WorkCenterRepository interface {
	GetByID(id entities.WorkCenterID) (*entities.WorkCenter, error)
	GetAll() ([]*entities.WorkCenter, error)
	LoadWorkCenters(centers []*entities.WorkCenter) error
}
