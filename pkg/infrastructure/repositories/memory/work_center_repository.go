package memory

import (
	"fmt"
	"sync"

	"github.com/reflowlabs/reflow/pkg/domain/entities"
	"github.com/reflowlabs/reflow/pkg/domain/repositories"
)

// WorkCenterRepository is an in-memory, concurrency-safe
// repositories.WorkCenterRepository.
type WorkCenterRepository struct {
	mu      sync.RWMutex
	centers []entities.WorkCenter
	byID    map[entities.WorkCenterID]int
}

// NewWorkCenterRepository creates an empty in-memory work center
// repository.
func NewWorkCenterRepository(expectedCenters int) *WorkCenterRepository {
	return &WorkCenterRepository{
		centers: make([]entities.WorkCenter, 0, expectedCenters),
		byID:    make(map[entities.WorkCenterID]int, expectedCenters),
	}
}

var _ repositories.WorkCenterRepository = (*WorkCenterRepository)(nil)

// LoadWorkCenters loads centers into the repository, overwriting any
// existing center with the same id.
func (r *WorkCenterRepository) LoadWorkCenters(centers []*entities.WorkCenter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range centers {
		if idx, exists := r.byID[c.ID]; exists {
			r.centers[idx] = *c
			continue
		}
		r.byID[c.ID] = len(r.centers)
		r.centers = append(r.centers, *c)
	}
	return nil
}

// GetByID returns the work center with the given id.
func (r *WorkCenterRepository) GetByID(id entities.WorkCenterID) (*entities.WorkCenter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, exists := r.byID[id]
	if !exists {
		return nil, fmt.Errorf("work center not found: %s", id)
	}
	c := r.centers[idx]
	return &c, nil
}

// GetAll returns every work center in the repository.
func (r *WorkCenterRepository) GetAll() ([]*entities.WorkCenter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entities.WorkCenter, len(r.centers))
	for i := range r.centers {
		c := r.centers[i]
		out[i] = &c
	}
	return out, nil
}
