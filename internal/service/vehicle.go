// Package service provides business-logic services for the vehicle
// inventory and reference data, delegating persistence to repository
// interfaces.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/lionscars/inventory/internal/models"
)

// VehicleRepository defines the persistence operations needed by the
// VehicleService.
type VehicleRepository interface {
	// ListAll returns every stored vehicle plus the ids of rows whose
	// bodies could not be decoded.
	ListAll(ctx context.Context) ([]models.Vehicle, []int64, error)
	// Create persists a new document and returns it with its assigned id.
	Create(ctx context.Context, v models.Vehicle) (models.Vehicle, error)
	// Update replaces the whole stored body; matched reports whether a row
	// with that id existed.
	Update(ctx context.Context, id int64, v models.Vehicle) (bool, error)
	// Delete removes the document with the given id; idempotent.
	Delete(ctx context.Context, id int64) error
	// GetByID fetches one document or models.ErrNotFound.
	GetByID(ctx context.Context, id int64) (models.Vehicle, error)
	// ResetMetrics zeroes both counters on every document and returns the
	// number touched.
	ResetMetrics(ctx context.Context) (int64, error)
}

// VehicleService implements inventory operations and the counter update
// semantics on top of a VehicleRepository.
type VehicleService struct {
	repo VehicleRepository

	// mu guards locks; locks serializes counter increments per vehicle id
	// so concurrent read-modify-write cycles cannot lose updates.
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewVehicleService constructs a VehicleService with the provided repository.
func NewVehicleService(repo VehicleRepository) *VehicleService {
	return &VehicleService{
		repo:  repo,
		locks: make(map[int64]*sync.Mutex),
	}
}

// ListAll returns every stored vehicle along with the ids of any rows that
// were skipped because their bodies could not be decoded.
func (s *VehicleService) ListAll(ctx context.Context) ([]models.Vehicle, []int64, error) {
	return s.repo.ListAll(ctx)
}

// Create stores a new vehicle document and returns it with its assigned id.
// Counters always start at zero, whatever the client submitted.
func (s *VehicleService) Create(ctx context.Context, v models.Vehicle) (models.Vehicle, error) {
	v.Views = 0
	v.Interested = 0
	return s.repo.Create(ctx, v)
}

// Update overwrites the stored document for id with v. Updating an id that
// does not exist succeeds without storing anything; matched reports whether
// a row was actually replaced.
func (s *VehicleService) Update(ctx context.Context, id int64, v models.Vehicle) (models.Vehicle, bool, error) {
	matched, err := s.repo.Update(ctx, id, v)
	if err != nil {
		return models.Vehicle{}, false, err
	}
	v.ID = id
	return v, matched, nil
}

// Delete removes the vehicle with the given id. Idempotent.
func (s *VehicleService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// GetByID fetches a single vehicle or models.ErrNotFound.
func (s *VehicleService) GetByID(ctx context.Context, id int64) (models.Vehicle, error) {
	return s.repo.GetByID(ctx, id)
}

// lockFor returns the mutex serializing counter updates for one vehicle id.
func (s *VehicleService) lockFor(id int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// Increment adds one to the named counter (models.CounterViews or
// models.CounterInterested) of the vehicle with the given id and returns
// the new value. The read-modify-write on the whole document is serialized
// per id, so concurrent increments on the same vehicle are never lost.
// Returns models.ErrNotFound when the id does not exist.
func (s *VehicleService) Increment(ctx context.Context, id int64, counter string) (int64, error) {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	var value int64
	switch counter {
	case models.CounterViews:
		v.Views++
		value = v.Views
	case models.CounterInterested:
		v.Interested++
		value = v.Interested
	default:
		return 0, fmt.Errorf("unknown counter %q", counter)
	}

	matched, err := s.repo.Update(ctx, id, v)
	if err != nil {
		return 0, err
	}
	if !matched {
		// Row disappeared between the read and the write-back.
		return 0, models.ErrNotFound
	}
	return value, nil
}

// ResetMetrics zeroes views and interested on every stored vehicle and
// returns the number of documents touched.
func (s *VehicleService) ResetMetrics(ctx context.Context) (int64, error) {
	return s.repo.ResetMetrics(ctx)
}
