package service

import (
	"context"

	"github.com/lionscars/inventory/internal/models"
)

// ReferenceRepository defines the persistence operations needed by the
// ReferenceService.
type ReferenceRepository interface {
	ListBrands(ctx context.Context) ([]models.Brand, error)
	CreateBrand(ctx context.Context, b models.Brand) (models.Brand, bool, error)
	DeleteBrand(ctx context.Context, id int64) error

	ListColors(ctx context.Context) ([]models.Color, error)
	CreateColor(ctx context.Context, c models.Color) (models.Color, bool, error)
	DeleteColor(ctx context.Context, id int64) error

	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, u models.User) (models.User, bool, error)
	DeleteUser(ctx context.Context, id int64) error

	Authenticate(ctx context.Context, username, password string) (string, error)
}

// ReferenceService implements brand, color and user maintenance plus
// credential checks by delegating to a ReferenceRepository.
type ReferenceService struct {
	repo ReferenceRepository
}

// NewReferenceService constructs a ReferenceService using the provided repository.
func NewReferenceService(repo ReferenceRepository) *ReferenceService {
	return &ReferenceService{repo: repo}
}

// ListBrands returns all brands ordered by name.
func (s *ReferenceService) ListBrands(ctx context.Context) ([]models.Brand, error) {
	return s.repo.ListBrands(ctx)
}

// CreateBrand inserts a brand; a duplicate name is a no-op reported via
// inserted=false, never an error.
func (s *ReferenceService) CreateBrand(ctx context.Context, b models.Brand) (models.Brand, bool, error) {
	return s.repo.CreateBrand(ctx, b)
}

// DeleteBrand removes a brand by id. Idempotent.
func (s *ReferenceService) DeleteBrand(ctx context.Context, id int64) error {
	return s.repo.DeleteBrand(ctx, id)
}

// ListColors returns all colors ordered by name.
func (s *ReferenceService) ListColors(ctx context.Context) ([]models.Color, error) {
	return s.repo.ListColors(ctx)
}

// CreateColor inserts a color; duplicates behave like CreateBrand.
func (s *ReferenceService) CreateColor(ctx context.Context, c models.Color) (models.Color, bool, error) {
	return s.repo.CreateColor(ctx, c)
}

// DeleteColor removes a color by id. Idempotent.
func (s *ReferenceService) DeleteColor(ctx context.Context, id int64) error {
	return s.repo.DeleteColor(ctx, id)
}

// ListUsers returns all user accounts.
func (s *ReferenceService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.ListUsers(ctx)
}

// CreateUser inserts a user account, defaulting the role when none is
// given; duplicates behave like CreateBrand.
func (s *ReferenceService) CreateUser(ctx context.Context, u models.User) (models.User, bool, error) {
	if u.Role == "" {
		u.Role = models.DefaultRole
	}
	return s.repo.CreateUser(ctx, u)
}

// DeleteUser removes a user by id. Idempotent.
func (s *ReferenceService) DeleteUser(ctx context.Context, id int64) error {
	return s.repo.DeleteUser(ctx, id)
}

// Authenticate checks a username/password pair and returns the stored role,
// or models.ErrInvalidCredentials when no user matches.
func (s *ReferenceService) Authenticate(ctx context.Context, username, password string) (string, error) {
	return s.repo.Authenticate(ctx, username, password)
}
