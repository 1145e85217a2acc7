// Package employee provides the employee list, filter and CRUD operations.
package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"mini-admin/internal/domain"
	"mini-admin/internal/querycache"
)

// CachePrefix is the cache namespace for every employee read.
const CachePrefix = "employees"

// Service provides business logic for employee management.
type Service struct {
	repo   domain.EmployeeRepository
	cache  *querycache.Cache
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new employee Service.
func NewService(repo domain.EmployeeRepository, cache *querycache.Cache, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger.With("component", "employee"), now: time.Now}
}

// List returns one page of employees for q.
func (s *Service) List(ctx context.Context, q domain.EmployeeQuery) (domain.EmployeePage, error) {
	q = q.Normalized()
	key := querycache.Key{CachePrefix, "list", q.Values().Encode()}
	return querycache.Fetch(ctx, s.cache, key, func(ctx context.Context) (domain.EmployeePage, error) {
		return s.repo.List(ctx, q)
	})
}

// All returns every employee (for option lists and joins).
func (s *Service) All(ctx context.Context) ([]domain.Employee, error) {
	return querycache.Fetch(ctx, s.cache, querycache.Key{CachePrefix, "all"}, s.repo.ListAll)
}

// Get retrieves an employee by ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	key := querycache.Key{CachePrefix, "id", strconv.FormatInt(id, 10)}
	return querycache.Fetch(ctx, s.cache, key, func(ctx context.Context) (*domain.Employee, error) {
		return s.repo.Get(ctx, id)
	})
}

// Create adds an employee with the lowest unused positive ID, dated today.
// Fields are submitted as entered.
func (s *Service) Create(ctx context.Context, in domain.EmployeeInput) (*domain.Employee, error) {
	existing, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load employees for id allocation: %w", err)
	}

	e := &domain.Employee{
		ID:        domain.NextEmployeeID(existing),
		Name:      in.Name,
		Email:     in.Email,
		Role:      in.Role,
		Status:    in.Status,
		CreatedAt: domain.Today(s.now()),
	}
	created, err := s.repo.Create(ctx, e)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(CachePrefix)
	s.logger.InfoContext(ctx, "employee created", "id", created.ID)
	return created, nil
}

// Update replaces the editable fields of an employee. ID and creation
// date are kept.
func (s *Service) Update(ctx context.Context, id int64, in domain.EmployeeInput) (*domain.Employee, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	e := &domain.Employee{
		ID:        id,
		Name:      in.Name,
		Email:     in.Email,
		Role:      in.Role,
		Status:    in.Status,
		CreatedAt: current.CreatedAt,
	}
	updated, err := s.repo.Replace(ctx, e)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(CachePrefix)
	s.logger.InfoContext(ctx, "employee updated", "id", id)
	return updated, nil
}

// Delete removes an employee. Assignments referencing it are left in place.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(CachePrefix)
	s.logger.InfoContext(ctx, "employee deleted", "id", id)
	return nil
}
