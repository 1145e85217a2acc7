// Package assignment manages employee-training assignments and the joined
// view model the assignments page renders.
package assignment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"mini-admin/internal/domain"
	"mini-admin/internal/querycache"
)

// CachePrefix is the cache namespace for raw assignment reads.
const CachePrefix = "assignments"

// EmployeeSource lists employees for joins and option lists.
type EmployeeSource interface {
	All(ctx context.Context) ([]domain.Employee, error)
}

// TrainingSource lists trainings for joins and option lists.
type TrainingSource interface {
	All(ctx context.Context) ([]domain.Training, error)
}

// Service provides business logic for assignment management.
type Service struct {
	repo      domain.AssignmentRepository
	employees EmployeeSource
	trainings TrainingSource
	cache     *querycache.Cache
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a new assignment Service.
func NewService(repo domain.AssignmentRepository, employees EmployeeSource, trainings TrainingSource, cache *querycache.Cache, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		employees: employees,
		trainings: trainings,
		cache:     cache,
		logger:    logger.With("component", "assignment"),
		now:       time.Now,
	}
}

// List loads assignments, employees and trainings concurrently and joins
// them once all three have arrived.
func (s *Service) List(ctx context.Context) ([]domain.AssignmentView, error) {
	var (
		assignments []domain.Assignment
		employees   []domain.Employee
		trainings   []domain.Training
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assignments, err = querycache.Fetch(gctx, s.cache, querycache.Key{CachePrefix}, s.repo.ListAll)
		return err
	})
	g.Go(func() error {
		var err error
		employees, err = s.employees.All(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		trainings, err = s.trainings.All(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return DeriveAssignmentViews(assignments, employees, trainings, domain.Today(s.now())), nil
}

// Employees returns the employee options for the assignment forms.
func (s *Service) Employees(ctx context.Context) ([]domain.Employee, error) {
	return s.employees.All(ctx)
}

// Trainings returns the training options for the assignment forms.
func (s *Service) Trainings(ctx context.Context) ([]domain.Training, error) {
	return s.trainings.All(ctx)
}

// Get retrieves a raw assignment by ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Assignment, error) {
	return s.repo.Get(ctx, id)
}

// Assign creates one assignment per training for employeeID, dated today.
// Writes are sequential and not rolled back: when one fails the records
// created so far are returned together with a *domain.PartialFailureError.
func (s *Service) Assign(ctx context.Context, employeeID int64, trainingIDs []int64) ([]domain.Assignment, error) {
	if employeeID <= 0 {
		return nil, domain.ErrValidation("an employee must be selected")
	}
	trainingIDs = uniqueIDs(trainingIDs)
	if len(trainingIDs) == 0 {
		return nil, domain.ErrValidation("at least one training must be selected")
	}

	today := domain.Today(s.now())
	created := make([]domain.Assignment, 0, len(trainingIDs))
	defer func() {
		if len(created) > 0 {
			s.cache.Invalidate(CachePrefix)
		}
	}()

	for _, trainingID := range trainingIDs {
		a, err := s.repo.Create(ctx, &domain.Assignment{
			EmployeeID: employeeID,
			TrainingID: trainingID,
			AssignedAt: today,
		})
		if err != nil {
			s.logger.WarnContext(ctx, "assignment batch stopped",
				"employee_id", employeeID, "training_id", trainingID,
				"completed", len(created), "total", len(trainingIDs), "error", err)
			return created, &domain.PartialFailureError{
				Completed: len(created),
				Total:     len(trainingIDs),
				Err:       fmt.Errorf("assign training %d: %w", trainingID, err),
			}
		}
		created = append(created, *a)
	}

	s.logger.InfoContext(ctx, "assignments created", "employee_id", employeeID, "count", len(created))
	return created, nil
}

// Update replaces an assignment's employee, training and date.
func (s *Service) Update(ctx context.Context, id int64, in domain.AssignmentInput) (*domain.Assignment, error) {
	if in.EmployeeID <= 0 || in.TrainingID <= 0 {
		return nil, domain.ErrValidation("employee and training must be selected")
	}
	assignedAt := in.AssignedAt
	if assignedAt == "" {
		assignedAt = domain.Today(s.now())
	}
	updated, err := s.repo.Replace(ctx, &domain.Assignment{
		ID:         id,
		EmployeeID: in.EmployeeID,
		TrainingID: in.TrainingID,
		AssignedAt: assignedAt,
	})
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(CachePrefix)
	s.logger.InfoContext(ctx, "assignment updated", "id", id)
	return updated, nil
}

// Delete removes exactly one assignment.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(CachePrefix)
	s.logger.InfoContext(ctx, "assignment deleted", "id", id)
	return nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
