// Package dashboard computes the overview counts shown on the landing page.
package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"mini-admin/internal/domain"
)

// Summary holds the overview counts.
type Summary struct {
	Employees       int64
	ActiveEmployees int64
	Trainings       int
	ActiveTrainings int
	Assignments     int
}

// EmployeeLister, TrainingLister and AssignmentLister are the read paths the
// dashboard needs.
type (
	EmployeeLister interface {
		All(ctx context.Context) ([]domain.Employee, error)
	}
	TrainingLister interface {
		All(ctx context.Context) ([]domain.Training, error)
	}
	AssignmentLister interface {
		List(ctx context.Context) ([]domain.AssignmentView, error)
	}
)

// Service computes dashboard summaries.
type Service struct {
	employees   EmployeeLister
	trainings   TrainingLister
	assignments AssignmentLister
}

// NewService creates a new dashboard Service.
func NewService(employees EmployeeLister, trainings TrainingLister, assignments AssignmentLister) *Service {
	return &Service{employees: employees, trainings: trainings, assignments: assignments}
}

// Summary fetches all three collections concurrently and counts them.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	var out Summary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		all, err := s.employees.All(gctx)
		if err != nil {
			return err
		}
		out.Employees = int64(len(all))
		for i := range all {
			if all[i].Status == domain.StatusActive {
				out.ActiveEmployees++
			}
		}
		return nil
	})
	g.Go(func() error {
		all, err := s.trainings.All(gctx)
		if err != nil {
			return err
		}
		out.Trainings = len(all)
		for i := range all {
			if all[i].Active {
				out.ActiveTrainings++
			}
		}
		return nil
	})
	g.Go(func() error {
		views, err := s.assignments.List(gctx)
		if err != nil {
			return err
		}
		out.Assignments = len(views)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return out, nil
}
