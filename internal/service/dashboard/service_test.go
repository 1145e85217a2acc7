package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mini-admin/internal/domain"
)

type employeesFn func(context.Context) ([]domain.Employee, error)

func (f employeesFn) All(ctx context.Context) ([]domain.Employee, error) { return f(ctx) }

type trainingsFn func(context.Context) ([]domain.Training, error)

func (f trainingsFn) All(ctx context.Context) ([]domain.Training, error) { return f(ctx) }

type assignmentsFn func(context.Context) ([]domain.AssignmentView, error)

func (f assignmentsFn) List(ctx context.Context) ([]domain.AssignmentView, error) { return f(ctx) }

func TestSummary(t *testing.T) {
	svc := NewService(
		employeesFn(func(context.Context) ([]domain.Employee, error) {
			return []domain.Employee{{ID: 1, Status: domain.StatusActive}, {ID: 2, Status: domain.StatusInactive}}, nil
		}),
		trainingsFn(func(context.Context) ([]domain.Training, error) {
			return []domain.Training{{ID: 101, Active: true}, {ID: 102}}, nil
		}),
		assignmentsFn(func(context.Context) ([]domain.AssignmentView, error) {
			return make([]domain.AssignmentView, 3), nil
		}),
	)

	got, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{Employees: 2, ActiveEmployees: 1, Trainings: 2, ActiveTrainings: 1, Assignments: 3}, got)
}

func TestSummary_PropagatesError(t *testing.T) {
	svc := NewService(
		employeesFn(func(context.Context) ([]domain.Employee, error) { return nil, errors.New("down") }),
		trainingsFn(func(context.Context) ([]domain.Training, error) { return nil, nil }),
		assignmentsFn(func(context.Context) ([]domain.AssignmentView, error) { return nil, nil }),
	)
	_, err := svc.Summary(context.Background())
	assert.Error(t, err)
}
