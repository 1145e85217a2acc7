// Package testutil provides shared mock implementations of domain interfaces
// for use in tests across the codebase. This follows the Go convention of a
// shared test utility package (like net/http/httptest).
package testutil

import (
	"context"

	"mini-admin/internal/domain"
)

// === Employee Repository Mock ===

// MockEmployeeRepo implements domain.EmployeeRepository for testing.
type MockEmployeeRepo struct {
	ListFn    func(ctx context.Context, q domain.EmployeeQuery) (domain.EmployeePage, error)
	ListAllFn func(ctx context.Context) ([]domain.Employee, error)
	GetFn     func(ctx context.Context, id int64) (*domain.Employee, error)
	CreateFn  func(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	ReplaceFn func(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	DeleteFn  func(ctx context.Context, id int64) error
}

var _ domain.EmployeeRepository = (*MockEmployeeRepo)(nil)

// List implements the interface method for testing.
func (m *MockEmployeeRepo) List(ctx context.Context, q domain.EmployeeQuery) (domain.EmployeePage, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, q)
	}
	panic("unexpected call to MockEmployeeRepo.List")
}

// ListAll implements the interface method for testing.
func (m *MockEmployeeRepo) ListAll(ctx context.Context) ([]domain.Employee, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	panic("unexpected call to MockEmployeeRepo.ListAll")
}

// Get implements the interface method for testing.
func (m *MockEmployeeRepo) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	panic("unexpected call to MockEmployeeRepo.Get")
}

// Create implements the interface method for testing.
func (m *MockEmployeeRepo) Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	panic("unexpected call to MockEmployeeRepo.Create")
}

// Replace implements the interface method for testing.
func (m *MockEmployeeRepo) Replace(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	if m.ReplaceFn != nil {
		return m.ReplaceFn(ctx, e)
	}
	panic("unexpected call to MockEmployeeRepo.Replace")
}

// Delete implements the interface method for testing.
func (m *MockEmployeeRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	panic("unexpected call to MockEmployeeRepo.Delete")
}

// === Training Repository Mock ===

// MockTrainingRepo implements domain.TrainingRepository for testing.
type MockTrainingRepo struct {
	ListAllFn func(ctx context.Context) ([]domain.Training, error)
}

var _ domain.TrainingRepository = (*MockTrainingRepo)(nil)

// ListAll implements the interface method for testing.
func (m *MockTrainingRepo) ListAll(ctx context.Context) ([]domain.Training, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	panic("unexpected call to MockTrainingRepo.ListAll")
}

// === Assignment Repository Mock ===

// MockAssignmentRepo implements domain.AssignmentRepository for testing.
type MockAssignmentRepo struct {
	ListAllFn func(ctx context.Context) ([]domain.Assignment, error)
	GetFn     func(ctx context.Context, id int64) (*domain.Assignment, error)
	CreateFn  func(ctx context.Context, a *domain.Assignment) (*domain.Assignment, error)
	ReplaceFn func(ctx context.Context, a *domain.Assignment) (*domain.Assignment, error)
	DeleteFn  func(ctx context.Context, id int64) error
	Created   []*domain.Assignment // collected creates for assertions
}

var _ domain.AssignmentRepository = (*MockAssignmentRepo)(nil)

// ListAll implements the interface method for testing.
func (m *MockAssignmentRepo) ListAll(ctx context.Context) ([]domain.Assignment, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	panic("unexpected call to MockAssignmentRepo.ListAll")
}

// Get implements the interface method for testing.
func (m *MockAssignmentRepo) Get(ctx context.Context, id int64) (*domain.Assignment, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	panic("unexpected call to MockAssignmentRepo.Get")
}

// Create implements the interface method for testing. Successful creates
// are collected in Created.
func (m *MockAssignmentRepo) Create(ctx context.Context, a *domain.Assignment) (*domain.Assignment, error) {
	if m.CreateFn == nil {
		panic("unexpected call to MockAssignmentRepo.Create")
	}
	out, err := m.CreateFn(ctx, a)
	if err != nil {
		return nil, err
	}
	m.Created = append(m.Created, out)
	return out, nil
}

// Replace implements the interface method for testing.
func (m *MockAssignmentRepo) Replace(ctx context.Context, a *domain.Assignment) (*domain.Assignment, error) {
	if m.ReplaceFn != nil {
		return m.ReplaceFn(ctx, a)
	}
	panic("unexpected call to MockAssignmentRepo.Replace")
}

// Delete implements the interface method for testing.
func (m *MockAssignmentRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	panic("unexpected call to MockAssignmentRepo.Delete")
}
