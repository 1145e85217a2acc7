package domain

import "context"

// EmployeeRepository provides CRUD operations for employees.
// Implemented by restclient.Client against the mock REST server.
type EmployeeRepository interface {
	List(ctx context.Context, q EmployeeQuery) (EmployeePage, error)
	ListAll(ctx context.Context) ([]Employee, error)
	Get(ctx context.Context, id int64) (*Employee, error)
	Create(ctx context.Context, e *Employee) (*Employee, error)
	Replace(ctx context.Context, e *Employee) (*Employee, error)
	Delete(ctx context.Context, id int64) error
}

// TrainingRepository provides read access to trainings.
type TrainingRepository interface {
	ListAll(ctx context.Context) ([]Training, error)
}

// AssignmentRepository provides CRUD operations for assignments.
type AssignmentRepository interface {
	ListAll(ctx context.Context) ([]Assignment, error)
	Get(ctx context.Context, id int64) (*Assignment, error)
	Create(ctx context.Context, a *Assignment) (*Assignment, error)
	Replace(ctx context.Context, a *Assignment) (*Assignment, error)
	Delete(ctx context.Context, id int64) error
}
