package employee

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mini-admin/internal/domain"
	"mini-admin/internal/querycache"
	"mini-admin/internal/testutil"
)

func newTestService(repo domain.EmployeeRepository) *Service {
	svc := NewService(repo, querycache.New(time.Minute), slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return time.Date(2025, 9, 22, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestList_NormalizesAndCaches(t *testing.T) {
	var calls atomic.Int32
	repo := &testutil.MockEmployeeRepo{
		ListFn: func(_ context.Context, q domain.EmployeeQuery) (domain.EmployeePage, error) {
			calls.Add(1)
			assert.Equal(t, 1, q.Page)
			assert.Equal(t, domain.DefaultPageSize, q.Limit)
			return domain.EmployeePage{Employees: []domain.Employee{{ID: 1}}, Total: 1}, nil
		},
	}
	svc := newTestService(repo)

	for range 3 {
		page, err := svc.List(context.Background(), domain.EmployeeQuery{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestCreate_AssignsLowestUnusedIDAndToday(t *testing.T) {
	var sent *domain.Employee
	repo := &testutil.MockEmployeeRepo{
		ListAllFn: func(context.Context) ([]domain.Employee, error) {
			return []domain.Employee{{ID: 1}, {ID: 2}, {ID: 4}}, nil
		},
		CreateFn: func(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
			sent = e
			return e, nil
		},
	}
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), domain.EmployeeInput{
		Name: "Ann Lee", Email: "ann@example.com", Role: domain.RoleEngineer, Status: domain.StatusActive,
	})
	require.NoError(t, err)
	require.NotNil(t, sent)
	assert.Equal(t, int64(3), created.ID)
	assert.Equal(t, "2025-09-22", created.CreatedAt)
	assert.Equal(t, domain.RoleEngineer, created.Role)
}

func TestCreate_EmptyFieldsSubmittedAsIs(t *testing.T) {
	repo := &testutil.MockEmployeeRepo{
		ListAllFn: func(context.Context) ([]domain.Employee, error) { return nil, nil },
		CreateFn: func(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
			return e, nil
		},
	}
	created, err := newTestService(repo).Create(context.Background(), domain.EmployeeInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Empty(t, created.Name)
}

func TestCreate_InvalidatesCache(t *testing.T) {
	var listCalls atomic.Int32
	repo := &testutil.MockEmployeeRepo{
		ListFn: func(context.Context, domain.EmployeeQuery) (domain.EmployeePage, error) {
			listCalls.Add(1)
			return domain.EmployeePage{}, nil
		},
		ListAllFn: func(context.Context) ([]domain.Employee, error) { return nil, nil },
		CreateFn: func(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
			return e, nil
		},
	}
	svc := newTestService(repo)

	_, _ = svc.List(context.Background(), domain.EmployeeQuery{})
	_, err := svc.Create(context.Background(), domain.EmployeeInput{Name: "x"})
	require.NoError(t, err)
	_, _ = svc.List(context.Background(), domain.EmployeeQuery{})

	assert.Equal(t, int32(2), listCalls.Load())
}

func TestCreate_ListFailure(t *testing.T) {
	repo := &testutil.MockEmployeeRepo{
		ListAllFn: func(context.Context) ([]domain.Employee, error) { return nil, errors.New("down") },
	}
	_, err := newTestService(repo).Create(context.Background(), domain.EmployeeInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id allocation")
}

func TestUpdate_KeepsIDAndCreatedAt(t *testing.T) {
	var sent *domain.Employee
	repo := &testutil.MockEmployeeRepo{
		GetFn: func(_ context.Context, id int64) (*domain.Employee, error) {
			return &domain.Employee{ID: id, Name: "Old", CreatedAt: "2025-01-05"}, nil
		},
		ReplaceFn: func(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
			sent = e
			return e, nil
		},
	}

	_, err := newTestService(repo).Update(context.Background(), 9, domain.EmployeeInput{Name: "New", Role: domain.RoleManager, Status: domain.StatusInactive})
	require.NoError(t, err)
	require.NotNil(t, sent)
	assert.Equal(t, int64(9), sent.ID)
	assert.Equal(t, "New", sent.Name)
	assert.Equal(t, "2025-01-05", sent.CreatedAt)
	assert.Equal(t, domain.StatusInactive, sent.Status)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := &testutil.MockEmployeeRepo{
		GetFn: func(_ context.Context, id int64) (*domain.Employee, error) {
			return nil, domain.ErrNotFound("employee %d not found", id)
		},
	}
	_, err := newTestService(repo).Update(context.Background(), 9, domain.EmployeeInput{})
	var notFound *domain.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestDelete(t *testing.T) {
	var deleted int64
	repo := &testutil.MockEmployeeRepo{
		DeleteFn: func(_ context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	require.NoError(t, newTestService(repo).Delete(context.Background(), 5))
	assert.Equal(t, int64(5), deleted)
}
