package restclient

import (
	"context"
	"net/http"

	"mini-admin/internal/domain"
)

// Assignments implements domain.AssignmentRepository over /assignments.
type Assignments struct {
	c *Client
}

var _ domain.AssignmentRepository = (*Assignments)(nil)

// Assignments returns the assignment resource.
func (c *Client) Assignments() *Assignments { return &Assignments{c: c} }

// assignmentBody omits the id on create so the server assigns one.
type assignmentBody struct {
	ID         int64  `json:"id,omitempty"`
	EmployeeID int64  `json:"employeeId"`
	TrainingID int64  `json:"trainingId"`
	AssignedAt string `json:"assignedAt"`
}

func toBody(a *domain.Assignment) assignmentBody {
	return assignmentBody{ID: a.ID, EmployeeID: a.EmployeeID, TrainingID: a.TrainingID, AssignedAt: a.AssignedAt}
}

func (s *Assignments) ListAll(ctx context.Context) ([]domain.Assignment, error) {
	var rows []domain.Assignment
	if _, err := s.c.getJSON(ctx, "/assignments", nil, &rows); err != nil {
		return nil, toDomainError(err, "assignment", 0)
	}
	return rows, nil
}

func (s *Assignments) Get(ctx context.Context, id int64) (*domain.Assignment, error) {
	var out domain.Assignment
	if _, err := s.c.getJSON(ctx, "/assignments/"+domain.FormatID(id), nil, &out); err != nil {
		return nil, toDomainError(err, "assignment", id)
	}
	return &out, nil
}

func (s *Assignments) Create(ctx context.Context, a *domain.Assignment) (*domain.Assignment, error) {
	var out domain.Assignment
	if _, err := s.c.sendJSON(ctx, http.MethodPost, "/assignments", nil, toBody(a), &out); err != nil {
		return nil, toDomainError(err, "assignment", a.ID)
	}
	return &out, nil
}

func (s *Assignments) Replace(ctx context.Context, a *domain.Assignment) (*domain.Assignment, error) {
	var out domain.Assignment
	if _, err := s.c.sendJSON(ctx, http.MethodPut, "/assignments/"+domain.FormatID(a.ID), nil, toBody(a), &out); err != nil {
		return nil, toDomainError(err, "assignment", a.ID)
	}
	return &out, nil
}

func (s *Assignments) Delete(ctx context.Context, id int64) error {
	if _, err := s.c.sendJSON(ctx, http.MethodDelete, "/assignments/"+domain.FormatID(id), nil, nil, nil); err != nil {
		return toDomainError(err, "assignment", id)
	}
	return nil
}
