package restclient

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strconv"

	"mini-admin/internal/domain"
)

// Employees implements domain.EmployeeRepository over /employees.
type Employees struct {
	c *Client
}

var _ domain.EmployeeRepository = (*Employees)(nil)

// Employees returns the employee resource.
func (c *Client) Employees() *Employees { return &Employees{c: c} }

// EmployeeListParams builds the server query for q. Without an explicit sort
// the newest employees (highest id) come first.
func EmployeeListParams(q domain.EmployeeQuery) url.Values {
	q = q.Normalized()
	v := url.Values{}
	v.Set("_page", strconv.Itoa(q.Page))
	v.Set("_limit", strconv.Itoa(q.Limit))
	if q.Sort != "" {
		v.Set("_sort", q.Sort)
		v.Set("_order", string(q.Order))
	} else {
		v.Set("_sort", "id")
		v.Set("_order", string(domain.OrderDesc))
	}
	if q.Name != "" {
		// name_like is a regular expression on the server.
		v.Set("name_like", regexp.QuoteMeta(q.Name))
	}
	if q.Role != "" {
		v.Set("role", string(q.Role))
	}
	return v
}

func (e *Employees) List(ctx context.Context, q domain.EmployeeQuery) (domain.EmployeePage, error) {
	var rows []domain.Employee
	h, err := e.c.getJSON(ctx, "/employees", EmployeeListParams(q), &rows)
	if err != nil {
		return domain.EmployeePage{}, toDomainError(err, "employee", 0)
	}
	return domain.EmployeePage{Employees: rows, Total: totalCount(h, len(rows))}, nil
}

func (e *Employees) ListAll(ctx context.Context) ([]domain.Employee, error) {
	var rows []domain.Employee
	if _, err := e.c.getJSON(ctx, "/employees", nil, &rows); err != nil {
		return nil, toDomainError(err, "employee", 0)
	}
	return rows, nil
}

func (e *Employees) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	var out domain.Employee
	if _, err := e.c.getJSON(ctx, "/employees/"+domain.FormatID(id), nil, &out); err != nil {
		return nil, toDomainError(err, "employee", id)
	}
	return &out, nil
}

func (e *Employees) Create(ctx context.Context, emp *domain.Employee) (*domain.Employee, error) {
	var out domain.Employee
	if _, err := e.c.sendJSON(ctx, http.MethodPost, "/employees", nil, emp, &out); err != nil {
		return nil, toDomainError(err, "employee", emp.ID)
	}
	return &out, nil
}

func (e *Employees) Replace(ctx context.Context, emp *domain.Employee) (*domain.Employee, error) {
	var out domain.Employee
	if _, err := e.c.sendJSON(ctx, http.MethodPut, "/employees/"+domain.FormatID(emp.ID), nil, emp, &out); err != nil {
		return nil, toDomainError(err, "employee", emp.ID)
	}
	return &out, nil
}

func (e *Employees) Delete(ctx context.Context, id int64) error {
	if _, err := e.c.sendJSON(ctx, http.MethodDelete, "/employees/"+domain.FormatID(id), nil, nil, nil); err != nil {
		return toDomainError(err, "employee", id)
	}
	return nil
}
