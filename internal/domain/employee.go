package domain

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date format used on the wire for every date field.
const DateLayout = "2006-01-02"

// Today returns the current calendar date formatted with DateLayout.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// Role is the closed set of employee roles.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEngineer Role = "engineer"
	RoleManager  Role = "manager"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleAdmin, RoleEngineer, RoleManager}

// ParseRole normalizes s into a Role. The second return is false when s is
// not one of the known roles.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Roles {
		if r == known {
			return r, true
		}
	}
	return "", false
}

// EmployeeStatus is the employment status.
type EmployeeStatus string

const (
	StatusActive   EmployeeStatus = "active"
	StatusInactive EmployeeStatus = "inactive"
)

// EmployeeStatuses lists every valid status in display order.
var EmployeeStatuses = []EmployeeStatus{StatusActive, StatusInactive}

// Employee is a person managed by the console.
type Employee struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Role      Role           `json:"role"`
	Status    EmployeeStatus `json:"status"`
	CreatedAt string         `json:"createdAt"`
}

// EmployeeInput holds the user-editable employee fields.
type EmployeeInput struct {
	Name   string
	Email  string
	Role   Role
	Status EmployeeStatus
}

// EmployeePage is one page of employees plus the server-reported total.
type EmployeePage struct {
	Employees []Employee
	Total     int64
}

// NextEmployeeID returns the lowest positive identifier not used by any of
// the given employees.
func NextEmployeeID(employees []Employee) int64 {
	used := make(map[int64]struct{}, len(employees))
	for i := range employees {
		used[employees[i].ID] = struct{}{}
	}
	var id int64 = 1
	for {
		if _, taken := used[id]; !taken {
			return id
		}
		id++
	}
}
