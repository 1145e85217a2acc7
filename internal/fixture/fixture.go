// Package fixture generates the JSON document that seeds the mock data
// server.
package fixture

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"mini-admin/internal/domain"
)

const (
	// FirstAssignmentID is the identifier of the first generated assignment.
	FirstAssignmentID = 1001
	// DefaultEmployees is the employee count when Options leaves it unset.
	DefaultEmployees = 100
)

var (
	createdFrom = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	createdTo   = time.Date(2025, 9, 22, 0, 0, 0, 0, time.UTC)
)

// Trainings is the fixed training catalog every fixture contains.
var Trainings = []domain.Training{
	{ID: 101, Title: "TypeScript 101", StartDate: "2025-09-20", EndDate: "2025-09-20", Active: true},
	{ID: 102, Title: "PrimeReact Başlangıç", StartDate: "2025-09-22", EndDate: "2025-09-22", Active: true},
	{ID: 103, Title: "React Advanced", StartDate: "2025-09-25", EndDate: "2025-09-25", Active: true},
	{ID: 104, Title: "Node.js Temelleri", StartDate: "2025-09-27", EndDate: "2025-09-27", Active: true},
}

// Options controls Generate.
type Options struct {
	Employees int // defaults to DefaultEmployees
}

// Document is the mock server's backing store.
type Document struct {
	Employees   []domain.Employee   `json:"employees"`
	Trainings   []domain.Training   `json:"trainings"`
	Assignments []domain.Assignment `json:"assignments"`
}

// Generate builds a fixture. The same non-zero seed always yields the same
// document; seed 0 picks a random one.
func Generate(seed uint64, opts Options) Document {
	n := opts.Employees
	if n <= 0 {
		n = DefaultEmployees
	}
	f := gofakeit.New(seed)

	roles := make([]string, len(domain.Roles))
	for i, r := range domain.Roles {
		roles[i] = string(r)
	}
	statuses := make([]string, len(domain.EmployeeStatuses))
	for i, s := range domain.EmployeeStatuses {
		statuses[i] = string(s)
	}

	doc := Document{
		Employees: make([]domain.Employee, 0, n),
		Trainings: append([]domain.Training(nil), Trainings...),
	}
	nextAssignment := int64(FirstAssignmentID)
	for i := 1; i <= n; i++ {
		created := f.DateRange(createdFrom, createdTo)
		emp := domain.Employee{
			ID:        int64(i),
			Name:      f.Name(),
			Email:     f.Email(),
			Role:      domain.Role(f.RandomString(roles)),
			Status:    domain.EmployeeStatus(f.RandomString(statuses)),
			CreatedAt: created.Format(domain.DateLayout),
		}
		doc.Employees = append(doc.Employees, emp)

		for _, t := range pickTrainings(f, f.IntRange(1, 2)) {
			doc.Assignments = append(doc.Assignments, domain.Assignment{
				ID:         nextAssignment,
				EmployeeID: emp.ID,
				TrainingID: t.ID,
				AssignedAt: f.DateRange(created, createdTo).Format(domain.DateLayout),
			})
			nextAssignment++
		}
	}
	return doc
}

// pickTrainings returns k distinct trainings.
func pickTrainings(f *gofakeit.Faker, k int) []domain.Training {
	idx := make([]int, len(Trainings))
	for i := range idx {
		idx[i] = i
	}
	f.ShuffleInts(idx)
	out := make([]domain.Training, 0, k)
	for _, i := range idx[:k] {
		out = append(out, Trainings[i])
	}
	return out
}

// Write encodes doc as indented JSON.
func Write(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode fixture: %w", err)
	}
	return nil
}
