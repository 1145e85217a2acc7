package assignment

import "mini-admin/internal/domain"

// DeriveAssignmentViews joins raw assignments to their employee and
// training. Unresolved references are left nil; a missing assignment date
// becomes fallbackDate. Output order follows assignments.
func DeriveAssignmentViews(assignments []domain.Assignment, employees []domain.Employee, trainings []domain.Training, fallbackDate string) []domain.AssignmentView {
	employeeByID := make(map[int64]*domain.Employee, len(employees))
	for i := range employees {
		employeeByID[employees[i].ID] = &employees[i]
	}
	trainingByID := make(map[int64]*domain.Training, len(trainings))
	for i := range trainings {
		trainingByID[trainings[i].ID] = &trainings[i]
	}

	views := make([]domain.AssignmentView, 0, len(assignments))
	for _, a := range assignments {
		assignedAt := a.AssignedAt
		if assignedAt == "" {
			assignedAt = fallbackDate
		}
		views = append(views, domain.AssignmentView{
			ID:         a.ID,
			EmployeeID: a.EmployeeID,
			TrainingID: a.TrainingID,
			Employee:   employeeByID[a.EmployeeID],
			Training:   trainingByID[a.TrainingID],
			AssignedAt: assignedAt,
		})
	}
	return views
}
