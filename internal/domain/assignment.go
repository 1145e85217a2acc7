package domain

// Assignment links one employee to one training. Duplicate pairs are allowed.
type Assignment struct {
	ID         int64  `json:"id"`
	EmployeeID int64  `json:"employeeId"`
	TrainingID int64  `json:"trainingId"`
	AssignedAt string `json:"assignedAt,omitempty"`
}

// AssignmentInput holds the user-editable assignment fields.
type AssignmentInput struct {
	EmployeeID int64
	TrainingID int64
	AssignedAt string
}

// AssignmentView is an assignment joined to its employee and training.
// Employee and Training are nil when the reference does not resolve.
type AssignmentView struct {
	ID         int64
	EmployeeID int64
	TrainingID int64
	Employee   *Employee
	Training   *Training
	AssignedAt string
}

// EmployeeName returns the resolved employee name, or "" for a dangling reference.
func (v AssignmentView) EmployeeName() string {
	if v.Employee == nil {
		return ""
	}
	return v.Employee.Name
}

// TrainingTitle returns the resolved training title, or "" for a dangling reference.
func (v AssignmentView) TrainingTitle() string {
	if v.Training == nil {
		return ""
	}
	return v.Training.Title
}
