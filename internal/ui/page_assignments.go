package ui

import (
	"mini-admin/internal/domain"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"
)

func assignmentsListPage(pc pageContext, views []domain.AssignmentView) Node {
	var table Node = emptyStateCard(pc.T("assignments.empty"), pc.T("assignments.new"), "/ui/assignments/new")
	if len(views) > 0 {
		rows := make([]Node, 0, len(views))
		for i := range views {
			v := views[i]
			id := domain.FormatID(v.ID)
			rows = append(rows, Tr(
				data.Show(containsExpr(v.EmployeeName()+" "+v.TrainingTitle())),
				Td(Text(v.EmployeeName())),
				Td(Text(v.TrainingTitle())),
				Td(Text(v.AssignedAt)),
				Td(Class("row-actions"),
					A(Href("/ui/assignments/"+id+"/edit"), Class("btn btn-sm"), Text(pc.T("common.edit"))),
					A(Href("/ui/assignments/"+id+"/delete"), Class("btn btn-sm btn-danger"), Text(pc.T("common.delete"))),
				),
			))
		}
		table = Div(Class(cardClass("table-wrap")),
			Table(Class("data-table"),
				THead(Tr(
					Th(Text(pc.T("assignments.employee"))),
					Th(Text(pc.T("assignments.training"))),
					Th(Text(pc.T("assignments.assignedAt"))),
					Th(Text(pc.T("common.actions"))),
				)),
				TBody(Group(rows)),
			),
		)
	}

	return appPage(pc, pc.T("assignments.title"), "assignments",
		pageToolbar(pc.T("app.tagline"), "/ui/assignments/new", pc.T("assignments.new")),
		quickFilterCard(pc, pc.T("common.quickFilter")),
		table,
	)
}

func employeeOptions(pc pageContext, employees []domain.Employee, selected int64) []Node {
	out := make([]Node, 0, len(employees)+1)
	placeholder := Option(Value(""), Text(pc.T("assignments.selectEmployee")))
	if selected == 0 {
		placeholder = Option(Value(""), Selected(), Text(pc.T("assignments.selectEmployee")))
	}
	out = append(out, placeholder)
	for i := range employees {
		e := employees[i]
		out = append(out, optionSelected(domain.FormatID(e.ID), e.Name, domain.FormatID(selected)))
	}
	return out
}

func assignmentNewPage(pc pageContext, employees []domain.Employee, trainings []domain.Training, preselected int64) Node {
	boxes := make([]Node, 0, len(trainings))
	for i := range trainings {
		t := trainings[i]
		id := "training-" + domain.FormatID(t.ID)
		boxes = append(boxes, Div(
			Class("form-checkbox"),
			Input(Type("checkbox"), ID(id), Name("training_id"), Value(domain.FormatID(t.ID))),
			Label(For(id), Text(t.Title+" ("+t.StartDate+")")),
		))
	}
	return formPage(pc, pc.T("assignments.new"), "assignments", "/ui/assignments", "/ui/assignments",
		Label(For("employee_id"), Text(pc.T("assignments.employee"))),
		Select(ID("employee_id"), Name("employee_id"), Required(), Group(employeeOptions(pc, employees, preselected))),
		FieldSet(
			Legend(Text(pc.T("assignments.trainings"))),
			Group(boxes),
		),
	)
}

func assignmentEditPage(pc pageContext, a *domain.Assignment, employees []domain.Employee, trainings []domain.Training) Node {
	trainingOpts := make([]Node, 0, len(trainings))
	for i := range trainings {
		t := trainings[i]
		trainingOpts = append(trainingOpts, optionSelected(domain.FormatID(t.ID), t.Title, domain.FormatID(a.TrainingID)))
	}
	return formPage(pc, pc.T("assignments.edit"), "assignments", "/ui/assignments/"+domain.FormatID(a.ID), "/ui/assignments",
		Label(For("employee_id"), Text(pc.T("assignments.employee"))),
		Select(ID("employee_id"), Name("employee_id"), Group(employeeOptions(pc, employees, a.EmployeeID))),
		Label(For("training_id"), Text(pc.T("assignments.training"))),
		Select(ID("training_id"), Name("training_id"), Group(trainingOpts)),
		Label(For("assigned_at"), Text(pc.T("assignments.assignedAt"))),
		Input(ID("assigned_at"), Type("date"), Name("assigned_at"), Value(a.AssignedAt)),
	)
}
