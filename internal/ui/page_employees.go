package ui

import (
	"strconv"

	"mini-admin/internal/domain"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

var employeeColumns = []struct {
	Field    string
	LabelKey string
}{
	{"id", "employees.id"},
	{"name", "employees.name"},
	{"email", "employees.email"},
	{"role", "employees.role"},
	{"status", "employees.status"},
	{"createdAt", "employees.createdAt"},
}

func roleTone(r domain.Role) string {
	switch r {
	case domain.RoleAdmin:
		return "danger"
	case domain.RoleManager:
		return "attention"
	default:
		return "accent"
	}
}

func statusTone(s domain.EmployeeStatus) string {
	if s == domain.StatusActive {
		return "success"
	}
	return "secondary"
}

func employeesListPage(pc pageContext, q domain.EmployeeQuery, page domain.EmployeePage) Node {
	current := employeesURL(q)

	var body Node = emptyStateCard(pc.T("employees.empty"), pc.T("employees.new"), withReturn("/ui/employees/new", current))
	if len(page.Employees) > 0 {
		rows := make([]Node, 0, len(page.Employees))
		for i := range page.Employees {
			e := page.Employees[i]
			id := domain.FormatID(e.ID)
			rows = append(rows, Tr(
				Td(Text(id)),
				Td(Text(e.Name)),
				Td(Text(e.Email)),
				Td(statusLabel(pc.T("role."+string(e.Role)), roleTone(e.Role))),
				Td(statusLabel(pc.T("status."+string(e.Status)), statusTone(e.Status))),
				Td(Text(e.CreatedAt)),
				Td(Class("row-actions"),
					A(Href(withReturn("/ui/employees/"+id+"/edit", current)), Class("btn btn-sm"), Text(pc.T("common.edit"))),
					A(Href(withReturn("/ui/employees/"+id+"/delete", current)), Class("btn btn-sm btn-danger"), Text(pc.T("common.delete"))),
				),
			))
		}
		body = Div(Class(cardClass("table-wrap")),
			Table(Class("data-table"),
				THead(Tr(Group(employeeHeaders(pc, q)), Th(Text(pc.T("common.actions"))))),
				TBody(Group(rows)),
			),
		)
	}

	return appPage(pc, pc.T("employees.title"), "employees",
		employeeFilterCard(pc, q),
		body,
		employeePagination(pc, q, page),
	)
}

// employeeHeaders renders sortable column headers. Clicking the active
// ascending column flips it to descending.
func employeeHeaders(pc pageContext, q domain.EmployeeQuery) []Node {
	n := q.Normalized()
	out := make([]Node, 0, len(employeeColumns))
	for _, col := range employeeColumns {
		label := pc.T(col.LabelKey)
		ariaSort := "none"
		if n.Sort == col.Field {
			if n.Order == domain.OrderDesc {
				label += " ▼"
				ariaSort = "descending"
			} else {
				label += " ▲"
				ariaSort = "ascending"
			}
		}
		out = append(out, Th(
			Attr("aria-sort", ariaSort),
			A(Href(employeesURL(q.WithSort(col.Field))), Class("sort-link"), Text(label)),
		))
	}
	return out
}

func employeeFilterCard(pc pageContext, q domain.EmployeeQuery) Node {
	n := q.Normalized()

	selectedRole := string(n.Role)
	if selectedRole == "" {
		selectedRole = "all"
	}
	roleOptions := []Node{optionSelected("all", pc.T("common.all"), selectedRole)}
	for _, r := range domain.Roles {
		roleOptions = append(roleOptions, optionSelected(string(r), pc.T("role."+string(r)), selectedRole))
	}

	limitOptions := make([]Node, 0, len(domain.PageSizes))
	for _, size := range domain.PageSizes {
		s := strconv.Itoa(size)
		limitOptions = append(limitOptions, optionSelected(s, s, strconv.Itoa(n.Limit)))
	}

	var sortFields Node
	if n.Sort != "" {
		sortFields = Group([]Node{hiddenField("sort", n.Sort), hiddenField("order", string(n.Order))})
	}

	return Div(
		Class(cardClass("toolbar")),
		Form(
			Method("get"),
			Action("/ui/employees"),
			Class("d-flex flex-wrap flex-items-center gap-2"),
			sortFields,
			Label(Class("sr-only"), For("filter-name"), Text(pc.T("employees.filterName"))),
			Input(ID("filter-name"), Type("search"), Name("name"), Class("form-control"), Placeholder(pc.T("employees.filterName")), Value(n.Name), AutoComplete("off")),
			Label(Class("sr-only"), For("filter-role"), Text(pc.T("employees.role"))),
			Select(ID("filter-role"), Name("role"), Class("form-select"), Group(roleOptions)),
			Label(For("filter-limit"), Class(mutedClass()), Text(pc.T("common.rowsPerPage"))),
			Select(ID("filter-limit"), Name("limit"), Class("form-select"), Attr("data-autosubmit", ""), Group(limitOptions)),
			Button(Type("submit"), Class(secondaryButtonClass()), Text(pc.T("common.apply"))),
			A(Href("/ui/employees"), Class("btn btn-invisible"), Text(pc.T("common.reset"))),
			Div(Class("flex-1")),
			A(Href(withReturn("/ui/employees/new", employeesURL(q))), Class(primaryButtonClass()), Text(pc.T("employees.new"))),
		),
	)
}

func employeePagination(pc pageContext, q domain.EmployeeQuery, page domain.EmployeePage) Node {
	n := q.Normalized()
	pages := q.TotalPages(page.Total)

	prev := Node(Span(Class("btn btn-sm disabled"), Attr("aria-disabled", "true"), Text(pc.T("common.previous"))))
	if n.Page > 1 {
		prev = A(Href(employeesURL(q.WithPage(n.Page-1))), Class("btn btn-sm"), Attr("rel", "prev"), Text(pc.T("common.previous")))
	}
	next := Node(Span(Class("btn btn-sm disabled"), Attr("aria-disabled", "true"), Text(pc.T("common.next"))))
	if n.Page < pages {
		next = A(Href(employeesURL(q.WithPage(n.Page+1))), Class("btn btn-sm"), Attr("rel", "next"), Text(pc.T("common.next")))
	}

	return Div(
		Class(cardClass("pagination")),
		Div(
			Class("d-flex flex-justify-between flex-items-center gap-2"),
			P(Class(mutedClass()+" mb-0"), Text(pc.T("common.showing",
				"count", strconv.Itoa(len(page.Employees)),
				"total", strconv.FormatInt(page.Total, 10),
			))),
			Div(
				Class("d-flex flex-items-center gap-2"),
				prev,
				Span(Class(mutedClass()), Text(pc.T("common.pageOf", "page", strconv.Itoa(n.Page), "pages", strconv.Itoa(pages)))),
				next,
			),
		),
	)
}

// employeeFormPage renders the create form when e is nil and the edit form
// otherwise.
func employeeFormPage(pc pageContext, e *domain.Employee, ret string) Node {
	title := pc.T("employees.new")
	action := "/ui/employees"
	current := domain.Employee{Role: domain.RoleEngineer, Status: domain.StatusActive}
	if e != nil {
		title = pc.T("employees.edit")
		action = "/ui/employees/" + domain.FormatID(e.ID)
		current = *e
	}

	roleOptions := make([]Node, 0, len(domain.Roles))
	for _, r := range domain.Roles {
		roleOptions = append(roleOptions, optionSelected(string(r), pc.T("role."+string(r)), string(current.Role)))
	}
	statusOptions := make([]Node, 0, len(domain.EmployeeStatuses))
	for _, s := range domain.EmployeeStatuses {
		statusOptions = append(statusOptions, optionSelected(string(s), pc.T("status."+string(s)), string(current.Status)))
	}

	return formPage(pc, title, "employees", action, ret,
		hiddenField("return", ret),
		Label(For("name"), Text(pc.T("employees.name"))),
		Input(ID("name"), Name("name"), Value(current.Name)),
		Label(For("email"), Text(pc.T("employees.email"))),
		Input(ID("email"), Type("email"), Name("email"), Value(current.Email)),
		Label(For("role"), Text(pc.T("employees.role"))),
		Select(ID("role"), Name("role"), Group(roleOptions)),
		Label(For("status"), Text(pc.T("employees.status"))),
		Select(ID("status"), Name("status"), Group(statusOptions)),
	)
}
