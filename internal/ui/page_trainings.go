package ui

import (
	"mini-admin/internal/domain"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"
)

func trainingStatus(pc pageContext, t domain.Training) Node {
	if t.Active {
		return statusLabel(pc.T("trainings.active"), "success")
	}
	return statusLabel(pc.T("trainings.passive"), "secondary")
}

func trainingsListPage(pc pageContext, filter domain.TrainingFilter, items []domain.Training) Node {
	statusOptions := []Node{
		optionSelected("", pc.T("common.all"), string(filter.Status)),
		optionSelected(string(domain.TrainingStatusActive), pc.T("trainings.active"), string(filter.Status)),
		optionSelected(string(domain.TrainingStatusPassive), pc.T("trainings.passive"), string(filter.Status)),
	}
	filterCard := Div(
		Class(cardClass("toolbar")),
		Form(
			Method("get"),
			Action("/ui/trainings"),
			Class("d-flex flex-wrap flex-items-center gap-2"),
			Label(Class("sr-only"), For("filter-title"), Text(pc.T("trainings.filterTitle"))),
			Input(ID("filter-title"), Type("search"), Name("title"), Class("form-control"), Placeholder(pc.T("trainings.filterTitle")), Value(filter.Title), AutoComplete("off")),
			Label(Class("sr-only"), For("filter-status"), Text(pc.T("trainings.status"))),
			Select(ID("filter-status"), Name("status"), Class("form-select"), Attr("data-autosubmit", ""), Group(statusOptions)),
			Button(Type("submit"), Class(secondaryButtonClass()), Text(pc.T("common.apply"))),
			A(Href("/ui/trainings"), Class("btn btn-invisible"), Text(pc.T("common.reset"))),
		),
	)

	var table Node = emptyStateCard(pc.T("trainings.empty"), "", "")
	if len(items) > 0 {
		rows := make([]Node, 0, len(items))
		for i := range items {
			t := items[i]
			rows = append(rows, Tr(
				data.Show(containsExpr(t.Title)),
				Td(Text(domain.FormatID(t.ID))),
				Td(Text(t.Title)),
				Td(Text(t.StartDate)),
				Td(Text(t.EndDate)),
				Td(trainingStatus(pc, t)),
			))
		}
		table = Div(Class(cardClass("table-wrap")),
			Table(Class("data-table"),
				THead(Tr(
					Th(Text(pc.T("trainings.id"))),
					Th(Text(pc.T("trainings.name"))),
					Th(Text(pc.T("trainings.startDate"))),
					Th(Text(pc.T("trainings.endDate"))),
					Th(Text(pc.T("trainings.status"))),
				)),
				TBody(Group(rows)),
			),
		)
	}

	return appPage(pc, pc.T("trainings.title"), "trainings",
		filterCard,
		quickFilterCard(pc, pc.T("common.quickFilter")),
		table,
	)
}
