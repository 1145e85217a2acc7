package ui

import (
	"strconv"

	"mini-admin/internal/service/dashboard"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type dashboardCardData struct {
	Label string
	Value string
	Href  string
}

func dashboardPage(pc pageContext, s dashboard.Summary) Node {
	cards := []dashboardCardData{
		{Label: pc.T("dashboard.employees"), Value: strconv.FormatInt(s.Employees, 10), Href: "/ui/employees"},
		{Label: pc.T("dashboard.activeEmployees"), Value: strconv.FormatInt(s.ActiveEmployees, 10), Href: "/ui/employees"},
		{Label: pc.T("dashboard.trainings"), Value: strconv.Itoa(s.Trainings), Href: "/ui/trainings"},
		{Label: pc.T("dashboard.activeTrainings"), Value: strconv.Itoa(s.ActiveTrainings), Href: "/ui/trainings?status=active"},
		{Label: pc.T("dashboard.assignments"), Value: strconv.Itoa(s.Assignments), Href: "/ui/assignments"},
	}
	nodes := make([]Node, 0, len(cards))
	for _, c := range cards {
		nodes = append(nodes, Div(
			Class(cardClass("stat-card")),
			P(Class(mutedClass()), Text(c.Label)),
			Strong(Class("stat-value"), Text(c.Value)),
			A(Href(c.Href), Text(pc.T("dashboard.open")+" ->")),
		))
	}
	return appPage(pc, pc.T("dashboard.title"), "dashboard", Div(Class("stat-grid"), Group(nodes)))
}
