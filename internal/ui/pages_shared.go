package ui

import (
	"strconv"
	"strings"

	"mini-admin/internal/i18n"
	"mini-admin/internal/settings"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"
)

type navItem struct {
	LabelKey string
	Href     string
	Key      string
	Icon     string
}

var navItems = []navItem{
	{LabelKey: "nav.dashboard", Href: "/ui", Key: "dashboard", Icon: "house"},
	{LabelKey: "nav.employees", Href: "/ui/employees", Key: "employees", Icon: "users"},
	{LabelKey: "nav.trainings", Href: "/ui/trainings", Key: "trainings", Icon: "graduation-cap"},
	{LabelKey: "nav.assignments", Href: "/ui/assignments", Key: "assignments", Icon: "link"},
	{LabelKey: "nav.settings", Href: "/ui/settings", Key: "settings", Icon: "settings"},
}

func htmlAttrs(pc pageContext) []Node {
	attrs := []Node{Lang(string(pc.Lang)), Attr("data-theme", string(pc.Theme))}
	if pc.Theme == settings.ThemeDark {
		attrs = append(attrs, Class("dark"))
	}
	return attrs
}

func pageHead(pc pageContext, title string) Node {
	return Head(
		Meta(Charset("utf-8")),
		Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
		TitleEl(Text(title+" | "+pc.T("app.title"))),
		Link(Rel("icon"), Href("data:,")),
		Link(Rel("stylesheet"), Href("/ui/static/css/app.css")),
		Script(Src("https://unpkg.com/lucide@latest/dist/umd/lucide.min.js")),
		Script(
			Type("module"),
			Src("https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.7/bundles/datastar.js"),
		),
	)
}

func appPage(pc pageContext, title, active string, body ...Node) Node {
	nav := make([]Node, 0, len(navItems))
	for _, item := range navItems {
		className := "app-nav-link"
		if item.Key == active {
			className += " active"
		}
		nav = append(nav, A(
			Href(item.Href),
			Class(className),
			I(Class("nav-icon"), Attr("data-lucide", item.Icon), Attr("aria-hidden", "true")),
			Span(Text(pc.T(item.LabelKey))),
		))
	}

	return HTML(
		Group(htmlAttrs(pc)),
		pageHead(pc, title),
		Body(
			Main(Class("app-shell"),
				Aside(
					Class("app-sidebar"),
					Div(
						Class("brand"),
						Strong(Text(pc.T("app.title"))),
						P(Class(mutedClass()), Text(pc.T("app.tagline"))),
					),
					Nav(Class("app-nav"), Group(nav)),
				),
				Section(
					Class("app-main"),
					Div(
						Class("topbar"),
						H1(Class("page-title"), Text(title)),
						settingsMenu(pc),
					),
					flashBanner(pc.Flash),
					Div(Class("content"), Group(body)),
				),
			),
			Script(Raw(settingsScript)),
		),
	)
}

// settingsMenu is the top bar's theme toggle and language switch. Both post
// to the settings endpoint and come back to the current page.
func settingsMenu(pc pageContext) Node {
	nextTheme, icon := settings.ThemeDark, "moon"
	if pc.Theme == settings.ThemeDark {
		nextTheme, icon = settings.ThemeLight, "sun"
	}
	langOptions := make([]Node, 0, len(i18n.Supported))
	for _, lang := range i18n.Supported {
		langOptions = append(langOptions, optionSelected(string(lang), languageLabel(pc, lang), string(pc.Lang)))
	}
	return Div(
		Class("settings-menu"),
		Form(
			Method("post"),
			Action("/ui/settings"),
			pc.csrfInput(),
			Input(Type("hidden"), Name("return"), Value(pc.Path)),
			Input(Type("hidden"), Name("theme"), Value(string(nextTheme))),
			Button(
				Type("submit"),
				ID("theme-toggle"),
				Class("btn btn-sm btn-icon"),
				Title(pc.T("settings.theme")),
				Attr("aria-label", pc.T("settings.theme")),
				I(Attr("data-lucide", icon), Attr("aria-hidden", "true")),
			),
		),
		Form(
			Method("post"),
			Action("/ui/settings"),
			pc.csrfInput(),
			Input(Type("hidden"), Name("return"), Value(pc.Path)),
			Label(Class("sr-only"), For("language-switch"), Text(pc.T("settings.language"))),
			Select(ID("language-switch"), Name("language"), Class("form-select input-sm"), Attr("data-autosubmit", ""), Group(langOptions)),
		),
	)
}

func languageLabel(pc pageContext, lang i18n.Lang) string {
	switch lang {
	case i18n.TR:
		return pc.T("settings.turkish")
	default:
		return pc.T("settings.english")
	}
}

func flashBanner(f *flashMessage) Node {
	if f == nil {
		return nil
	}
	return Div(
		Class("flash flash-"+string(f.Tone)),
		Attr("role", "status"),
		Text(f.Message),
	)
}

func errorPage(pc pageContext, title, message string) Node {
	return HTML(
		Group(htmlAttrs(pc)),
		pageHead(pc, title),
		Body(
			Main(
				Class("layout"),
				H1(Class("page-title"), Text(title)),
				P(Text(message)),
				P(A(Href("/ui"), Text(pc.T("common.back")))),
			),
		),
	)
}

func containsExpr(value string) string {
	lower := strings.ToLower(value)
	return "$q === '' || " + strconv.Quote(lower) + ".includes($q.toLowerCase())"
}

func cardClass(extra ...string) string {
	parts := []string{"Box", "p-3", "mb-3", "card"}
	parts = append(parts, extra...)
	return strings.Join(parts, " ")
}

func mutedClass() string {
	return "color-fg-muted text-small"
}

func primaryButtonClass() string {
	return "btn btn-primary"
}

func secondaryButtonClass() string {
	return "btn"
}

func dangerButtonClass() string {
	return "btn btn-danger"
}

// quickFilterCard hides table rows client-side as the user types. Rows opt
// in with data.Show(containsExpr(...)).
func quickFilterCard(pc pageContext, placeholder string, extraControls ...Node) Node {
	controls := []Node{
		Div(
			Class("d-flex flex-items-center gap-2 flex-1"),
			Label(Class("sr-only"), Text(pc.T("common.quickFilter"))),
			Input(Type("search"), Class("form-control"), Placeholder(placeholder), data.Bind("q"), AutoComplete("off")),
		),
	}
	controls = append(controls, extraControls...)
	return Div(
		Class(cardClass("toolbar")),
		data.Signals(map[string]any{"q": ""}),
		Div(Class("d-flex flex-wrap flex-items-center gap-2"), Group(controls)),
	)
}

func pageToolbar(description, newHref, newLabel string) Node {
	var cta Node
	if newHref != "" {
		cta = A(Href(newHref), Class(primaryButtonClass()), Text(newLabel))
	}
	return Div(
		Class(cardClass("toolbar")),
		Div(
			Class("d-flex flex-justify-between flex-items-center flex-wrap gap-2"),
			P(Class(mutedClass()+" mb-0"), Text(description)),
			cta,
		),
	)
}

func emptyStateCard(message, ctaLabel, ctaHref string) Node {
	var cta Node
	if ctaLabel != "" && ctaHref != "" {
		cta = A(Href(ctaHref), Class(primaryButtonClass()), Text(ctaLabel))
	}
	return Div(
		Class(cardClass("blankslate")),
		P(Class("color-fg-muted mb-2"), Text(message)),
		cta,
	)
}

func statusLabel(text, tone string) Node {
	className := "Label"
	if tone != "" {
		className += " Label--" + tone
	}
	return Span(Class(className), Text(text))
}

func formPage(pc pageContext, title, active, action, cancelHref string, fields ...Node) Node {
	nodes := []Node{pc.csrfInput()}
	nodes = append(nodes, fields...)
	return appPage(
		pc,
		title,
		active,
		Div(
			Class(cardClass()),
			Form(
				Class("stack-form"),
				Method("post"),
				Action(action),
				Group(nodes),
				Div(
					Class("form-actions"),
					Button(Type("submit"), Class(primaryButtonClass()), Text(pc.T("common.save"))),
					A(Href(cancelHref), Class(secondaryButtonClass()), Text(pc.T("common.cancel"))),
				),
			),
		),
	)
}

// confirmPage asks before a destructive POST to action.
func confirmPage(pc pageContext, active, message, action, cancelHref string, hidden ...Node) Node {
	return appPage(
		pc,
		pc.T("common.confirmDelete"),
		active,
		Div(
			Class(cardClass("confirm")),
			P(Text(message)),
			Form(
				Method("post"),
				Action(action),
				pc.csrfInput(),
				Group(hidden),
				Div(
					Class("form-actions"),
					Button(Type("submit"), Class(dangerButtonClass()), Text(pc.T("common.delete"))),
					A(Href(cancelHref), Class(secondaryButtonClass()), Text(pc.T("common.cancel"))),
				),
			),
		),
	)
}

func optionSelected(value, label, selected string) Node {
	if value == selected {
		return Option(Value(value), Selected(), Text(label))
	}
	return Option(Value(value), Text(label))
}

func hiddenField(name, value string) Node {
	return Input(Type("hidden"), Name(name), Value(value))
}
