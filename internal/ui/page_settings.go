package ui

import (
	"mini-admin/internal/i18n"
	"mini-admin/internal/settings"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func settingsPage(pc pageContext) Node {
	langOptions := make([]Node, 0, len(i18n.Supported))
	for _, lang := range i18n.Supported {
		langOptions = append(langOptions, optionSelected(string(lang), languageLabel(pc, lang), string(pc.Lang)))
	}
	return formPage(pc, pc.T("settings.title"), "settings", "/ui/settings", "/ui",
		hiddenField("return", "/ui/settings"),
		Label(For("theme"), Text(pc.T("settings.theme"))),
		Select(ID("theme"), Name("theme"),
			optionSelected(string(settings.ThemeLight), pc.T("settings.light"), string(pc.Theme)),
			optionSelected(string(settings.ThemeDark), pc.T("settings.dark"), string(pc.Theme)),
		),
		Label(For("language"), Text(pc.T("settings.language"))),
		Select(ID("language"), Name("language"), Group(langOptions)),
	)
}
