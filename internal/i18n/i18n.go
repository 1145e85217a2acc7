// Package i18n serves the UI translation bundles.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Lang is a supported UI language.
type Lang string

const (
	EN Lang = "en"
	TR Lang = "tr"
)

// Default is used when a language is unknown and as the fallback bundle
// for missing keys.
const Default = EN

// Supported lists every language with a bundle, in display order.
var Supported = []Lang{EN, TR}

var (
	bundles = mustLoad()
	matcher = language.NewMatcher([]language.Tag{language.English, language.Turkish})
)

func mustLoad() map[Lang]map[string]string {
	out := make(map[Lang]map[string]string, len(Supported))
	for _, lang := range Supported {
		raw, err := localeFS.ReadFile("locales/" + string(lang) + ".json")
		if err != nil {
			panic(fmt.Sprintf("i18n: read %s bundle: %v", lang, err))
		}
		m := map[string]string{}
		if err := json.Unmarshal(raw, &m); err != nil {
			panic(fmt.Sprintf("i18n: parse %s bundle: %v", lang, err))
		}
		out[lang] = m
	}
	return out
}

// Parse normalizes s to a supported language. ok is false for unknown input.
func Parse(s string) (Lang, bool) {
	l := Lang(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := bundles[l]; ok {
		return l, true
	}
	return Default, false
}

// T translates key into lang. args are name/value pairs substituted into
// {{name}} placeholders. Unknown languages use the default bundle; keys
// missing from a bundle fall back to the default bundle, then to the key.
func T(lang Lang, key string, args ...any) string {
	msg, ok := bundles[lang][key]
	if !ok {
		msg, ok = bundles[Default][key]
	}
	if !ok {
		msg = key
	}
	if len(args) < 2 {
		return msg
	}
	pairs := make([]string, 0, len(args))
	for i := 0; i+1 < len(args); i += 2 {
		pairs = append(pairs, "{{"+fmt.Sprint(args[i])+"}}", fmt.Sprint(args[i+1]))
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// Translator binds T to a language.
type Translator func(key string, args ...any) string

// For returns a Translator for lang.
func For(lang Lang) Translator {
	return func(key string, args ...any) string { return T(lang, key, args...) }
}

// Detect picks the best supported language for an Accept-Language header.
func Detect(acceptLanguage string) Lang {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default
	}
	return Supported[idx]
}

// Keys returns every key of lang's bundle (for completeness checks).
func Keys(lang Lang) []string {
	out := make([]string, 0, len(bundles[lang]))
	for k := range bundles[lang] {
		out = append(out, k)
	}
	return out
}
