package ui

import (
	"net/url"
	"strconv"
	"strings"
)

func formString(values url.Values, key string) string {
	if values == nil {
		return ""
	}
	return strings.TrimSpace(first(values[key]))
}

// formInt64 returns 0 when the field is missing or not a number.
func formInt64(values url.Values, key string) int64 {
	n, err := strconv.ParseInt(formString(values, key), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// formInt64s reads every value of a multi-select field, skipping
// anything that is not a number.
func formInt64s(values url.Values, key string) []int64 {
	raw := values[key]
	out := make([]int64, 0, len(raw))
	for _, v := range raw {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// safeReturn accepts only local console paths so the return parameter
// cannot redirect off-site.
func safeReturn(raw, fallback string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "//") || strings.Contains(raw, `\`) {
		return fallback
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" {
		return fallback
	}
	if u.Path != "/ui" && !strings.HasPrefix(u.Path, "/ui/") {
		return fallback
	}
	return raw
}
