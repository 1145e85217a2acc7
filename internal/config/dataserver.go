package config

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// dataCollections are the resource paths the console requests below the
// data server base URL.
var dataCollections = map[string]bool{
	"employees":   true,
	"trainings":   true,
	"assignments": true,
	"db":          true,
}

// NormalizeDataServerURL checks a data server base URL and returns it
// without a trailing slash. A path prefix is allowed for servers mounted
// behind a proxy, but the URL must not point at one of the collections,
// carry credentials, a query or a fragment.
func NormalizeDataServerURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("data server URL is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("data server URL %q: %w", raw, err)
	}
	switch {
	case u.Scheme != "http" && u.Scheme != "https":
		return "", fmt.Errorf("data server URL %q: scheme must be http or https", raw)
	case u.Host == "":
		return "", fmt.Errorf("data server URL %q: missing host", raw)
	case u.User != nil:
		return "", fmt.Errorf("data server URL %q: credentials are not supported", raw)
	case u.RawQuery != "" || u.Fragment != "" || u.ForceQuery:
		return "", fmt.Errorf("data server URL %q: query and fragment are not allowed", raw)
	}

	p := strings.TrimRight(u.Path, "/")
	if last := path.Base(p); p != "" && dataCollections[last] {
		return "", fmt.Errorf("data server URL %q points at the %s collection, use the server root", raw, last)
	}
	u.Path = p
	u.RawPath = ""
	return u.String(), nil
}
