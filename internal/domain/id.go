package domain

import (
	"strconv"
	"strings"
)

// ParseID parses a positive entity identifier from its decimal string form.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrValidation("invalid id %q", s)
	}
	return id, nil
}

// FormatID converts an entity identifier to its decimal string form.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
