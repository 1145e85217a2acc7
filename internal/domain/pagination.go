package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultPageSize is the page size when none is specified.
const DefaultPageSize = 10

// MaxPageSize is the maximum allowed page size.
const MaxPageSize = 100

// PageSizes are the page sizes offered by the employee table.
var PageSizes = []int{5, 10, 20, 50}

// SortOrder is the direction of a sorted list.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// EmployeeSortFields lists the columns the employee list can be sorted by.
var EmployeeSortFields = []string{"id", "name", "email", "role", "status", "createdAt"}

// EmployeeQuery is the employee list state that round-trips through the URL:
// page, limit, sort, order, name and role.
type EmployeeQuery struct {
	Page  int
	Limit int
	Sort  string
	Order SortOrder
	Name  string
	Role  Role // empty means all roles
}

// Normalized returns a copy with defaults applied and out-of-range values clamped.
func (q EmployeeQuery) Normalized() EmployeeQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = DefaultPageSize
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	if !validSortField(q.Sort) {
		q.Sort = ""
	}
	if q.Sort == "" {
		q.Order = ""
	} else if q.Order != OrderDesc {
		q.Order = OrderAsc
	}
	q.Name = strings.TrimSpace(q.Name)
	return q
}

// Offset returns the zero-based index of the first row on the page.
func (q EmployeeQuery) Offset() int {
	n := q.Normalized()
	return (n.Page - 1) * n.Limit
}

// TotalPages returns the number of pages needed to show total rows.
// At least one page is always reported.
func (q EmployeeQuery) TotalPages(total int64) int {
	n := q.Normalized()
	if total <= 0 {
		return 1
	}
	return int((total + int64(n.Limit) - 1) / int64(n.Limit))
}

// ParseEmployeeQuery reads the list state from URL query parameters.
// Unparseable values fall back to defaults.
func ParseEmployeeQuery(v url.Values) EmployeeQuery {
	q := EmployeeQuery{
		Sort:  strings.TrimSpace(v.Get("sort")),
		Order: SortOrder(strings.ToLower(strings.TrimSpace(v.Get("order")))),
		Name:  v.Get("name"),
	}
	if n, err := strconv.Atoi(v.Get("page")); err == nil {
		q.Page = n
	}
	if n, err := strconv.Atoi(v.Get("limit")); err == nil {
		q.Limit = n
	}
	if r, ok := ParseRole(v.Get("role")); ok {
		q.Role = r
	}
	return q.Normalized()
}

// Values encodes the list state as URL query parameters. Defaults are
// omitted so URLs stay short.
func (q EmployeeQuery) Values() url.Values {
	n := q.Normalized()
	v := url.Values{}
	if n.Page > 1 {
		v.Set("page", strconv.Itoa(n.Page))
	}
	if n.Limit != DefaultPageSize {
		v.Set("limit", strconv.Itoa(n.Limit))
	}
	if n.Sort != "" {
		v.Set("sort", n.Sort)
		v.Set("order", string(n.Order))
	}
	if n.Name != "" {
		v.Set("name", n.Name)
	}
	if n.Role != "" {
		v.Set("role", string(n.Role))
	}
	return v
}

// WithPage returns a copy pointing at the given page.
func (q EmployeeQuery) WithPage(page int) EmployeeQuery {
	q.Page = page
	return q
}

// WithSort returns a copy sorted by field. Selecting the current ascending
// sort field flips the order to descending; any other selection sorts ascending.
// Changing the sort resets to the first page.
func (q EmployeeQuery) WithSort(field string) EmployeeQuery {
	n := q.Normalized()
	order := OrderAsc
	if n.Sort == field && n.Order == OrderAsc {
		order = OrderDesc
	}
	n.Sort = field
	n.Order = order
	n.Page = 1
	return n
}

func validSortField(field string) bool {
	for _, f := range EmployeeSortFields {
		if f == field {
			return true
		}
	}
	return false
}
