package mockapi

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// DefaultLimit is the page size used when _page is given without _limit.
const DefaultLimit = 10

var reservedParams = map[string]bool{
	"_sort": true, "_order": true, "_page": true, "_limit": true,
	"_start": true, "_end": true, "q": true, "_embed": true, "_expand": true,
}

type operator int

const (
	opEq operator = iota
	opNe
	opLike
	opGte
	opLte
)

type condition struct {
	path   []string
	op     operator
	values []string
	likes  []*regexp.Regexp
}

// ListQuery is a parsed json-server list request.
type ListQuery struct {
	conditions []condition
	text       string
	sortFields []string
	sortOrders []string
	page       int
	limit      int
	start      int
	end        int
	hasStart   bool
	hasEnd     bool
}

// ParseListQuery reads filters, full-text search, sorting and pagination
// from query parameters. Malformed numbers are rejected.
func ParseListQuery(v url.Values) (ListQuery, error) {
	var q ListQuery

	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if reservedParams[key] {
			continue
		}
		q.conditions = append(q.conditions, newCondition(key, v[key]))
	}

	q.text = strings.ToLower(strings.TrimSpace(v.Get("q")))
	q.sortFields = splitList(v.Get("_sort"))
	q.sortOrders = splitList(strings.ToLower(v.Get("_order")))

	var err error
	if q.page, err = intParam(v, "_page"); err != nil {
		return q, err
	}
	if q.limit, err = intParam(v, "_limit"); err != nil {
		return q, err
	}
	if v.Has("_start") {
		q.hasStart = true
		if q.start, err = intParam(v, "_start"); err != nil {
			return q, err
		}
	}
	if v.Has("_end") {
		q.hasEnd = true
		if q.end, err = intParam(v, "_end"); err != nil {
			return q, err
		}
	}
	return q, nil
}

func newCondition(key string, values []string) condition {
	c := condition{op: opEq, values: values}
	field := key
	switch {
	case strings.HasSuffix(key, "_like"):
		c.op, field = opLike, strings.TrimSuffix(key, "_like")
		for _, val := range values {
			re, err := regexp.Compile("(?i)" + val)
			if err != nil {
				// Not a valid pattern: match it literally.
				re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(val))
			}
			c.likes = append(c.likes, re)
		}
	case strings.HasSuffix(key, "_ne"):
		c.op, field = opNe, strings.TrimSuffix(key, "_ne")
	case strings.HasSuffix(key, "_gte"):
		c.op, field = opGte, strings.TrimSuffix(key, "_gte")
	case strings.HasSuffix(key, "_lte"):
		c.op, field = opLte, strings.TrimSuffix(key, "_lte")
	}
	c.path = strings.Split(field, ".")
	return c
}

func (c condition) match(rec Record) bool {
	raw, ok := lookup(rec, c.path)
	actual := formatValue(raw)
	switch c.op {
	case opEq:
		if !ok {
			return false
		}
		for _, want := range c.values {
			if actual == want {
				return true
			}
		}
		return false
	case opNe:
		for _, want := range c.values {
			if ok && actual == want {
				return false
			}
		}
		return true
	case opLike:
		if !ok {
			return false
		}
		for _, re := range c.likes {
			if re.MatchString(actual) {
				return true
			}
		}
		return false
	case opGte, opLte:
		if !ok {
			return false
		}
		for _, want := range c.values {
			cmp := compareValues(raw, want)
			if (c.op == opGte && cmp < 0) || (c.op == opLte && cmp > 0) {
				return false
			}
		}
		return true
	}
	return false
}

// Page is the result of applying a ListQuery.
type Page struct {
	Items []Record
	Total int
	// Links maps rel (first, prev, next, last) to page numbers. Only set for
	// _page requests.
	Links map[string]int
	Limit int
}

// Apply filters, sorts and paginates records. Total counts the filtered
// records before pagination.
func (q ListQuery) Apply(records []Record) Page {
	filtered := make([]Record, 0, len(records))
	for _, rec := range records {
		if q.matches(rec) {
			filtered = append(filtered, rec)
		}
	}
	q.sort(filtered)

	out := Page{Total: len(filtered)}
	switch {
	case q.page > 0:
		limit := q.limit
		if limit <= 0 {
			limit = DefaultLimit
		}
		out.Limit = limit
		last := (len(filtered) + limit - 1) / limit
		if last < 1 {
			last = 1
		}
		out.Items = window(filtered, (q.page-1)*limit, q.page*limit)
		out.Links = map[string]int{"first": 1, "last": last}
		if q.page > 1 {
			out.Links["prev"] = q.page - 1
		}
		if q.page < last {
			out.Links["next"] = q.page + 1
		}
	case q.hasStart || q.hasEnd:
		end := len(filtered)
		switch {
		case q.hasEnd:
			end = q.end
		case q.limit > 0:
			end = q.start + q.limit
		}
		out.Items = window(filtered, q.start, end)
	case q.limit > 0:
		out.Items = window(filtered, 0, q.limit)
	default:
		out.Items = filtered
	}
	return out
}

func (q ListQuery) matches(rec Record) bool {
	for _, c := range q.conditions {
		if !c.match(rec) {
			return false
		}
	}
	if q.text != "" && !containsText(rec, q.text) {
		return false
	}
	return true
}

func (q ListQuery) sort(records []Record) {
	if len(q.sortFields) == 0 {
		return
	}
	paths := make([][]string, len(q.sortFields))
	for i, f := range q.sortFields {
		paths[i] = strings.Split(f, ".")
	}
	sort.SliceStable(records, func(i, j int) bool {
		for k, path := range paths {
			a, _ := lookup(records[i], path)
			b, _ := lookup(records[j], path)
			cmp := compareAny(a, b)
			if cmp == 0 {
				continue
			}
			if k < len(q.sortOrders) && q.sortOrders[k] == "desc" {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

// LinkHeader renders p.Links for the request URL u.
func (p Page) LinkHeader(u *url.URL) string {
	if len(p.Links) == 0 {
		return ""
	}
	parts := make([]string, 0, len(p.Links))
	for _, rel := range []string{"first", "prev", "next", "last"} {
		page, ok := p.Links[rel]
		if !ok {
			continue
		}
		next := *u
		v := next.Query()
		v.Set("_page", strconv.Itoa(page))
		next.RawQuery = v.Encode()
		parts = append(parts, fmt.Sprintf("<%s>; rel=%q", next.String(), rel))
	}
	return strings.Join(parts, ", ")
}

func window(records []Record, start, end int) []Record {
	if start < 0 {
		start = 0
	}
	if end > len(records) {
		end = len(records)
	}
	if start >= end {
		return []Record{}
	}
	return records[start:end]
}

func lookup(rec Record, path []string) (any, bool) {
	var cur any = rec
	for _, part := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func containsText(v any, needle string) bool {
	switch x := v.(type) {
	case map[string]any:
		for _, val := range x {
			if containsText(val, needle) {
				return true
			}
		}
	case []any:
		for _, val := range x {
			if containsText(val, needle) {
				return true
			}
		}
	case string:
		return strings.Contains(strings.ToLower(x), needle)
	case float64, bool:
		return strings.Contains(strings.ToLower(formatValue(x)), needle)
	}
	return false
}

// compareValues compares a stored value with a query-string operand,
// numerically when both sides are numbers.
func compareValues(stored any, operand string) int {
	if n, ok := stored.(float64); ok {
		if m, err := strconv.ParseFloat(operand, 64); err == nil {
			return compareFloat(n, m)
		}
	}
	return strings.Compare(formatValue(stored), operand)
}

func compareAny(a, b any) int {
	af, aNum := a.(float64)
	bf, bNum := b.(float64)
	if aNum && bNum {
		return compareFloat(af, bf)
	}
	// Missing values sort last.
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return strings.Compare(formatValue(a), formatValue(b))
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func intParam(v url.Values, key string) (int, error) {
	raw := strings.TrimSpace(v.Get(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", key)
	}
	return n, nil
}
