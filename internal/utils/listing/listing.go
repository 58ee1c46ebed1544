// Package listing derives the filtered, searched and sorted view of an
// in-memory collection that every table page shows.
package listing

import (
	"slices"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// SortState is the current sort column and direction.
type SortState struct {
	Key   string `json:"key,omitempty"`
	Order string `json:"order,omitempty"`
}

// Toggle mirrors clicking a column header: a new key sorts ascending,
// the same key again flips the direction.
func (s SortState) Toggle(key string) SortState {
	if s.Key == key {
		if s.Order == OrderAsc {
			return SortState{Key: key, Order: OrderDesc}
		}
		return SortState{Key: key, Order: OrderAsc}
	}
	return SortState{Key: key, Order: OrderAsc}
}

// Query is a parsed listing request.
type Query struct {
	Search  string            `json:"search,omitempty"`
	Filters map[string]string `json:"filters,omitempty"`
	Sort    SortState         `json:"sort"`
}

// FilterParams are the equality filters a table may accept.
var FilterParams = []string{"status", "role", "business", "branch", "plan"}

// ParseQuery reads q, the equality filters, sort and order. A sort
// without an explicit order behaves like a first header click.
func ParseQuery(c *fiber.Ctx) Query {
	q := Query{
		Search:  strings.TrimSpace(c.Query("q")),
		Filters: make(map[string]string),
	}
	for _, name := range FilterParams {
		if v := strings.TrimSpace(c.Query(name)); v != "" {
			q.Filters[name] = v
		}
	}
	if key := c.Query("sort"); key != "" {
		switch order := strings.ToLower(c.Query("order")); order {
		case OrderAsc, OrderDesc:
			q.Sort = SortState{Key: key, Order: order}
		default:
			q.Sort = SortState{}.Toggle(key)
		}
	}
	return q
}

// Spec describes how a page searches, filters and sorts its rows.
type Spec[T any] struct {
	// Search returns the fields matched by the search term.
	Search func(T) []string
	// Filters maps a filter name to the value compared for equality.
	Filters map[string]func(T) string
	// Strings and Times are the sortable columns.
	Strings map[string]func(T) string
	Times   map[string]func(T) time.Time
	Numbers map[string]func(T) float64
}

// Result is a page of rows plus the counts shown in the table badge.
type Result[T any] struct {
	Data  []T   `json:"data"`
	Count int   `json:"count"`
	Total int   `json:"total"`
	Query Query `json:"query"`
}

// Apply returns the rows matching q in the requested order. items is
// not modified.
func Apply[T any](items []T, spec Spec[T], q Query) Result[T] {
	out := Search(items, spec.Search, q.Search)
	out = Filter(out, spec.Filters, q.Filters)
	Sort(out, spec, q.Sort)
	return Result[T]{Data: out, Count: len(out), Total: len(items), Query: q}
}

// Search keeps the rows where any field contains term, ignoring case.
// It always returns a new slice.
func Search[T any](items []T, fields func(T) []string, term string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]T, 0, len(items))
	for _, it := range items {
		if term == "" || fields == nil || matches(fields(it), term) {
			out = append(out, it)
		}
	}
	return out
}

func matches(fields []string, term string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// Filter keeps the rows whose filter values equal the requested ones,
// ignoring case. Unknown filter names are ignored.
func Filter[T any](items []T, filters map[string]func(T) string, want map[string]string) []T {
	if len(want) == 0 {
		return items
	}
	out := items[:0:0]
	for _, it := range items {
		keep := true
		for name, v := range want {
			get, ok := filters[name]
			if !ok {
				continue
			}
			if !strings.EqualFold(get(it), v) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, it)
		}
	}
	return out
}

// Sort orders items in place by the state's key. Unknown keys leave the
// order untouched.
func Sort[T any](items []T, spec Spec[T], s SortState) {
	cmp := comparator(spec, s.Key)
	if cmp == nil {
		return
	}
	if s.Order == OrderDesc {
		slices.SortStableFunc(items, func(a, b T) int { return cmp(b, a) })
		return
	}
	slices.SortStableFunc(items, cmp)
}

func comparator[T any](spec Spec[T], key string) func(a, b T) int {
	if get, ok := spec.Strings[key]; ok {
		return func(a, b T) int {
			return strings.Compare(strings.ToLower(get(a)), strings.ToLower(get(b)))
		}
	}
	if get, ok := spec.Times[key]; ok {
		return func(a, b T) int {
			return get(a).Compare(get(b))
		}
	}
	if get, ok := spec.Numbers[key]; ok {
		return func(a, b T) int {
			x, y := get(a), get(b)
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	}
	return nil
}
