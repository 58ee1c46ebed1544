// Package patch collects the column updates of a partial edit.
package patch

import (
	"slices"
	"strings"
)

// Fields maps column names to new values, ready for gorm's Updates.
type Fields map[string]interface{}

// String sets column to the trimmed value when v is present.
func (f Fields) String(column string, v *string) {
	if v != nil {
		f[column] = strings.TrimSpace(*v)
	}
}

// Set sets column when v is non-nil.
func Set[T any](f Fields, column string, v *T) {
	if v != nil {
		f[column] = *v
	}
}

// Columns returns the sorted column names, for audit metadata.
func (f Fields) Columns() []string {
	names := make([]string, 0, len(f))
	for k := range f {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Map returns f as the plain map the repositories accept.
func (f Fields) Map() map[string]interface{} {
	return f
}
