package models

import "github.com/google/uuid"

// newID returns the opaque identifier used for every document.
func newID() string {
	return uuid.NewString()
}

// assignID fills an empty primary key before insert.
func assignID(id *string) {
	if *id == "" {
		*id = newID()
	}
}

// Display fallbacks for dangling references.
const (
	UnknownName  = "Unknown"
	NotAvailable = "N/A"
)

// OrUnknown returns s, or UnknownName when s is blank.
func OrUnknown(s string) string {
	if s == "" {
		return UnknownName
	}
	return s
}

// OrNA returns s, or NotAvailable when s is blank.
func OrNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}
