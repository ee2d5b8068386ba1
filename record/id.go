package record

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// NewID generates a 6-character random alphanumeric ID (lowercase).
func NewID() string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	const length = 6
	id, err := gonanoid.Generate(alphabet, length)
	if err != nil {
		return "error0"
	}
	return id
}

// EnsureIDs assigns a generated ID to every record that lacks one.
func EnsureIDs(records []Record) {
	for _, r := range records {
		if r == nil {
			continue
		}
		if r.ID() == "" {
			r[IDField] = NewID()
		}
	}
}
