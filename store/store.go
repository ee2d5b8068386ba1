package store

import (
	"errors"

	"github.com/boolean-maybe/boolq/query"
	"github.com/boolean-maybe/boolq/record"
)

// ErrDuplicateID is returned when a record with the same ID is already stored.
var ErrDuplicateID = errors.New("duplicate record id")

// Store is the interface for record collections.
// Implementations must be thread-safe and notify listeners on changes.
type Store interface {
	// AddListener registers a callback for change notifications.
	// returns a listener ID that can be used to remove the listener.
	AddListener(listener ChangeListener) int

	// RemoveListener removes a previously registered listener by ID
	RemoveListener(id int)

	// Add stores records. Records without an ID get a generated one.
	// Returns ErrDuplicateID if an ID is already taken; nothing is stored then.
	Add(records ...record.Record) error

	// Get retrieves a record by ID
	Get(id string) record.Record

	// Delete removes a record from the store
	Delete(id string)

	// All returns every record in sort order
	All() []record.Record

	// Fields returns the field names present across all records
	Fields() []string

	// Search returns the records accepted by pred, in sort order.
	// A nil predicate accepts everything.
	Search(pred query.Predicate) []record.Record

	// Filter compiles q and returns the matching records. An empty or
	// whitespace-only query returns all records. fields restricts matching
	// to the given fields (nil = any field).
	Filter(q string, fields []string) ([]record.Record, error)

	// Reload replaces the contents with a fresh read from the backing source
	Reload() error
}

// ChangeListener is called when the store's data changes
type ChangeListener func()

// Source produces the records a store is loaded from.
type Source func() ([]record.Record, error)
