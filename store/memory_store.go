package store

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/boolean-maybe/boolq/query"
	"github.com/boolean-maybe/boolq/record"
)

// DefaultSortField orders results when no sort field is configured.
const DefaultSortField = "name"

// Option configures an InMemoryStore.
type Option func(*InMemoryStore)

// WithSortField sets the field results are ordered by.
func WithSortField(field string) Option {
	return func(s *InMemoryStore) {
		if field != "" {
			s.sortField = field
		}
	}
}

// WithMaxDepth bounds parenthesis nesting for queries passed to Filter.
func WithMaxDepth(depth int) Option {
	return func(s *InMemoryStore) {
		s.maxDepth = depth
	}
}

// WithSource sets the loader used by Reload.
func WithSource(src Source) Option {
	return func(s *InMemoryStore) {
		s.source = src
	}
}

// InMemoryStore is an in-memory record collection
type InMemoryStore struct {
	mu             sync.RWMutex
	records        map[string]record.Record
	listeners      map[int]ChangeListener
	nextListenerID int

	sortField string
	maxDepth  int
	source    Source
}

func normalizeID(id string) string {
	return strings.TrimSpace(id)
}

// NewInMemoryStore creates a new in-memory record store
func NewInMemoryStore(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{
		records:        make(map[string]record.Record),
		listeners:      make(map[int]ChangeListener),
		nextListenerID: 1, // Start at 1 to avoid conflict with zero-value sentinel
		sortField:      DefaultSortField,
		maxDepth:       query.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddListener registers a callback for change notifications.
// returns a listener ID that can be used to remove the listener.
func (s *InMemoryStore) AddListener(listener ChangeListener) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextListenerID
	s.nextListenerID++
	s.listeners[id] = listener
	return id
}

// RemoveListener removes a previously registered listener by ID
func (s *InMemoryStore) RemoveListener(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.listeners, id)
}

// notifyListeners calls all registered listeners
func (s *InMemoryStore) notifyListeners() {
	s.mu.RLock()
	listeners := make([]ChangeListener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.RUnlock()

	for _, l := range listeners {
		l()
	}
}

// Add stores records, generating IDs where missing
func (s *InMemoryStore) Add(records ...record.Record) error {
	record.EnsureIDs(records)

	s.mu.Lock()
	batch := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		id := normalizeID(r.ID())
		_, inBatch := batch[id]
		if _, exists := s.records[id]; exists || inBatch {
			s.mu.Unlock()
			return fmt.Errorf("add record %q: %w", id, ErrDuplicateID)
		}
		batch[id] = struct{}{}
	}
	for _, r := range records {
		if r == nil {
			continue
		}
		s.records[normalizeID(r.ID())] = r
	}
	s.mu.Unlock()

	slog.Debug("records added", "count", len(batch))
	s.notifyListeners()
	return nil
}

// Get retrieves a record by ID
func (s *InMemoryStore) Get(id string) record.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[normalizeID(id)]
}

// Delete removes a record from the store
func (s *InMemoryStore) Delete(id string) {
	s.mu.Lock()
	delete(s.records, normalizeID(id))
	s.mu.Unlock()
	s.notifyListeners()
}

// All returns every record, sorted
func (s *InMemoryStore) All() []record.Record {
	return s.Search(nil)
}

// Fields returns the field names present across all records
func (s *InMemoryStore) Fields() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]record.Record, 0, len(s.records))
	for _, r := range s.records {
		records = append(records, r)
	}
	return record.Fields(records)
}

// Search returns the records accepted by pred, sorted by the sort field
func (s *InMemoryStore) Search(pred query.Predicate) []record.Record {
	s.mu.RLock()
	results := make([]record.Record, 0, len(s.records))
	for _, r := range s.records {
		if pred == nil || pred(r) {
			results = append(results, r)
		}
	}
	s.mu.RUnlock()

	record.SortBy(results, s.sortField)
	return results
}

// Filter compiles q and applies it to the collection
func (s *InMemoryStore) Filter(q string, fields []string) ([]record.Record, error) {
	if strings.TrimSpace(q) == "" {
		return s.All(), nil
	}

	program, err := query.ParseWithOptions(q, query.WithMaxDepth(s.maxDepth))
	if err != nil {
		return nil, fmt.Errorf("parse query: %w", err)
	}
	pred, err := query.CompileAST(program, fields...)
	if err != nil {
		return nil, fmt.Errorf("compile query: %w", err)
	}

	results := s.Search(pred)
	slog.Debug("filtered records", "query", q, "fields", fields, "matches", len(results))
	return results, nil
}

// Reload replaces the contents with the records produced by the source.
// Without a source it only notifies listeners.
func (s *InMemoryStore) Reload() error {
	if s.source == nil {
		s.notifyListeners()
		return nil
	}

	records, err := s.source()
	if err != nil {
		return fmt.Errorf("reload records: %w", err)
	}
	record.EnsureIDs(records)

	fresh := make(map[string]record.Record, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		id := normalizeID(r.ID())
		if _, exists := fresh[id]; exists {
			return fmt.Errorf("reload record %q: %w", id, ErrDuplicateID)
		}
		fresh[id] = r
	}

	s.mu.Lock()
	s.records = fresh
	s.mu.Unlock()

	slog.Info("records reloaded", "count", len(fresh))
	s.notifyListeners()
	return nil
}

// ensure InMemoryStore implements Store
var _ Store = (*InMemoryStore)(nil)
