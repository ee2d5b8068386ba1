package model

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/boolean-maybe/boolq/query"
	"github.com/boolean-maybe/boolq/record"
	"github.com/boolean-maybe/boolq/store"
)

// SearchState holds the last successfully compiled query with its tokens,
// syntax tree and matching records. Failed input is recorded in Err but never
// replaces the last valid state.
type SearchState struct {
	mu sync.RWMutex

	store    store.Store
	fields   []string
	maxDepth int

	query   string
	tokens  []query.Token
	program *query.Program
	results []record.Record
	err     error

	preSearchRow int

	listeners      map[int]func()
	nextListenerID int
}

// NewSearchState creates a search state over st. fields restricts matching
// (nil = any field); maxDepth bounds parenthesis nesting (0 = default).
func NewSearchState(st store.Store, fields []string, maxDepth int) *SearchState {
	if maxDepth <= 0 {
		maxDepth = query.DefaultMaxDepth
	}
	return &SearchState{
		store:          st,
		fields:         fields,
		maxDepth:       maxDepth,
		listeners:      make(map[int]func()),
		nextListenerID: 1,
	}
}

// AddListener registers a callback invoked after every Update or Clear
func (ss *SearchState) AddListener(listener func()) int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	id := ss.nextListenerID
	ss.nextListenerID++
	ss.listeners[id] = listener
	return id
}

// RemoveListener removes a previously registered listener by ID
func (ss *SearchState) RemoveListener(id int) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.listeners, id)
}

func (ss *SearchState) notifyListeners() {
	ss.mu.RLock()
	listeners := make([]func(), 0, len(ss.listeners))
	for _, l := range ss.listeners {
		listeners = append(listeners, l)
	}
	ss.mu.RUnlock()

	for _, l := range listeners {
		l()
	}
}

// Update runs input through the pipeline. On success the query, tokens, AST
// and results are replaced. On failure they are kept, Err reports the failure
// and the error is returned. Empty input clears the filter and shows every
// record.
func (ss *SearchState) Update(input string) error {
	defer ss.notifyListeners()

	if strings.TrimSpace(input) == "" {
		results := ss.store.All()
		ss.mu.Lock()
		ss.query = ""
		ss.tokens = nil
		ss.program = nil
		ss.results = results
		ss.err = nil
		ss.mu.Unlock()
		return nil
	}

	tokens, program, pred, err := ss.compile(input)
	if err != nil {
		slog.Debug("query rejected, keeping previous state", "query", input, "error", err)
		ss.mu.Lock()
		ss.err = err
		ss.mu.Unlock()
		return err
	}

	results := ss.store.Search(pred)
	ss.mu.Lock()
	ss.query = input
	ss.tokens = tokens
	ss.program = program
	ss.results = results
	ss.err = nil
	ss.mu.Unlock()
	return nil
}

func (ss *SearchState) compile(input string) ([]query.Token, *query.Program, query.Predicate, error) {
	tokens, err := query.Tokenize(input)
	if err != nil {
		return nil, nil, nil, err
	}
	program, err := query.ParseWithOptions(input, query.WithMaxDepth(ss.maxDepth))
	if err != nil {
		return nil, nil, nil, err
	}
	pred, err := query.CompileAST(program, ss.fields...)
	if err != nil {
		return nil, nil, nil, err
	}
	return tokens, program, pred, nil
}

// Refresh re-applies the current valid query, e.g. after the store changed.
func (ss *SearchState) Refresh() {
	ss.mu.RLock()
	q := ss.query
	ss.mu.RUnlock()
	_ = ss.Update(q)
}

// SetFields changes the field allowlist and re-applies the current query.
func (ss *SearchState) SetFields(fields []string) {
	ss.mu.Lock()
	ss.fields = fields
	ss.mu.Unlock()
	ss.Refresh()
}

// Fields returns the field allowlist (nil = any field)
func (ss *SearchState) Fields() []string {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.fields
}

// IsSearchActive reports whether a non-empty query is applied
func (ss *SearchState) IsSearchActive() bool {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.query != ""
}

// GetSearchQuery returns the last valid query
func (ss *SearchState) GetSearchQuery() string {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.query
}

// GetTokens returns the tokens of the last valid query
func (ss *SearchState) GetTokens() []query.Token {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.tokens
}

// GetProgram returns the AST of the last valid query, nil when none is applied
func (ss *SearchState) GetProgram() *query.Program {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.program
}

// GetSearchResults returns the records matched by the last valid query
func (ss *SearchState) GetSearchResults() []record.Record {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.results
}

// Err returns the error of the most recent Update, nil if it succeeded
func (ss *SearchState) Err() error {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.err
}

// SavePreSearchState remembers the selected row before a search starts
func (ss *SearchState) SavePreSearchState(row int) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.preSearchRow = row
}

// ClearSearchResults drops the query, shows all records again and returns
// the row saved by SavePreSearchState.
func (ss *SearchState) ClearSearchResults() int {
	ss.mu.RLock()
	row := ss.preSearchRow
	ss.mu.RUnlock()

	_ = ss.Update("")
	return row
}
