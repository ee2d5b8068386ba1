package model

// PaneID identifies a focusable pane of the search view
type PaneID string

// pane identifiers, in focus order
const (
	QueryPaneID      PaneID = "query"
	TokensPaneID     PaneID = "tokens"
	SyntaxTreePaneID PaneID = "ast"
	ResultsPaneID    PaneID = "results"
)

var paneOrder = []PaneID{QueryPaneID, TokensPaneID, SyntaxTreePaneID, ResultsPaneID}

// Panes returns every pane in focus order
func Panes() []PaneID {
	out := make([]PaneID, len(paneOrder))
	copy(out, paneOrder)
	return out
}

// Title returns the caption shown on the pane frame
func (id PaneID) Title() string {
	switch id {
	case QueryPaneID:
		return "Query"
	case TokensPaneID:
		return "Tokens"
	case SyntaxTreePaneID:
		return "Syntax Tree"
	case ResultsPaneID:
		return "Filtered Data"
	default:
		return string(id)
	}
}

func (id PaneID) index() int {
	for i, p := range paneOrder {
		if p == id {
			return i
		}
	}
	return -1
}

// Next returns the pane after id, wrapping around. Unknown ids go to the query pane.
func (id PaneID) Next() PaneID {
	i := id.index()
	if i < 0 {
		return QueryPaneID
	}
	return paneOrder[(i+1)%len(paneOrder)]
}

// Prev returns the pane before id, wrapping around. Unknown ids go to the query pane.
func (id PaneID) Prev() PaneID {
	i := id.index()
	if i < 0 {
		return QueryPaneID
	}
	return paneOrder[(i+len(paneOrder)-1)%len(paneOrder)]
}
