package view

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/boolean-maybe/boolq/component"
	"github.com/boolean-maybe/boolq/config"
	"github.com/boolean-maybe/boolq/model"
	"github.com/boolean-maybe/boolq/query"
	"github.com/boolean-maybe/boolq/record"
	"github.com/boolean-maybe/boolq/render"
	"github.com/boolean-maybe/boolq/store"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const queryLabel = "Query: "

// SearchView is the interactive query screen: a prompt, the searched fields,
// the tokens and syntax tree of the last valid query, the filtered records
// and a status line.
type SearchView struct {
	root      *tview.Flex
	prompt    *component.CompletionPrompt
	fieldList *component.WordList
	tokens    *tview.TextView
	tree      *tview.TextView
	results   *tview.Table
	status    *StatusBar

	searchState     *model.SearchState
	recordStore     store.Store
	dataSource      string
	stateListenerID int
	storeListenerID int

	focus       model.PaneID
	focusSetter func(p tview.Primitive)
}

// NewSearchView creates the search view. dataSource names where the records
// came from and is shown in the status line.
func NewSearchView(recordStore store.Store, searchState *model.SearchState, dataSource string) *SearchView {
	sv := &SearchView{
		searchState: searchState,
		recordStore: recordStore,
		dataSource:  dataSource,
		focus:       model.QueryPaneID,
	}
	sv.build()
	return sv
}

func (sv *SearchView) build() {
	colors := config.GetColors()

	sv.prompt = component.NewCompletionPrompt(component.DefaultKeywords)
	sv.prompt.SetLabel(queryLabel)
	sv.prompt.SetChangedFunc(sv.onQueryChanged)
	sv.prompt.SetDoneFunc(sv.onPromptDone)
	sv.prompt.SetSubmitHandler(func(string) { sv.setFocus(model.ResultsPaneID) })

	sv.fieldList = component.NewWordList("Fields: ", nil)
	sv.fieldList.SetPlaceholder("any field (case-sensitive)")

	sv.tokens = tview.NewTextView()
	sv.tokens.SetDynamicColors(true)
	sv.tokens.SetWrap(false)

	sv.tree = tview.NewTextView()
	sv.tree.SetDynamicColors(false)
	sv.tree.SetWrap(false)
	sv.tree.SetTextColor(colors.SyntaxTreeTextColor)

	sv.results = tview.NewTable()
	sv.results.SetFixed(1, 0)
	sv.results.SetSelectable(true, false)
	sv.results.SetSelectedStyle(tcell.StyleDefault.
		Foreground(colors.TableSelectedText).
		Background(colors.TableSelectedBackground))

	sv.status = NewStatusBar()

	for _, pane := range model.Panes() {
		box := sv.paneBox(pane)
		box.SetBorder(true)
		box.SetTitle(" " + pane.Title() + " ")
		box.SetTitleColor(colors.PaneTitle)
		box.SetTitleAlign(tview.AlignLeft)
		box.SetBorderColor(colors.PaneBorder)
	}

	top := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(sv.prompt, 3, 0, true).
		AddItem(sv.fieldList, 1, 0, false)

	panes := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(sv.tokens, 0, 1, false).
		AddItem(sv.tree, 0, 2, false).
		AddItem(sv.results, 0, 3, false)

	sv.root = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(top, 4, 0, true).
		AddItem(panes, 0, 1, false).
		AddItem(sv.status, 1, 0, false)
	sv.root.SetInputCapture(sv.handleInput)

	sv.stateListenerID = sv.searchState.AddListener(sv.refresh)
	sv.storeListenerID = sv.recordStore.AddListener(sv.searchState.Refresh)

	sv.applyFocusStyle()
	sv.searchState.Refresh()
}

// paneBox returns the frame of a pane
func (sv *SearchView) paneBox(pane model.PaneID) *tview.Box {
	switch pane {
	case model.TokensPaneID:
		return sv.tokens.Box
	case model.SyntaxTreePaneID:
		return sv.tree.Box
	case model.ResultsPaneID:
		return sv.results.Box
	default:
		return sv.prompt.Box
	}
}

// panePrimitive returns the primitive that receives focus for a pane
func (sv *SearchView) panePrimitive(pane model.PaneID) tview.Primitive {
	switch pane {
	case model.TokensPaneID:
		return sv.tokens
	case model.SyntaxTreePaneID:
		return sv.tree
	case model.ResultsPaneID:
		return sv.results
	default:
		return sv.prompt
	}
}

// GetPrimitive returns the root tview primitive
func (sv *SearchView) GetPrimitive() tview.Primitive {
	return sv.root
}

// SetFocusSetter sets the callback for requesting focus changes
func (sv *SearchView) SetFocusSetter(setter func(p tview.Primitive)) {
	sv.focusSetter = setter
}

// FocusedPane returns the pane that has focus
func (sv *SearchView) FocusedPane() model.PaneID {
	return sv.focus
}

// Prompt returns the query input
func (sv *SearchView) Prompt() *component.CompletionPrompt {
	return sv.prompt
}

// SetQuery replaces the prompt text, which runs the query
func (sv *SearchView) SetQuery(q string) {
	sv.prompt.SetQuery(q)
}

// Close detaches the view from the search state and the store
func (sv *SearchView) Close() {
	sv.searchState.RemoveListener(sv.stateListenerID)
	sv.recordStore.RemoveListener(sv.storeListenerID)
}

func (sv *SearchView) setFocus(pane model.PaneID) {
	sv.focus = pane
	sv.applyFocusStyle()
	if sv.focusSetter != nil {
		sv.focusSetter(sv.panePrimitive(pane))
	}
}

func (sv *SearchView) applyFocusStyle() {
	colors := config.GetColors()
	for _, pane := range model.Panes() {
		color := colors.PaneBorder
		if pane == sv.focus {
			color = colors.PaneFocusedBorder
		}
		sv.paneBox(pane).SetBorderColor(color)
	}
}

func (sv *SearchView) onQueryChanged(text string) {
	if !sv.searchState.IsSearchActive() && strings.TrimSpace(text) != "" {
		row, _ := sv.results.GetSelection()
		sv.searchState.SavePreSearchState(row)
	}
	// rejected input is kept in the search state and shown by refresh
	_ = sv.searchState.Update(text)
}

// onPromptDone receives the keys the input field finishes on
func (sv *SearchView) onPromptDone(key tcell.Key) {
	switch key {
	case tcell.KeyTab:
		sv.setFocus(sv.focus.Next())
	case tcell.KeyBacktab:
		sv.setFocus(sv.focus.Prev())
	case tcell.KeyEscape:
		sv.clearSearch()
	}
}

// handleInput processes keys for the whole view before the focused pane
func (sv *SearchView) handleInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyCtrlR:
		sv.reload()
		return nil
	case tcell.KeyEscape:
		sv.clearSearch()
		return nil
	}

	// the prompt handles its own Tab (hint acceptance) and typed runes
	if sv.focus == model.QueryPaneID {
		return event
	}

	switch event.Key() {
	case tcell.KeyTab:
		sv.setFocus(sv.focus.Next())
		return nil
	case tcell.KeyBacktab:
		sv.setFocus(sv.focus.Prev())
		return nil
	case tcell.KeyRune:
		if event.Rune() == '/' {
			sv.setFocus(model.QueryPaneID)
			return nil
		}
	}
	return event
}

// clearSearch empties the prompt, shows every record and restores the row
// selected before the search started
func (sv *SearchView) clearSearch() {
	sv.prompt.Clear()
	row := sv.searchState.ClearSearchResults()
	if row > 0 && row < sv.results.GetRowCount() {
		sv.results.Select(row, 0)
	}
	sv.setFocus(model.QueryPaneID)
}

func (sv *SearchView) reload() {
	if err := sv.recordStore.Reload(); err != nil {
		slog.Warn("reload failed", "error", err)
		sv.status.SetError(err.Error())
	}
}

// refresh redraws every pane from the search state
func (sv *SearchView) refresh() {
	fields := sv.searchState.Fields()
	sv.fieldList.SetWords(fields)

	sv.tokens.SetText(formatTokens(sv.searchState.GetTokens()))
	sv.tokens.ScrollToBeginning()

	tree, err := render.SyntaxTree(sv.searchState.GetProgram())
	if err != nil {
		slog.Error("failed to render syntax tree", "error", err)
	}
	sv.tree.SetText(tree)
	sv.tree.ScrollToBeginning()

	results := sv.searchState.GetSearchResults()
	columns := fields
	if len(columns) == 0 {
		columns = sv.recordStore.Fields()
	}
	sv.fillTable(columns, results)

	sv.status.SetStat("Version", config.Version, 1)
	sv.status.SetStat("Data", filepath.Base(sv.dataSource), 2)
	sv.status.SetStat("Matches", fmt.Sprintf("%d/%d", len(results), len(sv.recordStore.All())), 3)
	mode := "any field"
	if len(fields) > 0 {
		mode = "restricted"
	}
	sv.status.SetStat("Mode", mode, 4)

	if err := sv.searchState.Err(); err != nil {
		sv.status.SetError(err.Error())
	} else {
		sv.status.SetError("")
	}
}

func (sv *SearchView) fillTable(columns []string, results []record.Record) {
	colors := config.GetColors()
	row, _ := sv.results.GetSelection()

	sv.results.Clear()
	for c, name := range columns {
		sv.results.SetCell(0, c, tview.NewTableCell(name).
			SetTextColor(colors.TableHeaderColor).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false).
			SetExpansion(1))
	}
	for r, cells := range render.Rows(results, columns) {
		for c, text := range cells {
			sv.results.SetCell(r+1, c, tview.NewTableCell(tview.Escape(text)).
				SetTextColor(colors.TableCellColor).
				SetExpansion(1))
		}
	}

	switch {
	case len(results) == 0:
		sv.results.Select(0, 0)
	case row < 1:
		sv.results.Select(1, 0)
	case row > len(results):
		sv.results.Select(len(results), 0)
	default:
		sv.results.Select(row, 0)
	}
}

// formatTokens numbers tokens one per line, colored by kind
func formatTokens(tokens []query.Token) string {
	colors := config.GetColors()
	var sb strings.Builder
	for i, t := range tokens {
		kindColor := colors.TokenOperandColor
		switch t.Kind {
		case query.OpenParen, query.CloseParen:
			kindColor = colors.TokenParenColor
		case query.AndOperator, query.OrOperator:
			kindColor = colors.TokenOperatorColor
		}
		sb.WriteString(colors.TokenIndexColor + strconv.Itoa(i+1) + ".[-] ")
		sb.WriteString(kindColor + t.Kind.String() + ":[-] " + tview.Escape(t.Text) + "\n")
	}
	return sb.String()
}
