package testutil

import (
	"strings"
	"testing"

	"github.com/boolean-maybe/boolq/config"
	"github.com/boolean-maybe/boolq/model"
	"github.com/boolean-maybe/boolq/record"
	"github.com/boolean-maybe/boolq/store"
	"github.com/boolean-maybe/boolq/view"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TestApp wraps the search view stack for integration testing with SimulationScreen
type TestApp struct {
	App         *tview.Application
	Screen      tcell.SimulationScreen
	View        *view.SearchView
	Store       *store.InMemoryStore
	SearchState *model.SearchState
	DataFile    string
	t           *testing.T
}

// NewTestApp bootstraps the search view over PeopleYAML.
// fields restricts matching the way --fields does.
// Mirrors the initialization pattern from main.go.
func NewTestApp(t *testing.T, fields ...string) *TestApp {
	t.Helper()

	// isolate config paths so tests don't read the real user config
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	config.ResetPathManager()
	t.Cleanup(config.ResetPathManager)

	dataFile := WriteRecordFile(t, t.TempDir(), "people.yaml", PeopleYAML)

	recordStore := store.NewInMemoryStore(
		store.WithSource(func() ([]record.Record, error) { return record.LoadFile(dataFile) }),
	)
	if err := recordStore.Reload(); err != nil {
		t.Fatalf("failed to load records: %v", err)
	}
	searchState := model.NewSearchState(recordStore, fields, 0)

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("failed to init simulation screen: %v", err)
	}
	screen.SetSize(160, 40)
	screen.Clear()

	app := tview.NewApplication()
	app.SetScreen(screen)

	searchView := view.NewSearchView(recordStore, searchState, dataFile)
	searchView.SetFocusSetter(func(p tview.Primitive) { app.SetFocus(p) })
	app.SetRoot(searchView.GetPrimitive(), true)
	app.SetFocus(searchView.Prompt())

	ta := &TestApp{
		App:         app,
		Screen:      screen,
		View:        searchView,
		Store:       recordStore,
		SearchState: searchState,
		DataFile:    dataFile,
		t:           t,
	}
	ta.Draw()
	return ta
}

// Draw renders the view onto the simulation screen
func (ta *TestApp) Draw() {
	_, width, height := ta.Screen.GetContents()
	root := ta.View.GetPrimitive()
	root.SetRect(0, 0, width, height)
	root.Draw(ta.Screen)
	ta.Screen.Show()
}

// SendKey simulates a key press the way tview dispatches it: through the
// root's input capture, then down to the focused primitive.
func (ta *TestApp) SendKey(key tcell.Key, ch rune, mod tcell.ModMask) {
	event := tcell.NewEventKey(key, ch, mod)
	if handler := ta.View.GetPrimitive().InputHandler(); handler != nil {
		handler(event, func(p tview.Primitive) { ta.App.SetFocus(p) })
	}
	ta.Draw()
}

// SendText types a string of characters into the focused primitive
func (ta *TestApp) SendText(text string) {
	for _, ch := range text {
		ta.SendKey(tcell.KeyRune, ch, tcell.ModNone)
	}
}

// GetTextAt extracts text from a screen region starting at (x, y) with given width
func (ta *TestApp) GetTextAt(x, y, width int) string {
	contents, screenWidth, _ := ta.Screen.GetContents()
	var result strings.Builder

	for i := 0; i < width; i++ {
		cellIdx := y*screenWidth + (x + i)
		if cellIdx >= len(contents) {
			break
		}
		cell := contents[cellIdx]
		if len(cell.Runes) > 0 {
			result.WriteRune(cell.Runes[0])
		} else {
			result.WriteRune(' ')
		}
	}

	return strings.TrimSpace(result.String())
}

// FindText searches for a text string anywhere on the screen.
// Returns (found, x, y) where x, y are the coordinates of the first match.
func (ta *TestApp) FindText(needle string) (bool, int, int) {
	_, width, height := ta.Screen.GetContents()

	for y := 0; y < height; y++ {
		rowText := ta.GetTextAt(0, y, width)
		if strings.Contains(rowText, needle) {
			return true, strings.Index(rowText, needle), y
		}
	}
	return false, 0, 0
}

// DumpScreen prints the current screen content for debugging
func (ta *TestApp) DumpScreen() {
	_, width, height := ta.Screen.GetContents()
	ta.t.Logf("Screen size: %dx%d", width, height)
	for y := 0; y < height; y++ {
		if line := ta.GetTextAt(0, y, width); line != "" {
			ta.t.Logf("Row %2d: %s", y, line)
		}
	}
}

// Cleanup tears down the test app and releases resources
func (ta *TestApp) Cleanup() {
	ta.View.Close()
	ta.Screen.Fini()
}
