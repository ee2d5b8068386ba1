package view

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/boolean-maybe/boolq/config"

	"github.com/rivo/tview"
)

// statEntry represents a single stat in the status bar
type statEntry struct {
	key      string
	value    string
	priority int
}

// StatusBar is a one-line summary below the panes: key/value stats ordered
// by priority, followed by the error of the last rejected query if any.
type StatusBar struct {
	*tview.TextView

	stats    map[string]*statEntry // key -> entry for O(1) lookup
	sorted   []*statEntry          // sorted by priority for rendering
	errText  string
	mu       sync.RWMutex
	maxStats int
}

// NewStatusBar creates a new status bar widget
func NewStatusBar() *StatusBar {
	tv := tview.NewTextView()
	tv.SetDynamicColors(true)
	tv.SetTextAlign(tview.AlignLeft)
	tv.SetWrap(false)

	return &StatusBar{
		TextView: tv,
		stats:    make(map[string]*statEntry),
		sorted:   make([]*statEntry, 0, 6),
		maxStats: 6,
	}
}

// SetStat registers or updates a stat. Lower priority values display first.
// Returns false if the stat limit (6) is reached and key doesn't exist.
func (sb *StatusBar) SetStat(key, value string, priority int) bool {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if entry, exists := sb.stats[key]; exists {
		entry.value = value
		entry.priority = priority
		sb.rebuildSorted()
		sb.update()
		return true
	}

	if len(sb.stats) >= sb.maxStats {
		return false
	}

	sb.stats[key] = &statEntry{key: key, value: value, priority: priority}
	sb.rebuildSorted()
	sb.update()
	return true
}

// RemoveStat removes a stat by key. Returns true if stat existed.
func (sb *StatusBar) RemoveStat(key string) bool {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if _, exists := sb.stats[key]; !exists {
		return false
	}
	delete(sb.stats, key)
	sb.rebuildSorted()
	sb.update()
	return true
}

// SetError shows msg after the stats; an empty msg hides it
func (sb *StatusBar) SetError(msg string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.errText = msg
	sb.update()
}

// Line returns the status text without color tags
func (sb *StatusBar) Line() string {
	return strings.TrimSpace(sb.GetText(true))
}

// rebuildSorted rebuilds the sorted slice from the map (must be called with lock held)
func (sb *StatusBar) rebuildSorted() {
	sb.sorted = sb.sorted[:0]
	for _, entry := range sb.stats {
		sb.sorted = append(sb.sorted, entry)
	}
	sort.Slice(sb.sorted, func(i, j int) bool {
		if sb.sorted[i].priority != sb.sorted[j].priority {
			return sb.sorted[i].priority < sb.sorted[j].priority
		}
		return sb.sorted[i].key < sb.sorted[j].key
	})
}

// update refreshes the text (must be called with lock held)
func (sb *StatusBar) update() {
	colors := config.GetColors()

	parts := make([]string, 0, len(sb.sorted)+1)
	for _, entry := range sb.sorted {
		parts = append(parts, fmt.Sprintf("%s%s: %s", colors.StatusTextColor, entry.key, tview.Escape(entry.value)))
	}
	if sb.errText != "" {
		parts = append(parts, colors.StatusErrorColor+tview.Escape(sb.errText))
	}

	sb.SetText(" " + strings.Join(parts, "  "))
}
