package component

import (
	"strings"

	"github.com/boolean-maybe/boolq/config"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// WordList displays a label followed by words drawn as colored chips.
// Chips wrap at word boundaries; a placeholder is shown when there are no words.
type WordList struct {
	*tview.Box
	label       string
	placeholder string
	words       []string
	fgColor     tcell.Color
	bgColor     tcell.Color
}

// NewWordList creates a new WordList component.
func NewWordList(label string, words []string) *WordList {
	box := tview.NewBox()
	box.SetBorder(false)
	colors := config.GetColors()
	return &WordList{
		Box:     box,
		label:   label,
		words:   words,
		fgColor: colors.FieldChipForeground,
		bgColor: colors.FieldChipBackground,
	}
}

// SetWords updates the list of words to display.
func (w *WordList) SetWords(words []string) *WordList {
	w.words = words
	return w
}

// GetWords returns the current list of words.
func (w *WordList) GetWords() []string {
	return w.words
}

// SetPlaceholder sets the text drawn when the list is empty.
func (w *WordList) SetPlaceholder(text string) *WordList {
	w.placeholder = text
	return w
}

// SetColors sets the chip foreground and background colors.
func (w *WordList) SetColors(fg, bg tcell.Color) *WordList {
	w.fgColor = fg
	w.bgColor = bg
	return w
}

// chip pads a word with one space on each side
func chip(word string) string {
	return " " + word + " "
}

// Draw renders the WordList component.
func (w *WordList) Draw(screen tcell.Screen) {
	w.DrawForSubclass(screen, w)
	x, y, width, height := w.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	textStyle := tcell.StyleDefault.Foreground(config.GetContentTextColor()).Background(config.GetContentBackgroundColor())
	chipStyle := tcell.StyleDefault.Foreground(w.fgColor).Background(w.bgColor)

	put := func(cx, cy int, s string, style tcell.Style) int {
		for _, ch := range s {
			if cx >= x+width {
				break
			}
			screen.SetContent(cx, cy, ch, nil, style)
			cx++
		}
		return cx
	}

	currentX := put(x, y, w.label, textStyle)
	currentY := y

	if len(w.words) == 0 {
		put(currentX, currentY, w.placeholder, textStyle)
		return
	}

	for _, word := range w.words {
		c := chip(word)
		if currentX > x && currentX+len(c) > x+width {
			currentY++
			currentX = x
			if currentY >= y+height {
				return
			}
		}
		currentX = put(currentX, currentY, c, chipStyle)
		if currentX < x+width {
			currentX = put(currentX, currentY, " ", textStyle)
		}
	}
}

// WrapWords returns the lines Draw produces for width, without colors.
func (w *WordList) WrapWords(width int) []string {
	if width <= 0 {
		return []string{}
	}

	var lines []string
	var line strings.Builder
	line.WriteString(w.label)

	if len(w.words) == 0 {
		line.WriteString(w.placeholder)
	}
	for _, word := range w.words {
		c := chip(word)
		if line.Len() > 0 && line.Len()+len(c) > width {
			lines = append(lines, strings.TrimRight(line.String(), " "))
			line.Reset()
		}
		line.WriteString(c)
		line.WriteByte(' ')
	}

	if s := strings.TrimRight(line.String(), " "); s != "" {
		lines = append(lines, s)
	}
	return lines
}
