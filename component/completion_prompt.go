package component

import (
	"strings"
	"unicode"

	"github.com/boolean-maybe/boolq/config"
	"github.com/boolean-maybe/boolq/query"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// DefaultKeywords are the operator keywords the query prompt completes
var DefaultKeywords = []string{"AND", "OR"}

// CompletionPrompt is a query input field with keyword completion hints.
// When the word under the cursor is a prefix of exactly one keyword and an
// operator may follow the text before it, the rest of the keyword is drawn
// as a greyed hint that Tab accepts.
type CompletionPrompt struct {
	*tview.InputField
	words       []string
	currentHint string
	onSubmit    func(text string)
	hintColor   tcell.Color
}

// NewCompletionPrompt creates a new completion prompt with the given keywords.
func NewCompletionPrompt(words []string) *CompletionPrompt {
	inputField := tview.NewInputField()

	inputField.SetFieldBackgroundColor(config.GetContentBackgroundColor())
	inputField.SetFieldTextColor(config.GetContentTextColor())

	colors := config.GetColors()
	inputField.SetLabelColor(colors.QueryLabelColor)

	return &CompletionPrompt{
		InputField: inputField,
		words:      words,
		hintColor:  colors.CompletionHintColor,
	}
}

// SetSubmitHandler sets the callback for when Enter is pressed.
// Only the user-typed text is passed to the callback (hint is ignored).
func (cp *CompletionPrompt) SetSubmitHandler(handler func(text string)) *CompletionPrompt {
	cp.onSubmit = handler
	return cp
}

// SetLabel sets the label displayed before the input field.
func (cp *CompletionPrompt) SetLabel(label string) *CompletionPrompt {
	cp.InputField.SetLabel(label)
	return cp
}

// SetHintColor sets the color for the completion hint text.
func (cp *CompletionPrompt) SetHintColor(color tcell.Color) *CompletionPrompt {
	cp.hintColor = color
	return cp
}

// Hint returns the completion currently offered, "" if none.
func (cp *CompletionPrompt) Hint() string {
	return cp.currentHint
}

// SetQuery replaces the input text and recomputes the hint.
func (cp *CompletionPrompt) SetQuery(text string) *CompletionPrompt {
	cp.SetText(text)
	cp.updateHint()
	return cp
}

// Clear clears the input text and hint.
func (cp *CompletionPrompt) Clear() *CompletionPrompt {
	cp.SetText("")
	cp.currentHint = ""
	return cp
}

// updateHint recalculates the completion hint for the last word of the input
func (cp *CompletionPrompt) updateHint() {
	cp.currentHint = completionHint(cp.GetText(), cp.words)
}

// completionHint returns the remainder of the single keyword the last word of
// text is a prefix of. The hint follows the case of the typed word: "an"
// completes to "and", "AN" and "An" to "AND".
func completionHint(text string, words []string) string {
	if text == "" || strings.HasSuffix(text, " ") || strings.HasSuffix(text, "(") || strings.HasSuffix(text, ")") {
		return ""
	}

	start := strings.LastIndexFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == '(' || r == ')'
	}) + 1
	last := text[start:]
	if !operatorAllowedAfter(text[:start]) {
		return ""
	}

	lastUpper := strings.ToUpper(last)
	var match string
	for _, word := range words {
		upper := strings.ToUpper(word)
		if !strings.HasPrefix(upper, lastUpper) {
			continue
		}
		if match != "" {
			return ""
		}
		match = word
	}
	if match == "" || len(match) == len(last) {
		return ""
	}

	hint := match[len(last):]
	if last == strings.ToLower(last) {
		return strings.ToLower(hint)
	}
	return strings.ToUpper(hint)
}

// operatorAllowedAfter reports whether the grammar accepts an operator after
// prefix: it must end in an operand or a closing parenthesis.
func operatorAllowedAfter(prefix string) bool {
	if strings.TrimSpace(prefix) == "" {
		return false
	}
	tokens, err := query.Tokenize(prefix)
	if err != nil || len(tokens) == 0 {
		return false
	}
	switch tokens[len(tokens)-1].Kind {
	case query.Operand, query.CloseParen:
		return true
	default:
		return false
	}
}

// Draw renders the input field and the completion hint.
func (cp *CompletionPrompt) Draw(screen tcell.Screen) {
	cp.InputField.Draw(screen)

	if cp.currentHint == "" {
		return
	}
	x, y, width, height := cp.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	// hint starts after the label and the typed text
	hintX := x + tview.TaggedStringWidth(cp.GetLabel()) + tview.TaggedStringWidth(cp.GetText())

	style := tcell.StyleDefault.Foreground(cp.hintColor).Background(config.GetContentBackgroundColor())
	for i, ch := range cp.currentHint {
		if hintX+i >= x+width {
			break
		}
		screen.SetContent(hintX+i, y, ch, nil, style)
	}
}

// InputHandler handles keyboard input for the completion prompt.
// Tab accepts a pending hint; without one it falls through to the input
// field, which reports it to the done func.
func (cp *CompletionPrompt) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return cp.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyTab:
			if cp.currentHint != "" {
				hint := cp.currentHint
				cp.currentHint = ""
				cp.SetText(cp.GetText() + hint + " ")
				return
			}

		case tcell.KeyEnter:
			if cp.onSubmit != nil {
				cp.onSubmit(cp.GetText())
			}
			return
		}

		if handler := cp.InputField.InputHandler(); handler != nil {
			handler(event, setFocus)
		}
		cp.updateHint()
	})
}
