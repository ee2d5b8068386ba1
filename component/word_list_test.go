package component

import (
	"reflect"
	"testing"

	"github.com/boolean-maybe/boolq/config"
	"github.com/gdamore/tcell/v2"
)

func TestNewWordList(t *testing.T) {
	words := []string{"name", "email"}
	wl := NewWordList("Fields: ", words)

	if wl == nil {
		t.Fatal("NewWordList returned nil")
	}
	if !reflect.DeepEqual(wl.GetWords(), words) {
		t.Errorf("Expected words %v, got %v", words, wl.GetWords())
	}

	// colors should come from config
	colors := config.GetColors()
	if wl.fgColor != colors.FieldChipForeground {
		t.Errorf("Expected fg color from config, got %v", wl.fgColor)
	}
	if wl.bgColor != colors.FieldChipBackground {
		t.Errorf("Expected bg color from config, got %v", wl.bgColor)
	}
}

func TestWordListSetters(t *testing.T) {
	wl := NewWordList("", []string{"initial"})

	if wl.SetWords([]string{"updated"}) != wl {
		t.Error("SetWords should return self for chaining")
	}
	if wl.SetColors(tcell.ColorRed, tcell.ColorGreen) != wl {
		t.Error("SetColors should return self for chaining")
	}
	if wl.SetPlaceholder("none") != wl {
		t.Error("SetPlaceholder should return self for chaining")
	}

	if !reflect.DeepEqual(wl.GetWords(), []string{"updated"}) {
		t.Errorf("Expected [updated], got %v", wl.GetWords())
	}
	if wl.fgColor != tcell.ColorRed || wl.bgColor != tcell.ColorGreen {
		t.Errorf("Expected red on green, got %v on %v", wl.fgColor, wl.bgColor)
	}
}

func TestWrapWords(t *testing.T) {
	tests := []struct {
		name        string
		label       string
		placeholder string
		words       []string
		width       int
		expected    []string
	}{
		{name: "zero width", words: []string{"a"}, width: 0, expected: []string{}},
		{name: "empty list", words: nil, width: 80, expected: nil},
		{name: "placeholder", label: "Fields: ", placeholder: "any", width: 80, expected: []string{"Fields: any"}},
		{name: "single chip", words: []string{"name"}, width: 80, expected: []string{" name"}},
		{name: "label and chips", label: "F:", words: []string{"name", "age"}, width: 80, expected: []string{"F: name   age"}},
		{
			name:     "wraps at chip boundary",
			words:    []string{"name", "email", "age"},
			width:    14,
			expected: []string{" name   email", " age"},
		},
		{
			name:     "chip wider than line",
			words:    []string{"superlongfield", "x"},
			width:    6,
			expected: []string{" superlongfield", " x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wl := NewWordList(tt.label, tt.words).SetPlaceholder(tt.placeholder)
			got := wl.WrapWords(tt.width)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("WrapWords(%d) = %q, want %q", tt.width, got, tt.expected)
			}
		})
	}
}

func TestWordListDraw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("failed to init simulation screen: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(30, 2)

	wl := NewWordList("F: ", []string{"name"})
	wl.SetRect(0, 0, 30, 2)
	wl.Draw(screen)
	screen.Show()

	var got []rune
	for x := 0; x < 9; x++ {
		r, _, _, _ := screen.GetContent(x, 0)
		got = append(got, r)
	}
	if string(got) != "F:  name " {
		t.Errorf("first row = %q, want %q", string(got), "F:  name ")
	}

	_, _, style, _ := screen.GetContent(4, 0)
	fg, bg, _ := style.Decompose()
	colors := config.GetColors()
	if fg != colors.FieldChipForeground || bg != colors.FieldChipBackground {
		t.Errorf("chip cell colors = %v on %v, want chip colors", fg, bg)
	}
}
