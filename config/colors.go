package config

// Color and style definitions for the UI: tcell colors and tview color tags.

import (
	"github.com/gdamore/tcell/v2"
)

// ColorConfig holds all color and style definitions of the search UI
type ColorConfig struct {
	// Pane frames
	PaneBorder        tcell.Color
	PaneFocusedBorder tcell.Color
	PaneTitle         tcell.Color

	// Query prompt
	QueryLabelColor      tcell.Color
	QueryBackgroundColor tcell.Color
	QueryTextColor       tcell.Color
	CompletionHintColor  tcell.Color

	// Search field chips
	FieldChipForeground tcell.Color
	FieldChipBackground tcell.Color

	// Token list, tview color strings keyed by token kind
	TokenIndexColor    string
	TokenParenColor    string
	TokenOperatorColor string
	TokenOperandColor  string

	// Syntax tree pane
	SyntaxTreeTextColor tcell.Color

	// Results table
	TableHeaderColor        tcell.Color
	TableCellColor          tcell.Color
	TableSelectedText       tcell.Color
	TableSelectedBackground tcell.Color

	// Status line
	StatusTextColor  string // tview color string like "[#808080]"
	StatusErrorColor string // tview color string like "[red]"
}

// DefaultColors returns the default color configuration
func DefaultColors() *ColorConfig {
	return &ColorConfig{
		PaneBorder:        tcell.ColorGray,
		PaneFocusedBorder: tcell.ColorYellow,
		PaneTitle:         tcell.PaletteColor(153), // Sky Blue (ANSI 153)

		QueryLabelColor:      tcell.ColorWhite,
		QueryBackgroundColor: tcell.ColorDefault, // Transparent
		QueryTextColor:       tcell.ColorWhite,
		CompletionHintColor:  tcell.NewRGBColor(128, 128, 128),

		FieldChipForeground: tcell.NewRGBColor(180, 200, 220),
		FieldChipBackground: tcell.NewRGBColor(30, 50, 80),

		TokenIndexColor:    "[#767676]",
		TokenParenColor:    "[#b8b8b8]",
		TokenOperatorColor: "[orange]",
		TokenOperandColor:  "[#5fafff]",

		SyntaxTreeTextColor: tcell.NewRGBColor(200, 200, 200),

		TableHeaderColor:        tcell.ColorYellow,
		TableCellColor:          tcell.NewRGBColor(184, 184, 184),
		TableSelectedText:       tcell.PaletteColor(117), // Light Blue (ANSI 117)
		TableSelectedBackground: tcell.PaletteColor(33),  // Blue (ANSI 33)

		StatusTextColor:  "[#808080]",
		StatusErrorColor: "[red]",
	}
}

// Global color config instance
var globalColors *ColorConfig
var colorsInitialized bool

// GetColors returns the global color configuration with theme-aware overrides
func GetColors() *ColorConfig {
	if !colorsInitialized {
		globalColors = DefaultColors()
		if GetEffectiveTheme() == "light" {
			globalColors.QueryLabelColor = tcell.ColorBlack
			globalColors.QueryTextColor = tcell.ColorBlack
			globalColors.SyntaxTreeTextColor = tcell.ColorBlack
			globalColors.TableCellColor = tcell.ColorBlack
			globalColors.FieldChipForeground = tcell.NewRGBColor(30, 50, 80)
			globalColors.FieldChipBackground = tcell.NewRGBColor(200, 220, 240)
		}
		colorsInitialized = true
	}
	return globalColors
}

// SetColors sets a custom color configuration
func SetColors(colors *ColorConfig) {
	globalColors = colors
	colorsInitialized = colors != nil
}

// GetContentBackgroundColor returns the background color for content areas
// Dark theme uses black background; light theme uses terminal default
func GetContentBackgroundColor() tcell.Color {
	if GetEffectiveTheme() == "dark" {
		return tcell.ColorBlack
	}
	return tcell.ColorDefault
}

// GetContentTextColor returns the appropriate text color for content areas
// Dark theme uses white text; light theme uses black text
func GetContentTextColor() tcell.Color {
	if GetEffectiveTheme() == "dark" {
		return tcell.ColorWhite
	}
	return tcell.ColorBlack
}
