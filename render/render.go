// Package render formats query results for non-interactive output.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/boolean-maybe/boolq/query"
	"github.com/boolean-maybe/boolq/record"
)

// ErrUnknownFormat is returned for an output format Write does not support
var ErrUnknownFormat = errors.New("unknown output format")

// Report is everything a one-shot query produced
type Report struct {
	Query   string          `json:"query" yaml:"query"`
	Tokens  []query.Token   `json:"tokens" yaml:"tokens"`
	AST     *query.Program  `json:"ast" yaml:"ast"`
	Fields  []string        `json:"-" yaml:"-"` // table columns
	Results []record.Record `json:"results" yaml:"results"`
}

// Options tunes rendering
type Options struct {
	Explain bool   // include tokens and syntax tree in text and markdown output
	Theme   string // glamour style for markdown: "dark", "light" or "notty"
	Width   int    // markdown word wrap, 0 = 80
}

// Write renders report to w in format ("text", "json", "yaml" or "markdown").
func Write(w io.Writer, format string, report *Report, opts Options) error {
	var out string
	var err error

	switch format {
	case "text", "":
		out = Text(report, opts.Explain)
	case "json":
		out, err = JSON(report)
	case "yaml":
		out, err = YAML(report)
	case "markdown":
		out, err = Glamour(Markdown(report, opts.Explain), opts.Theme, opts.Width)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, out)
	return err
}

// TokenLines numbers tokens the way the token pane shows them: "1. Operand: hello"
func TokenLines(tokens []query.Token) []string {
	lines := make([]string, 0, len(tokens))
	for i, t := range tokens {
		lines = append(lines, fmt.Sprintf("%d. %s: %s", i+1, t.Kind, t.Text))
	}
	return lines
}

// SyntaxTree returns the AST as indented JSON, or "" for a nil program.
func SyntaxTree(program *query.Program) (string, error) {
	if program == nil {
		return "", nil
	}
	data, err := json.MarshalIndent(program, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal syntax tree: %w", err)
	}
	return string(data), nil
}

// Rows returns the stringified cells of records, one column per field.
// Missing and nil values render empty.
func Rows(records []record.Record, fields []string) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := make([]string, len(fields))
		for i, f := range fields {
			row[i], _ = r.Get(f)
		}
		rows = append(rows, row)
	}
	return rows
}

// columns picks the table columns: the report's fields or every field present
func columns(report *Report) []string {
	if len(report.Fields) > 0 {
		return report.Fields
	}
	return record.Fields(report.Results)
}

// Text renders a bordered results table, preceded by tokens and syntax tree
// when explain is set.
func Text(report *Report, explain bool) string {
	var sb strings.Builder

	if explain && report.AST != nil {
		sb.WriteString("Tokens\n")
		for _, line := range TokenLines(report.Tokens) {
			sb.WriteString("  " + line + "\n")
		}
		sb.WriteString("\nSyntax Tree\n")
		tree, _ := SyntaxTree(report.AST)
		sb.WriteString(tree + "\n\n")
	}

	cols := columns(report)
	if len(cols) == 0 {
		sb.WriteString("no records\n")
		return sb.String()
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(cols...).
		Rows(Rows(report.Results, cols)...)
	sb.WriteString(t.String())
	fmt.Fprintf(&sb, "\n%d records matched\n", len(report.Results))
	return sb.String()
}

// JSON renders the report as indented JSON
func JSON(report *Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return string(data) + "\n", nil
}

// YAML renders the report as YAML
func YAML(report *Report) (string, error) {
	data, err := yaml.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return string(data), nil
}

// Markdown renders the report as a markdown document
func Markdown(report *Report, explain bool) string {
	var sb strings.Builder

	if report.Query != "" {
		fmt.Fprintf(&sb, "# `%s`\n\n", escapeCode(report.Query))
	} else {
		sb.WriteString("# All records\n\n")
	}

	if explain && report.AST != nil {
		sb.WriteString("## Tokens\n\n")
		for _, line := range TokenLines(report.Tokens) {
			sb.WriteString(escapeMarkdown(line) + "\n")
		}
		tree, _ := SyntaxTree(report.AST)
		sb.WriteString("\n## Syntax Tree\n\n```json\n" + tree + "\n```\n\n")
	}

	fmt.Fprintf(&sb, "## Results (%d)\n\n", len(report.Results))
	cols := columns(report)
	if len(cols) == 0 {
		sb.WriteString("_no records_\n")
		return sb.String()
	}

	sb.WriteString("| " + strings.Join(escapeAll(cols), " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat(" --- |", len(cols)) + "\n")
	for _, row := range Rows(report.Results, cols) {
		sb.WriteString("| " + strings.Join(escapeAll(row), " | ") + " |\n")
	}
	return sb.String()
}

// Glamour renders markdown for the terminal
func Glamour(markdown, theme string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	switch theme {
	case "dark", "light", "notty":
	default:
		theme = "notty"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

var markdownEscaper = strings.NewReplacer(`|`, `\|`, `*`, `\*`, `_`, `\_`, "`", "\\`")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func escapeAll(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = escapeMarkdown(c)
	}
	return out
}

func escapeCode(s string) string {
	return strings.ReplaceAll(s, "`", "'")
}
