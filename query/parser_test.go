package query

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func operand(v string) *OperandExpr {
	return &OperandExpr{Value: v}
}

func and(left, right Expr) *BooleanExpr {
	return &BooleanExpr{Operator: tok(AndOperator, "AND"), Left: left, Right: right}
}

func or(left, right Expr) *BooleanExpr {
	return &BooleanExpr{Operator: tok(OrOperator, "OR"), Left: left, Right: right}
}

func program(e Expr) *Program {
	return &Program{Body: ExprStatement{Expression: e}}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *Program
	}{
		{
			name:  "single operand has no boolean wrapper",
			input: "hello",
			want:  program(operand("hello")),
		},
		{
			name:  "AND",
			input: "hello AND world",
			want:  program(and(operand("hello"), operand("world"))),
		},
		{
			name:  "OR",
			input: "hello OR world",
			want:  program(or(operand("hello"), operand("world"))),
		},
		{
			name:  "AND chain folds left",
			input: "a AND b AND c",
			want:  program(and(and(operand("a"), operand("b")), operand("c"))),
		},
		{
			name:  "OR chain folds left",
			input: "a OR b OR c",
			want:  program(or(or(operand("a"), operand("b")), operand("c"))),
		},
		{
			name:  "parens group left",
			input: "(a OR b) AND c",
			want:  program(and(or(operand("a"), operand("b")), operand("c"))),
		},
		{
			name:  "parens group right",
			input: "a AND (b OR c)",
			want:  program(and(operand("a"), or(operand("b"), operand("c")))),
		},
		{
			name:  "redundant parens unwrap",
			input: "((a))",
			want:  program(operand("a")),
		},
		{
			name:  "operand with spaces",
			input: "new york OR london",
			want:  program(or(operand("new york"), operand("london"))),
		},
		{
			name:  "deep nesting",
			input: "a OR (b AND (c OR d))",
			want:  program(or(operand("a"), and(operand("b"), or(operand("c"), operand("d"))))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q)\n got: %s\nwant: %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseKeepsOperatorToken(t *testing.T) {
	got, err := Parse("a and b")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	b, ok := got.Body.Expression.(*BooleanExpr)
	if !ok {
		t.Fatalf("expression is %T, want *BooleanExpr", got.Body.Expression)
	}
	if b.Operator != tok(AndOperator, "and") {
		t.Errorf("Operator = %v, want AndOperator \"and\"", b.Operator)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{name: "empty input", input: "", wantMsg: "unexpected end of input"},
		{name: "whitespace only", input: "   ", wantMsg: "unexpected end of input"},
		{name: "leading operator", input: "AND hello", wantMsg: `unexpected token "AND"`},
		{name: "trailing operator", input: "hello OR", wantMsg: "unexpected end of input"},
		{name: "double operator", input: "a AND OR b", wantMsg: `unexpected token "OR"`},
		{name: "unclosed paren", input: "(hello", wantMsg: "expected CloseParen"},
		{name: "unopened paren", input: "hello)", wantMsg: `unexpected token ")" after end of expression`},
		{name: "empty parens", input: "()", wantMsg: `unexpected token ")"`},
		{name: "adjacent groups", input: "(a) (b)", wantMsg: `unexpected token "("`},
		{name: "operand after group", input: "(a) b", wantMsg: `unexpected token "b"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) = %s, want error", tt.input, got)
			}
			if got != nil {
				t.Errorf("Parse(%q) returned partial AST %s", tt.input, got)
			}
			var synErr *SyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("Parse(%q) error %T (%v), want *SyntaxError", tt.input, err, err)
			}
			if !errors.Is(err, ErrSyntax) {
				t.Error("errors.Is(err, ErrSyntax) = false")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Parse(%q) error = %q, want it to contain %q", tt.input, err, tt.wantMsg)
			}
		})
	}
}

func TestParseErrorOffset(t *testing.T) {
	tests := []struct {
		input  string
		offset int
	}{
		{input: "", offset: 0},
		{input: "(hello", offset: 6},
		{input: "AND hello", offset: 0},
		{input: "a AND OR b", offset: 6},
	}
	for _, tt := range tests {
		_, err := Parse(tt.input)
		var synErr *SyntaxError
		if !errors.As(err, &synErr) {
			t.Fatalf("Parse(%q) error = %v, want *SyntaxError", tt.input, err)
		}
		if synErr.Offset != tt.offset {
			t.Errorf("Parse(%q) offset = %d, want %d", tt.input, synErr.Offset, tt.offset)
		}
	}
}

func TestParsePropagatesLexError(t *testing.T) {
	_, err := Parse("a AND b\nc")
	if !errors.Is(err, ErrLex) {
		t.Fatalf("Parse error = %v, want a LexError", err)
	}
	if errors.Is(err, ErrSyntax) {
		t.Error("lex error was reported as a syntax error")
	}
}

func TestParseMaxDepth(t *testing.T) {
	nested := func(depth int) string {
		return strings.Repeat("(", depth) + "x" + strings.Repeat(")", depth)
	}

	if _, err := Parse(nested(DefaultMaxDepth)); err != nil {
		t.Errorf("Parse at DefaultMaxDepth failed: %v", err)
	}

	_, err := Parse(nested(DefaultMaxDepth + 1))
	if !errors.Is(err, ErrSyntax) {
		t.Errorf("Parse beyond DefaultMaxDepth error = %v, want SyntaxError", err)
	}

	if _, err := ParseWithOptions(nested(3), WithMaxDepth(2)); !errors.Is(err, ErrSyntax) {
		t.Errorf("ParseWithOptions(depth 3, max 2) error = %v, want SyntaxError", err)
	}
	if _, err := ParseWithOptions(nested(2), WithMaxDepth(2)); err != nil {
		t.Errorf("ParseWithOptions(depth 2, max 2) failed: %v", err)
	}

	// sequential groups do not accumulate depth
	seq := strings.TrimSuffix(strings.Repeat("(a) OR ", DefaultMaxDepth+5), " OR ")
	if _, err := Parse(seq); err != nil {
		t.Errorf("Parse of sequential groups failed: %v", err)
	}
}

func TestProgramJSON(t *testing.T) {
	p, err := Parse("a AND b")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	want := `{"type":"Program","body":{"type":"ExprStatement","expression":{"type":"BooleanExpr",` +
		`"operator":{"kind":"AndOperator","text":"AND"},` +
		`"left":{"type":"Operand","value":"a"},"right":{"type":"Operand","value":"b"}}}}`
	if string(data) != want {
		t.Errorf("json.Marshal\n got: %s\nwant: %s", data, want)
	}
}

func TestProgramString(t *testing.T) {
	p, err := Parse("a AND b OR c")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := `OR(AND("a", "b"), "c")`
	if got := p.String(); got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}
