package query

import (
	"errors"
	"reflect"
	"testing"
)

func tok(kind TokenKind, text string) Token {
	return Token{Kind: kind, Text: text}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "single operand",
			input: "hello",
			want:  []Token{tok(Operand, "hello")},
		},
		{
			name:  "AND expression",
			input: "a AND b",
			want:  []Token{tok(Operand, "a"), tok(AndOperator, "AND"), tok(Operand, "b")},
		},
		{
			name:  "OR expression",
			input: "a OR b",
			want:  []Token{tok(Operand, "a"), tok(OrOperator, "OR"), tok(Operand, "b")},
		},
		{
			name:  "parenthesized AND then OR",
			input: "(a AND b) OR c",
			want: []Token{
				tok(OpenParen, "("), tok(Operand, "a"), tok(AndOperator, "AND"), tok(Operand, "b"),
				tok(CloseParen, ")"), tok(OrOperator, "OR"), tok(Operand, "c"),
			},
		},
		{
			name:  "three terms AND then OR",
			input: "foo AND bar OR baz",
			want: []Token{
				tok(Operand, "foo"), tok(AndOperator, "AND"), tok(Operand, "bar"),
				tok(OrOperator, "OR"), tok(Operand, "baz"),
			},
		},
		{
			name:  "three terms OR then AND",
			input: "foo OR bar AND baz",
			want: []Token{
				tok(Operand, "foo"), tok(OrOperator, "OR"), tok(Operand, "bar"),
				tok(AndOperator, "AND"), tok(Operand, "baz"),
			},
		},
		{
			name:  "four terms OR AND OR",
			input: "a OR b AND c OR d",
			want: []Token{
				tok(Operand, "a"), tok(OrOperator, "OR"), tok(Operand, "b"), tok(AndOperator, "AND"),
				tok(Operand, "c"), tok(OrOperator, "OR"), tok(Operand, "d"),
			},
		},
		{
			name:  "operator case preserved",
			input: "a and b Or c",
			want: []Token{
				tok(Operand, "a"), tok(AndOperator, "and"), tok(Operand, "b"),
				tok(OrOperator, "Or"), tok(Operand, "c"),
			},
		},
		{
			name:  "parenthesized right operand",
			input: "a AND (b OR c)",
			want: []Token{
				tok(Operand, "a"), tok(AndOperator, "AND"), tok(OpenParen, "("), tok(Operand, "b"),
				tok(OrOperator, "OR"), tok(Operand, "c"), tok(CloseParen, ")"),
			},
		},
		{
			name:  "nested parens",
			input: "((a))",
			want: []Token{
				tok(OpenParen, "("), tok(OpenParen, "("), tok(Operand, "a"),
				tok(CloseParen, ")"), tok(CloseParen, ")"),
			},
		},
		{
			name:  "spaces inside parens",
			input: "( a )",
			want:  []Token{tok(OpenParen, "("), tok(Operand, "a"), tok(CloseParen, ")")},
		},
		{
			name:  "trailing spaces after close paren",
			input: "(a)  ",
			want:  []Token{tok(OpenParen, "("), tok(Operand, "a"), tok(CloseParen, ")")},
		},
		{
			name:  "extra space before open paren",
			input: "a AND  (b)",
			want: []Token{
				tok(Operand, "a"), tok(AndOperator, "AND"), tok(OpenParen, "("),
				tok(Operand, "b"), tok(CloseParen, ")"),
			},
		},
		{
			name:  "operand with inner spaces",
			input: "hello world",
			want:  []Token{tok(Operand, "hello world")},
		},
		{
			name:  "keywords inside words stay operands",
			input: "ORANGE OR android",
			want:  []Token{tok(Operand, "ORANGE"), tok(OrOperator, "OR"), tok(Operand, "android")},
		},
		{
			name:  "leading operator",
			input: "AND hello",
			want:  []Token{tok(AndOperator, "AND"), tok(Operand, "hello")},
		},
		{
			name:  "trailing operator",
			input: "hello OR",
			want:  []Token{tok(Operand, "hello"), tok(OrOperator, "OR")},
		},
		{
			name:  "operators spaced with tabs and newlines",
			input: "a\tAND\nb",
			want:  []Token{tok(Operand, "a"), tok(AndOperator, "AND"), tok(Operand, "b")},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize(%q) failed: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q)\n got: %v\nwant: %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenizeWhitespaceInsensitive(t *testing.T) {
	padded, err := Tokenize("   a    AND   b  ")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	plain, err := Tokenize("a AND b")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if !reflect.DeepEqual(padded, plain) {
		t.Errorf("padded tokens %v differ from plain tokens %v", padded, plain)
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	inputs := []string{
		"hello",
		"(a AND b) OR c",
		"   x    or  y  ",
		"a OR (b AND (c OR d))",
		"foo AND bar OR baz",
	}
	for _, input := range inputs {
		first, err1 := Tokenize(input)
		second, err2 := Tokenize(input)
		if (err1 == nil) != (err2 == nil) {
			t.Fatalf("Tokenize(%q) errors differ: %v vs %v", input, err1, err2)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Tokenize(%q) not deterministic: %v vs %v", input, first, second)
		}
	}
}

func TestTokenizerPullAPI(t *testing.T) {
	tz := NewTokenizer("hello AND world")

	want := []Token{tok(Operand, "hello"), tok(AndOperator, "AND"), tok(Operand, "world")}
	for i, w := range want {
		if !tz.HasMoreTokens() {
			t.Fatalf("token %d: HasMoreTokens() = false, want true", i)
		}
		got, ok, err := tz.NextToken()
		if err != nil || !ok {
			t.Fatalf("token %d: NextToken() = %v, %v, %v", i, got, ok, err)
		}
		if got != w {
			t.Errorf("token %d: got %v, want %v", i, got, w)
		}
	}

	if tz.HasMoreTokens() {
		t.Error("HasMoreTokens() = true after last token")
	}

	// past the end is a sentinel, not an error
	for i := 0; i < 2; i++ {
		got, ok, err := tz.NextToken()
		if err != nil || ok {
			t.Errorf("NextToken() past end = %v, %v, %v; want zero, false, nil", got, ok, err)
		}
	}

	tz.Init("(x)")
	got, ok, err := tz.NextToken()
	if err != nil || !ok || got != tok(OpenParen, "(") {
		t.Errorf("after Init, NextToken() = %v, %v, %v", got, ok, err)
	}
}

func TestTokenizerCursorAccounting(t *testing.T) {
	// each token starts where the previous consumed span ended, untrimmed
	tests := []struct {
		input   string
		offsets []int
	}{
		{input: "(a)", offsets: []int{0, 1, 2}},
		{input: "a AND b", offsets: []int{0, 1, 6}},
		{input: "  a  OR b", offsets: []int{0, 4, 8}},
		{input: "(a AND b) OR c", offsets: []int{0, 1, 2, 7, 8, 9, 13}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tz := NewTokenizer(tt.input)
			var offsets []int
			for {
				_, ok, err := tz.NextToken()
				if err != nil {
					t.Fatalf("NextToken failed: %v", err)
				}
				if !ok {
					break
				}
				offsets = append(offsets, tz.Offset())
			}
			if !reflect.DeepEqual(offsets, tt.offsets) {
				t.Errorf("offsets = %v, want %v", offsets, tt.offsets)
			}
			if tz.Offset() != len(tt.input) {
				t.Errorf("Offset() at end = %d, want %d", tz.Offset(), len(tt.input))
			}
		})
	}
}

func TestTokenizeLexError(t *testing.T) {
	_, err := Tokenize("a\nb")
	if err == nil {
		t.Fatal("Tokenize(\"a\\nb\") succeeded, want LexError")
	}

	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("error %T is not *LexError", err)
	}
	if lexErr.Offset != 1 {
		t.Errorf("LexError.Offset = %d, want 1", lexErr.Offset)
	}
	if lexErr.Input != "\nb" {
		t.Errorf("LexError.Input = %q, want %q", lexErr.Input, "\nb")
	}
	if !errors.Is(err, ErrLex) {
		t.Error("errors.Is(err, ErrLex) = false")
	}
	if errors.Is(err, ErrSyntax) {
		t.Error("errors.Is(err, ErrSyntax) = true for a lex error")
	}
}

func TestTokenKindString(t *testing.T) {
	tests := []struct {
		kind TokenKind
		want string
	}{
		{OpenParen, "OpenParen"},
		{CloseParen, "CloseParen"},
		{AndOperator, "AndOperator"},
		{OrOperator, "OrOperator"},
		{Operand, "Operand"},
		{TokenKind(42), "TokenKind(42)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("TokenKind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}
