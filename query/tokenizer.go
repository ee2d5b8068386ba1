package query

import (
	"regexp"
	"strings"
	"unicode"
)

// matchFunc inspects the unconsumed suffix of the input. It reports how many
// bytes the rule consumes and the text stored in the token.
type matchFunc func(s string) (consumed int, text string, ok bool)

// rule pairs a matcher with the kind of token it produces. Skip rules consume
// input without emitting a token.
type rule struct {
	match matchFunc
	kind  TokenKind
	skip  bool
}

var (
	// Operators may also open the suffix or close the input, so a query that
	// starts or ends with one fails to parse instead of becoming an operand.
	orPattern        = regexp.MustCompile(`(?i)^\s?OR(?:\s|$)`)
	andPattern       = regexp.MustCompile(`(?i)^\s?AND(?:\s|$)`)
	andThenOrPattern = regexp.MustCompile(`(?i)^(.*?)\sAND\s(.*?)\sOR(?:\s|$)`)
	beforeOrPattern  = regexp.MustCompile(`(?i)^(.*?)\sOR(?:\s|$)`)
	beforeAndPattern = regexp.MustCompile(`(?i)^(.*?)\sAND(?:\s|$)`)
	restPattern      = regexp.MustCompile(`^(.*)`)

	// an operand run never spans an operator
	operatorPattern = regexp.MustCompile(`(?i)\s(?:AND|OR)(?:\s|$)`)
)

// rules is evaluated top to bottom and the first match wins. The operand
// rules overlap on purpose, so the order is part of the grammar.
var rules = []rule{
	{match: parenAdjacentSpace, skip: true},
	{match: literal("("), kind: OpenParen},
	{match: literal(")"), kind: CloseParen},
	{match: whole(orPattern), kind: OrOperator},
	{match: whole(andPattern), kind: AndOperator},
	// "A AND B OR C" must yield "A" before the OR rule can claim "A AND B"
	{match: operandRun(andThenOrPattern), kind: Operand},
	{match: operandRun(beforeOrPattern), kind: Operand},
	{match: operandRun(beforeAndPattern), kind: Operand},
	{match: operandRun(restPattern), kind: Operand},
}

// literal matches an exact prefix.
func literal(lit string) matchFunc {
	return func(s string) (int, string, bool) {
		if !strings.HasPrefix(s, lit) {
			return 0, "", false
		}
		return len(lit), lit, true
	}
}

// whole matches re at the start of s and keeps the trimmed match as text.
func whole(re *regexp.Regexp) matchFunc {
	return func(s string) (int, string, bool) {
		loc := re.FindStringIndex(s)
		if loc == nil || loc[1] == 0 {
			return 0, "", false
		}
		return loc[1], strings.TrimSpace(s[:loc[1]]), true
	}
}

// operandRun matches re and consumes only its first capture group. A run that
// reaches a ')' is cut there so the paren is tokenized on the next step.
func operandRun(re *regexp.Regexp) matchFunc {
	return func(s string) (int, string, bool) {
		m := re.FindStringSubmatchIndex(s)
		if m == nil || m[2] < 0 {
			return 0, "", false
		}
		run := s[m[2]:m[3]]
		if i := strings.IndexByte(run, ')'); i >= 0 {
			run = run[:i]
		}
		if operatorPattern.MatchString(run) {
			return 0, "", false
		}
		text := strings.TrimSpace(run)
		if text == "" {
			return 0, "", false
		}
		return len(run), text, true
	}
}

// parenAdjacentSpace skips a whitespace run that is followed by a paren or by
// the end of input. Whitespace in front of an operator is left for rules 3 and 4.
func parenAdjacentSpace(s string) (int, string, bool) {
	n := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) })
	switch {
	case n == 0:
		return 0, "", false
	case n < 0:
		return len(s), "", true
	case s[n] == '(' || s[n] == ')':
		return n, "", true
	default:
		return 0, "", false
	}
}

// Tokenizer converts a query string into tokens on demand.
// It is not safe for concurrent use; create one per parse.
type Tokenizer struct {
	input  string
	cursor int
	start  int
}

// NewTokenizer returns a tokenizer positioned at the start of input.
func NewTokenizer(input string) *Tokenizer {
	t := &Tokenizer{}
	t.Init(input)
	return t
}

// Init resets the tokenizer to the start of input.
func (t *Tokenizer) Init(input string) {
	t.input = input
	t.cursor = 0
	t.start = 0
}

// HasMoreTokens reports whether unconsumed input remains.
func (t *Tokenizer) HasMoreTokens() bool {
	return t.cursor < len(t.input)
}

// Offset returns the byte offset of the last token returned by NextToken,
// or the input length once the input is exhausted.
func (t *Tokenizer) Offset() int {
	return t.start
}

// NextToken returns the next token. The boolean is false at end of input,
// which is not an error.
func (t *Tokenizer) NextToken() (Token, bool, error) {
next:
	for t.HasMoreTokens() {
		suffix := t.input[t.cursor:]
		for _, r := range rules {
			consumed, text, ok := r.match(suffix)
			if !ok {
				continue
			}
			start := t.cursor
			t.cursor += consumed
			if r.skip {
				continue next
			}
			t.start = start
			return Token{Kind: r.kind, Text: text}, true, nil
		}
		return Token{}, false, &LexError{Input: suffix, Offset: t.cursor}
	}
	t.start = len(t.input)
	return Token{}, false, nil
}

// Tokenize returns every token of input in order.
func Tokenize(input string) ([]Token, error) {
	t := NewTokenizer(input)
	var tokens []Token
	for {
		tok, ok, err := t.NextToken()
		if err != nil {
			return nil, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}
