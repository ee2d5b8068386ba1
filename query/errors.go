package query

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks against the typed errors below.
var (
	ErrLex      = errors.New("lex error")
	ErrSyntax   = errors.New("syntax error")
	ErrInternal = errors.New("internal error")
)

// LexError is returned when no tokenizer rule matches the remaining input.
type LexError struct {
	Input  string // unconsumed suffix
	Offset int    // byte offset of the suffix in the original input
}

func (e *LexError) Error() string {
	return fmt.Sprintf("unexpected input at offset %d: %q", e.Offset, e.Input)
}

// Is reports whether target is ErrLex.
func (e *LexError) Is(target error) bool {
	return target == ErrLex
}

// SyntaxError is returned when the token stream violates the grammar.
type SyntaxError struct {
	Msg    string
	Offset int // byte offset of the offending token, len(input) at end of input
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Msg)
}

// Is reports whether target is ErrSyntax.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// InternalError signals an AST shape a well-formed parse cannot produce.
// It indicates a bug upstream, never bad user input.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Msg
}

// Is reports whether target is ErrInternal.
func (e *InternalError) Is(target error) bool {
	return target == ErrInternal
}
