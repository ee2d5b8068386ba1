// Package query compiles boolean search queries such as
// "(alice OR bob) AND example.com" into record predicates.
//
// The pipeline has three stages: Tokenize splits the query into tokens, Parse
// builds an AST with a recursive-descent parser, and Compile folds the AST into
// a Predicate. Each call keeps its own state, so queries may be compiled and
// predicates applied from many goroutines.
package query

import (
	"fmt"
	"strings"

	"github.com/boolean-maybe/boolq/record"
)

// Predicate reports whether a record satisfies a compiled query.
type Predicate func(record.Record) bool

// Compile parses query and compiles it into a predicate.
//
// With no allowedFields an operand matches when any field value contains it,
// case-sensitively. With allowedFields only those fields are checked, and the
// comparison ignores case.
func Compile(query string, allowedFields ...string) (Predicate, error) {
	program, err := Parse(query)
	if err != nil {
		return nil, err
	}
	return CompileAST(program, allowedFields...)
}

// CompileAST compiles an already parsed program.
func CompileAST(program *Program, allowedFields ...string) (Predicate, error) {
	if program == nil {
		return nil, &InternalError{Msg: "nil program"}
	}
	c := &compiler{fields: dedupe(allowedFields)}
	return c.compile(program)
}

// compiler carries the matching mode for one compilation.
type compiler struct {
	fields []string // nil means unrestricted
}

func (c *compiler) compile(n Node) (Predicate, error) {
	switch n := n.(type) {
	case *Program:
		if n == nil {
			break
		}
		return c.compile(&n.Body)
	case *ExprStatement:
		if n == nil || n.Expression == nil {
			break
		}
		return c.compile(n.Expression)
	case *BooleanExpr:
		if n == nil {
			break
		}
		return c.booleanExpr(n)
	case *OperandExpr:
		if n == nil {
			break
		}
		return c.operand(n.Value), nil
	}
	return nil, &InternalError{Msg: fmt.Sprintf("unknown node type %T", n)}
}

func (c *compiler) booleanExpr(n *BooleanExpr) (Predicate, error) {
	left, err := c.compile(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := c.compile(n.Right)
	if err != nil {
		return nil, err
	}

	switch strings.ToUpper(n.Operator.Text) {
	case "AND":
		return func(r record.Record) bool { return left(r) && right(r) }, nil
	case "OR":
		return func(r record.Record) bool { return left(r) || right(r) }, nil
	default:
		return nil, &InternalError{Msg: fmt.Sprintf("unknown operator %q", n.Operator.Text)}
	}
}

func (c *compiler) operand(value string) Predicate {
	if c.fields == nil {
		return func(r record.Record) bool {
			for _, v := range r {
				if s, ok := record.Stringify(v); ok && strings.Contains(s, value) {
					return true
				}
			}
			return false
		}
	}

	fields := c.fields
	needle := strings.ToLower(value)
	return func(r record.Record) bool {
		for _, f := range fields {
			if s, ok := r.Get(f); ok && strings.Contains(strings.ToLower(s), needle) {
				return true
			}
		}
		return false
	}
}

// dedupe keeps the first occurrence of each field. It returns nil for an
// empty allowlist.
func dedupe(fields []string) []string {
	if len(fields) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
