package query

import (
	"encoding/json"
	"fmt"
)

// Node is any AST node. The marker method closes the set of implementations
// to this package.
type Node interface {
	node()
	String() string
}

// Expr is the expression subset of Node: *BooleanExpr or *OperandExpr.
type Expr interface {
	Node
	expr()
}

// Program is the AST root.
type Program struct {
	Body ExprStatement
}

// ExprStatement wraps the top-level expression.
type ExprStatement struct {
	Expression Expr
}

// BooleanExpr is a binary AND/OR node. Operator keeps the source token.
type BooleanExpr struct {
	Operator Token
	Left     Expr
	Right    Expr
}

// OperandExpr is a leaf search term.
type OperandExpr struct {
	Value string
}

func (*Program) node()       {}
func (*ExprStatement) node() {}
func (*BooleanExpr) node()   {}
func (*OperandExpr) node()   {}

func (*BooleanExpr) expr() {}
func (*OperandExpr) expr() {}

func (p *Program) String() string {
	return p.Body.String()
}

func (s *ExprStatement) String() string {
	if s.Expression == nil {
		return "<nil>"
	}
	return s.Expression.String()
}

func (b *BooleanExpr) String() string {
	return fmt.Sprintf("%s(%s, %s)", b.Operator.Text, b.Left, b.Right)
}

func (o *OperandExpr) String() string {
	return fmt.Sprintf("%q", o.Value)
}

// MarshalJSON renders the node with its variant tag.
func (p *Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string         `json:"type"`
		Body *ExprStatement `json:"body"`
	}{"Program", &p.Body})
}

// MarshalJSON renders the node with its variant tag.
func (s *ExprStatement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       string `json:"type"`
		Expression Expr   `json:"expression"`
	}{"ExprStatement", s.Expression})
}

// MarshalJSON renders the node with its variant tag.
func (b *BooleanExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string `json:"type"`
		Operator Token  `json:"operator"`
		Left     Expr   `json:"left"`
		Right    Expr   `json:"right"`
	}{"BooleanExpr", b.Operator, b.Left, b.Right})
}

// MarshalJSON renders the node with its variant tag.
func (o *OperandExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{"Operand", o.Value})
}

// MarshalYAML renders the node with its variant tag.
func (p *Program) MarshalYAML() (interface{}, error) {
	return struct {
		Type string         `yaml:"type"`
		Body *ExprStatement `yaml:"body"`
	}{"Program", &p.Body}, nil
}

// MarshalYAML renders the node with its variant tag.
func (s *ExprStatement) MarshalYAML() (interface{}, error) {
	return struct {
		Type       string `yaml:"type"`
		Expression Expr   `yaml:"expression"`
	}{"ExprStatement", s.Expression}, nil
}

// MarshalYAML renders the node with its variant tag.
func (b *BooleanExpr) MarshalYAML() (interface{}, error) {
	return struct {
		Type     string `yaml:"type"`
		Operator Token  `yaml:"operator"`
		Left     Expr   `yaml:"left"`
		Right    Expr   `yaml:"right"`
	}{"BooleanExpr", b.Operator, b.Left, b.Right}, nil
}

// MarshalYAML renders the node with its variant tag.
func (o *OperandExpr) MarshalYAML() (interface{}, error) {
	return struct {
		Type  string `yaml:"type"`
		Value string `yaml:"value"`
	}{"Operand", o.Value}, nil
}
