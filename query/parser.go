package query

import "fmt"

// DefaultMaxDepth bounds parenthesis nesting so adversarial input cannot
// exhaust the stack.
const DefaultMaxDepth = 64

// ParseOption configures a parse.
type ParseOption func(*parser)

// WithMaxDepth overrides DefaultMaxDepth. Values below 1 keep the default.
func WithMaxDepth(depth int) ParseOption {
	return func(p *parser) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}

// Parse parses input into an AST.
//
// Grammar:
//
//	Program             := ExpressionStatement
//	ExpressionStatement := Expression
//	Expression          := OrExpression
//	OrExpression        := AndExpression ( OrOperator AndExpression )*
//	AndExpression       := OperandNode ( AndOperator OperandNode )*
//	OperandNode         := Operand | '(' Expression ')'
func Parse(input string) (*Program, error) {
	return ParseWithOptions(input)
}

// ParseWithOptions is Parse with options applied.
func ParseWithOptions(input string, opts ...ParseOption) (*Program, error) {
	p := &parser{
		tokenizer: NewTokenizer(input),
		maxDepth:  DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}

	// prime the lookahead
	if err := p.advance(); err != nil {
		return nil, err
	}

	program, err := p.program()
	if err != nil {
		return nil, err
	}

	if p.hasLookahead {
		return nil, p.errorf("unexpected token %q after end of expression", p.lookahead.Text)
	}
	return program, nil
}

// parser holds the state of a single parse call.
type parser struct {
	tokenizer    *Tokenizer
	lookahead    Token
	hasLookahead bool
	offset       int
	depth        int
	maxDepth     int
}

// advance pulls the next token into the lookahead slot.
func (p *parser) advance() error {
	tok, ok, err := p.tokenizer.NextToken()
	if err != nil {
		return err
	}
	p.lookahead = tok
	p.hasLookahead = ok
	p.offset = p.tokenizer.Offset()
	return nil
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...), Offset: p.offset}
}

// eat consumes the lookahead if it has the expected kind.
func (p *parser) eat(kind TokenKind) (Token, error) {
	if !p.hasLookahead {
		return Token{}, p.errorf("unexpected end of input, expected %s", kind)
	}
	if p.lookahead.Kind != kind {
		return Token{}, p.errorf("unexpected token %q, expected %s", p.lookahead.Text, kind)
	}
	tok := p.lookahead
	if err := p.advance(); err != nil {
		return Token{}, err
	}
	return tok, nil
}

func (p *parser) program() (*Program, error) {
	stmt, err := p.expressionStatement()
	if err != nil {
		return nil, err
	}
	return &Program{Body: stmt}, nil
}

func (p *parser) expressionStatement() (ExprStatement, error) {
	expr, err := p.expression()
	if err != nil {
		return ExprStatement{}, err
	}
	return ExprStatement{Expression: expr}, nil
}

func (p *parser) expression() (Expr, error) {
	return p.orExpression()
}

func (p *parser) orExpression() (Expr, error) {
	return p.booleanExpression(p.andExpression, OrOperator)
}

func (p *parser) andExpression() (Expr, error) {
	return p.booleanExpression(p.operandNode, AndOperator)
}

// booleanExpression folds `operand (op operand)*` to the left.
func (p *parser) booleanExpression(operand func() (Expr, error), op TokenKind) (Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}

	for p.hasLookahead && p.lookahead.Kind == op {
		operator, err := p.eat(op)
		if err != nil {
			return nil, err
		}
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &BooleanExpr{Operator: operator, Left: left, Right: right}
	}

	return left, nil
}

func (p *parser) operandNode() (Expr, error) {
	if !p.hasLookahead {
		return nil, p.errorf("unexpected end of input, expected %s or %s", Operand, OpenParen)
	}
	switch p.lookahead.Kind {
	case Operand:
		return p.operand()
	case OpenParen:
		return p.parenthesizedExpression()
	default:
		return nil, p.errorf("unexpected token %q, expected %s or %s", p.lookahead.Text, Operand, OpenParen)
	}
}

func (p *parser) parenthesizedExpression() (Expr, error) {
	if _, err := p.eat(OpenParen); err != nil {
		return nil, err
	}
	p.depth++
	if p.depth > p.maxDepth {
		return nil, p.errorf("parentheses nested deeper than %d", p.maxDepth)
	}
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(CloseParen); err != nil {
		return nil, err
	}
	p.depth--
	return expr, nil
}

func (p *parser) operand() (Expr, error) {
	tok, err := p.eat(Operand)
	if err != nil {
		return nil, err
	}
	return &OperandExpr{Value: tok.Text}, nil
}
