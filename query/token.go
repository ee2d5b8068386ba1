package query

import (
	"encoding/json"
	"fmt"
)

// TokenKind classifies a lexical token.
type TokenKind int

const (
	OpenParen TokenKind = iota
	CloseParen
	AndOperator
	OrOperator
	Operand
)

var tokenKindNames = [...]string{
	OpenParen:   "OpenParen",
	CloseParen:  "CloseParen",
	AndOperator: "AndOperator",
	OrOperator:  "OrOperator",
	Operand:     "Operand",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
	return tokenKindNames[k]
}

// MarshalJSON encodes the kind by name.
func (k TokenKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a kind name produced by MarshalJSON.
func (k *TokenKind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range tokenKindNames {
		if n == name {
			*k = TokenKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown token kind %q", name)
}

// MarshalYAML encodes the kind by name.
func (k TokenKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// Token is a classified slice of the query text.
type Token struct {
	Kind TokenKind `json:"kind" yaml:"kind"`
	Text string    `json:"text" yaml:"text"`
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}
