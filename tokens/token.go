// Package tokens keeps design tokens produced by theme algorithms and
// renders them as CSS custom properties and JSON.
package tokens

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Kind of token value.
type Kind int

const (
	KindComplex Kind = iota // objects, arrays, null - never published
	KindNumber
	KindString
	KindBool
)

// Value is a token value. Text keeps numbers exactly as they were written by
// token computation, strings unquoted and booleans as "true"/"false".
type Value struct {
	Kind Kind
	Text string
}

// Number makes numeric value out of v.
func Number(v float64) Value {
	return Value{Kind: KindNumber, Text: strconv.FormatFloat(v, 'f', -1, 64)}
}

// String makes string value out of s.
func String(s string) Value {
	return Value{Kind: KindString, Text: s}
}

// Token is a named design value.
type Token struct {
	Name  string
	Value Value
}

// Public reports whether token is part of the themeable surface: internal
// names starting with "_" and complex values are implementation details.
func (t Token) Public() bool {
	return t.Value.Kind != KindComplex && !strings.HasPrefix(t.Name, "_")
}

// Set is a collection of uniquely named tokens which remembers insertion
// order.
type Set struct {
	tokens []Token
	index  map[string]int
}

// NewSet creates empty token set.
func NewSet() *Set {
	return &Set{index: make(map[string]int)}
}

// Add puts token into the set. Adding a name which is already present
// replaces value in place, so names stay unique and order is stable.
func (s *Set) Add(name string, v Value) {
	if i, ok := s.index[name]; ok {
		s.tokens[i].Value = v
		return
	}
	s.index[name] = len(s.tokens)
	s.tokens = append(s.tokens, Token{Name: name, Value: v})
}

// Get returns value of the named token.
func (s *Set) Get(name string) (Value, bool) {
	if s == nil {
		return Value{}, false
	}
	if i, ok := s.index[name]; ok {
		return s.tokens[i].Value, true
	}
	return Value{}, false
}

// Len returns number of tokens in the set, including non public ones.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.tokens)
}

// All returns tokens in insertion order.
func (s *Set) All() []Token {
	if s == nil {
		return nil
	}
	return s.tokens
}

// Public returns public tokens in insertion order.
func (s *Set) Public() []Token {
	if s == nil {
		return nil
	}
	out := make([]Token, 0, len(s.tokens))
	for _, t := range s.tokens {
		if t.Public() {
			out = append(out, t)
		}
	}
	return out
}

// Decode reads single JSON object of tokens from r keeping key order.
func Decode(r io.Reader) (*Set, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("unable to read tokens: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("tokens must be a JSON object")
	}

	set := NewSet()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("unable to read token name: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token name %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("unable to read value of token %q: %w", name, err)
		}
		v, err := valueOf(raw)
		if err != nil {
			return nil, fmt.Errorf("unable to decode value of token %q: %w", name, err)
		}
		set.Add(name, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("unable to read tokens: %w", err)
	}
	return set, nil
}

func valueOf(raw json.RawMessage) (Value, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Value{}, errors.New("empty value")
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Value{}, err
		}
		return String(s), nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return Value{}, err
		}
		return Value{Kind: KindBool, Text: strconv.FormatBool(b)}, nil
	case '{', '[', 'n':
		return Value{Kind: KindComplex, Text: string(raw)}, nil
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return Value{}, err
		}
		return Value{Kind: KindNumber, Text: n.String()}, nil
	}
}
