package css

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Printer re-indents CSS text: one declaration per line, one selector per
// line, nested blocks indented and top-level blocks separated by blank line.
// It relies on tdewolff grammar parser and does not interpret values.
type Printer struct {
	indent string
	log    *zap.Logger
}

// NewPrinter creates printer using indent for every nesting level.
func NewPrinter(indent string, log *zap.Logger) *Printer {
	if log == nil {
		log = zap.NewNop()
	}
	if indent == "" {
		indent = "  "
	}
	return &Printer{indent: indent, log: log.Named("css-printer")}
}

// ErrUnbalanced is returned when printed text does not keep brace structure
// of the input, which means the grammar parser did not understand something.
var ErrUnbalanced = errors.New("printed stylesheet is not balanced")

// Print formats CSS text. The optional source parameter identifies what's
// being printed (for debug logging).
func (p *Printer) Print(src []byte, source ...string) ([]byte, error) {
	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Printing CSS", zap.String("source", source[0]), zap.Int("bytes", len(src)))
	}

	var (
		out   bytes.Buffer
		depth int
		items int             // top-level items written so far
		raw   strings.Builder // body of unknown at-rule
	)

	input := parse.NewInput(bytes.NewReader(src))
	parser := css.NewParser(input, false)

	open := func() {
		if depth == 0 {
			if items > 0 {
				out.WriteByte('\n')
			}
			items++
		}
	}
	line := func(s string) {
		for range depth {
			out.WriteString(p.indent)
		}
		out.WriteString(s)
		out.WriteByte('\n')
	}
	flush := func() {
		if text := strings.TrimSpace(raw.String()); text != "" {
			line(text)
		}
		raw.Reset()
	}

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err != io.EOF {
				return nil, fmt.Errorf("unable to parse stylesheet: %w", err)
			}
			if depth != 0 {
				return nil, fmt.Errorf("unexpected end of stylesheet at depth %d", depth)
			}
			if bytes.Count(out.Bytes(), []byte{'{'}) != bytes.Count(src, []byte{'{'}) ||
				bytes.Count(out.Bytes(), []byte{'}'}) != bytes.Count(src, []byte{'}'}) {
				return nil, ErrUnbalanced
			}
			return out.Bytes(), nil

		case css.CommentGrammar:
			open()
			line(string(data))

		case css.AtRuleGrammar:
			open()
			line(joinTokens(data, parser.Values(), true) + ";")

		case css.BeginAtRuleGrammar:
			open()
			line(joinTokens(data, parser.Values(), true) + " {")
			depth++

		case css.BeginRulesetGrammar:
			open()
			selectors := splitSelectors(selectorText(parser.Values()))
			for i, sel := range selectors {
				if i < len(selectors)-1 {
					line(sel + ",")
				} else {
					line(sel + " {")
				}
			}
			depth++

		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			if depth == 0 {
				return nil, ErrUnbalanced
			}
			flush()
			depth--
			line("}")

		case css.DeclarationGrammar:
			line(string(data) + ": " + joinTokens(nil, parser.Values(), true) + ";")

		case css.CustomPropertyGrammar:
			line(string(data) + ": " + joinTokens(nil, parser.Values(), false) + ";")

		case css.TokenGrammar:
			if depth == 0 {
				open()
				line(string(data))
				continue
			}
			raw.Write(data)
		}
	}
}

// joinTokens builds single line text out of head and tokens collapsing
// whitespace runs into single space. Head is always separated by space. The
// parser drops whitespace around some delimiters, pretty puts it back: a space
// before "!", after every comma and after colons inside parentheses.
func joinTokens(head []byte, tokens []css.Token, pretty bool) string {
	var (
		sb    strings.Builder
		level int
	)
	sb.Write(head)
	space := len(head) > 0
	for _, t := range tokens {
		switch t.TokenType {
		case css.WhitespaceToken:
			space = true
			continue
		case css.FunctionToken, css.LeftParenthesisToken:
			level++
		case css.RightParenthesisToken:
			level--
		case css.DelimToken:
			if pretty && len(t.Data) == 1 && t.Data[0] == '!' {
				space = true
			}
		}
		if space && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.Write(t.Data)
		space = pretty && (t.TokenType == css.CommaToken || t.TokenType == css.ColonToken && level > 0)
	}
	return strings.TrimSpace(sb.String())
}

// selectorText joins selector tokens putting spaces around combinators
// outside of parentheses.
func selectorText(tokens []css.Token) string {
	var (
		sb    strings.Builder
		level int
		space bool
	)
	for _, t := range tokens {
		switch t.TokenType {
		case css.WhitespaceToken:
			space = true
			continue
		case css.FunctionToken, css.LeftParenthesisToken:
			level++
		case css.RightParenthesisToken:
			level--
		}
		combinator := level == 0 && t.TokenType == css.DelimToken &&
			len(t.Data) == 1 && (t.Data[0] == '>' || t.Data[0] == '+' || t.Data[0] == '~')
		if (space || combinator) && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.Write(t.Data)
		space = combinator
	}
	return strings.TrimSpace(sb.String())
}

// splitSelectors splits selector list on top-level commas.
func splitSelectors(s string) []string {
	var (
		parts []string
		level int
		start int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			level++
		case ')', ']':
			level--
		case ',':
			if level == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])

	selectors := parts[:0]
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			selectors = append(selectors, part)
		}
	}
	return selectors
}
