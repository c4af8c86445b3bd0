package css

import "strings"

// Rule is a complete top-level chunk of stylesheet text: selector (or at-rule
// prelude) followed by a brace balanced block. Text is kept exactly as it
// appeared in the source, including any whitespace preceding the selector.
type Rule struct {
	Text string
}

// Selector returns the trimmed text before the first opening brace.
func (r Rule) Selector() string {
	before, _, found := strings.Cut(r.Text, "{")
	if !found {
		return ""
	}
	return strings.TrimSpace(before)
}

// Rules splits text into complete top-level rules using brace depth. A rule
// is complete when depth returns to zero after a closing brace. Trailing text
// which never closes is dropped. A stray closing brace at depth zero resets
// the scanner and discards whatever was accumulated before it.
func Rules(text string) []Rule {
	var (
		rules []Rule
		depth int
		start int
	)
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			switch {
			case depth == 0:
				rules = append(rules, Rule{Text: text[start : i+1]})
				start = i + 1
			case depth < 0:
				depth = 0
				start = i + 1
			}
		}
	}
	return rules
}
