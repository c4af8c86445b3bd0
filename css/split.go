package css

import (
	"fmt"
	"strings"
)

// ComponentSelector returns class selector stem used by a component, for
// example ".ant-btn" for classPrefix "ant" and prefix "btn".
func ComponentSelector(classPrefix, prefix string) string {
	return "." + classPrefix + "-" + prefix
}

// ExtractComponent collects every top-level rule of cleaned stylesheet which
// mentions component selector stem (see ComponentSelector). Matched rules are
// trimmed, separated by a blank line and preceded by a banner naming the
// component. Empty string is returned when nothing matched.
//
// While outside of a rule, new lines which are not preceded by anything but
// whitespace are not accumulated, so blank lines between rules do not leak
// into output. Text inside of a rule is kept verbatim.
func ExtractComponent(cleaned, name, selector string) string {
	rules := MatchRules(cleaned, selector)
	if len(rules) == 0 {
		return ""
	}
	return fmt.Sprintf("/* %s - %s */\n\n%s\n", name, selector, strings.Join(rules, "\n\n"))
}

// MatchRules returns trimmed top-level rules containing selector.
func MatchRules(cleaned, selector string) []string {
	var (
		rules   []string
		current strings.Builder
		depth   int
		inRule  bool
		content bool // current holds something besides whitespace
	)

	for i := 0; i < len(cleaned); i++ {
		ch := cleaned[i]

		switch ch {
		case '{':
			depth++
			inRule = true
		case '}':
			depth--
			if depth == 0 {
				current.WriteByte(ch)
				if text := current.String(); strings.Contains(text, selector) {
					rules = append(rules, strings.TrimSpace(text))
				}
				current.Reset()
				inRule, content = false, false
				continue
			}
			if depth < 0 {
				depth = 0
				current.Reset()
				inRule, content = false, false
				continue
			}
		}

		if inRule || ch != '\n' || content {
			current.WriteByte(ch)
			if !isSpace(ch) {
				content = true
			}
		}
	}
	return rules
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
