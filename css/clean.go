package css

import (
	"regexp"
	"strings"
)

// CleanOptions names synthetic classes injected by the styling engine when
// stylesheet is extracted.
type CleanOptions struct {
	// ScopeClass is the stem of per-render cache scoping classes, for example
	// "css-var" for ".css-var-_R_295_".
	ScopeClass string
	// WrapperClass is a fixed wrapper class, for example "antd".
	WrapperClass string
}

// DefaultCleanOptions matches the shape produced by antd static style
// extraction with cssVar key "antd".
func DefaultCleanOptions() CleanOptions {
	return CleanOptions{ScopeClass: "css-var", WrapperClass: "antd"}
}

// Cleaner removes scope and wrapper class prefixes from selectors.
type Cleaner struct {
	scope     *regexp.Regexp
	bareScope *regexp.Regexp
	wrapper   string
}

// NewCleaner prepares selector cleaner for given options. Empty option
// disables the corresponding rewrite.
func NewCleaner(opts CleanOptions) *Cleaner {
	c := &Cleaner{}
	if opts.ScopeClass != "" {
		stem := regexp.QuoteMeta("." + opts.ScopeClass + "-")
		c.scope = regexp.MustCompile(stem + `[^.\s{,]+\.`)
		c.bareScope = regexp.MustCompile(`^` + stem + `[^\s{,]+$`)
	}
	if opts.WrapperClass != "" {
		c.wrapper = "." + opts.WrapperClass + "."
	}
	return c
}

// Clean processes blob one complete rule at a time. In every rule
// ".<scope>." and ".<wrapper>." collapse into ".", rules left with an empty
// selector or with a bare scope class selector are dropped. Surviving rules
// are joined with new lines and otherwise kept as written.
func (c *Cleaner) Clean(blob string) string {
	var out []string
	for _, rule := range Rules(blob) {
		if cleaned, ok := c.CleanRule(rule.Text); ok {
			out = append(out, cleaned)
		}
	}
	return strings.Join(out, "\n")
}

// CleanRule rewrites a single complete rule. Second return value is false
// when rule should be discarded.
func (c *Cleaner) CleanRule(rule string) (string, bool) {
	if c.scope != nil {
		rule = c.scope.ReplaceAllLiteralString(rule, ".")
	}
	if c.wrapper != "" {
		rule = strings.ReplaceAll(rule, c.wrapper, ".")
	}

	// no block or empty selector
	selector := Rule{Text: rule}.Selector()
	if selector == "" {
		return "", false
	}
	if c.bareScope != nil && c.bareScope.MatchString(selector) {
		return "", false
	}
	return rule, true
}

// CleanSelectors is a shortcut for NewCleaner(DefaultCleanOptions()).Clean(blob).
func CleanSelectors(blob string) string {
	return NewCleaner(DefaultCleanOptions()).Clean(blob)
}
