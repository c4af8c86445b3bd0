package tokens

import (
	"bytes"
	"encoding/json"
	"strings"

	"antcss/css"
)

// DefaultPrefix is the CSS variable prefix used by Ant Design.
const DefaultPrefix = "ant"

// unitless lists numeric tokens which are ratios, multipliers or indexes.
var unitless = map[string]struct{}{
	"zIndexBase":         {},
	"zIndexPopupBase":    {},
	"opacityLoading":     {},
	"opacityImage":       {},
	"lineHeight":         {},
	"lineHeightLG":       {},
	"lineHeightSM":       {},
	"lineHeightHeading1": {},
	"lineHeightHeading2": {},
	"lineHeightHeading3": {},
	"lineHeightHeading4": {},
	"lineHeightHeading5": {},
	"fontWeightStrong":   {},
	"motionUnit":         {},
	"motionBase":         {},
}

var unitlessFragments = []string{"zindex", "opacity", "lineheight", "fontweight"}

// Unitless reports whether numeric token must be emitted as bare number.
func Unitless(name string) bool {
	if _, ok := unitless[name]; ok {
		return true
	}
	lower := strings.ToLower(name)
	for _, f := range unitlessFragments {
		if strings.Contains(lower, f) {
			return true
		}
	}
	return false
}

// CSSValue converts token value to CSS text, numbers get "px" unless token
// is unitless.
func CSSValue(t Token) string {
	if t.Value.Kind == KindNumber && !Unitless(t.Name) {
		return t.Value.Text + "px"
	}
	return t.Value.Text
}

// VarName returns CSS custom property name for token.
func VarName(prefix, name string) string {
	return "--" + prefix + "-" + css.KebabCase(name)
}

// RenderCSS renders public tokens of the set as custom properties of a
// single block under selector. Tokens whose names collapse into the same
// property name ("colorBGBase", "colorBgBase") produce single declaration
// at the position of the first one with the value of the last one.
func RenderCSS(set *Set, selector, prefix string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	type decl struct{ name, value string }
	var (
		decls []decl
		index = make(map[string]int)
	)
	for _, t := range set.Public() {
		name := VarName(prefix, t.Name)
		if i, ok := index[name]; ok {
			decls[i].value = CSSValue(t)
			continue
		}
		index[name] = len(decls)
		decls = append(decls, decl{name: name, value: CSSValue(t)})
	}

	var sb strings.Builder
	sb.WriteString(selector)
	sb.WriteString(" {\n")
	for _, d := range decls {
		sb.WriteString("  ")
		sb.WriteString(d.name)
		sb.WriteString(": ")
		sb.WriteString(d.value)
		sb.WriteString(";\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// RenderJSON renders public tokens of the set as 2 spaces indented JSON
// object with raw values, keeping set order.
func RenderJSON(set *Set) ([]byte, error) {
	var buf bytes.Buffer
	public := set.Public()
	if len(public) == 0 {
		return []byte("{}"), nil
	}

	buf.WriteString("{\n")
	for i, t := range public {
		name, err := json.Marshal(t.Name)
		if err != nil {
			return nil, err
		}
		buf.WriteString("  ")
		buf.Write(name)
		buf.WriteString(": ")
		switch t.Value.Kind {
		case KindString:
			val, err := json.Marshal(t.Value.Text)
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		default:
			buf.WriteString(t.Value.Text)
		}
		if i < len(public)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}")
	return buf.Bytes(), nil
}
