package css

import (
	"regexp"
	"strings"
)

var (
	lowerUpper      = regexp.MustCompile(`([a-z])([A-Z])`)
	upperUpperLower = regexp.MustCompile(`([A-Z])([A-Z][a-z])`)
)

// KebabCase converts camelCase and PascalCase identifiers into kebab-case the
// same way Ant Design names its CSS variables and classes:
//
//	marginLG      -> margin-lg
//	zIndexBase    -> z-index-base
//	ColorPicker   -> color-picker
//	QRCode        -> qr-code
func KebabCase(s string) string {
	s = lowerUpper.ReplaceAllString(s, "${1}-${2}")
	s = upperUpperLower.ReplaceAllString(s, "${1}-${2}")
	return strings.ToLower(s)
}
