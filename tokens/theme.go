package tokens

// Theme describes one generated token set.
type Theme struct {
	Name        string
	Algorithms  []string // opaque selectors understood by token computation
	Selector    string   // CSS scope of the custom properties
	Description string
}

// Themes are always generated in this order.
var Themes = []Theme{
	{Name: "light", Algorithms: []string{"default"}, Selector: ":root", Description: "Light theme (default)"},
	{Name: "dark", Algorithms: []string{"dark"}, Selector: `[data-theme="dark"]`, Description: "Dark theme"},
	{Name: "compact", Algorithms: []string{"compact"}, Selector: `[data-theme="compact"]`, Description: "Compact theme"},
}

// CSSFile returns relative name of the theme custom properties file.
func (t Theme) CSSFile() string {
	return "tokens/" + t.Name + "-tokens.css"
}

// JSONFile returns relative name of the theme JSON file.
func (t Theme) JSONFile() string {
	return "tokens/" + t.Name + "-tokens.json"
}

// Stylesheet renders complete theme tokens stylesheet.
func (t Theme) Stylesheet(set *Set, prefix string) string {
	return "/* " + t.Description + " */\n" + RenderCSS(set, t.Selector, prefix)
}
