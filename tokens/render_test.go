package tokens

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUnitless(t *testing.T) {
	tests := map[string]bool{
		"zIndexBase":         true,
		"zIndexPopupBase":    true,
		"opacityLoading":     true,
		"lineHeightHeading3": true,
		"fontWeightStrong":   true,
		"motionUnit":         true,
		"controlItemBgHover": false,
		"marginLG":           false,
		"fontSize":           false,
		"customZIndexToo":    true,
		"imageOpacityMask":   true,
	}
	for name, want := range tests {
		if got := Unitless(name); got != want {
			t.Errorf("Unitless(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestCSSValue(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{"marginLG", Number(24)}, "24px"},
		{Token{"zIndexBase", Number(100)}, "100"},
		{Token{"lineHeight", Value{Kind: KindNumber, Text: "1.5714285714285714"}}, "1.5714285714285714"},
		{Token{"colorPrimary", String("#1677ff")}, "#1677ff"},
		{Token{"motion", Value{Kind: KindBool, Text: "true"}}, "true"},
		{Token{"borderRadius", Number(0)}, "0px"},
	}
	for _, tt := range tests {
		if got := CSSValue(tt.tok); got != tt.want {
			t.Errorf("CSSValue(%s) = %q, want %q", tt.tok.Name, got, tt.want)
		}
	}
}

func TestVarName(t *testing.T) {
	if got := VarName("ant", "colorBgContainer"); got != "--ant-color-bg-container" {
		t.Errorf("VarName() = %q", got)
	}
}

func TestRenderCSS(t *testing.T) {
	set := NewSet()
	set.Add("colorPrimary", String("#1677ff"))
	set.Add("marginLG", Number(24))
	set.Add("zIndexBase", Number(0))
	set.Add("_hidden", Number(1))
	set.Add("Button", Value{Kind: KindComplex, Text: "{}"})

	got := RenderCSS(set, ":root", "")
	want := ":root {\n" +
		"  --ant-color-primary: #1677ff;\n" +
		"  --ant-margin-lg: 24px;\n" +
		"  --ant-z-index-base: 0;\n" +
		"}"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RenderCSS() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderCSS_CollapsedNames(t *testing.T) {
	set := NewSet()
	set.Add("colorBgBase", String("#fff"))
	set.Add("margin", Number(16))
	set.Add("colorBGBase", String("#000"))

	got := RenderCSS(set, `[data-theme="dark"]`, "x")
	if n := strings.Count(got, "--x-color-bg-base:"); n != 1 {
		t.Fatalf("property emitted %d times in\n%s", n, got)
	}
	want := "[data-theme=\"dark\"] {\n  --x-color-bg-base: #000;\n  --x-margin: 16px;\n}"
	if got != want {
		t.Errorf("RenderCSS() = %q, want %q", got, want)
	}
}

func TestRenderJSON(t *testing.T) {
	set, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	data, err := RenderJSON(set)
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}

	want := `{
  "colorPrimary": "#1677ff",
  "marginLG": 24,
  "zIndexBase": 0,
  "lineHeight": 1.5714285714285714,
  "motion": true,
  "boxShadowSecondary": "0 6px 16px 0 rgba(0, 0, 0, 0.08)"
}`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("RenderJSON() mismatch (-want +got):\n%s", diff)
	}
	if !json.Valid(data) {
		t.Error("RenderJSON() produced invalid JSON")
	}

	// decoding rendered JSON gives the same public tokens
	back, err := Decode(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("Decode() of rendered JSON error = %v", err)
	}
	if diff := cmp.Diff(set.Public(), back.Public()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderJSON_Empty(t *testing.T) {
	data, err := RenderJSON(NewSet())
	if err != nil || string(data) != "{}" {
		t.Errorf("RenderJSON(empty) = %q, %v", data, err)
	}
}

func TestThemes(t *testing.T) {
	if len(Themes) != 3 || Themes[0].Name != "light" || Themes[1].Name != "dark" || Themes[2].Name != "compact" {
		t.Fatalf("unexpected themes %+v", Themes)
	}
	th := Themes[1]
	if th.CSSFile() != "tokens/dark-tokens.css" || th.JSONFile() != "tokens/dark-tokens.json" {
		t.Errorf("unexpected file names %q %q", th.CSSFile(), th.JSONFile())
	}
	set := NewSet()
	set.Add("marginLG", Number(24))
	got := th.Stylesheet(set, "ant")
	want := "/* Dark theme */\n[data-theme=\"dark\"] {\n  --ant-margin-lg: 24px;\n}"
	if got != want {
		t.Errorf("Stylesheet() = %q, want %q", got, want)
	}
}
