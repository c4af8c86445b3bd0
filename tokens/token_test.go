package tokens

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sample = `{
  "colorPrimary": "#1677ff",
  "marginLG": 24,
  "zIndexBase": 0,
  "lineHeight": 1.5714285714285714,
  "motion": true,
  "_internal": 1,
  "boxShadowSecondary": "0 6px 16px 0 rgba(0, 0, 0, 0.08)",
  "Button": {"paddingInline": 15},
  "sizes": [1, 2],
  "empty": null
}`

func names(tokens []Token) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Name)
	}
	return out
}

func TestDecode(t *testing.T) {
	set, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if set.Len() != 10 {
		t.Errorf("Len() = %d, want 10", set.Len())
	}

	wantAll := []string{"colorPrimary", "marginLG", "zIndexBase", "lineHeight", "motion", "_internal", "boxShadowSecondary", "Button", "sizes", "empty"}
	if diff := cmp.Diff(wantAll, names(set.All())); diff != "" {
		t.Errorf("All() order mismatch (-want +got):\n%s", diff)
	}

	wantPublic := []string{"colorPrimary", "marginLG", "zIndexBase", "lineHeight", "motion", "boxShadowSecondary"}
	if diff := cmp.Diff(wantPublic, names(set.Public())); diff != "" {
		t.Errorf("Public() mismatch (-want +got):\n%s", diff)
	}

	v, ok := set.Get("lineHeight")
	if !ok || v.Kind != KindNumber || v.Text != "1.5714285714285714" {
		t.Errorf("Get(lineHeight) = %+v, %v", v, ok)
	}
	v, _ = set.Get("motion")
	if v.Kind != KindBool || v.Text != "true" {
		t.Errorf("Get(motion) = %+v", v)
	}
	v, _ = set.Get("Button")
	if v.Kind != KindComplex {
		t.Errorf("Get(Button).Kind = %v, want complex", v.Kind)
	}
}

func TestDecode_Errors(t *testing.T) {
	for _, in := range []string{"", "[]", `{"a":}`, `{"a":1`} {
		if _, err := Decode(strings.NewReader(in)); err == nil {
			t.Errorf("Decode(%q) expected error", in)
		}
	}
}

func TestSet_AddDuplicate(t *testing.T) {
	set := NewSet()
	set.Add("a", Number(1))
	set.Add("b", String("x"))
	set.Add("a", Number(2))

	if diff := cmp.Diff([]string{"a", "b"}, names(set.All())); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if v, _ := set.Get("a"); v.Text != "2" {
		t.Errorf("Get(a) = %q, want 2", v.Text)
	}
}

func TestSet_Nil(t *testing.T) {
	var set *Set
	if set.Len() != 0 || set.All() != nil || set.Public() != nil {
		t.Error("nil set must behave as empty")
	}
	if _, ok := set.Get("a"); ok {
		t.Error("Get() on nil set must fail")
	}
}
