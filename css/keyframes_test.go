package css

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const fade = "@keyframes antFadeIn{0%{opacity:0}100%{opacity:1}}"

func TestKeyframes(t *testing.T) {
	in := ".a{b:c}" + fade + "\n@keyframes ant-zoom {from{x:y}}\n@keyframes broken{0%{opacity:0}"
	got := Keyframes(in)
	want := []string{fade, "@keyframes ant-zoom {from{x:y}}"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Keyframes() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractKeyframes(t *testing.T) {
	in := fade + ".x{y:z}" + fade

	got := ExtractKeyframes(in, true)
	want := KeyframesBanner + "\n\n" + fade + "\n"
	if got != want {
		t.Errorf("ExtractKeyframes(dedupe) = %q, want %q", got, want)
	}

	got = ExtractKeyframes(in, false)
	if n := strings.Count(got, "@keyframes"); n != 2 {
		t.Errorf("ExtractKeyframes() kept %d blocks, want 2", n)
	}
	if !strings.HasPrefix(got, KeyframesBanner+"\n\n") {
		t.Errorf("missing banner in %q", got)
	}
}

func TestExtractKeyframes_None(t *testing.T) {
	for _, in := range []string{"", ".a{b:c}", "@keyframes open{0%{"} {
		if got := ExtractKeyframes(in, true); got != "" {
			t.Errorf("ExtractKeyframes(%q) = %q, want empty", in, got)
		}
	}
}

func TestKeyframes_NestedBodies(t *testing.T) {
	spin := "@keyframes spin { 0% { transform: rotate(0); } 100% { transform: rotate(360deg); } }"
	got := Keyframes(".a { b: c; }\n" + spin + "\n.d { e: f; }")
	if len(got) != 1 {
		t.Fatalf("Keyframes() found %d blocks, want 1", len(got))
	}
	if len(got[0]) != len(spin) || got[0] != spin {
		t.Errorf("Keyframes() = %q, want %q", got[0], spin)
	}
}
