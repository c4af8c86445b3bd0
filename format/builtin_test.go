package format

import (
	"testing"

	"go.uber.org/zap/zaptest"
)

func openBuiltin(t *testing.T, opts Options) (*Builtin, int) {
	t.Helper()
	b := NewBuiltin(zaptest.NewLogger(t))
	key, err := b.Open("")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := b.Configure(key, opts); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	return b, key
}

func TestBuiltin_CSS(t *testing.T) {
	b, key := openBuiltin(t, Options{IndentStyle: "space", IndentWidth: 4})
	got, err := b.Format(key, ".a{color:red}", "components/a.css")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if want := ".a {\n    color: red;\n}\n"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestBuiltin_JSON(t *testing.T) {
	b, key := openBuiltin(t, Options{IndentStyle: "space", IndentWidth: 2})
	got, err := b.Format(key, `{"a":1,"b":"x"}`, "tokens/light-tokens.JSON")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if want := "{\n  \"a\": 1,\n  \"b\": \"x\"\n}\n"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}

	if _, err := b.Format(key, `{"a":`, "bad.json"); err == nil {
		t.Error("Format() of broken JSON expected error")
	}
}

func TestBuiltin_Other(t *testing.T) {
	b, key := openBuiltin(t, Options{})
	if got, err := b.Format(key, "as is", "notes.txt"); err != nil || got != "as is" {
		t.Errorf("Format() = %q, %v", got, err)
	}
}

func TestBuiltin_NotOpen(t *testing.T) {
	b := NewBuiltin(nil)
	if _, err := b.Format(3, "", "a.css"); err != ErrNotOpen {
		t.Errorf("Format() error = %v, want ErrNotOpen", err)
	}
	if err := b.Configure(3, Options{}); err != ErrNotOpen {
		t.Errorf("Configure() error = %v, want ErrNotOpen", err)
	}
	key, _ := b.Open("")
	if err := b.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := b.Format(key, "", "a.css"); err != ErrNotOpen {
		t.Errorf("Format() after Close error = %v, want ErrNotOpen", err)
	}
}
