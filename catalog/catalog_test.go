package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := NewTable(map[string]string{
		"Button":     "btn",
		"DatePicker": "picker",
		"TimePicker": "picker",
		"QRCode":     "qrcode",
	}, []string{"ConfigProvider", "App", "Grid", "Auto*"})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	return tbl
}

func TestTablePrefix(t *testing.T) {
	tbl := newTestTable(t)

	tests := []struct {
		name string
		want string
	}{
		{"Button", "btn"},
		{"QRCode", "qrcode"},
		{"InputNumber", "input-number"},
		{"ColorPicker", "color-picker"},
		{"Table", "table"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tbl.Prefix(tt.name); got != tt.want {
				t.Errorf("Prefix(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestTableSkipped(t *testing.T) {
	tbl := newTestTable(t)

	for name, want := range map[string]bool{
		"ConfigProvider": true,
		"App":            true,
		"AutoComplete":   true,
		"Button":         false,
		"Apply":          false,
	} {
		if got := tbl.Skipped(name); got != want {
			t.Errorf("Skipped(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestNewTableBadPattern(t *testing.T) {
	if _, err := NewTable(nil, []string{"[a-"}); err == nil {
		t.Fatal("expected error for malformed pattern")
	}
}

func TestDescriptors(t *testing.T) {
	tbl := newTestTable(t)

	got := tbl.Descriptors([]string{"TimePicker", "Button", "theme", "App", "DatePicker", "Button", ""})
	want := []Descriptor{
		{Name: "Button", Prefix: "btn"},
		{Name: "DatePicker", Prefix: "picker"},
		{Name: "TimePicker", Prefix: "picker"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Descriptors() mismatch (-want +got):\n%s", diff)
	}
}

func TestGroups(t *testing.T) {
	tbl := newTestTable(t)

	groups := Groups(tbl.Descriptors([]string{"Button", "DatePicker", "TimePicker", "Table"}))
	want := []Group{
		{Prefix: "btn", Members: []string{"Button"}},
		{Prefix: "picker", Members: []string{"DatePicker", "TimePicker"}},
		{Prefix: "table", Members: []string{"Table"}},
	}
	if diff := cmp.Diff(want, groups); diff != "" {
		t.Errorf("Groups() mismatch (-want +got):\n%s", diff)
	}
	if got := groups[1].Label(); got != "DatePicker, TimePicker" {
		t.Errorf("Label() = %q", got)
	}
}
