package config

import (
	"archive/zip"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func newTestReport(t *testing.T) (*Report, string) {
	t.Helper()
	dst := filepath.Join(t.TempDir(), "report.zip")
	rpt, err := (&ReporterConfig{Destination: dst}).Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	return rpt, dst
}

func archiveNames(t *testing.T, path string) []string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}

func TestReportClose_RemovesSnapshots(t *testing.T) {
	rpt, dst := newTestReport(t)

	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "index.css"), []byte(":root {}"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	if err := rpt.StoreCopy("output", src); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	snapshot := rpt.temps[0]

	if err := rpt.Close(); err != nil {
		t.Fatalf("Report.Close() error: %v", err)
	}

	if _, err := os.Stat(snapshot); !os.IsNotExist(err) {
		t.Errorf("expected snapshot %s to be removed", snapshot)
	}
	// original stays
	if _, err := os.Stat(filepath.Join(src, "index.css")); err != nil {
		t.Errorf("source should not be removed, got error: %v", err)
	}

	names := archiveNames(t, dst)
	for _, want := range []string{"MANIFEST", "output/index.css"} {
		if !slices.Contains(names, want) {
			t.Errorf("archive misses %s, has %v", want, names)
		}
	}
}

func TestReportStoreData(t *testing.T) {
	rpt, dst := newTestReport(t)

	rpt.StoreData("styles/raw.css", []byte(".a{}"))
	rpt.StoreData("styles/cleaned.css", []byte(".a{}"))
	if err := rpt.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	names := archiveNames(t, dst)
	if len(names) != 3 || names[0] != "MANIFEST" {
		t.Fatalf("unexpected archive content %v", names)
	}
	if !strings.HasPrefix(names[1], "styles/") {
		t.Errorf("unexpected entry %s", names[1])
	}
}

func TestReportStoreData_Duplicate(t *testing.T) {
	rpt, _ := newTestReport(t)
	defer rpt.Close()

	rpt.StoreData("a", []byte("1"))
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate name")
		}
	}()
	rpt.StoreData("a", []byte("2"))
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
	// all methods are nil safe
	r.Store("x", "y")
	r.StoreData("x", nil)
	if err := r.StoreCopy("x", "y"); err != nil {
		t.Errorf("StoreCopy on nil report should not error, got: %v", err)
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
