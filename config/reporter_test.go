package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestReport(t *testing.T) (*Report, string) {
	t.Helper()
	dest := filepath.Join(t.TempDir(), "report.zip")
	conf := ReporterConfig{Destination: dest}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	return r, dest
}

func readArchive(t *testing.T, name string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(name)
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer zr.Close()

	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("unable to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("unable to read %s: %v", f.Name, err)
		}
		files[f.Name] = string(data)
	}
	return files
}

func TestReport_Archive(t *testing.T) {
	r, dest := newTestReport(t)

	src := t.TempDir()
	stored := filepath.Join(src, "input.yaml")
	if err := os.WriteFile(stored, []byte("rules: {}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(src, "nested"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "nested", "a.css"), []byte(".a{margin:0}"), 0644); err != nil {
		t.Fatal(err)
	}

	r.Store("input.yaml", stored)
	r.StoreData("output/page.html", []byte("<html></html>"))
	if err := r.StoreCopy("sources", src); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	r.Store("missing", filepath.Join(src, "does-not-exist"))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	files := readArchive(t, dest)
	want := map[string]string{
		"input.yaml":           "rules: {}",
		"output/page.html":     "<html></html>",
		"sources/input.yaml":   "rules: {}",
		"sources/nested/a.css": ".a{margin:0}",
	}
	for name, content := range want {
		if got, ok := files[name]; !ok {
			t.Errorf("archive is missing %s", name)
		} else if got != content {
			t.Errorf("%s = %q, want %q", name, got, content)
		}
	}
	if _, ok := files["missing"]; ok {
		t.Error("absent files must be skipped")
	}
	manifest := files["MANIFEST"]
	for _, name := range []string{"input.yaml", "output/page.html", "sources", "missing"} {
		if !strings.Contains(manifest, "\t"+name+"\t") {
			t.Errorf("manifest does not list %s:\n%s", name, manifest)
		}
	}
}

func TestReport_CloseRemovesCopies(t *testing.T) {
	r, _ := newTestReport(t)

	src := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(src, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := r.StoreCopy("page", src); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	// same name twice gets versioned
	if err := r.StoreCopy("page", src); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	if len(r.entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(r.entries))
	}
	temps := append([]string(nil), r.temps...)
	if len(temps) != 2 {
		t.Fatalf("expected 2 temporary copies, got %d", len(temps))
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	for _, dir := range temps {
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			os.RemoveAll(dir)
			t.Errorf("expected %s to be removed", dir)
		}
	}
	if _, err := os.Stat(src); err != nil {
		t.Errorf("original file must stay, got %v", err)
	}
}

func TestReport_StoreOverwritePanics(t *testing.T) {
	r, _ := newTestReport(t)
	defer r.Close()

	r.StoreData("data", []byte("a"))
	defer func() {
		if recover() == nil {
			t.Error("expected panic on data overwrite")
		}
	}()
	r.StoreData("data", []byte("b"))
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
	// all methods are safe on nil report
	r.Store("a", "b")
	r.StoreData("a", nil)
	if err := r.StoreCopy("a", "b"); err != nil {
		t.Errorf("StoreCopy on nil report should not error, got: %v", err)
	}
	if r.Name() != "" {
		t.Error("nil report must have empty name")
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
