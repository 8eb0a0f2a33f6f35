package archive

import (
	"archive/zip"
	"errors"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func createZip(t *testing.T, dir string, files map[string]string) string {
	t.Helper()
	zipPath := filepath.Join(dir, "bundle.zip")
	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer zipFile.Close()

	w := zip.NewWriter(zipFile)
	for _, name := range slices.Sorted(maps.Keys(files)) {
		if strings.HasSuffix(name, "/") {
			h := &zip.FileHeader{Name: name}
			h.SetMode(os.ModeDir | 0755)
			if _, err := w.CreateHeader(h); err != nil {
				t.Fatalf("Failed to create directory %s: %v", name, err)
			}
			continue
		}
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", name, err)
		}
		if _, err := fw.Write([]byte(files[name])); err != nil {
			t.Fatalf("Failed to write content for %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to finalize zip: %v", err)
	}
	return zipPath
}

var bundle = map[string]string{
	"themes/":           "",
	"themes/light.yaml": "rules: {}",
	"themes/dark.yml":   "rules: {}",
	"themes/notes.txt":  "not a document",
	"base.yaml":         "title: base",
	"Docs/README.txt":   "readme",
}

func isDocument(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}

func TestWalk(t *testing.T) {
	zipPath := createZip(t, t.TempDir(), bundle)

	tests := []struct {
		name   string
		prefix string
		match  MatchFunc
		want   []string
	}{
		{"everything", "", nil, []string{"Docs/README.txt", "base.yaml", "themes/dark.yml", "themes/light.yaml", "themes/notes.txt"}},
		{"documents", "", isDocument, []string{"base.yaml", "themes/dark.yml", "themes/light.yaml"}},
		{"documents under prefix", "themes/", isDocument, []string{"themes/dark.yml", "themes/light.yaml"}},
		{"single entry", "base.yaml", isDocument, []string{"base.yaml"}},
		{"case sensitive prefix", "docs/", nil, nil},
		{"no match", "nonexistent/", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var visited []string
			err := Walk(zipPath, tt.prefix, tt.match, func(archive string, file *zip.File) error {
				if archive != zipPath {
					t.Errorf("archive = %s, want %s", archive, zipPath)
				}
				visited = append(visited, file.Name)
				return nil
			})
			if err != nil {
				t.Fatalf("Walk() error = %v", err)
			}
			slices.Sort(visited)
			if !slices.Equal(visited, tt.want) {
				t.Errorf("visited %v, want %v", visited, tt.want)
			}
		})
	}
}

func TestWalk_EarlyTermination(t *testing.T) {
	zipPath := createZip(t, t.TempDir(), bundle)

	var visited int
	stopErr := errors.New("stop walking")
	err := Walk(zipPath, "", nil, func(string, *zip.File) error {
		visited++
		if visited == 2 {
			return stopErr
		}
		return nil
	})
	if !errors.Is(err, stopErr) {
		t.Errorf("Walk() error = %v, want %v", err, stopErr)
	}
	if visited != 2 {
		t.Errorf("visited %d files, want 2 (early termination)", visited)
	}
}

func TestWalk_UnsafePaths(t *testing.T) {
	zipPath := createZip(t, t.TempDir(), map[string]string{"../evil.yaml": "x"})
	err := Walk(zipPath, "", nil, func(string, *zip.File) error { return nil })
	if err == nil {
		t.Error("expected error for archive with path traversal")
	}
}

func TestWalk_InvalidArchive(t *testing.T) {
	if err := Walk("/nonexistent/file.zip", "", nil, func(string, *zip.File) error { return nil }); err == nil {
		t.Error("Expected error for nonexistent file")
	}

	invalidZip := filepath.Join(t.TempDir(), "invalid.zip")
	if err := os.WriteFile(invalidZip, []byte("not a zip file"), 0644); err != nil {
		t.Fatalf("Failed to create invalid zip: %v", err)
	}
	if err := Walk(invalidZip, "", nil, func(string, *zip.File) error { return nil }); err == nil {
		t.Error("Expected error for invalid zip file")
	}
}

func TestReadFile(t *testing.T) {
	zipPath := createZip(t, t.TempDir(), bundle)
	err := Walk(zipPath, "base.yaml", nil, func(_ string, f *zip.File) error {
		data, err := ReadFile(f)
		if err != nil {
			return err
		}
		if string(data) != "title: base" {
			t.Errorf("content = %q", data)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Walk() error = %v", err)
	}
}

func TestIsArchive(t *testing.T) {
	dir := t.TempDir()
	zipPath := createZip(t, dir, bundle)
	plain := filepath.Join(dir, "doc.yaml")
	if err := os.WriteFile(plain, []byte("rules: {}"), 0644); err != nil {
		t.Fatal(err)
	}
	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}

	for _, tt := range []struct {
		path string
		want bool
	}{{zipPath, true}, {plain, false}, {empty, false}} {
		got, err := IsArchive(tt.path)
		if err != nil {
			t.Errorf("IsArchive(%s) error = %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("IsArchive(%s) = %v, want %v", tt.path, got, tt.want)
		}
	}
	if _, err := IsArchive(filepath.Join(dir, "missing.zip")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSplit(t *testing.T) {
	dir := t.TempDir()
	zipPath := createZip(t, dir, bundle)
	plain := filepath.Join(dir, "doc.yaml")
	if err := os.WriteFile(plain, []byte("rules: {}"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		src      string
		head     string
		rest     string
		hasError bool
	}{
		{dir, dir, "", false},
		{plain, plain, "", false},
		{zipPath, zipPath, "", false},
		{filepath.Join(zipPath, "themes", "light.yaml"), zipPath, "themes/light.yaml", false},
		{filepath.Join(zipPath, "themes"), zipPath, "themes", false},
		{filepath.Join(dir, "missing", "doc.yaml"), "", "", true},
	}
	for _, tt := range tests {
		head, rest, err := Split(tt.src)
		if (err != nil) != tt.hasError {
			t.Errorf("Split(%s) error = %v", tt.src, err)
			continue
		}
		if head != tt.head || rest != tt.rest {
			t.Errorf("Split(%s) = (%s, %s), want (%s, %s)", tt.src, head, rest, tt.head, tt.rest)
		}
	}
}
