// Package archive builds Walk abstraction on top of "archive/zip" so that
// style documents can be rendered straight from zip bundles.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// WalkFunc is the type of the function called for each file in archive
// visited by Walk. The archive argument contains path to archive passed to
// Walk, file is the entry which satisfies prefix and match conditions. If an
// error is returned, processing stops.
type WalkFunc func(archive string, file *zip.File) error

// MatchFunc selects archive entries by name. nil matches everything.
type MatchFunc func(name string) bool

// Walk walks all files in the archive whose names start with prefix and
// satisfy match, calling walkFn for each. Archives with path traversal
// entries ("..") or absolute paths are rejected to prevent Zip Slip attacks.
func Walk(archive, prefix string, match MatchFunc, walkFn WalkFunc) error {

	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		if match != nil && !match(name) {
			continue
		}
		if err := walkFn(archive, f); err != nil {
			return err
		}
	}
	return nil
}

// ReadFile returns content of archive entry.
func ReadFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}

// IsArchive checks file signature for zip archive.
func IsArchive(fname string) (bool, error) {
	f, err := os.Open(fname)
	if err != nil {
		return false, err
	}
	defer f.Close()

	// filetype needs no more than 262 bytes of header
	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	return filetype.Is(head[:n], "zip"), nil
}

// Split separates source path into part which exists on disk and the rest,
// which is path inside of an archive. When rest is not empty head is a
// regular file, most likely an archive. Path inside of archive always uses
// forward slashes.
func Split(src string) (string, string, error) {
	head, tail := filepath.Clean(src), ""
	for {
		if fi, err := os.Stat(head); err == nil {
			if len(tail) > 0 && !fi.Mode().IsRegular() {
				return "", "", fmt.Errorf("input source was not found (%s) => (%s)", head, tail)
			}
			return head, tail, nil
		}
		parent := filepath.Dir(head)
		if parent == head {
			return "", "", fmt.Errorf("input source was not found (%s)", src)
		}
		head, tail = parent, path.Join(filepath.Base(head), tail)
	}
}
