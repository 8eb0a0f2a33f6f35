package config

import (
	"strings"
	"unicode"
)

// CleanFileName removes characters not allowed in file names. Leading dots
// and surrounding spaces are dropped as well, so expanded name templates
// never produce hidden files.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if unicode.IsControl(sym) || strings.ContainsRune(forbiddenFileNameRunes, sym) {
			return -1
		}
		return sym
	}, in)
	out = strings.TrimLeft(strings.TrimSpace(out), ".")
	if len(out) == 0 {
		return "_bad_file_name_"
	}
	return out
}
