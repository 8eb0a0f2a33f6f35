// Package debug has helpers producing human readable dumps of rule trees.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter accumulates indented lines, two spaces per depth level.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Rule writes a single indexed rule: "<index> <kind>: <quoted text>".
func (tw TreeWriter) Rule(depth, index int, kind, text string) {
	tw.indent(depth)
	tw.w.WriteString(strconv.Itoa(index))
	tw.w.WriteByte(' ')
	tw.w.WriteString(kind)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(text))
	tw.w.WriteByte('\n')
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
