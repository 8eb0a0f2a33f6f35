package format

import (
	"path"
	"strings"

	"aesthetic/common"
	"aesthetic/css"
)

// SelectorSuffix formats a single nested selector so that it can be
// appended to a class selector. Combinators and the universal selector are
// separated by a space, pseudo and attribute selectors are attached.
func SelectorSuffix(part string) string {
	part = CollapseSpace(part)
	if part == "" {
		return ""
	}
	switch part[0] {
	case '>', '~', '+', '*':
		return " " + part
	}
	return part
}

// SelectorKey returns canonical form of a nested selector (list) used in
// cache keys. It matches the remainder of a rendered selector after the
// class name, so hydration can recover it from CSS text.
func SelectorKey(selector string) string {
	if strings.TrimSpace(selector) == "" {
		return ""
	}
	var parts []string
	for _, part := range css.SplitSelectors(selector) {
		parts = append(parts, SelectorSuffix(part))
	}
	return strings.Join(parts, ",")
}

// Selector builds full rule selector for a class and optional nested
// selector (list).
func Selector(class, selector string) string {
	var parts []string
	for _, part := range css.SplitSelectors(selector) {
		parts = append(parts, "."+class+SelectorSuffix(part))
	}
	if len(parts) == 0 {
		return "." + class
	}
	return strings.Join(parts, ", ")
}

// ChainSelector appends nested selector (list) to the outer one, every
// member of the outer list gets every member of the nested one.
func ChainSelector(outer, nested string) string {
	inner := css.SplitSelectors(nested)
	if len(inner) == 0 {
		return outer
	}
	heads := css.SplitSelectors(outer)
	if len(heads) == 0 {
		return strings.Join(inner, ", ")
	}
	var parts []string
	for _, head := range heads {
		for _, tail := range inner {
			parts = append(parts, head+SelectorSuffix(tail))
		}
	}
	return strings.Join(parts, ", ")
}

// Block joins declarations into a declaration list.
func Block(decls []css.Declaration) string {
	var sb strings.Builder
	for i, d := range decls {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(d.Property)
		sb.WriteString(": ")
		sb.WriteString(d.Value)
		sb.WriteByte(';')
	}
	return sb.String()
}

// StyleRule formats a style rule.
func StyleRule(selector string, decls []css.Declaration) string {
	return selector + " { " + Block(decls) + " }"
}

// WrapConditions nests rule text in the condition stack, outermost first.
func WrapConditions(conds []common.Condition, rule string) string {
	for i := len(conds) - 1; i >= 0; i-- {
		rule = conds[i].String() + " { " + rule + " }"
	}
	return rule
}

// AtRule formats an at-rule with a declaration list body, e.g. @font-face.
func AtRule(name, prelude string, decls []css.Declaration) string {
	head := "@" + name
	if prelude != "" {
		head += " " + prelude
	}
	return head + " { " + Block(decls) + " }"
}

// Keyframes formats @keyframes rule from already formatted frame rules.
func Keyframes(name string, frames []string) string {
	return "@keyframes " + name + " { " + strings.Join(frames, " ") + " }"
}

// Import formats @import rule.
func Import(location string, url bool, media string) string {
	target := css.Quote(location)
	if url {
		target = "url(" + target + ")"
	}
	if media = CollapseSpace(media); media != "" {
		target += " " + media
	}
	return "@import " + target + ";"
}

var fontFormats = map[string]string{
	".eot":   "embedded-opentype",
	".otf":   "opentype",
	".svg":   "svg",
	".svgz":  "svg",
	".ttf":   "truetype",
	".woff":  "woff",
	".woff2": "woff2",
}

// FontSource formats a single src entry for a font file path, with format
// hint derived from file extension when known.
func FontSource(location string) string {
	src := "url(" + css.Quote(location) + ")"
	if f, ok := fontFormats[strings.ToLower(path.Ext(location))]; ok {
		src += " format(" + css.Quote(f) + ")"
	}
	return src
}

// LocalSource formats local() src entry.
func LocalSource(name string) string {
	return "local(" + css.Quote(name) + ")"
}
