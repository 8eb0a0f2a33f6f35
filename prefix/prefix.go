// Package prefix adds vendor prefixed variants of declarations and
// selectors for engines lacking standard support.
package prefix

import (
	"slices"
	"strings"

	"aesthetic/css"
)

// properties lists vendor prefixes required by property names.
var properties = map[string][]string{
	"appearance":           {"-webkit-", "-moz-"},
	"backdrop-filter":      {"-webkit-"},
	"background-clip":      {"-webkit-"},
	"box-decoration-break": {"-webkit-"},
	"clip-path":            {"-webkit-"},
	"hyphens":              {"-webkit-", "-ms-"},
	"mask-image":           {"-webkit-"},
	"tab-size":             {"-moz-"},
	"text-decoration-skip": {"-webkit-"},
	"text-size-adjust":     {"-webkit-", "-moz-", "-ms-"},
	"user-select":          {"-webkit-", "-moz-", "-ms-"},
}

// values lists vendor specific alternatives of property values.
var values = map[string]map[string][]string{
	"display": {
		"flex":        {"-webkit-box", "-ms-flexbox", "-webkit-flex"},
		"inline-flex": {"-webkit-inline-box", "-ms-inline-flexbox", "-webkit-inline-flex"},
		"grid":        {"-ms-grid"},
		"inline-grid": {"-ms-inline-grid"},
	},
	"position": {
		"sticky": {"-webkit-sticky"},
	},
	"width": {
		"fit-content": {"-webkit-fit-content", "-moz-fit-content"},
		"max-content": {"-webkit-max-content", "-moz-max-content"},
		"min-content": {"-webkit-min-content", "-moz-min-content"},
	},
}

// selectors lists vendor variants of pseudo classes and elements.
var selectors = map[string][]string{
	"::backdrop":             {"::-webkit-backdrop"},
	"::file-selector-button": {"::-webkit-file-upload-button"},
	"::placeholder":          {"::-webkit-input-placeholder", "::-moz-placeholder", ":-ms-input-placeholder"},
	"::selection":            {"::-moz-selection"},
	":any-link":              {":-webkit-any-link", ":-moz-any-link"},
	":fullscreen":            {":-webkit-full-screen", ":-moz-full-screen", ":-ms-fullscreen"},
	":read-only":             {":-moz-read-only"},
	":read-write":            {":-moz-read-write"},
}

// Prefixer expands declarations and selectors using static tables.
type Prefixer struct {
	pseudos []string
}

// New returns prefixer.
func New() *Prefixer {
	pseudos := make([]string, 0, len(selectors))
	for s := range selectors {
		pseudos = append(pseudos, s)
	}
	// longer first, so "::placeholder" is never matched as ":placeholder" part
	slices.SortFunc(pseudos, func(a, b string) int {
		if d := len(b) - len(a); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	return &Prefixer{pseudos: pseudos}
}

// Prefix returns declarations to use instead of the given one, prefixed
// variants sorted first and the original last. Returns nil when no prefix is
// needed.
func (p *Prefixer) Prefix(property, value string) []css.Declaration {
	var decls []css.Declaration
	for _, vendor := range properties[property] {
		decls = append(decls, css.Declaration{Property: vendor + property, Value: value})
	}
	for _, alt := range values[property][strings.ToLower(strings.TrimSpace(value))] {
		decls = append(decls, css.Declaration{Property: property, Value: alt})
	}
	if len(decls) == 0 {
		return nil
	}
	slices.SortStableFunc(decls, func(a, b css.Declaration) int {
		return strings.Compare(a.Property+":"+a.Value, b.Property+":"+b.Value)
	})
	return append(decls, css.Declaration{Property: property, Value: value})
}

// PrefixSelector returns vendor variants of selector, one per vendor
// pseudo class or element found in it.
func (p *Prefixer) PrefixSelector(selector string) []string {
	var variants []string
	for _, pseudo := range p.pseudos {
		if !strings.Contains(selector, pseudo) {
			continue
		}
		for _, alt := range selectors[pseudo] {
			variants = append(variants, strings.ReplaceAll(selector, pseudo, alt))
		}
	}
	return variants
}

// Unprefixed strips vendor prefix from property name or value.
func Unprefixed(s string) string {
	for _, vendor := range []string{"-webkit-", "-moz-", "-ms-", "-o-"} {
		if strings.HasPrefix(s, vendor) {
			return s[len(vendor):]
		}
	}
	return s
}
