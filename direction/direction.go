// Package direction converts declarations authored for left-to-right
// layouts into their right-to-left counterparts.
package direction

import (
	"strings"

	"aesthetic/css"
)

// keywordProperties hold "left"/"right" keywords in their values.
var keywordProperties = map[string]bool{
	"float":        true,
	"clear":        true,
	"text-align":   true,
	"caption-side": true,
}

// boxShorthands take up to four values in top, right, bottom, left order.
var boxShorthands = map[string]bool{
	"margin":         true,
	"padding":        true,
	"border-width":   true,
	"border-style":   true,
	"border-color":   true,
	"inset":          true,
	"scroll-margin":  true,
	"scroll-padding": true,
}

// Converter swaps horizontal sides of declarations. Conversion is its own
// inverse, so the same converter turns right-to-left output back.
type Converter struct{}

// New returns converter.
func New() *Converter {
	return &Converter{}
}

// Convert returns mirrored property and value.
func (c *Converter) Convert(property, value string) (string, string) {
	switch {
	case strings.HasPrefix(property, "--"):
		return property, value
	case keywordProperties[property]:
		return property, swapKeywords(value)
	case boxShorthands[property]:
		return property, swapBox(value)
	case property == "border-radius":
		return property, swapRadius(value)
	}
	return swapSides(property), value
}

// swapSides swaps "left" and "right" parts of hyphenated name:
// margin-left, border-top-left-radius, left.
func swapSides(name string) string {
	parts := strings.Split(name, "-")
	changed := false
	for i, p := range parts {
		switch p {
		case "left":
			parts[i], changed = "right", true
		case "right":
			parts[i], changed = "left", true
		}
	}
	if !changed {
		return name
	}
	return strings.Join(parts, "-")
}

func swapKeywords(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "left":
		return "right"
	case "right":
		return "left"
	}
	return value
}

// swapBox swaps right and left of four value shorthand. Shorter forms are
// symmetric already.
func swapBox(value string) string {
	v := css.SplitValue(value)
	if len(v) != 4 {
		return value
	}
	return strings.Join([]string{v[0], v[3], v[2], v[1]}, " ")
}

// swapRadius mirrors corners: top-left with top-right and bottom-right with
// bottom-left, for both horizontal and vertical radii.
func swapRadius(value string) string {
	horizontal, vertical, slash := strings.Cut(value, "/")
	out := mirrorCorners(css.SplitValue(horizontal))
	if slash {
		out += " / " + mirrorCorners(css.SplitValue(vertical))
	}
	return out
}

func mirrorCorners(v []string) string {
	switch len(v) {
	case 2:
		// top-left/bottom-right, top-right/bottom-left
		v = []string{v[1], v[0]}
	case 3:
		// top-left, top-right/bottom-left, bottom-right
		v = []string{v[1], v[0], v[1], v[2]}
	case 4:
		v = []string{v[1], v[0], v[3], v[2]}
	}
	return strings.Join(v, " ")
}
