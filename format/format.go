// Package format turns property names and values into CSS text and builds
// the textual form of rules the style engine inserts.
package format

import (
	"strconv"
	"strings"
	"unicode"
)

// UnitFunc returns unit suffix for numeric values of a property.
type UnitFunc func(property string) string

// DefaultUnit is appended to numeric values when no unit is configured.
const DefaultUnit = "px"

// unitless lists properties whose numeric values must not get a unit.
var unitless = map[string]bool{
	"animation-iteration-count": true,
	"border-image-outset":       true,
	"border-image-slice":        true,
	"border-image-width":        true,
	"box-flex":                  true,
	"box-flex-group":            true,
	"box-ordinal-group":         true,
	"column-count":              true,
	"columns":                   true,
	"fill-opacity":              true,
	"flex":                      true,
	"flex-grow":                 true,
	"flex-negative":             true,
	"flex-order":                true,
	"flex-positive":             true,
	"flex-shrink":               true,
	"flood-opacity":             true,
	"font-weight":               true,
	"grid-area":                 true,
	"grid-column":               true,
	"grid-column-end":           true,
	"grid-column-span":          true,
	"grid-column-start":         true,
	"grid-row":                  true,
	"grid-row-end":              true,
	"grid-row-span":             true,
	"grid-row-start":            true,
	"line-clamp":                true,
	"line-height":               true,
	"opacity":                   true,
	"order":                     true,
	"orphans":                   true,
	"stop-opacity":              true,
	"stroke-dasharray":          true,
	"stroke-dashoffset":         true,
	"stroke-miterlimit":         true,
	"stroke-opacity":            true,
	"stroke-width":              true,
	"tab-size":                  true,
	"widows":                    true,
	"z-index":                   true,
	"zoom":                      true,
}

// IsUnitless reports whether numeric values of the property are used as is.
func IsUnitless(property string) bool {
	return unitless[Property(property)]
}

// IsCustomProperty reports whether name is a CSS custom property (--name).
func IsCustomProperty(name string) bool {
	return strings.HasPrefix(name, "--")
}

// Property converts camel case property names to hyphen case. Vendor camel
// prefixes ("WebkitTransition", "msFlex") get a leading hyphen. Custom
// properties and names already containing hyphens are returned as is.
func Property(name string) string {
	if IsCustomProperty(name) || strings.ContainsRune(name, '-') {
		return name
	}
	var sb strings.Builder
	sb.Grow(len(name) + 4)
	for _, r := range name {
		if unicode.IsUpper(r) {
			sb.WriteByte('-')
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	out := sb.String()
	if strings.HasPrefix(out, "ms-") {
		out = "-" + out
	}
	return out
}

// Variable returns custom property name for a variable name: "primaryColor"
// and "--primary-color" both become "--primary-color".
func Variable(name string) string {
	name = strings.TrimPrefix(name, "--")
	return "--" + Property(name)
}

// Value converts a declaration value to CSS text. Strings are used as is
// (trimmed), numbers get a unit unless they are exactly zero or the property
// is unit-less. Unit resolution: explicit unit, then unitFn, then "px".
// Returns false for values which cannot be represented in CSS (nil,
// booleans, empty strings, other types).
func Value(property string, value any, unit string, unitFn UnitFunc) (string, bool) {
	var num string
	switch v := value.(type) {
	case string:
		v = strings.TrimSpace(v)
		return v, v != ""
	case int:
		num = strconv.Itoa(v)
	case int8:
		num = strconv.FormatInt(int64(v), 10)
	case int16:
		num = strconv.FormatInt(int64(v), 10)
	case int32:
		num = strconv.FormatInt(int64(v), 10)
	case int64:
		num = strconv.FormatInt(v, 10)
	case uint:
		num = strconv.FormatUint(uint64(v), 10)
	case uint8:
		num = strconv.FormatUint(uint64(v), 10)
	case uint16:
		num = strconv.FormatUint(uint64(v), 10)
	case uint32:
		num = strconv.FormatUint(uint64(v), 10)
	case uint64:
		num = strconv.FormatUint(v, 10)
	case float32:
		num = strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		num = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return "", false
	}

	property = Property(property)
	if num == "0" || num == "-0" {
		return "0", true
	}
	if IsCustomProperty(property) || unitless[property] {
		return num, true
	}
	if unit == "" && unitFn != nil {
		unit = unitFn(property)
	}
	if unit == "" {
		unit = DefaultUnit
	}
	return num + unit, true
}

// CollapseSpace collapses whitespace runs to a single space and trims.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
