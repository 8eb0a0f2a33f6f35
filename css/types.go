package css

import (
	"fmt"
	"io"
	"strings"

	"aesthetic/common"
)

// cssEscapeDoubleQuoted escapes a string for use inside CSS double quotes.
// Backslashes and double quotes are escaped per CSS syntax: \" and \\.
func cssEscapeDoubleQuoted(s string) string {
	// Fast path: nothing to escape.
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Quote returns s as a double quoted CSS string.
func Quote(s string) string {
	return `"` + cssEscapeDoubleQuoted(s) + `"`
}

// Declaration is a single "property: value" pair.
type Declaration struct {
	Property string // Lower case property name, custom properties keep their case
	Value    string // Value text with whitespace runs collapsed
}

// IsCustom returns true for custom property (--name) declarations.
func (d Declaration) IsCustom() bool {
	return strings.HasPrefix(d.Property, "--")
}

// Rule represents a style rule (selector + declarations).
type Rule struct {
	Selector     string        // Selector text as written
	Declarations []Declaration // Declarations in source order
	Raw          string        // Exact source text of the rule
}

// Property returns the last value declared for a property.
func (r Rule) Property(name string) (string, bool) {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if r.Declarations[i].Property == name {
			return r.Declarations[i].Value, true
		}
	}
	return "", false
}

// ClassSelector splits a selector which starts with a class name into the
// class name and the remaining selector text. For selector lists every
// member must start with the same class, the remainders are returned joined
// by comma.
func (r Rule) ClassSelector() (class, rest string, ok bool) {
	var rests []string
	for _, part := range SplitSelectors(r.Selector) {
		name, remainder, found := splitClass(part)
		if !found || (class != "" && name != class) {
			return "", "", false
		}
		class = name
		rests = append(rests, remainder)
	}
	if class == "" {
		return "", "", false
	}
	return class, strings.Join(rests, ","), true
}

func splitClass(sel string) (string, string, bool) {
	if !strings.HasPrefix(sel, ".") {
		return "", "", false
	}
	end := 1
	for end < len(sel) {
		c := sel[end]
		if c == '-' || c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			end++
			continue
		}
		break
	}
	if end == 1 {
		return "", "", false
	}
	return sel[1:end], sel[end:], true
}

// AtRule represents any at-rule which is not a conditional group:
// @import, @font-face, @keyframes and so on.
type AtRule struct {
	Name         string        // Lower case name without "@" (e.g., "font-face")
	Prelude      string        // Text between the name and the block or semicolon
	Declarations []Declaration // Declarations for declaration-list blocks (@font-face)
	Raw          string        // Exact source text of the rule
}

// Identifier returns the name the at-rule is known by: import URL,
// keyframes name or font family.
func (a AtRule) Identifier() string {
	switch a.Name {
	case "import":
		return importURL(a.Prelude)
	case "font-face":
		for i := len(a.Declarations) - 1; i >= 0; i-- {
			if a.Declarations[i].Property == "font-family" {
				return unquote(a.Declarations[i].Value)
			}
		}
		return ""
	default:
		return strings.TrimSpace(a.Prelude)
	}
}

// Group represents a @media or @supports block with its nested items.
type Group struct {
	Condition common.Condition
	Items     []Item
	Raw       string // Exact source text of the group
}

// Item is a single item of a stylesheet or group.
// Exactly one of Rule, AtRule or Group is non-nil.
type Item struct {
	Rule   *Rule
	AtRule *AtRule
	Group  *Group
}

// Raw returns exact source text of the item.
func (i Item) Raw() string {
	switch {
	case i.Rule != nil:
		return i.Rule.Raw
	case i.AtRule != nil:
		return i.AtRule.Raw
	case i.Group != nil:
		return i.Group.Raw
	}
	return ""
}

// Stylesheet represents a parsed CSS stylesheet.
type Stylesheet struct {
	Items    []Item   // All top-level items in source order
	Warnings []string // Warnings for skipped or malformed input
}

// Rules returns all top-level style rules in source order.
func (s *Stylesheet) Rules() []Rule {
	var rules []Rule
	for _, item := range s.Items {
		if item.Rule != nil {
			rules = append(rules, *item.Rule)
		}
	}
	return rules
}

// Imports returns all @import URLs from the stylesheet in source order.
func (s *Stylesheet) Imports() []string {
	var urls []string
	for _, item := range s.Items {
		if item.AtRule != nil && item.AtRule.Name == "import" {
			urls = append(urls, item.AtRule.Identifier())
		}
	}
	return urls
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
// Output is indented, one declaration per line.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, item := range s.Items {
		n, err := writeItem(w, item, 0)
		total += int64(n)
		if err != nil {
			return total, err
		}

		// Add blank line between items (except after last)
		if i < len(s.Items)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the indented CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

func writeItem(w io.Writer, item Item, depth int) (int, error) {
	indent := strings.Repeat("  ", depth)
	switch {
	case item.Rule != nil:
		return writeBlock(w, indent, item.Rule.Selector, item.Rule.Declarations)
	case item.AtRule != nil:
		head := "@" + item.AtRule.Name
		if item.AtRule.Prelude != "" {
			head += " " + item.AtRule.Prelude
		}
		if item.AtRule.Declarations == nil && !strings.HasSuffix(strings.TrimSpace(item.AtRule.Raw), "}") {
			return fmt.Fprintf(w, "%s%s;\n", indent, head)
		}
		if item.AtRule.Declarations == nil {
			// rule list block (@keyframes) - keep as written
			return fmt.Fprintf(w, "%s%s\n", indent, strings.TrimSpace(item.AtRule.Raw))
		}
		return writeBlock(w, indent, head, item.AtRule.Declarations)
	case item.Group != nil:
		return writeGroup(w, item.Group, depth)
	}
	return 0, nil
}

// writeBlock writes a block with one declaration per line.
func writeBlock(w io.Writer, indent, head string, decls []Declaration) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s%s {\n", indent, head)
	total += n
	if err != nil {
		return total, err
	}
	for _, d := range decls {
		n, err = fmt.Fprintf(w, "%s  %s: %s;\n", indent, d.Property, d.Value)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprintf(w, "%s}\n", indent)
	total += n
	return total, err
}

// writeGroup writes a conditional group block to w.
func writeGroup(w io.Writer, g *Group, depth int) (int, error) {
	var total int
	indent := strings.Repeat("  ", depth)
	n, err := fmt.Fprintf(w, "%s%s {\n", indent, g.Condition.String())
	total += n
	if err != nil {
		return total, err
	}
	for _, item := range g.Items {
		n, err = writeItem(w, item, depth+1)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprintf(w, "%s}\n", indent)
	total += n
	return total, err
}
