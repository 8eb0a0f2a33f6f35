package style

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Property is a single entry of a style rule. Value is either a scalar
// (string or number) or a nested Rule for selector and condition keys.
type Property struct {
	Key   string
	Value any
}

// Rule is an ordered style object. Order of properties is significant: later
// declarations of the same property must win, so maps cannot be used.
type Rule []Property

// UnmarshalYAML decodes mapping node keeping document order of keys.
func (r *Rule) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("style rule must be a mapping, got %s at line %d", kindName(node.Kind), node.Line)
	}
	rule := make(Rule, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind == yaml.AliasNode {
			value = value.Alias
		}
		if value.Kind == yaml.MappingNode {
			var nested Rule
			if err := value.Decode(&nested); err != nil {
				return fmt.Errorf("unable to decode %q: %w", key.Value, err)
			}
			rule = append(rule, Property{Key: key.Value, Value: nested})
			continue
		}
		var v any
		if err := value.Decode(&v); err != nil {
			return fmt.Errorf("unable to decode %q: %w", key.Value, err)
		}
		rule = append(rule, Property{Key: key.Value, Value: v})
	}
	*r = rule
	return nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	}
	return "node " + strconv.Itoa(int(k))
}

// FromMap converts unordered map into a rule with keys sorted, nested maps
// are converted recursively.
func FromMap(m map[string]any) Rule {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	rule := make(Rule, 0, len(m))
	for _, k := range keys {
		v := m[k]
		if nested, ok := v.(map[string]any); ok {
			v = FromMap(nested)
		}
		rule = append(rule, Property{Key: k, Value: v})
	}
	return rule
}

// asRule returns nested rule value.
func asRule(v any) (Rule, bool) {
	switch r := v.(type) {
	case Rule:
		return r, true
	case map[string]any:
		return FromMap(r), true
	}
	return nil, false
}

// canonical returns stable textual form of the rule tree used for content
// hashing.
func (r Rule) canonical() string {
	var sb strings.Builder
	r.writeCanonical(&sb)
	return sb.String()
}

func (r Rule) writeCanonical(sb *strings.Builder) {
	sb.WriteByte('{')
	for _, p := range r {
		sb.WriteString(strconv.Quote(p.Key))
		sb.WriteByte(':')
		if nested, ok := asRule(p.Value); ok {
			nested.writeCanonical(sb)
		} else {
			fmt.Fprintf(sb, "%T=%v", p.Value, p.Value)
		}
		sb.WriteByte(';')
	}
	sb.WriteByte('}')
}
