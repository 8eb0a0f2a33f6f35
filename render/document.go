package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"aesthetic/style"
)

// NamedRule is a style rule addressed by name in a document.
type NamedRule struct {
	Name string
	Rule style.Rule
}

// NamedRules keeps document order of named rules.
type NamedRules []NamedRule

// UnmarshalYAML decodes mapping of names to style rules.
func (nr *NamedRules) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("named rules must be a mapping at line %d", node.Line)
	}
	rules := make(NamedRules, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		var rule style.Rule
		if err := node.Content[i+1].Decode(&rule); err != nil {
			return fmt.Errorf("rule %q: %w", key.Value, err)
		}
		rules = append(rules, NamedRule{Name: key.Value, Rule: rule})
	}
	*nr = rules
	return nil
}

// Document is a style document: everything rendered by a single engine.
type Document struct {
	Title     string           `yaml:"title"`
	Lang      string           `yaml:"lang"`
	Imports   []style.Import   `yaml:"imports"`
	FontFaces []style.FontFace `yaml:"font_faces"`
	Keyframes NamedRules       `yaml:"keyframes"`
	Variables map[string]any   `yaml:"variables"`
	Rules     NamedRules       `yaml:"rules"`
	Grouped   NamedRules       `yaml:"grouped"`
	Body      string           `yaml:"body"`
}

// ErrEmptyDocument is returned for documents without anything to render.
var ErrEmptyDocument = errors.New("empty style document")

// ParseDocument decodes style document, unknown fields are errors.
func ParseDocument(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read style document: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	doc := &Document{}
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("unable to decode style document: %w", err)
	}
	// rules and grouped rules share class namespace
	for _, set := range [][]NamedRules{{doc.Keyframes}, {doc.Rules, doc.Grouped}} {
		seen := make(map[string]bool)
		for _, rules := range set {
			for _, r := range rules {
				if seen[r.Name] {
					return nil, fmt.Errorf("duplicate rule name %q", r.Name)
				}
				seen[r.Name] = true
			}
		}
	}
	return doc, nil
}
