package sheet

import (
	"slices"
	"strings"

	"aesthetic/common"
	"aesthetic/utils/debug"
)

// Transient is an in-memory rule container used for server side rendering.
// It follows the same ordering rules as a live style sheet without any
// native binding and can nest conditional groups.
type Transient struct {
	rules []Rule
}

// NewTransient returns empty transient container.
func NewTransient() *Transient {
	return &Transient{}
}

func (t *Transient) Len() int {
	return len(t.rules)
}

func (t *Transient) Rule(i int) Rule {
	return t.rules[i]
}

func (t *Transient) InsertRule(kind common.RuleKind, text string, index int) (int, error) {
	if index < 0 || index > len(t.rules) {
		return -1, ErrIndex
	}
	t.rules = slices.Insert(t.rules, index, newRule(kind, text))
	return index, nil
}

func (t *Transient) InsertGroup(cond common.Condition, index int) (int, error) {
	if index < 0 || index > len(t.rules) {
		return -1, ErrIndex
	}
	t.rules = slices.Insert(t.rules, index, Rule(&TransientGroup{cond: cond}))
	return index, nil
}

// CSSText concatenates text of all rules.
func (t *Transient) CSSText() string {
	var sb strings.Builder
	for _, r := range t.rules {
		sb.WriteString(r.CSSText())
	}
	return sb.String()
}

// Dump returns indented human readable representation of the container tree.
func (t *Transient) Dump() string {
	tw := debug.NewTreeWriter()
	dumpContainer(tw, t, 0)
	return tw.String()
}

func dumpContainer(tw *debug.TreeWriter, c Container, depth int) {
	for i := range c.Len() {
		switch r := c.Rule(i).(type) {
		case NestedGroup:
			tw.Line(depth, "%d: %s", i, r.Condition())
			dumpContainer(tw, r, depth+1)
		default:
			tw.Rule(depth, i, r.Kind().String(), r.CSSText())
		}
	}
}

// TransientGroup is a conditional group of a transient container.
type TransientGroup struct {
	Transient
	cond common.Condition
}

func (g *TransientGroup) Kind() common.RuleKind {
	return common.RuleKindGroup
}

func (g *TransientGroup) Condition() common.Condition {
	return g.cond
}

// CSSText serializes the group with all nested rules.
func (g *TransientGroup) CSSText() string {
	var sb strings.Builder
	sb.WriteString(g.cond.String())
	sb.WriteString(" {")
	for _, r := range g.rules {
		sb.WriteByte(' ')
		sb.WriteString(r.CSSText())
	}
	sb.WriteString(" }")
	return sb.String()
}
