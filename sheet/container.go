// Package sheet implements the ordered target surface generated rules are
// inserted into, and the manager which decides where every rule goes.
package sheet

import (
	"errors"
	"strings"

	"aesthetic/common"
)

var (
	// ErrIndex is returned when insertion index is out of container bounds.
	ErrIndex = errors.New("insertion index out of range")
	// ErrRejected is returned when native surface refuses a rule.
	ErrRejected = errors.New("rule rejected by target surface")
)

// Rule is a single rule held by a container.
type Rule interface {
	Kind() common.RuleKind
	CSSText() string
}

// GroupRule is a conditional (@media, @supports) rule.
type GroupRule interface {
	Rule
	Condition() common.Condition
}

// Container is an ordered collection of native rules.
type Container interface {
	Len() int
	Rule(i int) Rule
	// InsertRule inserts rule text of the given kind at index and returns
	// the final position of the rule.
	InsertRule(kind common.RuleKind, text string, index int) (int, error)
	// CSSText serializes all rules of the container.
	CSSText() string
}

// GroupInserter is implemented by containers able to hold nested
// conditional groups which in turn accept rules.
type GroupInserter interface {
	InsertGroup(cond common.Condition, index int) (int, error)
}

// Adopter is implemented by containers bound to native sheets which may
// already hold rules the container does not know about.
type Adopter interface {
	Adopt(kind common.RuleKind, text string)
}

// NestedGroup is a conditional group which is itself a container.
type NestedGroup interface {
	GroupRule
	Container
}

// textRule is a rule known only by its text.
type textRule struct {
	kind common.RuleKind
	text string
}

func (r *textRule) Kind() common.RuleKind { return r.kind }
func (r *textRule) CSSText() string       { return r.text }

// flatGroup is a conditional group serialized into a single compound rule
// text, used by surfaces which cannot nest groups.
type flatGroup struct {
	textRule
	cond common.Condition
}

func (g *flatGroup) Condition() common.Condition { return g.cond }

// newRule creates text rule of the requested kind. Group texts keep their
// outermost condition so that they can still be ordered.
func newRule(kind common.RuleKind, text string) Rule {
	if kind == common.RuleKindGroup {
		prelude, _, _ := strings.Cut(text, "{")
		if cond, ok := common.ParseCondition(prelude); ok {
			return &flatGroup{textRule: textRule{kind: kind, text: text}, cond: cond}
		}
	}
	return &textRule{kind: kind, text: text}
}

// findGroup returns nested group of container matching condition exactly.
func findGroup(c Container, cond common.Condition) NestedGroup {
	for i := range c.Len() {
		if g, ok := c.Rule(i).(NestedGroup); ok && g.Condition() == cond {
			return g
		}
	}
	return nil
}
