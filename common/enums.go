// Package common keeps small shared vocabulary types so that formatter,
// sheets, engine and hydration agree on them without importing each other.
package common

// Writing direction of rendered declarations.
// ENUM(ltr, rtl)
type Direction int

// Category of a style sheet a rule is inserted into.
// ENUM(standard, global, conditions)
type SheetType int

// Kind of a rule as known at the call site which produced it.
// ENUM(import, at-rule, style, group)
type RuleKind int

// Kind of a conditional group rule.
// ENUM(media, supports)
type ConditionKind int

// Sort order of media query groups.
// ENUM(mobile-first, desktop-first)
type MediaOrder int

// Opposite returns the other writing direction.
func (d Direction) Opposite() Direction {
	if d == DirectionRtl {
		return DirectionLtr
	}
	return DirectionRtl
}

// IsAtRule reports whether rules of this kind are positioned in the at-rule
// block of a container (imports included).
func (k RuleKind) IsAtRule() bool {
	return k == RuleKindImport || k == RuleKindAtRule
}
