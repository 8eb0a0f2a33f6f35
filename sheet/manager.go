package sheet

import (
	"go.uber.org/zap"

	"aesthetic/cache"
	"aesthetic/common"
	"aesthetic/format"
)

// Manager owns one container per sheet type and decides final position of
// every inserted rule. Within a container imports always precede other
// at-rules, which precede style rules and groups. Root level media groups
// are kept sorted, everything else stays in insertion order.
//
// Insert methods never fail: a rule the target surface rejects is logged
// and reported with cache.NoRank.
type Manager struct {
	sheets map[common.SheetType]Container
	order  common.MediaOrder
	log    *zap.Logger
}

// NewManager creates manager over provided containers. Missing sheet types
// get transient containers.
func NewManager(sheets map[common.SheetType]Container, order common.MediaOrder, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{
		sheets: make(map[common.SheetType]Container, len(sheets)),
		order:  order,
		log:    log.Named("sheet"),
	}
	for _, t := range []common.SheetType{common.SheetTypeGlobal, common.SheetTypeStandard, common.SheetTypeConditions} {
		if c, ok := sheets[t]; ok && c != nil {
			m.sheets[t] = c
			continue
		}
		m.sheets[t] = NewTransient()
	}
	return m
}

// NewTransientManager creates manager with transient containers only.
func NewTransientManager(order common.MediaOrder, log *zap.Logger) *Manager {
	return NewManager(nil, order, log)
}

// Sheet returns container for the sheet type.
func (m *Manager) Sheet(t common.SheetType) Container {
	return m.sheets[t]
}

// MediaOrder returns ordering used for root level media groups.
func (m *Manager) MediaOrder() common.MediaOrder {
	return m.order
}

// InsertRule inserts rule at its natural position: imports after existing
// imports, other at-rules after existing at-rules, style rules at the end.
func (m *Manager) InsertRule(t common.SheetType, kind common.RuleKind, text string) int {
	return m.InsertRuleAt(t, kind, text, -1)
}

// InsertRuleAt is like InsertRule, but style rules are placed at index when
// it is within container bounds. Imports and at-rules ignore index.
func (m *Manager) InsertRuleAt(t common.SheetType, kind common.RuleKind, text string, index int) int {
	c := m.sheets[t]
	switch kind {
	case common.RuleKindImport:
		index = leadingCount(c, func(k common.RuleKind) bool { return k == common.RuleKindImport })
	case common.RuleKindAtRule:
		index = leadingCount(c, common.RuleKind.IsAtRule)
	case common.RuleKindGroup:
		if g, ok := newRule(kind, text).(GroupRule); ok {
			index = m.groupIndex(c, g.Condition())
		} else {
			index = c.Len()
		}
	default:
		if index < 0 || index > c.Len() {
			index = c.Len()
		}
	}
	return m.insert(c, kind, text, index)
}

// InsertConditionRule inserts style rule wrapped by condition stack, reusing
// existing groups with exactly the same condition at every nesting level.
// Returned rank is position of the rule inside of its innermost group.
// Containers which cannot nest groups receive a single flattened rule.
func (m *Manager) InsertConditionRule(t common.SheetType, conds []common.Condition, text string) int {
	if len(conds) == 0 {
		return m.InsertRule(t, common.RuleKindStyle, text)
	}
	return m.insertNested(m.sheets[t], conds, text, true)
}

func (m *Manager) insertNested(c Container, conds []common.Condition, text string, root bool) int {
	cond := conds[0]

	group := findGroup(c, cond)
	if group == nil {
		gi, ok := c.(GroupInserter)
		if !ok {
			index := c.Len()
			if root {
				index = m.groupIndex(c, cond)
			}
			return m.insert(c, common.RuleKindGroup, format.WrapConditions(conds, text), index)
		}
		index := c.Len()
		if root {
			index = m.groupIndex(c, cond)
		}
		pos, err := gi.InsertGroup(cond, index)
		if err != nil {
			m.log.Warn("Unable to create conditional group", zap.Stringer("condition", cond), zap.Error(err))
			return cache.NoRank
		}
		if group, ok = c.Rule(pos).(NestedGroup); !ok {
			m.log.Warn("Conditional group is not a container", zap.Stringer("condition", cond))
			return cache.NoRank
		}
	}

	if len(conds) == 1 {
		return m.insert(group, common.RuleKindStyle, text, group.Len())
	}
	return m.insertNested(group, conds[1:], text, false)
}

func (m *Manager) insert(c Container, kind common.RuleKind, text string, index int) int {
	pos, err := c.InsertRule(kind, text, index)
	if err != nil {
		m.log.Warn("Rule was not inserted", zap.Stringer("kind", kind), zap.String("rule", text), zap.Error(err))
		return cache.NoRank
	}
	return pos
}

// groupIndex finds sorted position for a new root level group. Media groups
// go before the first media group ordered after them, other groups go last.
func (m *Manager) groupIndex(c Container, cond common.Condition) int {
	n := c.Len()
	if cond.Kind != common.ConditionKindMedia {
		return n
	}
	for i := range n {
		g, ok := c.Rule(i).(GroupRule)
		if !ok || g.Condition().Kind != common.ConditionKindMedia {
			continue
		}
		if CompareMedia(cond.Query, g.Condition().Query, m.order) < 0 {
			return i
		}
	}
	return n
}

func leadingCount(c Container, match func(common.RuleKind) bool) int {
	i := 0
	for i < c.Len() && match(c.Rule(i).Kind()) {
		i++
	}
	return i
}
