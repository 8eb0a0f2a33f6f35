package style

import (
	"go.uber.org/zap"

	"aesthetic/cache"
	"aesthetic/common"
	"aesthetic/css"
	"aesthetic/format"
)

// RenderRuleGrouped renders the whole rule tree under a single class name.
// Flat properties and variables form one block, nested selectors are chained
// to the same class and nested conditions go to conditions sheet. Class name
// is always derived from content unless given in options, so the same tree
// renders to the same class in every process. Selector, condition and
// direction context is a part of the class identity.
func (e *Engine) RenderRuleGrouped(rule Rule, opts Options) string {
	scope := cache.ScopeKey(format.SelectorKey(opts.Selector), opts.Conditions, e.effectiveDirection(opts))
	class := opts.ClassName
	key := cache.GroupKey(class) + scope
	if class == "" {
		class = e.classPrefix + "c" + cache.Hash(rule.canonical()+scope)
		// hashed name already carries the scope and has to match what
		// hydration restores from class rules
		key = cache.GroupKey(class)
	}
	if _, ok := e.cache.Read(key); ok {
		return class
	}
	e.renderGroup(class, rule, opts)
	e.cache.Write(key, cache.Item{ClassName: class, Rank: cache.NoRank})
	return class
}

func (e *Engine) renderGroup(class string, rule Rule, opts Options) {
	type nestedRule struct {
		rule Rule
		opts Options
	}
	var (
		decls  []css.Declaration
		nested []nestedRule
	)
	for _, p := range rule {
		sub, isRule := asRule(p.Value)
		switch {
		case isRule && common.IsConditionKey(p.Key):
			cond, ok := common.ParseCondition(p.Key)
			if !ok {
				e.log.Warn("Invalid condition, skipping", zap.String("key", p.Key))
				continue
			}
			nested = append(nested, nestedRule{sub, opts.withCondition(cond)})
		case isRule && isSelectorKey(p.Key):
			nested = append(nested, nestedRule{sub, opts.withSelector(format.ChainSelector(opts.Selector, p.Key))})
		case isRule:
			e.log.Warn("Unknown nested key, skipping", zap.String("key", p.Key))
		default:
			property := format.Property(p.Key)
			if format.IsCustomProperty(p.Key) {
				property = format.Variable(p.Key)
			}
			value, ok := format.Value(property, p.Value, opts.Unit, e.unitFn)
			if !ok {
				e.log.Warn("Invalid declaration value, skipping", zap.String("property", property), zap.Any("value", p.Value))
				continue
			}
			decls = append(decls, e.declarations(property, value, opts)...)
		}
	}

	if len(decls) > 0 {
		e.insertStyle(class, decls, opts)
	}
	for _, n := range nested {
		e.renderGroup(class, n.rule, n.opts)
	}
}
