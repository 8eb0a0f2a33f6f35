// Package style is the atomic CSS engine: it turns style objects into short
// class names, inserting every unique declaration into the rule sink once.
package style

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aesthetic/cache"
	"aesthetic/common"
	"aesthetic/css"
	"aesthetic/format"
	"aesthetic/sheet"
)

// Engine renders style rules into a sheet manager. It is not safe for
// concurrent use, use one engine per request or session.
type Engine struct {
	id    uuid.UUID
	sink  *sheet.Manager
	cache *cache.Cache
	log   *zap.Logger

	converter      DirectionConverter
	prefixer       VendorPrefixer
	unitFn         format.UnitFunc
	direction      common.Direction
	deterministic  bool
	vendorPrefixes bool
	classPrefix    string

	ruleIndex int
}

// New creates engine inserting into sink. When sink is nil transient
// mobile first sheets are used.
func New(sink *sheet.Manager, log *zap.Logger, opts ...Option) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if sink == nil {
		sink = sheet.NewTransientManager(common.MediaOrderMobileFirst, log)
	}
	id := uuid.New()
	e := &Engine{
		id:    id,
		sink:  sink,
		cache: cache.New(),
		log:   log.Named("engine").With(zap.String("engine", id.String())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ID returns unique engine instance id.
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// Cache returns engine class cache.
func (e *Engine) Cache() *cache.Cache {
	return e.cache
}

// Sink returns engine sheet manager.
func (e *Engine) Sink() *sheet.Manager {
	return e.sink
}

// RuleIndex returns number of sequential class names handed out so far.
func (e *Engine) RuleIndex() int {
	return e.ruleIndex
}

// SetRuleIndex restores sequential class name counter, never moving it back.
func (e *Engine) SetRuleIndex(index int) {
	if index > e.ruleIndex {
		e.ruleIndex = index
	}
}

// RenderRule renders every declaration of the rule as an atomic class and
// returns space separated class names in rule order.
func (e *Engine) RenderRule(rule Rule, opts Options) string {
	if opts.Rankings == nil {
		opts.Rankings = make(map[string]int)
	}
	opts.ClassName = ""
	return strings.Join(e.renderRule(rule, opts, nil), " ")
}

func (e *Engine) renderRule(rule Rule, opts Options, classes []string) []string {
	for _, p := range rule {
		nested, isRule := asRule(p.Value)
		switch {
		case isRule && common.IsConditionKey(p.Key):
			cond, ok := common.ParseCondition(p.Key)
			if !ok {
				e.log.Warn("Invalid condition, skipping", zap.String("key", p.Key))
				continue
			}
			classes = e.renderRule(nested, opts.withCondition(cond), classes)
		case isRule && isSelectorKey(p.Key):
			classes = e.renderRule(nested, opts.withSelector(p.Key), classes)
		case isRule:
			e.log.Warn("Unknown nested key, skipping", zap.String("key", p.Key))
		case format.IsCustomProperty(p.Key):
			if class := e.RenderVariable(p.Key, p.Value, opts); class != "" {
				classes = append(classes, class)
			}
		default:
			if class := e.RenderDeclaration(p.Key, p.Value, opts); class != "" {
				classes = append(classes, class)
			}
		}
	}
	return classes
}

// isSelectorKey reports whether key starts nested selector: pseudo classes
// and elements, attributes, combinators, universal and namespace selectors.
func isSelectorKey(key string) bool {
	return key != "" && strings.ContainsRune(":[>~+*|", rune(key[0]))
}

// RenderVariable renders custom property as an atomic class.
func (e *Engine) RenderVariable(name string, value any, opts Options) string {
	return e.render(format.Variable(name), value, opts)
}

// RenderDeclaration renders single declaration as an atomic class and
// returns its name. Empty string is returned for values which cannot be
// rendered.
func (e *Engine) RenderDeclaration(property string, value any, opts Options) string {
	return e.render(format.Property(property), value, opts)
}

func (e *Engine) render(property string, value any, opts Options) string {
	val, ok := format.Value(property, value, opts.Unit, e.unitFn)
	if !ok {
		e.log.Warn("Invalid declaration value, skipping", zap.String("property", property), zap.Any("value", value))
		return ""
	}

	dir := e.effectiveDirection(opts)
	key := cache.DeclarationKey(property, val, format.SelectorKey(opts.Selector), opts.Conditions, dir)
	ledger := ledgerKey(property, opts, dir)

	minimum, ranked := opts.Rankings[ledger]
	var (
		item  cache.Item
		found bool
	)
	if ranked {
		item, found = e.cache.ReadMin(key, minimum)
	} else {
		item, found = e.cache.Read(key)
	}

	if !found {
		class := opts.ClassName
		if class == "" {
			class = e.className(key, opts)
		}
		decls := e.declarations(property, val, opts)
		item = cache.Item{ClassName: class, Rank: e.insertStyle(class, decls, opts)}
		e.cache.Write(key, item)
		e.log.Debug("Inserted declaration", zap.String("key", key), zap.String("class", class), zap.Int("rank", item.Rank))
	}

	if opts.Rankings != nil && item.HasRank() {
		if current, ok := opts.Rankings[ledger]; !ok || item.Rank > current {
			opts.Rankings[ledger] = item.Rank
		}
	}
	return item.ClassName
}

// ledgerKey is property name for plain declarations. Ranks are positions
// within a single container, so nested selector and condition context is
// a part of the key.
func ledgerKey(property string, opts Options, dir common.Direction) string {
	if opts.Selector == "" && len(opts.Conditions) == 0 && dir == common.DirectionLtr {
		return property
	}
	return cache.DeclarationKey(property, "", format.SelectorKey(opts.Selector), opts.Conditions, dir)
}

func (e *Engine) effectiveDirection(opts Options) common.Direction {
	if opts.Direction == common.DirectionRtl {
		return common.DirectionRtl
	}
	return e.direction
}

// declarations converts and expands single declaration according to
// direction and vendor prefix settings.
func (e *Engine) declarations(property, value string, opts Options) []css.Declaration {
	if format.IsCustomProperty(property) {
		return []css.Declaration{{Property: property, Value: value}}
	}
	if e.converter != nil && e.effectiveDirection(opts) == common.DirectionRtl {
		property, value = e.converter.Convert(property, value)
	}
	if e.prefixer != nil && (opts.VendorPrefixes || e.vendorPrefixes) {
		if decls := e.prefixer.Prefix(property, value); len(decls) > 0 {
			return decls
		}
	}
	return []css.Declaration{{Property: property, Value: value}}
}

// insertStyle inserts style rule for class and returns rank of the main
// rule. Vendor selector variants go first as separate rules, the surface may
// reject them without affecting the main rule.
func (e *Engine) insertStyle(class string, decls []css.Declaration, opts Options) int {
	selector := format.Selector(class, opts.Selector)
	if e.prefixer != nil && (opts.VendorPrefixes || e.vendorPrefixes) {
		for _, variant := range e.prefixer.PrefixSelector(selector) {
			e.insert(format.StyleRule(variant, decls), opts)
		}
	}
	return e.insert(format.StyleRule(selector, decls), opts)
}

func (e *Engine) insert(text string, opts Options) int {
	if len(opts.Conditions) > 0 {
		return e.sink.InsertConditionRule(common.SheetTypeConditions, opts.Conditions, text)
	}
	return e.sink.InsertRule(opts.Type, common.RuleKindStyle, text)
}

func (e *Engine) className(key string, opts Options) string {
	if opts.Deterministic || e.deterministic {
		return e.hashedClassName(key)
	}
	return e.nextClassName()
}

// hashedClassName derives class from content key. Repeated insertions of
// the same key get a different name.
func (e *Engine) hashedClassName(key string) string {
	if n := e.cache.Count(key); n > 0 {
		key += "#" + strconv.Itoa(n)
	}
	return e.classPrefix + "c" + cache.Hash(key)
}

// nextClassName returns sequential class: a..z, a0..z0, a1..z1 and so on.
func (e *Engine) nextClassName() string {
	i := e.ruleIndex
	e.ruleIndex++
	name := string(rune('a' + i%26))
	if i >= 26 {
		name += strconv.Itoa(i/26 - 1)
	}
	return e.classPrefix + name
}
