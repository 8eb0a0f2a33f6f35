// Package hydrate restores engine state from markup produced by a previous
// render pass, so that rendering the same styles again is a cache hit.
package hydrate

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"aesthetic/cache"
	"aesthetic/common"
	"aesthetic/css"
	"aesthetic/format"
	"aesthetic/prefix"
	"aesthetic/sheet"
	"aesthetic/style"
)

// Attributes of persisted <style> elements.
const (
	AttrType         = "data-aesthetic-type"
	AttrHydrateIndex = "data-aesthetic-hydrate-index"
	AttrRuleIndex    = "data-aesthetic-rule-index"
)

var (
	rawTextRe    = regexp.MustCompile(`<(\\*)/`)
	escapedRawRe = regexp.MustCompile(`<\\(\\*)/`)
)

// EscapeRawText keeps rule text from closing the style element early: every
// "<" followed by backslashes and "/" gets one more backslash. Already
// escaped sequences stay distinguishable, so UnescapeRawText restores the
// exact text.
func EscapeRawText(s string) string {
	return rawTextRe.ReplaceAllString(s, `<\${1}/`)
}

// UnescapeRawText reverses EscapeRawText.
func UnescapeRawText(s string) string {
	return escapedRawRe.ReplaceAllString(s, `<${1}/`)
}

// Reconciler hydrates a single engine.
type Reconciler struct {
	engine    *style.Engine
	parser    *css.Parser
	direction common.Direction
	converter style.DirectionConverter
	log       *zap.Logger
}

// Option configures Reconciler.
type Option func(*Reconciler)

// WithDirection tells that persisted rules were rendered right-to-left by
// converter. Converter is applied again to recover authored declarations.
func WithDirection(dir common.Direction, conv style.DirectionConverter) Option {
	return func(r *Reconciler) {
		r.direction, r.converter = dir, conv
	}
}

// New creates reconciler for engine.
func New(engine *style.Engine, log *zap.Logger, opts ...Option) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Reconciler{
		engine: engine,
		parser: css.NewParser(log),
		log:    log.Named("hydrate"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// persisted is a single container as found in markup.
type persisted struct {
	typ       common.SheetType
	sheet     *css.Stylesheet
	lastIndex int
	ruleIndex int
}

// HydrateMarkup finds persisted style elements in markup and hydrates all
// of them. Error is returned only when markup cannot be read at all.
func (r *Reconciler) HydrateMarkup(rd io.Reader) (*Report, error) {
	doc, err := goquery.NewDocumentFromReader(rd)
	if err != nil {
		return nil, fmt.Errorf("unable to parse markup: %w", err)
	}

	report := &Report{}
	var sheets []persisted
	doc.Find("style[" + AttrType + "]").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr(AttrType)
		t, err := common.ParseSheetType(strings.TrimSpace(name))
		if err != nil {
			report.addf("skipping style element: %w", err)
			r.log.Warn("Skipping style element of unknown type", zap.String("type", name))
			return
		}
		sheets = append(sheets, persisted{
			typ:       t,
			sheet:     r.parser.Parse([]byte(UnescapeRawText(s.Text())), t.String()),
			lastIndex: r.intAttr(s, AttrHydrateIndex, -1, report),
			ruleIndex: r.intAttr(s, AttrRuleIndex, 0, report),
		})
	})
	if len(sheets) == 0 {
		r.log.Debug("No persisted style elements found")
	}
	report.merge(r.hydrate(sheets))
	return report, nil
}

func (r *Reconciler) intAttr(s *goquery.Selection, name string, def int, report *Report) int {
	v, ok := s.Attr(name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		report.addf("bad %s attribute %q: %w", name, v, err)
		return def
	}
	return n
}

// HydrateSheet hydrates single persisted container. lastIndex is index of
// the last rule in the container (-1 when unknown), ruleIndex is engine
// sequential class counter at the time of persisting.
func (r *Reconciler) HydrateSheet(t common.SheetType, text string, lastIndex, ruleIndex int) *Report {
	return r.hydrate([]persisted{{
		typ:       t,
		sheet:     r.parser.Parse([]byte(text), t.String()),
		lastIndex: lastIndex,
		ruleIndex: ruleIndex,
	}})
}

func (r *Reconciler) hydrate(sheets []persisted) *Report {
	report := &Report{}

	// Grouped rules span several rules and sheets under one class, only
	// classes owning a single rule can be reused as atomic declarations.
	owners := make(map[string]map[string]bool)
	for _, p := range sheets {
		countClasses(p.sheet.Items, "", owners)
	}

	for _, p := range sheets {
		sr := &SheetReport{Type: p.typ, RuleIndex: p.ruleIndex}
		report.Sheets = append(report.Sheets, sr)

		for _, w := range p.sheet.Warnings {
			report.addf("%s: %s", p.typ, w)
			r.log.Warn("Persisted rule skipped", zap.Stringer("sheet", p.typ), zap.String("reason", w))
		}
		r.walk(p.sheet.Items, nil, owners, sr, report)
		r.load(p, sr, report)
		r.engine.SetRuleIndex(p.ruleIndex)

		r.log.Debug("Sheet hydrated",
			zap.Stringer("sheet", p.typ),
			zap.Int("declarations", len(sr.Declarations)),
			zap.Int("existence", len(sr.Existence)),
			zap.Int("skipped", sr.Skipped))
	}
	return report
}

// countClasses records distinct rule contexts of every class. Vendor
// selector variants do not count, they accompany atomic rules.
func countClasses(items []css.Item, scope string, owners map[string]map[string]bool) {
	for _, item := range items {
		switch {
		case item.Group != nil:
			countClasses(item.Group.Items, scope+item.Group.Condition.String()+"|", owners)
		case item.Rule != nil:
			class, rest, ok := item.Rule.ClassSelector()
			if !ok || isVendorVariant(rest) {
				continue
			}
			if owners[class] == nil {
				owners[class] = make(map[string]bool)
			}
			owners[class][scope+rest] = true
		}
	}
}

func isVendorVariant(selector string) bool {
	return strings.Contains(selector, ":-webkit-") || strings.Contains(selector, ":-moz-") || strings.Contains(selector, ":-ms-")
}

func (r *Reconciler) walk(items []css.Item, conds []common.Condition, owners map[string]map[string]bool, sr *SheetReport, report *Report) {
	c := r.engine.Cache()
	for pos, item := range items {
		switch {
		case item.Group != nil:
			nested := append(conds[:len(conds):len(conds)], item.Group.Condition)
			r.walk(item.Group.Items, nested, owners, sr, report)

		case item.AtRule != nil:
			r.existence(cache.AtRuleKey(item.AtRule.Raw), item.AtRule.Identifier(), sr)

		case item.Rule != nil:
			rule := item.Rule
			class, rest, ok := rule.ClassSelector()
			if !ok {
				r.existence(cache.AtRuleKey(rule.Raw), rule.Selector, sr)
				continue
			}
			r.existence(cache.GroupKey(class), class, sr)
			if isVendorVariant(rest) || len(owners[class]) != 1 {
				continue
			}
			decl, ok := effective(rule.Declarations)
			if !ok {
				if len(rule.Declarations) == 0 {
					sr.Skipped++
					report.addf("%s: rule without declarations: %s", sr.Type, rule.Raw)
				}
				continue
			}
			property, value := decl.Property, decl.Value
			if r.direction == common.DirectionRtl && r.converter != nil && !decl.IsCustom() {
				property, value = r.converter.Convert(property, value)
			}
			key := cache.DeclarationKey(property, value, format.SelectorKey(rest), conds, r.direction)
			if existing, found := c.ReadMin(key, pos); found && existing.Rank == pos && existing.ClassName == class {
				continue
			}
			c.Write(key, cache.Item{ClassName: class, Rank: pos})
			sr.Declarations = append(sr.Declarations, Entry{Key: key, Class: class, Rank: pos})
		}
	}
}

// effective returns the single declaration of an atomic rule. Vendor
// prefixed duplicates collapse to the last (unprefixed) declaration.
func effective(decls []css.Declaration) (css.Declaration, bool) {
	if len(decls) == 0 {
		return css.Declaration{}, false
	}
	last := decls[len(decls)-1]
	for _, d := range decls[:len(decls)-1] {
		if prefix.Unprefixed(d.Property) != last.Property {
			return css.Declaration{}, false
		}
	}
	return last, true
}

func (r *Reconciler) existence(key, id string, sr *SheetReport) {
	c := r.engine.Cache()
	if _, ok := c.Read(key); ok {
		return
	}
	c.Write(key, cache.Item{ClassName: id, Rank: cache.NoRank})
	sr.Existence = append(sr.Existence, Entry{Key: key, Class: id, Rank: cache.NoRank})
}

// load makes engine container reflect persisted rules, so that further
// ranks continue after them.
func (r *Reconciler) load(p persisted, sr *SheetReport, report *Report) {
	c := r.engine.Sink().Sheet(p.typ)
	if c.Len() == 0 {
		sr.Loaded = r.loadItems(c, p.sheet.Items, report)
	}
	if p.lastIndex >= 0 && c.Len() != p.lastIndex+1 {
		report.addf("%s: container holds %d rules, persisted last index is %d", p.typ, c.Len(), p.lastIndex)
		r.log.Warn("Hydrated container size mismatch",
			zap.Stringer("sheet", p.typ), zap.Int("rules", c.Len()), zap.Int("last", p.lastIndex))
	}
}

func (r *Reconciler) loadItems(c sheet.Container, items []css.Item, report *Report) int {
	var loaded int
	for _, item := range items {
		kind := common.RuleKindStyle
		switch {
		case item.Group != nil:
			if gi, ok := c.(sheet.GroupInserter); ok {
				pos, err := gi.InsertGroup(item.Group.Condition, c.Len())
				if err != nil {
					report.addf("unable to load group %s: %w", item.Group.Condition, err)
					continue
				}
				if g, ok := c.Rule(pos).(sheet.NestedGroup); ok {
					loaded += 1 + r.loadItems(g, item.Group.Items, report)
				}
				continue
			}
			kind = common.RuleKindGroup
		case item.AtRule != nil:
			kind = common.RuleKindAtRule
			if item.AtRule.Name == "import" {
				kind = common.RuleKindImport
			}
		}

		if a, ok := c.(sheet.Adopter); ok {
			a.Adopt(kind, item.Raw())
			loaded++
			continue
		}
		if _, err := c.InsertRule(kind, item.Raw(), c.Len()); err != nil {
			report.addf("unable to load rule %q: %w", item.Raw(), err)
			continue
		}
		loaded++
	}
	return loaded
}
