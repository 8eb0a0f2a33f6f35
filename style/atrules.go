package style

import (
	"errors"
	"slices"
	"strings"

	"go.uber.org/zap"

	"aesthetic/cache"
	"aesthetic/common"
	"aesthetic/css"
	"aesthetic/format"
)

// ErrFontFaceIdentity is returned for font faces with neither family nor
// sources: there is nothing to identify such face by.
var ErrFontFaceIdentity = errors.New("font face requires family or sources")

// FontFace describes @font-face rule.
type FontFace struct {
	Family     string   `yaml:"family"`
	Local      []string `yaml:"local"`
	SrcPaths   []string `yaml:"src"`
	Properties Rule     `yaml:"properties"` // font-weight, font-display and so on
}

// Import describes @import rule.
type Import struct {
	Path  string `yaml:"path"`
	URL   bool   `yaml:"url"`
	Media string `yaml:"media"`
}

// RenderImport inserts @import once and returns its path.
func (e *Engine) RenderImport(imp Import) string {
	e.insertOnce(common.RuleKindImport, format.Import(imp.Path, imp.URL, imp.Media), imp.Path)
	return imp.Path
}

// RenderFontFace inserts @font-face once and returns font family name to
// use in font-family declarations. Faces without family get a synthesized
// one derived from their content.
func (e *Engine) RenderFontFace(ff FontFace, opts Options) (string, error) {
	family := strings.TrimSpace(ff.Family)
	if family == "" && len(ff.Local) == 0 && len(ff.SrcPaths) == 0 {
		return "", ErrFontFaceIdentity
	}

	var sources []string
	for _, name := range ff.Local {
		sources = append(sources, format.LocalSource(name))
	}
	for _, p := range ff.SrcPaths {
		sources = append(sources, format.FontSource(p))
	}

	var body []css.Declaration
	if len(sources) > 0 {
		body = append(body, css.Declaration{Property: "src", Value: strings.Join(sources, ", ")})
	}
	body = append(body, e.flatDeclarations(ff.Properties, opts)...)

	if family == "" {
		family = "ff" + cache.Hash(format.Block(body))
	}
	decls := append([]css.Declaration{{Property: "font-family", Value: css.Quote(family)}}, body...)

	e.insertOnce(common.RuleKindAtRule, format.AtRule("font-face", "", decls), family)
	return family, nil
}

// RenderKeyframes inserts @keyframes once and returns animation name. Frames
// map frame selectors ("from", "50%") to their declarations. Without explicit
// name one is derived from content.
func (e *Engine) RenderKeyframes(frames Rule, name string, opts Options) string {
	var texts []string
	for _, f := range frames {
		rule, ok := asRule(f.Value)
		if !ok {
			e.log.Warn("Keyframe must be a rule, skipping", zap.String("frame", f.Key))
			continue
		}
		texts = append(texts, format.StyleRule(format.CollapseSpace(f.Key), e.flatDeclarations(rule, opts)))
	}

	if name = strings.TrimSpace(name); name == "" {
		name = "kf" + cache.Hash(strings.Join(texts, " "))
	}
	e.insertOnce(common.RuleKindAtRule, format.Keyframes(name, texts), name)
	return name
}

// SetRootVariables inserts :root rule with custom properties, sorted by name.
func (e *Engine) SetRootVariables(vars map[string]any) {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	slices.Sort(names)

	var decls []css.Declaration
	for _, name := range names {
		property := format.Variable(name)
		value, ok := format.Value(property, vars[name], "", e.unitFn)
		if !ok {
			e.log.Warn("Invalid variable value, skipping", zap.String("variable", property), zap.Any("value", vars[name]))
			continue
		}
		decls = append(decls, css.Declaration{Property: property, Value: value})
	}
	if len(decls) == 0 {
		return
	}
	e.insertOnce(common.RuleKindStyle, format.StyleRule(":root", decls), ":root")
}

// flatDeclarations formats a rule which may hold declarations only.
func (e *Engine) flatDeclarations(rule Rule, opts Options) []css.Declaration {
	var decls []css.Declaration
	for _, p := range rule {
		if _, nested := asRule(p.Value); nested {
			e.log.Warn("Nested rules are not allowed here, skipping", zap.String("key", p.Key))
			continue
		}
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
	return decls
}

// insertOnce inserts global rule unless rule with the same normalized text
// was inserted or hydrated before.
func (e *Engine) insertOnce(kind common.RuleKind, text, identifier string) {
	key := cache.AtRuleKey(text)
	if _, ok := e.cache.Read(key); ok {
		return
	}
	rank := e.sink.InsertRule(common.SheetTypeGlobal, kind, text)
	e.cache.Write(key, cache.Item{ClassName: identifier, Rank: cache.NoRank})
	e.log.Debug("Inserted global rule", zap.Stringer("kind", kind), zap.String("id", identifier), zap.Int("rank", rank))
}
