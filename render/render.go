// Package render turns style documents into persisted markup, plain CSS or a
// human readable dump of engine sheets.
package render

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/xlab/treeprint"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"aesthetic/common"
	"aesthetic/config"
	"aesthetic/css"
	"aesthetic/direction"
	"aesthetic/hydrate"
	"aesthetic/ssr"
	"aesthetic/style"
)

// Result holds names produced by rendering a document.
type Result struct {
	Classes    map[string]string // class names by rule name
	Animations map[string]string // animation names by keyframes name
	Fonts      []string          // font family names in document order
	Imports    []string
	Inserted   int // rules added to engine sheets
}

// Apply renders everything document defines with engine. Broken parts are
// skipped and reported together, the rest is still rendered.
func Apply(e *style.Engine, doc *Document) (*Result, error) {
	res := &Result{
		Classes:    make(map[string]string, len(doc.Rules)+len(doc.Grouped)),
		Animations: make(map[string]string, len(doc.Keyframes)),
	}
	before := sheetsLen(e)

	var errs error
	for i, imp := range doc.Imports {
		if len(strings.TrimSpace(imp.Path)) == 0 {
			errs = multierr.Append(errs, fmt.Errorf("import %d has no path", i))
			continue
		}
		res.Imports = append(res.Imports, e.RenderImport(imp))
	}
	for i, ff := range doc.FontFaces {
		family, err := e.RenderFontFace(ff, style.Options{})
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("font face %d: %w", i, err))
			continue
		}
		res.Fonts = append(res.Fonts, family)
	}
	for _, kf := range doc.Keyframes {
		res.Animations[kf.Name] = e.RenderKeyframes(kf.Rule, kf.Name, style.Options{})
	}
	if len(doc.Variables) > 0 {
		e.SetRootVariables(doc.Variables)
	}
	for _, r := range doc.Rules {
		res.Classes[r.Name] = e.RenderRule(r.Rule, style.Options{})
	}
	for _, r := range doc.Grouped {
		res.Classes[r.Name] = e.RenderRuleGrouped(r.Rule, style.Options{})
	}

	res.Inserted = sheetsLen(e) - before
	return res, errs
}

func sheetsLen(e *style.Engine) int {
	var n int
	for _, t := range ssr.SheetOrder {
		n += e.Sink().Sheet(t).Len()
	}
	return n
}

// Prime hydrates engine from markup of a previous render so that rendering
// the same document again reuses persisted rules and class names.
func Prime(e *style.Engine, markup io.Reader, dir common.Direction, log *zap.Logger) (*hydrate.Report, error) {
	return hydrate.New(e, log, hydrate.WithDirection(dir, direction.New())).HydrateMarkup(markup)
}

// Write outputs rendered document in requested format.
func Write(w io.Writer, e *style.Engine, doc *Document, res *Result, f config.OutputFormat, page *config.PageConfig, log *zap.Logger) error {
	switch f {
	case config.OutputFormatMarkup:
		return writeMarkup(w, e, doc, res, page)
	case config.OutputFormatCss:
		return writeCSS(w, e, log)
	case config.OutputFormatTree:
		return writeTree(w, e, res)
	}
	return fmt.Errorf("unsupported output format %s", f)
}

func writeMarkup(w io.Writer, e *style.Engine, doc *Document, res *Result, page *config.PageConfig) error {
	tmpl, err := page.PageTemplate()
	if err != nil {
		return err
	}
	if len(tmpl) == 0 {
		tmpl = ssr.DefaultPage
	}
	styles, err := ssr.Render(e)
	if err != nil {
		return err
	}

	values := ssr.Values{
		Title:    page.Title,
		Lang:     page.Lang,
		Styles:   styles,
		Classes:  res.Classes,
		Body:     doc.Body,
		EngineID: e.ID().String(),
	}
	if len(doc.Title) > 0 {
		values.Title = doc.Title
	}
	if len(doc.Lang) > 0 {
		values.Lang = doc.Lang
	}

	out, err := ssr.Page("page", tmpl, values)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// writeCSS outputs sheets as indented CSS, one section per sheet.
func writeCSS(w io.Writer, e *style.Engine, log *zap.Logger) error {
	parser := css.NewParser(log)
	buf := new(bytes.Buffer)
	for _, t := range ssr.SheetOrder {
		c := e.Sink().Sheet(t)
		if c.Len() == 0 {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(buf, "/* %s */\n", t)
		sheet := parser.Parse([]byte(c.CSSText()), t.String())
		for _, warn := range sheet.Warnings {
			log.Warn("Rendered rule cannot be parsed back", zap.Stringer("sheet", t), zap.String("warning", warn))
		}
		if _, err := sheet.WriteTo(buf); err != nil {
			return err
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

type dumper interface {
	Dump() string
}

// writeTree outputs class names and rule positions of every sheet.
func writeTree(w io.Writer, e *style.Engine, res *Result) error {
	tree := treeprint.NewWithRoot("engine " + e.ID().String())

	classes := tree.AddMetaBranch(len(res.Classes), "classes")
	for _, name := range slices.Sorted(maps.Keys(res.Classes)) {
		classes.AddMetaNode(name, res.Classes[name])
	}
	if len(res.Animations) > 0 {
		anims := tree.AddMetaBranch(len(res.Animations), "animations")
		for _, name := range slices.Sorted(maps.Keys(res.Animations)) {
			anims.AddMetaNode(name, res.Animations[name])
		}
	}
	if len(res.Fonts) > 0 {
		fonts := tree.AddMetaBranch(len(res.Fonts), "fonts")
		for _, f := range res.Fonts {
			fonts.AddNode(f)
		}
	}
	tree.AddMetaNode(e.RuleIndex(), "rule index")

	if _, err := io.WriteString(w, tree.String()); err != nil {
		return err
	}
	for _, t := range ssr.SheetOrder {
		c := e.Sink().Sheet(t)
		text := ""
		if d, ok := c.(dumper); ok {
			text = d.Dump()
		}
		if _, err := fmt.Fprintf(w, "\n%s (%d):\n%s", t, c.Len(), text); err != nil {
			return err
		}
	}
	return nil
}
