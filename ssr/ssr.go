// Package ssr serializes engine sheets into markup which a later render pass
// hydrates from.
package ssr

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strconv"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"aesthetic/common"
	"aesthetic/hydrate"
	"aesthetic/style"
)

//go:embed page.html.tmpl
var DefaultPage string

// SheetOrder is document order of persisted sheets: later sheets win.
var SheetOrder = []common.SheetType{
	common.SheetTypeGlobal,
	common.SheetTypeStandard,
	common.SheetTypeConditions,
}

// WriteStyles writes one <style> element per engine sheet. Every element
// carries sheet type, index of its last rule and engine rule counter.
func WriteStyles(w io.Writer, e *style.Engine) error {
	for _, t := range SheetOrder {
		c := e.Sink().Sheet(t)
		node := &html.Node{
			Type:     html.ElementNode,
			Data:     "style",
			DataAtom: atom.Style,
			Attr: []html.Attribute{
				{Key: "type", Val: "text/css"},
				{Key: hydrate.AttrType, Val: t.String()},
				{Key: hydrate.AttrHydrateIndex, Val: strconv.Itoa(c.Len() - 1)},
				{Key: hydrate.AttrRuleIndex, Val: strconv.Itoa(e.RuleIndex())},
			},
		}
		node.AppendChild(&html.Node{Type: html.TextNode, Data: hydrate.EscapeRawText(c.CSSText())})
		if err := html.Render(w, node); err != nil {
			return fmt.Errorf("unable to render %s sheet: %w", t, err)
		}
	}
	return nil
}

// Render returns persisted markup of engine sheets.
func Render(e *style.Engine) (string, error) {
	buf := new(bytes.Buffer)
	if err := WriteStyles(buf, e); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Values holds variables available for page template expansion.
type Values struct {
	Title    string
	Lang     string
	Styles   string            // persisted <style> elements
	Classes  map[string]string // rendered class names by rule name
	Body     string
	EngineID string
}

// Page expands page shell template.
func Page(name, tmpl string, values Values) (string, error) {
	funcMap := sprig.FuncMap()

	t, err := template.New(name).Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("unable to parse page template %s: %w", name, err)
	}

	buf := new(bytes.Buffer)
	if err := t.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
