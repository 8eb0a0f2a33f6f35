package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"aesthetic/common"
	"aesthetic/config"
	"aesthetic/sheet"
	"aesthetic/style"
)

const sampleDocument = `title: Buttons
lang: fr
imports:
  - path: reset.css
    url: true
font_faces:
  - family: Open Sans
    src: [fonts/open-sans.woff2]
keyframes:
  fade:
    from: {opacity: 0}
    to: {opacity: 1}
variables:
  primary: "#336699"
rules:
  button:
    display: flex
    padding: 4
    ":hover":
      color: red
    "@media (min-width: 600px)":
      padding: 8
  link:
    display: flex
    color: blue
grouped:
  card:
    margin: 0
    "> p":
      margin: 4
body: <main>content</main>
`

func newEngine() *style.Engine {
	log := zap.NewNop()
	return style.New(sheet.NewTransientManager(common.MediaOrderMobileFirst, log), log)
}

func mustParse(t *testing.T, text string) *Document {
	t.Helper()
	doc, err := ParseDocument(strings.NewReader(text))
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	return doc
}

func TestParseDocument(t *testing.T) {
	doc := mustParse(t, sampleDocument)

	if doc.Title != "Buttons" || doc.Lang != "fr" {
		t.Errorf("Title, Lang = %q, %q", doc.Title, doc.Lang)
	}
	if len(doc.Imports) != 1 || !doc.Imports[0].URL {
		t.Errorf("Imports = %+v", doc.Imports)
	}
	if len(doc.FontFaces) != 1 || doc.FontFaces[0].Family != "Open Sans" {
		t.Errorf("FontFaces = %+v", doc.FontFaces)
	}
	var names []string
	for _, r := range doc.Rules {
		names = append(names, r.Name)
	}
	if strings.Join(names, ",") != "button,link" {
		t.Errorf("rule order = %v", names)
	}
	if len(doc.Rules[0].Rule) != 4 || doc.Rules[0].Rule[2].Key != ":hover" {
		t.Errorf("button rule = %+v", doc.Rules[0].Rule)
	}
	if len(doc.Keyframes) != 1 || doc.Keyframes[0].Name != "fade" {
		t.Errorf("Keyframes = %+v", doc.Keyframes)
	}
	if len(doc.Grouped) != 1 || doc.Grouped[0].Name != "card" {
		t.Errorf("Grouped = %+v", doc.Grouped)
	}
}

func TestParseDocument_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		err     error
	}{
		{"empty", "  \n", ErrEmptyDocument},
		{"unknown field", "styles: {}\n", nil},
		{"rules not a mapping", "rules: [a, b]\n", nil},
		{"duplicate rule", "rules:\n  a: {color: red}\n  a: {color: blue}\n", nil},
		{"rule and group share names", "rules:\n  a: {color: red}\ngrouped:\n  a: {color: blue}\n", nil},
		{"duplicate keyframes", "keyframes:\n  k: {from: {opacity: 0}}\n  k: {to: {opacity: 1}}\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument(strings.NewReader(tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.err != nil && !errors.Is(err, tt.err) {
				t.Errorf("error = %v, want %v", err, tt.err)
			}
		})
	}
}

func TestParseDocument_KeyframesDoNotCollideWithRules(t *testing.T) {
	doc := mustParse(t, "keyframes:\n  fade: {from: {opacity: 0}}\nrules:\n  fade: {opacity: 1}\n")
	if len(doc.Keyframes) != 1 || len(doc.Rules) != 1 {
		t.Errorf("unexpected document %+v", doc)
	}
}

func TestApply(t *testing.T) {
	e := newEngine()
	res, err := Apply(e, mustParse(t, sampleDocument))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	button := strings.Fields(res.Classes["button"])
	link := strings.Fields(res.Classes["link"])
	if len(button) != 4 || len(link) != 2 {
		t.Fatalf("classes = %v", res.Classes)
	}
	if button[0] != link[0] {
		t.Errorf("same declaration must share class: %s != %s", button[0], link[0])
	}
	if res.Classes["card"] == "" || strings.Contains(res.Classes["card"], " ") {
		t.Errorf("grouped class = %q", res.Classes["card"])
	}
	if res.Animations["fade"] != "fade" {
		t.Errorf("Animations = %v", res.Animations)
	}
	if len(res.Fonts) != 1 || res.Fonts[0] != "Open Sans" {
		t.Errorf("Fonts = %v", res.Fonts)
	}
	if len(res.Imports) != 1 || res.Imports[0] != "reset.css" {
		t.Errorf("Imports = %v", res.Imports)
	}
	if res.Inserted != sheetsLen(e) || res.Inserted == 0 {
		t.Errorf("Inserted = %d, sheets hold %d", res.Inserted, sheetsLen(e))
	}

	// same document again is served from the cache
	again, err := Apply(e, mustParse(t, sampleDocument))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if again.Inserted != 0 {
		t.Errorf("second Apply() inserted %d rules", again.Inserted)
	}
	if again.Classes["button"] != res.Classes["button"] {
		t.Errorf("classes differ: %q != %q", again.Classes["button"], res.Classes["button"])
	}
}

func TestApply_Partial(t *testing.T) {
	doc := mustParse(t, `imports:
  - media: print
font_faces:
  - properties: {fontWeight: 400}
  - family: Mono
rules:
  a: {color: red}
`)
	e := newEngine()
	res, err := Apply(e, doc)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, style.ErrFontFaceIdentity) {
		t.Errorf("error = %v, want font face identity error", err)
	}
	if !strings.Contains(err.Error(), "import 0") {
		t.Errorf("error = %v, want import error", err)
	}
	if res.Classes["a"] == "" {
		t.Error("rules must be rendered despite errors")
	}
	if len(res.Fonts) != 1 || res.Fonts[0] != "Mono" {
		t.Errorf("Fonts = %v", res.Fonts)
	}
}

func TestWrite_Markup(t *testing.T) {
	e := newEngine()
	doc := mustParse(t, sampleDocument)
	res, err := Apply(e, doc)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	page := &config.PageConfig{Title: "Default", Lang: "en"}
	buf := new(bytes.Buffer)
	if err := Write(buf, e, doc, res, config.OutputFormatMarkup, page, zap.NewNop()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`<html lang="fr">`,
		"<title>Buttons</title>",
		`data-aesthetic-type="standard"`,
		`data-aesthetic-type="conditions"`,
		`class="` + res.Classes["button"] + `"`,
		"<main>content</main>",
		e.ID().String(),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markup does not contain %q:\n%s", want, out)
		}
	}
}

func TestWrite_MarkupTemplate(t *testing.T) {
	e := newEngine()
	doc := mustParse(t, "rules:\n  a: {color: red}\n")
	res, _ := Apply(e, doc)

	page := &config.PageConfig{Title: "Default", Lang: "en", Template: `{{ .Title }}|{{ .Classes.a }}`}
	buf := new(bytes.Buffer)
	if err := Write(buf, e, doc, res, config.OutputFormatMarkup, page, zap.NewNop()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got := buf.String(); got != "Default|a" {
		t.Errorf("Write() = %q", got)
	}

	page.Template = "{{ .Broken"
	if err := Write(new(bytes.Buffer), e, doc, res, config.OutputFormatMarkup, page, zap.NewNop()); err == nil {
		t.Error("expected template error")
	}
}

func TestWrite_CSS(t *testing.T) {
	e := newEngine()
	doc := mustParse(t, "rules:\n  a:\n    color: red\n    \"@media (min-width: 600px)\":\n      color: blue\n")
	res, _ := Apply(e, doc)

	buf := new(bytes.Buffer)
	if err := Write(buf, e, doc, res, config.OutputFormatCss, nil, zap.NewNop()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "/* global */") {
		t.Errorf("empty sheets must be skipped:\n%s", out)
	}
	for _, want := range []string{"/* standard */\n.a {\n  color: red;\n}\n", "/* conditions */\n", "@media (min-width: 600px)", "  color: blue;"} {
		if !strings.Contains(out, want) {
			t.Errorf("css does not contain %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "/* standard */") > strings.Index(out, "/* conditions */") {
		t.Errorf("conditions must follow standard sheet:\n%s", out)
	}
}

func TestWrite_Tree(t *testing.T) {
	e := newEngine()
	doc := mustParse(t, sampleDocument)
	res, _ := Apply(e, doc)

	buf := new(bytes.Buffer)
	if err := Write(buf, e, doc, res, config.OutputFormatTree, nil, zap.NewNop()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"engine " + e.ID().String(),
		"classes",
		"button",
		"animations",
		"Open Sans",
		"rule index",
		"\nglobal (",
		"\nstandard (",
		"\nconditions (",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("tree does not contain %q:\n%s", want, out)
		}
	}
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	e := newEngine()
	if err := Write(new(bytes.Buffer), e, &Document{}, &Result{}, config.OutputFormat(42), nil, zap.NewNop()); err == nil {
		t.Error("expected error")
	}
}

func TestPrime(t *testing.T) {
	doc := mustParse(t, sampleDocument)

	server := newEngine()
	want, err := Apply(server, doc)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	buf := new(bytes.Buffer)
	if err := Write(buf, server, doc, want, config.OutputFormatMarkup, &config.PageConfig{Lang: "en"}, zap.NewNop()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	client := newEngine()
	report, err := Prime(client, buf, common.DirectionLtr, zap.NewNop())
	if err != nil {
		t.Fatalf("Prime() error = %v", err)
	}
	if report.Err() != nil {
		t.Errorf("unexpected diagnostics:\n%s", report.Tree())
	}

	got, err := Apply(client, doc)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got.Inserted != 0 {
		t.Errorf("primed engine inserted %d rules", got.Inserted)
	}
	for name, class := range want.Classes {
		if got.Classes[name] != class {
			t.Errorf("class of %s = %q, want %q", name, got.Classes[name], class)
		}
	}
}
