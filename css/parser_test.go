package css_test

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"aesthetic/common"
	"aesthetic/css"
)

func TestParser_AtomicRules(t *testing.T) {
	log := zap.NewNop()
	p := css.NewParser(log)

	input := []byte(`.a { margin: 0; }.b { padding: 6px 12px; }.c { color: rgba(0,0,0,0); }`)
	sheet := p.Parse(input, "test")

	rules := sheet.Rules()
	if len(rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(rules))
	}

	tests := []struct {
		selector string
		property string
		value    string
		raw      string
	}{
		{".a", "margin", "0", ".a { margin: 0; }"},
		{".b", "padding", "6px 12px", ".b { padding: 6px 12px; }"},
		{".c", "color", "rgba(0,0,0,0)", ".c { color: rgba(0,0,0,0); }"},
	}
	for i, tt := range tests {
		rule := rules[i]
		if rule.Selector != tt.selector {
			t.Errorf("rule %d: selector = %q, want %q", i, rule.Selector, tt.selector)
		}
		if rule.Raw != tt.raw {
			t.Errorf("rule %d: raw = %q, want %q", i, rule.Raw, tt.raw)
		}
		val, ok := rule.Property(tt.property)
		if !ok {
			t.Fatalf("rule %d: expected %s property", i, tt.property)
		}
		if val != tt.value {
			t.Errorf("rule %d: %s = %q, want %q", i, tt.property, val, tt.value)
		}
	}
	if len(sheet.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", sheet.Warnings)
	}
}

func TestParser_WhitespaceAndComments(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte("/* header */\n.a:hover ,\n  .a:focus {\n  color :  red  /* note */ ;\n  margin: 1px    2px\n}\n"))

	rules := sheet.Rules()
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	if rules[0].Selector != ".a:hover , .a:focus" {
		t.Errorf("selector = %q", rules[0].Selector)
	}
	if len(rules[0].Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(rules[0].Declarations))
	}
	if d := rules[0].Declarations[0]; d.Property != "color" || d.Value != "red" {
		t.Errorf("first declaration = %+v", d)
	}
	if d := rules[0].Declarations[1]; d.Property != "margin" || d.Value != "1px 2px" {
		t.Errorf("second declaration = %+v", d)
	}
}

func TestParser_NestedConditions(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	input := `@media (max-width: 1000px) { .a { display: block; } .b { display: inline-block; } @supports (display: grid) { .c { display: grid; } } }`
	sheet := p.Parse([]byte(input))

	if len(sheet.Items) != 1 || sheet.Items[0].Group == nil {
		t.Fatalf("expected single group, got %+v", sheet.Items)
	}
	media := sheet.Items[0].Group
	if media.Condition.Kind != common.ConditionKindMedia || media.Condition.Query != "(max-width: 1000px)" {
		t.Errorf("unexpected condition %+v", media.Condition)
	}
	if media.Raw != input {
		t.Errorf("raw = %q", media.Raw)
	}
	if len(media.Items) != 3 {
		t.Fatalf("expected 3 nested items, got %d", len(media.Items))
	}
	if media.Items[1].Rule == nil || media.Items[1].Rule.Selector != ".b" {
		t.Errorf("second item = %+v", media.Items[1])
	}
	supports := media.Items[2].Group
	if supports == nil {
		t.Fatal("expected nested @supports group")
	}
	if supports.Condition.Kind != common.ConditionKindSupports || supports.Condition.Query != "(display: grid)" {
		t.Errorf("unexpected nested condition %+v", supports.Condition)
	}
	if len(supports.Items) != 1 || supports.Items[0].Rule.Selector != ".c" {
		t.Errorf("unexpected nested items %+v", supports.Items)
	}
}

func TestParser_AtRules(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	input := `@import url("theme.css") screen;
@import 'reset.css';
@font-face { font-family: "Open Sans"; src: url("os.woff2") format("woff2"); }
@keyframes fade { from { opacity: 0; } to { opacity: 1; } }
:root { --primary: #fff; }`
	sheet := p.Parse([]byte(input))

	if len(sheet.Items) != 5 {
		t.Fatalf("expected 5 items, got %d (%v)", len(sheet.Items), sheet.Warnings)
	}

	imports := sheet.Imports()
	if len(imports) != 2 || imports[0] != "theme.css" || imports[1] != "reset.css" {
		t.Errorf("imports = %v", imports)
	}
	if got := sheet.Items[0].AtRule.Prelude; got != `url("theme.css") screen` {
		t.Errorf("import prelude = %q", got)
	}

	ff := sheet.Items[2].AtRule
	if ff == nil || ff.Name != "font-face" {
		t.Fatalf("expected font-face, got %+v", sheet.Items[2])
	}
	if ff.Identifier() != "Open Sans" {
		t.Errorf("font-face identifier = %q", ff.Identifier())
	}
	if len(ff.Declarations) != 2 {
		t.Errorf("expected 2 font-face declarations, got %d", len(ff.Declarations))
	}

	kf := sheet.Items[3].AtRule
	if kf == nil || kf.Name != "keyframes" || kf.Identifier() != "fade" {
		t.Fatalf("unexpected keyframes item %+v", sheet.Items[3])
	}
	if kf.Declarations != nil {
		t.Error("keyframes must not be parsed as declaration list")
	}

	root := sheet.Items[4].Rule
	if root == nil || root.Selector != ":root" {
		t.Fatalf("expected :root rule, got %+v", sheet.Items[4])
	}
	if d := root.Declarations[0]; !d.IsCustom() || d.Property != "--primary" || d.Value != "#fff" {
		t.Errorf("unexpected variable declaration %+v", d)
	}
}

func TestParser_StringsWithBraces(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`.a::before { content: "}{;"; } .b { color: red; }`))
	rules := sheet.Rules()
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}
	if v, _ := rules[0].Property("content"); v != `"}{;"` {
		t.Errorf("content = %q", v)
	}
}

func TestParser_MalformedInput(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`} .a { color: red; } garbage; .b { margin }`))
	rules := sheet.Rules()
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}
	if len(rules[1].Declarations) != 0 {
		t.Errorf("expected malformed declaration to be dropped, got %+v", rules[1].Declarations)
	}
	if len(sheet.Warnings) < 3 {
		t.Errorf("expected warnings for stray brace, statement and declaration, got %v", sheet.Warnings)
	}

	sheet = p.Parse([]byte(`.a { color: red; } .b { color: blue;`))
	if len(sheet.Rules()) != 1 {
		t.Errorf("expected unterminated rule to be dropped, got %d rules", len(sheet.Rules()))
	}
	found := false
	for _, w := range sheet.Warnings {
		if strings.Contains(w, css.ErrUnterminated.Error()) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected unterminated warning, got %v", sheet.Warnings)
	}
}

func TestRule_ClassSelector(t *testing.T) {
	tests := []struct {
		selector string
		class    string
		rest     string
		ok       bool
	}{
		{".a", "a", "", true},
		{".a0:hover", "a0", ":hover", true},
		{".c1x9 > li", "c1x9", " > li", true},
		{".a:hover, .a:focus", "a", ":hover,:focus", true},
		{".a:hover, .b:focus", "", "", false},
		{".a:not(.x, .y)", "a", ":not(.x, .y)", true},
		{".a[data-x='a,b']", "a", "[data-x='a,b']", true},
		{".a:is(h1, h2) > b, .a:hover", "a", ":is(h1, h2) > b,:hover", true},
		{":root", "", "", false},
		{"div", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			class, rest, ok := css.Rule{Selector: tt.selector}.ClassSelector()
			if ok != tt.ok || class != tt.class || rest != tt.rest {
				t.Errorf("ClassSelector() = (%q, %q, %v), want (%q, %q, %v)", class, rest, ok, tt.class, tt.rest, tt.ok)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	a := "@font-face {\n  font-family: \"A\";\n  src: url(a.woff) format(\"woff\"),  local(A);\n}"
	b := `@font-face{font-family:"A";src:url(a.woff) format("woff"),local(A);}`
	if css.Normalize(a) != css.Normalize(b) {
		t.Errorf("normalized forms differ:\n%s\n%s", css.Normalize(a), css.Normalize(b))
	}
	if got := css.Normalize(b); got != b {
		t.Errorf("Normalize() = %q, want %q", got, b)
	}
	if css.Normalize("@import 'a.css';") == css.Normalize("@import 'b.css';") {
		t.Error("different imports must not normalize to the same text")
	}
}

func TestStylesheet_String(t *testing.T) {
	p := css.NewParser(zap.NewNop())
	sheet := p.Parse([]byte(`@import "a.css";.a{margin:0}@media (min-width: 100px){.b{color:red;padding:1px}}`))

	want := `@import "a.css";

.a {
  margin: 0;
}

@media (min-width: 100px) {
  .b {
    color: red;
    padding: 1px;
  }
}
`
	if got := sheet.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestQuote(t *testing.T) {
	if got := css.Quote(`Font "X" \ Y`); got != `"Font \"X\" \\ Y"` {
		t.Errorf("Quote() = %s", got)
	}
}
