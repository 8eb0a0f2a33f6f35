package format

import (
	"testing"

	"aesthetic/common"
	"aesthetic/css"
)

func TestProperty(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"margin", "margin"},
		{"backgroundColor", "background-color"},
		{"zIndex", "z-index"},
		{"WebkitTransition", "-webkit-transition"},
		{"MozAppearance", "-moz-appearance"},
		{"msFlexAlign", "-ms-flex-align"},
		{"border-top-width", "border-top-width"},
		{"--primaryColor", "--primaryColor"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Property(tt.in); got != tt.want {
				t.Errorf("Property(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestVariable(t *testing.T) {
	if got := Variable("primaryColor"); got != "--primary-color" {
		t.Errorf("Variable() = %q", got)
	}
	if got := Variable("--spacing-df"); got != "--spacing-df" {
		t.Errorf("Variable() = %q", got)
	}
}

func TestValue(t *testing.T) {
	emUnit := func(property string) string {
		if property == "font-size" {
			return "em"
		}
		return ""
	}

	tests := []struct {
		name     string
		property string
		value    any
		unit     string
		unitFn   UnitFunc
		want     string
		ok       bool
	}{
		{"string passes through", "padding", " 6px 12px ", "", nil, "6px 12px", true},
		{"zero has no unit", "margin", 0, "", nil, "0", true},
		{"float zero has no unit", "margin", 0.0, "", nil, "0", true},
		{"default unit", "width", 100, "", nil, "100px", true},
		{"float value", "width", 1.5, "", nil, "1.5px", true},
		{"negative value", "marginTop", -4, "", nil, "-4px", true},
		{"explicit unit", "width", 10, "rem", emUnit, "10rem", true},
		{"unit function", "fontSize", 2, "", emUnit, "2em", true},
		{"unit function fallback", "height", 2, "", emUnit, "2px", true},
		{"unitless camel", "zIndex", 10, "", nil, "10", true},
		{"unitless hyphen", "line-height", 1.25, "", nil, "1.25", true},
		{"unitless opacity", "opacity", 0.5, "", nil, "0.5", true},
		{"flex grow", "flexGrow", 1, "", nil, "1", true},
		{"custom property", "--gap", 4, "", nil, "4", true},
		{"nil", "color", nil, "", nil, "", false},
		{"bool", "color", true, "", nil, "", false},
		{"empty string", "color", "  ", "", nil, "", false},
		{"slice", "color", []string{"red"}, "", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Value(tt.property, tt.value, tt.unit, tt.unitFn)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Value() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSelector(t *testing.T) {
	tests := []struct {
		selector string
		full     string
		key      string
	}{
		{"", ".a", ""},
		{":hover", ".a:hover", ":hover"},
		{"[disabled]", ".a[disabled]", "[disabled]"},
		{"> li", ".a > li", " > li"},
		{"+  p", ".a + p", " + p"},
		{"*", ".a *", " *"},
		{":hover, :focus", ".a:hover, .a:focus", ":hover,:focus"},
		{":not(.x, .y)", ".a:not(.x, .y)", ":not(.x, .y)"},
		{"[data-x='a,b']", ".a[data-x='a,b']", "[data-x='a,b']"},
		{":is(h1, h2) > a, :hover", ".a:is(h1, h2) > a, .a:hover", ":is(h1, h2) > a,:hover"},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			if got := Selector("a", tt.selector); got != tt.full {
				t.Errorf("Selector() = %q, want %q", got, tt.full)
			}
			if got := SelectorKey(tt.selector); got != tt.key {
				t.Errorf("SelectorKey() = %q, want %q", got, tt.key)
			}
			// remainder of the rendered selector must round trip to the key
			class, rest, ok := css.Rule{Selector: Selector("a", tt.selector)}.ClassSelector()
			if !ok || class != "a" || rest != tt.key {
				t.Errorf("ClassSelector() = (%q, %q, %v), want key %q", class, rest, ok, tt.key)
			}
		})
	}
}

func TestRuleFormatting(t *testing.T) {
	decls := []css.Declaration{{Property: "display", Value: "block"}, {Property: "margin", Value: "0"}}

	if got := StyleRule(".a", decls); got != ".a { display: block; margin: 0; }" {
		t.Errorf("StyleRule() = %q", got)
	}

	conds := []common.Condition{
		{Kind: common.ConditionKindMedia, Query: "(max-width: 100px)"},
		{Kind: common.ConditionKindSupports, Query: "(display: grid)"},
	}
	want := "@media (max-width: 100px) { @supports (display: grid) { .a { display: block; margin: 0; } } }"
	if got := WrapConditions(conds, StyleRule(".a", decls)); got != want {
		t.Errorf("WrapConditions() = %q", got)
	}

	if got := Import("theme.css", true, " screen "); got != `@import url("theme.css") screen;` {
		t.Errorf("Import() = %q", got)
	}
	if got := Import("a.css", false, ""); got != `@import "a.css";` {
		t.Errorf("Import() = %q", got)
	}

	if got := FontSource("fonts/Roboto.WOFF2"); got != `url("fonts/Roboto.WOFF2") format("woff2")` {
		t.Errorf("FontSource() = %q", got)
	}
	if got := FontSource("font.bin"); got != `url("font.bin")` {
		t.Errorf("FontSource() = %q", got)
	}
	if got := LocalSource("Roboto"); got != `local("Roboto")` {
		t.Errorf("LocalSource() = %q", got)
	}

	frames := []string{"from { opacity: 0; }", "to { opacity: 1; }"}
	if got := Keyframes("fade", frames); got != "@keyframes fade { from { opacity: 0; } to { opacity: 1; } }" {
		t.Errorf("Keyframes() = %q", got)
	}
	if got := AtRule("font-face", "", decls[:1]); got != "@font-face { display: block; }" {
		t.Errorf("AtRule() = %q", got)
	}
}

func TestChainSelector(t *testing.T) {
	tests := []struct {
		outer, nested string
		want          string
	}{
		{"", ":hover", ":hover"},
		{":hover", "", ":hover"},
		{":hover", "::before", ":hover::before"},
		{":hover, :focus", "> p", ":hover > p, :focus > p"},
		{":not(.x, .y)", ":hover, :focus", ":not(.x, .y):hover, :not(.x, .y):focus"},
	}
	for _, tt := range tests {
		if got := ChainSelector(tt.outer, tt.nested); got != tt.want {
			t.Errorf("ChainSelector(%q, %q) = %q, want %q", tt.outer, tt.nested, got, tt.want)
		}
	}
}
