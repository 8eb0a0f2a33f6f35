package common

import "testing"

func TestParseCondition(t *testing.T) {
	tests := []struct {
		text  string
		want  Condition
		valid bool
	}{
		{"@media (max-width: 600px)", Condition{Kind: ConditionKindMedia, Query: "(max-width: 600px)"}, true},
		{"  @MEDIA   screen  and\t(min-width:  1px) ", Condition{Kind: ConditionKindMedia, Query: "screen and (min-width: 1px)"}, true},
		{"@media(min-width: 1px)", Condition{Kind: ConditionKindMedia, Query: "(min-width: 1px)"}, true},
		{"@media /* wide */ screen", Condition{Kind: ConditionKindMedia, Query: "screen"}, true},
		{"@supports (display: grid)", Condition{Kind: ConditionKindSupports, Query: "(display: grid)"}, true},
		{`@supports (content: "a  b")`, Condition{Kind: ConditionKindSupports, Query: `(content: "a  b")`}, true},
		{"@media", Condition{}, false},
		{"@media   ", Condition{}, false},
		{"@container (min-width: 1px)", Condition{}, false},
		{"media screen", Condition{}, false},
		{"", Condition{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseCondition(tt.text)
		if ok != tt.valid || got != tt.want {
			t.Errorf("ParseCondition(%q) = (%+v, %v), want (%+v, %v)", tt.text, got, ok, tt.want, tt.valid)
		}
	}
}

func TestCondition_String(t *testing.T) {
	c, ok := ParseCondition("@supports  not (display:grid)")
	if !ok {
		t.Fatal("expected valid condition")
	}
	if got := c.String(); got != "@supports not (display:grid)" {
		t.Errorf("String() = %q", got)
	}
	if got := JoinConditions([]Condition{c, {Kind: ConditionKindMedia, Query: "print"}}); got != "@supports not (display:grid)|@media print" {
		t.Errorf("JoinConditions() = %q", got)
	}
}
