package common

import (
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Condition is a single level of conditional nesting: "@media <query>" or
// "@supports <query>".
type Condition struct {
	Kind  ConditionKind
	Query string
}

// ParseCondition converts at-rule key text (for example "@media (max-width: 600px)")
// into a Condition. Whitespace and comments inside the query collapse into
// a single space.
func ParseCondition(text string) (Condition, bool) {
	lexer := css.NewLexer(parse.NewInput(strings.NewReader(text)))

	var (
		name  string
		query strings.Builder
		space bool
	)
	for {
		tt, data := lexer.Next()
		switch tt {
		case css.ErrorToken:
			if lexer.Err() != io.EOF {
				return Condition{}, false
			}
			return newCondition(name, query.String())
		case css.WhitespaceToken, css.CommentToken:
			space = query.Len() > 0
			continue
		case css.AtKeywordToken:
			if name == "" {
				name = strings.ToLower(string(data))
				continue
			}
		}
		if name == "" {
			return Condition{}, false
		}
		if space {
			query.WriteByte(' ')
			space = false
		}
		query.Write(data)
	}
}

func newCondition(name, query string) (Condition, bool) {
	if query == "" {
		return Condition{}, false
	}
	switch name {
	case "@media":
		return Condition{Kind: ConditionKindMedia, Query: query}, true
	case "@supports":
		return Condition{Kind: ConditionKindSupports, Query: query}, true
	}
	return Condition{}, false
}

// String returns the at-rule prelude of the condition.
func (c Condition) String() string {
	return "@" + c.Kind.String() + " " + c.Query
}

// IsConditionKey reports whether a rule key names a conditional block.
func IsConditionKey(key string) bool {
	return strings.HasPrefix(key, "@media") || strings.HasPrefix(key, "@supports")
}

// JoinConditions produces a stable textual form of a condition stack, used
// as a part of cache keys.
func JoinConditions(conds []Condition) string {
	if len(conds) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, c := range conds {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(c.String())
	}
	return sb.String()
}
