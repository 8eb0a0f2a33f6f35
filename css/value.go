package css

import (
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// SplitValue splits declaration value into top level components separated
// by whitespace. Functions, brackets and strings stay whole, so
// "calc(1px + 2px) 0" yields two components.
func SplitValue(value string) []string {
	lexer := css.NewLexer(parse.NewInput(strings.NewReader(value)))

	var (
		parts   []string
		current strings.Builder
		nesting int
	)
	flush := func() {
		if current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
	}
	for {
		tt, text := lexer.Next()
		switch tt {
		case css.ErrorToken:
			flush()
			return parts
		case css.CommentToken:
			continue
		case css.WhitespaceToken:
			if nesting == 0 {
				flush()
				continue
			}
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			nesting++
		case css.RightParenthesisToken, css.RightBracketToken:
			if nesting > 0 {
				nesting--
			}
		}
		current.Write(text)
	}
}

// SplitSelectors splits selector list at top level commas. Commas inside of
// functional pseudo classes, attribute selectors and strings belong to the
// member they are in, so ":not(.x, .y)" stays whole. Members are trimmed,
// empty members are dropped.
func SplitSelectors(list string) []string {
	lexer := css.NewLexer(parse.NewInput(strings.NewReader(list)))

	var (
		parts   []string
		current strings.Builder
		nesting int
	)
	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			parts = append(parts, s)
		}
		current.Reset()
	}
	for {
		tt, text := lexer.Next()
		switch tt {
		case css.ErrorToken:
			flush()
			return parts
		case css.CommaToken:
			if nesting == 0 {
				flush()
				continue
			}
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			nesting++
		case css.RightParenthesisToken, css.RightBracketToken:
			if nesting > 0 {
				nesting--
			}
		}
		current.Write(text)
	}
}
