package css

import (
	"bytes"
	"errors"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"

	"aesthetic/common"
)

// ErrUnterminated is reported when input ends inside of a block.
var ErrUnterminated = errors.New("unterminated block")

// Parser parses CSS stylesheets into structured items keeping exact source
// text of every top-level and nested item.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Items:    make([]Item, 0),
		Warnings: make([]string, 0),
	}

	// Log parsing start with source identifier if provided
	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	sheet.Items = p.parseItems(data, sheet)
	return sheet
}

// block is a single top-level construct of some CSS text: either a statement
// terminated by semicolon or a prelude followed by a braced body.
type block struct {
	prelude   string // prelude with comments removed and whitespace collapsed
	body      []byte // exact text between the braces
	raw       string // exact text of the whole block
	statement bool
}

// splitBlocks cuts CSS text into top-level blocks. Strings, comments and
// nested braces are handled by the tokenizer so braces inside of them do not
// confuse block boundaries.
func splitBlocks(data []byte) ([]block, []string, error) {
	lexer := css.NewLexer(parse.NewInput(bytes.NewReader(data)))

	var (
		blocks   []block
		warnings []string
		raw      bytes.Buffer
		body     bytes.Buffer
		prelude  collapser
		depth    int
	)

	reset := func() {
		raw.Reset()
		body.Reset()
		prelude.reset()
	}

	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return blocks, warnings, err
			}
			if depth > 0 {
				return blocks, warnings, ErrUnterminated
			}
			if s := strings.TrimSpace(prelude.String()); s != "" {
				warnings = append(warnings, "dangling text at the end of input: "+s)
			}
			return blocks, warnings, nil
		}

		if depth == 0 && raw.Len() == 0 && (tt == css.WhitespaceToken || tt == css.CommentToken || tt == css.CDOToken || tt == css.CDCToken) {
			continue
		}
		raw.Write(text)

		switch {
		case depth == 0 && tt == css.LeftBraceToken:
			depth++
		case depth == 0 && tt == css.SemicolonToken:
			blocks = append(blocks, block{
				prelude:   prelude.String(),
				raw:       strings.TrimSpace(raw.String()),
				statement: true,
			})
			reset()
		case depth == 0 && tt == css.RightBraceToken:
			warnings = append(warnings, "unbalanced closing brace after: "+prelude.String())
			reset()
		case depth == 0:
			prelude.add(tt, text)
		case tt == css.LeftBraceToken:
			depth++
			body.Write(text)
		case tt == css.RightBraceToken:
			depth--
			if depth == 0 {
				blocks = append(blocks, block{
					prelude: prelude.String(),
					body:    bytes.Clone(body.Bytes()),
					raw:     strings.TrimSpace(raw.String()),
				})
				reset()
				continue
			}
			body.Write(text)
		default:
			body.Write(text)
		}
	}
}

// parseItems parses a sequence of blocks (stylesheet or group body).
func (p *Parser) parseItems(data []byte, sheet *Stylesheet) []Item {
	blocks, warnings, err := splitBlocks(data)
	for _, w := range warnings {
		sheet.Warnings = append(sheet.Warnings, w)
		p.log.Debug("CSS warning", zap.String("warning", w))
	}
	if err != nil {
		sheet.Warnings = append(sheet.Warnings, "CSS parse error: "+err.Error())
		p.log.Debug("CSS parse error", zap.Error(err))
	}

	items := make([]Item, 0, len(blocks))
	for _, b := range blocks {
		if item, ok := p.parseBlock(b, sheet); ok {
			items = append(items, item)
		}
	}
	return items
}

// declarationBlocks lists at-rules whose body is a declaration list rather
// than a list of rules.
var declarationBlocks = map[string]bool{
	"font-face":     true,
	"page":          true,
	"counter-style": true,
	"property":      true,
	"viewport":      true,
}

func (p *Parser) parseBlock(b block, sheet *Stylesheet) (Item, bool) {
	if !strings.HasPrefix(b.prelude, "@") {
		if b.statement || b.prelude == "" {
			sheet.Warnings = append(sheet.Warnings, "malformed rule: "+b.raw)
			p.log.Debug("Skipping malformed rule", zap.String("rule", b.raw))
			return Item{}, false
		}
		return Item{Rule: &Rule{
			Selector:     b.prelude,
			Declarations: p.parseDeclarations(b.body, sheet),
			Raw:          b.raw,
		}}, true
	}

	name, rest := atRuleName(b.prelude)
	switch name {
	case "media", "supports":
		cond, ok := common.ParseCondition(b.prelude)
		if !ok || b.statement {
			sheet.Warnings = append(sheet.Warnings, "malformed conditional rule: "+b.raw)
			p.log.Debug("Skipping malformed conditional rule", zap.String("rule", b.raw))
			return Item{}, false
		}
		return Item{Group: &Group{
			Condition: cond,
			Items:     p.parseItems(b.body, sheet),
			Raw:       b.raw,
		}}, true
	case "":
		sheet.Warnings = append(sheet.Warnings, "malformed at-rule: "+b.raw)
		p.log.Debug("Skipping malformed at-rule", zap.String("rule", b.raw))
		return Item{}, false
	}

	at := &AtRule{Name: name, Prelude: rest, Raw: b.raw}
	if !b.statement && declarationBlocks[name] {
		at.Declarations = p.parseDeclarations(b.body, sheet)
	}
	if name == "import" {
		p.log.Debug("Parsed @import", zap.String("url", at.Identifier()))
	}
	return Item{AtRule: at}, true
}

// atRuleName splits at-rule prelude into lower case name and the remainder.
func atRuleName(prelude string) (string, string) {
	s := strings.TrimPrefix(prelude, "@")
	end := strings.IndexFunc(s, func(r rune) bool {
		return !(r == '-' || r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'))
	})
	if end < 0 {
		end = len(s)
	}
	return strings.ToLower(s[:end]), strings.TrimSpace(s[end:])
}

// parseDeclarations parses a declaration list. Semicolons and colons nested
// in functions, brackets or blocks do not split declarations.
func (p *Parser) parseDeclarations(body []byte, sheet *Stylesheet) []Declaration {
	lexer := css.NewLexer(parse.NewInput(bytes.NewReader(body)))

	var (
		decls    []Declaration
		property collapser
		value    collapser
		inValue  bool
		nesting  int
	)

	flush := func() {
		prop, val := strings.TrimSpace(property.String()), strings.TrimSpace(value.String())
		switch {
		case prop == "" && val == "":
		case !inValue || prop == "":
			sheet.Warnings = append(sheet.Warnings, "malformed declaration: "+prop+val)
			p.log.Debug("Skipping malformed declaration", zap.String("declaration", prop+val))
		default:
			if !strings.HasPrefix(prop, "--") {
				prop = strings.ToLower(prop)
			}
			decls = append(decls, Declaration{Property: prop, Value: val})
		}
		property.reset()
		value.reset()
		inValue = false
	}

	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			flush()
			return decls
		}
		switch tt {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken, css.LeftBraceToken:
			nesting++
		case css.RightParenthesisToken, css.RightBracketToken, css.RightBraceToken:
			nesting--
		case css.SemicolonToken:
			if nesting == 0 {
				flush()
				continue
			}
		case css.ColonToken:
			if nesting == 0 && !inValue {
				inValue = true
				continue
			}
		}
		if inValue {
			value.add(tt, text)
		} else {
			property.add(tt, text)
		}
	}
}

// Normalize returns a canonical form of CSS text: comments are removed,
// whitespace runs are collapsed to a single space and dropped entirely next
// to braces, semicolons, colons and commas. Texts which differ only in
// formatting normalize to the same string.
func Normalize(text string) string {
	lexer := css.NewLexer(parse.NewInput(strings.NewReader(text)))

	var (
		sb      strings.Builder
		pending bool
		last    css.TokenType
	)
	for {
		tt, data := lexer.Next()
		switch tt {
		case css.ErrorToken:
			return sb.String()
		case css.CommentToken:
			continue
		case css.WhitespaceToken:
			pending = true
			continue
		}
		if pending && sb.Len() > 0 && !isSeparator(last) && !isSeparator(tt) {
			sb.WriteByte(' ')
		}
		pending = false
		sb.Write(data)
		last = tt
	}
}

func isSeparator(tt css.TokenType) bool {
	switch tt {
	case css.LeftBraceToken, css.RightBraceToken, css.SemicolonToken, css.ColonToken, css.CommaToken:
		return true
	}
	return false
}

// collapser accumulates token text dropping comments and collapsing
// whitespace runs to a single space.
type collapser struct {
	sb      strings.Builder
	pending bool
}

func (c *collapser) add(tt css.TokenType, text []byte) {
	switch tt {
	case css.CommentToken:
		return
	case css.WhitespaceToken:
		c.pending = c.sb.Len() > 0
		return
	}
	if c.pending {
		c.sb.WriteByte(' ')
		c.pending = false
	}
	c.sb.Write(text)
}

func (c *collapser) String() string {
	return c.sb.String()
}

func (c *collapser) reset() {
	c.sb.Reset()
	c.pending = false
}

// importURL extracts the URL from @import prelude.
// Handles: "url"; url("url"); url(url)
func importURL(prelude string) string {
	lexer := css.NewLexer(parse.NewInput(strings.NewReader(prelude)))
	for {
		tt, data := lexer.Next()
		switch tt {
		case css.ErrorToken:
			return ""
		case css.StringToken:
			return unquote(string(data))
		case css.URLToken:
			// url(something) - the token data is the full url(...) string
			s := string(data)
			// Strip url( prefix and ) suffix
			s = strings.TrimPrefix(s, "url(")
			s = strings.TrimSuffix(s, ")")
			return unquote(strings.TrimSpace(s))
		}
	}
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
