package style

import (
	"go.uber.org/zap"

	"aesthetic/cache"
	"aesthetic/common"
	"aesthetic/css"
	"aesthetic/format"
)

// Options is a per call parameter bag. It is passed by value: nested
// selectors and conditions modify the copy handed to recursive calls only.
// Zero values mean engine defaults: direction, determinism and vendor
// prefixing set on the engine apply unless overridden here.
type Options struct {
	// ClassName overrides generated class name.
	ClassName string
	// Deterministic requests content hash class names.
	Deterministic bool
	// Direction of rendered declarations, right-to-left requires converter.
	Direction common.Direction
	// Rankings is the specificity ledger shared between calls which must
	// keep source order of properties. RenderRule creates one when nil.
	Rankings map[string]int
	// Selector is nested selector (list) applied after the class name.
	Selector string
	// Conditions is the active @media/@supports stack, outermost first.
	Conditions []common.Condition
	// Type is the sheet for rules outside of conditions.
	Type common.SheetType
	// Unit overrides unit of numeric values.
	Unit string
	// VendorPrefixes requests vendor prefixed declarations and selectors.
	VendorPrefixes bool
}

// withCondition returns options with condition pushed on the stack. The
// stack is clipped so siblings never share a backing array.
func (o Options) withCondition(c common.Condition) Options {
	o.Conditions = append(o.Conditions[:len(o.Conditions):len(o.Conditions)], c)
	return o
}

func (o Options) withSelector(selector string) Options {
	o.Selector = selector
	return o
}

// DirectionConverter converts a declaration authored for left-to-right
// layout into its right-to-left counterpart.
type DirectionConverter interface {
	Convert(property, value string) (string, string)
}

// VendorPrefixer expands declarations and selectors with vendor specific
// variants.
type VendorPrefixer interface {
	// Prefix returns declarations to render instead of the original one,
	// the unprefixed declaration last.
	Prefix(property, value string) []css.Declaration
	// PrefixSelector returns vendor variants of a full selector, original
	// is not included. Every variant is inserted as a separate rule.
	PrefixSelector(selector string) []string
}

// Option configures Engine.
type Option func(*Engine)

// WithConverter sets direction converter.
func WithConverter(c DirectionConverter) Option {
	return func(e *Engine) { e.converter = c }
}

// WithPrefixer sets vendor prefixer.
func WithPrefixer(p VendorPrefixer) Option {
	return func(e *Engine) { e.prefixer = p }
}

// WithUnit sets engine wide unit function for numeric values.
func WithUnit(fn format.UnitFunc) Option {
	return func(e *Engine) { e.unitFn = fn }
}

// WithDirection sets default rendering direction.
func WithDirection(d common.Direction) Option {
	return func(e *Engine) { e.direction = d }
}

// WithDeterministic makes content hash class names the default.
func WithDeterministic(on bool) Option {
	return func(e *Engine) { e.deterministic = on }
}

// WithVendorPrefixes makes vendor prefixing the default.
func WithVendorPrefixes(on bool) Option {
	return func(e *Engine) { e.vendorPrefixes = on }
}

// WithClassPrefix prepends prefix to every generated class name.
func WithClassPrefix(prefix string) Option {
	return func(e *Engine) { e.classPrefix = prefix }
}

// WithCache makes engine use existing (for example hydrated) cache.
func WithCache(c *cache.Cache) Option {
	return func(e *Engine) {
		if c != nil {
			e.cache = c
		}
	}
}

// WithLogFields adds fields to every engine log line.
func WithLogFields(fields ...zap.Field) Option {
	return func(e *Engine) { e.log = e.log.With(fields...) }
}
