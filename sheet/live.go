package sheet

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"aesthetic/common"
)

// Native is a flat native style sheet (CSSOM like). It accepts rule text at
// an index and may reject rules it cannot parse.
type Native interface {
	InsertRule(rule string, index int) (int, error)
}

// placeholder keeps native indexes aligned when a buffered rule is rejected
// during flush. It never matches.
const placeholder = "@media not all {}"

type pendingInsert struct {
	text  string
	index int
}

// Live binds a native style sheet. It mirrors every rule which landed in the
// native sheet so positions can be inspected without native reads. Native
// surfaces cannot nest groups, so Live does not implement GroupInserter and
// conditional rules arrive already flattened.
//
// In buffered mode inserts are recorded in the mirror immediately and sent to
// the native sheet on Flush, in the same order and with the same indexes.
type Live struct {
	native   Native
	rules    []Rule
	buffered bool
	pending  []pendingInsert
	log      *zap.Logger
}

// NewLive creates container bound to native sheet.
func NewLive(native Native, buffered bool, log *zap.Logger) *Live {
	if log == nil {
		log = zap.NewNop()
	}
	return &Live{native: native, buffered: buffered, log: log.Named("live-sheet")}
}

func (l *Live) Len() int {
	return len(l.rules)
}

func (l *Live) Rule(i int) Rule {
	return l.rules[i]
}

func (l *Live) InsertRule(kind common.RuleKind, text string, index int) (int, error) {
	if index < 0 || index > len(l.rules) {
		return -1, ErrIndex
	}
	if l.buffered {
		l.pending = append(l.pending, pendingInsert{text: text, index: index})
		l.rules = slices.Insert(l.rules, index, newRule(kind, text))
		return index, nil
	}
	pos, err := l.native.InsertRule(text, index)
	if err != nil {
		return -1, fmt.Errorf("%w: %w", ErrRejected, err)
	}
	l.rules = slices.Insert(l.rules, pos, newRule(kind, text))
	return pos, nil
}

// Adopt records rule which is already present in the native sheet (for
// example persisted by server side rendering) without inserting it again.
func (l *Live) Adopt(kind common.RuleKind, text string) {
	l.rules = append(l.rules, newRule(kind, text))
}

// Pending returns number of inserts waiting for Flush.
func (l *Live) Pending() int {
	return len(l.pending)
}

// Flush sends buffered inserts to the native sheet. Rules rejected at this
// point are replaced with a never matching placeholder so positions already
// handed out stay valid. Returned error lists all rejections.
func (l *Live) Flush() error {
	var errs error
	for _, p := range l.pending {
		if _, err := l.native.InsertRule(p.text, p.index); err != nil {
			l.log.Debug("Buffered rule rejected", zap.String("rule", p.text), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%w: %s: %w", ErrRejected, p.text, err))
			if _, err := l.native.InsertRule(placeholder, p.index); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("unable to keep position %d: %w", p.index, err))
			}
		}
	}
	l.pending = l.pending[:0]
	return errs
}

func (l *Live) CSSText() string {
	var sb strings.Builder
	for _, r := range l.rules {
		sb.WriteString(r.CSSText())
	}
	return sb.String()
}
