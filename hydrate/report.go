package hydrate

import (
	"fmt"
	"strconv"

	"github.com/xlab/treeprint"
	"go.uber.org/multierr"

	"aesthetic/common"
)

// Entry is a single cache entry restored from persisted rules.
type Entry struct {
	Key   string
	Class string
	Rank  int
}

// SheetReport describes hydration of a single persisted container.
type SheetReport struct {
	Type         common.SheetType
	Declarations []Entry // atomic declarations
	Existence    []Entry // at-rules, global rules and grouped classes
	Skipped      int     // rules which could not be recovered
	Loaded       int     // rules loaded into the engine container
	RuleIndex    int
}

// Report accumulates results and diagnostics of hydration. Diagnostics
// never stop hydration.
type Report struct {
	Sheets []*SheetReport
	errs   error
}

func (r *Report) addf(format string, args ...any) {
	r.errs = multierr.Append(r.errs, fmt.Errorf(format, args...))
}

func (r *Report) merge(other *Report) {
	r.Sheets = append(r.Sheets, other.Sheets...)
	r.errs = multierr.Append(r.errs, other.errs)
}

// Err returns all diagnostics combined, nil when hydration was clean.
func (r *Report) Err() error {
	return r.errs
}

// Diagnostics returns individual diagnostics.
func (r *Report) Diagnostics() []error {
	return multierr.Errors(r.errs)
}

// Hits returns total number of restored cache entries.
func (r *Report) Hits() int {
	var n int
	for _, s := range r.Sheets {
		n += len(s.Declarations) + len(s.Existence)
	}
	return n
}

// Tree returns human readable report.
func (r *Report) Tree() string {
	tree := treeprint.NewWithRoot("hydration")
	for _, s := range r.Sheets {
		branch := tree.AddMetaBranch(s.Type.String(), "rule index "+strconv.Itoa(s.RuleIndex))
		if len(s.Declarations) > 0 {
			decls := branch.AddMetaBranch(len(s.Declarations), "declarations")
			for _, e := range s.Declarations {
				decls.AddMetaNode(e.Class+" @"+strconv.Itoa(e.Rank), e.Key)
			}
		}
		if len(s.Existence) > 0 {
			existing := branch.AddMetaBranch(len(s.Existence), "existence")
			for _, e := range s.Existence {
				existing.AddMetaNode(e.Class, e.Key)
			}
		}
		branch.AddMetaNode(s.Loaded, "loaded")
		if s.Skipped > 0 {
			branch.AddMetaNode(s.Skipped, "skipped")
		}
	}
	if diags := r.Diagnostics(); len(diags) > 0 {
		branch := tree.AddBranch("diagnostics")
		for _, d := range diags {
			branch.AddNode(d.Error())
		}
	}
	return tree.String()
}
