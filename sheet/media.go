package sheet

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/maruel/natural"

	"aesthetic/common"
)

// emBase is the pixel size of 1em/1rem used to compare lengths.
const emBase = 16

var featureRe = regexp.MustCompile(`(min|max)-(device-)?(width|height)\s*:\s*(-?[0-9]*\.?[0-9]+)\s*(px|em|rem)?`)

type mediaQuery struct {
	text      string
	print     bool
	min       bool
	height    bool
	length    float64
	hasLength bool
}

func parseMedia(query string) mediaQuery {
	q := strings.ToLower(query)
	m := mediaQuery{text: query, print: strings.Contains(q, "print")}
	if sm := featureRe.FindStringSubmatch(q); sm != nil {
		v, err := strconv.ParseFloat(sm[4], 64)
		if err == nil {
			if sm[5] == "em" || sm[5] == "rem" {
				v *= emBase
			}
			m.min = sm[1] == "min"
			m.height = sm[3] == "height"
			m.length = v
			m.hasLength = true
		}
	}
	return m
}

// CompareMedia orders two media queries. It returns negative value when a
// must be placed before b, positive when after, zero only for equal queries.
//
// Print queries go last, queries without width or height lengths go after
// those with them. Mobile first order puts min-* queries before max-* ones,
// min ascending and max descending. Desktop first order puts max-* before
// min-*, both descending. Width goes before height. Remaining ties are broken
// by natural order of query text.
func CompareMedia(a, b string, order common.MediaOrder) int {
	ma, mb := parseMedia(a), parseMedia(b)

	if ma.print != mb.print {
		return boolOrder(ma.print)
	}
	if ma.hasLength != mb.hasLength {
		return boolOrder(mb.hasLength)
	}
	if ma.hasLength {
		if ma.min != mb.min {
			if order == common.MediaOrderDesktopFirst {
				return boolOrder(ma.min)
			}
			return boolOrder(!ma.min)
		}
		if ma.height != mb.height {
			return boolOrder(ma.height)
		}
		if ma.length != mb.length {
			ascending := ma.min && order != common.MediaOrderDesktopFirst
			if (ma.length < mb.length) == ascending {
				return -1
			}
			return 1
		}
	}
	return naturalCompare(a, b)
}

// boolOrder returns 1 when the first operand has to go last.
func boolOrder(last bool) int {
	if last {
		return 1
	}
	return -1
}

func naturalCompare(a, b string) int {
	switch {
	case a == b:
		return 0
	case natural.Less(a, b):
		return -1
	case natural.Less(b, a):
		return 1
	}
	return strings.Compare(a, b)
}
