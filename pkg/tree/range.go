package tree

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Range is an inclusive integer interval [Start, End].
type Range struct {
	Start int64
	End   int64
}

func RangeFrom(start, end int64) Range {
	return Range{Start: start, End: end}
}

// ParseRange parses a "<start>-<end>" token.
func ParseRange(s string) (Range, error) {
	var r Range
	h := strings.IndexByte(s, '-')
	if h == -1 {
		return r, errors.Wrapf(ErrInvalidRange, "no hyphen in range %q", s)
	}
	from, to := strings.TrimSpace(s[:h]), strings.TrimSpace(s[h+1:])
	start, err := strconv.ParseInt(from, 10, 64)
	if err != nil {
		return r, errors.Wrapf(ErrInvalidRange, "invalid start %q in range %q", from, s)
	}
	end, err := strconv.ParseInt(to, 10, 64)
	if err != nil {
		return r, errors.Wrapf(ErrInvalidRange, "invalid end %q in range %q", to, s)
	}
	r = RangeFrom(start, end)
	if !r.IsValid() {
		return Range{}, errors.Wrapf(ErrInvalidRange, "start is bigger than end in range %q", s)
	}
	return r, nil
}

func (r Range) String() string {
	return strconv.FormatInt(r.Start, 10) + "-" + strconv.FormatInt(r.End, 10)
}

// IsValid reports whether r is a non-negative range with Start <= End.
func (r Range) IsValid() bool {
	return r.Start >= 0 && r.Start <= r.End
}

// Len returns the number of integers in r.
func (r Range) Len() int64 {
	return r.End - r.Start + 1
}

func (r Range) Contains(v int64) bool {
	return r.Start <= v && v <= r.End
}

// CoveredBy returns whether r is entirely contained within other.
func (r Range) CoveredBy(other Range) bool {
	return other.Start <= r.Start && r.End <= other.End
}

// Overlaps returns whether r and other share at least one integer. Ranges
// touching on a boundary value overlap.
func (r Range) Overlaps(other Range) bool {
	return r.Start <= other.End && r.End >= other.Start
}

// Merge returns the bounding union of r and other.
func (r Range) Merge(other Range) Range {
	return Range{
		Start: min(r.Start, other.Start),
		End:   max(r.End, other.End),
	}
}

func (r Range) Less(other Range) bool {
	if r.Start != other.Start {
		return r.Start < other.Start
	}
	return r.End < other.End
}

// MergeRanges returns the minimum and sorted set of ranges that cover rr,
// coalescing ranges that overlap the same way the tree does. The input slice
// is not modified.
func MergeRanges(rr []Range) []Range {
	switch len(rr) {
	case 0:
		return nil
	case 1:
		return []Range{rr[0]}
	}

	sorted := make([]Range, len(rr))
	copy(sorted, rr)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })

	out := make([]Range, 1, len(sorted))
	out[0] = sorted[0]
	for _, r := range sorted[1:] {
		prev := &out[len(out)-1]
		switch {
		case r.Start > prev.End:
			// no overlap
			//
			//   prev       r
			// s------e  s-----e
			out = append(out, r)
		case prev.End < r.End:
			// partial overlap, extend prev
			//
			//   prev
			// s------e
			//     s-----e
			//        r
			prev.End = r.End
		default:
			// r entirely contained in prev
		}
	}
	return out
}
