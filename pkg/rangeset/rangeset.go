// Package rangeset keeps a sorted slice of disjoint inclusive ranges. It
// covers the same integers as a coalescing tree fed the same ranges, with
// binary search lookups and no restructuring.
package rangeset

import (
	"sort"
	"strings"

	"github.com/henderiw/rangetree/pkg/tree"
)

// Set is a sorted list of ranges in which no two ranges overlap.
type Set []tree.Range

// FromTree returns the ranges held by t as a set.
func FromTree(t *tree.Tree) Set {
	var s Set
	s.AddAll(t.Ranges()...)
	return s
}

func (s *Set) Add(r tree.Range) {
	if !r.IsValid() {
		return
	}

	// [i, j) are the ranges r overlaps
	i := sort.Search(len(*s), func(i int) bool { return (*s)[i].End >= r.Start })
	j := sort.Search(len(*s), func(i int) bool { return (*s)[i].Start > r.End })

	if i < j {
		(*s)[i] = r.Merge((*s)[i]).Merge((*s)[j-1])
		*s = append((*s)[:i+1], (*s)[j:]...)
		return
	}

	*s = append(*s, tree.Range{})
	copy((*s)[i+1:], (*s)[i:])
	(*s)[i] = r
}

func (s *Set) AddAll(rr ...tree.Range) {
	for _, r := range rr {
		s.Add(r)
	}
}

// Contains reports whether v lies in one of the ranges.
func (s Set) Contains(v int64) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i].End >= v })
	return i < len(s) && s[i].Start <= v
}

// Total returns the number of integers covered by the set.
func (s Set) Total() int64 {
	var total int64
	for _, r := range s {
		total += r.Len()
	}
	return total
}

func (s Set) Len() int {
	return len(s)
}

// Ranges returns a copy of the ranges in ascending order.
func (s Set) Ranges() []tree.Range {
	if len(s) == 0 {
		return nil
	}
	out := make([]tree.Range, len(s))
	copy(out, s)
	return out
}

func (s *Set) Reset() {
	*s = nil
}

func (s Set) String() string {
	parts := make([]string, 0, len(s))
	for _, r := range s {
		parts = append(parts, r.String())
	}
	return "[" + strings.Join(parts, " ") + "]"
}
