// Package tree implements an interval-coalescing binary search tree. Every
// node holds a closed integer range; inserting a range that overlaps or
// touches a node's range merges the two, so the tree keeps a set of disjoint
// ranges ordered by position. The tree is not balanced and not safe for
// concurrent use.
package tree

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Tree is an interval-coalescing search tree. The zero value is an empty
// tree whose first insert becomes the root.
//
// By default an insert normalizes every node on its path a single time per
// side: a node that grows past a child absorbs that child, but not the
// child's own descendants that it may now also overlap. Such a tree still
// finds every inserted value with Search, yet may hold overlapping ranges
// across levels until Compact is called. WithFullCoalescing switches to
// absorbing repeatedly, which keeps the range set minimal after every
// insert.
type Tree struct {
	root *node
	full bool
}

type Option func(*Tree)

// WithFullCoalescing makes every insert absorb all overlapping nodes
// instead of at most one per side.
func WithFullCoalescing() Option {
	return func(t *Tree) {
		t.full = true
	}
}

// New returns a tree holding the single seed range.
func New(seed Range, opts ...Option) (*Tree, error) {
	if !seed.IsValid() {
		return nil, errors.Wrapf(ErrInvalidRange, "seed %s", seed)
	}
	t := &Tree{root: newNode(seed)}
	for _, o := range opts {
		o(t)
	}
	return t, nil
}

// Build returns a tree rooted at the first range with the remaining ranges
// inserted in order. The order changes the shape of the tree, not the
// integers it covers.
func Build(ranges []Range, opts ...Option) (*Tree, error) {
	if len(ranges) == 0 {
		return nil, ErrEmptyInput
	}
	for i, r := range ranges {
		if !r.IsValid() {
			return nil, errors.Wrapf(ErrInvalidRange, "range %d (%s)", i, r)
		}
	}
	t, err := New(ranges[0], opts...)
	if err != nil {
		return nil, err
	}
	for _, r := range ranges[1:] {
		t.root.insert(r, t.full)
	}
	return t, nil
}

// Insert adds r to the tree, merging it with every range it overlaps on the
// way down. Inserting a range that is already covered is a no-op.
func (t *Tree) Insert(r Range) error {
	if !r.IsValid() {
		return errors.Wrapf(ErrInvalidRange, "insert %s", r)
	}
	if t.root == nil {
		t.root = newNode(r)
		return nil
	}
	t.root.insert(r, t.full)
	return nil
}

// Search reports whether v is covered by any range in the tree.
func (t *Tree) Search(v int64) bool {
	if t.root == nil {
		return false
	}
	return t.root.search(v)
}

// Total returns the number of integers covered by the tree. It panics with
// an assertion failure when a node's children are not strictly on their side
// of the node.
func (t *Tree) Total() int64 {
	if t.root == nil {
		return 0
	}
	return t.root.total()
}

// Validate returns the first node invariant violation as an assertion
// failure, or nil.
func (t *Tree) Validate() error {
	if t.root == nil {
		return nil
	}
	return t.root.validate()
}

// Root returns the range held by the root node.
func (t *Tree) Root() (Range, bool) {
	if t.root == nil {
		return Range{}, false
	}
	return t.root.value, true
}

// Len returns the number of nodes, i.e. the number of ranges held.
func (t *Tree) Len() int {
	var size int

	iter := t.Iterate()
	for iter.Next() {
		size++
	}
	return size
}

// Ranges returns the ranges held by the tree in ascending order.
func (t *Tree) Ranges() []Range {
	if t.root == nil {
		return nil
	}
	return t.root.appendRanges(nil)
}

// Clone creates an identical copy of the tree.
func (t *Tree) Clone() *Tree {
	return &Tree{
		root: t.root.clone(),
		full: t.full,
	}
}

// Compact rebuilds the tree as a balanced tree over the minimal set of
// ranges covering it.
func (t *Tree) Compact() {
	t.root = buildBalanced(MergeRanges(t.Ranges()))
}

// String renders the tree, one node per line.
func (t *Tree) String() string {
	if t.root == nil {
		return ""
	}
	var sb strings.Builder
	t.root.format(&sb, "", true, "Root")
	return sb.String()
}
