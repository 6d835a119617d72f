package tree

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

type node struct {
	value Range
	left  *node // ranges strictly below value
	right *node // ranges strictly above value
}

func newNode(r Range) *node {
	return &node{value: r}
}

// insert places r in the subtree rooted at n and normalizes n afterwards.
// When full is set, n keeps absorbing the nearest nodes of both subtrees
// until none of them overlaps its value; otherwise each side is absorbed at
// most once.
func (n *node) insert(r Range, full bool) {
	current := n.value
	switch {
	case r.CoveredBy(current):
		// already covered, nothing changes
		return
	case current.CoveredBy(r):
		n.value = r
	case r.End <= current.Start || r.Start <= current.Start:
		if n.left == nil {
			n.left = newNode(r)
		} else {
			n.left.insert(r, full)
		}
	case r.Start >= current.End || r.Start > current.Start:
		if n.right == nil {
			n.right = newNode(r)
		} else {
			n.right.insert(r, full)
		}
	default:
		panic(errors.AssertionFailedf("range %s cannot be placed relative to %s", r, current))
	}

	if full {
		n.coalesce()
		return
	}
	n.normalize()
}

// normalize absorbs a left or right child that overlaps n. A detached child
// with an inner subtree first gets n's value pushed down so that subtree
// re-coalesces into the child before n takes it over.
func (n *node) normalize() {
	if n.left != nil && n.left.value.Overlaps(n.value) {
		left := n.left
		n.left = nil
		if left.right != nil {
			left.insert(n.value, false)
		}
		if left.right != nil {
			panic(errors.AssertionFailedf("absorbed left node %s still has right child %s", left.value, left.right.value))
		}
		n.value = n.value.Merge(left.value)
		n.left = left.left
	}
	if n.right != nil && n.right.value.Overlaps(n.value) {
		right := n.right
		n.right = nil
		if right.left != nil {
			right.insert(n.value, false)
		}
		if right.left != nil {
			panic(errors.AssertionFailedf("absorbed right node %s still has left child %s", right.value, right.left.value))
		}
		n.value = n.value.Merge(right.value)
		n.right = right.right
	}
}

// coalesce absorbs the greatest nodes of the left subtree and the smallest
// nodes of the right subtree for as long as they overlap n.
func (n *node) coalesce() {
	for n.left != nil && n.left.maxNode().value.Overlaps(n.value) {
		var v Range
		n.left, v = n.left.removeMax()
		n.value = n.value.Merge(v)
	}
	for n.right != nil && n.right.minNode().value.Overlaps(n.value) {
		var v Range
		n.right, v = n.right.removeMin()
		n.value = n.value.Merge(v)
	}
}

func (n *node) minNode() *node {
	for n.left != nil {
		n = n.left
	}
	return n
}

func (n *node) maxNode() *node {
	for n.right != nil {
		n = n.right
	}
	return n
}

// removeMin detaches the smallest node of the subtree and returns the new
// subtree root together with the detached value.
func (n *node) removeMin() (*node, Range) {
	if n.left == nil {
		return n.right, n.value
	}
	var v Range
	n.left, v = n.left.removeMin()
	return n, v
}

func (n *node) removeMax() (*node, Range) {
	if n.right == nil {
		return n.left, n.value
	}
	var v Range
	n.right, v = n.right.removeMax()
	return n, v
}

// search descends left for any value not above n's range and right for any
// value not below it.
func (n *node) search(v int64) bool {
	if n.value.Contains(v) {
		return true
	}
	if n.left != nil && (v <= n.value.Start || v <= n.value.End) && n.left.search(v) {
		return true
	}
	if n.right != nil && (v >= n.value.End || v >= n.value.Start) && n.right.search(v) {
		return true
	}
	return false
}

// check verifies the node invariant: the left child lies strictly below the
// node's range and the right child strictly above it.
func (n *node) check() error {
	if n.value.Start > n.value.End {
		return errors.AssertionFailedf("node holds reversed range %s", n.value)
	}
	if l := n.left; l != nil && (l.value.End >= n.value.Start || l.value.Start >= n.value.Start) {
		return errors.AssertionFailedf("left node %s is not below %s", l.value, n.value)
	}
	if r := n.right; r != nil && (r.value.Start <= n.value.End || r.value.Start <= n.value.Start) {
		return errors.AssertionFailedf("right node %s is not above %s", r.value, n.value)
	}
	return nil
}

func (n *node) validate() error {
	if err := n.check(); err != nil {
		return err
	}
	if n.left != nil {
		if err := n.left.validate(); err != nil {
			return err
		}
	}
	if n.right != nil {
		return n.right.validate()
	}
	return nil
}

func (n *node) total() int64 {
	if err := n.check(); err != nil {
		panic(err)
	}
	total := n.value.Len()
	if n.left != nil {
		total += n.left.total()
	}
	if n.right != nil {
		total += n.right.total()
	}
	return total
}

func (n *node) appendRanges(dst []Range) []Range {
	if n.left != nil {
		dst = n.left.appendRanges(dst)
	}
	dst = append(dst, n.value)
	if n.right != nil {
		dst = n.right.appendRanges(dst)
	}
	return dst
}

func (n *node) clone() *node {
	if n == nil {
		return nil
	}
	return &node{
		value: n.value,
		left:  n.left.clone(),
		right: n.right.clone(),
	}
}

// buildBalanced returns a balanced subtree holding the sorted, disjoint
// ranges rr.
func buildBalanced(rr []Range) *node {
	if len(rr) == 0 {
		return nil
	}
	mid := len(rr) / 2
	return &node{
		value: rr[mid],
		left:  buildBalanced(rr[:mid]),
		right: buildBalanced(rr[mid+1:]),
	}
}

func (n *node) format(sb *strings.Builder, prefix string, last bool, name string) {
	connector, childPrefix := "├── ", prefix+"│   "
	if last {
		connector, childPrefix = "└── ", prefix+"    "
	}
	fmt.Fprintf(sb, "%s%s%s: %s\n", prefix, connector, name, n.value)

	if n.left != nil {
		// left is only printed last when there is no right sibling
		n.left.format(sb, childPrefix, n.right == nil, "L")
	}
	if n.right != nil {
		n.right.format(sb, childPrefix, true, "R")
	}
}
