package tree

// treeIteratorNext is an indicator to know what Next() should return
// for the current node.
type treeIteratorNext int

const (
	nextSelf treeIteratorNext = iota
	nextLeft
	nextRight
	nextUp
)

// Iterator is a stateful pre-order iterator over a tree.
type Iterator struct {
	node        *node
	nodeHistory []*node
	next        treeIteratorNext
}

// Iterate returns an iterator visiting every node of the tree, parents
// before their children. The tree must not be modified while iterating.
func (t *Tree) Iterate() *Iterator {
	return &Iterator{
		node:        t.root,
		nodeHistory: []*node{},
		next:        nextSelf,
	}
}

// Next moves to the next node. It returns false if there is none.
func (iter *Iterator) Next() bool {
	if iter.node == nil {
		return false
	}
	for {
		node := iter.node
		if iter.next == nextSelf {
			iter.next = nextLeft
			return true
		}
		if iter.next == nextLeft {
			if node.left != nil {
				iter.nodeHistory = append(iter.nodeHistory, iter.node)
				iter.node = node.left
				iter.next = nextSelf
			} else {
				iter.next = nextRight
			}
		}
		if iter.next == nextRight {
			if node.right != nil {
				iter.nodeHistory = append(iter.nodeHistory, iter.node)
				iter.node = node.right
				iter.next = nextSelf
			} else {
				// We need to backtrack
				iter.next = nextUp
			}
		}
		if iter.next == nextUp {
			nodeHistoryLen := len(iter.nodeHistory)
			if nodeHistoryLen == 0 {
				iter.node = nil
				return false
			}
			previous := iter.nodeHistory[nodeHistoryLen-1]
			iter.nodeHistory = iter.nodeHistory[:nodeHistoryLen-1]
			switch iter.node {
			case previous.left:
				iter.node = previous
				iter.next = nextRight
			case previous.right:
				iter.node = previous
				iter.next = nextUp
			default:
				panic("unexpected state")
			}
		}
	}
}

// Range returns the range of the current node.
func (iter *Iterator) Range() Range {
	return iter.node.value
}

// Depth returns the depth of the current node, the root being at depth 0.
func (iter *Iterator) Depth() int {
	return len(iter.nodeHistory)
}
