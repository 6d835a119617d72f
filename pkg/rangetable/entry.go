package rangetable

import (
	"github.com/henderiw/rangetree/pkg/tree"
	"k8s.io/apimachinery/pkg/labels"
)

// Entry is a snapshot of one label group.
type Entry struct {
	Labels labels.Set
	Ranges []tree.Range
	Total  int64
}

type Entries []Entry

// Labels returns the label sets of the entries in order.
func (r Entries) Labels() []labels.Set {
	ls := make([]labels.Set, 0, len(r))
	for _, e := range r {
		ls = append(ls, e.Labels)
	}
	return ls
}
