// Package rangetable groups coalescing range trees by label set. Every
// claim with the same labels lands in the same tree; selectors query across
// groups.
package rangetable

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-logr/logr"
	"github.com/henderiw/rangetree/pkg/rangeset"
	"github.com/henderiw/rangetree/pkg/tree"
	"k8s.io/apimachinery/pkg/labels"
)

type Table interface {
	Claim(r tree.Range, l labels.Set) error
	ClaimRange(s string, l labels.Set) error
	Release(l labels.Set) error

	Has(v int64) bool
	HasByLabel(v int64, selector labels.Selector) bool
	Total() int64
	TotalByLabel(selector labels.Selector) int64
	Count() int

	Get(l labels.Set) (Entry, error)
	GetAll() Entries
	GetByLabel(selector labels.Selector) Entries

	Clone() Table
}

type Option func(*table)

func WithLogger(l logr.Logger) Option {
	return func(r *table) {
		r.log = l
	}
}

func New(opts ...Option) Table {
	r := &table{
		m:      new(sync.RWMutex),
		groups: map[string]*group{},
		log:    logr.Discard(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

type group struct {
	labels labels.Set
	tree   *tree.Tree
}

func (g *group) entry() Entry {
	return Entry{
		Labels: labels.Merge(nil, g.labels),
		Ranges: g.tree.Ranges(),
		Total:  g.tree.Total(),
	}
}

type table struct {
	m      *sync.RWMutex
	groups map[string]*group
	log    logr.Logger
}

func (r *table) Claim(rng tree.Range, l labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.add(rng, l)
}

func (r *table) ClaimRange(s string, l labels.Set) error {
	rng, err := tree.ParseRange(s)
	if err != nil {
		return fmt.Errorf("claim failed: %w", err)
	}

	r.m.Lock()
	defer r.m.Unlock()

	return r.add(rng, l)
}

func (r *table) add(rng tree.Range, l labels.Set) error {
	key := l.String()
	g, ok := r.groups[key]
	if !ok {
		t, err := tree.New(rng, tree.WithFullCoalescing())
		if err != nil {
			return fmt.Errorf("claim failed for labels %q: %w", key, err)
		}
		r.groups[key] = &group{labels: labels.Merge(nil, l), tree: t}
		r.log.V(1).Info("new group", "labels", key, "range", rng.String())
		return nil
	}
	if err := g.tree.Insert(rng); err != nil {
		return fmt.Errorf("claim failed for labels %q: %w", key, err)
	}
	r.log.V(1).Info("claimed", "labels", key, "range", rng.String(), "ranges", g.tree.Len())
	return nil
}

func (r *table) Release(l labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	key := l.String()
	if _, ok := r.groups[key]; !ok {
		return fmt.Errorf("release failed, no group with labels %q", key)
	}
	delete(r.groups, key)
	r.log.V(1).Info("released", "labels", key)
	return nil
}

func (r *table) Has(v int64) bool {
	return r.HasByLabel(v, labels.Everything())
}

func (r *table) HasByLabel(v int64, selector labels.Selector) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	for _, g := range r.groups {
		if selector.Matches(g.labels) && g.tree.Search(v) {
			return true
		}
	}
	return false
}

func (r *table) Total() int64 {
	return r.TotalByLabel(labels.Everything())
}

// TotalByLabel counts the integers covered by the union of the matching
// groups; a value claimed by several groups counts once.
func (r *table) TotalByLabel(selector labels.Selector) int64 {
	r.m.RLock()
	defer r.m.RUnlock()

	var s rangeset.Set
	for _, g := range r.groups {
		if selector.Matches(g.labels) {
			s.AddAll(g.tree.Ranges()...)
		}
	}
	return s.Total()
}

func (r *table) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return len(r.groups)
}

func (r *table) Get(l labels.Set) (Entry, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	g, ok := r.groups[l.String()]
	if !ok {
		return Entry{}, fmt.Errorf("no match found for: %q", l.String())
	}
	return g.entry(), nil
}

func (r *table) GetAll() Entries {
	return r.GetByLabel(labels.Everything())
}

// GetByLabel returns the matching groups ordered by their label string.
func (r *table) GetByLabel(selector labels.Selector) Entries {
	r.m.RLock()
	defer r.m.RUnlock()

	keys := make([]string, 0, len(r.groups))
	for key, g := range r.groups {
		if selector.Matches(g.labels) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	entries := make(Entries, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, r.groups[key].entry())
	}
	return entries
}

func (r *table) Clone() Table {
	r.m.RLock()
	defer r.m.RUnlock()

	groups := make(map[string]*group, len(r.groups))
	for key, g := range r.groups {
		groups[key] = &group{
			labels: labels.Merge(nil, g.labels),
			tree:   g.tree.Clone(),
		}
	}
	return &table{
		m:      new(sync.RWMutex),
		groups: groups,
		log:    r.log,
	}
}
