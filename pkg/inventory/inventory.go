// Package inventory answers freshness queries over an ingredient database: a
// list of fresh id ranges followed by a list of available ids.
package inventory

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/henderiw/rangetree/pkg/rangeset"
	"github.com/henderiw/rangetree/pkg/tree"
)

// ErrSyntax is returned for lines that are neither a range nor an id.
var ErrSyntax = errors.New("syntax error")

type Inventory struct {
	// Ranges holds the fresh id ranges in input order.
	Ranges []tree.Range
	// IDs holds the available ids.
	IDs []int64
}

// Load reads ranges "<start>-<end>", one per line, then after the first
// blank line one id per line. Further blank lines are ignored.
func Load(r io.Reader) (*Inventory, error) {
	inv := &Inventory{}

	var ids bool
	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			ids = true
			continue
		}
		if !ids {
			rng, err := tree.ParseRange(line)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNo)
			}
			inv.Ranges = append(inv.Ranges, rng)
			continue
		}
		id, err := strconv.ParseInt(line, 10, 64)
		if err != nil || id < 0 {
			return nil, errors.Wrapf(ErrSyntax, "line %d: invalid id %q", lineNo, line)
		}
		inv.IDs = append(inv.IDs, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read inventory")
	}
	return inv, nil
}

func LoadFile(path string) (*Inventory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open inventory")
	}
	defer f.Close()

	inv, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return inv, nil
}

// Tree builds a fully coalesced tree over the fresh ranges.
func (inv *Inventory) Tree() (*tree.Tree, error) {
	t, err := tree.Build(inv.Ranges, tree.WithFullCoalescing())
	if err != nil {
		return nil, errors.Wrap(err, "build fresh ranges")
	}
	return t, nil
}

// Fresh returns how many of the available ids fall in a fresh range.
func (inv *Inventory) Fresh() (int, error) {
	t, err := inv.Tree()
	if err != nil {
		return 0, err
	}
	var count int
	for _, id := range inv.IDs {
		if t.Search(id) {
			count++
		}
	}
	return count, nil
}

// TotalFresh returns how many distinct ids the fresh ranges cover.
func (inv *Inventory) TotalFresh() (int64, error) {
	t, err := inv.Tree()
	if err != nil {
		return 0, err
	}
	return t.Total(), nil
}

// TotalFreshLinear computes TotalFresh by folding the ranges into a sorted
// set instead of a tree.
func (inv *Inventory) TotalFreshLinear() int64 {
	var s rangeset.Set
	s.AddAll(inv.Ranges...)
	return s.Total()
}
