// Package iprange tracks IPv4 address coverage in a coalescing range tree.
// Addresses are stored as their 32-bit value, so ranges, prefixes and single
// addresses all merge into the minimal set of address ranges.
package iprange

import (
	"encoding/binary"
	"fmt"
	"net/netip"
	"strings"
	"sync"

	"github.com/henderiw/rangetree/pkg/tree"
	"go4.org/netipx"
)

type Table struct {
	m    sync.RWMutex
	tree *tree.Tree
}

func New() *Table {
	return &Table{}
}

// Add claims s, which is an address range "a.b.c.d-e.f.g.h", a prefix
// "a.b.c.d/n" or a single address.
func (r *Table) Add(s string) error {
	ipRange, err := parse(s)
	if err != nil {
		return err
	}
	rng := tree.RangeFrom(addrToInt(ipRange.From()), addrToInt(ipRange.To()))

	r.m.Lock()
	defer r.m.Unlock()

	if r.tree == nil {
		t, err := tree.New(rng, tree.WithFullCoalescing())
		if err != nil {
			return fmt.Errorf("add failed %s: %w", s, err)
		}
		r.tree = t
		return nil
	}
	if err := r.tree.Insert(rng); err != nil {
		return fmt.Errorf("add failed %s: %w", s, err)
	}
	return nil
}

func (r *Table) Has(addr string) bool {
	ip, err := netip.ParseAddr(addr)
	if err != nil {
		return false
	}
	ip = ip.Unmap()
	if !ip.Is4() {
		return false
	}

	r.m.RLock()
	defer r.m.RUnlock()

	if r.tree == nil {
		return false
	}
	return r.tree.Search(addrToInt(ip))
}

// Count returns the number of addresses covered.
func (r *Table) Count() int64 {
	r.m.RLock()
	defer r.m.RUnlock()

	if r.tree == nil {
		return 0
	}
	return r.tree.Total()
}

// Ranges returns the covered address ranges in ascending order.
func (r *Table) Ranges() []netipx.IPRange {
	r.m.RLock()
	defer r.m.RUnlock()

	if r.tree == nil {
		return nil
	}
	var ipRanges []netipx.IPRange
	for _, rng := range r.tree.Ranges() {
		ipRanges = append(ipRanges, netipx.IPRangeFrom(intToAddr(rng.Start), intToAddr(rng.End)))
	}
	return ipRanges
}

func (r *Table) IPSet() (*netipx.IPSet, error) {
	var b netipx.IPSetBuilder
	for _, ipRange := range r.Ranges() {
		b.AddRange(ipRange)
	}
	return b.IPSet()
}

func parse(s string) (netipx.IPRange, error) {
	s = strings.TrimSpace(s)
	var ipRange netipx.IPRange
	switch {
	case strings.Contains(s, "-"):
		var err error
		ipRange, err = netipx.ParseIPRange(s)
		if err != nil {
			return netipx.IPRange{}, fmt.Errorf("ip range %s is invalid: %w", s, err)
		}
	case strings.Contains(s, "/"):
		p, err := netip.ParsePrefix(s)
		if err != nil {
			return netipx.IPRange{}, fmt.Errorf("ip prefix %s is invalid: %w", s, err)
		}
		ipRange = netipx.RangeOfPrefix(p)
	default:
		ip, err := netip.ParseAddr(s)
		if err != nil {
			return netipx.IPRange{}, fmt.Errorf("ip address %s is invalid", s)
		}
		ipRange = netipx.IPRangeFrom(ip.Unmap(), ip.Unmap())
	}
	if !ipRange.From().Is4() {
		return netipx.IPRange{}, fmt.Errorf("ip %s is not an IPv4 address", s)
	}
	return ipRange, nil
}

func addrToInt(ip netip.Addr) int64 {
	b := ip.As4()
	return int64(binary.BigEndian.Uint32(b[:]))
}

func intToAddr(v int64) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	return netip.AddrFrom4(b)
}
