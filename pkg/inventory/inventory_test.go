package inventory

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/henderiw/rangetree/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `3-5
10-14
16-20
12-18

1
5
8
11
17
32
`

func TestLoad(t *testing.T) {
	inv, err := Load(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, []tree.Range{
		tree.RangeFrom(3, 5),
		tree.RangeFrom(10, 14),
		tree.RangeFrom(16, 20),
		tree.RangeFrom(12, 18),
	}, inv.Ranges)
	assert.Equal(t, []int64{1, 5, 8, 11, 17, 32}, inv.IDs)

	fresh, err := inv.Fresh()
	require.NoError(t, err)
	assert.Equal(t, 3, fresh)

	total, err := inv.TotalFresh()
	require.NoError(t, err)
	assert.Equal(t, int64(14), total)
	assert.Equal(t, int64(14), inv.TotalFreshLinear())
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]struct {
		input       string
		expectedErr error
		line        string
	}{
		"BadRange": {
			input:       "3-5\nabc\n\n1\n",
			expectedErr: tree.ErrInvalidRange,
			line:        "line 2",
		},
		"ReversedRange": {
			input:       "3-5\n10-14\n9-2\n",
			expectedErr: tree.ErrInvalidRange,
			line:        "line 3",
		},
		"BadID": {
			input:       "3-5\n\n1\nx\n",
			expectedErr: ErrSyntax,
			line:        "line 4",
		},
		"NegativeID": {
			input:       "3-5\n\n-1\n",
			expectedErr: ErrSyntax,
			line:        "line 3",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tc.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.expectedErr), "got %v", err)
			assert.Contains(t, err.Error(), tc.line)
		})
	}
}

func TestNoRanges(t *testing.T) {
	inv, err := Load(strings.NewReader("\n1\n2\n"))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, inv.IDs)

	_, err = inv.Fresh()
	assert.True(t, errors.Is(err, tree.ErrEmptyInput))
	_, err = inv.TotalFresh()
	assert.True(t, errors.Is(err, tree.ErrEmptyInput))
	assert.Equal(t, int64(0), inv.TotalFreshLinear())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.txt")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	inv, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, len(inv.Ranges))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestTotalsAgree(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	for i := 0; i < 200; i++ {
		inv := &Inventory{}
		covered := map[int64]bool{}
		for j := 0; j < 1+rnd.Intn(12); j++ {
			start := rnd.Int63n(100)
			rng := tree.RangeFrom(start, start+rnd.Int63n(15))
			inv.Ranges = append(inv.Ranges, rng)
			for v := rng.Start; v <= rng.End; v++ {
				covered[v] = true
			}
		}
		for v := int64(0); v < 120; v++ {
			inv.IDs = append(inv.IDs, v)
		}

		total, err := inv.TotalFresh()
		require.NoError(t, err)
		require.Equal(t, int64(len(covered)), total, "ranges %v", inv.Ranges)
		require.Equal(t, total, inv.TotalFreshLinear(), "ranges %v", inv.Ranges)

		fresh, err := inv.Fresh()
		require.NoError(t, err)
		require.Equal(t, len(covered), fresh, "ranges %v", inv.Ranges)
	}
}
