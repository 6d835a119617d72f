package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "3-5\n10-14\n16-20\n12-18\n\n1\n5\n8\n11\n17\n32\n"

func writeData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "day_05"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "day_05", "test.txt"), []byte(sample), 0o644))
	return dir
}

func TestRun(t *testing.T) {
	dir := writeData(t)

	cases := map[string]struct {
		args        []string
		expected    string
		expectedErr bool
	}{
		"First": {
			args:     []string{"-d", dir, "-t"},
			expected: "day_05: Total available numbers: 3\n",
		},
		"Second": {
			args:     []string{"--data-dir", dir, "--test", "--second"},
			expected: "day_05: Total numbers in ranges: 14\n",
		},
		"ExplicitFile": {
			args:     []string{"-f", filepath.Join(dir, "day_05", "test.txt"), "-s"},
			expected: "day_05: Total numbers in ranges: 14\n",
		},
		"Print": {
			args:     []string{"-d", dir, "-t", "-p"},
			expected: "└── Root: 3-5\n    └── R: 10-20\n" + "day_05: Total available numbers: 3\n",
		},
		"MissingInput": {
			args:        []string{"-d", dir},
			expectedErr: true,
		},
		"UnknownDay": {
			args:        []string{"-d", dir, "-t", "--day", "day_01"},
			expectedErr: true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			fs := newFlagSet()
			require.NoError(t, fs.Parse(tc.args))
			cfg, err := newConfig(fs)
			require.NoError(t, err)

			var out bytes.Buffer
			err = run(cfg, &out, logr.Discard())
			if tc.expectedErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out.String())
		})
	}
}

func TestConfigSources(t *testing.T) {
	dir := writeData(t)

	cfgPath := filepath.Join(t.TempDir(), "rangetree.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("test: true\nsecond: true\n"), 0o644))

	t.Setenv("RANGETREE_DATA_DIR", dir)

	fs := newFlagSet()
	require.NoError(t, fs.Parse([]string{"-c", cfgPath}))
	cfg, err := newConfig(fs)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "day_05", "test.txt"), dataPath(cfg))

	var out bytes.Buffer
	require.NoError(t, run(cfg, &out, logr.Discard()))
	assert.Equal(t, "day_05: Total numbers in ranges: 14\n", out.String())
}

func TestMissingConfigFile(t *testing.T) {
	fs := newFlagSet()
	require.NoError(t, fs.Parse([]string{"-c", filepath.Join(t.TempDir(), "nope.yaml")}))
	_, err := newConfig(fs)
	assert.Error(t, err)
}
