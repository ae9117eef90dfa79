// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/boolmf/binmat"
)

func TestReadMatrix(t *testing.T) {
	t.Parallel()
	src := `# two blocks
1 1 0 0
1,1,0,0

0	0 1 1  # tab separated
0 0 1 1
`
	X, err := readMatrix(strings.NewReader(src))
	require.NoError(t, err)
	want := binmat.MustFromDense([][]float64{
		{1, 1, 0, 0},
		{1, 1, 0, 0},
		{0, 0, 1, 1},
		{0, 0, 1, 1},
	})
	assert.True(t, binmat.Equal(want, X))

	_, err = readMatrix(strings.NewReader("1 0\n1 x\n"))
	require.ErrorContains(t, err, "line 2 col 2")

	_, err = readMatrix(strings.NewReader("1 0\n1\n"))
	require.ErrorIs(t, err, binmat.ErrRagged)

	_, err = readMatrix(strings.NewReader("1 2\n"))
	require.ErrorIs(t, err, binmat.ErrNonBinary)
}

func TestParseShape(t *testing.T) {
	t.Parallel()
	m, n, k, err := parseShape("60, 40,3")
	require.NoError(t, err)
	assert.Equal(t, []int{60, 40, 3}, []int{m, n, k})

	for _, bad := range []string{"", "1,2", "1,2,3,4", "a,2,3", "0,2,3", "4,-1,2"} {
		_, _, _, err = parseShape(bad)
		assert.Error(t, err, "%q", bad)
	}
}

func TestPlanted_SeededAndNoiseFree(t *testing.T) {
	t.Parallel()
	a, err := planted(30, 20, 3, 0, 5)
	require.NoError(t, err)
	b, err := planted(30, 20, 3, 0, 5)
	require.NoError(t, err)
	assert.True(t, binmat.Equal(a, b))
	assert.False(t, a.IsZero())

	full, err := planted(4, 4, 1, 1, 5)
	require.NoError(t, err)
	clean, _ := planted(4, 4, 1, 0, 5)
	// noise=1 flips every bit
	flipped := 0
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			x, _ := full.At(i, j)
			y, _ := clean.At(i, j)
			if x != y {
				flipped++
			}
		}
	}
	assert.Equal(t, 16, flipped)

	_, err = planted(4, 4, 1, 1.5, 5)
	require.ErrorIs(t, err, binmat.ErrInvalidParameter)
}

func TestRunFit_Synthetic(t *testing.T) {
	t.Parallel()
	f := ff
	f.synthetic = "40,30,3"
	f.rank = 3
	f.emptyBaseline = true
	f.show = true

	var out bytes.Buffer
	require.NoError(t, runFit(&out, f))
	s := out.String()
	assert.Contains(t, s, "PHASE")
	assert.Contains(t, s, "greedy")
	assert.Contains(t, s, "algo asso")
	assert.Contains(t, s, "U:")
}

func TestRunFit_InputFileLazyUpdate(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "x.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 1 0 0\n1 1 0 0\n0 0 1 1\n0 0 1 1\n"), 0o600))

	f := ff
	f.input = path
	f.algo = "lazy-update"
	f.maxIter = 3
	f.wList = []float64{0.4, 0.6}
	f.merge = true

	var out bytes.Buffer
	require.NoError(t, runFit(&out, f))
	assert.Contains(t, out.String(), "passes 3")
}

func TestRunFit_FlagErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		edit func(*fitFlags)
	}{
		{"no input", func(f *fitFlags) {}},
		{"both inputs", func(f *fitFlags) { f.input, f.synthetic = "x", "2,2,1" }},
		{"missing file", func(f *fitFlags) { f.input = filepath.Join(t.TempDir(), "none.txt") }},
		{"bad algo", func(f *fitFlags) { f.synthetic, f.algo = "4,4,1", "svd" }},
		{"bad weight", func(f *fitFlags) { f.synthetic, f.wfp = "4,4,1", 3 }},
		{"bad shape", func(f *fitFlags) { f.synthetic = "4,4" }},
	}
	for _, tc := range tests {
		f := ff
		tc.edit(&f)
		var out bytes.Buffer
		assert.Error(t, runFit(&out, f), tc.name)
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "boolmf "+version+"\n", out.String())
}
