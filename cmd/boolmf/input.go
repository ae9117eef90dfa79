// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/boolmf/basis"
	"github.com/katalvlaran/boolmf/binmat"
)

// readMatrix parses one 0/1 row per line. Entries are separated by spaces,
// tabs or commas; blank lines and '#' comments are skipped.
func readMatrix(r io.Reader) (*binmat.Matrix, error) {
	var rows [][]float64
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.FieldsFunc(text, func(c rune) bool { return c == ' ' || c == '\t' || c == ',' })
		if len(fields) == 0 {
			continue
		}
		row := make([]float64, len(fields))
		for j, tok := range fields {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d col %d: %w", line, j+1, err)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return binmat.FromDense(rows)
}

// parseShape parses "m,n,k".
func parseShape(s string) (m, n, k int, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("--synthetic %q: want m,n,k", s)
	}
	dims := make([]int, 3)
	for i, p := range parts {
		if dims[i], err = strconv.Atoi(strings.TrimSpace(p)); err != nil || dims[i] <= 0 {
			return 0, 0, 0, fmt.Errorf("--synthetic %q: %q is not a positive integer", s, p)
		}
	}

	return dims[0], dims[1], dims[2], nil
}

// planted builds an m×n matrix as the union of k random rectangles, each
// covering about a third of the rows and columns, then flips every bit with
// probability noise.
func planted(m, n, k int, noise float64, seed int64) (*binmat.Matrix, error) {
	if err := binmat.ValidateUnit("noise", noise); err != nil {
		return nil, err
	}
	rng := basis.NewRand(seed)
	X, err := binmat.New(m, n)
	if err != nil {
		return nil, err
	}
	for r := 0; r < k; r++ {
		u, v := binmat.NewVec(m), binmat.NewVec(n)
		for i := 0; i < m; i++ {
			if rng.Float64() < 1.0/3 {
				u.Set(uint(i))
			}
		}
		for j := 0; j < n; j++ {
			if rng.Float64() < 1.0/3 {
				v.Set(uint(j))
			}
		}
		if err = X.OrOuter(u, v); err != nil {
			return nil, err
		}
	}
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			if rng.Float64() < noise {
				cell, _ := X.At(i, j)
				_ = X.Set(i, j, !cell)
			}
		}
	}

	return X, nil
}
