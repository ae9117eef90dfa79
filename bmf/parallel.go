// SPDX-License-Identifier: MIT

package bmf

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// parallelFor runs fn(i) for i in [0,n) on at most workers goroutines
// (0 = GOMAXPROCS, 1 = inline). Each fn must write only to its own index.
// The first error wins; remaining tasks still run to completion.
func parallelFor(n, workers int, fn func(i int) error) error {
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || n <= 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}

		return nil
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error { return fn(i) })
	}

	return g.Wait()
}
