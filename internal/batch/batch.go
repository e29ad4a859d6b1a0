// Package batch runs data-parallel work over contiguous index ranges.
//
// Every evaluator in this module is a parallel map: each output slot
// depends only on its own inputs, so the range is split into chunks,
// one goroutine per chunk, and all workers are joined before the call
// returns. Callers never observe a partially written output slice.
package batch

import (
	"runtime"
	"sync"
)

// Workers resolves a requested worker count. A value of zero or less
// selects all available hardware threads.
func Workers(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// For splits [0, n) into contiguous chunks and runs fn(lo, hi) on each
// chunk from a fixed set of workers. fn must only write to output slots
// in its own [lo, hi) range.
func For(n, workers int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	w := Workers(workers)
	if w > n {
		w = n
	}
	if w == 1 {
		fn(0, n)
		return
	}

	chunk := (n + w - 1) / w
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
