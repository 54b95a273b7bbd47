// Package parallel splits index ranges across goroutines.
//
// It is used only for read-only work such as scoring a paused model over a
// dataset. Training itself is single-threaded and never goes through here.
package parallel

import (
	"runtime"
	"sync"
)

// Chunks returns the [start, end) ranges that Parallelize hands to its
// workers for items items and workers goroutines.
func Chunks(items, workers int) [][2]int {
	if items <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > items {
		workers = items
	}

	chunkSize := (items + workers - 1) / workers
	chunks := make([][2]int, 0, workers)
	for start := 0; start < items; start += chunkSize {
		end := start + chunkSize
		if end > items {
			end = items
		}
		chunks = append(chunks, [2]int{start, end})
	}
	return chunks
}

// Parallelize runs fn over consecutive ranges covering [0, items), one
// goroutine per range and at most runtime.NumCPU() ranges. fn receives the
// chunk number so callers can write results into per-chunk slots.
func Parallelize(items int, fn func(chunk, start, end int)) {
	chunks := Chunks(items, runtime.NumCPU())

	var wg sync.WaitGroup
	for i, c := range chunks {
		wg.Add(1)
		go func(i, start, end int) {
			defer wg.Done()
			fn(i, start, end)
		}(i, c[0], c[1])
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn sequentially as a single chunk when items
// does not exceed threshold, and through Parallelize otherwise. It returns
// the number of chunks used.
func ParallelizeWithThreshold(items, threshold int, fn func(chunk, start, end int)) int {
	if items <= 0 {
		return 0
	}
	if items <= threshold {
		fn(0, 0, items)
		return 1
	}
	Parallelize(items, fn)
	return len(Chunks(items, runtime.NumCPU()))
}
