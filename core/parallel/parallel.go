// Package parallel provides the worker helpers used by the forest
// trainer and the resample driver. Both workloads are embarrassingly
// parallel: every item owns its data and fit state, so no
// synchronization beyond the final wait is needed.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize splits items across the available CPU cores and calls fn
// with each worker's half-open range [start, end).
func Parallelize(items int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}

	// Ceiling division so the last chunk is never dropped.
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}

// ForEach runs fn once per item index, bounded to the number of CPU
// cores. Unlike Parallelize it does not chunk, which suits a small
// number of heavyweight items such as bootstrap resamples.
func ForEach(items int, fn func(i int)) {
	if items == 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}

	var wg sync.WaitGroup
	next := make(chan int)

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				fn(i)
			}
		}()
	}

	for i := 0; i < items; i++ {
		next <- i
	}
	close(next)
	wg.Wait()
}
