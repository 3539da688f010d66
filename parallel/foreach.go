// Package parallel contains the bounded concurrency loop used when
// building and scoring batches.
package parallel

import "sync"
import "sync/atomic"

// ForEach runs body for every integer in [0, length) on a fixed pool of
// workers goroutines. It returns when every call finished.
func ForEach(length, workers int, body func(i int)) {
	if length <= 0 {
		return
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > length {
		workers = length
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1)) - 1
				if i >= length {
					return
				}
				body(i)
			}
		}()
	}
	wg.Wait()
}
