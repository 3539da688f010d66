package parallel

import "sync/atomic"
import "testing"

func TestForEachVisitsEveryIndexOnce(t *testing.T) {
	const n = 1000
	var counts [n]int32
	ForEach(n, 16, func(i int) {
		atomic.AddInt32(&counts[i], 1)
	})
	for i, c := range counts {
		if c != 1 {
			t.Fatalf("index %d visited %d times", i, c)
		}
	}
}

func TestForEachEdges(t *testing.T) {
	ForEach(0, 4, func(i int) { t.Error("zero length must not call body") })
	ForEach(-3, 4, func(i int) { t.Error("negative length must not call body") })

	var visits int32
	ForEach(5, 0, func(i int) { atomic.AddInt32(&visits, 1) })
	if visits != 5 {
		t.Errorf("zero workers should behave as one, got %d visits", visits)
	}
	visits = 0
	ForEach(3, 100, func(i int) { atomic.AddInt32(&visits, 1) })
	if visits != 3 {
		t.Errorf("more workers than work, got %d visits", visits)
	}
}
