package isprime

import "math/rand"

import "github.com/jbarham/primegen"

import "github.com/neurlang/modelfit/datasets"
import "github.com/neurlang/modelfit/parallel"
import "github.com/neurlang/modelfit/tensor"

// Bits is the number of feature bits per sample.
const Bits = 20

// Limit bounds the sampled numbers.
const Limit = 1 << Bits

// Table answers primality for every number below Limit.
type Table struct {
	primes map[uint32]struct{}
}

// NewTable sieves the primes below Limit.
func NewTable() *Table {
	t := &Table{primes: make(map[uint32]struct{})}
	p := primegen.New()
	for {
		n := p.Next()
		if n >= Limit {
			break
		}
		t.primes[uint32(n)] = struct{}{}
	}
	return t
}

// Label reports whether n is prime.
func (t *Table) Label(n uint32) bool {
	_, ok := t.primes[n]
	return ok
}

// Batches draws samples random numbers below Limit and packs their bits
// and labels into batches of batchSize. Rows are featurized on all CPUs.
func (t *Table) Batches(samples, batchSize int, seed int64) []datasets.Batch {
	rnd := rand.New(rand.NewSource(seed))
	nums := make([]uint32, samples)
	for i := range nums {
		nums[i] = uint32(rnd.Intn(Limit))
	}
	if batchSize <= 0 {
		batchSize = samples
	}

	var batches []datasets.Batch
	for done := 0; done < samples; done += batchSize {
		rows := batchSize
		if samples-done < rows {
			rows = samples - done
		}
		x := tensor.New(rows, Bits)
		y := tensor.New(rows, 1)
		part := nums[done : done+rows]
		parallel.ForEach(rows, 1000, func(i int) {
			n := part[i]
			for j := 0; j < Bits; j++ {
				x.Set(i, j, float32(n>>j&1))
			}
			if t.Label(n) {
				y.Set(i, 0, 1)
			}
		})
		batches = append(batches, datasets.Batch{Input: x, Label: y})
	}
	return batches
}
