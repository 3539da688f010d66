package linreg

import "math/rand"

import "github.com/neurlang/modelfit/datasets"
import "github.com/neurlang/modelfit/tensor"

// Generate builds samples rows of x ~ U(-1,1) with y = x dot trueW plus
// gaussian noise, split into batches of batchSize.
func Generate(samples, batchSize int, trueW []float32, noise float32, seed int64) []datasets.Batch {
	rnd := rand.New(rand.NewSource(seed))
	features := len(trueW)
	if batchSize <= 0 {
		batchSize = samples
	}

	var batches []datasets.Batch
	for done := 0; done < samples; done += batchSize {
		rows := batchSize
		if samples-done < rows {
			rows = samples - done
		}
		x := tensor.New(rows, features)
		y := tensor.New(rows, 1)
		for i := 0; i < rows; i++ {
			var dot float32
			for j := 0; j < features; j++ {
				v := 2*rnd.Float32() - 1
				x.Set(i, j, v)
				dot += v * trueW[j]
			}
			y.Set(i, 0, dot+noise*float32(rnd.NormFloat64()))
		}
		batches = append(batches, datasets.Batch{Input: x, Label: y})
	}
	return batches
}
