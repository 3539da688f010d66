// Package datasets implements the batch and data module types consumed
// by the modelfit training loop
package datasets

import "github.com/neurlang/modelfit/tensor"

// Batch is one minibatch of inputs and expected outputs.
type Batch struct {
	Input *tensor.Dense
	Label *tensor.Dense
}

// DataModule produces the batch for a given step.
type DataModule interface {
	Batch(step int) Batch
}

// SliceDataModule cycles over pre-tensorized batches. This is the data
// module shape compiled training jobs accept.
type SliceDataModule struct {
	Batches []Batch
}

// NewSliceDataModule wraps batches in a cycling data module.
func NewSliceDataModule(batches ...Batch) *SliceDataModule {
	return &SliceDataModule{Batches: batches}
}

// Batch returns the step-th batch, wrapping around.
func (m *SliceDataModule) Batch(step int) Batch {
	if len(m.Batches) == 0 {
		return Batch{}
	}
	return m.Batches[step%len(m.Batches)]
}

// RawDataModule holds raw in-memory numeric data. Compiled training
// jobs do not accept it; tensorize it into a SliceDataModule first.
type RawDataModule struct {
	Inputs [][]float32
	Labels []float32
}

// Batch converts the whole raw set into a single batch.
func (m *RawDataModule) Batch(step int) Batch {
	if len(m.Inputs) == 0 {
		return Batch{}
	}
	cols := len(m.Inputs[0])
	in := tensor.New(len(m.Inputs), cols)
	for i, row := range m.Inputs {
		for j := 0; j < cols && j < len(row); j++ {
			in.Set(i, j, row[j])
		}
	}
	label := tensor.New(len(m.Labels), 1)
	for i, v := range m.Labels {
		label.Set(i, 0, v)
	}
	return Batch{Input: in, Label: label}
}
