package isprime

import "errors"
import "math"

import "github.com/neurlang/modelfit/datasets"
import "github.com/neurlang/modelfit/nn"
import "github.com/neurlang/modelfit/optimizer"
import "github.com/neurlang/modelfit/tensor"

// Module is a logistic regression over the bit features, trained with
// binary cross entropy.
type Module struct {
	*nn.Linear

	LR float32
}

// NewModule creates the classifier.
func NewModule(lr float32) *Module {
	return &Module{Linear: nn.NewLinear(Bits, 1, true), LR: lr}
}

// TrainingStep computes the batch loss and the gradients
// grad_W = 1/m X^T (sigmoid(z) - y), grad_b = mean(sigmoid(z) - y).
func (m *Module) TrainingStep(batch datasets.Batch, optimizerIdx int) (*tensor.Dense, error) {
	loss, diff, err := m.lossAndDiff(batch)
	if err != nil {
		return nil, err
	}
	grad, err := batch.Input.T().MatMul(diff)
	if err != nil {
		return nil, err
	}
	inv := 1 / float32(batch.Input.Rows())
	grad.Scale(inv)
	m.Weight().Grad = grad

	var bsum float32
	for _, v := range diff.Data() {
		bsum += v
	}
	m.Bias().Grad = tensor.Scalar(bsum * inv)
	return loss, nil
}

// ValidationStep computes the batch loss only.
func (m *Module) ValidationStep(batch datasets.Batch) (*tensor.Dense, error) {
	loss, _, err := m.lossAndDiff(batch)
	return loss, err
}

// ConfigureOptimizers returns a single Adam optimizer.
func (m *Module) ConfigureOptimizers() []optimizer.Optimizer {
	return []optimizer.Optimizer{optimizer.NewAdam(m.LR)}
}

// Accuracy scores the module on a batch at a 0.5 threshold.
func (m *Module) Accuracy(batch datasets.Batch) (float64, error) {
	z, err := m.Forward(batch.Input)
	if err != nil {
		return 0, err
	}
	hits := 0
	for i := 0; i < z.Rows(); i++ {
		predicted := sigmoid(z.At(i, 0)) >= 0.5
		expected := batch.Label.At(i, 0) >= 0.5
		if predicted == expected {
			hits++
		}
	}
	return float64(hits) / float64(z.Rows()), nil
}

func (m *Module) lossAndDiff(batch datasets.Batch) (*tensor.Dense, *tensor.Dense, error) {
	if batch.Input == nil || batch.Label == nil {
		return nil, nil, errors.New("isprime: empty batch")
	}
	z, err := m.Forward(batch.Input)
	if err != nil {
		return nil, nil, err
	}
	diff := tensor.New(z.Rows(), 1)
	var loss float32
	for i := 0; i < z.Rows(); i++ {
		p := sigmoid(z.At(i, 0))
		y := batch.Label.At(i, 0)
		diff.Set(i, 0, p-y)
		loss -= y*logClamped(p) + (1-y)*logClamped(1-p)
	}
	return tensor.Scalar(loss / float32(z.Rows())), diff, nil
}

func sigmoid(x float32) float32 {
	return float32(1 / (1 + math.Exp(-float64(x))))
}

func logClamped(x float32) float32 {
	const eps = 1e-7
	if x < eps {
		x = eps
	}
	return float32(math.Log(float64(x)))
}
