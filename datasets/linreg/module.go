package linreg

import "errors"

import "github.com/neurlang/modelfit/datasets"
import "github.com/neurlang/modelfit/nn"
import "github.com/neurlang/modelfit/optimizer"
import "github.com/neurlang/modelfit/tensor"

// Module is a bias free linear regression model trained with mean
// squared error.
type Module struct {
	*nn.Linear

	// LR is the learning rate handed to the configured optimizer.
	LR float32
}

// NewModule creates a linear regression module over features inputs.
func NewModule(features int, lr float32) *Module {
	return &Module{Linear: nn.NewLinear(features, 1, false), LR: lr}
}

// TrainingStep computes the batch loss and fills the weight gradient:
// grad = 2/m X^T (XW - y).
func (m *Module) TrainingStep(batch datasets.Batch, optimizerIdx int) (*tensor.Dense, error) {
	if batch.Input == nil || batch.Label == nil {
		return nil, errors.New("linreg: empty batch")
	}
	preds, err := m.Forward(batch.Input)
	if err != nil {
		return nil, err
	}
	diff, err := preds.Sub(batch.Label)
	if err != nil {
		return nil, err
	}
	grad, err := batch.Input.T().MatMul(diff)
	if err != nil {
		return nil, err
	}
	grad.Scale(2 / float32(batch.Input.Rows()))
	m.Weight().Grad = grad
	return mse(diff), nil
}

// ValidationStep computes the batch loss without touching gradients.
func (m *Module) ValidationStep(batch datasets.Batch) (*tensor.Dense, error) {
	if batch.Input == nil || batch.Label == nil {
		return nil, errors.New("linreg: empty batch")
	}
	preds, err := m.Forward(batch.Input)
	if err != nil {
		return nil, err
	}
	diff, err := preds.Sub(batch.Label)
	if err != nil {
		return nil, err
	}
	return mse(diff), nil
}

// ConfigureOptimizers returns a single SGD optimizer.
func (m *Module) ConfigureOptimizers() []optimizer.Optimizer {
	return []optimizer.Optimizer{optimizer.NewSGD(m.LR)}
}

func mse(diff *tensor.Dense) *tensor.Dense {
	var sum float32
	for _, v := range diff.Data() {
		sum += v * v
	}
	return tensor.Scalar(sum / float32(len(diff.Data())))
}
