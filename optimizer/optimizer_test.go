package optimizer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/modelfit/nn"
	"github.com/neurlang/modelfit/tensor"
)

func param(vals, grads []float32) *nn.Parameter {
	v, _ := tensor.FromSlice(1, len(vals), vals)
	p := &nn.Parameter{Name: "w", Value: v}
	if grads != nil {
		g, _ := tensor.FromSlice(1, len(grads), grads)
		p.Grad = g
	}
	return p
}

func TestSGDStep(t *testing.T) {
	p := param([]float32{1, 2}, []float32{0.5, -1})
	o := NewSGD(0.1)
	require.NoError(t, o.Minimize([]*nn.Parameter{p}))
	assert.InDelta(t, 0.95, p.Value.At(0, 0), 1e-6)
	assert.InDelta(t, 2.1, p.Value.At(0, 1), 1e-6)
	assert.Nil(t, p.Grad, "gradient must be cleared after a step")

	// no gradient, no change
	before := p.Value.Clone()
	require.NoError(t, o.Minimize([]*nn.Parameter{p}))
	assert.Equal(t, before.Data(), p.Value.Data())
}

func TestSGDMomentum(t *testing.T) {
	p := param([]float32{0}, []float32{1})
	o := &SGD{LR: 0.1, Momentum: 0.9}
	require.NoError(t, o.Minimize([]*nn.Parameter{p}))
	assert.InDelta(t, -0.1, p.Value.At(0, 0), 1e-6)

	p.Grad = tensor.Scalar(1)
	require.NoError(t, o.Minimize([]*nn.Parameter{p}))
	// v = 0.9*(-0.1) - 0.1 = -0.19
	assert.InDelta(t, -0.29, p.Value.At(0, 0), 1e-6)
}

func TestAdamStep(t *testing.T) {
	p := param([]float32{1}, []float32{2})
	o := NewAdam(0.001)
	require.NoError(t, o.Minimize([]*nn.Parameter{p}))
	// first step: mhat = g, vhat = g*g, so the update is lr*g/(|g|+eps)
	want := 1 - 0.001*2/(float32(math.Sqrt(4))+1e-8)
	assert.InDelta(t, want, p.Value.At(0, 0), 1e-6)
	assert.Nil(t, p.Grad)
}

func TestShapeMismatch(t *testing.T) {
	p := param([]float32{1, 2}, nil)
	p.Grad = tensor.Scalar(1)
	assert.Error(t, NewSGD(0.1).Minimize([]*nn.Parameter{p}))
	p.Grad = tensor.Scalar(1)
	assert.Error(t, NewAdam(0.1).Minimize([]*nn.Parameter{p}))
}
