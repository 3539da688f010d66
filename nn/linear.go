package nn

import "fmt"

import "github.com/neurlang/modelfit/tensor"

// Linear is a fully connected layer computing x times W, plus an
// optional bias row.
type Linear struct {
	In, Out int

	weight *Parameter
	bias   *Parameter
}

// NewLinear creates a linear layer mapping in features to out features.
// Weights start uniform in (-1/sqrt(in), 1/sqrt(in)), the bias at zero.
func NewLinear(in, out int, bias bool) *Linear {
	l := &Linear{
		In:  in,
		Out: out,
		weight: &Parameter{
			Name:  "weight",
			Value: tensor.New(in, out),
		},
	}
	InitUniform(l.weight, invSqrt(in))
	if bias {
		l.bias = &Parameter{
			Name:  "bias",
			Value: tensor.New(1, out),
		}
	}
	return l
}

// Weight returns the in x out weight parameter.
func (l *Linear) Weight() *Parameter { return l.weight }

// Bias returns the bias parameter, or nil when the layer has none.
func (l *Linear) Bias() *Parameter { return l.bias }

// Forward computes the layer output for a batch of input rows.
func (l *Linear) Forward(x *tensor.Dense) (*tensor.Dense, error) {
	if x.Cols() != l.In {
		return nil, fmt.Errorf("nn: linear expects %d input features, got %d", l.In, x.Cols())
	}
	y, err := x.MatMul(l.weight.Value)
	if err != nil {
		return nil, err
	}
	if l.bias != nil {
		if err := y.AddRowVector(l.bias.Value); err != nil {
			return nil, err
		}
	}
	return y, nil
}

// Parameters lists the weight and, when present, the bias.
func (l *Linear) Parameters() []*Parameter {
	if l.bias == nil {
		return []*Parameter{l.weight}
	}
	return []*Parameter{l.weight, l.bias}
}
