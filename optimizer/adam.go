package optimizer

import "fmt"
import "math"

import "github.com/neurlang/modelfit/nn"

// Adam is the Adam optimizer with bias corrected moment estimates.
type Adam struct {
	LR          float32
	Beta1       float32
	Beta2       float32
	Epsilon     float32
	WeightDecay float32

	step int
	m    map[*nn.Parameter][]float32
	v    map[*nn.Parameter][]float32
}

// NewAdam creates an Adam optimizer with the usual defaults.
func NewAdam(lr float32) *Adam {
	return &Adam{
		LR:      lr,
		Beta1:   0.9,
		Beta2:   0.999,
		Epsilon: 1e-8,
	}
}

// Minimize applies one Adam update to every parameter with a gradient.
func (o *Adam) Minimize(params []*nn.Parameter) error {
	o.step++
	c1 := 1 - float32(math.Pow(float64(o.Beta1), float64(o.step)))
	c2 := 1 - float32(math.Pow(float64(o.Beta2), float64(o.step)))
	for _, p := range params {
		if p.Grad == nil {
			continue
		}
		w := p.Value.Data()
		g := p.Grad.Data()
		if len(w) != len(g) {
			return fmt.Errorf("optimizer: %s gradient has %d elements, value has %d", p.Name, len(g), len(w))
		}
		if o.m == nil {
			o.m = make(map[*nn.Parameter][]float32)
			o.v = make(map[*nn.Parameter][]float32)
		}
		m := o.m[p]
		v := o.v[p]
		if m == nil {
			m = make([]float32, len(w))
			v = make([]float32, len(w))
			o.m[p] = m
			o.v[p] = v
		}
		for i := range w {
			grad := g[i]
			if o.WeightDecay != 0 {
				grad += o.WeightDecay * w[i]
			}
			m[i] = o.Beta1*m[i] + (1-o.Beta1)*grad
			v[i] = o.Beta2*v[i] + (1-o.Beta2)*grad*grad
			mhat := m[i] / c1
			vhat := v[i] / c2
			w[i] -= o.LR * mhat / (float32(math.Sqrt(float64(vhat))) + o.Epsilon)
		}
		p.Grad = nil
	}
	return nil
}
