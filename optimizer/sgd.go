package optimizer

import "fmt"

import "github.com/neurlang/modelfit/nn"

// SGD is stochastic gradient descent with optional momentum.
type SGD struct {
	LR       float32
	Momentum float32

	velocity map[*nn.Parameter][]float32
}

// NewSGD creates a plain SGD optimizer.
func NewSGD(lr float32) *SGD {
	return &SGD{LR: lr}
}

// Minimize applies w -= lr*g, with a velocity buffer when momentum is set.
func (o *SGD) Minimize(params []*nn.Parameter) error {
	for _, p := range params {
		if p.Grad == nil {
			continue
		}
		w := p.Value.Data()
		g := p.Grad.Data()
		if len(w) != len(g) {
			return fmt.Errorf("optimizer: %s gradient has %d elements, value has %d", p.Name, len(g), len(w))
		}
		if o.Momentum != 0 {
			if o.velocity == nil {
				o.velocity = make(map[*nn.Parameter][]float32)
			}
			v := o.velocity[p]
			if v == nil {
				v = make([]float32, len(w))
				o.velocity[p] = v
			}
			for i := range w {
				v[i] = o.Momentum*v[i] - o.LR*g[i]
				w[i] += v[i]
			}
		} else {
			for i := range w {
				w[i] -= o.LR * g[i]
			}
		}
		p.Grad = nil
	}
	return nil
}
