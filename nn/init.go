package nn

import "math"
import "math/rand"

// InitConstant fills the parameter value with v.
func InitConstant(p *Parameter, v float32) {
	p.Value.Fill(v)
}

// InitUniform fills the parameter value uniformly from (-bound, bound).
func InitUniform(p *Parameter, bound float32) {
	data := p.Value.Data()
	for i := range data {
		data[i] = (2*rand.Float32() - 1) * bound
	}
}

func invSqrt(n int) float32 {
	if n <= 0 {
		return 1
	}
	return float32(1 / math.Sqrt(float64(n)))
}
