package tensor

import "fmt"

import "github.com/klauspost/cpuid/v2"

// matmulKernel computes dst = a (m x k) times b (k x n). Selected once at
// startup: wide CPUs get the column-tiled kernel, everything else the
// plain triple loop. Both kernels accumulate in the same order so their
// outputs are bit identical.
var matmulKernel func(dst, a, b []float32, m, k, n int)

func init() {
	if cpuid.CPU.Supports(cpuid.AVX2) {
		matmulKernel = matmulTiled
	} else {
		matmulKernel = matmulNaive
	}
}

// MatMul returns d times o.
func (d *Dense) MatMul(o *Dense) (*Dense, error) {
	if d.cols != o.rows {
		return nil, fmt.Errorf("tensor: matmul shape mismatch %dx%d times %dx%d", d.rows, d.cols, o.rows, o.cols)
	}
	r := New(d.rows, o.cols)
	matmulKernel(r.data, d.data, o.data, d.rows, d.cols, o.cols)
	return r, nil
}

func matmulNaive(dst, a, b []float32, m, k, n int) {
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var acc float32
			for l := 0; l < k; l++ {
				acc += a[i*k+l] * b[l*n+j]
			}
			dst[i*n+j] = acc
		}
	}
}

// matmulTiled walks output columns in tiles of 8 so the b rows streamed
// per tile stay in cache. The per element k loop is in the same order as
// the naive kernel.
func matmulTiled(dst, a, b []float32, m, k, n int) {
	const tile = 8
	for j0 := 0; j0 < n; j0 += tile {
		j1 := j0 + tile
		if j1 > n {
			j1 = n
		}
		for i := 0; i < m; i++ {
			ai := a[i*k : (i+1)*k]
			di := dst[i*n : (i+1)*n]
			for j := j0; j < j1; j++ {
				var acc float32
				for l := 0; l < k; l++ {
					acc += ai[l] * b[l*n+j]
				}
				di[j] = acc
			}
		}
	}
}
