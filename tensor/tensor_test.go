package tensor

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestMatMul(t *testing.T) {
	a, _ := FromSlice(2, 3, []float32{1, 2, 3, 4, 5, 6})
	b, _ := FromSlice(3, 2, []float32{7, 8, 9, 10, 11, 12})
	r, err := a.MatMul(b)
	if err != nil {
		t.Fatal(err)
	}
	want := []float32{58, 64, 139, 154}
	for i, v := range r.Data() {
		if v != want[i] {
			t.Errorf("matmul element %d: got %v, want %v", i, v, want[i])
		}
	}
	if _, err := a.MatMul(a); err == nil {
		t.Error("matmul of 2x3 by 2x3 should fail")
	}
}

// the selected kernel must agree with the reference loop on every shape
func TestMatMulKernelsAgree(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for _, dims := range [][3]int{{1, 1, 1}, {3, 8, 5}, {8, 3, 8}, {17, 31, 9}, {64, 64, 64}} {
		m, k, n := dims[0], dims[1], dims[2]
		a := make([]float32, m*k)
		b := make([]float32, k*n)
		for i := range a {
			a[i] = rnd.Float32() - 0.5
		}
		for i := range b {
			b[i] = rnd.Float32() - 0.5
		}
		naive := make([]float32, m*n)
		tiled := make([]float32, m*n)
		matmulNaive(naive, a, b, m, k, n)
		matmulTiled(tiled, a, b, m, k, n)
		for i := range naive {
			if naive[i] != tiled[i] {
				t.Fatalf("kernels disagree at %d for %dx%dx%d: %v vs %v", i, m, k, n, naive[i], tiled[i])
			}
		}
	}
}

func FuzzMatMulKernelsAgree(f *testing.F) {
	f.Add(uint8(3), uint8(8), uint8(5), int64(1))
	f.Add(uint8(1), uint8(1), uint8(1), int64(2))
	f.Fuzz(func(t *testing.T, m8, k8, n8 uint8, seed int64) {
		m, k, n := int(m8%32)+1, int(k8%32)+1, int(n8%32)+1
		rnd := rand.New(rand.NewSource(seed))
		a := make([]float32, m*k)
		b := make([]float32, k*n)
		for i := range a {
			a[i] = rnd.Float32() - 0.5
		}
		for i := range b {
			b[i] = rnd.Float32() - 0.5
		}
		naive := make([]float32, m*n)
		tiled := make([]float32, m*n)
		matmulNaive(naive, a, b, m, k, n)
		matmulTiled(tiled, a, b, m, k, n)
		for i := range naive {
			if naive[i] != tiled[i] {
				t.Fatalf("kernels disagree at %d for %dx%dx%d", i, m, k, n)
			}
		}
	})
}

func TestNewNegativeDims(t *testing.T) {
	for _, d := range []*Dense{New(-1, 3), New(3, -1), New(-2, -2)} {
		if d.Rows() != 0 || d.Cols() != 0 || len(d.Data()) != 0 {
			t.Errorf("negative dimensions should yield an empty matrix, got %dx%d", d.Rows(), d.Cols())
		}
	}
}

func TestAllClose(t *testing.T) {
	a := Scalar(1)
	b := Scalar(1.000001)
	if !a.AllClose(b, 1e-5, 1e-5) {
		t.Error("values within tolerance reported as far")
	}
	c := Scalar(1.1)
	if a.AllClose(c, 1e-5, 1e-5) {
		t.Error("values out of tolerance reported as close")
	}
	if a.AllClose(New(1, 2), 1e-5, 1e-5) {
		t.Error("different shapes reported as close")
	}
}

func TestRoundTrip(t *testing.T) {
	a, _ := FromSlice(2, 2, []float32{1.5, -2.25, 0, 3.75})
	var buf bytes.Buffer
	if _, err := a.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	b := New(2, 2)
	if _, err := b.ReadFrom(&buf); err != nil {
		t.Fatal(err)
	}
	for i, v := range b.Data() {
		if v != a.Data()[i] {
			t.Errorf("element %d: got %v, want %v", i, v, a.Data()[i])
		}
	}
}

func TestTransposeRowOps(t *testing.T) {
	a, _ := FromSlice(2, 3, []float32{1, 2, 3, 4, 5, 6})
	at := a.T()
	if at.Rows() != 3 || at.Cols() != 2 || at.At(2, 1) != 6 || at.At(0, 1) != 4 {
		t.Errorf("bad transpose: %v", at.Data())
	}
	if err := a.AddRowVector(Scalar(1)); err == nil {
		t.Error("adding a 1x1 row vector to 2x3 should fail")
	}
	v, _ := FromSlice(1, 3, []float32{10, 20, 30})
	if err := a.AddRowVector(v); err != nil {
		t.Fatal(err)
	}
	if a.At(1, 2) != 36 {
		t.Errorf("got %v, want 36", a.At(1, 2))
	}
}

func BenchmarkMatMul(b *testing.B) {
	x := New(64, 64)
	y := New(64, 64)
	x.Fill(0.5)
	y.Fill(0.25)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x.MatMul(y)
	}
}
