// Package tensor implements the dense float32 matrix type used by modelfit models
package tensor

import "fmt"
import "math"

// Dense is a dense row-major float32 matrix. Scalars are 1x1, row
// vectors are 1xN.
type Dense struct {
	rows, cols int
	data       []float32
}

// New creates a zero filled rows x cols matrix. Negative dimensions are
// treated as zero, so the result is an empty 0x0 matrix.
func New(rows, cols int) *Dense {
	if rows < 0 || cols < 0 {
		rows, cols = 0, 0
	}
	return &Dense{rows: rows, cols: cols, data: make([]float32, rows*cols)}
}

// FromSlice wraps data as a rows x cols matrix. The slice is copied.
func FromSlice(rows, cols int, data []float32) (*Dense, error) {
	if rows*cols != len(data) {
		return nil, fmt.Errorf("tensor: %dx%d needs %d values, got %d", rows, cols, rows*cols, len(data))
	}
	d := New(rows, cols)
	copy(d.data, data)
	return d, nil
}

// Scalar creates a 1x1 matrix holding v.
func Scalar(v float32) *Dense {
	d := New(1, 1)
	d.data[0] = v
	return d
}

// Rows returns the row count.
func (d *Dense) Rows() int { return d.rows }

// Cols returns the column count.
func (d *Dense) Cols() int { return d.cols }

// At returns the element at row i, column j.
func (d *Dense) At(i, j int) float32 { return d.data[i*d.cols+j] }

// Set stores v at row i, column j.
func (d *Dense) Set(i, j int, v float32) { d.data[i*d.cols+j] = v }

// Item returns the single element of a 1x1 matrix.
func (d *Dense) Item() float32 {
	if len(d.data) == 0 {
		return 0
	}
	return d.data[0]
}

// Data exposes the backing slice. Callers must not resize it.
func (d *Dense) Data() []float32 { return d.data }

// Fill sets every element to v.
func (d *Dense) Fill(v float32) {
	for i := range d.data {
		d.data[i] = v
	}
}

// Clone returns a deep copy.
func (d *Dense) Clone() *Dense {
	o := New(d.rows, d.cols)
	copy(o.data, d.data)
	return o
}

// T returns the transposed copy.
func (d *Dense) T() *Dense {
	o := New(d.cols, d.rows)
	for i := 0; i < d.rows; i++ {
		for j := 0; j < d.cols; j++ {
			o.data[j*o.cols+i] = d.data[i*d.cols+j]
		}
	}
	return o
}

// RowRange returns a copy of rows [i, j).
func (d *Dense) RowRange(i, j int) *Dense {
	if i < 0 {
		i = 0
	}
	if j > d.rows {
		j = d.rows
	}
	if j < i {
		j = i
	}
	o := New(j-i, d.cols)
	copy(o.data, d.data[i*d.cols:j*d.cols])
	return o
}

// SetRowRange overwrites rows starting at row i with the rows of src.
func (d *Dense) SetRowRange(i int, src *Dense) error {
	if src.cols != d.cols || i < 0 || i+src.rows > d.rows {
		return fmt.Errorf("tensor: cannot place %dx%d at row %d of %dx%d", src.rows, src.cols, i, d.rows, d.cols)
	}
	copy(d.data[i*d.cols:], src.data)
	return nil
}

// Scale multiplies every element by v in place.
func (d *Dense) Scale(v float32) {
	for i := range d.data {
		d.data[i] *= v
	}
}

// Sub returns d - o.
func (d *Dense) Sub(o *Dense) (*Dense, error) {
	if d.rows != o.rows || d.cols != o.cols {
		return nil, fmt.Errorf("tensor: sub shape mismatch %dx%d vs %dx%d", d.rows, d.cols, o.rows, o.cols)
	}
	r := New(d.rows, d.cols)
	for i := range d.data {
		r.data[i] = d.data[i] - o.data[i]
	}
	return r, nil
}

// AddRowVector adds the 1xN row vector v to every row of d in place.
func (d *Dense) AddRowVector(v *Dense) error {
	if v.rows != 1 || v.cols != d.cols {
		return fmt.Errorf("tensor: row vector must be 1x%d, got %dx%d", d.cols, v.rows, v.cols)
	}
	for i := 0; i < d.rows; i++ {
		row := d.data[i*d.cols : (i+1)*d.cols]
		for j := range row {
			row[j] += v.data[j]
		}
	}
	return nil
}

// AllClose reports whether d and o have the same shape and every pair of
// elements is within atol + rtol*|b|.
func (d *Dense) AllClose(o *Dense, rtol, atol float64) bool {
	if d.rows != o.rows || d.cols != o.cols {
		return false
	}
	for i := range d.data {
		a, b := float64(d.data[i]), float64(o.data[i])
		if math.IsNaN(a) || math.IsNaN(b) {
			return false
		}
		if math.Abs(a-b) > atol+rtol*math.Abs(b) {
			return false
		}
	}
	return true
}
