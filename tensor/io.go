package tensor

import "encoding/binary"
import "io"
import "math"

// WriteTo writes the elements as little endian float32, row major.
func (d *Dense) WriteTo(w io.Writer) (int64, error) {
	var buf [4]byte
	var n int64
	for _, v := range d.data {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
		wn, err := w.Write(buf[:])
		n += int64(wn)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// ReadFrom fills the matrix from little endian float32 data. The shape
// must be set before reading.
func (d *Dense) ReadFrom(r io.Reader) (int64, error) {
	var buf [4]byte
	var n int64
	for i := range d.data {
		rn, err := io.ReadFull(r, buf[:])
		n += int64(rn)
		if err != nil {
			return n, err
		}
		d.data[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[:]))
	}
	return n, nil
}
