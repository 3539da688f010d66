package checkpoint

// Digest computes a rolling xorshift digest over b. It guards stored
// variables against corruption; it is not cryptographic.
func Digest(b []byte) uint32 {
	var m uint32 = 0x9e3779b9
	for _, c := range b {
		m ^= uint32(c)
		m ^= m << 2
		m ^= m << 3
		m ^= m >> 5
		m ^= m >> 7
		m ^= m << 11
		m ^= m << 13
		m ^= m >> 17
		m ^= m << 19
		m += uint32(c)
	}
	return m
}
