package common

// WipeByteArray zeroes the buffer in place. Safe to call with nil.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
