package security

import (
	"crypto/subtle"
	"math/big"
	"runtime"
)

// Zero overwrites a byte slice so key material does not linger in memory.
// subtle.ConstantTimeCopy keeps the compiler from eliding the store.
func Zero(data []byte) {
	if len(data) == 0 {
		return
	}

	zeros := make([]byte, len(data))
	subtle.ConstantTimeCopy(1, data, zeros)

	runtime.KeepAlive(data)
}

// ZeroBigInt clears a big.Int holding secret material. Go's big.Int does not
// expose its internal limbs, so setting the value to zero is the practical
// limit of what can be done; the old limbs are left to the collector.
func ZeroBigInt(b *big.Int) {
	if b == nil {
		return
	}
	b.SetInt64(0)
	runtime.KeepAlive(b)
}

// ConstantTimeCompare reports whether two byte slices are equal without
// leaking the position of the first difference
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
