// Package sketch implements the Linear-Counting cardinality estimator
// shared between the client's decrypted-sketch path and the plaintext
// reference used by tests.
package sketch

import "math"

// MLC is the fixed Linear-Counting sketch length per provider.
const MLC = 2048

// Estimate applies the standard Linear-Counting estimator to a set of
// decrypted bucket values: -m*ln(V/m), where V is the number of zero
// buckets and m is len(values). If every bucket is nonzero the sketch
// is saturated and m itself is returned as a lower-bound fallback.
func Estimate(values []int64) int {
	m := len(values)
	v := 0
	for _, x := range values {
		if x == 0 {
			v++
		}
	}
	if v == 0 {
		return m
	}
	return int(math.Floor(-float64(m) * math.Log(float64(v)/float64(m))))
}
