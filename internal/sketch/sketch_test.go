package sketch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateAllZero(t *testing.T) {
	values := make([]int64, 64)
	assert.Equal(t, 0, Estimate(values))
}

func TestEstimateSaturated(t *testing.T) {
	values := make([]int64, 64)
	for i := range values {
		values[i] = 1
	}
	assert.Equal(t, 64, Estimate(values))
}

func TestEstimateKnownCase(t *testing.T) {
	values := make([]int64, 64)
	for i := 0; i < 2; i++ {
		values[i] = 1
	}
	// 62 of 64 buckets are zero: floor(-64*ln(62/64)) == 2
	assert.Equal(t, 2, Estimate(values))
}
