package statsutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpectedFilledBuckets(t *testing.T) {
	got := ExpectedFilledBuckets(2048, 100)
	assert.InDelta(t, 97.6, got, 1.0)
}

func TestExpectedFilledBucketsZeroBuckets(t *testing.T) {
	assert.Equal(t, float64(0), ExpectedFilledBuckets(0, 10))
}

func TestFillRateSummary(t *testing.T) {
	mean, stddev, err := FillRateSummary([]float64{10, 10, 10, 10})
	require.NoError(t, err)
	assert.Equal(t, float64(10), mean)
	assert.Equal(t, float64(0), stddev)
}

func TestFillRateSummaryVaries(t *testing.T) {
	mean, stddev, err := FillRateSummary([]float64{8, 10, 12, 10})
	require.NoError(t, err)
	assert.Equal(t, float64(10), mean)
	assert.Greater(t, stddev, float64(0))
}
