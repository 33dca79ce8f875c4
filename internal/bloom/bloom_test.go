package bloom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadParams(t *testing.T) {
	_, err := New(0, 0.0001)
	assert.Error(t, err)

	_, err = New(10, 0)
	assert.Error(t, err)

	_, err = New(10, 1.5)
	assert.Error(t, err)
}

func TestContainsNoFalseNegatives(t *testing.T) {
	f, err := New(100, 0.0001)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		f.Insert(i)
	}
	for i := 0; i < 100; i++ {
		assert.True(t, f.Contains(i), "expected %d to be a member", i)
	}
}

func TestLenIsMultipleOf8(t *testing.T) {
	f, err := New(1, 0.01)
	require.NoError(t, err)
	assert.Equal(t, 0, f.Len()%8)
}

func TestBitVectorRoundTrip(t *testing.T) {
	f, err := New(10, 0.0001)
	require.NoError(t, err)
	f.Insert(3)

	count := 0
	for i := 0; i < f.Len(); i++ {
		count += f.Bit(i)
	}
	assert.Greater(t, count, 0)
}
