package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxResultsFor_LengthTiers(t *testing.T) {
	assert.Equal(t, 50, MaxResultsFor(0))
	assert.Equal(t, 50, MaxResultsFor(1))
	assert.Equal(t, 100, MaxResultsFor(2))
	assert.Equal(t, 200, MaxResultsFor(3))
	assert.Equal(t, 200, MaxResultsFor(4))
	assert.Equal(t, 500, MaxResultsFor(5))
	assert.Equal(t, 500, MaxResultsFor(100))
}

func TestMaxResultsFor_NeverDecreasesWithLength(t *testing.T) {
	prev := 0
	for length := range 50 {
		cap := MaxResultsFor(length)
		assert.GreaterOrEqual(t, cap, prev, "length %d", length)
		prev = cap
	}
}
