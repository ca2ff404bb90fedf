package stringx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSumByFNV64aDeterministic(t *testing.T) {
	a := SumByFNV64a("https://example.com/a.vrm")
	b := SumByFNV64a("https://example.com/a.vrm")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, SumByFNV64a("https://example.com/b.vrm"))
}
