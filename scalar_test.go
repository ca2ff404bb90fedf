package vrm_normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSizeScalar(t *testing.T) {
	testCases := []struct {
		given    string
		expected SizeScalar
	}{
		{"1", 1},
		{"1K", 1 * _Ki},
		{"1M", 1 * _Mi},
		{"1G", 1 * _Gi},
		{"1T", 1 * _Ti},
	}
	for _, tc := range testCases {
		t.Run(tc.given, func(t *testing.T) {
			actual, err := ParseSizeScalar(tc.given)
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestSizeScalarString(t *testing.T) {
	assert.Equal(t, "0 B", SizeScalar(0).String())
	assert.Equal(t, "1 KiB", SizeScalar(_Ki).String())
	assert.Equal(t, "1.50 KiB", SizeScalar(_Ki+_Ki/2).String())
}
