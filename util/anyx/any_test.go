package anyx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumberConvertsDecodedJSONTypes(t *testing.T) {
	assert.Equal(t, int64(5), Number[int64](int64(5)))
	assert.Equal(t, int64(5), Number[int64](float64(5)))
	assert.Equal(t, float64(5), Number[float64](int64(5)))
	assert.Equal(t, int64(5), Number[int64]("5"))
	assert.Equal(t, int64(0), Number[int64]("not-a-number"))
	assert.Equal(t, int64(0), Number[int64](nil))
}
