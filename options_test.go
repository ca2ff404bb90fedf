package vrm_normalizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewVRMOptionsDefaults(t *testing.T) {
	o := newVRMOptions()
	assert.IsType(t, stderrSink{}, o.sink)
	assert.False(t, o.Debug)
	assert.False(t, o.MMap)
}

func TestVRMOptionsApplyInOrder(t *testing.T) {
	sink := &recordingSink{}
	o := newVRMOptions(
		UseDebug(),
		UseMMap(),
		WithDiagnosticSink(sink),
		UseBearerAuth("tok"),
		UseCache("/tmp/cache", time.Hour),
		SkipProxy(),
		SkipTLSVerification(),
		SkipDNSCache(),
		SkipRangeDownloadDetection(),
	)

	assert.True(t, o.Debug)
	assert.True(t, o.MMap)
	assert.Same(t, sink, o.sink)
	assert.Equal(t, "tok", o.BearerAuthToken)
	assert.Equal(t, "/tmp/cache", o.CachePath)
	assert.Equal(t, time.Hour, o.CacheExpiration)
	assert.True(t, o.SkipProxy)
	assert.True(t, o.SkipTLSVerification)
	assert.True(t, o.SkipDNSCache)
	assert.True(t, o.SkipRangeDownloadDetection)
}

func TestUseBufferSizeEnforcesMinimum(t *testing.T) {
	o := newVRMOptions(UseBufferSize(1024))
	assert.Equal(t, 32*1024, o.BufferSize)

	o = newVRMOptions(UseBufferSize(64 * 1024))
	assert.Equal(t, 64*1024, o.BufferSize)
}
