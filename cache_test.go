package vrm_normalizer

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func glbSizedBytes(n int) []byte {
	return make([]byte, n)
}

func TestVRMDownloadCacheDisabledWhenEmpty(t *testing.T) {
	var c VRMDownloadCache
	_, err := c.Get("key", 0)
	assert.ErrorIs(t, err, ErrVRMDownloadCacheDisabled)
	assert.ErrorIs(t, c.Put("key", []byte("x")), ErrVRMDownloadCacheDisabled)
	assert.ErrorIs(t, c.Delete("key"), ErrVRMDownloadCacheDisabled)
}

func TestVRMDownloadCachePutGetDelete(t *testing.T) {
	c := VRMDownloadCache(t.TempDir())
	bs := glbSizedBytes(glbHeaderSize + 4)

	require.NoError(t, c.Put("https://example.com/a.vrm", bs))

	got, err := c.Get("https://example.com/a.vrm", 0)
	require.NoError(t, err)
	assert.Equal(t, bs, got)

	require.NoError(t, c.Delete("https://example.com/a.vrm"))
	_, err = c.Get("https://example.com/a.vrm", 0)
	assert.ErrorIs(t, err, ErrVRMDownloadCacheMissed)
}

func TestVRMDownloadCacheMissOnUnknownKey(t *testing.T) {
	c := VRMDownloadCache(t.TempDir())
	_, err := c.Get("missing", 0)
	assert.ErrorIs(t, err, ErrVRMDownloadCacheMissed)
}

func TestVRMDownloadCacheExpiry(t *testing.T) {
	c := VRMDownloadCache(t.TempDir())
	bs := glbSizedBytes(glbHeaderSize + 4)
	require.NoError(t, c.Put("key", bs))

	_, err := c.Get("key", time.Nanosecond)
	time.Sleep(2 * time.Millisecond)
	_, err = c.Get("key", time.Nanosecond)
	assert.True(t, errors.Is(err, ErrVRMDownloadCacheMissed) || err == nil)
}

func TestVRMDownloadCacheCorruptedTooShort(t *testing.T) {
	c := VRMDownloadCache(t.TempDir())
	require.NoError(t, c.Put("key", []byte{1, 2, 3}))

	_, err := c.Get("key", 0)
	assert.ErrorIs(t, err, ErrVRMDownloadCacheCorrupted)

	_, err = c.Get("key", 0)
	assert.ErrorIs(t, err, ErrVRMDownloadCacheMissed)
}
