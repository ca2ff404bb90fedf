package vrm_normalizer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vrm-tools/vrm-normalizer-go/util/osx"
	"github.com/vrm-tools/vrm-normalizer-go/util/stringx"
)

// Sentinel errors for VRMDownloadCache, mirroring the disabled/missed/
// corrupted trichotomy the teacher's file cache uses.
var (
	ErrVRMDownloadCacheDisabled  = errors.New("vrm: download cache disabled")
	ErrVRMDownloadCacheMissed    = errors.New("vrm: download cache missed")
	ErrVRMDownloadCacheCorrupted = errors.New("vrm: download cache corrupted")
)

// VRMDownloadCache is an on-disk cache, keyed by source URL, for the raw GLB
// bytes fetched by LoadRemote (§6.2). It never stores a parsed or
// normalized document: normalization always runs fresh against the cached
// bytes, so a change to this program's normalization logic can't be masked
// by a stale cache entry.
type VRMDownloadCache string

func (c VRMDownloadCache) getKeyPath(key string) string {
	k := stringx.SumByFNV64a(key)
	return filepath.Join(string(c), k[:1], k)
}

// Get returns the cached bytes for key if present and younger than exp (0
// disables the age check).
func (c VRMDownloadCache) Get(key string, exp time.Duration) ([]byte, error) {
	if c == "" {
		return nil, ErrVRMDownloadCacheDisabled
	}
	if key == "" {
		return nil, ErrVRMDownloadCacheMissed
	}

	p := c.getKeyPath(key)
	if !osx.Exists(p, func(stat os.FileInfo) bool {
		if !stat.Mode().IsRegular() {
			return false
		}
		return exp == 0 || time.Since(stat.ModTime()) < exp
	}) {
		return nil, ErrVRMDownloadCacheMissed
	}

	bs, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("vrm download cache get: %w", err)
	}
	if len(bs) < glbHeaderSize {
		_ = os.Remove(p)
		return nil, ErrVRMDownloadCacheCorrupted
	}
	return bs, nil
}

// Put stores raw, not-yet-normalized GLB bytes under key. The write lands
// under a random sibling name first, then gets renamed into place, so a
// crash or Ctrl+C mid-write never leaves a truncated entry for Get to read
// back as corrupted cache data (unlike the CLI's own output path, a cache
// entry has no ordering contract forbidding this).
func (c VRMDownloadCache) Put(key string, bs []byte) error {
	if c == "" {
		return ErrVRMDownloadCacheDisabled
	}
	if key == "" || len(bs) == 0 {
		return nil
	}

	p := c.getKeyPath(key)
	tmp := p + ".tmp-" + stringx.RandomHex(4)
	if err := osx.WriteFile(tmp, bs, 0o600); err != nil {
		return fmt.Errorf("vrm download cache put: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("vrm download cache put: %w", err)
	}
	return nil
}

// Delete evicts key.
func (c VRMDownloadCache) Delete(key string) error {
	if c == "" {
		return ErrVRMDownloadCacheDisabled
	}
	if key == "" {
		return ErrVRMDownloadCacheMissed
	}

	p := c.getKeyPath(key)
	if !osx.ExistsFile(p) {
		return ErrVRMDownloadCacheMissed
	}
	if err := os.Remove(p); err != nil {
		return fmt.Errorf("vrm download cache delete: %w", err)
	}
	return nil
}
