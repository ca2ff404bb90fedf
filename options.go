package vrm_normalizer

import (
	"net/url"
	"time"
)

type (
	vrmOptions struct {
		sink DiagnosticSink

		Debug bool

		// Local.
		MMap bool

		// Remote.
		ProxyURL                   *url.URL
		SkipProxy                  bool
		SkipTLSVerification        bool
		SkipDNSCache               bool
		SkipRangeDownloadDetection bool
		BufferSize                 int
		BearerAuthToken            string
		CachePath                  string
		CacheExpiration            time.Duration
	}
	// VRMReadOption configures Load, LoadLocal and LoadRemote.
	VRMReadOption func(o *vrmOptions)
)

func newVRMOptions(opts ...VRMReadOption) vrmOptions {
	o := vrmOptions{sink: stderrSink{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithDiagnosticSink overrides where non-fatal sweep warnings go. Tests use
// this to capture warnings instead of writing to stderr.
func WithDiagnosticSink(sink DiagnosticSink) VRMReadOption {
	return func(o *vrmOptions) {
		o.sink = sink
	}
}

// UseDebug turns on the full HTTP request/response trace for a remote
// fetch, and the buffer relocator's "relocate i/n" / "skip n" progress
// lines (SPEC_FULL.md §9) — both otherwise silent.
func UseDebug() VRMReadOption {
	return func(o *vrmOptions) {
		o.Debug = true
	}
}

// UseMMap makes LoadLocal memory-map the file instead of reading it through
// an open *os.File.
func UseMMap() VRMReadOption {
	return func(o *vrmOptions) {
		o.MMap = true
	}
}

// UseProxy uses the given url as a proxy when fetching from a remote source.
func UseProxy(u *url.URL) VRMReadOption {
	return func(o *vrmOptions) {
		o.ProxyURL = u
	}
}

// SkipProxy skips the environment's proxy when fetching from a remote source.
func SkipProxy() VRMReadOption {
	return func(o *vrmOptions) {
		o.SkipProxy = true
	}
}

// SkipTLSVerification skips TLS verification when fetching from a remote
// source.
func SkipTLSVerification() VRMReadOption {
	return func(o *vrmOptions) {
		o.SkipTLSVerification = true
	}
}

// SkipDNSCache skips the resolver cache when fetching from a remote source.
func SkipDNSCache() VRMReadOption {
	return func(o *vrmOptions) {
		o.SkipDNSCache = true
	}
}

// SkipRangeDownloadDetection skips the HEAD probe for range-download
// support; some servers respond to GET correctly despite a missing or
// incorrect Accept-Ranges header.
func SkipRangeDownloadDetection() VRMReadOption {
	return func(o *vrmOptions) {
		o.SkipRangeDownloadDetection = true
	}
}

// UseBufferSize sets the read-ahead buffer size used when fetching from a
// remote source.
func UseBufferSize(size int) VRMReadOption {
	const minSize = 32 * 1024
	if size < minSize {
		size = minSize
	}
	return func(o *vrmOptions) {
		o.BufferSize = size
	}
}

// UseBearerAuth sets the bearer token used when fetching from a remote
// source.
func UseBearerAuth(token string) VRMReadOption {
	return func(o *vrmOptions) {
		o.BearerAuthToken = token
	}
}

// UseCache enables the on-disk download cache at path, treating entries
// older than exp as missing (0 disables the age check).
func UseCache(path string, exp time.Duration) VRMReadOption {
	return func(o *vrmOptions) {
		o.CachePath = path
		o.CacheExpiration = exp
	}
}
