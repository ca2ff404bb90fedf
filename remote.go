package vrm_normalizer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vrm-tools/vrm-normalizer-go/util/httpx"
	"github.com/vrm-tools/vrm-normalizer-go/util/osx"
)

// LoadRemote fetches a VRM file from a remote URL (§6.2) and decodes it, the
// same way Load decodes a local one. Unlike a local file, the whole body is
// read into memory first (and stored in the download cache when UseCache is
// set); Load and the relocator then read that in-memory copy sequentially.
func LoadRemote(ctx context.Context, url string, opts ...VRMReadOption) (*VRM, error) {
	o := newVRMOptions(opts...)

	bs, err := fetchVRMBytes(ctx, url, o)
	if err != nil {
		return nil, fmt.Errorf("load vrm remote: %w", err)
	}
	return Load(bytes.NewReader(bs), opts...)
}

func fetchVRMBytes(ctx context.Context, url string, o vrmOptions) ([]byte, error) {
	c := VRMDownloadCache(o.CachePath)
	if bs, err := c.Get(url, o.CacheExpiration); err == nil {
		return bs, nil
	}

	cli := httpx.Client(
		httpx.ClientOptions().
			WithUserAgent("vrm-normalizer-go").
			If(o.Debug, func(x *httpx.ClientOption) *httpx.ClientOption {
				return x.WithDebug()
			}).
			If(o.BearerAuthToken != "", func(x *httpx.ClientOption) *httpx.ClientOption {
				return x.WithBearerAuth(o.BearerAuthToken)
			}).
			WithTimeout(0).
			WithTransport(
				httpx.TransportOptions().
					WithoutKeepalive().
					TimeoutForDial(5*time.Second).
					TimeoutForTLSHandshake(5*time.Second).
					TimeoutForResponseHeader(5*time.Second).
					If(o.SkipProxy, func(x *httpx.TransportOption) *httpx.TransportOption {
						return x.WithoutProxy()
					}).
					If(o.ProxyURL != nil, func(x *httpx.TransportOption) *httpx.TransportOption {
						return x.WithProxy(http.ProxyURL(o.ProxyURL))
					}).
					If(o.SkipTLSVerification || !strings.HasPrefix(url, "https://"), func(x *httpx.TransportOption) *httpx.TransportOption {
						return x.WithoutInsecureVerify()
					}).
					If(o.SkipDNSCache, func(x *httpx.TransportOption) *httpx.TransportOption {
						return x.WithoutDNSCache()
					}),
			),
	)

	req, err := httpx.NewGetRequestWithContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	sf, err := httpx.OpenSeekerFile(cli, req,
		httpx.SeekerFileOptions().
			WithBufferSize(o.BufferSize).
			If(o.SkipRangeDownloadDetection, func(x *httpx.SeekerFileOption) *httpx.SeekerFileOption {
				return x.WithoutRangeDownloadDetect()
			}),
	)
	if err != nil {
		return nil, fmt.Errorf("open remote file: %w", err)
	}
	defer osx.Close(sf)

	bs, err := io.ReadAll(io.NewSectionReader(sf, 0, sf.Len()))
	if err != nil {
		return nil, fmt.Errorf("read remote file: %w", err)
	}

	_ = c.Put(url, bs)
	return bs, nil
}
