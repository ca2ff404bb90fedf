package httpx

import (
	"net/http"
)

// DefaultTransport is the fallback transport Client uses when a call site
// passes no explicit ClientOption.WithTransport.
var DefaultTransport http.RoundTripper = Transport()

// Transport returns a new http.Transport with the given options, for
// Client to wrap with retry/debug behavior.
func Transport(opts ...*TransportOption) *http.Transport {
	var o *TransportOption
	if len(opts) > 0 {
		o = opts[0]
	} else {
		o = TransportOptions()
	}

	return o.transport
}
