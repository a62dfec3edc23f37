package eventbrite

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	host       string
	timeout    time.Duration
	httpClient *http.Client
	userAgent  string
	bearer     bool
}

func defaultOptions() *clientOptions {
	return &clientOptions{
		host:      DefaultHost,
		timeout:   defaultTimeout,
		userAgent: defaultUserAgent,
	}
}

// WithHost overrides the API host, e.g. for a proxy or a test server.
// A trailing "/v3" is accepted and ignored.
func WithHost(host string) Option {
	return func(o *clientOptions) {
		if host != "" {
			o.host = host
		}
	}
}

// WithTimeout sets the HTTP client timeout.
// It has no effect when WithHTTPClient is also used.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}

// WithBearerAuth sends the token in an Authorization header instead of
// the token query parameter.
func WithBearerAuth() Option {
	return func(o *clientOptions) {
		o.bearer = true
	}
}
