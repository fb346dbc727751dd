// Package net provides the low-level HTTPS transport the ACME core's
// signed-request layer (acme/client) is built on: a configured http.Client
// plus thin GET/POST/HEAD wrappers.
package net

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"runtime"
	"time"
)

const (
	version       = "0.1.0"
	userAgentBase = "acmecore"

	// DefaultConnectTimeout and DefaultReadTimeout are this client's
	// default 10s-connect/10s-read transport deadlines.
	DefaultConnectTimeout = 10 * time.Second
	DefaultReadTimeout    = 10 * time.Second
)

// Config configures an ACMENet client.
type Config struct {
	// CABundlePath is an optional file path to one or more PEM encoded CA
	// certificates to trust for HTTPS requests. If empty, the system root
	// pool is used.
	CABundlePath string
	// ConnectTimeout bounds establishing the TCP/TLS connection. Zero uses
	// DefaultConnectTimeout.
	ConnectTimeout time.Duration
	// ReadTimeout bounds waiting for and reading the response. Zero uses
	// DefaultReadTimeout.
	ReadTimeout time.Duration
}

func (c *Config) normalize() {
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
}

// ACMENet is a thin, configured HTTPS client used for every request the
// ACME core sends.
type ACMENet struct {
	httpClient *http.Client
}

// New builds an ACMENet client from Config. An empty Config is valid: it
// uses the system root CA pool and the default timeouts.
func New(conf Config) (*ACMENet, error) {
	conf.normalize()

	var roots *x509.CertPool
	if conf.CABundlePath != "" {
		pemBundle, err := os.ReadFile(conf.CABundlePath)
		if err != nil {
			return nil, fmt.Errorf("net: reading CA bundle: %w", err)
		}
		roots = x509.NewCertPool()
		if !roots.AppendCertsFromPEM(pemBundle) {
			return nil, fmt.Errorf("net: no certificates found in %q", conf.CABundlePath)
		}
	}

	dialer := &net.Dialer{Timeout: conf.ConnectTimeout}

	return &ACMENet{
		httpClient: &http.Client{
			Timeout: conf.ConnectTimeout + conf.ReadTimeout,
			Transport: &http.Transport{
				DialContext:     dialer.DialContext,
				TLSClientConfig: &tls.Config{RootCAs: roots},
			},
		},
	}, nil
}

// NetResponse is the raw result of an HTTP round trip: the parsed
// *http.Response plus its already-drained body.
type NetResponse struct {
	Response *http.Response
	Body     []byte
}

func (c *ACMENet) do(req *http.Request) (*NetResponse, error) {
	ua := fmt.Sprintf("%s/%s (%s; %s)", userAgentBase, version, runtime.GOOS, runtime.GOARCH)
	req.Header.Set("User-Agent", ua)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("net: reading response body: %w", err)
	}

	return &NetResponse{Response: resp, Body: body}, nil
}

// Do sends an already-built *http.Request. Callers (acme/client's Transport)
// set whatever method-specific headers they need before calling Do; this
// layer only owns the User-Agent, timeouts and TLS configuration.
func (c *ACMENet) Do(req *http.Request) (*NetResponse, error) {
	return c.do(req)
}

// Head builds and sends a HEAD request to url.
func (c *ACMENet) Head(url string) (*NetResponse, error) {
	req, err := http.NewRequest(http.MethodHead, url, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// Get builds and sends a GET request to url with the given extra headers
// (e.g. Accept, Accept-Language, If-Modified-Since) merged in.
func (c *ACMENet) Get(url string, headers http.Header) (*NetResponse, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	mergeHeaders(req, headers)
	return c.do(req)
}

// Post builds and sends a POST request to url with the given body and extra
// headers (Content-Type is the caller's responsibility, typically
// application/jose+json).
func (c *ACMENet) Post(url string, body []byte, headers http.Header) (*NetResponse, error) {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	mergeHeaders(req, headers)
	return c.do(req)
}

func mergeHeaders(req *http.Request, headers http.Header) {
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
}
