package net

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMergesHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "en-US", r.Header.Get("Accept-Language"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "ok")
	}))
	defer srv.Close()

	c, err := New(Config{})
	require.NoError(t, err)

	resp, err := c.Get(srv.URL, http.Header{"Accept-Language": []string{"en-US"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Response.StatusCode)
	assert.Equal(t, "ok", string(resp.Body))
}

func TestPostSendsBodyAndHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/jose+json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "payload", string(body))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c, err := New(Config{})
	require.NoError(t, err)

	resp, err := c.Post(srv.URL, []byte("payload"), http.Header{"Content-Type": []string{"application/jose+json"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Response.StatusCode)
}

func TestHead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.Header().Set("Replay-Nonce", "abc")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := New(Config{})
	require.NoError(t, err)

	resp, err := c.Head(srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "abc", resp.Response.Header.Get("Replay-Nonce"))
}

func TestNewRejectsMissingCABundle(t *testing.T) {
	_, err := New(Config{CABundlePath: "/nonexistent/path/ca.pem"})
	assert.Error(t, err)
}
