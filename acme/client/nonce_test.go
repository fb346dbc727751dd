package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoncePoolPutTakeRoundTrip(t *testing.T) {
	var p noncePool
	assert.Equal(t, "", p.take(), "empty pool returns empty string")

	p.put("b25jZQ") // valid base64url, no padding
	assert.Equal(t, "b25jZQ", p.take())
	assert.Equal(t, "", p.take(), "take clears the slot")
}

func TestNoncePoolRejectsMalformedNonce(t *testing.T) {
	var p noncePool
	p.put("not valid base64url!!")
	assert.Equal(t, "", p.take(), "malformed nonce must be silently dropped")
}

func TestNoncePoolLatestReplacesPrevious(t *testing.T) {
	var p noncePool
	p.put("b25jZQ")
	p.put("b25jZTI")
	assert.Equal(t, "b25jZTI", p.take(), "a freshly surrendered nonce replaces the cached one")
}

func TestNoncePoolIgnoresEmptyString(t *testing.T) {
	var p noncePool
	p.put("b25jZQ")
	p.put("")
	assert.Equal(t, "b25jZQ", p.take(), "an empty Replay-Nonce header must not clear a cached nonce")
}
