package acme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevocationReasonFromCode(t *testing.T) {
	valid := []int{0, 1, 2, 3, 4, 5, 6, 8, 9, 10}
	for _, code := range valid {
		r, err := RevocationReasonFromCode(code)
		require.NoError(t, err, "code %d should be valid", code)
		assert.Equal(t, RevocationReason(code), r)
	}
}

func TestRevocationReasonFromCodeRejectsUnused(t *testing.T) {
	// Code 7 is "unused" in RFC 5280's CRL reason code registry and must
	// be rejected rather than silently accepted.
	_, err := RevocationReasonFromCode(7)
	assert.Error(t, err)
}

func TestRevocationReasonFromCodeRejectsOutOfRange(t *testing.T) {
	for _, code := range []int{-1, 11, 100} {
		_, err := RevocationReasonFromCode(code)
		assert.Error(t, err, "code %d should be rejected", code)
	}
}
