package jose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalSignerRoundTrip(t *testing.T) {
	for _, keyType := range []string{"ecdsa", "rsa"} {
		t.Run(keyType, func(t *testing.T) {
			key, err := NewSigner(keyType)
			require.NoError(t, err)

			der, typ, err := MarshalSigner(key)
			require.NoError(t, err)
			assert.Equal(t, keyType, typ)

			restored, err := UnmarshalSigner(der, typ)
			require.NoError(t, err)
			assert.True(t, EqualPrivateKey(key, restored))
		})
	}
}

func TestEqualPrivateKeyDetectsDifference(t *testing.T) {
	a, err := NewSigner("ecdsa")
	require.NoError(t, err)
	b, err := NewSigner("ecdsa")
	require.NoError(t, err)
	assert.False(t, EqualPrivateKey(a, b))
}

func TestNewSignerRejectsUnknownType(t *testing.T) {
	_, err := NewSigner("dsa")
	assert.Error(t, err)
}
