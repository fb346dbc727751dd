package jose

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThumbprintIsDeterministic(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	first, err := Thumbprint(key)
	require.NoError(t, err)
	second, err := Thumbprint(key)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestThumbprintDiffersAcrossKeys(t *testing.T) {
	k1, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	k2, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	t1, err := Thumbprint(k1)
	require.NoError(t, err)
	t2, err := Thumbprint(k2)
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)
}

func TestKeyAuthorization(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	thumb, err := Thumbprint(key)
	require.NoError(t, err)

	keyAuth, err := KeyAuthorization(key, "token123")
	require.NoError(t, err)
	assert.Equal(t, "token123."+thumb, keyAuth)
}
