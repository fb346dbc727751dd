package jose

import (
	"crypto"
	"encoding/base64"
	"fmt"

	gojose "github.com/go-jose/go-jose/v4"
)

// JWKForSigner builds the public JWK for a crypto.Signer. Only the key is
// set; the Algorithm and KeyID fields are left empty.
func JWKForSigner(signer crypto.Signer) gojose.JSONWebKey {
	return gojose.JSONWebKey{Key: signer.Public()}
}

// Thumbprint computes the SHA-256 JWK thumbprint of a public key: the
// canonical JWK (lexicographically sorted required members, no whitespace)
// hashed and base64url-encoded without padding, per RFC 7638. The
// go-jose library's Thumbprint implementation already produces the
// canonical form required by the RFC.
func Thumbprint(signer crypto.Signer) (string, error) {
	jwk := JWKForSigner(signer)
	sum, err := jwk.Thumbprint(crypto.SHA256)
	if err != nil {
		return "", fmt.Errorf("jose: computing thumbprint: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(sum), nil
}

// KeyAuthorization computes the key authorization for a token-bearing
// challenge: token || "." || thumbprint(accountKey).
//
// See https://tools.ietf.org/html/rfc8555#section-8.1
func KeyAuthorization(accountKey crypto.Signer, token string) (string, error) {
	thumb, err := Thumbprint(accountKey)
	if err != nil {
		return "", err
	}
	return token + "." + thumb, nil
}
