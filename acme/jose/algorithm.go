// Package jose provides the crypto/JOSE glue for the ACME core: JWS
// signing in both account-key-bound ("kid") and inline-JWK modes, JWK
// thumbprints, key algorithm selection, External Account Binding, and the
// small DER/PEM helpers the finalize and revoke flows need.
package jose

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"

	gojose "github.com/go-jose/go-jose/v4"

	"github.com/acmecore/acmecore/acme"
)

// AlgorithmForKey selects the JWS signature algorithm for an asymmetric
// account key: RSA keys use RS256; EC keys use ES256/ES384/ES512 depending
// on curve. Any other key shape fails with UnsupportedKeyError.
func AlgorithmForKey(signer crypto.Signer) (gojose.SignatureAlgorithm, error) {
	switch k := signer.(type) {
	case *rsa.PrivateKey:
		return gojose.RS256, nil
	case *ecdsa.PrivateKey:
		switch k.Curve {
		case elliptic.P256():
			return gojose.ES256, nil
		case elliptic.P384():
			return gojose.ES384, nil
		case elliptic.P521():
			return gojose.ES512, nil
		}
		return "", &acme.UnsupportedKeyError{Detail: "unsupported EC curve"}
	default:
		return "", &acme.UnsupportedKeyError{Detail: "key must be RSA or ECDSA"}
	}
}

// AlgorithmForMACKey selects the JWS signature algorithm for a symmetric
// HMAC key (used for External Account Binding) based on digest length: 32
// bytes -> HS256, 48 -> HS384, 64 -> HS512.
func AlgorithmForMACKey(key []byte) (gojose.SignatureAlgorithm, error) {
	switch len(key) {
	case 32:
		return gojose.HS256, nil
	case 48:
		return gojose.HS384, nil
	case 64:
		return gojose.HS512, nil
	default:
		return "", &acme.UnsupportedKeyError{Detail: "HMAC key must be 32, 48, or 64 bytes"}
	}
}
