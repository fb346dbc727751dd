package jose

import (
	"crypto"
	"errors"
	"fmt"

	gojose "github.com/go-jose/go-jose/v4"
)

// PostAsGetPayload is the distinguished empty-string payload used for
// POST-as-GET requests, as opposed to a JSON "null" payload.
const PostAsGetPayload = ""

// SignRequest carries the inputs to Sign: exactly one of KeyID and JWK must
// be set, selecting "kid" mode (all requests after account creation) or
// inline-JWK mode (newAccount, the key-change inner JWS, and a revocation
// signed with the certificate's own key). The key-change outer JWS uses kid.
type SignRequest struct {
	// URL is the target URL, always present in the protected header.
	URL string
	// Payload is the JSON request body. Use PostAsGetPayload for
	// a POST-as-GET request, and leave nil only when the wire payload
	// really is the JSON literal "null" (revocation with the plain reason
	// omitted still marshals to "{}", never nil -- this field is for the
	// rare protocol cases that want literal null).
	Payload []byte
	// Signer signs the JWS.
	Signer crypto.Signer
	// KeyID is the account URL used as the JWS "kid" header. Mutually
	// exclusive with JWK.
	KeyID string
	// JWK requests inline public key embedding instead of a "kid" header.
	// Mutually exclusive with KeyID.
	JWK bool
	// Nonce is the anti-replay nonce for this request. Required except for
	// the inner JWS of a key-change request, where inner JWS carry no nonce.
	Nonce string
	// SkipNonce marks an inner JWS that must be built without a nonce
	// header at all (rather than with an empty one).
	SkipNonce bool
}

// validate enforces SignRequest's mutual-exclusion and required-field
// invariants.
func (r *SignRequest) validate() error {
	if r.KeyID != "" && r.JWK {
		return errors.New("jose: cannot specify both KeyID and JWK")
	}
	if r.KeyID == "" && !r.JWK {
		return errors.New("jose: must specify KeyID or JWK")
	}
	if r.Signer == nil {
		return errors.New("jose: Signer must not be nil")
	}
	if r.URL == "" {
		return errors.New("jose: URL must not be empty")
	}
	if !r.SkipNonce && r.Nonce == "" {
		return errors.New("jose: Nonce is required unless SkipNonce is set")
	}
	return nil
}

// staticNonceSource feeds a single pre-fetched nonce value to go-jose's
// signer, which otherwise expects to pull nonces from a NonceSource on
// every Sign call.
type staticNonceSource string

func (n staticNonceSource) Nonce() (string, error) { return string(n), nil }

// Sign builds a flattened JWS for the given SignRequest. Headers always
// include "alg" and "url"; the nonce header is present unless SkipNonce is
// set (the inner JWS of a key-change request).
func Sign(req SignRequest) ([]byte, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	alg, err := AlgorithmForKey(req.Signer)
	if err != nil {
		return nil, err
	}

	var signingKey gojose.SigningKey
	opts := &gojose.SignerOptions{
		ExtraHeaders: map[gojose.HeaderKey]interface{}{"url": req.URL},
	}

	if req.JWK {
		signingKey = gojose.SigningKey{Key: req.Signer, Algorithm: alg}
		opts.EmbedJWK = true
	} else {
		jwk := &gojose.JSONWebKey{Key: req.Signer, Algorithm: string(alg), KeyID: req.KeyID}
		signingKey = gojose.SigningKey{Key: jwk, Algorithm: alg}
	}

	if !req.SkipNonce {
		opts.NonceSource = staticNonceSource(req.Nonce)
	}

	signer, err := gojose.NewSigner(signingKey, opts)
	if err != nil {
		return nil, fmt.Errorf("jose: building signer: %w", err)
	}

	signed, err := signer.Sign(req.Payload)
	if err != nil {
		return nil, fmt.Errorf("jose: signing request: %w", err)
	}

	return []byte(signed.FullSerialize()), nil
}

// SignMAC builds a flattened JWS signed with a symmetric HMAC key, used for
// the inner JWS of External Account Binding. The protected header always
// carries an inline "kid" (the EAB key identifier) rather than an embedded
// JWK, per RFC 8555 §7.3.4, and never carries a nonce.
func SignMAC(url string, payload []byte, kid string, macKey []byte) ([]byte, error) {
	alg, err := AlgorithmForMACKey(macKey)
	if err != nil {
		return nil, err
	}

	signingKey := gojose.SigningKey{Key: macKey, Algorithm: alg}
	opts := &gojose.SignerOptions{
		ExtraHeaders: map[gojose.HeaderKey]interface{}{"url": url},
	}
	opts.WithHeader("kid", kid)

	signer, err := gojose.NewSigner(signingKey, opts)
	if err != nil {
		return nil, fmt.Errorf("jose: building EAB signer: %w", err)
	}

	signed, err := signer.Sign(payload)
	if err != nil {
		return nil, fmt.Errorf("jose: signing EAB JWS: %w", err)
	}

	return []byte(signed.FullSerialize()), nil
}
