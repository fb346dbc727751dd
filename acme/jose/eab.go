package jose

import (
	"crypto"
	"encoding/json"
	"fmt"
)

// ExternalAccountBinding builds the inner JWS for RFC 8555 §7.3.4 External
// Account Binding: payload is the account key's public JWK, protected
// header is {"alg": macAlg, "kid": kid, "url": newAccountURL}, signed with
// the CA-issued MAC key. The resulting JWS is included verbatim as the
// "externalAccountBinding" field of the outer newAccount request.
func ExternalAccountBinding(kid string, accountKey crypto.Signer, macKey []byte, newAccountURL string) (json.RawMessage, error) {
	jwk := JWKForSigner(accountKey)
	payload, err := json.Marshal(&jwk)
	if err != nil {
		return nil, fmt.Errorf("jose: marshaling EAB account JWK: %w", err)
	}

	jws, err := SignMAC(newAccountURL, payload, kid, macKey)
	if err != nil {
		return nil, fmt.Errorf("jose: building EAB JWS: %w", err)
	}

	return json.RawMessage(jws), nil
}
