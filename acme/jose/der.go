package jose

import "encoding/base64"

// B64URL base64url-encodes (no padding) opaque DER bytes: a CSR for order
// finalization, or a certificate for revocation. Both are treated as opaque
// DER blobs -- only the encoding is this package's concern.
func B64URL(der []byte) string {
	return base64.RawURLEncoding.EncodeToString(der)
}

// B64URLDecode reverses B64URL.
func B64URLDecode(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}
