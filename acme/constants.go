// Package acme provides protocol-level constants, the RFC 8555 resource
// kinds, the typed error taxonomy, Problem documents and the identifier,
// timestamp and IDN helpers shared by acme/jose, acme/resources and
// acme/client.
package acme

// ResourceKind identifies one of the resource URLs carried by the ACME
// directory object.
//
// See https://tools.ietf.org/html/rfc8555#section-7.1.1
type ResourceKind string

const (
	NewNonce    ResourceKind = "newNonce"
	NewAccount  ResourceKind = "newAccount"
	NewOrder    ResourceKind = "newOrder"
	NewAuthz    ResourceKind = "newAuthz"
	RevokeCert  ResourceKind = "revokeCert"
	KeyChange   ResourceKind = "keyChange"
	RenewalInfo ResourceKind = "renewalInfo"

	// Legacy untyped directory key names, kept for compatibility with code
	// built against string directory keys.
	NEW_NONCE_ENDPOINT   = string(NewNonce)
	NEW_ACCOUNT_ENDPOINT = string(NewAccount)
	NEW_ORDER_ENDPOINT   = string(NewOrder)

	// REPLAY_NONCE_HEADER is the HTTP response header ACME servers use to
	// communicate a fresh nonce.
	//
	// See https://tools.ietf.org/html/rfc8555#section-6.5.1
	REPLAY_NONCE_HEADER = "Replay-Nonce"

	// ContentTypeJOSE is the content type of a signed ACME request body.
	ContentTypeJOSE = "application/jose+json"
	// ContentTypeJSON is the content type of a typical ACME JSON response.
	ContentTypeJSON = "application/json"
	// ContentTypeProblem is the content type of an RFC 7807 problem document.
	ContentTypeProblem = "application/problem+json"
	// ContentTypePEMChain is the content type of a downloaded certificate chain.
	ContentTypePEMChain = "application/pem-certificate-chain"
)
