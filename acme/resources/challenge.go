package resources

import (
	"crypto"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/acmecore/acmecore/acme"
	"github.com/acmecore/acmecore/acme/jose"
)

// Challenge status values.
//
// See https://tools.ietf.org/html/rfc8555#section-7.1.6
const (
	ChallengePending    = "pending"
	ChallengeProcessing = "processing"
	ChallengeValid      = "valid"
	ChallengeInvalid    = "invalid"
)

// Transport-layer challenge types the core knows how to compute a response
// for. http-01, dns-01 and tls-alpn-01 are RFC 8555; email-reply-00 is the
// S/MIME add-on (draft-ietf-acme-email-smime).
const (
	ChallengeHTTP01     = "http-01"
	ChallengeDNS01      = "dns-01"
	ChallengeTLSALPN01  = "tls-alpn-01"
	ChallengeEmailReply = "email-reply-00"
)

// Challenge is a polymorphic-over-Type ACME Challenge resource: a task the
// client must complete to prove control of an Authorization's identifier.
type Challenge struct {
	JSONResource

	Type      string        `json:"type"`
	URL       string        `json:"url"`
	Status    string        `json:"status"`
	Token     string        `json:"token,omitempty"`
	Validated string        `json:"validated,omitempty"`
	Error     *acme.Problem `json:"error,omitempty"`
}

// ChallengeResponse is the client-side material needed to satisfy
// a token-bearing challenge. The core never performs the file/DNS
// placement itself: it only computes this response for the caller to
// act on.
type ChallengeResponse struct {
	// KeyAuthorization is token || "." || thumbprint(accountKey).
	KeyAuthorization string
	// HTTP01Path is the well-known path a http-01 responder must serve
	// KeyAuthorization from, populated only for Type == http-01.
	HTTP01Path string
	// DNS01Record is the TXT record value ("_acme-challenge.<domain>") for
	// a dns-01 challenge: base64url(SHA-256(KeyAuthorization)). Populated
	// only for Type == dns-01.
	DNS01Record string
	// TLSALPN01Value is SHA-256(KeyAuthorization), to embed in the
	// id-pe-acmeIdentifier certificate extension. Populated only for
	// Type == tls-alpn-01.
	TLSALPN01Value []byte
}

// PrepareResponse computes the key authorization and, for the three
// transport-layer challenge types the core understands, the subtype-
// specific proof material each one needs. email-reply-00 needs
// a server-provided "from" token the caller must combine separately; only
// KeyAuthorization is populated for it here.
func (c *Challenge) PrepareResponse(accountKey crypto.Signer) (*ChallengeResponse, error) {
	if c.Token == "" {
		return nil, fmt.Errorf("resources: challenge %q has no token", c.URL)
	}

	keyAuth, err := jose.KeyAuthorization(accountKey, c.Token)
	if err != nil {
		return nil, err
	}

	resp := &ChallengeResponse{KeyAuthorization: keyAuth}

	switch c.Type {
	case ChallengeHTTP01:
		resp.HTTP01Path = "/.well-known/acme-challenge/" + c.Token
	case ChallengeDNS01:
		sum := sha256.Sum256([]byte(keyAuth))
		resp.DNS01Record = base64.RawURLEncoding.EncodeToString(sum[:])
	case ChallengeTLSALPN01:
		sum := sha256.Sum256([]byte(keyAuth))
		resp.TLSALPN01Value = sum[:]
	case ChallengeEmailReply:
		// KeyAuthorization alone; the caller combines it with the
		// server-provided "from" token per draft-ietf-acme-email-smime.
	}

	return resp, nil
}
