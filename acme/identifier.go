package acme

// Identifier types recognized by the core. CA-defined types beyond these
// pass through as their raw Type string.
const (
	IdentifierDNS = "dns"
	IdentifierIP  = "ip"
)

// Identifier is a subject identifier that can be included in a certificate.
//
// See https://tools.ietf.org/html/rfc8555#section-9.7.7 and RFC 9444 for the
// AncestorDomain/SubdomainAuthAllowed extension fields.
type Identifier struct {
	// Type is the identifier kind: "dns", "ip", or a CA-defined value.
	Type string `json:"type"`
	// Value is the identifier value. For "dns" it is the ACE-encoded domain
	// name (wildcard prefix allowed in newOrder requests, never in
	// Authorization identifiers). For "ip" it is an IPv4 or IPv6 literal.
	Value string `json:"value"`
	// AncestorDomain is set for RFC 9444 short-lived subdomain delegation
	// identifiers.
	AncestorDomain string `json:"ancestorDomain,omitempty"`
	// SubdomainAuthAllowed mirrors the RFC 9444 identifier field of the same
	// name.
	SubdomainAuthAllowed bool `json:"subdomainAuthAllowed,omitempty"`
}

// DNSIdentifier builds a "dns" type Identifier for the given (already
// ACE-encoded) domain name.
func DNSIdentifier(domain string) Identifier {
	return Identifier{Type: IdentifierDNS, Value: domain}
}

// IPIdentifier builds an "ip" type Identifier for the given IPv4/IPv6
// literal.
func IPIdentifier(literal string) Identifier {
	return Identifier{Type: IdentifierIP, Value: literal}
}
