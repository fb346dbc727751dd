package acme

import (
	"strings"

	"golang.org/x/net/idna"
)

// idnaProfile performs IDNA2008-compatible mapping (case folding, NFC
// normalization) and Punycode label encoding for already-validated domain
// labels. VerifyDNSLength is left off: ACME identifiers may legitimately be
// longer than classic DNS label limits during testing.
var idnaProfile = idna.New(
	idna.MapForLookup(),
	idna.BidiRule(),
	idna.Transitional(false),
)

// labelSeparatorReplacer rewrites the three alternative full-width label
// separators permitted by IDNA (U+3002, U+FF0E, U+FF61) to ASCII ".".
var labelSeparatorReplacer = strings.NewReplacer(
	"。", ".",
	"．", ".",
	"｡", ".",
)

// ToACE normalizes and ACE-encodes (Punycode) a domain name identifier. It
// case-folds the input, accepts "。", "．" and "｡" as label separators, and
// passes already-ACE-encoded labels (xn--...) through unchanged. ToACE is
// idempotent: ToACE(ToACE(x)) == ToACE(x) for all valid domains.
func ToACE(domain string) (string, error) {
	normalized := labelSeparatorReplacer.Replace(domain)

	wildcard := ""
	if strings.HasPrefix(normalized, "*.") {
		wildcard = "*."
		normalized = normalized[2:]
	}

	encoded, err := idnaProfile.ToASCII(normalized)
	if err != nil {
		return "", err
	}

	return wildcard + encoded, nil
}
