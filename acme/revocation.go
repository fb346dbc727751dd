package acme

import "fmt"

// RevocationReason is a subset of the RFC 5280 CRL reason codes accepted by
// ACME's revokeCert resource.
//
// See https://tools.ietf.org/html/rfc8555#section-7.6
type RevocationReason int

const (
	ReasonUnspecified          RevocationReason = 0
	ReasonKeyCompromise        RevocationReason = 1
	ReasonCACompromise         RevocationReason = 2
	ReasonAffiliationChanged   RevocationReason = 3
	ReasonSuperseded           RevocationReason = 4
	ReasonCessationOfOperation RevocationReason = 5
	ReasonCertificateHold      RevocationReason = 6
	ReasonRemoveFromCRL        RevocationReason = 8
	ReasonPrivilegeWithdrawn   RevocationReason = 9
	ReasonAACompromise         RevocationReason = 10
)

var validReasons = map[RevocationReason]bool{
	ReasonUnspecified:          true,
	ReasonKeyCompromise:        true,
	ReasonCACompromise:         true,
	ReasonAffiliationChanged:   true,
	ReasonSuperseded:           true,
	ReasonCessationOfOperation: true,
	ReasonCertificateHold:      true,
	ReasonRemoveFromCRL:        true,
	ReasonPrivilegeWithdrawn:   true,
	ReasonAACompromise:         true,
}

// RevocationReasonFromCode validates a CRL reason code against the subset
// ACME accepts, returning an error for codes like 7 ("unused") that RFC 5280
// does not define.
func RevocationReasonFromCode(code int) (RevocationReason, error) {
	r := RevocationReason(code)
	if !validReasons[r] {
		return 0, fmt.Errorf("acme: %d is not a valid revocation reason code", code)
	}
	return r, nil
}
