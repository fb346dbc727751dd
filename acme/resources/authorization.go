package resources

import (
	"fmt"

	"github.com/acmecore/acmecore/acme"
)

// Authorization status values.
//
// See https://tools.ietf.org/html/rfc8555#section-7.1.6
const (
	AuthzPending     = "pending"
	AuthzValid       = "valid"
	AuthzInvalid     = "invalid"
	AuthzDeactivated = "deactivated"
	AuthzExpired     = "expired"
	AuthzRevoked     = "revoked"
)

// Authorization is the ACME Authorization resource: a server-issued
// assertion that the account holder controls Identifier, reached by
// completing at least one of Challenges.
type Authorization struct {
	JSONResource

	Identifier acme.Identifier `json:"identifier"`
	Status     string          `json:"status"`
	Expires    string          `json:"expires,omitempty"`
	Challenges []Challenge     `json:"challenges"`
	Wildcard   bool            `json:"wildcard,omitempty"`
}

// FindChallenge returns the single Challenge of the requested type. More
// than one challenge of the same type in one Authorization is a server
// protocol violation (RFC 8555 §7.1.4) and is reported as an error rather
// than silently picking one.
func (a *Authorization) FindChallenge(challengeType string) (*Challenge, error) {
	var found *Challenge
	for i := range a.Challenges {
		if a.Challenges[i].Type != challengeType {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf(
				"resources: authorization %q has more than one %q challenge",
				a.Location, challengeType)
		}
		found = &a.Challenges[i]
	}
	if found == nil {
		return nil, fmt.Errorf(
			"resources: authorization %q has no %q challenge", a.Location, challengeType)
	}
	return found, nil
}
