// Package resources provides the ACME (RFC 8555) resource object model:
// Account, Order, Authorization, Challenge, Certificate and RenewalInfo,
// each with the state machine its RFC section describes. Resources are
// plain data holders; the network operations that create, fetch and mutate
// them live on Session/Login in acme/client, which take a resource pointer
// and a Login the way a handle-based arena would -- avoiding
// a resources -> client import cycle and keeping resources trivially
// serializable on their own.
package resources

import (
	"time"

	"github.com/acmecore/acmecore/acme"
)

// Resource is the common base embedded by every ACME resource: an immutable
// location URL plus a one-shot rebind guard, serializable without a Login
// and rebindable exactly once after deserialization.
type Resource struct {
	// Location is the resource's server-assigned URL.
	Location string `json:"-"`
	// bound tracks whether Rebind has already been called once for this
	// resource instance; further calls fail without mutating state.
	bound bool
}

// Rebind marks a deserialized resource as attached to a Login. It is
// idempotent only for the first call: calling it again on an
// already-bound resource returns acme.ErrAlreadyBound and leaves the
// resource unmodified.
func (r *Resource) Rebind() error {
	if r.bound {
		return acme.ErrAlreadyBound
	}
	r.bound = true
	return nil
}

// Bound reports whether Rebind has been called on this resource.
func (r *Resource) Bound() bool { return r.bound }

// JSONResource is the common base for resources backed by a JSON document
// fetched from the server: Account, Order, Authorization and Challenge. It
// layers a Retry-After capture and a "has this body ever been fetched" flag
// onto Resource. Reading a field does not fetch anything: bodies are loaded
// only by the explicit acme/client fetch functions, and Retry-After is
// recorded here for the caller rather than surfaced as an error.
type JSONResource struct {
	Resource

	// Loaded reports whether the JSON body has been populated by at least
	// one fetch. The acme/client create and fetch functions set it; nothing
	// in this module loads a body automatically when it is false.
	Loaded bool
	// RetryAfter is the most recently observed Retry-After instant for this
	// resource, if the last fetch carried one.
	RetryAfter *time.Time
}

// SetRetryAfter records the Retry-After instant from the most recent fetch
// response, or clears it when the response carried none.
func (j *JSONResource) SetRetryAfter(t *time.Time) {
	j.RetryAfter = t
}
