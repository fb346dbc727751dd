package resources

import (
	"fmt"

	"github.com/acmecore/acmecore/acme"
)

// Order status values and their happy-path transition:
// pending -> ready -> processing -> valid, with a possible -> invalid at any
// point.
//
// See https://tools.ietf.org/html/rfc8555#section-7.1.6
const (
	OrderPending    = "pending"
	OrderReady      = "ready"
	OrderProcessing = "processing"
	OrderValid      = "valid"
	OrderInvalid    = "invalid"
)

// AutoRenewal carries the draft ACME auto-renewal order extension fields
// (feature-gated: only meaningful when the CA's directory metadata
// advertises AutoRenewal support).
type AutoRenewal struct {
	Start           *string `json:"start,omitempty"`
	End             *string `json:"end,omitempty"`
	LifetimeSeconds *int    `json:"lifetime,omitempty"`
	LifetimeAdjust  *int    `json:"lifetime-adjust,omitempty"`
	AllowGet        *bool   `json:"allow-get,omitempty"`
}

// Order is the ACME Order resource: a request to issue a certificate for a
// set of Identifiers.
type Order struct {
	JSONResource

	Status         string            `json:"status"`
	Identifiers    []acme.Identifier `json:"identifiers"`
	NotBefore      string            `json:"notBefore,omitempty"`
	NotAfter       string            `json:"notAfter,omitempty"`
	AutoRenewal    *AutoRenewal      `json:"auto-renewal,omitempty"`
	Error          *acme.Problem     `json:"error,omitempty"`
	Authorizations []string          `json:"authorizations"`
	Finalize       string            `json:"finalize"`
	Certificate    string            `json:"certificate,omitempty"`
	Profile        string            `json:"profile,omitempty"`
}

// CanFinalize reports whether the order is in a state that permits
// submitting a finalize request. The server makes the final call; this is
// only a client-side fast-fail.
func (o *Order) CanFinalize() bool {
	return o.Status == OrderPending || o.Status == OrderReady
}

// OrderBuilder accumulates the options for a new Order before calling
// client.CreateOrder. NotBefore/NotAfter and auto-renewal are mutually
// exclusive configuration shapes.
type OrderBuilder struct {
	identifiers []acme.Identifier
	seen        map[string]bool
	notBefore   string
	notAfter    string
	autoRenewal *AutoRenewal
	profile     string
}

// NewOrderBuilder starts an empty OrderBuilder.
func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{seen: map[string]bool{}}
}

// AddIdentifier appends an Identifier, deduplicating by (type, value) and
// preserving insertion order.
func (b *OrderBuilder) AddIdentifier(id acme.Identifier) *OrderBuilder {
	key := id.Type + ":" + id.Value
	if b.seen[key] {
		return b
	}
	b.seen[key] = true
	b.identifiers = append(b.identifiers, id)
	return b
}

// WithValidity sets notBefore/notAfter (RFC 3339 timestamps). Combining it
// with WithAutoRenewal (in either order) makes Validate return an error,
// since the two are mutually exclusive order shapes.
func (b *OrderBuilder) WithValidity(notBefore, notAfter string) *OrderBuilder {
	b.notBefore = notBefore
	b.notAfter = notAfter
	return b
}

// WithAutoRenewal sets the draft auto-renewal extension fields. Mutually
// exclusive with WithValidity.
func (b *OrderBuilder) WithAutoRenewal(r AutoRenewal) *OrderBuilder {
	b.autoRenewal = &r
	return b
}

// WithProfile selects a CA-defined certificate profile (draft extension).
func (b *OrderBuilder) WithProfile(profile string) *OrderBuilder {
	b.profile = profile
	return b
}

// Validate checks the builder invariants: at least one identifier, and
// WithValidity/WithAutoRenewal not both set.
func (b *OrderBuilder) Validate() error {
	if len(b.identifiers) == 0 {
		return fmt.Errorf("resources: order must have at least one identifier")
	}
	if b.autoRenewal != nil && (b.notBefore != "" || b.notAfter != "") {
		return fmt.Errorf("resources: notBefore/notAfter and auto-renewal are mutually exclusive")
	}
	return nil
}

// Identifiers returns the accumulated, deduplicated identifier list.
func (b *OrderBuilder) Identifiers() []acme.Identifier { return b.identifiers }

// Validity returns the configured notBefore/notAfter pair.
func (b *OrderBuilder) Validity() (notBefore, notAfter string) { return b.notBefore, b.notAfter }

// AutoRenewalConfig returns the configured auto-renewal block, if any.
func (b *OrderBuilder) AutoRenewalConfig() *AutoRenewal { return b.autoRenewal }

// Profile returns the configured profile name, if any.
func (b *OrderBuilder) Profile() string { return b.profile }
