package resources

import (
	"crypto"

	"github.com/acmecore/acmecore/acme"
)

// Account status values.
//
// See https://tools.ietf.org/html/rfc8555#section-7.1.2
const (
	AccountValid       = "valid"
	AccountDeactivated = "deactivated"
	AccountRevoked     = "revoked"
	AccountUnknown     = "unknown"
)

// Account is the ACME Account resource: the server-side registration of an
// account key, a set of contacts, and (via OrdersURL) an iterator over the
// Orders the account created.
//
// Terminal states are AccountDeactivated and AccountRevoked; neither can be
// left once entered.
type Account struct {
	JSONResource

	Status               string   `json:"status"`
	TermsOfServiceAgreed *bool    `json:"termsOfServiceAgreed,omitempty"`
	Contact              []string `json:"contact,omitempty"`
	OrdersURL            string   `json:"orders,omitempty"`
}

// IsTerminal reports whether the Account is in a terminal (deactivated or
// revoked) state.
func (a *Account) IsTerminal() bool {
	return a.Status == AccountDeactivated || a.Status == AccountRevoked
}

// Draft is a mutable edit of an Account's contacts, produced by Modify and
// applied with a signed POST containing only the changed fields.
type Draft struct {
	Contact []string
}

// Modify returns an editable Draft seeded with the Account's current
// contacts. The caller mutates Draft.Contact and passes it to
// client.UpdateAccount to commit.
func (a *Account) Modify() *Draft {
	contacts := make([]string, len(a.Contact))
	copy(contacts, a.Contact)
	return &Draft{Contact: contacts}
}

// AccountBuilder accumulates the options for a new ACME account before
// calling client.CreateAccount.
type AccountBuilder struct {
	contacts     []string
	tosAgreed    bool
	onlyExisting bool
	eabKeyID     string
	eabMACKey    []byte
	key          crypto.Signer
}

// NewAccountBuilder starts an AccountBuilder for the given account key
// pair, the one field every new-account request requires.
func NewAccountBuilder(key crypto.Signer) *AccountBuilder {
	return &AccountBuilder{key: key}
}

// KeyPair returns the account key pair the builder was constructed with.
func (b *AccountBuilder) KeyPair() crypto.Signer { return b.key }

// AddContact appends a contact URI, validating that a "mailto:" URI rejects
// multiple recipients or header fields (RFC 6068).
func (b *AccountBuilder) AddContact(uri string) error {
	if err := acme.ValidateContact(uri); err != nil {
		return err
	}
	b.contacts = append(b.contacts, uri)
	return nil
}

// AgreeToTermsOfService sets the termsOfServiceAgreed flag sent at account
// creation.
func (b *AccountBuilder) AgreeToTermsOfService() *AccountBuilder {
	b.tosAgreed = true
	return b
}

// OnlyReturnExisting sets onlyReturnExisting: the server must return the
// existing account for the signing key rather than creating a new one, or
// fail with accountDoesNotExist.
func (b *AccountBuilder) OnlyReturnExisting() *AccountBuilder {
	b.onlyExisting = true
	return b
}

// WithExternalAccountBinding configures the (kid, macKey) pair used to
// build the EAB inner JWS, required when the CA's directory metadata sets
// ExternalAccountRequired.
func (b *AccountBuilder) WithExternalAccountBinding(kid string, macKey []byte) *AccountBuilder {
	b.eabKeyID = kid
	b.eabMACKey = macKey
	return b
}

// Contacts returns the accumulated contact list.
func (b *AccountBuilder) Contacts() []string { return b.contacts }

// TermsOfServiceAgreed reports whether AgreeToTermsOfService was called.
func (b *AccountBuilder) TermsOfServiceAgreed() bool { return b.tosAgreed }

// OnlyExisting reports whether OnlyReturnExisting was called.
func (b *AccountBuilder) OnlyExisting() bool { return b.onlyExisting }

// ExternalAccountBinding returns the configured (kid, macKey) pair, and
// whether one was configured at all.
func (b *AccountBuilder) ExternalAccountBinding() (kid string, macKey []byte, ok bool) {
	if b.eabKeyID == "" {
		return "", nil, false
	}
	return b.eabKeyID, b.eabMACKey, true
}
