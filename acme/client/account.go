package client

import (
	"crypto"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/acmecore/acmecore/acme"
	"github.com/acmecore/acmecore/acme/jose"
	"github.com/acmecore/acmecore/acme/resources"
)

type newAccountRequest struct {
	Contact                []string        `json:"contact,omitempty"`
	TermsOfServiceAgreed   bool            `json:"termsOfServiceAgreed,omitempty"`
	OnlyReturnExisting     bool            `json:"onlyReturnExisting,omitempty"`
	ExternalAccountBinding json.RawMessage `json:"externalAccountBinding,omitempty"`
}

// CreateAccount registers (or, with OnlyReturnExisting, looks up) an
// account (RFC 8555 §7.3). The request is always signed with the builder's
// key embedded inline, since no account URL (kid) exists yet.
func CreateAccount(session *Session, builder *resources.AccountBuilder) (*Login, *resources.Account, error) {
	newAccountURL, err := session.ResourceURL(acme.NewAccount)
	if err != nil {
		return nil, nil, err
	}

	req := newAccountRequest{
		Contact:              builder.Contacts(),
		TermsOfServiceAgreed: builder.TermsOfServiceAgreed(),
		OnlyReturnExisting:   builder.OnlyExisting(),
	}
	if kid, macKey, ok := builder.ExternalAccountBinding(); ok {
		eab, err := jose.ExternalAccountBinding(kid, builder.KeyPair(), macKey, newAccountURL)
		if err != nil {
			return nil, nil, err
		}
		req.ExternalAccountBinding = eab
	}

	t := NewTransport(session)
	resp, err := t.Send(newAccountURL, http.MethodPost, req, &signerIdentity{
		Signer:   builder.KeyPair(),
		EmbedJWK: true,
	})
	if err != nil {
		return nil, nil, err
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, nil, acme.NewProtocolError("newAccount returned unexpected status", nil)
	}
	if resp.Location == "" {
		return nil, nil, acme.NewProtocolError("newAccount response carried no Location header", nil)
	}

	var acct resources.Account
	if err := json.Unmarshal(resp.JSON, &acct); err != nil {
		return nil, nil, acme.NewProtocolError("parsing account JSON", err)
	}
	acct.Location = resp.Location
	acct.Loaded = true

	login := newLogin(session, resp.Location, builder.KeyPair())
	session.logger.Info("account created", zap.String("url", resp.Location))
	return login, &acct, nil
}

// FetchAccount re-fetches the account resource from the Login's account
// URL via POST-as-GET, updating acct in place.
func FetchAccount(login *Login, acct *resources.Account) error {
	resp, err := login.transport.Send(login.accountURL, http.MethodPost, nil, login.identity())
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.JSON, acct); err != nil {
		return acme.NewProtocolError("parsing account JSON", err)
	}
	acct.Location = login.accountURL
	acct.Loaded = true
	acct.SetRetryAfter(resp.RetryAfter)
	return nil
}

// UpdateAccount commits a Draft produced by Account.Modify: a signed POST
// to the account URL containing only the changed (contact) field.
func UpdateAccount(login *Login, acct *resources.Account, draft *resources.Draft) error {
	body := struct {
		Contact []string `json:"contact,omitempty"`
	}{Contact: draft.Contact}

	resp, err := login.transport.Send(login.accountURL, http.MethodPost, body, login.identity())
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.JSON, acct); err != nil {
		return acme.NewProtocolError("parsing account JSON", err)
	}
	return nil
}

// DeactivateAccount sends the terminal {"status": "deactivated"} POST.
// Irreversible: once accepted, the account cannot be reactivated.
func DeactivateAccount(login *Login, acct *resources.Account) error {
	body := struct {
		Status string `json:"status"`
	}{Status: resources.AccountDeactivated}

	resp, err := login.transport.Send(login.accountURL, http.MethodPost, body, login.identity())
	if err != nil {
		return err
	}
	return json.Unmarshal(resp.JSON, acct)
}

type keyChangeInner struct {
	Account string          `json:"account"`
	OldKey  json.RawMessage `json:"oldKey"`
}

// ChangeKey performs RFC 8555 §7.3.5 account key rollover: an inner JWS
// (signed by the new key, inline JWK) wrapped in an outer JWS (signed by
// the current key, kid mode). On success the Login's key pair is swapped
// atomically. Rejects a no-op rollover to an identical key.
func ChangeKey(login *Login, newKey crypto.Signer) error {
	oldKey := login.Key()
	if jose.EqualPrivateKey(oldKey, newKey) {
		return fmt.Errorf("client: changeKey: new key is identical to the current key")
	}

	keyChangeURL, err := login.session.ResourceURL(acme.KeyChange)
	if err != nil {
		return err
	}

	oldJWK, err := json.Marshal(jose.JWKForSigner(oldKey))
	if err != nil {
		return acme.NewProtocolError("marshaling old key JWK", err)
	}

	inner := keyChangeInner{Account: login.accountURL, OldKey: oldJWK}
	innerBody, err := json.Marshal(inner)
	if err != nil {
		return acme.NewProtocolError("marshaling keyChange inner payload", err)
	}
	innerJWS, err := jose.Sign(jose.SignRequest{
		URL:       keyChangeURL,
		Payload:   innerBody,
		Signer:    newKey,
		JWK:       true,
		SkipNonce: true,
	})
	if err != nil {
		return fmt.Errorf("client: changeKey: signing inner JWS: %w", err)
	}

	resp, err := login.transport.Send(keyChangeURL, http.MethodPost, json.RawMessage(innerJWS), login.identity())
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return acme.NewProtocolError("keyChange returned unexpected status", nil)
	}

	login.setKey(newKey)
	login.session.logger.Info("account key rolled over", zap.String("account", login.accountURL))
	return nil
}
