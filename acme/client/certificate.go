package client

import (
	"crypto"
	"encoding/base64"
	"net/http"

	"github.com/acmecore/acmecore/acme"
	"github.com/acmecore/acmecore/acme/resources"
)

// DownloadCertificate fetches order's certificate chain via POST-as-GET
// with Accept: application/pem-certificate-chain (RFC 8555 §7.4.2).
// Each call downloads the chain again into a new Certificate.
func DownloadCertificate(login *Login, order *resources.Order) (*resources.Certificate, error) {
	if order.Certificate == "" {
		return nil, acme.NewProtocolError("order has no certificate URL yet", nil)
	}
	resp, err := login.transport.Send(order.Certificate, http.MethodPost, nil, login.identity())
	if err != nil {
		return nil, err
	}
	if len(resp.PEMChain) == 0 {
		return nil, acme.NewProtocolError("certificate response carried no PEM chain", nil)
	}

	cert := &resources.Certificate{}
	cert.Location = order.Certificate
	if err := cert.SetChain(resp.PEMChain, resp.Links["alternate"]); err != nil {
		return nil, err
	}
	return cert, nil
}

// GetAlternateChain fetches the chain at one of cert's AlternateURLs.
func GetAlternateChain(login *Login, alternateURL string) (*resources.Certificate, error) {
	resp, err := login.transport.Send(alternateURL, http.MethodPost, nil, login.identity())
	if err != nil {
		return nil, err
	}
	if len(resp.PEMChain) == 0 {
		return nil, acme.NewProtocolError("alternate chain response carried no PEM chain", nil)
	}
	cert := &resources.Certificate{}
	cert.Location = alternateURL
	if err := cert.SetChain(resp.PEMChain, resp.Links["alternate"]); err != nil {
		return nil, err
	}
	return cert, nil
}

type revokeCertRequest struct {
	Certificate string `json:"certificate"`
	Reason      *int   `json:"reason,omitempty"`
}

// RevokeCertificate revokes certDER, signed by the account key via kid
// ("account-authenticated" mode, RFC 8555 §7.6).
func RevokeCertificate(login *Login, certDER []byte, reason *acme.RevocationReason) error {
	return revokeCertificate(login.session, certDER, reason, login.identity())
}

// RevokeCertificateWithDomainKey revokes certDER using the key that signed
// the original CSR, inline JWK with no kid ("domain-key-authenticated"
// mode, RFC 8555 §7.6 — used when the account is unavailable).
func RevokeCertificateWithDomainKey(session *Session, certDER []byte, domainKey crypto.Signer, reason *acme.RevocationReason) error {
	return revokeCertificate(session, certDER, reason, &signerIdentity{Signer: domainKey, EmbedJWK: true})
}

func revokeCertificate(session *Session, certDER []byte, reason *acme.RevocationReason, signer *signerIdentity) error {
	revokeURL, err := session.ResourceURL(acme.RevokeCert)
	if err != nil {
		return err
	}

	req := revokeCertRequest{Certificate: base64.RawURLEncoding.EncodeToString(certDER)}
	if reason != nil {
		r := int(*reason)
		req.Reason = &r
	}

	t := NewTransport(session)
	_, err = t.Send(revokeURL, http.MethodPost, req, signer)
	return err
}
