package client

import (
	"crypto/x509"
	"encoding/json"
	"net/http"
	"time"

	"github.com/acmecore/acmecore/acme"
	"github.com/acmecore/acmecore/acme/resources"
)

// BindRenewalInfo computes the ARI identifier for cert and returns an
// unloaded RenewalInfo bound to the renewalInfo directory URL. Returns an
// error synchronously if the CA does not advertise renewalInfo, since ARI
// support is an optional, feature-gated directory capability.
func BindRenewalInfo(login *Login, cert *x509.Certificate) (*resources.RenewalInfo, error) {
	base, err := login.session.ResourceURL(acme.RenewalInfo)
	if err != nil {
		return nil, err
	}
	id := resources.ARIIdentifier(cert)
	ri := &resources.RenewalInfo{}
	ri.Location = base + "/" + id
	return ri, nil
}

type renewalInfoResponse struct {
	SuggestedWindow struct {
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"suggestedWindow"`
	ExplanationURL string `json:"explanationURL,omitempty"`
}

// FetchRenewalInfo performs the anonymous (unsigned) GET fetch() for ri,
// populating its suggested window. The server may return a Retry-After.
func FetchRenewalInfo(session *Session, ri *resources.RenewalInfo) error {
	headers := http.Header{"Accept-Language": []string{session.acceptLanguage()}}
	resp, err := session.net.Get(ri.Location, headers)
	if err != nil {
		return acme.NewProtocolError("fetching renewal info", err)
	}
	if resp.Response.StatusCode != http.StatusOK {
		return acme.NewProtocolError("renewalInfo endpoint returned unexpected status", nil)
	}

	var body renewalInfoResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return acme.NewProtocolError("parsing renewalInfo JSON", err)
	}

	start, err := acme.ParseTimestamp(body.SuggestedWindow.Start)
	if err != nil {
		return acme.NewProtocolError("parsing suggestedWindow.start", err)
	}
	end, err := acme.ParseTimestamp(body.SuggestedWindow.End)
	if err != nil {
		return acme.NewProtocolError("parsing suggestedWindow.end", err)
	}

	ri.SuggestedWindow.Start = start
	ri.SuggestedWindow.End = end
	ri.ExplanationURL = body.ExplanationURL
	if retryAfter, ok := parseRetryAfter(resp.Response.Header.Get("Retry-After"), time.Now()); ok {
		ri.RetryAfter = &retryAfter
	}
	return ri.Validate()
}
