package client

import (
	"crypto"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/acmecore/acmecore/acme"
	"github.com/acmecore/acmecore/acme/jose"
	"github.com/acmecore/acmecore/acme/resources"
	acmenet "github.com/acmecore/acmecore/net"
)

// signerIdentity picks kid vs inline-JWK mode for a signed request. Exactly
// one of KeyID/EmbedJWK is meaningful, matching acme/jose.SignRequest.
type signerIdentity struct {
	Signer   crypto.Signer
	KeyID    string
	EmbedJWK bool
}

// Response is the parsed result of a Transport.Send call.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	JSON       json.RawMessage
	PEMChain   [][]byte
	Problem    *acme.Problem
	Location   string
	RetryAfter *time.Time
	Links      map[string][]string
}

// Transport is the signed-request layer: JWS construction through
// acme/jose, nonce management via the Session's pool, response header
// parsing and content-type dispatch, and a single automatic badNonce retry
// (RFC 8555 §6.5).
type Transport struct {
	session *Session
}

// NewTransport builds a Transport bound to session.
func NewTransport(session *Session) *Transport {
	return &Transport{session: session}
}

// payloadBytes renders an arbitrary request shape to its JSON encoding, or
// to the POST-as-GET sentinel jose.PostAsGetPayload (an empty string,
// distinct from JSON null) when shape is nil.
func payloadBytes(shape interface{}) ([]byte, error) {
	if shape == nil {
		return []byte(jose.PostAsGetPayload), nil
	}
	if raw, ok := shape.(json.RawMessage); ok {
		return []byte(raw), nil
	}
	return json.Marshal(shape)
}

// Send performs one signed (or anonymous, if signer is nil) HTTPS request.
// method is the HTTP method; for signed POST requests the nonce is
// acquired automatically (fetching one from newNonce if the pool is
// empty), and exactly one badNonce retry is attempted transparently.
func (t *Transport) Send(url, method string, shape interface{}, signer *signerIdentity) (*Response, error) {
	resp, err := t.send(url, method, shape, signer)
	if err == nil {
		return resp, nil
	}

	var serverErr *acme.ServerError
	if se, ok := err.(*acme.ServerError); ok {
		serverErr = se
	}
	if serverErr == nil || serverErr.Kind != acme.ErrBadNonce || signer == nil {
		return nil, err
	}

	t.session.logger.Debug("retrying after badNonce", zap.String("url", url))
	return t.send(url, method, shape, signer)
}

func (t *Transport) send(url, method string, shape interface{}, signer *signerIdentity) (*Response, error) {
	var body []byte
	headers := http.Header{"Accept-Language": []string{t.session.acceptLanguage()}}

	if signer != nil {
		payload, err := payloadBytes(shape)
		if err != nil {
			return nil, acme.NewProtocolError("marshaling request payload", err)
		}

		nonce, err := t.acquireNonce()
		if err != nil {
			return nil, err
		}

		req := jose.SignRequest{
			URL:     url,
			Payload: payload,
			Signer:  signer.Signer,
			KeyID:   signer.KeyID,
			JWK:     signer.EmbedJWK,
			Nonce:   nonce,
		}
		body, err = jose.Sign(req)
		if err != nil {
			return nil, fmt.Errorf("client: signing request to %s: %w", url, err)
		}
		headers.Set("Content-Type", acme.ContentTypeJOSE)
	}

	isGetEquivalent := method == http.MethodGet || (method == http.MethodPost && shape == nil)
	if isGetEquivalent {
		headers.Set("Accept", acme.ContentTypePEMChain+", "+acme.ContentTypeJSON)
	}

	var netResp *acmenet.NetResponse
	var err error
	switch {
	case method == http.MethodHead:
		netResp, err = t.session.net.Head(url)
	case body != nil || signer != nil:
		netResp, err = t.session.net.Post(url, body, headers)
	default:
		netResp, err = t.session.net.Get(url, headers)
	}
	if err != nil {
		return nil, acme.NewProtocolError("performing HTTPS request to "+url, err)
	}

	return t.parseResponse(netResp)
}

func (t *Transport) acquireNonce() (string, error) {
	if n := t.session.nonces.take(); n != "" {
		return n, nil
	}
	nonceURL, err := t.session.ResourceURL(acme.NewNonce)
	if err != nil {
		return "", err
	}
	resp, err := t.session.net.Head(nonceURL)
	if err != nil {
		return "", acme.NewProtocolError("fetching new nonce", err)
	}
	nonce := resp.Response.Header.Get(acme.REPLAY_NONCE_HEADER)
	if nonce == "" {
		return "", acme.NewProtocolError("newNonce response carried no Replay-Nonce header", nil)
	}
	return nonce, nil
}

func (t *Transport) parseResponse(r *acmenet.NetResponse) (*Response, error) {
	t.session.nonces.put(r.Response.Header.Get(acme.REPLAY_NONCE_HEADER))

	resp := &Response{
		StatusCode: r.Response.StatusCode,
		Header:     r.Response.Header,
		Body:       r.Body,
		Location:   r.Response.Header.Get("Location"),
		Links:      parseLinkHeader(r.Response.Header.Values("Link")),
	}

	if ra, ok := parseRetryAfter(r.Response.Header.Get("Retry-After"), time.Now()); ok {
		resp.RetryAfter = &ra
	}

	contentType := r.Response.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(contentType, acme.ContentTypeProblem):
		var p acme.Problem
		if err := json.Unmarshal(r.Body, &p); err != nil {
			return nil, acme.NewProtocolError("parsing problem document", err)
		}
		resp.Problem = &p
	case strings.HasPrefix(contentType, acme.ContentTypePEMChain):
		var err error
		resp.PEMChain, err = resources.ParsePEMChain(r.Body)
		if err != nil {
			return nil, acme.NewProtocolError("parsing certificate chain", err)
		}
	case strings.HasPrefix(contentType, acme.ContentTypeJSON):
		resp.JSON = json.RawMessage(r.Body)
	}

	if resp.StatusCode >= 400 {
		if resp.Problem == nil {
			resp.Problem = &acme.Problem{Type: "about:blank", Title: r.Response.Status}
		}
		se := acme.NewServerError(resp.StatusCode, resp.Problem)
		if se.Kind == acme.ErrRateLimited {
			se.RetryAfter = resp.RetryAfter
		}
		return resp, se
	}

	return resp, nil
}

// parseRetryAfter interprets the Retry-After header, which may be either an
// HTTP-date or a relative number of seconds, into an absolute instant
// relative to now (now is a parameter so callers/tests can substitute a
// virtual clock).
func parseRetryAfter(value string, now time.Time) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
		return now.Add(time.Duration(secs) * time.Second), true
	}
	if t, err := http.ParseTime(value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// parseLinkHeader parses one or more RFC 8288 Link header values into
// a rel -> []target map. Only the rel parameter is extracted; this is all
// ACME's use of Link requires (alternate, up, index, terms-of-service).
func parseLinkHeader(values []string) map[string][]string {
	links := map[string][]string{}
	for _, value := range values {
		for _, entry := range strings.Split(value, ",") {
			entry = strings.TrimSpace(entry)
			start := strings.Index(entry, "<")
			end := strings.Index(entry, ">")
			if start < 0 || end < 0 || end <= start {
				continue
			}
			target := entry[start+1 : end]
			rel := ""
			for _, param := range strings.Split(entry[end+1:], ";") {
				param = strings.TrimSpace(param)
				if strings.HasPrefix(param, "rel=") {
					rel = strings.Trim(strings.TrimPrefix(param, "rel="), `"`)
				}
			}
			if rel == "" {
				continue
			}
			links[rel] = append(links[rel], target)
		}
	}
	return links
}
