package client

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/acmecore/acmecore/acme"
	"github.com/acmecore/acmecore/acme/resources"
)

// FetchAuthorization retrieves an Authorization resource by POST-as-GET.
func FetchAuthorization(login *Login, url string) (*resources.Authorization, error) {
	resp, err := login.transport.Send(url, http.MethodPost, nil, login.identity())
	if err != nil {
		return nil, err
	}
	var authz resources.Authorization
	if err := json.Unmarshal(resp.JSON, &authz); err != nil {
		return nil, acme.NewProtocolError("parsing authorization JSON", err)
	}
	authz.Location = url
	authz.Loaded = true
	authz.SetRetryAfter(resp.RetryAfter)
	return &authz, nil
}

// AuthorizationByIdentifier walks order's authorization URLs, fetching
// each in turn, and returns the one matching identifier.
func AuthorizationByIdentifier(login *Login, order *resources.Order, identifier string) (*resources.Authorization, error) {
	if len(order.Authorizations) == 0 {
		return nil, fmt.Errorf("client: order %q has no authorizations", order.Location)
	}
	for _, authzURL := range order.Authorizations {
		authz, err := FetchAuthorization(login, authzURL)
		if err != nil {
			return nil, err
		}
		if authz.Identifier.Value == identifier {
			return authz, nil
		}
	}
	return nil, fmt.Errorf("client: order %q has no authorization for identifier %q", order.Location, identifier)
}
