package client

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/acmecore/acmecore/acme"
	"github.com/acmecore/acmecore/acme/resources"
)

type newOrderRequest struct {
	Identifiers []acme.Identifier      `json:"identifiers"`
	NotBefore   string                 `json:"notBefore,omitempty"`
	NotAfter    string                 `json:"notAfter,omitempty"`
	AutoRenewal *resources.AutoRenewal `json:"auto-renewal,omitempty"`
	Profile     string                 `json:"profile,omitempty"`
}

// CreateOrder submits an OrderBuilder (RFC 8555 §7.4): refuses an empty
// identifier set, refuses auto-renewal/profile the CA's metadata does not
// advertise, then signs and POSTs to newOrder.
func CreateOrder(login *Login, builder *resources.OrderBuilder) (*resources.Order, error) {
	if err := builder.Validate(); err != nil {
		return nil, err
	}

	meta, err := login.session.Metadata()
	if err != nil {
		return nil, err
	}
	if builder.AutoRenewalConfig() != nil && !meta.SupportsAutoRenewal() {
		return nil, acme.NewUnsupportedFeatureError("auto-renewal")
	}
	if builder.Profile() != "" && !meta.SupportsProfile(builder.Profile()) {
		return nil, acme.NewUnsupportedFeatureError("profile " + builder.Profile())
	}

	notBefore, notAfter := builder.Validity()
	req := newOrderRequest{
		Identifiers: builder.Identifiers(),
		NotBefore:   notBefore,
		NotAfter:    notAfter,
		AutoRenewal: builder.AutoRenewalConfig(),
		Profile:     builder.Profile(),
	}

	newOrderURL, err := login.session.ResourceURL(acme.NewOrder)
	if err != nil {
		return nil, err
	}

	resp, err := login.transport.Send(newOrderURL, http.MethodPost, req, login.identity())
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, acme.NewProtocolError("newOrder returned unexpected status", nil)
	}
	if resp.Location == "" {
		return nil, acme.NewProtocolError("newOrder response carried no Location header", nil)
	}

	var order resources.Order
	if err := json.Unmarshal(resp.JSON, &order); err != nil {
		return nil, acme.NewProtocolError("parsing order JSON", err)
	}
	order.Location = resp.Location
	order.Loaded = true
	return &order, nil
}

// FetchOrder re-fetches an Order by POST-as-GET, updating order in place.
func FetchOrder(login *Login, order *resources.Order) error {
	resp, err := login.transport.Send(order.Location, http.MethodPost, nil, login.identity())
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.JSON, order); err != nil {
		return acme.NewProtocolError("parsing order JSON", err)
	}
	order.Loaded = true
	order.SetRetryAfter(resp.RetryAfter)
	return nil
}

type finalizeRequest struct {
	CSR string `json:"csr"`
}

// ExecuteOrder finalizes order with a DER-encoded CSR (RFC 8555 §7.4).
// Permitted only while CanFinalize reports true; the server makes the
// final call. Clears order.Loaded, then repopulates the order (and sets
// Loaded again) from the response body when the server returned one.
func ExecuteOrder(login *Login, order *resources.Order, csrDER []byte) error {
	if !order.CanFinalize() {
		return acme.NewProtocolError("order is not in a finalizable state: "+order.Status, nil)
	}

	req := finalizeRequest{CSR: base64.RawURLEncoding.EncodeToString(csrDER)}
	resp, err := login.transport.Send(order.Finalize, http.MethodPost, req, login.identity())
	if err != nil {
		return err
	}

	order.Loaded = false
	if resp.JSON != nil {
		if err := json.Unmarshal(resp.JSON, order); err != nil {
			return acme.NewProtocolError("parsing order JSON", err)
		}
		order.Loaded = true
	}
	return nil
}

// CancelOrderAutoRenewal cancels a draft-auto-renewal order, refusing if
// the CA's metadata does not advertise the feature.
func CancelOrderAutoRenewal(login *Login, order *resources.Order) error {
	meta, err := login.session.Metadata()
	if err != nil {
		return err
	}
	if !meta.SupportsAutoRenewal() {
		return acme.NewUnsupportedFeatureError("auto-renewal")
	}

	body := struct {
		Status string `json:"status"`
	}{Status: "canceled"}

	resp, err := login.transport.Send(order.Location, http.MethodPost, body, login.identity())
	if err != nil {
		return err
	}
	return json.Unmarshal(resp.JSON, order)
}

// orderTerminalStatuses is the terminal set used by WaitForOrderStatus for
// the happy-path pending->ready->processing->valid lifecycle (invalid is
// always implicitly terminal too).
var orderTerminalStatuses = map[string]bool{
	resources.OrderValid:   true,
	resources.OrderInvalid: true,
}

// WaitForOrderStatus polls order until it reaches OrderValid or
// OrderInvalid; the terminal set is fixed and cannot be supplied by callers.
func WaitForOrderStatus(login *Login, order *resources.Order, timeout time.Duration, cancel <-chan struct{}) (string, error) {
	return WaitForStatus(orderTerminalStatuses, timeout, order.Status, func() (string, *time.Time, error) {
		if err := FetchOrder(login, order); err != nil {
			return order.Status, nil, err
		}
		return order.Status, order.RetryAfter, nil
	}, cancel)
}
