package acme

import (
	"fmt"
	"net/mail"
	"strings"
)

// ValidateContact checks a single contact URI. "mailto:" URIs must name
// exactly one recipient and carry no header fields (a "?" component);
// other schemes pass through unvalidated since the core does not know their
// shape.
//
// See https://tools.ietf.org/html/rfc8555#section-7.1.2
func ValidateContact(uri string) error {
	if !strings.HasPrefix(uri, "mailto:") {
		return nil
	}

	rest := strings.TrimPrefix(uri, "mailto:")
	if idx := strings.IndexByte(rest, '?'); idx != -1 {
		return fmt.Errorf("acme: mailto contact %q must not include header fields", uri)
	}

	addrs, err := mail.ParseAddressList(rest)
	if err != nil {
		return fmt.Errorf("acme: mailto contact %q is not a valid address: %w", uri, err)
	}
	if len(addrs) != 1 {
		return fmt.Errorf("acme: mailto contact %q must name exactly one recipient", uri)
	}
	return nil
}
