package resources

import (
	"bytes"
	"encoding/pem"
	"fmt"
	"io"
)

// Certificate is the non-JSON resource produced once an Order reaches
// OrderValid: a downloaded chain of DER-encoded certificates (end-entity
// first) plus zero or more alternate chain URLs surfaced via
// `Link: rel="alternate"` response headers. The chain is immutable once
// downloaded.
type Certificate struct {
	Resource

	// Chain holds the DER bytes of each certificate in the chain, in PEM
	// order (end-entity first).
	Chain [][]byte
	// AlternateURLs holds the `Link: rel="alternate"` URLs returned
	// alongside the primary chain, each pointing to an alternate chain for
	// the same certificate.
	AlternateURLs []string
	downloaded    bool
}

// Downloaded reports whether Chain has been populated.
func (c *Certificate) Downloaded() bool { return c.downloaded }

// SetChain records a freshly downloaded chain and its alternate links.
// client.DownloadCertificate (in acme/client) calls this after a successful
// fetch; it is an error to call it twice since the chain is immutable once
// downloaded.
func (c *Certificate) SetChain(chain [][]byte, alternates []string) error {
	if c.downloaded {
		return fmt.Errorf("resources: certificate %q chain already downloaded", c.Location)
	}
	c.Chain = chain
	c.AlternateURLs = alternates
	c.downloaded = true
	return nil
}

// WritePEM writes the chain as a sequence of PEM "CERTIFICATE" blocks, one
// per certificate, in the order the chain was returned.
func (c *Certificate) WritePEM(w io.Writer) error {
	if !c.downloaded {
		return fmt.Errorf("resources: certificate %q has not been downloaded", c.Location)
	}
	for _, der := range c.Chain {
		if err := pem.Encode(w, &pem.Block{Type: "CERTIFICATE", Bytes: der}); err != nil {
			return err
		}
	}
	return nil
}

// PEM returns the chain rendered as PEM bytes. PEM(ParsePEMChain(x)) == x
// for any chain this type produced.
func (c *Certificate) PEM() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.WritePEM(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParsePEMChain splits a sequence of PEM "CERTIFICATE" blocks back into
// a slice of DER byte slices, the inverse of WritePEM/PEM.
func ParsePEMChain(data []byte) ([][]byte, error) {
	var chain [][]byte
	rest := data
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		chain = append(chain, block.Bytes)
	}
	if len(chain) == 0 {
		return nil, fmt.Errorf("resources: no CERTIFICATE PEM blocks found")
	}
	return chain, nil
}
