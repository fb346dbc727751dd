package client

import (
	"crypto"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"fmt"
)

// BuildCSR produces a DER-encoded PKCS#10 certificate signing request for
// commonName (defaulting to the first of names) and names as DNS SANs,
// signed by key. The CSR key is deliberately the caller's to supply: ACME
// best practice is a CSR key distinct from the account key.
func BuildCSR(commonName string, names []string, key crypto.Signer) ([]byte, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("client: BuildCSR: no names specified")
	}
	if commonName == "" {
		commonName = names[0]
	}

	template := &x509.CertificateRequest{
		Subject:  pkix.Name{CommonName: commonName},
		DNSNames: names,
	}

	return x509.CreateCertificateRequest(rand.Reader, template, key)
}
