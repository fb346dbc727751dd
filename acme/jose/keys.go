package jose

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"fmt"
)

// NewSigner generates a fresh account keypair of the requested type
// ("ecdsa" or "rsa"). ECDSA keys use curve P-256; RSA keys use a 2048-bit
// modulus. Key generation beyond this default shape is the caller's
// responsibility.
func NewSigner(keyType string) (crypto.Signer, error) {
	switch keyType {
	case "ecdsa":
		return ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	case "rsa":
		return rsa.GenerateKey(rand.Reader, 2048)
	default:
		return nil, fmt.Errorf("jose: unknown key type %q", keyType)
	}
}

// MarshalSigner serializes a private key to DER bytes alongside a type tag
// ("ecdsa"/"rsa") suitable for UnmarshalSigner. EqualPrivateKey compares
// keys through it.
func MarshalSigner(signer crypto.Signer) (keyBytes []byte, keyType string, err error) {
	switch k := signer.(type) {
	case *ecdsa.PrivateKey:
		keyBytes, err = x509.MarshalECPrivateKey(k)
		keyType = "ecdsa"
	case *rsa.PrivateKey:
		keyBytes = x509.MarshalPKCS1PrivateKey(k)
		keyType = "rsa"
	default:
		err = fmt.Errorf("jose: signer has unsupported type %T", k)
	}
	if err != nil {
		return nil, "", err
	}
	return keyBytes, keyType, nil
}

// UnmarshalSigner parses a private key serialized by MarshalSigner.
func UnmarshalSigner(keyBytes []byte, keyType string) (crypto.Signer, error) {
	switch keyType {
	case "ecdsa":
		return x509.ParseECPrivateKey(keyBytes)
	case "rsa":
		return x509.ParsePKCS1PrivateKey(keyBytes)
	default:
		return nil, fmt.Errorf("jose: unknown key type %q", keyType)
	}
}

// EqualPrivateKey reports whether two signers hold byte-identical private
// keys, used by client.ChangeKey's no-op guard against rolling over to the
// same key.
func EqualPrivateKey(a, b crypto.Signer) bool {
	aBytes, aType, errA := MarshalSigner(a)
	bBytes, bType, errB := MarshalSigner(b)
	if errA != nil || errB != nil || aType != bType {
		return false
	}
	if len(aBytes) != len(bBytes) {
		return false
	}
	for i := range aBytes {
		if aBytes[i] != bBytes[i] {
			return false
		}
	}
	return true
}
