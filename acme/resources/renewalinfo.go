package resources

import (
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"math/rand"
	"time"
)

// RenewalInfo is the ACME Renewal Information (ARI, draft-ietf-acme-ari)
// resource: a suggested renewal window for a certificate, fetched
// anonymously (not signed) from the CA.
type RenewalInfo struct {
	Resource

	SuggestedWindow struct {
		Start time.Time `json:"start"`
		End   time.Time `json:"end"`
	} `json:"suggestedWindow"`
	ExplanationURL string `json:"explanationURL,omitempty"`
	// RetryAfter is the Retry-After instant from the most recent fetch, if
	// any; the server may ask the client not to poll again before this
	// time.
	RetryAfter *time.Time `json:"-"`
}

// Validate enforces the RenewalInfo invariant that start <= end.
func (r *RenewalInfo) Validate() error {
	if r.SuggestedWindow.Start.After(r.SuggestedWindow.End) {
		return fmt.Errorf("resources: renewal window start is after end")
	}
	return nil
}

// ARIIdentifier computes the ACME Renewal Information identifier for
// a certificate (draft-ietf-acme-ari): base64url(issuer name DER) + "." +
// base64url(serial number). The issuer name DER comes from cert's own
// RawIssuer field, so a caller can't pass a mismatched issuer certificate
// and silently produce the wrong id.
func ARIIdentifier(cert *x509.Certificate) string {
	issuerB64 := base64.RawURLEncoding.EncodeToString(cert.RawIssuer)
	serialB64 := base64.RawURLEncoding.EncodeToString(cert.SerialNumber.Bytes())
	return issuerB64 + "." + serialB64
}

// RenewalIsNotRequired reports whether t is strictly before the suggested
// renewal window.
func (r *RenewalInfo) RenewalIsNotRequired(t time.Time) bool {
	return t.Before(r.SuggestedWindow.Start)
}

// RenewalIsRecommended reports whether t falls within [start, end).
func (r *RenewalInfo) RenewalIsRecommended(t time.Time) bool {
	return !t.Before(r.SuggestedWindow.Start) && t.Before(r.SuggestedWindow.End)
}

// RenewalIsOverdue reports whether t is at or past the end of the
// suggested renewal window.
func (r *RenewalInfo) RenewalIsOverdue(t time.Time) bool {
	return !t.Before(r.SuggestedWindow.End)
}

// Clock abstracts the current time for deterministic testing of
// GetRandomProposal.
type Clock interface {
	Now() time.Time
}

// RealClock is the Clock backed by time.Now.
type RealClock struct{}

// Now returns time.Now().
func (RealClock) Now() time.Time { return time.Now() }

// GetRandomProposal returns a uniformly random instant in
// [max(now, start), end-frequency), or the zero time and false if that
// interval is empty (the window has already passed, or frequency consumes
// it entirely). The RNG is deliberately math/rand, not crypto/rand: renewal
// timing jitter is not security sensitive, and an injectable source (rng)
// keeps the result reproducible in tests.
func (r *RenewalInfo) GetRandomProposal(frequency time.Duration, clock Clock, rng *rand.Rand) (time.Time, bool) {
	now := clock.Now()
	lowerBound := r.SuggestedWindow.Start
	if now.After(lowerBound) {
		lowerBound = now
	}
	upperBound := r.SuggestedWindow.End.Add(-frequency)

	if !lowerBound.Before(upperBound) {
		return time.Time{}, false
	}

	span := upperBound.Sub(lowerBound)
	offset := time.Duration(rng.Int63n(int64(span)))
	return lowerBound.Add(offset), true
}
