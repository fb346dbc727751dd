package client

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/acmecore/acmecore/acme"
	"github.com/acmecore/acmecore/acme/resources"
)

// TriggerChallenge signals the server to begin validating a challenge: a
// signed POST of an empty JSON object to the challenge's URL (RFC 8555
// §7.5.1). Callers then poll with WaitForStatus.
func TriggerChallenge(login *Login, chall *resources.Challenge) error {
	resp, err := login.transport.Send(chall.URL, http.MethodPost, struct{}{}, login.identity())
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.JSON, chall); err != nil {
		return acme.NewProtocolError("parsing challenge JSON", err)
	}
	chall.Loaded = true
	chall.SetRetryAfter(resp.RetryAfter)
	return nil
}

// FetchChallenge re-fetches a Challenge by POST-as-GET, updating chall in
// place, including any Retry-After the response carried. Used both for
// manual refresh and as the fetch() step of WaitForStatus.
func FetchChallenge(login *Login, chall *resources.Challenge) error {
	resp, err := login.transport.Send(chall.URL, http.MethodPost, nil, login.identity())
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.JSON, chall); err != nil {
		return acme.NewProtocolError("parsing challenge JSON", err)
	}
	chall.Loaded = true
	chall.SetRetryAfter(resp.RetryAfter)
	return nil
}

var challengeTerminalStatuses = map[string]bool{
	resources.ChallengeValid:   true,
	resources.ChallengeInvalid: true,
}

// WaitForChallengeStatus polls chall until it reaches ChallengeValid or
// ChallengeInvalid, honoring any Retry-After the server supplies on each
// poll.
func WaitForChallengeStatus(login *Login, chall *resources.Challenge, timeout time.Duration, cancel <-chan struct{}) (string, error) {
	return WaitForStatus(challengeTerminalStatuses, timeout, chall.Status, func() (string, *time.Time, error) {
		if err := FetchChallenge(login, chall); err != nil {
			return chall.Status, nil, err
		}
		return chall.Status, chall.RetryAfter, nil
	}, cancel)
}
