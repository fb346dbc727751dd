package client

import (
	"fmt"
	"time"

	"github.com/acmecore/acmecore/acme"
)

// DefaultPollInterval is the sleep used between polls when the server
// supplies no Retry-After hint.
const DefaultPollInterval = 3 * time.Second

// PollFunc performs one fetch() of a polled resource, returning its
// refreshed status and any Retry-After instant the response carried.
type PollFunc func() (status string, retryAfter *time.Time, err error)

// WaitForStatus implements the polling contract shared by Order and
// Challenge (RFC 8555 §7.1.3/§7.5.1):
//  1. if currentStatus is already terminal, return immediately.
//  2. otherwise loop: fetch, return if the refreshed status is terminal,
//     otherwise sleep until Retry-After (default DefaultPollInterval) and
//     retry, unless the deadline would be exceeded or cancel fires first.
//
// An empty terminalSet fails validation immediately.
func WaitForStatus(terminalSet map[string]bool, timeout time.Duration, currentStatus string, poll PollFunc, cancel <-chan struct{}) (string, error) {
	if len(terminalSet) == 0 {
		return "", fmt.Errorf("client: waitForStatus: terminal set must not be empty")
	}
	if terminalSet[currentStatus] {
		return currentStatus, nil
	}

	deadline := time.Now().Add(timeout)
	status := currentStatus
	for {
		var err error
		var retryAfter *time.Time
		status, retryAfter, err = poll()
		if err != nil {
			return status, err
		}
		if terminalSet[status] {
			return status, nil
		}

		wait := DefaultPollInterval
		if retryAfter != nil {
			wait = time.Until(*retryAfter)
		}
		if time.Now().Add(wait).After(deadline) || !time.Now().Before(deadline) {
			return status, &acme.TimeoutError{Waited: timeout}
		}

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-cancel:
			timer.Stop()
			return status, &acme.CancelledError{}
		}
	}
}
