package client

import (
	"testing"
	"time"

	"github.com/acmecore/acmecore/acme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitForStatusRejectsEmptyTerminalSet(t *testing.T) {
	_, err := WaitForStatus(nil, time.Second, "pending", func() (string, *time.Time, error) {
		t.Fatal("poll must not be called when the terminal set is invalid")
		return "", nil, nil
	}, nil)
	assert.Error(t, err)
}

func TestWaitForStatusReturnsImmediatelyIfAlreadyTerminal(t *testing.T) {
	terminal := map[string]bool{"valid": true, "invalid": true}
	calls := 0
	status, err := WaitForStatus(terminal, time.Second, "valid", func() (string, *time.Time, error) {
		calls++
		return "valid", nil, nil
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "valid", status)
	assert.Equal(t, 0, calls, "poll must not be called when already terminal")
}

func TestWaitForStatusPollsUntilTerminal(t *testing.T) {
	terminal := map[string]bool{"valid": true, "invalid": true}
	statuses := []string{"pending", "processing", "valid"}
	call := 0
	// Retry-After of "now" keeps each wait at zero; without it the default
	// 3s interval would exceed the 1s timeout after the first poll.
	status, err := WaitForStatus(terminal, time.Second, "pending", func() (string, *time.Time, error) {
		s := statuses[call]
		call++
		now := time.Now()
		return s, &now, nil
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "valid", status)
	assert.Equal(t, 3, call, "exactly one fetch per poll iteration, including the terminal one")
}

func TestWaitForStatusPropagatesPollError(t *testing.T) {
	terminal := map[string]bool{"valid": true}
	wantErr := acme.NewProtocolError("network blip", nil)
	_, err := WaitForStatus(terminal, time.Second, "pending", func() (string, *time.Time, error) {
		return "pending", nil, wantErr
	}, nil)
	assert.Equal(t, wantErr, err)
}

func TestWaitForStatusTimesOut(t *testing.T) {
	terminal := map[string]bool{"valid": true}
	_, err := WaitForStatus(terminal, 10*time.Millisecond, "pending", func() (string, *time.Time, error) {
		return "pending", nil, nil
	}, nil)
	require.Error(t, err)
	_, ok := err.(*acme.TimeoutError)
	assert.True(t, ok, "expected *acme.TimeoutError, got %T", err)
}

func TestWaitForStatusCancellation(t *testing.T) {
	terminal := map[string]bool{"valid": true}
	cancel := make(chan struct{})
	close(cancel)

	retryAfter := time.Now().Add(time.Hour)
	_, err := WaitForStatus(terminal, time.Hour, "pending", func() (string, *time.Time, error) {
		return "pending", &retryAfter, nil
	}, cancel)
	require.Error(t, err)
	_, ok := err.(*acme.CancelledError)
	assert.True(t, ok, "expected *acme.CancelledError, got %T", err)
}

func TestWaitForStatusHonorsRetryAfterDeadline(t *testing.T) {
	terminal := map[string]bool{"valid": true}
	// Retry-After lands past the timeout deadline: must time out rather
	// than sleep through it.
	farRetryAfter := time.Now().Add(time.Hour)
	_, err := WaitForStatus(terminal, 50*time.Millisecond, "pending", func() (string, *time.Time, error) {
		return "pending", &farRetryAfter, nil
	}, nil)
	require.Error(t, err)
	_, ok := err.(*acme.TimeoutError)
	assert.True(t, ok, "expected *acme.TimeoutError, got %T", err)
}
