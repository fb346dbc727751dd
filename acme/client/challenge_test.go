package client

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/acmecore/acmecore/acme/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchChallengeCapturesRetryAfter(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/dir", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"newNonce": "%s/new-nonce"}`, testServerURL(r))
	})
	mux.HandleFunc("/new-nonce", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Replay-Nonce", "aaaaaaaaaaaaaaaaaaaaaa")
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/challenge/1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Replay-Nonce", "bbbbbbbbbbbbbbbbbbbbbb")
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", "30")
		fmt.Fprint(w, `{"type":"http-01","url":"`+testServerURL(r)+`/challenge/1","status":"processing","token":"tok123"}`)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	session := newTestSession(t, srv.URL+"/dir")
	login := newLogin(session, srv.URL+"/account/1", mustTestKey(t))

	chall := &resources.Challenge{URL: srv.URL + "/challenge/1"}
	require.NoError(t, FetchChallenge(login, chall))

	require.NotNil(t, chall.RetryAfter, "FetchChallenge must capture the Retry-After header")
	assert.True(t, chall.Loaded)
	assert.WithinDuration(t, time.Now().Add(30*time.Second), *chall.RetryAfter, 5*time.Second)
}

func TestWaitForChallengeStatusHonorsRetryAfter(t *testing.T) {
	var calls int
	mux := http.NewServeMux()
	mux.HandleFunc("/dir", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"newNonce": "%s/new-nonce"}`, testServerURL(r))
	})
	mux.HandleFunc("/new-nonce", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Replay-Nonce", "aaaaaaaaaaaaaaaaaaaaaa")
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/challenge/1", func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Replay-Nonce", "bbbbbbbbbbbbbbbbbbbbbb")
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", "0")
		status := "processing"
		if calls >= 2 {
			status = "valid"
		}
		fmt.Fprint(w, `{"type":"http-01","url":"`+testServerURL(r)+`/challenge/1","status":"`+status+`","token":"tok123"}`)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	session := newTestSession(t, srv.URL+"/dir")
	login := newLogin(session, srv.URL+"/account/1", mustTestKey(t))

	chall := &resources.Challenge{URL: srv.URL + "/challenge/1", Status: resources.ChallengePending}
	status, err := WaitForChallengeStatus(login, chall, 5*time.Second, nil)
	require.NoError(t, err)
	assert.Equal(t, resources.ChallengeValid, status)
	assert.GreaterOrEqual(t, calls, 2, "polling must have fetched the challenge at least twice")
}
