package client

import (
	"crypto"
	"sync"
)

// Login is a Session reference plus one account's location URL and key
// pair. Not shared across processes, not serializable. Multiple Logins may
// coexist per Session for different accounts. The key pair may be swapped
// atomically by ChangeKey.
type Login struct {
	session    *Session
	accountURL string
	transport  *Transport

	mu  sync.RWMutex
	key crypto.Signer
}

// newLogin builds a Login bound to session, accountURL and key.
func newLogin(session *Session, accountURL string, key crypto.Signer) *Login {
	return &Login{
		session:    session,
		accountURL: accountURL,
		transport:  NewTransport(session),
		key:        key,
	}
}

// Session returns the Login's Session.
func (l *Login) Session() *Session { return l.session }

// AccountURL returns the account's location URL, used as the `kid` for
// every signed request this Login makes.
func (l *Login) AccountURL() string { return l.accountURL }

// Key returns the account's current private key.
func (l *Login) Key() crypto.Signer {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.key
}

// setKey atomically swaps the account's key pair, used by ChangeKey on
// success.
func (l *Login) setKey(key crypto.Signer) {
	l.mu.Lock()
	l.key = key
	l.mu.Unlock()
}

// identity returns the kid-mode signerIdentity for requests authenticated
// by this Login.
func (l *Login) identity() *signerIdentity {
	return &signerIdentity{Signer: l.Key(), KeyID: l.accountURL}
}
