package resources

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountBuilderExternalAccountBinding(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	b := NewAccountBuilder(key)
	_, _, ok := b.ExternalAccountBinding()
	assert.False(t, ok, "no EAB configured yet")

	b.WithExternalAccountBinding("kid-1", []byte("mac-key-bytes"))
	kid, macKey, ok := b.ExternalAccountBinding()
	assert.True(t, ok)
	assert.Equal(t, "kid-1", kid)
	assert.Equal(t, []byte("mac-key-bytes"), macKey)
}

func TestAccountBuilderRejectsInvalidMailtoContact(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	b := NewAccountBuilder(key)
	assert.Error(t, b.AddContact("mailto:a@example.com,b@example.com"))
	assert.Empty(t, b.Contacts())

	require.NoError(t, b.AddContact("mailto:admin@example.com"))
	assert.Equal(t, []string{"mailto:admin@example.com"}, b.Contacts())
}

func TestAccountIsTerminal(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{AccountValid, false},
		{AccountUnknown, false},
		{AccountDeactivated, true},
		{AccountRevoked, true},
	}
	for _, tc := range cases {
		a := &Account{Status: tc.status}
		assert.Equal(t, tc.want, a.IsTerminal(), "status %s", tc.status)
	}
}

func TestAccountModifyCopiesContacts(t *testing.T) {
	a := &Account{Contact: []string{"mailto:a@example.com"}}
	draft := a.Modify()
	draft.Contact = append(draft.Contact, "mailto:b@example.com")
	assert.Len(t, a.Contact, 1, "modifying the draft must not mutate the account in place")
}
