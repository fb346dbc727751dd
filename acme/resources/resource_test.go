package resources

import (
	"errors"
	"testing"
	"time"

	"github.com/acmecore/acmecore/acme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceRebindOnlyOnce(t *testing.T) {
	r := &Resource{Location: "https://acme.example.com/acct/1"}
	assert.False(t, r.Bound())

	require.NoError(t, r.Rebind())
	assert.True(t, r.Bound())

	err := r.Rebind()
	assert.True(t, errors.Is(err, acme.ErrAlreadyBound), "a second Rebind call must fail with ErrAlreadyBound")
}

func TestJSONResourceSetRetryAfter(t *testing.T) {
	var j JSONResource
	assert.Nil(t, j.RetryAfter)

	ra := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	j.SetRetryAfter(&ra)
	require.NotNil(t, j.RetryAfter)
	assert.Equal(t, ra, *j.RetryAfter)

	j.SetRetryAfter(nil)
	assert.Nil(t, j.RetryAfter, "a response without Retry-After clears the previous value")
}
