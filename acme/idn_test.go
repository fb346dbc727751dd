package acme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToACE(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "already-ASCII domain passes through", in: "example.com", want: "example.com"},
		{name: "already-ACE-encoded label passes through", in: "xn--exmle-hra7p.com", want: "xn--exmle-hra7p.com"},
		{name: "uppercase folds to lowercase", in: "EXAMPLE.COM", want: "example.com"},
		{name: "ideographic full stop separator", in: "example。com", want: "example.com"},
		{name: "fullwidth full stop separator", in: "example．com", want: "example.com"},
		{name: "halfwidth ideographic full stop separator", in: "example｡com", want: "example.com"},
		{name: "wildcard prefix preserved", in: "*.example.com", want: "*.example.com"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ToACE(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestToACEIsIdempotent(t *testing.T) {
	for _, in := range []string{"example.com", "*.example.com", "EXAMPLE.COM"} {
		once, err := ToACE(in)
		require.NoError(t, err)
		twice, err := ToACE(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}
