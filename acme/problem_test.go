package acme

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProblemErrorPrecedence(t *testing.T) {
	cases := []struct {
		name string
		p    Problem
		want string
	}{
		{
			name: "detail wins over title and type",
			p: Problem{
				Type:   "urn:ietf:params:acme:error:malformed",
				Title:  "Malformed request",
				Detail: "missing field \"identifiers\"",
			},
			want: `missing field "identifiers"`,
		},
		{
			name: "title wins when detail absent",
			p: Problem{
				Type:  "urn:ietf:params:acme:error:malformed",
				Title: "Malformed request",
			},
			want: "Malformed request",
		},
		{
			name: "falls back to type",
			p: Problem{
				Type: "urn:ietf:params:acme:error:malformed",
			},
			want: "urn:ietf:params:acme:error:malformed",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.p.Error())
		})
	}
}

func TestProblemErrorJoinsSubproblems(t *testing.T) {
	p := Problem{
		Type:   "urn:ietf:params:acme:error:compound",
		Detail: "multiple identifiers failed validation",
		Subproblems: []Problem{
			{Type: "urn:ietf:params:acme:error:dns", Detail: "no TXT record found for a.example.com"},
			{Type: "urn:ietf:params:acme:error:dns", Detail: "no TXT record found for b.example.com"},
		},
	}

	want := "multiple identifiers failed validation (no TXT record found for a.example.com – no TXT record found for b.example.com)"
	assert.Equal(t, want, p.Error())
}

func TestProblemUnmarshal(t *testing.T) {
	raw := `{
		"type": "urn:ietf:params:acme:error:rateLimited",
		"title": "Too many requests",
		"detail": "too many new-order requests this hour",
		"instance": "https://acme.example.com/docs/rate-limits"
	}`
	var p Problem
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Equal(t, ErrorURN(p.Type), ErrRateLimited)
	assert.Equal(t, "too many new-order requests this hour", p.Detail)
}
