package acme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateContact(t *testing.T) {
	assert.NoError(t, ValidateContact("mailto:admin@example.com"))
	assert.NoError(t, ValidateContact("tel:+12125551212"), "non-mailto schemes pass through unvalidated")
}

func TestValidateContactRejectsMultipleRecipients(t *testing.T) {
	err := ValidateContact("mailto:admin@example.com,ops@example.com")
	assert.Error(t, err)
}

func TestValidateContactRejectsHeaderFields(t *testing.T) {
	err := ValidateContact("mailto:admin@example.com?cc=ops@example.com")
	assert.Error(t, err)
}

func TestValidateContactRejectsMalformedAddress(t *testing.T) {
	err := ValidateContact("mailto:not-an-address")
	assert.Error(t, err)
}
