package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuestLinkExpired(t *testing.T) {
	expiry := "2025-01-31"
	link := GuestLinkModel{ExpiresAt: &expiry}

	assert.False(t, link.Expired("2025-01-31"))
	assert.True(t, link.Expired("2025-02-01"))

	// no expiry never expires
	assert.False(t, (&GuestLinkModel{}).Expired("2030-01-01"))
}
