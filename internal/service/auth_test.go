package service

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RoundTrip(t *testing.T) {
	auth := NewAuthService("test-secret")

	token := auth.MintToken("user123")
	userID, err := auth.ValidateToken(token)

	require.NoError(t, err)
	assert.Equal(t, "user123", userID)
}

func TestAuthService_RejectsTamperedToken(t *testing.T) {
	auth := NewAuthService("test-secret")

	token := auth.MintToken("user123")
	tampered := strings.Replace(token, "user123", "user456", 1)

	_, err := auth.ValidateToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_RejectsWrongSecret(t *testing.T) {
	minter := NewAuthService("secret-a")
	verifier := NewAuthService("secret-b")

	_, err := verifier.ValidateToken(minter.MintToken("user123"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_RejectsMalformedTokens(t *testing.T) {
	auth := NewAuthService("test-secret")

	for _, token := range []string{
		"",
		"nonsense",
		"one:two",
		"1:user:sig:extra",
		"notanumber:user123:" + auth.sign("notanumber:user123"),
		strconv.FormatInt(time.Now().Unix(), 10) + "::" + auth.sign(strconv.FormatInt(time.Now().Unix(), 10)+":"),
	} {
		_, err := auth.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestAuthService_RejectsExpiredToken(t *testing.T) {
	auth := NewAuthService("test-secret")

	timestamp := strconv.FormatInt(time.Now().Add(-8*24*time.Hour).Unix(), 10)
	payload := timestamp + ":user123"
	token := payload + ":" + auth.sign(payload)

	_, err := auth.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
