package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/hkdf"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

const tokenTTL = 7 * 24 * time.Hour

// AuthService verifies the bearer tokens minted by the account system.
// Both sides share AUTH_SECRET; the token-signing key is derived from it
// so the raw secret is never used directly for signing.
type AuthService struct {
	signingKey []byte
}

func NewAuthService(secret string) *AuthService {
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte("memoire-session-token"))
	key := make([]byte, 32)
	if _, err := io.ReadFull(kdf, key); err != nil {
		panic(err)
	}
	return &AuthService{signingKey: key}
}

func (s *AuthService) sign(payload string) string {
	mac := hmac.New(sha256.New, s.signingKey)
	mac.Write([]byte(payload))
	return base64.URLEncoding.EncodeToString(mac.Sum(nil))
}

// MintToken issues a token for userID. The service itself only verifies
// tokens; minting exists for tooling and tests.
func (s *AuthService) MintToken(userID string) string {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	payload := timestamp + ":" + userID
	return payload + ":" + s.sign(payload)
}

// ValidateToken checks the signature and expiry and returns the user id
// the token was minted for.
func (s *AuthService) ValidateToken(token string) (string, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 3 {
		return "", ErrInvalidToken
	}
	timestamp, userID, signature := parts[0], parts[1], parts[2]
	if userID == "" {
		return "", ErrInvalidToken
	}

	expected := s.sign(timestamp + ":" + userID)
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return "", ErrInvalidToken
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return "", ErrInvalidToken
	}
	if time.Now().After(time.Unix(ts, 0).Add(tokenTTL)) {
		return "", ErrExpiredToken
	}

	return userID, nil
}
