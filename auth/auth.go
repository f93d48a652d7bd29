// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// VoterCookieName is the cookie carrying the signed voter identity
const VoterCookieName = "foxvoting_user_id"

var (
	ErrInvalidToken     = errors.New("invalid token format")
	ErrInvalidSignature = errors.New("invalid token signature")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// NewVoterID creates a fresh voter identity.
// Issued once per browser and carried in the voter cookie.
func NewVoterID() string {
	return uuid.NewString()
}

// SignVoterID returns the cookie value for a voter identity: "<id>.<mac>"
func SignVoterID(voterID, secret string) string {
	return voterID + "." + sign(voterID, secret)
}

// ParseVoterCookie verifies a signed cookie value and returns the voter ID
func ParseVoterCookie(value, secret string) (string, error) {
	voterID, mac, ok := strings.Cut(value, ".")
	if !ok || voterID == "" || mac == "" {
		return "", ErrInvalidToken
	}
	if _, err := uuid.Parse(voterID); err != nil {
		return "", ErrInvalidToken
	}
	if !hmac.Equal([]byte(mac), []byte(sign(voterID, secret))) {
		return "", ErrInvalidSignature
	}
	return voterID, nil
}

func sign(value, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(value))
	// URL-safe base64 without padding keeps the cookie value clean
	return strings.TrimRight(base64.URLEncoding.EncodeToString(h.Sum(nil)), "=")
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
