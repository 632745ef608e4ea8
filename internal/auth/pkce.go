package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	verifierMinLen = 43
	verifierMaxLen = 128
)

// PKCEContext holds the ephemeral secrets for one authorization attempt.
// It is consumed once during the code exchange and never persisted.
type PKCEContext struct {
	CodeVerifier  string
	CodeChallenge string
	State         string
}

// NewPKCEContext generates a fresh verifier, its S256 challenge and an
// anti-forgery state token, as specified in RFC 7636.
func NewPKCEContext() (*PKCEContext, error) {
	verifier, err := GenerateVerifier()
	if err != nil {
		return nil, fmt.Errorf("failed to generate code verifier: %w", err)
	}

	state, err := GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state: %w", err)
	}

	return &PKCEContext{
		CodeVerifier:  verifier,
		CodeChallenge: DeriveChallenge(verifier),
		State:         state,
	}, nil
}

// GenerateVerifier produces a random code verifier of 43-128 characters
// drawn from the unreserved URI character set.
func GenerateVerifier() (string, error) {
	raw := make([]byte, 64)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("secure random source unavailable: %w", err)
	}

	encoded := base64.RawURLEncoding.EncodeToString(raw)

	var b strings.Builder
	for _, c := range encoded {
		if isUnreserved(c) {
			b.WriteRune(c)
		}
		if b.Len() == verifierMaxLen {
			break
		}
	}

	verifier := b.String()
	if len(verifier) < verifierMinLen {
		return "", fmt.Errorf("generated verifier too short: %d chars", len(verifier))
	}
	return verifier, nil
}

// DeriveChallenge computes the S256 code challenge for a verifier:
// base64url of the SHA-256 digest, without padding.
func DeriveChallenge(verifier string) string {
	hash := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}

// GenerateState produces a hex-encoded random state token.
func GenerateState() (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("secure random source unavailable: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

func isUnreserved(c rune) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '.' || c == '_' || c == '~':
		return true
	}
	return false
}
