// Package storage signs the tokens embedded in public calendar feed URLs.
package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidToken covers malformed and tampered tokens.
	ErrInvalidToken = errors.New("invalid feed token")
	// ErrExpiredToken is returned for well-signed tokens past their expiry.
	ErrExpiredToken = errors.New("feed token expired")
)

// FeedClaims is the content of a feed token.
type FeedClaims struct {
	UserID    string
	Scope     string
	ExpiresAt time.Time
}

// FeedSigner issues and verifies HMAC-SHA256 feed tokens of the form
// base64(user|scope|expiry).base64(mac).
type FeedSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewFeedSigner constructs a signer. A non-positive ttl defaults to one year.
func NewFeedSigner(secret string, ttl time.Duration) *FeedSigner {
	if ttl <= 0 {
		ttl = 365 * 24 * time.Hour
	}
	return &FeedSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token granting read access to scope for userID.
func (s *FeedSigner) Issue(userID, scope string) (string, time.Time, error) {
	if userID == "" || scope == "" {
		return "", time.Time{}, fmt.Errorf("userID and scope required")
	}
	if strings.Contains(userID, "|") || strings.Contains(scope, "|") {
		return "", time.Time{}, fmt.Errorf("userID and scope must not contain '|'")
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("signing secret missing")
	}

	expiresAt := s.now().Add(s.ttl).UTC().Truncate(time.Second)
	payload := strings.Join([]string{userID, scope, strconv.FormatInt(expiresAt.Unix(), 10)}, "|")
	encoded := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return encoded + "." + s.sign(encoded), expiresAt, nil
}

// Verify checks the signature and expiry of token.
func (s *FeedSigner) Verify(token string) (FeedClaims, error) {
	encoded, signature, ok := strings.Cut(token, ".")
	if !ok || encoded == "" || signature == "" {
		return FeedClaims{}, ErrInvalidToken
	}
	if !hmac.Equal([]byte(s.sign(encoded)), []byte(signature)) {
		return FeedClaims{}, ErrInvalidToken
	}

	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return FeedClaims{}, ErrInvalidToken
	}
	parts := strings.Split(string(raw), "|")
	if len(parts) != 3 {
		return FeedClaims{}, ErrInvalidToken
	}
	exp, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return FeedClaims{}, ErrInvalidToken
	}

	claims := FeedClaims{UserID: parts[0], Scope: parts[1], ExpiresAt: time.Unix(exp, 0).UTC()}
	if s.now().After(claims.ExpiresAt) {
		return claims, ErrExpiredToken
	}
	return claims, nil
}

func (s *FeedSigner) sign(encoded string) string {
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(encoded))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
