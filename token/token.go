// Package token holds the short-lived QR identity payload a worker's device
// presents at the gate, and the pluggable verification applied to it before
// any attendance transition runs.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// DefaultTTL is how long a generated payload stays scannable.
const DefaultTTL = 30 * time.Second

var (
	ErrExpired      = errors.New("token expired")
	ErrBadSignature = errors.New("token signature mismatch")
)

// Payload is the QR content. Timestamps are unix milliseconds to match what
// the mobile clients encode.
type Payload struct {
	WorkerID  string `json:"workerId"`
	Timestamp int64  `json:"timestamp"`
	ExpiresAt int64  `json:"expiresAt"`
	Signature string `json:"signature,omitempty"`
}

// Verifier decides whether a payload is acceptable proof of identity.
// Stronger strategies (nonce store, asymmetric signatures) slot in here
// without touching the attendance state machine.
type Verifier interface {
	Verify(p Payload, now time.Time) error
}

// ExpiryVerifier accepts any structurally valid payload until it expires.
type ExpiryVerifier struct{}

func (ExpiryVerifier) Verify(p Payload, now time.Time) error {
	if p.ExpiresAt < now.UnixMilli() {
		return ErrExpired
	}
	return nil
}

// SignatureVerifier checks expiry and an HMAC-SHA256 signature over
// "workerId:timestamp:expiresAt".
type SignatureVerifier struct {
	Secret []byte
}

func (v SignatureVerifier) Verify(p Payload, now time.Time) error {
	if p.ExpiresAt < now.UnixMilli() {
		return ErrExpired
	}
	expected := sign(p.WorkerID, p.Timestamp, p.ExpiresAt, v.Secret)
	if !hmac.Equal([]byte(expected), []byte(p.Signature)) {
		return ErrBadSignature
	}
	return nil
}

// NewVerifier picks the strategy for the configured secret: signed payloads
// when a secret is set, expiry-only otherwise.
func NewVerifier(secret string) Verifier {
	if secret == "" {
		return ExpiryVerifier{}
	}
	return SignatureVerifier{Secret: []byte(secret)}
}

// Generate builds a payload for workerID valid for ttl from now. With an
// empty secret the payload is unsigned.
func Generate(workerID, secret string, ttl time.Duration, now time.Time) Payload {
	p := Payload{
		WorkerID:  workerID,
		Timestamp: now.UnixMilli(),
		ExpiresAt: now.Add(ttl).UnixMilli(),
	}
	if secret != "" {
		p.Signature = sign(p.WorkerID, p.Timestamp, p.ExpiresAt, []byte(secret))
	}
	return p
}

func sign(workerID string, timestamp, expiresAt int64, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	fmt.Fprintf(mac, "%s:%d:%d", workerID, timestamp, expiresAt)
	return hex.EncodeToString(mac.Sum(nil))
}
