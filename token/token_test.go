package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpiryVerifier(t *testing.T) {
	now := time.Now()
	p := Generate("worker-1", "", DefaultTTL, now)

	v := ExpiryVerifier{}
	assert.NoError(t, v.Verify(p, now))
	assert.NoError(t, v.Verify(p, now.Add(29*time.Second)))
	assert.ErrorIs(t, v.Verify(p, now.Add(31*time.Second)), ErrExpired)
}

func TestSignatureVerifierRoundTrip(t *testing.T) {
	now := time.Now()
	p := Generate("worker-1", "s3cret", DefaultTTL, now)
	require.NotEmpty(t, p.Signature)

	v := SignatureVerifier{Secret: []byte("s3cret")}
	assert.NoError(t, v.Verify(p, now))
}

func TestSignatureVerifierRejectsTampering(t *testing.T) {
	now := time.Now()
	v := SignatureVerifier{Secret: []byte("s3cret")}

	t.Run("swapped worker id", func(t *testing.T) {
		p := Generate("worker-1", "s3cret", DefaultTTL, now)
		p.WorkerID = "worker-2"
		assert.ErrorIs(t, v.Verify(p, now), ErrBadSignature)
	})

	t.Run("stretched expiry", func(t *testing.T) {
		p := Generate("worker-1", "s3cret", DefaultTTL, now)
		p.ExpiresAt += int64(time.Hour / time.Millisecond)
		assert.ErrorIs(t, v.Verify(p, now), ErrBadSignature)
	})

	t.Run("missing signature", func(t *testing.T) {
		p := Generate("worker-1", "", DefaultTTL, now)
		assert.ErrorIs(t, v.Verify(p, now), ErrBadSignature)
	})

	t.Run("wrong secret", func(t *testing.T) {
		p := Generate("worker-1", "other", DefaultTTL, now)
		assert.ErrorIs(t, v.Verify(p, now), ErrBadSignature)
	})

	t.Run("expiry checked before signature", func(t *testing.T) {
		p := Generate("worker-1", "s3cret", DefaultTTL, now)
		assert.ErrorIs(t, v.Verify(p, now.Add(time.Minute)), ErrExpired)
	})
}

func TestNewVerifier(t *testing.T) {
	assert.IsType(t, ExpiryVerifier{}, NewVerifier(""))
	assert.IsType(t, SignatureVerifier{}, NewVerifier("s3cret"))
}
