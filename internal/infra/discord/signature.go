package discord

import (
	"crypto/ed25519"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
)

// MaxSignatureSkew bounds how old (or how far in the future) an interaction timestamp may be.
const MaxSignatureSkew = 5 * time.Minute

var (
	ErrMissingSignature = errors.New("missing signature")
	ErrBadTimestamp     = errors.New("bad signature timestamp")
	ErrStaleTimestamp   = errors.New("stale signature timestamp")
	ErrBadSignature     = errors.New("bad signature")
)

// Verifier checks the Ed25519 signatures Discord puts on interaction requests.
type Verifier struct {
	publicKey ed25519.PublicKey
	now       func() time.Time
}

// NewVerifier parses the application's hex encoded public key.
func NewVerifier(publicKeyHex string, now func() time.Time) (*Verifier, error) {
	raw, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return nil, errors.Wrap(err, "decoding discord public key")
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, errors.Newf("discord public key must be %d bytes, got %d", ed25519.PublicKeySize, len(raw))
	}
	if now == nil {
		now = time.Now
	}
	return &Verifier{publicKey: ed25519.PublicKey(raw), now: now}, nil
}

// Verify checks signatureHex over timestamp+body and rejects replays outside MaxSignatureSkew.
func (v *Verifier) Verify(signatureHex, timestamp string, body []byte) error {
	if signatureHex == "" || timestamp == "" {
		return ErrMissingSignature
	}

	seconds, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrBadTimestamp
	}
	skew := v.now().Sub(time.Unix(seconds, 0))
	if skew < 0 {
		skew = -skew
	}
	if skew > MaxSignatureSkew {
		return ErrStaleTimestamp
	}

	sig, err := hex.DecodeString(signatureHex)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return ErrBadSignature
	}
	msg := make([]byte, 0, len(timestamp)+len(body))
	msg = append(msg, timestamp...)
	msg = append(msg, body...)
	if !ed25519.Verify(v.publicKey, msg, sig) {
		return ErrBadSignature
	}
	return nil
}
