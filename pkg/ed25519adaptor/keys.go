package ed25519adaptor

import (
	"crypto/ed25519"
	"crypto/sha512"
	"errors"
	"fmt"
	"io"

	"filippo.io/edwards25519"
)

// SeedSize is the size of an RFC 8032 private key seed.
const SeedSize = ed25519.SeedSize

// ErrInvalidPoint is returned for encodings that are not a prime-order point.
var ErrInvalidPoint = errors.New("point is not a valid prime-order edwards25519 point")

// KeyPair is an Ed25519 signing key, expanded as in RFC 8032 so that plain
// crypto/ed25519 signatures and adaptor signatures share one public key.
type KeyPair struct {
	a      *edwards25519.Scalar
	prefix []byte
	pub    *edwards25519.Point
}

// NewKeyPair expands a 32-byte seed.
func NewKeyPair(seed []byte) (*KeyPair, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(seed))
	}

	h := sha512.Sum512(seed)
	a, err := edwards25519.NewScalar().SetBytesWithClamping(h[:32])
	if err != nil {
		return nil, err
	}

	prefix := make([]byte, 32)
	copy(prefix, h[32:])

	return &KeyPair{
		a:      a,
		prefix: prefix,
		pub:    new(edwards25519.Point).ScalarBaseMult(a),
	}, nil
}

// GenerateKeyPair creates a key pair from a fresh seed read from r.
func GenerateKeyPair(r io.Reader) (*KeyPair, error) {
	seed := make([]byte, SeedSize)
	if _, err := io.ReadFull(r, seed); err != nil {
		return nil, fmt.Errorf("failed to read seed: %w", err)
	}
	return NewKeyPair(seed)
}

// PublicKey returns the key in crypto/ed25519 form.
func (kp *KeyPair) PublicKey() ed25519.PublicKey {
	return ed25519.PublicKey(kp.pub.Bytes())
}

// Point returns a copy of the public key point A.
func (kp *KeyPair) Point() *edwards25519.Point {
	return new(edwards25519.Point).Set(kp.pub)
}

// GenerateDecryptionKey returns a random decryption key y and its
// encryption key Y = y*B.
func GenerateDecryptionKey(r io.Reader) (*edwards25519.Scalar, *edwards25519.Point, error) {
	b := make([]byte, 64)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, nil, fmt.Errorf("failed to read randomness: %w", err)
	}
	y, err := edwards25519.NewScalar().SetUniformBytes(b)
	if err != nil {
		return nil, nil, err
	}
	return y, new(edwards25519.Point).ScalarBaseMult(y), nil
}

// ParsePoint decodes a point and rejects points outside the prime-order
// subgroup, including the identity.
func ParsePoint(b []byte) (*edwards25519.Point, error) {
	p, err := new(edwards25519.Point).SetBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	if !isPrimeOrder(p) {
		return nil, ErrInvalidPoint
	}
	return p, nil
}

// ParseScalar decodes a canonical 32-byte little-endian scalar.
func ParseScalar(b []byte) (*edwards25519.Scalar, error) {
	return edwards25519.NewScalar().SetCanonicalBytes(b)
}

var (
	identity = edwards25519.NewIdentityPoint()
	minusOne = edwards25519.NewScalar().Negate(mustScalar(1))
)

// isPrimeOrder reports whether p is a non-identity point with l*p = 0.
// l*p is computed as (l-1)*p + p.
func isPrimeOrder(p *edwards25519.Point) bool {
	if p == nil || p.Equal(identity) == 1 {
		return false
	}
	q := new(edwards25519.Point).ScalarMult(minusOne, p)
	q.Add(q, p)
	return q.Equal(identity) == 1
}

func mustScalar(v byte) *edwards25519.Scalar {
	b := make([]byte, 32)
	b[0] = v
	s, err := edwards25519.NewScalar().SetCanonicalBytes(b)
	if err != nil {
		panic(err)
	}
	return s
}
