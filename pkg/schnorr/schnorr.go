package schnorr

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"
	"io"

	"github.com/mahdiidarabi/schnorr-adaptor/pkg/secp"
)

// BIP340Tag is the tag prefix used by BIP-340.
const BIP340Tag = "BIP0340"

// ErrInvalidHash is returned when the configured hash does not produce 32 bytes.
var ErrInvalidHash = errors.New("challenge hash must produce 32 bytes")

// Config configures a Schnorr instance.
type Config struct {
	// Tag domain-separates the challenge ("<Tag>/challenge") and nonce
	// ("<Tag>/nonce") hashes.
	Tag string

	// Hash constructs the challenge hash (default: SHA-256).
	Hash func() hash.Hash

	// NonceY is the canonical y of nonce points (default: SquareY).
	NonceY secp.YChoice

	// Rand is the randomness source for Randomized derivation
	// (default: crypto/rand.Reader).
	Rand io.Reader
}

// Schnorr signs and verifies under one fixed choice of hash, tag and nonce
// normalization. It holds no mutable state and is safe for concurrent use.
type Schnorr struct {
	challengeTag []byte
	nonceTag     []byte
	newHash      func() hash.Hash
	nonceY       secp.YChoice
	rand         io.Reader
}

// New creates a Schnorr instance from cfg.
func New(cfg Config) (*Schnorr, error) {
	if cfg.Tag == "" {
		return nil, errors.New("tag must not be empty")
	}
	newHash := cfg.Hash
	if newHash == nil {
		newHash = sha256.New
	}
	if size := newHash().Size(); size != secp.ScalarSize {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidHash, size)
	}
	if cfg.NonceY != secp.EvenY && cfg.NonceY != secp.SquareY {
		return nil, fmt.Errorf("unknown nonce y choice %d", cfg.NonceY)
	}
	r := cfg.Rand
	if r == nil {
		r = rand.Reader
	}

	return &Schnorr{
		challengeTag: []byte(cfg.Tag + "/challenge"),
		nonceTag:     []byte(cfg.Tag + "/nonce"),
		newHash:      newHash,
		nonceY:       cfg.NonceY,
		rand:         r,
	}, nil
}

// FromTag returns a SHA-256 instance with square-y nonce points.
func FromTag(tag string) *Schnorr {
	s, err := New(Config{Tag: tag, NonceY: secp.SquareY})
	if err != nil {
		panic(err)
	}
	return s
}

// NewBIP340 returns an instance producing BIP-340 signatures.
func NewBIP340() *Schnorr {
	s, err := New(Config{Tag: BIP340Tag, NonceY: secp.EvenY})
	if err != nil {
		panic(err)
	}
	return s
}

// NonceY returns the canonical y choice for nonce points.
func (s *Schnorr) NonceY() secp.YChoice {
	return s.nonceY
}

// Challenge computes the Fiat-Shamir challenge for nonce R, key X and message m.
func (s *Schnorr) Challenge(R, X secp.XOnly, m []byte) secp.Scalar {
	digest := taggedHash(s.newHash, s.challengeTag, R[:], X[:], m)
	c, err := secp.ScalarFromHash(digest)
	if err != nil {
		// New only accepts 32-byte hashes.
		panic(err)
	}
	return c
}

// Sign signs m with kp.
func (s *Schnorr) Sign(kp *KeyPair, m []byte, derivation Derivation) (Signature, error) {
	X := kp.VerificationKey().XOnly()

	r, err := s.DeriveNonce(kp.SecretKey(), derivation, X[:], m)
	if err != nil {
		return Signature{}, err
	}
	defer r.Zero()

	// r is never zero, so R is never the identity.
	R, negated := secp.BaseMul(r).Normalize(s.nonceY)
	r = r.ConditionalNegate(negated)

	Rx := R.XOnly()
	c := s.Challenge(Rx, X, m)

	return Signature{
		R: Rx,
		S: r.Add(c.Mul(kp.SecretKey())),
	}, nil
}

// Verify reports whether sig is a valid signature on m under X.
func (s *Schnorr) Verify(X secp.EvenYPoint, m []byte, sig Signature) bool {
	if X.IsIdentity() {
		return false
	}

	c := s.Challenge(sig.R, X.XOnly(), m)
	R := secp.BaseMul(sig.S).Sub(X.Point().Mul(c))
	if R.IsIdentity() || !R.HasY(s.nonceY) {
		return false
	}
	return R.XOnly() == sig.R
}
