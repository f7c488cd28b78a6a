package secp

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// ScalarSize is the size of an encoded scalar.
const ScalarSize = 32

var (
	// ErrScalarOverflow is returned when an encoded scalar is not less than the group order.
	ErrScalarOverflow = errors.New("scalar is not less than the group order")

	// ErrZeroScalar is returned when a non-zero scalar was required.
	ErrZeroScalar = errors.New("scalar is zero")
)

// Scalar is an integer modulo the secp256k1 group order.
//
// The zero value is the scalar 0. Scalars are small values and are passed
// and returned by value; no method mutates its receiver except Zero.
type Scalar struct {
	n secp256k1.ModNScalar
}

// NewScalar decodes a 32-byte big-endian scalar. Values not less than the
// group order are rejected rather than reduced.
func NewScalar(b []byte) (Scalar, error) {
	if len(b) != ScalarSize {
		return Scalar{}, fmt.Errorf("scalar must be %d bytes, got %d", ScalarSize, len(b))
	}

	var s Scalar
	if overflow := s.n.SetBytes((*[ScalarSize]byte)(b)); overflow != 0 {
		return Scalar{}, ErrScalarOverflow
	}
	return s, nil
}

// NewNonZeroScalar is like NewScalar but also rejects zero.
func NewNonZeroScalar(b []byte) (Scalar, error) {
	s, err := NewScalar(b)
	if err != nil {
		return Scalar{}, err
	}
	if s.IsZero() {
		return Scalar{}, ErrZeroScalar
	}
	return s, nil
}

// ParseScalarHex decodes a hex encoded non-zero scalar, with or without a 0x prefix.
func ParseScalarHex(s string) (Scalar, error) {
	b, err := decodeHex(s)
	if err != nil {
		return Scalar{}, fmt.Errorf("failed to decode scalar: %w", err)
	}
	return NewNonZeroScalar(b)
}

// ScalarFromUint32 returns the scalar v.
func ScalarFromUint32(v uint32) Scalar {
	var s Scalar
	s.n.SetInt(v)
	return s
}

// ScalarFromHash reduces a 32-byte digest modulo the group order.
func ScalarFromHash(digest []byte) (Scalar, error) {
	if len(digest) != ScalarSize {
		return Scalar{}, fmt.Errorf("digest must be %d bytes, got %d", ScalarSize, len(digest))
	}

	var s Scalar
	s.n.SetBytes((*[ScalarSize]byte)(digest))
	return s, nil
}

// ScalarFromModNScalar wraps a decred scalar.
func ScalarFromModNScalar(k *secp256k1.ModNScalar) Scalar {
	var s Scalar
	s.n.Set(k)
	return s
}

// RandomScalar samples a uniformly random non-zero scalar from r.
func RandomScalar(r io.Reader) (Scalar, error) {
	var b [ScalarSize]byte
	defer zeroBytes(&b)

	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return Scalar{}, fmt.Errorf("failed to read random scalar: %w", err)
		}

		var s Scalar
		if overflow := s.n.SetBytes(&b); overflow != 0 || s.IsZero() {
			continue
		}
		return s, nil
	}
}

// Add returns s + o.
func (s Scalar) Add(o Scalar) Scalar {
	var r Scalar
	r.n.Add2(&s.n, &o.n)
	return r
}

// Sub returns s - o.
func (s Scalar) Sub(o Scalar) Scalar {
	var r Scalar
	r.n.NegateVal(&o.n).Add(&s.n)
	return r
}

// Mul returns s * o.
func (s Scalar) Mul(o Scalar) Scalar {
	var r Scalar
	r.n.Mul2(&s.n, &o.n)
	return r
}

// Negate returns -s.
func (s Scalar) Negate() Scalar {
	var r Scalar
	r.n.NegateVal(&s.n)
	return r
}

// ConditionalNegate returns -s when negate is set and s otherwise.
// negate must be public data.
func (s Scalar) ConditionalNegate(negate bool) Scalar {
	if negate {
		return s.Negate()
	}
	return s
}

// IsZero reports whether s is zero.
func (s Scalar) IsZero() bool {
	return s.n.IsZero()
}

// Equal reports whether s and o are the same scalar.
func (s Scalar) Equal(o Scalar) bool {
	return s.n.Equals(&o.n)
}

// Bytes returns the 32-byte big-endian encoding of s.
func (s Scalar) Bytes() [ScalarSize]byte {
	return s.n.Bytes()
}

// Hex returns the hex encoding of s.
func (s Scalar) Hex() string {
	b := s.Bytes()
	return hex.EncodeToString(b[:])
}

// ModNScalar returns s as a decred scalar.
func (s Scalar) ModNScalar() secp256k1.ModNScalar {
	return s.n
}

// Zero overwrites s with zero.
func (s *Scalar) Zero() {
	s.n.Zero()
}

func zeroBytes(b *[ScalarSize]byte) {
	for i := range b {
		b[i] = 0
	}
}
