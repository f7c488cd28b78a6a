package schnorr

import (
	"io"

	"github.com/mahdiidarabi/schnorr-adaptor/pkg/secp"
)

// KeyPair is a secret key x together with its verification key X = x*G,
// where X has an even y coordinate. x is negated at construction when needed
// so that the pair stays consistent. A KeyPair is immutable.
type KeyPair struct {
	x   secp.Scalar
	pub secp.EvenYPoint
}

// NewKeyPair creates a key pair from a non-zero secret scalar.
func NewKeyPair(x secp.Scalar) (*KeyPair, error) {
	if x.IsZero() {
		return nil, secp.ErrZeroScalar
	}

	X, negated := secp.BaseMul(x).IntoEvenY()
	return &KeyPair{
		x:   x.ConditionalNegate(negated),
		pub: X,
	}, nil
}

// GenerateKeyPair creates a key pair from a random secret read from r.
func GenerateKeyPair(r io.Reader) (*KeyPair, error) {
	x, err := secp.RandomScalar(r)
	if err != nil {
		return nil, err
	}
	return NewKeyPair(x)
}

// SecretKey returns the (normalized) secret scalar.
func (kp *KeyPair) SecretKey() secp.Scalar {
	return kp.x
}

// VerificationKey returns the even-y verification key.
func (kp *KeyPair) VerificationKey() secp.EvenYPoint {
	return kp.pub
}
