package adaptor

import (
	"errors"

	"github.com/mahdiidarabi/schnorr-adaptor/pkg/schnorr"
	"github.com/mahdiidarabi/schnorr-adaptor/pkg/secp"
)

// ErrInvalidEncryptionKey is returned when the encryption key is the identity.
var ErrInvalidEncryptionKey = errors.New("encryption key must not be the identity")

// Adaptor implements signature encryption on top of a Schnorr instance.
// It holds no mutable state and is safe for concurrent use.
type Adaptor struct {
	schnorr *schnorr.Schnorr
}

// New returns an Adaptor for s.
func New(s *schnorr.Schnorr) *Adaptor {
	return &Adaptor{schnorr: s}
}

// Schnorr returns the underlying signature scheme.
func (a *Adaptor) Schnorr() *schnorr.Schnorr {
	return a.schnorr
}

// EncryptedSign creates a signature on m under signingKey that is encrypted
// under encryptionKey (Y). Only the holder of y with y*G = Y can decrypt it.
//
// An error is returned only when Y is the identity or when randomized
// derivation cannot read from the randomness source.
func (a *Adaptor) EncryptedSign(signingKey *schnorr.KeyPair, encryptionKey secp.Point, m []byte, derivation schnorr.Derivation) (EncryptedSignature, error) {
	Y := encryptionKey
	if Y.IsIdentity() {
		return EncryptedSignature{}, ErrInvalidEncryptionKey
	}
	x := signingKey.SecretKey()
	X := signingKey.VerificationKey().XOnly()

	// Y is bound into the nonce so that r*G is independent of Y, which is
	// what keeps r*G + Y away from the identity below.
	r, err := a.schnorr.DeriveNonce(x, derivation, X[:], Y.SerializeCompressed(), m)
	if err != nil {
		return EncryptedSignature{}, err
	}
	defer r.Zero()

	R := secp.BaseMul(r).Add(Y)
	if R.IsIdentity() {
		// r*G = -Y for a pseudorandom r derived from Y itself happens with
		// probability about 2^-256. Reaching this means the nonce derivation
		// is broken, and no output is safe to return.
		panic("adaptor: encrypted nonce point is the identity")
	}

	// The signer can fix the sign of r but the decryptor cannot fix Y, so
	// the flag travels with the ciphertext.
	R, needsNegation := R.Normalize(a.schnorr.NonceY())
	r = r.ConditionalNegate(needsNegation)

	c := a.schnorr.Challenge(R.XOnly(), X, m)
	sHat := r.Add(c.Mul(x))

	return EncryptedSignature{
		R:             R,
		SHat:          sHat,
		NeedsNegation: needsNegation,
	}, nil
}

// VerifyEncryptedSignature reports whether ciphertext decrypts, under the
// discrete log of encryptionKey, to a valid signature on m under
// verificationKey.
func (a *Adaptor) VerifyEncryptedSignature(verificationKey secp.EvenYPoint, encryptionKey secp.Point, m []byte, ciphertext EncryptedSignature) bool {
	X := verificationKey
	Y := encryptionKey
	if X.IsIdentity() || Y.IsIdentity() {
		return false
	}
	if ciphertext.R.IsIdentity() || !ciphertext.R.HasY(a.schnorr.NonceY()) {
		return false
	}

	//  NeedsNegation => R_hat = R + Y
	// !NeedsNegation => R_hat = R - Y
	RHat := ciphertext.R.Add(Y.ConditionalNegate(!ciphertext.NeedsNegation))

	c := a.schnorr.Challenge(ciphertext.R.XOnly(), X.XOnly(), m)

	return RHat.Equal(secp.BaseMul(ciphertext.SHat).Sub(X.Point().Mul(c)))
}

// DecryptSignature turns ciphertext into an ordinary signature using
// decryptionKey. It does not check that the key matches the ciphertext;
// verify the ciphertext first, or the resulting signature afterwards.
func (a *Adaptor) DecryptSignature(decryptionKey secp.Scalar, ciphertext EncryptedSignature) schnorr.Signature {
	y := decryptionKey.ConditionalNegate(ciphertext.NeedsNegation)
	defer y.Zero()

	return schnorr.Signature{
		R: ciphertext.R.XOnly(),
		S: ciphertext.SHat.Add(y),
	}
}

// RecoverDecryptionKey extracts the discrete log of encryptionKey from a
// ciphertext and the signature it was decrypted to. It returns false when
// signature is not the decryption of ciphertext under that key.
func (a *Adaptor) RecoverDecryptionKey(encryptionKey secp.Point, ciphertext EncryptedSignature, signature schnorr.Signature) (secp.Scalar, bool) {
	if encryptionKey.IsIdentity() || ciphertext.R.IsIdentity() {
		return secp.Scalar{}, false
	}
	if signature.R != ciphertext.R.XOnly() {
		return secp.Scalar{}, false
	}

	y := signature.S.Sub(ciphertext.SHat).ConditionalNegate(ciphertext.NeedsNegation)
	if !secp.BaseMul(y).Equal(encryptionKey) {
		return secp.Scalar{}, false
	}

	if y.IsZero() {
		// y*G equals a non-identity Y, so y cannot be zero.
		panic("adaptor: recovered decryption key is zero")
	}
	return y, true
}
