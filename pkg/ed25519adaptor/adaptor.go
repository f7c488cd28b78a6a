package ed25519adaptor

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"filippo.io/edwards25519"

	"github.com/mahdiidarabi/schnorr-adaptor/pkg/schnorr"
)

const (
	// EncryptedSignatureSize is the size of an encoded encrypted signature.
	EncryptedSignatureSize = 64
	// SignatureSize is the size of a decrypted signature.
	SignatureSize = 64
)

// nonceDomain is hashed before the secret nonce prefix, where no plain
// RFC 8032 nonce input can reproduce it.
const nonceDomain = "SigEd25519 adaptor signature nonce"

// ErrInvalidEncryptionKey is returned when the encryption key is not a
// prime-order point.
var ErrInvalidEncryptionKey = errors.New("encryption key must be a prime-order point")

// EncryptedSignature is an Ed25519 signature encrypted under Y. The full
// point R = r*B + Y is encoded, so no negation bookkeeping is needed.
type EncryptedSignature struct {
	R    *edwards25519.Point
	SHat *edwards25519.Scalar
}

// Serialize returns R || SHat in their RFC 8032 encodings.
func (es EncryptedSignature) Serialize() []byte {
	b := make([]byte, 0, EncryptedSignatureSize)
	b = append(b, es.R.Bytes()...)
	return append(b, es.SHat.Bytes()...)
}

// Hex returns the hex of the serialized ciphertext.
func (es EncryptedSignature) Hex() string {
	return hex.EncodeToString(es.Serialize())
}

// ParseEncryptedSignature decodes a ciphertext.
func ParseEncryptedSignature(b []byte) (EncryptedSignature, error) {
	if len(b) != EncryptedSignatureSize {
		return EncryptedSignature{}, fmt.Errorf("malformed encrypted signature: wrong size: %d", len(b))
	}
	R, err := ParsePoint(b[:32])
	if err != nil {
		return EncryptedSignature{}, fmt.Errorf("invalid encrypted signature: R: %w", err)
	}
	sHat, err := ParseScalar(b[32:])
	if err != nil {
		return EncryptedSignature{}, fmt.Errorf("invalid encrypted signature: s_hat: %w", err)
	}
	return EncryptedSignature{R: R, SHat: sHat}, nil
}

// ParseEncryptedSignatureHex decodes a hex encoded ciphertext, with or without a 0x prefix.
func ParseEncryptedSignatureHex(s string) (EncryptedSignature, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return EncryptedSignature{}, fmt.Errorf("failed to decode encrypted signature: %w", err)
	}
	return ParseEncryptedSignature(b)
}

// EncryptedSign signs m under kp, encrypted under Y. Randomized derivation
// reads 32 bytes from crypto/rand.
func EncryptedSign(kp *KeyPair, Y *edwards25519.Point, m []byte, derivation schnorr.Derivation) (EncryptedSignature, error) {
	return encryptedSign(kp, Y, m, derivation, rand.Reader)
}

func encryptedSign(kp *KeyPair, Y *edwards25519.Point, m []byte, derivation schnorr.Derivation, rng io.Reader) (EncryptedSignature, error) {
	if !isPrimeOrder(Y) {
		return EncryptedSignature{}, ErrInvalidEncryptionKey
	}

	h := sha512.New()
	h.Write([]byte(nonceDomain))
	switch derivation {
	case schnorr.Deterministic:
		h.Write([]byte{0})
		h.Write(kp.prefix)
	case schnorr.Randomized:
		aux := make([]byte, 32)
		if _, err := io.ReadFull(rng, aux); err != nil {
			return EncryptedSignature{}, fmt.Errorf("failed to read nonce randomness: %w", err)
		}
		h.Write([]byte{1})
		h.Write(kp.prefix)
		h.Write(aux)
	default:
		return EncryptedSignature{}, fmt.Errorf("unknown nonce derivation %d", derivation)
	}
	h.Write(Y.Bytes())
	h.Write(m)

	r, err := edwards25519.NewScalar().SetUniformBytes(h.Sum(nil))
	if err != nil {
		return EncryptedSignature{}, err
	}

	R := new(edwards25519.Point).ScalarBaseMult(r)
	R.Add(R, Y)

	c := challenge(R, kp.pub, m)
	sHat := edwards25519.NewScalar().MultiplyAdd(c, kp.a, r)

	return EncryptedSignature{R: R, SHat: sHat}, nil
}

// VerifyEncryptedSignature reports whether ct decrypts, under the discrete
// log of Y, to a valid Ed25519 signature on m under publicKey.
func VerifyEncryptedSignature(publicKey []byte, Y *edwards25519.Point, m []byte, ct EncryptedSignature) bool {
	if len(publicKey) != 32 || ct.R == nil || ct.SHat == nil || !isPrimeOrder(Y) {
		return false
	}
	A, err := new(edwards25519.Point).SetBytes(publicKey)
	if err != nil {
		return false
	}

	c := challenge(ct.R, A, m)
	minusA := new(edwards25519.Point).Negate(A)

	// s_hat*B - c*A == R - Y
	lhs := new(edwards25519.Point).VarTimeDoubleScalarBaseMult(c, minusA, ct.SHat)
	rhs := new(edwards25519.Point).Subtract(ct.R, Y)
	return lhs.Equal(rhs) == 1
}

// DecryptSignature returns the 64-byte Ed25519 signature R || s_hat + y.
func DecryptSignature(y *edwards25519.Scalar, ct EncryptedSignature) []byte {
	s := edwards25519.NewScalar().Add(ct.SHat, y)
	sig := make([]byte, 0, SignatureSize)
	sig = append(sig, ct.R.Bytes()...)
	return append(sig, s.Bytes()...)
}

// RecoverDecryptionKey extracts y from ct and the signature it was
// decrypted to, or returns false if sig is not that decryption.
func RecoverDecryptionKey(Y *edwards25519.Point, ct EncryptedSignature, sig []byte) (*edwards25519.Scalar, bool) {
	if len(sig) != SignatureSize || ct.R == nil || ct.SHat == nil || !isPrimeOrder(Y) {
		return nil, false
	}
	R, err := new(edwards25519.Point).SetBytes(sig[:32])
	if err != nil || R.Equal(ct.R) != 1 {
		return nil, false
	}
	s, err := ParseScalar(sig[32:])
	if err != nil {
		return nil, false
	}

	y := edwards25519.NewScalar().Subtract(s, ct.SHat)
	if new(edwards25519.Point).ScalarBaseMult(y).Equal(Y) != 1 {
		return nil, false
	}
	return y, true
}

// challenge computes SHA-512(R || A || m) mod l as in RFC 8032.
func challenge(R, A *edwards25519.Point, m []byte) *edwards25519.Scalar {
	h := sha512.New()
	h.Write(R.Bytes())
	h.Write(A.Bytes())
	h.Write(m)
	c, err := edwards25519.NewScalar().SetUniformBytes(h.Sum(nil))
	if err != nil {
		panic("ed25519adaptor: internal error: SetUniformBytes rejected a 64-byte digest")
	}
	return c
}
