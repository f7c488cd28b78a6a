package adaptor

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mahdiidarabi/schnorr-adaptor/pkg/secp"
)

// EncryptedSignatureSize is the size of an encoded encrypted signature.
const EncryptedSignatureSize = secp.XOnlySize + secp.ScalarSize + 1

// EncryptedSignature is a Schnorr signature encrypted under an encryption
// key Y. It reveals nothing secret and may be copied and published freely.
type EncryptedSignature struct {
	// R is the nonce point r*G + Y, canonical under the scheme's y choice.
	R secp.Point
	// SHat is r + c*x.
	SHat secp.Scalar
	// NeedsNegation records that R was negated during canonicalization, so
	// the decryption key must be negated before it is added to SHat.
	NeedsNegation bool
}

// Serialize returns the encoding:
//
//	b[0:32]  x coordinate of R
//	b[32:64] SHat, big-endian
//	b[64]    1 if NeedsNegation, 0 otherwise
func (es EncryptedSignature) Serialize() []byte {
	b := make([]byte, EncryptedSignatureSize)
	x := es.R.XOnly()
	copy(b[0:32], x[:])
	s := es.SHat.Bytes()
	copy(b[32:64], s[:])
	if es.NeedsNegation {
		b[64] = 1
	}
	return b
}

// Hex returns the hex of the serialized ciphertext.
func (es EncryptedSignature) Hex() string {
	return hex.EncodeToString(es.Serialize())
}

// Equal reports whether both ciphertexts are identical.
func (es EncryptedSignature) Equal(o EncryptedSignature) bool {
	return es.R.Equal(o.R) && es.SHat.Equal(o.SHat) && es.NeedsNegation == o.NeedsNegation
}

// ParseEncryptedSignature decodes a ciphertext produced by an Adaptor using
// the same y choice. R is lifted to its canonical representative.
func (a *Adaptor) ParseEncryptedSignature(b []byte) (EncryptedSignature, error) {
	if len(b) != EncryptedSignatureSize {
		return EncryptedSignature{}, fmt.Errorf("malformed encrypted signature: wrong size: %d", len(b))
	}

	var x secp.XOnly
	copy(x[:], b[0:32])
	R, err := secp.LiftX(x, a.schnorr.NonceY())
	if err != nil {
		return EncryptedSignature{}, fmt.Errorf("invalid encrypted signature: R: %w", err)
	}

	sHat, err := secp.NewScalar(b[32:64])
	if err != nil {
		return EncryptedSignature{}, fmt.Errorf("invalid encrypted signature: s_hat: %w", err)
	}

	if b[64] > 1 {
		return EncryptedSignature{}, fmt.Errorf("invalid encrypted signature: negation flag %d", b[64])
	}

	return EncryptedSignature{
		R:             R,
		SHat:          sHat,
		NeedsNegation: b[64] == 1,
	}, nil
}

// ParseEncryptedSignatureHex decodes a hex encoded ciphertext, with or without a 0x prefix.
func (a *Adaptor) ParseEncryptedSignatureHex(s string) (EncryptedSignature, error) {
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return EncryptedSignature{}, fmt.Errorf("failed to decode encrypted signature: %w", err)
	}
	return a.ParseEncryptedSignature(b)
}
