package schnorr

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mahdiidarabi/schnorr-adaptor/pkg/secp"
)

// SignatureSize is the size of an encoded signature.
const SignatureSize = secp.XOnlySize + secp.ScalarSize

// Signature is a Schnorr signature: the x coordinate of the nonce point and
// the scalar s.
type Signature struct {
	R secp.XOnly
	S secp.Scalar
}

// Serialize returns the 64-byte encoding R.x || s.
func (sig Signature) Serialize() []byte {
	b := make([]byte, SignatureSize)
	copy(b, sig.R[:])
	s := sig.S.Bytes()
	copy(b[secp.XOnlySize:], s[:])
	return b
}

// Hex returns the hex of the serialized signature.
func (sig Signature) Hex() string {
	return hex.EncodeToString(sig.Serialize())
}

// Equal reports whether both signatures have the same encoding.
func (sig Signature) Equal(o Signature) bool {
	return sig.R == o.R && sig.S.Equal(o.S)
}

// ParseSignature decodes a 64-byte signature. s must be less than the group order.
func ParseSignature(b []byte) (Signature, error) {
	if len(b) != SignatureSize {
		return Signature{}, fmt.Errorf("malformed signature: wrong size: %d", len(b))
	}

	var sig Signature
	copy(sig.R[:], b[:secp.XOnlySize])
	s, err := secp.NewScalar(b[secp.XOnlySize:])
	if err != nil {
		return Signature{}, fmt.Errorf("invalid signature: %w", err)
	}
	sig.S = s
	return sig, nil
}

// ParseSignatureHex decodes a hex encoded signature, with or without a 0x prefix.
func ParseSignatureHex(s string) (Signature, error) {
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return Signature{}, fmt.Errorf("failed to decode signature: %w", err)
	}
	return ParseSignature(b)
}
