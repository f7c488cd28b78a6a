package schnorr

import (
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/mahdiidarabi/schnorr-adaptor/pkg/secp"
)

// Derivation selects how nonces are derived.
type Derivation int

const (
	// Deterministic derives the nonce from the secret and the public inputs only.
	Deterministic Derivation = iota
	// Randomized additionally mixes in 32 fresh bytes from the instance's
	// randomness source.
	Randomized
)

// String returns the configuration name of the derivation.
func (d Derivation) String() string {
	switch d {
	case Deterministic:
		return "deterministic"
	case Randomized:
		return "randomized"
	default:
		return fmt.Sprintf("Derivation(%d)", int(d))
	}
}

// ParseDerivation parses "deterministic" or "randomized".
func ParseDerivation(s string) (Derivation, error) {
	switch s {
	case "deterministic", "":
		return Deterministic, nil
	case "randomized", "random":
		return Randomized, nil
	default:
		return 0, fmt.Errorf("unknown nonce derivation %q", s)
	}
}

// DeriveNonce derives a secret nonce from secret and the public values.
//
// The public values are committed to with a tagged, length-prefixed hash
// which is then used as the message of an RFC6979 derivation keyed by
// secret. Randomized derivation passes 32 random bytes as RFC6979 extra
// data. The result is never zero.
func (s *Schnorr) DeriveNonce(secret secp.Scalar, derivation Derivation, public ...[]byte) (secp.Scalar, error) {
	digest := nonceDigest(s.nonceTag, public)

	var extra []byte
	switch derivation {
	case Deterministic:
	case Randomized:
		var aux [32]byte
		if _, err := io.ReadFull(s.rand, aux[:]); err != nil {
			return secp.Scalar{}, fmt.Errorf("failed to read nonce randomness: %w", err)
		}
		extra = aux[:]
	default:
		return secp.Scalar{}, fmt.Errorf("unknown nonce derivation %d", derivation)
	}

	key := secret.Bytes()
	defer func() {
		for i := range key {
			key[i] = 0
		}
	}()

	k := secp256k1.NonceRFC6979(key[:], digest[:], extra, nil, 0)
	defer k.Zero()

	return secp.ScalarFromModNScalar(k), nil
}
