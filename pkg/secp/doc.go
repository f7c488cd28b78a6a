// Package secp provides the secp256k1 group arithmetic used by the Schnorr
// and adaptor signature packages.
//
// It is a thin value-typed layer over github.com/decred/dcrd/dcrec/secp256k1/v4
// that adds the two pieces of bookkeeping Schnorr signatures over x-only
// encodings need:
//
//   - y-coordinate canonicalization (even y, or y a quadratic residue), which
//     reports whether the point had to be negated so the caller can negate
//     the matching secret;
//   - a normalization-typed EvenYPoint for verification keys, so a key that
//     was never normalized cannot be passed where an x-only key is expected.
//
// # Secrecy
//
// Scalar arithmetic is performed on secp256k1.ModNScalar, whose addition,
// multiplication and negation are constant time, so secret values (signing
// keys, nonces, decryption keys) and public values share the same Scalar type.
// Branches in this package and its callers only depend on public data such as
// a negation flag or a point's y parity.
//
// Point multiplication uses the library's NonConst routines, the same ones
// its own signing code uses for secret nonces.
//
// # Quick Start
//
//	x, err := secp.RandomScalar(rand.Reader)
//	if err != nil {
//	    return err
//	}
//	X, negated := secp.BaseMul(x).IntoEvenY()
//	x = x.ConditionalNegate(negated)
//	fmt.Printf("x-only key: %x\n", X.XOnly())
package secp
